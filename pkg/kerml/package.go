package kerml

// Package groups elements and imports other packages. Both sets are kept as
// ordered, deduplicated id lists; the import graph is expected to be
// acyclic but that is not enforced here.
type Package struct {
	ElementBase
	ElementIDs []string `json:"elementIds,omitempty"`
	ImportIDs  []string `json:"importIds,omitempty"`
}

func NewPackage(id, name string) *Package {
	return &Package{ElementBase: newBase(id, name)}
}

func (p *Package) ElementKind() Kind { return KindPackage }

// AddElement records a member element id, deduplicating repeats.
func (p *Package) AddElement(id string) {
	p.ElementIDs = appendUnique(p.ElementIDs, id)
}

// RemoveElement removes a member element id and reports whether it was
// present.
func (p *Package) RemoveElement(id string) bool {
	ids, ok := removeID(p.ElementIDs, id)
	p.ElementIDs = ids
	return ok
}

// AddImport records an imported package id, deduplicating repeats.
func (p *Package) AddImport(id string) {
	p.ImportIDs = appendUnique(p.ImportIDs, id)
}

// RemoveImport removes an imported package id and reports whether it was
// present.
func (p *Package) RemoveImport(id string) bool {
	ids, ok := removeID(p.ImportIDs, id)
	p.ImportIDs = ids
	return ok
}
