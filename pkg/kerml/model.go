package kerml

// Model aggregates root package ids and a flat element array. The flat
// array is the serialization unit of work: everything a model refers to is
// expected to appear in it, keyed by id.
type Model struct {
	ElementBase
	RootPackageIDs []string  `json:"rootPackageIds,omitempty"`
	Elements       []Element `json:"elements,omitempty"`
}

func NewModel(id, name string) *Model {
	return &Model{ElementBase: newBase(id, name)}
}

func (m *Model) ElementKind() Kind { return KindModel }

// AddElement inserts an element into the flat array, replacing any existing
// element with the same id in place.
func (m *Model) AddElement(e Element) {
	for i, existing := range m.Elements {
		if existing.ElementID() == e.ElementID() {
			m.Elements[i] = e
			return
		}
	}
	m.Elements = append(m.Elements, e)
}

// RemoveElement removes the element with the given id and reports whether a
// match was found. Nothing is removed implicitly: dangling references left
// behind are a validation concern.
func (m *Model) RemoveElement(id string) bool {
	for i, e := range m.Elements {
		if e.ElementID() == id {
			m.Elements = append(m.Elements[:i], m.Elements[i+1:]...)
			return true
		}
	}
	return false
}

// FindElement returns the element with the given id, or nil.
func (m *Model) FindElement(id string) Element {
	for _, e := range m.Elements {
		if e.ElementID() == id {
			return e
		}
	}
	return nil
}

// AddRootPackage records a root package id, deduplicating repeats.
func (m *Model) AddRootPackage(id string) {
	m.RootPackageIDs = appendUnique(m.RootPackageIDs, id)
}

// RemoveRootPackage removes a root package id and reports whether it was
// present.
func (m *Model) RemoveRootPackage(id string) bool {
	ids, ok := removeID(m.RootPackageIDs, id)
	m.RootPackageIDs = ids
	return ok
}
