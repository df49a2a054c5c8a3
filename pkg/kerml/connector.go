package kerml

// Connector is a feature that relates two or more other features. At least
// two connected features are expected by convention; the validation engine
// enforces that, not the constructor, because connectors are routinely
// built up one end at a time.
type Connector struct {
	Feature
	ConnectedFeatureIDs []string `json:"connectedFeatureIds,omitempty"`
}

func NewConnector(id, name string) *Connector {
	return &Connector{Feature: Feature{Type: Type{ElementBase: newBase(id, name)}}}
}

func (c *Connector) ElementKind() Kind { return KindConnector }

// AddConnectedFeature appends a connected feature id, deduplicating
// repeats.
func (c *Connector) AddConnectedFeature(id string) {
	c.ConnectedFeatureIDs = appendUnique(c.ConnectedFeatureIDs, id)
}

// RemoveConnectedFeature removes a connected feature id and reports whether
// it was present.
func (c *Connector) RemoveConnectedFeature(id string) bool {
	ids, ok := removeID(c.ConnectedFeatureIDs, id)
	c.ConnectedFeatureIDs = ids
	return ok
}

// BindingConnector asserts that its connected features have equal values.
// Type compatibility between the ends is implied, not structurally
// enforced.
type BindingConnector struct {
	Connector
}

func NewBindingConnector(id, name string) *BindingConnector {
	return &BindingConnector{Connector: Connector{Feature: Feature{Type: Type{ElementBase: newBase(id, name)}}}}
}

func (b *BindingConnector) ElementKind() Kind { return KindBindingConnector }

// Succession is a connector ordering its ends in time, with optional effect
// and guard expressions carried as free text.
type Succession struct {
	Connector
	Effect string `json:"effect,omitempty"`
	Guard  string `json:"guard,omitempty"`
}

func NewSuccession(id, name string) *Succession {
	return &Succession{Connector: Connector{Feature: Feature{Type: Type{ElementBase: newBase(id, name)}}}}
}

func (s *Succession) ElementKind() Kind { return KindSuccession }

// ItemFlow is a connector transferring items of a given type between its
// ends.
type ItemFlow struct {
	Connector
	ItemTypeID string `json:"itemTypeId,omitempty"`
}

func NewItemFlow(id, name string) *ItemFlow {
	return &ItemFlow{Connector: Connector{Feature: Feature{Type: Type{ElementBase: newBase(id, name)}}}}
}

func (f *ItemFlow) ElementKind() Kind { return KindItemFlow }

// SuccessionItemFlow combines succession ordering with an item transfer.
type SuccessionItemFlow struct {
	Succession
	ItemTypeID string `json:"itemTypeId,omitempty"`
}

func NewSuccessionItemFlow(id, name string) *SuccessionItemFlow {
	return &SuccessionItemFlow{Succession: Succession{Connector: Connector{Feature: Feature{Type: Type{ElementBase: newBase(id, name)}}}}}
}

func (f *SuccessionItemFlow) ElementKind() Kind { return KindSuccessionItemFlow }
