package kerml

// Classifier is a Type with finality and individuality semantics.
type Classifier struct {
	Type
	IsFinal      bool `json:"isFinal,omitempty"`
	IsIndividual bool `json:"isIndividual,omitempty"`
}

// NewClassifier creates a Classifier, assigning an id when none is supplied.
func NewClassifier(id, name string) *Classifier {
	return &Classifier{Type: Type{ElementBase: newBase(id, name)}}
}

func (c *Classifier) ElementKind() Kind { return KindClassifier }

// DataType is a classifier for value types without identity.
type DataType struct {
	Classifier
}

func NewDataType(id, name string) *DataType {
	return &DataType{Classifier: Classifier{Type: Type{ElementBase: newBase(id, name)}}}
}

func (d *DataType) ElementKind() Kind { return KindDataType }

// Class is a classifier for entities with identity.
type Class struct {
	Classifier
}

func NewClass(id, name string) *Class {
	return &Class{Classifier: Classifier{Type: Type{ElementBase: newBase(id, name)}}}
}

func (c *Class) ElementKind() Kind { return KindClass }

// Structure is a class of structured objects.
type Structure struct {
	Class
}

func NewStructure(id, name string) *Structure {
	return &Structure{Class: Class{Classifier: Classifier{Type: Type{ElementBase: newBase(id, name)}}}}
}

func (s *Structure) ElementKind() Kind { return KindStructure }

// Association is a classifier that relates types through its end features.
type Association struct {
	Classifier
}

func NewAssociation(id, name string) *Association {
	return &Association{Classifier: Classifier{Type: Type{ElementBase: newBase(id, name)}}}
}

func (a *Association) ElementKind() Kind { return KindAssociation }
