package kerml

// Behavior is a class whose performance is an ordered sequence of steps,
// referenced by id.
type Behavior struct {
	Class
	StepIDs []string `json:"stepIds,omitempty"`
}

func NewBehavior(id, name string) *Behavior {
	return &Behavior{Class: Class{Classifier: Classifier{Type: Type{ElementBase: newBase(id, name)}}}}
}

func (b *Behavior) ElementKind() Kind { return KindBehavior }

// AddStep appends a step id, deduplicating repeats while preserving order.
func (b *Behavior) AddStep(id string) {
	b.StepIDs = appendUnique(b.StepIDs, id)
}

// RemoveStep removes a step id and reports whether it was present.
func (b *Behavior) RemoveStep(id string) bool {
	ids, ok := removeID(b.StepIDs, id)
	b.StepIDs = ids
	return ok
}

// Step is a feature representing one usage of a behavior inside another
// behavior; the performed behavior is the step's TypeID.
type Step struct {
	Feature
}

func NewStep(id, name string) *Step {
	return &Step{Feature: Feature{Type: Type{ElementBase: newBase(id, name)}}}
}

func (s *Step) ElementKind() Kind { return KindStep }

// Function is a behavior with a result, referenced by id.
type Function struct {
	Behavior
	ResultID string `json:"resultId,omitempty"`
}

func NewFunction(id, name string) *Function {
	return &Function{Behavior: Behavior{Class: Class{Classifier: Classifier{Type: Type{ElementBase: newBase(id, name)}}}}}
}

func (f *Function) ElementKind() Kind { return KindFunction }

// Expression is a function with a body carried as free text.
type Expression struct {
	Function
	Body string `json:"body,omitempty"`
}

func NewExpression(id, name string) *Expression {
	return &Expression{Function: Function{Behavior: Behavior{Class: Class{Classifier: Classifier{Type: Type{ElementBase: newBase(id, name)}}}}}}
}

func (e *Expression) ElementKind() Kind { return KindExpression }

// Predicate is a boolean-valued expression.
type Predicate struct {
	Expression
}

func NewPredicate(id, name string) *Predicate {
	return &Predicate{Expression: Expression{Function: Function{Behavior: Behavior{Class: Class{Classifier: Classifier{Type: Type{ElementBase: newBase(id, name)}}}}}}}
}

func (p *Predicate) ElementKind() Kind { return KindPredicate }

// Interaction is a behavior performed jointly by its participants.
type Interaction struct {
	Behavior
	ParticipantIDs []string `json:"participantIds,omitempty"`
}

func NewInteraction(id, name string) *Interaction {
	return &Interaction{Behavior: Behavior{Class: Class{Classifier: Classifier{Type: Type{ElementBase: newBase(id, name)}}}}}
}

func (i *Interaction) ElementKind() Kind { return KindInteraction }

// AddParticipant appends a participant id, deduplicating repeats.
func (i *Interaction) AddParticipant(id string) {
	i.ParticipantIDs = appendUnique(i.ParticipantIDs, id)
}

// RemoveParticipant removes a participant id and reports whether it was
// present.
func (i *Interaction) RemoveParticipant(id string) bool {
	ids, ok := removeID(i.ParticipantIDs, id)
	i.ParticipantIDs = ids
	return ok
}
