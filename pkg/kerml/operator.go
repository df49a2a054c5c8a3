package kerml

// Union is a derived type defined by the ordered union of its operand
// types. Operators are pure data holders: nothing here computes the
// resulting extension, that is an external collaborator's job.
type Union struct {
	Type
	OperandIDs []string `json:"operandIds,omitempty"`
}

func NewUnion(id, name string) *Union {
	return &Union{Type: Type{ElementBase: newBase(id, name)}}
}

func (u *Union) ElementKind() Kind { return KindUnion }

// AddOperand appends an operand id, keeping the list ordered and
// deduplicated.
func (u *Union) AddOperand(id string) {
	u.OperandIDs = appendUnique(u.OperandIDs, id)
}

// RemoveOperand removes an operand id and reports whether it was present.
func (u *Union) RemoveOperand(id string) bool {
	ids, ok := removeID(u.OperandIDs, id)
	u.OperandIDs = ids
	return ok
}

// Intersect is a derived type defined by the ordered intersection of its
// operand types.
type Intersect struct {
	Type
	OperandIDs []string `json:"operandIds,omitempty"`
}

func NewIntersect(id, name string) *Intersect {
	return &Intersect{Type: Type{ElementBase: newBase(id, name)}}
}

func (i *Intersect) ElementKind() Kind { return KindIntersect }

func (i *Intersect) AddOperand(id string) {
	i.OperandIDs = appendUnique(i.OperandIDs, id)
}

func (i *Intersect) RemoveOperand(id string) bool {
	ids, ok := removeID(i.OperandIDs, id)
	i.OperandIDs = ids
	return ok
}

// Difference is a derived type defined by exactly two named operands.
type Difference struct {
	Type
	FirstOperandID  string `json:"firstOperandId,omitempty"`
	SecondOperandID string `json:"secondOperandId,omitempty"`
}

func NewDifference(id, name string) *Difference {
	return &Difference{Type: Type{ElementBase: newBase(id, name)}}
}

func (d *Difference) ElementKind() Kind { return KindDifference }

// UpdateOperands replaces both operands atomically.
func (d *Difference) UpdateOperands(firstID, secondID string) {
	d.FirstOperandID = firstID
	d.SecondOperandID = secondID
}
