package reservation

// StaffChoice is either Assigned or Unassigned.
type StaffChoice interface {
	isStaffChoice()
}

type Assigned struct {
	StaffID uint
}

// Unassigned means the customer has no staff preference.
type Unassigned struct{}

func (Assigned) isStaffChoice()   {}
func (Unassigned) isStaffChoice() {}

func ChoiceFromID(id *uint) StaffChoice {
	if id == nil || *id == 0 {
		return Unassigned{}
	}
	return Assigned{StaffID: *id}
}

// StaffIDOf returns the column value stored for a choice.
func StaffIDOf(c StaffChoice) *uint {
	switch v := c.(type) {
	case Assigned:
		id := v.StaffID
		return &id
	default:
		return nil
	}
}
