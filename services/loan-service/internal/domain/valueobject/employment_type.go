package valueobject

import "fmt"

// EmploymentType classifies how a customer earns income.
type EmploymentType struct {
	value string
}

var (
	EmploymentSalaried     = EmploymentType{value: "Salaried"}
	EmploymentSelfEmployed = EmploymentType{value: "Self-Employed"}
)

// NewEmploymentType parses "Salaried" or "Self-Employed".
func NewEmploymentType(s string) (EmploymentType, error) {
	switch s {
	case EmploymentSalaried.value:
		return EmploymentSalaried, nil
	case EmploymentSelfEmployed.value:
		return EmploymentSelfEmployed, nil
	default:
		return EmploymentType{}, fmt.Errorf("invalid employment type: %q", s)
	}
}

func (e EmploymentType) String() string { return e.value }

func (e EmploymentType) Equal(other EmploymentType) bool { return e.value == other.value }

// MarshalText renders the employment type for JSON payloads.
func (e EmploymentType) MarshalText() ([]byte, error) { return []byte(e.value), nil }
