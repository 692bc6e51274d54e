package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// Decision – immutable value object
// ---------------------------------------------------------------------------

// Decision is the outcome of an underwriting evaluation.
type Decision struct {
	value string
}

const (
	decisionApprove = "APPROVE"
	decisionReject  = "REJECT"
	decisionPending = "PENDING"
)

var (
	DecisionApprove = Decision{value: decisionApprove}
	DecisionReject  = Decision{value: decisionReject}
	DecisionPending = Decision{value: decisionPending}
)

var validDecisions = map[string]Decision{
	decisionApprove: DecisionApprove,
	decisionReject:  DecisionReject,
	decisionPending: DecisionPending,
}

// NewDecision creates a Decision from a raw string.
func NewDecision(s string) (Decision, error) {
	v, ok := validDecisions[s]
	if !ok {
		return Decision{}, fmt.Errorf("invalid decision: %q", s)
	}
	return v, nil
}

// String returns the string representation of the decision.
func (d Decision) String() string { return d.value }

// IsZero returns true if the decision has not been initialised.
func (d Decision) IsZero() bool { return d.value == "" }

// Equal returns true when both decisions carry the same value.
func (d Decision) Equal(other Decision) bool { return d.value == other.value }
