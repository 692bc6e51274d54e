package valueobject

import "fmt"

// CreditBand is the risk tier attached to a pre-approved offer.
type CreditBand struct {
	value string
}

const (
	creditBandExcellent = "excellent"
	creditBandGood      = "good"
	creditBandFair      = "fair"
	creditBandPoor      = "poor"
)

var (
	CreditBandExcellent = CreditBand{value: creditBandExcellent}
	CreditBandGood      = CreditBand{value: creditBandGood}
	CreditBandFair      = CreditBand{value: creditBandFair}
	CreditBandPoor      = CreditBand{value: creditBandPoor}
)

var validCreditBands = map[string]CreditBand{
	creditBandExcellent: CreditBandExcellent,
	creditBandGood:      CreditBandGood,
	creditBandFair:      CreditBandFair,
	creditBandPoor:      CreditBandPoor,
}

// NewCreditBand creates a CreditBand from a raw string.
func NewCreditBand(s string) (CreditBand, error) {
	v, ok := validCreditBands[s]
	if !ok {
		return CreditBand{}, fmt.Errorf("invalid credit band: %q", s)
	}
	return v, nil
}

func (b CreditBand) String() string { return b.value }

func (b CreditBand) Equal(other CreditBand) bool { return b.value == other.value }

// MarshalText renders the band for JSON payloads.
func (b CreditBand) MarshalText() ([]byte, error) { return []byte(b.value), nil }
