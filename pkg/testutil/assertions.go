package testutil

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// AssertDecimal compares a decimal against its expected string form. Values
// are compared numerically, so "7061" matches 7061.00.
func AssertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) bool {
	t.Helper()
	expected, err := decimal.NewFromString(want)
	if !assert.NoError(t, err, "bad expected decimal %q", want) {
		return false
	}
	if expected.Equal(got) {
		return true
	}
	return assert.Fail(t, "decimals differ: want "+expected.String()+", got "+got.String(), msgAndArgs...)
}

// AssertErrorContains checks that err contains the expected substring.
func AssertErrorContains(t *testing.T, err error, expected string) {
	t.Helper()
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), expected)
	}
}
