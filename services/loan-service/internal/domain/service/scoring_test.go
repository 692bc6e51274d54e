package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestScoreApplication(t *testing.T) {
	s := ScoreApplication(900, decimal.NewFromInt(100000), decimal.NewFromInt(100000), decimal.NewFromInt(200000))

	assert.InDelta(t, 1.0, s.Credit, 1e-9)
	assert.InDelta(t, 0.5, s.Income, 1e-9)
	assert.InDelta(t, 0.5, s.LoanToLimit, 1e-9)
	assert.InDelta(t, 0.75, s.Score, 1e-9)
}

func TestScoreApplication_CapsFactors(t *testing.T) {
	s := ScoreApplication(950, decimal.NewFromInt(500000), decimal.NewFromInt(300000), decimal.NewFromInt(100000))

	assert.InDelta(t, 1.0, s.Credit, 1e-9)
	assert.InDelta(t, 1.0, s.Income, 1e-9)
	assert.InDelta(t, 1.0, s.LoanToLimit, 1e-9)
	assert.InDelta(t, 1.0, s.Score, 1e-9)
}

func TestScoreApplication_UnknownInputs(t *testing.T) {
	s := ScoreApplication(0, decimal.Zero, decimal.Zero, decimal.Zero)

	assert.Zero(t, s.Credit)
	assert.Zero(t, s.Income)
	assert.InDelta(t, 1.0, s.LoanToLimit, 1e-9)
	assert.InDelta(t, 0.2, s.Score, 1e-9)
}
