package model

import "github.com/shopspring/decimal"

// Bounds on the terms the service will price.
const (
	MaxTenureMonths = 480
)

// MaxAnnualRatePercent caps the annual interest rate accepted on requests.
var MaxAnnualRatePercent = decimal.NewFromInt(100)
