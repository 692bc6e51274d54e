package memory

import (
	"context"
	"slices"

	"github.com/loanflow/loanflow/services/loan-service/internal/domain/model"
	"github.com/loanflow/loanflow/services/loan-service/internal/domain/port"
)

var _ port.ProductCatalog = (*ProductCatalog)(nil)

// ProductCatalog serves a fixed product list. It is immutable after
// construction.
type ProductCatalog struct {
	products []model.LoanProduct
}

// NewProductCatalog returns a catalog over products.
func NewProductCatalog(products []model.LoanProduct) *ProductCatalog {
	return &ProductCatalog{products: slices.Clone(products)}
}

// NewSeededProductCatalog returns the partner-bank catalog.
func NewSeededProductCatalog() *ProductCatalog {
	return NewProductCatalog(SeedProducts())
}

func (c *ProductCatalog) ListProducts(_ context.Context) ([]model.LoanProduct, error) {
	return slices.Clone(c.products), nil
}

var bankLogos = map[string]string{
	"HDFC Bank":           "https://logo.clearbit.com/hdfcbank.com",
	"ICICI Bank":          "https://logo.clearbit.com/icicibank.com",
	"SBI":                 "https://logo.clearbit.com/sbi.co.in",
	"Axis Bank":           "https://logo.clearbit.com/axisbank.com",
	"Kotak Mahindra Bank": "https://logo.clearbit.com/kotak.com",
}

type productSpec struct {
	id, bank, loanType, name, rate, fee string
	maxAmount                           int64
	maxNote                             string
	tenure, category                    string
	features                            []string
}

func (s productSpec) build() model.LoanProduct {
	p := model.LoanProduct{
		ID:            s.id,
		BankName:      s.bank,
		LoanType:      s.loanType,
		ProductName:   s.name,
		InterestRate:  s.rate,
		ProcessingFee: s.fee,
		MaxAmountNote: s.maxNote,
		TenureRange:   s.tenure,
		Features:      s.features,
		Logo:          bankLogos[s.bank],
		Category:      s.category,
	}
	if s.maxNote == "" {
		amount := rupees(s.maxAmount)
		p.MaxAmount = &amount
	}
	return p
}

// SeedProducts returns five products from each of five partner banks.
func SeedProducts() []model.LoanProduct {
	specs := []productSpec{
		{id: "hdfc-pl-001", bank: "HDFC Bank", loanType: "Personal Loan", name: "HDFC Xpress Personal Loan",
			rate: "10.50% - 15.75%", fee: "Up to 2.50%", maxAmount: 4000000, tenure: "12 - 60 months", category: "Personal",
			features: []string{"Disbursal in 10 seconds", "No documentation for pre-approved", "Flexible tenure"}},
		{id: "hdfc-hl-002", bank: "HDFC Bank", loanType: "Home Loan", name: "HDFC Reach Home Loan",
			rate: "8.50% - 9.40%", fee: "0.50%", maxAmount: 10000000, tenure: "Up to 30 years", category: "Home",
			features: []string{"For micro-entrepreneurs", "Minimal income docs", "Quick processing"}},
		{id: "hdfc-cd-003", bank: "HDFC Bank", loanType: "Consumer Durable", name: "EasyEMI Consumer Loan",
			rate: "12.00% - 16.00%", fee: "Nil", maxAmount: 500000, tenure: "3 - 24 months", category: "Consumer Durable",
			features: []string{"No Cost EMI options", "Instant approval at store", "Minimal paperwork"}},
		{id: "hdfc-bl-004", bank: "HDFC Bank", loanType: "Business Loan", name: "Business Growth Loan",
			rate: "11.90% - 16.25%", fee: "2.00%", maxAmount: 7500000, tenure: "12 - 48 months", category: "Business",
			features: []string{"Collateral free", "Dropline Overdraft facility", "Quick disbursal"}},
		{id: "hdfc-al-005", bank: "HDFC Bank", loanType: "Auto Loan", name: "New Car Loan",
			rate: "8.90% - 10.50%", fee: "0.50%", maxNote: "100% On-Road Price", tenure: "12 - 84 months", category: "Vehicle",
			features: []string{"100% funding", "30 minute approval", "Fixed interest rate"}},

		{id: "icici-pl-001", bank: "ICICI Bank", loanType: "Personal Loan", name: "ICICI Instant PL",
			rate: "10.75% onwards", fee: "Up to 2.25%", maxAmount: 5000000, tenure: "12 - 72 months", category: "Personal",
			features: []string{"3 second disbursal", "No physical docs", "Fixed rate"}},
		{id: "icici-hl-002", bank: "ICICI Bank", loanType: "Home Loan", name: "ICICI Pratham",
			rate: "8.75% - 9.60%", fee: "0.50% - 1.00%", maxAmount: 5000000, tenure: "Up to 20 years", category: "Home",
			features: []string{"Affordable housing", "Subsidized rates", "Easy eligibility"}},
		{id: "icici-gl-003", bank: "ICICI Bank", loanType: "Gold Loan", name: "Insta Gold Loan",
			rate: "9.50% - 16.00%", fee: "1.00%", maxAmount: 2000000, tenure: "6 - 12 months", category: "Gold",
			features: []string{"30 min disbursal", "High per gram rate", "Safety locker"}},
		{id: "icici-el-004", bank: "ICICI Bank", loanType: "Education Loan", name: "iSmart Education Loan",
			rate: "9.50% - 13.00%", fee: "1.00%", maxAmount: 10000000, tenure: "Up to 15 years", category: "Education",
			features: []string{"Cover tuition + living", "Pre-visa disbursal", "Tax benefit"}},
		{id: "icici-ml-005", bank: "ICICI Bank", loanType: "Micro Loan", name: "PayLater",
			rate: "0% for 30 days", fee: "Nil", maxAmount: 50000, tenure: "30 - 45 days", category: "Micro",
			features: []string{"Instant digital credit", "Shop now pay later", "One click payment"}},

		{id: "sbi-pl-001", bank: "SBI", loanType: "Personal Loan", name: "Xpress Credit",
			rate: "11.00% - 14.00%", fee: "Nil to 1.00%", maxAmount: 2000000, tenure: "6 - 72 months", category: "Personal",
			features: []string{"Low interest rates", "Daily reducing balance", "Zero prepayment penalty"}},
		{id: "sbi-hl-002", bank: "SBI", loanType: "Home Loan", name: "SBI Regular Home Loan",
			rate: "8.40% onwards", fee: "0.35%", maxAmount: 100000000, tenure: "Up to 30 years", category: "Home",
			features: []string{"Lowest interest rates", "No hidden charges", "Overdraft facility"}},
		{id: "sbi-el-003", bank: "SBI", loanType: "Education Loan", name: "Scholar Loan",
			rate: "8.15% - 9.50%", fee: "Nil", maxAmount: 4000000, tenure: "Up to 15 years", category: "Education",
			features: []string{"For premier institutions", "100% financing", "Quick sanction"}},
		{id: "sbi-vl-004", bank: "SBI", loanType: "Vehicle Loan", name: "SBI Car Loan",
			rate: "8.65% - 9.50%", fee: "Nil", maxNote: "90% On-Road Price", tenure: "Up to 7 years", category: "Vehicle",
			features: []string{"Financing on-road price", "Longest tenure", "Lowest EMI"}},
		{id: "sbi-mudra-005", bank: "SBI", loanType: "Business Loan", name: "e-Mudra Loan",
			rate: "9.75% onwards", fee: "Nil", maxAmount: 50000, tenure: "Up to 5 years", category: "Micro",
			features: []string{"Instant micro loan", "For small business", "No collateral"}},

		{id: "axis-pl-001", bank: "Axis Bank", loanType: "Personal Loan", name: "24x7 Personal Loan",
			rate: "10.49% onwards", fee: "Up to 2%", maxAmount: 4000000, tenure: "12 - 60 months", category: "Personal",
			features: []string{"Instant credit", "Choose your EMI", "No foreclosure charges"}},
		{id: "axis-hl-002", bank: "Axis Bank", loanType: "Home Loan", name: "Asha Home Loan",
			rate: "9.00% - 10.50%", fee: "1.00%", maxAmount: 3500000, tenure: "Up to 30 years", category: "Home",
			features: []string{"For mixed income", "12 EMI waiver", "Small ticket size"}},
		{id: "axis-bl-003", bank: "Axis Bank", loanType: "Business Loan", name: "Growth Business Loan",
			rate: "14.25% - 18.00%", fee: "2.00%", maxAmount: 5000000, tenure: "12 - 36 months", category: "Business",
			features: []string{"Collateral free", "Minimal documentation", "Quick approval"}},
		{id: "axis-lap-004", bank: "Axis Bank", loanType: "Loan Against Property", name: "Loan Against Property",
			rate: "9.50% - 11.00%", fee: "1.00%", maxAmount: 50000000, tenure: "Up to 15 years", category: "Mortgage",
			features: []string{"Unlock property value", "High loan amount", "Flexible usage"}},
		{id: "axis-sl-005", bank: "Axis Bank", loanType: "Small Loan", name: "Small Ticket PL",
			rate: "13.00% onwards", fee: "500", maxAmount: 100000, tenure: "3 - 12 months", category: "Micro",
			features: []string{"Instant small cash", "Paperless", "Emergency funds"}},

		{id: "kotak-pl-001", bank: "Kotak Mahindra Bank", loanType: "Personal Loan", name: "Kotak Personal Loan",
			rate: "10.99% onwards", fee: "Up to 3%", maxAmount: 2500000, tenure: "12 - 60 months", category: "Personal",
			features: []string{"Part prepayment allowed", "Instant approval", "Doorstep service"}},
		{id: "kotak-hl-002", bank: "Kotak Mahindra Bank", loanType: "Home Loan", name: "Kotak Home Loan",
			rate: "8.70% onwards", fee: "Nil", maxAmount: 100000000, tenure: "Up to 20 years", category: "Home",
			features: []string{"Digital sanction", "Balance transfer special", "Nil processing fee"}},
		{id: "kotak-bl-003", bank: "Kotak Mahindra Bank", loanType: "Business Loan", name: "Business Loan",
			rate: "15.00% onwards", fee: "2.00%", maxAmount: 7500000, tenure: "12 - 48 months", category: "Business",
			features: []string{"No collateral", "Flexible repayment", "Quick disbursal"}},
		{id: "kotak-wc-004", bank: "Kotak Mahindra Bank", loanType: "Working Capital", name: "Working Capital Loan",
			rate: "10.00% - 14.00%", fee: "Custom", maxAmount: 20000000, tenure: "12 months renewable", category: "Business",
			features: []string{"Cash credit", "Overdraft", "Export credit"}},
		{id: "kotak-cd-005", bank: "Kotak Mahindra Bank", loanType: "Consumer Durable", name: "Smart EMI",
			rate: "14.00% - 18.00%", fee: "199", maxAmount: 300000, tenure: "3 - 18 months", category: "Consumer Durable",
			features: []string{"Debit card EMI", "No documentation", "Instant convert"}},
	}

	products := make([]model.LoanProduct, 0, len(specs))
	for _, s := range specs {
		products = append(products, s.build())
	}
	return products
}
