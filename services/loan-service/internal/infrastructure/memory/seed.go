package memory

import (
	"github.com/shopspring/decimal"

	"github.com/loanflow/loanflow/services/loan-service/internal/domain/model"
	"github.com/loanflow/loanflow/services/loan-service/internal/domain/valueobject"
)

var (
	salaried     = valueobject.EmploymentSalaried
	selfEmployed = valueobject.EmploymentSelfEmployed
)

func rupees(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func rate(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// SeedCustomers returns the synthetic customer book.
func SeedCustomers() []model.CustomerProfile {
	return []model.CustomerProfile{
		{CustomerID: "CUST001", Name: "Anita Verma", Age: 29, City: "Delhi", Phone: "+91-9810000001", Email: "anita.verma@example.com",
			EmploymentType: salaried, MonthlyNetSalary: rupees(65000), CreditScore: 720, PreApprovedLimit: rupees(150000)},
		{CustomerID: "CUST002", Name: "Rahul Mehra", Age: 35, City: "Mumbai", Phone: "+91-9810000002", Email: "rahul.mehra@example.com",
			EmploymentType: salaried, MonthlyNetSalary: rupees(85000), CreditScore: 680, PreApprovedLimit: rupees(100000),
			ExistingLoan: true, ExistingLoanAmount: rupees(250000)},
		{CustomerID: "CUST003", Name: "Sneha Kapoor", Age: 42, City: "Bengaluru", Phone: "+91-9810000003", Email: "sneha.kapoor@example.com",
			EmploymentType: selfEmployed, MonthlyNetSalary: rupees(120000), CreditScore: 790, PreApprovedLimit: rupees(200000)},
		{CustomerID: "CUST004", Name: "Prakash Singh", Age: 31, City: "Chandigarh", Phone: "+91-9810000004", Email: "prakash.singh@example.com",
			EmploymentType: salaried, MonthlyNetSalary: rupees(40000), CreditScore: 695, PreApprovedLimit: rupees(90000)},
		{CustomerID: "CUST005", Name: "Meera Nair", Age: 27, City: "Hyderabad", Phone: "+91-9810000005", Email: "meera.nair@example.com",
			EmploymentType: salaried, MonthlyNetSalary: rupees(50000), CreditScore: 710, PreApprovedLimit: rupees(110000),
			ExistingLoan: true, ExistingLoanAmount: rupees(120000)},
		{CustomerID: "CUST006", Name: "Aditya Rao", Age: 38, City: "Pune", Phone: "+91-9810000006", Email: "aditya.rao@example.com",
			EmploymentType: selfEmployed, MonthlyNetSalary: rupees(95000), CreditScore: 650, PreApprovedLimit: rupees(80000)},
		{CustomerID: "CUST007", Name: "Sunita Ghosh", Age: 45, City: "Kolkata", Phone: "+91-9810000007", Email: "sunita.ghosh@example.com",
			EmploymentType: salaried, MonthlyNetSalary: rupees(180000), CreditScore: 730, PreApprovedLimit: rupees(250000),
			ExistingLoan: true, ExistingLoanAmount: rupees(500000)},
		{CustomerID: "CUST008", Name: "Dev Patel", Age: 30, City: "Ahmedabad", Phone: "+91-9810000008", Email: "dev.patel@example.com",
			EmploymentType: salaried, MonthlyNetSalary: rupees(70000), CreditScore: 770, PreApprovedLimit: rupees(160000)},
		{CustomerID: "CUST009", Name: "Ritika Sharma", Age: 33, City: "Jaipur", Phone: "+91-9810000009", Email: "ritika.sharma@example.com",
			EmploymentType: selfEmployed, MonthlyNetSalary: rupees(55000), CreditScore: 640, PreApprovedLimit: rupees(60000)},
		{CustomerID: "CUST010", Name: "Karan Verma", Age: 28, City: "Noida", Phone: "+91-9810000010", Email: "karan.verma@example.com",
			EmploymentType: salaried, MonthlyNetSalary: rupees(48000), CreditScore: 705, PreApprovedLimit: rupees(95000)},
	}
}

// SeedCrmRecords returns the identity records KYC compares against.
func SeedCrmRecords() []model.CrmIdentityRecord {
	return []model.CrmIdentityRecord{
		{CustomerID: "CUST001", Name: "Anita Verma", Phone: "+91-9810000001", Address: "123 Green Park, South Delhi", Pincode: "110016", City: "Delhi", DOB: "1995-03-15"},
		{CustomerID: "CUST002", Name: "Rahul Mehra", Phone: "+91-9810000002", Address: "456 Bandra West, Mumbai", Pincode: "400050", City: "Mumbai", DOB: "1989-07-22"},
		{CustomerID: "CUST003", Name: "Sneha Kapoor", Phone: "+91-9810000003", Address: "789 Indiranagar, Bangalore", Pincode: "560038", City: "Bengaluru", DOB: "1982-11-08"},
		{CustomerID: "CUST004", Name: "Prakash Singh", Phone: "+91-9810000004", Address: "101 Sector 17, Chandigarh", Pincode: "160017", City: "Chandigarh", DOB: "1993-05-30"},
		{CustomerID: "CUST005", Name: "Meera Nair", Phone: "+91-9810000005", Address: "202 Banjara Hills, Hyderabad", Pincode: "500034", City: "Hyderabad", DOB: "1997-09-12"},
		{CustomerID: "CUST006", Name: "Aditya Rao", Phone: "+91-9810000006", Address: "303 Koregaon Park, Pune", Pincode: "411001", City: "Pune", DOB: "1986-01-25"},
		{CustomerID: "CUST007", Name: "Sunita Ghosh", Phone: "+91-9810000007", Address: "404 Salt Lake, Kolkata", Pincode: "700091", City: "Kolkata", DOB: "1979-04-18"},
		{CustomerID: "CUST008", Name: "Dev Patel", Phone: "+91-9810000008", Address: "505 SG Highway, Ahmedabad", Pincode: "380054", City: "Ahmedabad", DOB: "1994-12-03"},
		{CustomerID: "CUST009", Name: "Ritika Sharma", Phone: "+91-9810000009", Address: "606 C-Scheme, Jaipur", Pincode: "302001", City: "Jaipur", DOB: "1991-08-20"},
		{CustomerID: "CUST010", Name: "Karan Verma", Phone: "+91-9810000010", Address: "707 Sector 62, Noida", Pincode: "201301", City: "Noida", DOB: "1996-06-14"},
	}
}

// SeedOffers returns one pre-approved offer per customer.
func SeedOffers() []model.LoanOffer {
	offer := func(id, customerID string, band valueobject.CreditBand, maxAmount int64, interest string, tenure int, fee int64) model.LoanOffer {
		return model.LoanOffer{
			OfferID:       id,
			CustomerID:    customerID,
			CreditBand:    band,
			MaxAmount:     rupees(maxAmount),
			InterestRate:  rate(interest),
			TenureMonths:  tenure,
			ProcessingFee: rupees(fee),
		}
	}
	return []model.LoanOffer{
		offer("OFF001", "CUST001", valueobject.CreditBandGood, 300000, "10.5", 36, 1000),
		offer("OFF002", "CUST002", valueobject.CreditBandFair, 200000, "12.5", 24, 1500),
		offer("OFF003", "CUST003", valueobject.CreditBandExcellent, 500000, "9.5", 48, 500),
		offer("OFF004", "CUST004", valueobject.CreditBandFair, 180000, "13.0", 24, 1500),
		offer("OFF005", "CUST005", valueobject.CreditBandGood, 220000, "11.0", 36, 1000),
		offer("OFF006", "CUST006", valueobject.CreditBandPoor, 160000, "14.0", 24, 2000),
		offer("OFF007", "CUST007", valueobject.CreditBandGood, 500000, "10.0", 48, 1000),
		offer("OFF008", "CUST008", valueobject.CreditBandExcellent, 320000, "9.75", 36, 500),
		offer("OFF009", "CUST009", valueobject.CreditBandPoor, 120000, "14.5", 24, 2000),
		offer("OFF010", "CUST010", valueobject.CreditBandGood, 190000, "11.5", 36, 1000),
	}
}
