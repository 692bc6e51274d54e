package dto

import "github.com/loanflow/loanflow/services/loan-service/internal/domain/model"

// FromAuditLogEntry maps a stored audit entry.
func FromAuditLogEntry(e model.AuditLogEntry) AuditLogEntryResponse {
	return AuditLogEntryResponse{
		ID:         e.ID(),
		CustomerID: e.CustomerID(),
		Timestamp:  e.Timestamp(),
		Action:     e.Action(),
		Decision:   e.Decision().String(),
		Reason:     e.Reason(),
		Metadata:   e.Metadata(),
	}
}

// FromCustomer maps a customer profile.
func FromCustomer(c model.CustomerProfile) CustomerResponse {
	return CustomerResponse{
		CustomerID:         c.CustomerID,
		Name:               c.Name,
		Age:                c.Age,
		City:               c.City,
		Phone:              c.Phone,
		Email:              c.Email,
		EmploymentType:     c.EmploymentType.String(),
		MonthlyNetSalary:   c.MonthlyNetSalary,
		CreditScore:        c.CreditScore,
		PreApprovedLimit:   c.PreApprovedLimit,
		ExistingLoan:       c.ExistingLoan,
		ExistingLoanAmount: c.ExistingLoanAmount,
	}
}

// FromCrmRecord maps a CRM identity record.
func FromCrmRecord(r model.CrmIdentityRecord) CrmRecordResponse {
	return CrmRecordResponse{
		CustomerID: r.CustomerID,
		Name:       r.Name,
		Phone:      r.Phone,
		Address:    r.Address,
		Pincode:    r.Pincode,
		City:       r.City,
		DOB:        r.DOB,
	}
}

// FromCreditReport maps a credit report.
func FromCreditReport(r model.CreditReport) CreditReportResponse {
	return CreditReportResponse{
		CustomerID:       r.CustomerID,
		Score:            r.Score,
		PreApprovedLimit: r.PreApprovedLimit,
	}
}

// FromLoanOffers maps offers, never returning nil.
func FromLoanOffers(offers []model.LoanOffer) []LoanOfferResponse {
	out := make([]LoanOfferResponse, 0, len(offers))
	for _, o := range offers {
		out = append(out, LoanOfferResponse{
			OfferID:       o.OfferID,
			CustomerID:    o.CustomerID,
			CreditBand:    o.CreditBand.String(),
			MaxAmount:     o.MaxAmount,
			InterestRate:  o.InterestRate,
			TenureMonths:  o.TenureMonths,
			ProcessingFee: o.ProcessingFee,
		})
	}
	return out
}

// FromSanctionLetter maps a sanction letter.
func FromSanctionLetter(l model.SanctionLetter) SanctionLetterResponse {
	return SanctionLetterResponse{
		ReferenceNumber:   l.ReferenceNumber(),
		CustomerID:        l.CustomerID(),
		Amount:            l.Amount(),
		TenureMonths:      l.TenureMonths(),
		AnnualRatePercent: l.AnnualRate(),
		EMI:               l.EMI(),
		TotalPayable:      l.TotalPayable(),
		Signatory:         l.Signatory(),
		GeneratedAt:       l.GeneratedAt(),
	}
}
