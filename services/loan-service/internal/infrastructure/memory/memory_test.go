package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loanflow/loanflow/services/loan-service/internal/domain/model"
	"github.com/loanflow/loanflow/services/loan-service/internal/domain/valueobject"
)

var now = time.Date(2025, time.March, 14, 10, 30, 0, 0, time.UTC)

func TestSeededCustomerRepository(t *testing.T) {
	repo := NewSeededCustomerRepository()
	ctx := context.Background()

	customers, err := repo.ListCustomers(ctx)
	require.NoError(t, err)
	require.Len(t, customers, 10)
	assert.Equal(t, "CUST001", customers[0].CustomerID)
	assert.Equal(t, "CUST010", customers[9].CustomerID)

	c, found, err := repo.FindCustomer(ctx, "CUST007")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Sunita Ghosh", c.Name)
	assert.True(t, c.ExistingLoan)
	assert.True(t, c.ExistingLoanAmount.Equal(decimal.NewFromInt(500000)))

	c, found, err = repo.FindCustomer(ctx, "CUST006")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, valueobject.EmploymentSelfEmployed, c.EmploymentType)

	_, found, err = repo.FindCustomer(ctx, "CUST999")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCustomerRepository_CrmAndCredit(t *testing.T) {
	repo := NewSeededCustomerRepository()
	ctx := context.Background()

	rec, found, err := repo.FindCrmRecord(ctx, "CUST003")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "560038", rec.Pincode)
	assert.Equal(t, "Bengaluru", rec.City)

	_, found, err = repo.FindCrmRecord(ctx, "CUST404")
	require.NoError(t, err)
	assert.False(t, found)

	report, found, err := repo.FindCreditReport(ctx, "CUST002")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 680, report.Score)
	assert.True(t, report.PreApprovedLimit.Equal(decimal.NewFromInt(100000)))

	_, found, err = repo.FindCreditReport(ctx, "CUST404")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCustomerRepository_Offers(t *testing.T) {
	repo := NewSeededCustomerRepository()
	ctx := context.Background()

	offers, err := repo.ListOffers(ctx)
	require.NoError(t, err)
	assert.Len(t, offers, 10)

	mine, err := repo.ListOffersByCustomer(ctx, "CUST008")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "OFF008", mine[0].OfferID)
	assert.Equal(t, valueobject.CreditBandExcellent, mine[0].CreditBand)
	assert.Equal(t, "9.75", mine[0].InterestRate.String())

	none, err := repo.ListOffersByCustomer(ctx, "CUST404")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	// Callers cannot mutate the stored offers.
	offers[0].OfferID = "changed"
	again, err := repo.ListOffers(ctx)
	require.NoError(t, err)
	assert.Equal(t, "OFF001", again[0].OfferID)
}

func newEntry(t *testing.T, customerID, reason string) model.AuditLogEntry {
	t.Helper()
	e, err := model.NewAuditLogEntry(customerID, model.ActionKycVerification, valueobject.DecisionPending, reason, nil, now)
	require.NoError(t, err)
	return e
}

func TestAuditLog_AppendAssignsIDsAndKeepsOrder(t *testing.T) {
	log := NewAuditLog()
	ctx := context.Background()

	ids := make(map[string]struct{})
	for i := range 5 {
		stored, err := log.Append(ctx, newEntry(t, "CUST001", fmt.Sprintf("entry %d", i)))
		require.NoError(t, err)
		require.NotEmpty(t, stored.ID())
		ids[stored.ID()] = struct{}{}
	}
	_, err := log.Append(ctx, newEntry(t, "CUST002", "other"))
	require.NoError(t, err)

	assert.Len(t, ids, 5)
	entries, err := log.ListByCustomer(ctx, "CUST001")
	require.NoError(t, err)
	require.Len(t, entries, 5)
	for i, e := range entries {
		assert.Equal(t, fmt.Sprintf("entry %d", i), e.Reason())
	}

	empty, err := log.ListByCustomer(ctx, "CUST404")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestAuditLog_ConcurrentAppends(t *testing.T) {
	log := NewAuditLog()
	ctx := context.Background()

	const writers, perWriter = 8, 50
	var wg sync.WaitGroup
	for w := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			customerID := fmt.Sprintf("CUST%03d", w)
			for i := range perWriter {
				_, err := log.Append(ctx, newEntry(t, customerID, fmt.Sprintf("%d", i)))
				assert.NoError(t, err)
				_, err = log.ListByCustomer(ctx, customerID)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, writers*perWriter, log.Len())
	entries, err := log.ListByCustomer(ctx, "CUST003")
	require.NoError(t, err)
	require.Len(t, entries, perWriter)
	for i, e := range entries {
		assert.Equal(t, fmt.Sprintf("%d", i), e.Reason())
	}
}

func TestSanctionLetterRepository(t *testing.T) {
	repo := NewSanctionLetterRepository()
	ctx := context.Background()

	letter, err := model.NewSanctionLetter("SNCT1", "CUST001", decimal.NewFromInt(100000), 12,
		decimal.NewFromInt(10), decimal.NewFromInt(8792), "", now)
	require.NoError(t, err)

	require.NoError(t, repo.Save(ctx, letter))
	assert.Error(t, repo.Save(ctx, letter))

	got, found, err := repo.FindByReference(ctx, "SNCT1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "CUST001", got.CustomerID())

	_, found, err = repo.FindByReference(ctx, "SNCT2")
	require.NoError(t, err)
	assert.False(t, found)
}

func ruleNames(rules []model.BusinessRule) []string {
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.Name
	}
	return names
}

func TestRuleRepository_SeededOrder(t *testing.T) {
	rules, err := NewSeededRuleRepository().List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Min Credit Score", "EMI Income Ratio", "Existing Loan Check"}, ruleNames(rules))
}

func TestRuleRepository_CreateUpdateDelete(t *testing.T) {
	repo := NewSeededRuleRepository()
	ctx := context.Background()

	salaried := model.BusinessRule{
		Name:      "Salaried Only",
		Type:      valueobject.RuleEmploymentType,
		Operator:  valueobject.OpEqual,
		Threshold: "Salaried",
		Action:    valueobject.DecisionApprove,
		Priority:  95,
		Enabled:   true,
	}
	require.NoError(t, repo.Create(ctx, salaried))
	err := repo.Create(ctx, salaried)
	assert.ErrorIs(t, err, model.ErrRuleExists)

	rules, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Min Credit Score", "Salaried Only", "EMI Income Ratio", "Existing Loan Check"}, ruleNames(rules))

	updated, err := repo.Update(ctx, "Existing Loan Check", func(r model.BusinessRule) (model.BusinessRule, error) {
		r.Priority = 200
		return r, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 200, updated.Priority)

	rules, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Existing Loan Check", rules[0].Name)

	_, err = repo.Update(ctx, "Salaried Only", func(r model.BusinessRule) (model.BusinessRule, error) {
		r.Name = "Min Credit Score"
		return r, nil
	})
	assert.ErrorIs(t, err, model.ErrRuleExists)

	_, err = repo.Update(ctx, "Nope", func(r model.BusinessRule) (model.BusinessRule, error) { return r, nil })
	assert.ErrorIs(t, err, model.ErrRuleNotFound)

	require.NoError(t, repo.Delete(ctx, "Salaried Only"))
	assert.ErrorIs(t, repo.Delete(ctx, "Salaried Only"), model.ErrRuleNotFound)

	rules, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, rules, 3)
}

func TestRuleRepository_ListReturnsCopy(t *testing.T) {
	repo := NewSeededRuleRepository()
	ctx := context.Background()

	rules, err := repo.List(ctx)
	require.NoError(t, err)
	rules[0].Name = "mutated"

	again, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Min Credit Score", again[0].Name)
}

func TestSeededProductCatalog(t *testing.T) {
	products, err := NewSeededProductCatalog().ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 25)

	byBank := map[string]int{}
	for _, p := range products {
		byBank[p.BankName]++
		assert.NotEmpty(t, p.Logo, p.ID)
	}
	assert.Equal(t, map[string]int{
		"HDFC Bank": 5, "ICICI Bank": 5, "SBI": 5, "Axis Bank": 5, "Kotak Mahindra Bank": 5,
	}, byBank)

	first := products[0]
	assert.Equal(t, "hdfc-pl-001", first.ID)
	require.NotNil(t, first.MaxAmount)
	assert.True(t, first.MaxAmount.Equal(decimal.NewFromInt(4000000)))

	car := products[4]
	assert.Equal(t, "hdfc-al-005", car.ID)
	assert.Nil(t, car.MaxAmount)
	assert.Equal(t, "100% On-Road Price", car.MaxAmountNote)
}
