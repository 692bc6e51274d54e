package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	pgpkg "github.com/loanflow/loanflow/pkg/postgres"
	"github.com/loanflow/loanflow/services/loan-service/internal/domain/model"
	"github.com/loanflow/loanflow/services/loan-service/internal/domain/port"
)

var _ port.SanctionLetterRepository = (*SanctionLetterRepo)(nil)

const (
	insertSanctionLetterSQL = `
		INSERT INTO sanction_letters (
			reference_number, customer_id, amount, tenure_months,
			annual_rate_percent, emi, signatory, generated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	findSanctionLetterSQL = `
		SELECT reference_number, customer_id, amount, tenure_months,
		       annual_rate_percent, emi, signatory, generated_at
		FROM sanction_letters
		WHERE reference_number = $1
	`
)

// SanctionLetterRepo implements port.SanctionLetterRepository.
type SanctionLetterRepo struct {
	db pgpkg.Querier
}

// NewSanctionLetterRepo creates a PostgreSQL-backed sanction letter store.
func NewSanctionLetterRepo(db pgpkg.Querier) *SanctionLetterRepo {
	return &SanctionLetterRepo{db: db}
}

// Save inserts a letter. Reference numbers are unique.
func (r *SanctionLetterRepo) Save(ctx context.Context, l model.SanctionLetter) error {
	_, err := r.db.Exec(ctx, insertSanctionLetterSQL,
		l.ReferenceNumber(), l.CustomerID(), l.Amount().String(), l.TenureMonths(),
		l.AnnualRate().String(), l.EMI().String(), l.Signatory(), l.GeneratedAt(),
	)
	if err != nil {
		return fmt.Errorf("insert sanction letter: %w", err)
	}
	return nil
}

// FindByReference returns found=false when no letter has the reference.
func (r *SanctionLetterRepo) FindByReference(ctx context.Context, referenceNumber string) (model.SanctionLetter, bool, error) {
	var (
		ref, customerID, signatory string
		amount, rate, emi          decimal.Decimal
		tenure                     int
		generatedAt                time.Time
	)
	err := r.db.QueryRow(ctx, findSanctionLetterSQL, referenceNumber).Scan(
		&ref, &customerID, &amount, &tenure, &rate, &emi, &signatory, &generatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.SanctionLetter{}, false, nil
	}
	if err != nil {
		return model.SanctionLetter{}, false, fmt.Errorf("find sanction letter: %w", err)
	}

	letter, err := model.NewSanctionLetter(ref, customerID, amount, tenure, rate, emi, signatory, generatedAt)
	if err != nil {
		return model.SanctionLetter{}, false, fmt.Errorf("sanction letter %s: %w", ref, err)
	}
	return letter, true, nil
}
