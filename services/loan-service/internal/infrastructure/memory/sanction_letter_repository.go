package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/loanflow/loanflow/services/loan-service/internal/domain/model"
)

// SanctionLetterRepository keeps issued letters keyed by reference number.
type SanctionLetterRepository struct {
	mu      sync.RWMutex
	letters map[string]model.SanctionLetter
}

// NewSanctionLetterRepository returns an empty repository.
func NewSanctionLetterRepository() *SanctionLetterRepository {
	return &SanctionLetterRepository{letters: make(map[string]model.SanctionLetter)}
}

// Save stores a letter. Reference numbers are unique; saving a duplicate is
// an error.
func (r *SanctionLetterRepository) Save(_ context.Context, letter model.SanctionLetter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.letters[letter.ReferenceNumber()]; exists {
		return fmt.Errorf("sanction letter %s already exists", letter.ReferenceNumber())
	}
	r.letters[letter.ReferenceNumber()] = letter
	return nil
}

func (r *SanctionLetterRepository) FindByReference(_ context.Context, referenceNumber string) (model.SanctionLetter, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.letters[referenceNumber]
	return l, ok, nil
}
