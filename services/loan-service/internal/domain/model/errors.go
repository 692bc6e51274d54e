package model

import "errors"

var (
	// ErrCustomerNotFound is returned when an operation requires a customer
	// profile that the repository does not hold.
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrSanctionLetterNotFound is returned for an unknown sanction reference.
	ErrSanctionLetterNotFound = errors.New("sanction letter not found")

	// ErrRuleNotFound is returned for an unknown business rule name.
	ErrRuleNotFound = errors.New("rule not found")

	// ErrRuleExists is returned when a rule name is already taken.
	ErrRuleExists = errors.New("rule already exists")

	// ErrInvalidRequest marks request validation failures at the boundary.
	ErrInvalidRequest = errors.New("invalid request")
)
