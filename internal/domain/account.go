// Package domain provides defenitions of all entities.
package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountAlreadyExists indicates that the account with the given number already exists.
	ErrAccountAlreadyExists = errors.New("account number already exists")
	// ErrWrongPassword indicates the wrong password for the given account.
	ErrWrongPassword = errors.New("invalid password")
	// ErrInvalidInput indicates that the account params failed validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidAmount indicates that the amount is not a number.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrNegativeInitialDeposit indicates negative initial deposit.
	ErrNegativeInitialDeposit = errors.New("initial deposit cannot be negative")
	// ErrNonPositiveAmount indicates zero or negative deposit or withdrawal amount.
	ErrNonPositiveAmount = errors.New("amount must be positive")
	// ErrInsufficientBalance indicates that the account does not have sufficient balance.
	ErrInsufficientBalance = errors.New("insufficient funds")
)

// Account holds holder credentials and balance.
//
// Number is the store key and is not part of the persisted record.
type Account struct {
	Number       string          `json:"-"`
	HolderName   string          `json:"holder_name"`
	PasswordHash string          `json:"password_hash"`
	Balance      decimal.Decimal `json:"balance"`
	CreatedAt    time.Time       `json:"created_at"`
}

// AccountWithoutPassword is Account data excluding password data.
type AccountWithoutPassword struct {
	Number     string          `json:"number"`
	HolderName string          `json:"holder_name"`
	Balance    decimal.Decimal `json:"balance"`
	CreatedAt  time.Time       `json:"created_at"`
}

// WithoutPassword returns the account with removed sensitive data.
func (a Account) WithoutPassword() AccountWithoutPassword {
	return AccountWithoutPassword{
		Number:     a.Number,
		HolderName: a.HolderName,
		Balance:    a.Balance,
		CreatedAt:  a.CreatedAt,
	}
}

// CreateAccountParams is the input data to create an account.
type CreateAccountParams struct {
	Number         string `validate:"required,max=64"`
	HolderName     string `validate:"required,max=128"`
	Password       string `validate:"required,max=72"`
	InitialDeposit string
}

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

// Store maps account numbers to accounts.
type Store map[string]Account
