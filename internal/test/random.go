// Package test provides fixtures shared by package tests.
package test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/passpkg"
	"github.com/go-petr/pet-ledger/pkg/randompkg"
)

// RandomAccount returns random account with a hashed random password.
func RandomAccount(t *testing.T) domain.Account {
	t.Helper()

	account, _ := RandomAccountWithPassword(t)

	return account
}

// RandomAccountWithPassword returns random account and its plain password.
func RandomAccountWithPassword(t *testing.T) (domain.Account, string) {
	t.Helper()

	password := randompkg.String(10)

	hashedPassword, err := passpkg.Hash(password)
	if err != nil {
		t.Fatalf("passpkg.Hash(%v) failed: %v", password, err)
	}

	account := domain.Account{
		Number:       randompkg.AccountNumber(),
		HolderName:   randompkg.Owner(),
		PasswordHash: hashedPassword,
		Balance:      decimal.RequireFromString(randompkg.MoneyAmountBetween(100, 10_000)),
		CreatedAt:    time.Now().Truncate(time.Second).UTC(),
	}

	return account, password
}
