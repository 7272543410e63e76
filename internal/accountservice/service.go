// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/errorspkg"
	"github.com/go-petr/pet-ledger/pkg/passpkg"
)

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Load(ctx context.Context) (domain.Store, error)
	Save(ctx context.Context, store domain.Store) error
}

// Service facilitates account service layer logic.
type Service struct {
	repo     Repo
	validate *validator.Validate
	now      func() time.Time
}

// New returns account service struct to manage account bussines logic.
func New(ar Repo) *Service {
	return &Service{
		repo:     ar,
		validate: validator.New(),
		now:      time.Now,
	}
}

func validationError(err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	field := ve[0]

	var msg string
	switch field.Tag() {
	case "required":
		msg = "is required"
	case "max":
		msg = "must be at most " + field.Param() + " characters long"
	default:
		msg = "is invalid"
	}

	return fmt.Errorf("%w: %s %s", domain.ErrInvalidInput, field.Field(), msg)
}

// parseAmount converts user input into a decimal amount.
func parseAmount(amount string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return decimal.Zero, domain.ErrInvalidAmount
	}

	return d, nil
}

// Create validates params, hashes the password and stores a new account.
//
// Nothing is written when validation fails or the number is taken.
func (s *Service) Create(ctx context.Context, arg domain.CreateAccountParams) (domain.AccountWithoutPassword, error) {
	l := zerolog.Ctx(ctx)

	var result domain.AccountWithoutPassword

	if err := s.validate.Struct(arg); err != nil {
		l.Info().Err(err).Send()
		return result, validationError(err)
	}

	if len(arg.Password) > domain.MaxPasswordBytes {
		return result, fmt.Errorf("%w: Password must be at most %d bytes long", domain.ErrInvalidInput, domain.MaxPasswordBytes)
	}

	initialDeposit := decimal.Zero
	if strings.TrimSpace(arg.InitialDeposit) != "" {
		d, err := parseAmount(arg.InitialDeposit)
		if err != nil {
			l.Info().Err(err).Str("initial_deposit", arg.InitialDeposit).Send()
			return result, err
		}
		initialDeposit = d
	}

	if initialDeposit.IsNegative() {
		return result, domain.ErrNegativeInitialDeposit
	}

	store, err := s.repo.Load(ctx)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	if _, ok := store[arg.Number]; ok {
		return result, domain.ErrAccountAlreadyExists
	}

	hashedPassword, err := passpkg.Hash(arg.Password)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	account := domain.Account{
		Number:       arg.Number,
		HolderName:   arg.HolderName,
		PasswordHash: hashedPassword,
		Balance:      initialDeposit,
		CreatedAt:    s.now().Truncate(time.Second).UTC(),
	}

	store[account.Number] = account

	if err := s.repo.Save(ctx, store); err != nil {
		l.Error().Stack().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	l.Info().Str("account", account.Number).Msg("account created")

	return account.WithoutPassword(), nil
}

// Login checks the password of the account and returns a session for it.
func (s *Service) Login(ctx context.Context, number, password string) (domain.Session, domain.AccountWithoutPassword, error) {
	l := zerolog.Ctx(ctx)

	var (
		session domain.Session
		result  domain.AccountWithoutPassword
	)

	if number == "" {
		return session, result, domain.ErrAccountNotFound
	}

	store, err := s.repo.Load(ctx)
	if err != nil {
		l.Error().Err(err).Send()
		return session, result, errorspkg.ErrInternal
	}

	account, ok := store[number]
	if !ok {
		return session, result, domain.ErrAccountNotFound
	}

	if err := passpkg.Check(password, account.PasswordHash); err != nil {
		l.Warn().Err(err).Str("account", number).Send()
		return session, result, domain.ErrWrongPassword
	}

	session = domain.NewSession(number)

	l.Info().Str("account", number).Str("session_id", session.ID.String()).Msg("logged in")

	return session, account.WithoutPassword(), nil
}

// Logout makes the session anonymous.
func (s *Service) Logout(ctx context.Context, session *domain.Session) {
	if session.Authenticated() {
		zerolog.Ctx(ctx).Info().
			Str("account", session.AccountNumber).
			Str("session_id", session.ID.String()).
			Msg("logged out")
	}

	session.Clear()
}

// current loads the store and returns it together with the session account.
func (s *Service) current(ctx context.Context, session domain.Session) (domain.Store, domain.Account, error) {
	if !session.Authenticated() {
		return nil, domain.Account{}, domain.ErrLoginRequired
	}

	store, err := s.repo.Load(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Send()
		return nil, domain.Account{}, errorspkg.ErrInternal
	}

	account, ok := store[session.AccountNumber]
	if !ok {
		return nil, domain.Account{}, domain.ErrAccountNotFound
	}

	return store, account, nil
}

// CheckBalance returns the account of the session.
func (s *Service) CheckBalance(ctx context.Context, session domain.Session) (domain.AccountWithoutPassword, error) {
	_, account, err := s.current(ctx, session)
	if err != nil {
		return domain.AccountWithoutPassword{}, err
	}

	return account.WithoutPassword(), nil
}

// Deposit adds a positive amount to the session account balance.
func (s *Service) Deposit(ctx context.Context, session domain.Session, amount string) (domain.AccountWithoutPassword, error) {
	return s.apply(ctx, session, amount, func(account *domain.Account, amount decimal.Decimal) error {
		account.Balance = account.Balance.Add(amount)
		return nil
	})
}

// Withdraw subtracts a positive amount not exceeding the balance from the session account.
func (s *Service) Withdraw(ctx context.Context, session domain.Session, amount string) (domain.AccountWithoutPassword, error) {
	return s.apply(ctx, session, amount, func(account *domain.Account, amount decimal.Decimal) error {
		if account.Balance.LessThan(amount) {
			return domain.ErrInsufficientBalance
		}

		account.Balance = account.Balance.Sub(amount)

		return nil
	})
}

// apply runs one load, mutate, save cycle for a balance change.
func (s *Service) apply(ctx context.Context, session domain.Session, amount string,
	mutate func(account *domain.Account, amount decimal.Decimal) error,
) (domain.AccountWithoutPassword, error) {
	l := zerolog.Ctx(ctx)

	var result domain.AccountWithoutPassword

	if !session.Authenticated() {
		return result, domain.ErrLoginRequired
	}

	amountDecimal, err := parseAmount(amount)
	if err != nil {
		l.Info().Err(err).Str("amount", amount).Send()
		return result, err
	}

	if amountDecimal.LessThanOrEqual(decimal.Zero) {
		return result, domain.ErrNonPositiveAmount
	}

	store, account, err := s.current(ctx, session)
	if err != nil {
		return result, err
	}

	if err := mutate(&account, amountDecimal); err != nil {
		return result, err
	}

	store[account.Number] = account

	if err := s.repo.Save(ctx, store); err != nil {
		l.Error().Stack().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	l.Info().
		Str("account", account.Number).
		Str("amount", amountDecimal.String()).
		Str("balance", account.Balance.String()).
		Send()

	return account.WithoutPassword(), nil
}
