// Package accountdelivery manages the interactive menu of the ledger.
package accountdelivery

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/internal/middleware"
	"github.com/go-petr/pet-ledger/pkg/currencypkg"
	"github.com/go-petr/pet-ledger/pkg/errorspkg"
)

// Service provides service layer interface needed by account delivery layer.
//
//go:generate mockgen -source cli.go -destination cli_mock.go -package accountdelivery
type Service interface {
	Create(ctx context.Context, arg domain.CreateAccountParams) (domain.AccountWithoutPassword, error)
	Login(ctx context.Context, number, password string) (domain.Session, domain.AccountWithoutPassword, error)
	Logout(ctx context.Context, session *domain.Session)
	CheckBalance(ctx context.Context, session domain.Session) (domain.AccountWithoutPassword, error)
	Deposit(ctx context.Context, session domain.Session, amount string) (domain.AccountWithoutPassword, error)
	Withdraw(ctx context.Context, session domain.Session, amount string) (domain.AccountWithoutPassword, error)
}

const (
	title     = "SIMPLE BANKING SYSTEM"
	ruler     = "================================="
	thinRuler = "---------------------------------"
	goodbye   = "Thank you for using Simple Banking System!"
	clearSeq  = "\033[H\033[2J"
)

// Options tunes the handler output.
type Options struct {
	Currency    string
	ClearScreen bool
	Logger      zerolog.Logger
}

// Handler facilitates account delivery layer logic.
//
// It owns the session of the running process and passes it to every service call.
type Handler struct {
	service  Service
	in       *bufio.Reader
	out      io.Writer
	currency string
	clear    bool
	command  func(name string, next middleware.CommandFunc) middleware.CommandFunc
	session  domain.Session
	outErr   error
}

// menuItem is one numbered menu option. A nil run ends the loop.
type menuItem struct {
	label string
	name  string
	run   middleware.CommandFunc
}

// NewHandler returns account handler reading choices from in and writing screens to out.
func NewHandler(as Service, in io.Reader, out io.Writer, opts Options) *Handler {
	h := &Handler{
		service:  as,
		in:       bufio.NewReader(in),
		out:      out,
		currency: opts.Currency,
		command:  middleware.CommandLogger(opts.Logger),
	}

	if h.currency == "" {
		h.currency = currencypkg.USD
	}

	if f, ok := out.(*os.File); ok && opts.ClearScreen {
		h.clear = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}

	return h
}

// Session returns the current session.
func (h *Handler) Session() domain.Session {
	return h.session
}

// Run shows the menu until the exit choice or the end of input.
func (h *Handler) Run(ctx context.Context) error {
	for {
		items := h.menu()
		h.showMenu(ctx, items)

		choice, err := h.readLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				h.println()
				h.println(goodbye)
				return nil
			}
			return err
		}

		item, ok := lookup(items, choice)
		if !ok {
			h.println("Invalid choice! Please try again.")
			if err := h.waitForEnter(); err != nil {
				return err
			}
			continue
		}

		if item.run == nil {
			h.println(goodbye)
			return nil
		}

		err = h.command(item.name, item.run)(ctx)
		switch {
		case err == nil:
		case errors.Is(err, io.EOF):
			h.println()
			h.println(goodbye)
			return nil
		case isOutputErr(err):
			return err
		default:
			h.println(message(err))
			if err := h.waitForEnter(); err != nil {
				return err
			}
		}
	}
}

func (h *Handler) menu() []menuItem {
	if h.session.Authenticated() {
		return []menuItem{
			{label: "Check Balance", name: "check_balance", run: h.checkBalance},
			{label: "Deposit Money", name: "deposit", run: h.deposit},
			{label: "Withdraw Money", name: "withdraw", run: h.withdraw},
			{label: "Logout", name: "logout", run: h.logout},
			{label: "Exit", name: "exit"},
		}
	}

	return []menuItem{
		{label: "Create Account", name: "create_account", run: h.createAccount},
		{label: "Login", name: "login", run: h.login},
		{label: "Exit", name: "exit"},
	}
}

func lookup(items []menuItem, choice string) (menuItem, bool) {
	for i, item := range items {
		if choice == fmt.Sprint(i+1) {
			return item, true
		}
	}

	return menuItem{}, false
}

func (h *Handler) showMenu(ctx context.Context, items []menuItem) {
	h.clearScreen()
	h.println(ruler)
	h.println("    " + title)
	h.println(ruler)

	if h.session.Authenticated() {
		var name string
		if account, err := h.service.CheckBalance(ctx, h.session); err == nil {
			name = account.HolderName
		} else {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("cannot load session account")
		}

		h.println("Logged in as: " + name)
		h.println("Account: " + h.session.AccountNumber)
		h.println(thinRuler)
	}

	for i, item := range items {
		h.printf("%d. %s\n", i+1, item.label)
	}

	h.println(ruler)
	h.printf("Choose an option: ")
}

func (h *Handler) createAccount(ctx context.Context) error {
	h.clearScreen()
	h.println("=== CREATE NEW ACCOUNT ===")

	var (
		arg domain.CreateAccountParams
		err error
	)

	if arg.Number, err = h.prompt("Enter account number: "); err != nil {
		return err
	}
	if arg.HolderName, err = h.prompt("Enter account holder name: "); err != nil {
		return err
	}
	if arg.Password, err = h.prompt("Enter password: "); err != nil {
		return err
	}
	if arg.InitialDeposit, err = h.prompt("Enter initial deposit amount: $"); err != nil {
		return err
	}

	account, err := h.service.Create(ctx, arg)
	if err != nil {
		return err
	}

	h.println()
	h.println("Account created successfully!")
	h.println("Account Number: " + account.Number)
	h.println("Account Holder: " + account.HolderName)
	h.println("Initial Balance: " + h.money(account.Balance))

	return h.waitForEnter()
}

func (h *Handler) login(ctx context.Context) error {
	h.clearScreen()
	h.println("=== LOGIN ===")

	number, err := h.prompt("Enter account number: ")
	if err != nil {
		return err
	}

	password, err := h.prompt("Enter password: ")
	if err != nil {
		return err
	}

	session, account, err := h.service.Login(ctx, number, password)
	if err != nil {
		return err
	}

	h.session = session

	h.println("Login successful! Welcome, " + account.HolderName + "!")

	return h.waitForEnter()
}

func (h *Handler) checkBalance(ctx context.Context) error {
	account, err := h.service.CheckBalance(ctx, h.session)
	if err != nil {
		return err
	}

	h.clearScreen()
	h.println("=== ACCOUNT BALANCE ===")
	h.println("Account Number: " + account.Number)
	h.println("Account Holder: " + account.HolderName)
	h.println("Current Balance: " + h.money(account.Balance))

	return h.waitForEnter()
}

func (h *Handler) deposit(ctx context.Context) error {
	current, err := h.service.CheckBalance(ctx, h.session)
	if err != nil {
		return err
	}

	h.clearScreen()
	h.println("=== DEPOSIT MONEY ===")
	h.println("Current Balance: " + h.money(current.Balance))

	amount, err := h.prompt("Enter deposit amount: $")
	if err != nil {
		return err
	}

	account, err := h.service.Deposit(ctx, h.session, amount)
	if err != nil {
		if errors.Is(err, domain.ErrNonPositiveAmount) {
			return userError{err, "Deposit amount must be positive!"}
		}
		return err
	}

	h.println()
	h.println("Deposit successful!")
	h.println("Amount Deposited: " + h.money(account.Balance.Sub(current.Balance)))
	h.println("New Balance: " + h.money(account.Balance))

	return h.waitForEnter()
}

func (h *Handler) withdraw(ctx context.Context) error {
	current, err := h.service.CheckBalance(ctx, h.session)
	if err != nil {
		return err
	}

	h.clearScreen()
	h.println("=== WITHDRAW MONEY ===")
	h.println("Current Balance: " + h.money(current.Balance))

	amount, err := h.prompt("Enter withdrawal amount: $")
	if err != nil {
		return err
	}

	account, err := h.service.Withdraw(ctx, h.session, amount)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNonPositiveAmount):
			return userError{err, "Withdrawal amount must be positive!"}
		case errors.Is(err, domain.ErrInsufficientBalance):
			return userError{err, "Insufficient funds! Your balance is " + h.money(current.Balance)}
		}
		return err
	}

	h.println()
	h.println("Withdrawal successful!")
	h.println("Amount Withdrawn: " + h.money(current.Balance.Sub(account.Balance)))
	h.println("New Balance: " + h.money(account.Balance))

	return h.waitForEnter()
}

func (h *Handler) logout(ctx context.Context) error {
	h.service.Logout(ctx, &h.session)
	h.println("Logged out successfully!")

	return h.waitForEnter()
}

func (h *Handler) money(amount decimal.Decimal) string {
	return currencypkg.Format(amount, h.currency)
}

// userError carries the exact text shown for an error in a given screen.
type userError struct {
	err error
	msg string
}

func (e userError) Error() string { return e.err.Error() }
func (e userError) Unwrap() error { return e.err }

// outputError marks a failed write to the terminal.
type outputError struct{ err error }

func (e outputError) Error() string { return "write output: " + e.err.Error() }
func (e outputError) Unwrap() error { return e.err }

func isOutputErr(err error) bool {
	var oe outputError
	return errors.As(err, &oe)
}

var messages = []struct {
	err error
	msg string
}{
	{domain.ErrNegativeInitialDeposit, "Initial deposit cannot be negative!"},
	{domain.ErrAccountAlreadyExists, "Account number already exists!"},
	{domain.ErrAccountNotFound, "Account not found!"},
	{domain.ErrWrongPassword, "Invalid password!"},
	{domain.ErrLoginRequired, "Please login first!"},
	{domain.ErrNonPositiveAmount, "Amount must be positive!"},
	{domain.ErrInsufficientBalance, "Insufficient funds!"},
	{domain.ErrInvalidAmount, "Invalid amount! Please enter a number."},
}

// message returns the text shown to the account holder for err.
func message(err error) string {
	var ue userError
	if errors.As(err, &ue) {
		return ue.msg
	}

	for _, m := range messages {
		if errors.Is(err, m.err) {
			return m.msg
		}
	}

	if errors.Is(err, domain.ErrInvalidInput) {
		return capitalize(err.Error()) + "!"
	}

	return capitalize(errorspkg.ErrInternal.Error()) + "."
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}

	return string(unicode.ToUpper(r)) + s[size:]
}
