// Package middleware provides logging for menu commands.
package middleware

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/configpkg"
)

// GetLogger builds the application logger.
//
// Logs go to stderr unless LOG_FILE is set, so they stay out of the menu on stdout.
// The returned closer releases the log file and is never nil.
func GetLogger(config configpkg.Config) (zerolog.Logger, io.Closer, error) {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	var (
		output   io.Writer = os.Stderr
		closer   io.Closer = io.NopCloser(nil)
		logLevel           = zerolog.WarnLevel
	)

	if config.LogLevel != "" {
		lvl, err := zerolog.ParseLevel(config.LogLevel)
		if err != nil {
			return zerolog.Nop(), closer, err
		}
		logLevel = lvl
	}

	if config.LogFile != "" {
		f, err := os.OpenFile(config.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			return zerolog.Nop(), closer, err
		}
		output, closer = f, f
	}

	log := zerolog.New(output).
		Level(logLevel).
		With().
		Timestamp().
		Logger()

	if config.Environement == "development" {
		log = log.
			Output(zerolog.ConsoleWriter{Out: output, TimeFormat: time.RFC3339}).
			Level(zerolog.TraceLevel).
			With().
			Caller().
			Logger()
	}

	return log, closer, nil
}

// CommandFunc is a single menu command.
type CommandFunc func(ctx context.Context) error

// CommandLogger returns a wrapper that runs a named command with a
// command scoped logger in its context and logs the outcome.
func CommandLogger(logger zerolog.Logger) func(name string, next CommandFunc) CommandFunc {
	return func(name string, next CommandFunc) CommandFunc {
		return func(ctx context.Context) error {
			start := time.Now()

			l := logger.With().
				Str("command_id", uuid.NewString()).
				Str("command", name).
				Logger()

			err := next(l.WithContext(ctx))

			var logEvent *zerolog.Event
			switch {
			case err == nil:
				logEvent = l.Info()
			case errors.Is(err, io.EOF):
				logEvent = l.Info().Bool("input_closed", true)
			case isDomainError(err):
				logEvent = l.Warn().Err(err)
			default:
				logEvent = l.Error().Stack().Err(err)
			}

			logEvent.
				Str("latency", time.Since(start).String()).
				Send()

			return err
		}
	}
}

var domainErrors = []error{
	domain.ErrAccountNotFound,
	domain.ErrAccountAlreadyExists,
	domain.ErrWrongPassword,
	domain.ErrInvalidInput,
	domain.ErrInvalidAmount,
	domain.ErrNegativeInitialDeposit,
	domain.ErrNonPositiveAmount,
	domain.ErrInsufficientBalance,
	domain.ErrLoginRequired,
}

func isDomainError(err error) bool {
	for _, target := range domainErrors {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}
