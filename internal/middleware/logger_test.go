package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/configpkg"
)

func TestCommandLogger(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		err       error
		wantLevel string
	}{
		{name: "OK", wantLevel: "info"},
		{name: "DomainError", err: domain.ErrInsufficientBalance, wantLevel: "warn"},
		{name: "WrappedDomainError", err: fmt.Errorf("%w: Number is required", domain.ErrInvalidInput), wantLevel: "warn"},
		{name: "InternalError", err: errors.New("disk full"), wantLevel: "error"},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := zerolog.New(&buf)

			var gotLogger *zerolog.Logger
			cmd := CommandLogger(logger)("deposit", func(ctx context.Context) error {
				gotLogger = zerolog.Ctx(ctx)
				return tc.err
			})

			err := cmd(context.Background())
			require.Equal(t, tc.err, err)
			require.NotNil(t, gotLogger)
			require.NotEqual(t, zerolog.Disabled, gotLogger.GetLevel())

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			require.Equal(t, tc.wantLevel, entry["level"])
			require.Equal(t, "deposit", entry["command"])
			require.NotEmpty(t, entry["command_id"])
			require.NotEmpty(t, entry["latency"])
		})
	}
}

func TestGetLogger(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "ledger.log")

	config := configpkg.Default()
	config.LogLevel = "info"
	config.LogFile = logFile

	logger, closer, err := GetLogger(config)
	require.NoError(t, err)
	require.Equal(t, zerolog.InfoLevel, logger.GetLevel())
	require.NoError(t, closer.Close())

	config.LogLevel = "loud"
	_, closer, err = GetLogger(config)
	require.Error(t, err)
	require.NotNil(t, closer)
}
