package configpkg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "app.env"), []byte(content), 0o600)
	require.NoError(t, err)

	return dir
}

func TestLoadDefaults(t *testing.T) {
	got, err := Load(t.TempDir())
	require.NoError(t, err)
	require.Equal(t, Default(), got)
}

func TestLoadFile(t *testing.T) {
	dir := writeEnvFile(t, "DATA_FILE=/tmp/ledger.json\nGO_ENV=development\nLOG_LEVEL=debug\nCURRENCY=EUR\nCLEAR_SCREEN=false\n")

	got, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, "/tmp/ledger.json", got.DataFile)
	require.Equal(t, "development", got.Environement)
	require.Equal(t, "debug", got.LogLevel)
	require.Equal(t, "EUR", got.Currency)
	require.False(t, got.ClearScreen)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := writeEnvFile(t, "DATA_FILE=from-file.json\n")
	t.Setenv("DATA_FILE", "from-env.json")

	got, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, "from-env.json", got.DataFile)
}

func TestLoadInvalid(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{name: "UnsupportedCurrency", content: "CURRENCY=XYZ\n"},
		{name: "InvalidLogLevel", content: "LOG_LEVEL=loud\n"},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeEnvFile(t, tc.content))
			require.Error(t, err)
		})
	}
}
