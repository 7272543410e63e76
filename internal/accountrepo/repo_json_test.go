package accountrepo

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/internal/test"
)

func newTestRepo(t *testing.T) *RepoJSON {
	t.Helper()
	return NewRepoJSON(filepath.Join(t.TempDir(), "accounts.json"))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

var decimalComparer = cmp.Comparer(func(x, y decimal.Decimal) bool {
	return x.Equal(y)
})

func TestInit(t *testing.T) {
	t.Parallel()

	repo := newTestRepo(t)

	err := repo.Init(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(repo.Path())
	require.NoError(t, err)
	require.JSONEq(t, "{}", string(data))

	store, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.Empty(t, store)
}

func TestInitKeepsExistingFile(t *testing.T) {
	t.Parallel()

	repo := newTestRepo(t)
	account := test.RandomAccount(t)

	require.NoError(t, repo.Save(context.Background(), domain.Store{account.Number: account}))
	require.NoError(t, repo.Init(context.Background()))

	store, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, store, 1)
}

func TestInitUnwritable(t *testing.T) {
	t.Parallel()

	repo := NewRepoJSON(filepath.Join(t.TempDir(), "missing-dir", "accounts.json"))

	err := repo.Init(context.Background())
	require.Error(t, err)
}

func TestLoadFailsOpen(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		prepare func(t *testing.T, path string)
	}{
		{
			name:    "MissingFile",
			prepare: func(t *testing.T, path string) {},
		},
		{
			name: "EmptyFile",
			prepare: func(t *testing.T, path string) {
				writeFile(t, path, "")
			},
		},
		{
			name: "InvalidJSON",
			prepare: func(t *testing.T, path string) {
				writeFile(t, path, "{not json")
			},
		},
		{
			name: "WrongShape",
			prepare: func(t *testing.T, path string) {
				writeFile(t, path, `[1, 2, 3]`)
			},
		},
		{
			name: "Null",
			prepare: func(t *testing.T, path string) {
				writeFile(t, path, "null")
			},
		},
		{
			name: "Directory",
			prepare: func(t *testing.T, path string) {
				require.NoError(t, os.Mkdir(path, 0o700))
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			repo := newTestRepo(t)
			tc.prepare(t, repo.Path())

			store, err := repo.Load(context.Background())
			require.NoError(t, err)
			require.NotNil(t, store)
			require.Empty(t, store)
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	repo := newTestRepo(t)

	want := domain.Store{}
	for i := 0; i < 5; i++ {
		a := test.RandomAccount(t)
		want[a.Number] = a
	}

	require.NoError(t, repo.Save(context.Background(), want))

	got, err := repo.Load(context.Background())
	require.NoError(t, err)

	if diff := cmp.Diff(want, got, decimalComparer); diff != "" {
		t.Errorf("repo.Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveOverwrites(t *testing.T) {
	t.Parallel()

	repo := newTestRepo(t)
	a1 := test.RandomAccount(t)
	a2 := test.RandomAccount(t)

	require.NoError(t, repo.Save(context.Background(), domain.Store{a1.Number: a1, a2.Number: a2}))
	require.NoError(t, repo.Save(context.Background(), domain.Store{a2.Number: a2}))

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Contains(t, got, a2.Number)

	entries, err := os.ReadDir(filepath.Dir(repo.Path()))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestSaveFormat(t *testing.T) {
	t.Parallel()

	repo := newTestRepo(t)
	account := domain.Account{
		Number:       "1001",
		HolderName:   "Ada Lovelace",
		PasswordHash: "hash",
		Balance:      decimal.RequireFromString("100.25"),
		CreatedAt:    time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
	}

	require.NoError(t, repo.Save(context.Background(), domain.Store{account.Number: account}))

	data, err := os.ReadFile(repo.Path())
	require.NoError(t, err)

	content := string(data)
	require.True(t, strings.Contains(content, "\n  \"1001\": {\n"), "store must be pretty-printed:\n%s", content)
	require.NotContains(t, content, `"number"`)

	var raw map[string]map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Equal(t, map[string]any{
		"holder_name":   "Ada Lovelace",
		"password_hash": "hash",
		"balance":       "100.25",
		"created_at":    "2024-03-01T09:30:00Z",
	}, raw["1001"])
}

func TestLoadNumericBalance(t *testing.T) {
	t.Parallel()

	repo := newTestRepo(t)
	writeFile(t, repo.Path(), `{
  "42": {
    "holder_name": "Grace",
    "password_hash": "hash",
    "balance": 150.5,
    "created_at": "2024-03-01T09:30:00Z"
  }
}`)

	store, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, store, 1)

	got := store["42"]
	require.Equal(t, "42", got.Number)
	require.Equal(t, "Grace", got.HolderName)
	require.True(t, got.Balance.Equal(decimal.RequireFromString("150.5")))
}
