// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"bytes"
	"context"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-ledger/internal/domain"
)

const fileMode fs.FileMode = 0o600

// RepoJSON keeps the whole account store in one pretty-printed JSON file.
type RepoJSON struct {
	path string
}

// NewRepoJSON returns account repository backed by the file at path.
func NewRepoJSON(path string) *RepoJSON {
	return &RepoJSON{path: path}
}

// Path returns the backing file path.
func (r *RepoJSON) Path() string {
	return r.path
}

// Init creates the backing file with an empty store if it does not exist.
func (r *RepoJSON) Init(ctx context.Context) error {
	_, err := os.Stat(r.path)
	if err == nil {
		return nil
	}

	if !errors.Is(err, fs.ErrNotExist) {
		return errors.Wrapf(err, "stat %s", r.path)
	}

	zerolog.Ctx(ctx).Info().Str("path", r.path).Msg("creating account store")

	return r.Save(ctx, domain.Store{})
}

// Load reads the whole store.
//
// A missing, unreadable or malformed file yields an empty store and no error.
func (r *RepoJSON) Load(ctx context.Context) (domain.Store, error) {
	l := zerolog.Ctx(ctx)

	data, err := os.ReadFile(r.path)
	if err != nil {
		l.Warn().Err(err).Str("path", r.path).Msg("cannot read account store, using empty store")
		return domain.Store{}, nil
	}

	var store domain.Store
	if err := json.Unmarshal(data, &store); err != nil {
		l.Warn().Err(err).Str("path", r.path).Msg("malformed account store, using empty store")
		return domain.Store{}, nil
	}

	if store == nil {
		store = domain.Store{}
	}

	for number, a := range store {
		a.Number = number
		store[number] = a
	}

	return store, nil
}

// Save overwrites the file with the full store.
//
// The store is written to a temporary file in the same directory and renamed
// over the target, so readers never see a half written file.
func (r *RepoJSON) Save(ctx context.Context, store domain.Store) error {
	if store == nil {
		store = domain.Store{}
	}

	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(store); err != nil {
		return errors.Wrap(err, "encode account store")
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return errors.Wrap(err, "write temp file")
	}

	if err := tmp.Chmod(fileMode); err != nil {
		tmp.Close()
		return errors.Wrap(err, "chmod temp file")
	}

	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "close temp file")
	}

	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return errors.Wrapf(err, "replace %s", r.path)
	}

	zerolog.Ctx(ctx).Debug().Int("accounts", len(store)).Str("path", r.path).Msg("account store saved")

	return nil
}
