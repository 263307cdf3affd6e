// Package storage is the durable, client-side keeper of session state: the
// bearer token and the last-known user snapshot. Both entries survive
// process restart and are the basis for session rehydration at the next
// start. The session layer is the sole writer, with one exception: the
// gateway clears both entries when the API server rejects the credential.
package storage

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"

	"github.com/kmaitland/testhub"
)

const (
	tokenFile = "token"
	userFile  = "user.json"
)

// Store reads and writes the two durable session entries under a single
// directory, by default ~/.testhub.
type Store struct {
	dir string
}

// NewStore returns a Store rooted at ~/.testhub.
func NewStore() (*Store, error) {
	homeDir, err := homedir.Dir()
	if err != nil {
		return nil, errors.Wrap(err, "error locating user's home directory")
	}
	return NewStoreAt(path.Join(homeDir, ".testhub")), nil
}

// NewStoreAt returns a Store rooted at the given directory.
func NewStoreAt(dir string) *Store {
	return &Store{dir: dir}
}

// Token returns the stored bearer token, or the empty string when no
// credential is stored.
func (s *Store) Token() (string, error) {
	tokenBytes, err := ioutil.ReadFile(path.Join(s.dir, tokenFile))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", errors.Wrap(err, "error reading stored credential")
	}
	return strings.TrimSpace(string(tokenBytes)), nil
}

// SaveToken durably stores the given bearer token.
func (s *Store) SaveToken(token string) error {
	if err := s.ensureDir(); err != nil {
		return err
	}
	if err := ioutil.WriteFile(
		path.Join(s.dir, tokenFile),
		[]byte(token),
		0600,
	); err != nil {
		return errors.Wrap(err, "error writing credential")
	}
	return nil
}

// User returns the stored user snapshot, or nil when none is stored or the
// stored snapshot cannot be parsed. An unreadable snapshot is treated the
// same as an absent one; rehydration re-fetches the user anyway.
func (s *Store) User() (*testhub.User, error) {
	userBytes, err := ioutil.ReadFile(path.Join(s.dir, userFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "error reading stored user snapshot")
	}
	user := &testhub.User{}
	if err := json.Unmarshal(userBytes, user); err != nil {
		return nil, nil
	}
	return user, nil
}

// SaveUser durably stores the given user snapshot.
func (s *Store) SaveUser(user testhub.User) error {
	if err := s.ensureDir(); err != nil {
		return err
	}
	userBytes, err := json.Marshal(user)
	if err != nil {
		return errors.Wrap(err, "error marshaling user snapshot")
	}
	if err := ioutil.WriteFile(
		path.Join(s.dir, userFile),
		userBytes,
		0600,
	); err != nil {
		return errors.Wrap(err, "error writing user snapshot")
	}
	return nil
}

// Clear removes both durable entries. It is a no-op for entries that do not
// exist, so clearing an already-empty store never fails.
func (s *Store) Clear() error {
	for _, file := range []string{tokenFile, userFile} {
		if err := os.Remove(path.Join(s.dir, file)); err != nil &&
			!os.IsNotExist(err) {
			return errors.Wrapf(err, "error removing %s", file)
		}
	}
	return nil
}

func (s *Store) ensureDir() error {
	if _, err := os.Stat(s.dir); err != nil {
		if !os.IsNotExist(err) {
			return errors.Wrapf(
				err,
				"error checking for existence of %s",
				s.dir,
			)
		}
		if err = os.MkdirAll(s.dir, 0755); err != nil {
			return errors.Wrapf(err, "error creating %s", s.dir)
		}
	}
	return nil
}
