// Package db implements the persisted build database.
package db

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"go.trai.ch/baker/internal/core/domain"
	"go.trai.ch/baker/internal/core/ports"
	"go.trai.ch/zerr"
)

// schemaVersion is the current database schema. Bump it when the snapshot
// shape changes; Load refuses files written by a newer engine.
const schemaVersion = 1

// envelope wraps the snapshot with versioning and integrity metadata, so
// compatibility of persisted state across engine versions is a decidable
// property rather than an accident of the serializer.
type envelope struct {
	Schema   int             `json:"schema"`
	BuildID  string          `json:"build_id"`
	SavedAt  time.Time       `json:"saved_at"`
	Checksum string          `json:"checksum"`
	State    json.RawMessage `json:"state"`
}

// Store implements ports.Database on a flat file. The format is private to
// the engine: a versioned JSON envelope carrying the snapshot plus an xxhash
// checksum of the payload.
type Store struct {
	path   string
	logger ports.Logger

	mu   sync.RWMutex
	data domain.Snapshot

	// Envelope metadata of the last load or save. Save reuses it while the
	// state checksum is unchanged, so rewriting the same state is
	// byte-identical.
	lastSum string
	lastID  string
	lastAt  time.Time
}

var _ ports.Database = (*Store)(nil)

// NewStore creates a Store backed by the file at path. Nothing is read until
// Load.
func NewStore(path string, logger ports.Logger) *Store {
	return &Store{
		path:   filepath.Clean(path),
		logger: logger,
		data:   domain.NewSnapshot(),
	}
}

// Load populates the in-memory snapshot from disk. A missing file means no
// prior build and leaves the empty default. A corrupt file (bad checksum,
// undecodable payload) also degrades to the empty default with a warning:
// the worst case is a full rebuild, never a wedged engine.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = domain.NewSnapshot()
	s.lastSum, s.lastID, s.lastAt = "", "", time.Time{}

	raw, err := os.ReadFile(s.path) //nolint:gosec // path derives from the build layout
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.With(zerr.Wrap(err, "failed to read build database"), "path", s.path)
	}
	if len(raw) == 0 {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		s.logger.Warn("build database is corrupt, starting fresh", "path", s.path)
		return nil
	}

	if env.Schema > schemaVersion {
		return zerr.With(
			zerr.With(
				zerr.Wrap(domain.ErrSchemaVersion, "build database was written by a newer engine"),
				"schema", env.Schema,
			),
			"supported", schemaVersion,
		)
	}

	sum, err := canonicalChecksum(env.State)
	if err != nil || sum != env.Checksum {
		s.logger.Warn("build database checksum mismatch, starting fresh", "path", s.path)
		return nil
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(env.State, &snap); err != nil {
		s.logger.Warn("build database payload is undecodable, starting fresh", "path", s.path)
		return nil
	}

	if snap.Sources == nil {
		snap.Sources = make(map[string]domain.SourceData)
	}
	if snap.Objects == nil {
		snap.Objects = make(map[domain.BuildType][]string)
	}
	s.data = snap
	s.lastSum, s.lastID, s.lastAt = sum, env.BuildID, env.SavedAt
	return nil
}

// Save persists the full in-memory snapshot, overwriting prior storage. The
// build id and timestamp are refreshed only when the state changed, so saving
// unchanged state rewrites the file byte for byte.
func (s *Store) Save() error {
	s.mu.Lock()
	payload, err := json.Marshal(s.data)
	if err != nil {
		s.mu.Unlock()
		return zerr.Wrap(err, "failed to marshal build database")
	}

	sum := checksum(payload)
	if sum != s.lastSum || s.lastID == "" {
		s.lastSum = sum
		s.lastID = uuid.NewString()
		s.lastAt = time.Now().UTC()
	}

	env := envelope{
		Schema:   schemaVersion,
		BuildID:  s.lastID,
		SavedAt:  s.lastAt,
		Checksum: sum,
		State:    payload,
	}
	s.mu.Unlock()

	raw, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal database envelope")
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return zerr.Wrap(err, "failed to create database directory")
	}

	if err := os.WriteFile(s.path, raw, 0o644); err != nil { //nolint:gosec // engine state, not a secret
		return zerr.With(zerr.Wrap(err, "failed to write build database"), "path", s.path)
	}
	return nil
}

// Source returns the record for an absolute source path.
func (s *Store) Source(path string) (domain.SourceData, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.data.Sources[path]
	return data, ok
}

// SetSource overwrites the record for an absolute source path.
func (s *Store) SetSource(path string, data domain.SourceData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Sources[path] = data
}

// AddObject adds an object filename to the build type's set.
func (s *Store) AddObject(name string, buildType domain.BuildType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.AddObject(name, buildType)
}

// RemoveObject removes an object filename from the build type's set.
func (s *Store) RemoveObject(name string, buildType domain.BuildType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.RemoveObject(name, buildType)
}

// ClearObjects empties the build type's object set.
func (s *Store) ClearObjects(buildType domain.BuildType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data.Objects, buildType)
}

// Objects returns the build type's object filenames, sorted.
func (s *Store) Objects(buildType domain.BuildType) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	set := s.data.Objects[buildType]
	out := make([]string, len(set))
	copy(out, set)
	return out
}

// LinkError reports whether the most recent link attempt failed.
func (s *Store) LinkError() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.LinkError
}

// SetLinkError records the outcome of a link attempt.
func (s *Store) SetLinkError(failed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.LinkError = failed
}

func checksum(payload []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(payload))
}

// canonicalChecksum hashes the compact form of raw JSON, so whatever
// whitespace the envelope serializer introduced never affects integrity.
func canonicalChecksum(raw json.RawMessage) (string, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return "", err
	}
	return checksum(buf.Bytes()), nil
}
