// Package filestore persists the task collection as a human-readable JSON or
// YAML document, keeping the previous version as a backup next to it.
package filestore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdxmph/tasks-tui/internal/tasks"
	"gopkg.in/yaml.v3"
)

// Format selects the on-disk encoding.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// documentVersion is written into every file. Field names inside tasks are
// part of the file format and must not change.
const documentVersion = 1

// BackupSuffix is appended to the primary path to name the backup copy.
const BackupSuffix = ".bak"

type document struct {
	Version int          `json:"version" yaml:"version"`
	Tasks   []tasks.Task `json:"tasks" yaml:"tasks"`
}

// Store is a tasks.Backend backed by a primary file and a backup copy.
type Store struct {
	path   string
	format Format
	logger *log.Logger

	// set when Load found the primary unreadable, so the next Save does
	// not copy the damaged file over a good backup
	primaryDamaged bool
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for recovery notices. A nil logger keeps
// the default.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a file store at path using format.
func New(path string, format Format, opts ...Option) *Store {
	s := &Store{
		path:   path,
		format: format,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FormatForPath picks YAML for .yaml/.yml paths and JSON otherwise.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	}
	return JSON
}

// Name returns the backend identifier
func (s *Store) Name() string {
	return string(s.format)
}

// Path returns the primary file path.
func (s *Store) Path() string {
	return s.path
}

// BackupPath returns the path of the backup copy.
func (s *Store) BackupPath() string {
	return s.path + BackupSuffix
}

// Load reads the primary file. A missing primary is an empty collection. An
// unreadable or malformed primary falls back to the backup; if that fails
// too, Load returns an empty collection and a *tasks.RecoveryError.
func (s *Store) Load() ([]tasks.Task, error) {
	list, err := s.read(s.path)
	if err == nil {
		s.primaryDamaged = false
		return list, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	s.primaryDamaged = true
	s.logger.Printf("reading %s: %v; trying backup", s.path, err)

	backup, berr := s.read(s.BackupPath())
	if berr != nil {
		return nil, &tasks.RecoveryError{Path: s.path, Primary: err, Backup: berr}
	}
	s.logger.Printf("recovered %d task(s) from backup %s", len(backup), s.BackupPath())
	return backup, nil
}

// Save copies the current primary to the backup path, then atomically
// replaces the primary with the full collection.
func (s *Store) Save(list []tasks.Task) error {
	data, err := s.encode(list)
	if err != nil {
		return fmt.Errorf("encoding tasks: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	if !s.primaryDamaged {
		if err := copyFile(s.path, s.BackupPath()); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("backing up %s: %w", s.path, err)
		}
	}

	if err := writeAtomic(s.path, data); err != nil {
		return err
	}
	s.primaryDamaged = false
	return nil
}

func (s *Store) read(path string) ([]tasks.Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	list, err := s.decode(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	seen := make(map[string]bool, len(list))
	for _, t := range list {
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		if seen[t.ID] {
			return nil, fmt.Errorf("parsing %s: duplicate task id %s", path, t.ID)
		}
		seen[t.ID] = true
	}
	return list, nil
}

func (s *Store) encode(list []tasks.Task) ([]byte, error) {
	if list == nil {
		list = []tasks.Task{}
	}
	doc := document{Version: documentVersion, Tasks: list}
	if s.format == YAML {
		return yaml.Marshal(doc)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// decode accepts the versioned document and, for older files, a bare list
// of tasks.
func (s *Store) decode(data []byte) ([]tasks.Task, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("file is empty")
	}

	var doc document
	var docErr error
	if s.format == YAML {
		docErr = yaml.Unmarshal(data, &doc)
	} else {
		docErr = json.Unmarshal(data, &doc)
	}
	if docErr == nil {
		if doc.Version > documentVersion {
			return nil, fmt.Errorf("file version %d is newer than supported version %d", doc.Version, documentVersion)
		}
		return doc.Tasks, nil
	}

	var list []tasks.Task
	var listErr error
	if s.format == YAML {
		listErr = yaml.Unmarshal(data, &list)
	} else {
		listErr = json.Unmarshal(data, &list)
	}
	if listErr == nil {
		return list, nil
	}
	return nil, docErr
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0644)
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

// Register the file backends
func init() {
	for _, format := range []Format{JSON, YAML} {
		tasks.Register(string(format), func(o tasks.BackendOptions) tasks.Backend {
			return New(o.Path, format, WithLogger(o.Logger))
		})
	}
}
