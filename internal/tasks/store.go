package tasks

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pdxmph/tasks-tui/internal/date"
)

// Store owns the active task collection and the trash of deleted tasks.
// Every mutation is written through to the backend before it returns. A
// failed write is logged and returned, but the in-memory change stands.
//
// Store is not safe for concurrent use.
type Store struct {
	backend Backend
	tasks   []Task
	trash   []Task

	clock  func() time.Time
	logger *log.Logger
	newID  func() string

	loaded  bool
	loadErr error
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for "today".
func WithClock(clock func() time.Time) Option {
	return func(s *Store) {
		s.clock = clock
	}
}

// WithLogger sets the logger used for persistence failures and recovery notices.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithIDGenerator overrides how new task ids are minted.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) {
		s.newID = gen
	}
}

// NewStore creates an empty store on top of backend. Call Load to read the
// persisted collection.
func NewStore(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		clock:   time.Now,
		logger:  log.Default(),
		newID:   func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open creates a store on backend and loads it. The returned store is usable
// even when err is non-nil; see Load.
func Open(backend Backend, opts ...Option) (*Store, error) {
	s := NewStore(backend, opts...)
	return s, s.Load()
}

// Load reads the collection from the backend and rolls recurring tasks
// over. It runs once per store; later calls are no-ops.
//
// Load never leaves the store unusable. If the backend could not produce
// the data the store starts empty and the error is also kept for
// LoadWarning. If the rollover could not be saved the rolled-over
// collection stays in memory and the save error is returned.
func (s *Store) Load() error {
	if s.loaded {
		return nil
	}
	s.loaded = true

	loaded, err := s.backend.Load()
	if err != nil {
		s.loadErr = err
		s.tasks = nil
		var rerr *RecoveryError
		if errors.As(err, &rerr) {
			s.logger.Printf("WARNING: starting with an empty task list: %v", err)
		} else {
			s.logger.Printf("WARNING: loading tasks from %s backend: %v", s.backend.Name(), err)
		}
		return err
	}
	s.tasks = loaded

	if n := s.rollover(); n > 0 {
		s.logger.Printf("rolled over %d recurring task(s)", n)
		return s.persist("rollover")
	}
	return nil
}

// LoadWarning returns the error that forced the store to start empty, if any.
func (s *Store) LoadWarning() error {
	return s.loadErr
}

// Today returns the store's notion of the current date.
func (s *Store) Today() date.Date {
	return date.Of(s.clock())
}

// BackendName identifies where the collection is persisted.
func (s *Store) BackendName() string {
	return s.backend.Name()
}

// Len returns the number of active tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

// TrashLen returns the number of deleted tasks that can still be undone.
func (s *Store) TrashLen() int {
	return len(s.trash)
}

// All returns a copy of the active collection in storage order.
func (s *Store) All() []Task {
	return cloneAll(s.tasks)
}

// Add assigns an id and creation date to t, appends it and persists.
func (s *Store) Add(t Task) (Task, error) {
	t = t.withDefaults().clone()
	t.ID = s.newID()
	t.CreatedDate = s.Today()
	s.tasks = append(s.tasks, t)
	return t.clone(), s.persist("add")
}

// Find returns the task with id.
func (s *Store) Find(id string) (Task, bool) {
	i := s.index(id)
	if i < 0 {
		return Task{}, false
	}
	return s.tasks[i].clone(), true
}

// Update replaces the stored task with the same id. The id and creation
// date are kept from the stored record. Unknown ids are a no-op.
func (s *Store) Update(t Task) (bool, error) {
	i := s.index(t.ID)
	if i < 0 {
		return false, nil
	}
	t = t.withDefaults().clone()
	t.CreatedDate = s.tasks[i].CreatedDate
	s.tasks[i] = t
	return true, s.persist("update")
}

// Delete moves the task with id to the trash.
func (s *Store) Delete(id string) (bool, error) {
	if !s.trashTask(id) {
		return false, nil
	}
	return true, s.persist("delete")
}

// UndoDelete restores the most recently deleted task to the end of the
// active collection.
func (s *Store) UndoDelete() (bool, error) {
	if len(s.trash) == 0 {
		return false, nil
	}
	last := len(s.trash) - 1
	t := s.trash[last]
	s.trash = s.trash[:last]
	s.tasks = append(s.tasks, t)
	return true, s.persist("undo")
}

// BulkUpdateStatus sets status on every listed task that exists. Unknown
// ids are skipped. It persists once if anything changed.
func (s *Store) BulkUpdateStatus(ids []string, status Status) (bool, error) {
	updated := false
	for _, id := range ids {
		if i := s.index(id); i >= 0 {
			s.tasks[i].Status = status
			updated = true
		}
	}
	if !updated {
		return false, nil
	}
	return true, s.persist("bulk status update")
}

// BulkDelete trashes every listed task that exists, one trash entry per
// task in the order given. It persists once if anything was deleted.
func (s *Store) BulkDelete(ids []string) (bool, error) {
	deleted := false
	for _, id := range ids {
		if s.trashTask(id) {
			deleted = true
		}
	}
	if !deleted {
		return false, nil
	}
	return true, s.persist("bulk delete")
}

// Search yields active tasks whose title, project, description or any tag
// contains term, ignoring case. The sequence reads the live collection each
// time it is ranged over.
func (s *Store) Search(term string) iter.Seq[Task] {
	needle := strings.ToLower(term)
	return func(yield func(Task) bool) {
		for _, t := range s.tasks {
			if matches(t, needle) && !yield(t.clone()) {
				return
			}
		}
	}
}

// GetAllProjects returns the distinct non-empty project names, sorted.
func (s *Store) GetAllProjects() []string {
	seen := make(map[string]bool)
	for _, t := range s.tasks {
		if t.Project != "" {
			seen[t.Project] = true
		}
	}
	return sortedKeys(seen)
}

// GetAllTags returns the distinct non-empty tags, sorted.
func (s *Store) GetAllTags() []string {
	seen := make(map[string]bool)
	for _, t := range s.tasks {
		for _, tag := range t.Tags {
			if tag != "" {
				seen[tag] = true
			}
		}
	}
	return sortedKeys(seen)
}

// ResolveID expands a unique id prefix to the full id.
func (s *Store) ResolveID(prefix string) (string, error) {
	if s.index(prefix) >= 0 {
		return prefix, nil
	}
	var found []string
	for _, t := range s.tasks {
		if strings.HasPrefix(t.ID, prefix) {
			found = append(found, t.ID)
		}
	}
	switch len(found) {
	case 0:
		return "", fmt.Errorf("no task matches id %q", prefix)
	case 1:
		return found[0], nil
	default:
		return "", fmt.Errorf("id %q is ambiguous (%d matches)", prefix, len(found))
	}
}

func (s *Store) trashTask(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.trash = append(s.trash, s.tasks[i])
	s.tasks = slices.Delete(s.tasks, i, i+1)
	return true
}

func (s *Store) index(id string) int {
	return slices.IndexFunc(s.tasks, func(t Task) bool { return t.ID == id })
}

func (s *Store) persist(op string) error {
	if err := s.backend.Save(cloneAll(s.tasks)); err != nil {
		s.logger.Printf("saving tasks after %s: %v", op, err)
		return fmt.Errorf("saving tasks after %s: %w", op, err)
	}
	return nil
}

func matches(t Task, needle string) bool {
	if strings.Contains(strings.ToLower(t.Title), needle) ||
		strings.Contains(strings.ToLower(t.Project), needle) ||
		strings.Contains(strings.ToLower(t.Description), needle) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
