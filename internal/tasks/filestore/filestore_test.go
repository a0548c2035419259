package filestore

import (
	"bytes"
	"errors"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/pdxmph/tasks-tui/internal/date"
	"github.com/pdxmph/tasks-tui/internal/tasks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() []tasks.Task {
	return []tasks.Task{
		{
			ID:          "7c9e6679-7425-40de-944b-e07fc1f90ae7",
			Title:       `Quote "this", please`,
			Description: "multi\nline",
			DueDate:     date.New(2024, 2, 29),
			CreatedDate: date.New(2024, 1, 15),
			Status:      tasks.StatusInProgress,
			Project:     "Work",
			Priority:    tasks.PriorityCritical,
			Tags:        []string{"a", "b"},
			Recurrence:  tasks.RecurMonthly,
		},
		{
			ID:          "0b1d2c3e-0000-4000-8000-000000000001",
			Title:       "Second",
			DueDate:     date.New(2025, 12, 31),
			CreatedDate: date.New(2024, 1, 15),
			Status:      tasks.StatusDone,
			Priority:    tasks.PriorityLow,
			Tags:        []string{"solo"},
			Recurrence:  tasks.RecurNone,
		},
	}
}

func newStore(t *testing.T, name string) (*Store, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	path := filepath.Join(t.TempDir(), "nested", name)
	return New(path, FormatForPath(path), WithLogger(log.New(&logs, "", 0))), &logs
}

func TestRoundTrip(t *testing.T) {
	for _, name := range []string{"tasks.json", "tasks.yaml"} {
		t.Run(name, func(t *testing.T) {
			s, _ := newStore(t, name)
			require.NoError(t, s.Save(sample()))

			got, err := s.Load()
			require.NoError(t, err)
			assert.Equal(t, sample(), got)

			// a fresh store over the same file sees the same collection
			again, err := New(s.Path(), FormatForPath(name)).Load()
			require.NoError(t, err)
			assert.Equal(t, sample(), again)
		})
	}
}

func TestJSONDocumentShape(t *testing.T) {
	s, _ := newStore(t, "tasks.json")
	require.NoError(t, s.Save(sample()[1:]))

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `"version": 1`)
	assert.Contains(t, out, `"dueDate": "2025-12-31"`)
	assert.Contains(t, out, `"status": "Done"`)
	assert.Contains(t, out, `"recurrence": "None"`)
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	s, _ := newStore(t, "tasks.json")

	got, err := s.Load()
	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestSaveEmptyCollection(t *testing.T) {
	s, _ := newStore(t, "tasks.json")
	require.NoError(t, s.Save(nil))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSaveKeepsBackupOfPreviousVersion(t *testing.T) {
	s, _ := newStore(t, "tasks.json")
	require.NoError(t, s.Save(sample()[:1]))
	_, err := os.Stat(s.BackupPath())
	assert.True(t, errors.Is(err, os.ErrNotExist), "first save has nothing to back up")

	require.NoError(t, s.Save(sample()))

	backup, err := New(s.BackupPath(), JSON).Load()
	require.NoError(t, err)
	assert.Equal(t, sample()[:1], backup)
}

func TestLoadRecoversFromBackup(t *testing.T) {
	s, logs := newStore(t, "tasks.json")
	require.NoError(t, s.Save(sample()[:1]))
	require.NoError(t, s.Save(sample()))
	require.NoError(t, os.WriteFile(s.Path(), []byte(`{"version": 1, "tasks": [`), 0644))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, sample()[:1], got)
	assert.Contains(t, logs.String(), "recovered 1 task(s)")

	// the next save must not overwrite the good backup with the damaged primary
	require.NoError(t, s.Save(got))
	backup, err := New(s.BackupPath(), JSON).Load()
	require.NoError(t, err)
	assert.Equal(t, sample()[:1], backup)
}

func TestLoadUnrecoverable(t *testing.T) {
	s, _ := newStore(t, "tasks.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0755))
	require.NoError(t, os.WriteFile(s.Path(), []byte("just a string"), 0644))
	require.NoError(t, os.WriteFile(s.BackupPath(), []byte(""), 0644))

	got, err := s.Load()
	assert.Empty(t, got)
	require.Error(t, err)
	assert.ErrorIs(t, err, tasks.ErrUnrecoverable)

	var rerr *tasks.RecoveryError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, s.Path(), rerr.Path)
}

func TestLoadPrimaryBadBackupMissing(t *testing.T) {
	s, _ := newStore(t, "tasks.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0755))
	require.NoError(t, os.WriteFile(s.Path(), []byte("not json"), 0644))

	_, err := s.Load()
	assert.ErrorIs(t, err, tasks.ErrUnrecoverable)
}

func TestLoadRejectsInvalidRecords(t *testing.T) {
	cases := map[string]string{
		"unknown status": `{"version":1,"tasks":[{"id":"x","title":"t","status":"Blocked","priority":"Low","recurrence":"None"}]}`,
		"duplicate id":   `{"version":1,"tasks":[{"id":"x","title":"t","status":"Done","priority":"Low","recurrence":"None"},{"id":"x","title":"u","status":"Done","priority":"Low","recurrence":"None"}]}`,
		"future version": `{"version":99,"tasks":[]}`,
		"bad date":       `{"version":1,"tasks":[{"id":"x","title":"t","dueDate":"tomorrow","status":"Done","priority":"Low","recurrence":"None"}]}`,
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			s, _ := newStore(t, "tasks.json")
			require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0755))
			require.NoError(t, os.WriteFile(s.Path(), []byte(content), 0644))

			_, err := s.Load()
			assert.ErrorIs(t, err, tasks.ErrUnrecoverable)
		})
	}
}

func TestLoadAcceptsBareList(t *testing.T) {
	s, _ := newStore(t, "tasks.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0755))
	content := `[{"id":"x","title":"legacy","dueDate":"2024-05-01","createdDate":"2024-04-01","status":"Pending","priority":"High","recurrence":"Daily","tags":["old"]}]`
	require.NoError(t, os.WriteFile(s.Path(), []byte(content), 0644))

	got, err := s.Load()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "legacy", got[0].Title)
	assert.Equal(t, date.New(2024, 5, 1), got[0].DueDate)
	assert.Equal(t, tasks.RecurDaily, got[0].Recurrence)
}

func TestRegisteredBackends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.yaml")
	b, err := tasks.CreateBackend("yaml", tasks.BackendOptions{Path: path})
	require.NoError(t, err)
	assert.Equal(t, "yaml", b.Name())

	b, err = tasks.CreateBackend("json", tasks.BackendOptions{Path: path})
	require.NoError(t, err)
	assert.Equal(t, "json", b.Name())
}

func TestRegisteredBackendUsesGivenLogger(t *testing.T) {
	seed, _ := newStore(t, "tasks.json")
	require.NoError(t, seed.Save(sample()[:1]))
	require.NoError(t, seed.Save(sample()))
	require.NoError(t, os.WriteFile(seed.Path(), []byte("{broken"), 0644))

	var logs bytes.Buffer
	b, err := tasks.CreateBackend("json", tasks.BackendOptions{
		Path:   seed.Path(),
		Logger: log.New(&logs, "", 0),
	})
	require.NoError(t, err)

	got, err := b.Load()
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Contains(t, logs.String(), "trying backup")
	assert.Contains(t, logs.String(), "recovered 1 task(s)")
}

func TestWorksWithStore(t *testing.T) {
	s, _ := newStore(t, "tasks.json")
	store := tasks.NewStore(s, tasks.WithLogger(log.New(&bytes.Buffer{}, "", 0)))
	require.NoError(t, store.Load())

	added, err := store.Add(tasks.Task{Title: "persisted", DueDate: date.New(2030, 1, 1)})
	require.NoError(t, err)

	reopened := tasks.NewStore(New(s.Path(), JSON))
	require.NoError(t, reopened.Load())
	got, ok := reopened.Find(added.ID)
	require.True(t, ok)
	assert.Equal(t, added, got)
}
