package tasks

// MemoryBackend keeps the collection in process memory only. It backs
// tests and the --backend=memory scratch mode.
type MemoryBackend struct {
	tasks []Task
	saves int
	// Err, when set, is returned from every Save.
	Err error
}

// NewMemoryBackend creates a memory backend preloaded with tasks.
func NewMemoryBackend(tasks ...Task) *MemoryBackend {
	return &MemoryBackend{tasks: cloneAll(tasks)}
}

// Name returns the backend identifier
func (m *MemoryBackend) Name() string {
	return "memory"
}

// Load returns a copy of the last saved collection
func (m *MemoryBackend) Load() ([]Task, error) {
	return cloneAll(m.tasks), nil
}

// Save records a copy of tasks
func (m *MemoryBackend) Save(tasks []Task) error {
	if m.Err != nil {
		return m.Err
	}
	m.tasks = cloneAll(tasks)
	m.saves++
	return nil
}

// Saves returns how many successful saves have happened.
func (m *MemoryBackend) Saves() int {
	return m.saves
}

func cloneAll(tasks []Task) []Task {
	if tasks == nil {
		return nil
	}
	out := make([]Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.clone()
	}
	return out
}

// Register the memory backend
func init() {
	Register("memory", func(BackendOptions) Backend { return NewMemoryBackend() })
}
