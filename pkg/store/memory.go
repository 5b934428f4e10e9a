package store

import (
	"sort"
	"sync"

	"keephy-check/pkg/model"
)

// MemoryStore is a simple in-memory implementation, intended for dev/demo.
type MemoryStore struct {
	mu       sync.RWMutex
	forms    map[string]model.Form
	runs     []model.CheckRun
	audit    []model.AuditEntry
	maxRuns  int
	maxAudit int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		forms:    make(map[string]model.Form),
		maxRuns:  500,
		maxAudit: 1000,
	}
}

func (m *MemoryStore) UpsertForm(f model.Form) (model.Form, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.forms[f.ID] = f
	return f, nil
}

func (m *MemoryStore) GetForm(id string) (model.Form, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.forms[id]
	return f, ok, nil
}

func (m *MemoryStore) ListForms() ([]model.Form, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.Form, 0, len(m.forms))
	for _, f := range m.forms {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) SaveCheckRun(run model.CheckRun) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs = append(m.runs, run)
	if len(m.runs) > m.maxRuns {
		m.runs = m.runs[len(m.runs)-m.maxRuns:]
	}
	return nil
}

func (m *MemoryStore) ListCheckRuns(limit int) ([]model.CheckRun, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if limit <= 0 || limit > len(m.runs) {
		limit = len(m.runs)
	}
	out := make([]model.CheckRun, limit)
	// newest first
	for i := 0; i < limit; i++ {
		out[i] = m.runs[len(m.runs)-1-i]
	}
	return out, nil
}

func (m *MemoryStore) AppendAudit(entry model.AuditEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.audit = append(m.audit, entry)
	if len(m.audit) > m.maxAudit {
		m.audit = m.audit[len(m.audit)-m.maxAudit:]
	}
	return nil
}

func (m *MemoryStore) ListAudit(limit int) ([]model.AuditEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if limit <= 0 || limit > len(m.audit) {
		limit = len(m.audit)
	}
	out := make([]model.AuditEntry, limit)
	for i := 0; i < limit; i++ {
		out[i] = m.audit[len(m.audit)-1-i]
	}
	return out, nil
}
