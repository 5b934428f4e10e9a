package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keephy-check/pkg/model"
)

func TestMemoryStoreForms(t *testing.T) {
	m := NewMemoryStore()

	_, ok, err := m.GetForm("f1")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = m.UpsertForm(model.Form{ID: "f1", Title: "First"})
	require.NoError(t, err)
	_, err = m.UpsertForm(model.Form{ID: "f1", Title: "Updated"})
	require.NoError(t, err)

	f, ok, err := m.GetForm("f1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Updated", f.Title)

	forms, err := m.ListForms()
	require.NoError(t, err)
	assert.Len(t, forms, 1)
}

func TestMemoryStoreCheckRunsNewestFirst(t *testing.T) {
	m := NewMemoryStore()
	for i := 0; i < 5; i++ {
		require.NoError(t, m.SaveCheckRun(model.CheckRun{
			ID:        string(rune('a' + i)),
			StartedAt: time.Now(),
		}))
	}

	runs, err := m.ListCheckRuns(3)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "e", runs[0].ID)
	assert.Equal(t, "c", runs[2].ID)
}

func TestMemoryStoreAudit(t *testing.T) {
	m := NewMemoryStore()
	require.NoError(t, m.AppendAudit(model.AuditEntry{Action: "submit", Target: "f1"}))
	require.NoError(t, m.AppendAudit(model.AuditEntry{Action: "check_run", Target: "routes"}))

	entries, err := m.ListAudit(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "check_run", entries[0].Action, "newest first")
}
