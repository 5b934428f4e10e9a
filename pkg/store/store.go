package store

import "keephy-check/pkg/model"

// FeedbackStore defines the persistence layer for forms, check runs and the
// audit trail. Users and submissions live in MySQL; this store backs the
// rest and can be served from memory or Consul KV.
type FeedbackStore interface {
	UpsertForm(model.Form) (model.Form, error)
	GetForm(id string) (model.Form, bool, error)
	ListForms() ([]model.Form, error)
	SaveCheckRun(model.CheckRun) error
	ListCheckRuns(limit int) ([]model.CheckRun, error)
	AppendAudit(model.AuditEntry) error
	ListAudit(limit int) ([]model.AuditEntry, error)
}

// NewMemory is a helper to construct the in-memory implementation without
// importing it directly.
func NewMemory() FeedbackStore {
	return NewMemoryStore()
}
