//go:build consul

package consul

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	consulapi "github.com/hashicorp/consul/api"

	"keephy-check/pkg/model"
)

// Store is a Consul-backed FeedbackStore implementation. Useful when several
// gateway replicas need to share forms and check history.
type Store struct {
	cli *consulapi.Client
}

const (
	formPrefix  = "keephy/forms/"
	runPrefix   = "keephy/check-runs/"
	auditPrefix = "keephy/audit/"
)

func NewStore(addr string) *Store {
	cfg := consulapi.DefaultConfig()
	if addr != "" {
		cfg.Address = addr
	}
	cli, err := consulapi.NewClient(cfg)
	if err != nil {
		return &Store{}
	}
	return &Store{cli: cli}
}

func (s *Store) UpsertForm(f model.Form) (model.Form, error) {
	if s.cli == nil {
		return f, fmt.Errorf("consul client not configured")
	}
	b, err := json.Marshal(f)
	if err != nil {
		return f, err
	}
	_, err = s.cli.KV().Put(&consulapi.KVPair{Key: formPrefix + f.ID, Value: b}, nil)
	return f, err
}

func (s *Store) GetForm(id string) (model.Form, bool, error) {
	if s.cli == nil {
		return model.Form{}, false, fmt.Errorf("consul client not configured")
	}
	kv, _, err := s.cli.KV().Get(formPrefix+id, nil)
	if err != nil || kv == nil {
		return model.Form{}, false, err
	}
	var f model.Form
	if err := json.Unmarshal(kv.Value, &f); err != nil {
		return model.Form{}, false, err
	}
	return f, true, nil
}

func (s *Store) ListForms() ([]model.Form, error) {
	if s.cli == nil {
		return nil, fmt.Errorf("consul client not configured")
	}
	pairs, _, err := s.cli.KV().List(formPrefix, nil)
	if err != nil {
		return nil, err
	}
	var out []model.Form
	for _, p := range pairs {
		var f model.Form
		if err := json.Unmarshal(p.Value, &f); err == nil {
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *Store) SaveCheckRun(run model.CheckRun) error {
	if s.cli == nil {
		return fmt.Errorf("consul client not configured")
	}
	b, err := json.Marshal(run)
	if err != nil {
		return err
	}
	key := runPrefix + strconv.FormatInt(run.StartedAt.UnixNano(), 10)
	_, err = s.cli.KV().Put(&consulapi.KVPair{Key: key, Value: b}, nil)
	return err
}

func (s *Store) ListCheckRuns(limit int) ([]model.CheckRun, error) {
	if s.cli == nil {
		return nil, fmt.Errorf("consul client not configured")
	}
	pairs, _, err := s.cli.KV().List(runPrefix, nil)
	if err != nil {
		return nil, err
	}
	var out []model.CheckRun
	// keys are nano timestamps, so KV order is oldest first; take the tail
	start := 0
	if limit > 0 && len(pairs) > limit {
		start = len(pairs) - limit
	}
	for i := len(pairs) - 1; i >= start; i-- {
		var run model.CheckRun
		if err := json.Unmarshal(pairs[i].Value, &run); err == nil {
			out = append(out, run)
		}
	}
	return out, nil
}

func (s *Store) AppendAudit(entry model.AuditEntry) error {
	if s.cli == nil {
		return fmt.Errorf("consul client not configured")
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	b, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	key := auditPrefix + strconv.FormatInt(entry.Timestamp.UnixNano(), 10)
	_, err = s.cli.KV().Put(&consulapi.KVPair{Key: key, Value: b}, nil)
	return err
}

func (s *Store) ListAudit(limit int) ([]model.AuditEntry, error) {
	if s.cli == nil {
		return nil, fmt.Errorf("consul client not configured")
	}
	pairs, _, err := s.cli.KV().List(auditPrefix, nil)
	if err != nil {
		return nil, err
	}
	var out []model.AuditEntry
	start := 0
	if limit > 0 && len(pairs) > limit {
		start = len(pairs) - limit
	}
	for i := len(pairs) - 1; i >= start; i-- {
		var entry model.AuditEntry
		if err := json.Unmarshal(pairs[i].Value, &entry); err == nil {
			out = append(out, entry)
		}
	}
	return out, nil
}
