//go:build consul

package store

import (
	"keephy-check/pkg/consul"
)

// NewConsulStore creates a Consul-backed store (requires build tag consul).
func NewConsulStore(addr string) FeedbackStore {
	return consul.NewStore(addr)
}
