// Package check validates routes, assets and API endpoints against their
// expected contracts, both at runtime (per-run sessions probing a live
// gateway) and offline (batch scans of a source tree).
package check

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"keephy-check/pkg/model"
)

// TokenSource reports the locally persisted auth token, if any. Only the
// token's presence gates auth checks, never its validity.
type TokenSource interface {
	Token() (string, bool)
}

// FileTokenSource reads the token the web client persists to disk.
type FileTokenSource struct {
	Path string
}

func (f FileTokenSource) Token() (string, bool) {
	b, err := os.ReadFile(f.Path)
	if err != nil {
		return "", false
	}
	tok := strings.TrimSpace(string(b))
	return tok, tok != ""
}

// StaticTokenSource returns a fixed token. An empty string means no token.
type StaticTokenSource string

func (s StaticTokenSource) Token() (string, bool) {
	return string(s), s != ""
}

// Session accumulates errors for one validation run. Construct one per run
// and discard it afterwards; there is no shared state between sessions.
type Session struct {
	registry   []model.RouteConfig
	components map[string]struct{}
	tokens     TokenSource

	mu     sync.Mutex
	errors []string
}

// NewSession builds a session over a route registry and component allow-list.
// tokens may be nil, in which case no token is ever found.
func NewSession(registry []model.RouteConfig, components []string, tokens TokenSource) *Session {
	set := make(map[string]struct{}, len(components))
	for _, c := range components {
		set[c] = struct{}{}
	}
	return &Session{registry: registry, components: set, tokens: tokens}
}

// ValidateRoute checks a path against the registry. Each check appends its
// findings independently; a route can report several unrelated problems at
// once. Matching is exact, so parameterized registry paths never match
// concrete URLs.
func (s *Session) ValidateRoute(path string) model.RouteValidation {
	route, ok := findRoute(s.registry, path)
	if !ok {
		err := fmt.Sprintf("Route %s not found in route configuration", path)
		s.record(err)
		return model.RouteValidation{IsValid: false, Errors: []string{err}}
	}

	var errs []string
	errs = append(errs, s.checkComponentExists(route.Component)...)
	errs = append(errs, s.checkAuthRequirements(route, path)...)
	errs = append(errs, s.checkMetaInformation(route)...)
	s.record(errs...)

	if errs == nil {
		errs = []string{}
	}
	return model.RouteValidation{IsValid: len(errs) == 0, Errors: errs}
}

// ValidateAllRoutes scans the whole registry without fail-fast and aggregates
// totals and every error found.
func (s *Session) ValidateAllRoutes() model.RegistryReport {
	report := model.RegistryReport{
		TotalRoutes: len(s.registry),
		Errors:      []string{},
	}
	for _, route := range s.registry {
		v := s.ValidateRoute(route.Path)
		if v.IsValid {
			report.ValidRoutes++
		} else {
			report.Errors = append(report.Errors, v.Errors...)
		}
	}
	return report
}

func (s *Session) checkComponentExists(component string) []string {
	if _, ok := s.components[component]; !ok {
		return []string{fmt.Sprintf("Component %s not found or not properly exported", component)}
	}
	return nil
}

func (s *Session) checkAuthRequirements(route model.RouteConfig, path string) []string {
	if !route.RequiresAuth {
		return nil
	}
	if s.tokens != nil {
		if _, ok := s.tokens.Token(); ok {
			return nil
		}
	}
	return []string{fmt.Sprintf("Route %s requires authentication but no token found", path)}
}

func (s *Session) checkMetaInformation(route model.RouteConfig) []string {
	if route.Meta == nil || route.Meta.Title == "" {
		return []string{fmt.Sprintf("Route %s missing required meta title", route.Path)}
	}
	return nil
}

// Errors returns a copy of everything recorded so far.
func (s *Session) Errors() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.errors))
	copy(out, s.errors)
	return out
}

// ClearErrors resets the session log. Callers needing isolated results call
// this between runs.
func (s *Session) ClearErrors() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors = nil
}

func (s *Session) record(errs ...string) {
	if len(errs) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors = append(s.errors, errs...)
}

func findRoute(registry []model.RouteConfig, path string) (model.RouteConfig, bool) {
	for _, r := range registry {
		if r.Path == path {
			return r, true
		}
	}
	return model.RouteConfig{}, false
}
