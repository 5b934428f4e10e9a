package check

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"keephy-check/pkg/model"
)

// RouteScanner is the offline counterpart of the route session: instead of a
// component allow-list it stats component files on disk.
type RouteScanner struct {
	Root          string
	ComponentDirs []string // candidate dirs for component files, relative to Root
	Registry      []model.RouteConfig
	Out           io.Writer

	errors   []string
	warnings []string
}

func NewRouteScanner(root string, registry []model.RouteConfig, out io.Writer) *RouteScanner {
	if out == nil {
		out = os.Stdout
	}
	return &RouteScanner{
		Root:          root,
		ComponentDirs: []string{"app", "components"},
		Registry:      registry,
		Out:           out,
	}
}

// checkComponentExists looks for <Component>.tsx in any candidate dir.
func (s *RouteScanner) checkComponentExists(component string) bool {
	for _, dir := range s.ComponentDirs {
		path := filepath.Join(s.Root, dir, component+".tsx")
		if _, err := os.Stat(path); err == nil {
			return true
		}
	}
	s.errors = append(s.errors, fmt.Sprintf("Component %s not found", component))
	return false
}

// checkMetaInformation errors on a missing title and warns on missing meta or
// description.
func (s *RouteScanner) checkMetaInformation(route model.RouteConfig) bool {
	if route.Meta == nil {
		s.warnings = append(s.warnings, fmt.Sprintf("Route %s missing meta information", route.Path))
		return false
	}
	if route.Meta.Title == "" {
		s.errors = append(s.errors, fmt.Sprintf("Route %s missing required title", route.Path))
		return false
	}
	if route.Meta.Description == "" {
		s.warnings = append(s.warnings, fmt.Sprintf("Route %s missing description", route.Path))
	}
	return true
}

// Run cross-validates every registry entry. Authenticated routes without an
// explicit role list only warn; permissive-by-default is intentional.
func (s *RouteScanner) Run() Report {
	logf(s.Out, sevInfo, "🚀 Starting Route Validation...")
	logf(s.Out, sevInfo, "Checking all configured routes...")

	for _, route := range s.Registry {
		logf(s.Out, sevInfo, "Checking route: %s", route.Path)
		s.checkComponentExists(route.Component)
		s.checkMetaInformation(route)
		if route.RequiresAuth && len(route.AllowedRoles) == 0 {
			s.warnings = append(s.warnings, fmt.Sprintf("Route %s requires auth but has no role restrictions", route.Path))
		}
	}

	printFindings(s.Out, "ROUTE VALIDATION REPORT", s.errors, s.warnings)

	if s.errors == nil {
		s.errors = []string{}
	}
	if s.warnings == nil {
		s.warnings = []string{}
	}
	return Report{
		Errors:   s.errors,
		Warnings: s.warnings,
		Success:  len(s.errors) == 0,
	}
}
