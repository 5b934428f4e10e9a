package check

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keephy-check/pkg/model"
)

func TestRouteScannerComponentOnDisk(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "components"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "components", "HomePage.tsx"), []byte("export default () => null;"), 0o644))

	registry := []model.RouteConfig{
		{Path: "/", Component: "HomePage", Meta: &model.RouteMeta{Title: "Home", Description: "d"}},
		{Path: "/ghost", Component: "GhostPage", Meta: &model.RouteMeta{Title: "Ghost", Description: "d"}},
	}

	var out bytes.Buffer
	report := NewRouteScanner(root, registry, &out).Run()

	assert.False(t, report.Success)
	assert.Contains(t, report.Errors, "Component GhostPage not found")
	assert.NotContains(t, report.Errors, "Component HomePage not found")
}

func TestRouteScannerChecksBothCandidateDirs(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "app"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "app", "ThankYouPage.tsx"), []byte(""), 0o644))

	registry := []model.RouteConfig{
		{Path: "/thank-you", Component: "ThankYouPage", Meta: &model.RouteMeta{Title: "Thanks", Description: "d"}},
	}

	var out bytes.Buffer
	report := NewRouteScanner(root, registry, &out).Run()
	assert.True(t, report.Success)
}

func TestRouteScannerMetaFindings(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "app"), 0o755))
	for _, c := range []string{"A", "B", "C"} {
		require.NoError(t, os.WriteFile(filepath.Join(root, "app", c+".tsx"), []byte(""), 0o644))
	}

	registry := []model.RouteConfig{
		{Path: "/no-meta", Component: "A"},
		{Path: "/no-title", Component: "B", Meta: &model.RouteMeta{Description: "d"}},
		{Path: "/no-desc", Component: "C", Meta: &model.RouteMeta{Title: "T"}},
	}

	var out bytes.Buffer
	report := NewRouteScanner(root, registry, &out).Run()

	assert.Contains(t, report.Warnings, "Route /no-meta missing meta information")
	assert.Contains(t, report.Errors, "Route /no-title missing required title")
	assert.Contains(t, report.Warnings, "Route /no-desc missing description")
}

func TestRouteScannerAuthWithoutRolesWarns(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "app"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "app", "AdminRedirect.tsx"), []byte(""), 0o644))

	registry := []model.RouteConfig{
		{Path: "/admin", Component: "AdminRedirect", RequiresAuth: true, Meta: &model.RouteMeta{Title: "Admin", Description: "d"}},
	}

	var out bytes.Buffer
	report := NewRouteScanner(root, registry, &out).Run()

	assert.True(t, report.Success, "missing role list is permissive by default")
	assert.Contains(t, report.Warnings, "Route /admin requires auth but has no role restrictions")
}
