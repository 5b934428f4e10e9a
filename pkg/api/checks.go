package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"

	"keephy-check/pkg/check"
	"keephy-check/pkg/model"
	"keephy-check/pkg/routes"
	"keephy-check/pkg/store"
)

// RegisterCheckRoutes wires on-demand check runs and their live stream.
func RegisterCheckRoutes(mux *http.ServeMux, st store.FeedbackStore, hub *CheckHub) {
	mux.HandleFunc("/api/v1/checks/ws", hub.HandleWS)

	mux.HandleFunc("/api/v1/checks/runs", func(w http.ResponseWriter, r *http.Request) {
		if !authFuncJWT(r) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		runs, err := st.ListCheckRuns(50)
		if err != nil {
			http.Error(w, "failed to list runs", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, runs)
	})

	mux.HandleFunc("/api/v1/checks/run", func(w http.ResponseWriter, r *http.Request) {
		if !authFuncJWT(r) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req CheckRunRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
			http.Error(w, "invalid payload", http.StatusBadRequest)
			return
		}

		run, result := executeRun(r.Context(), req, hub)
		if err := st.SaveCheckRun(run); err != nil {
			http.Error(w, "failed to persist run", http.StatusInternalServerError)
			return
		}
		_ = st.AppendAudit(model.AuditEntry{
			Actor:     "gateway",
			Action:    "check_run",
			Target:    run.Mode,
			Detail:    run.ID,
			Timestamp: time.Now(),
		})
		writeJSON(w, http.StatusOK, result)
	})
}

// checkTokenSource resolves the token file the web client persists, when one
// is configured. Without it auth-gated routes report missing tokens.
func checkTokenSource() check.TokenSource {
	if p := os.Getenv("KEEPHY_CHECK_TOKEN_FILE"); p != "" {
		return check.FileTokenSource{Path: p}
	}
	return nil
}

// executeRun validates the registry (and optionally probes endpoints),
// streaming each result to hub subscribers as it lands.
func executeRun(ctx context.Context, req CheckRunRequest, hub *CheckHub) (model.CheckRun, map[string]interface{}) {
	run := model.CheckRun{
		ID:        uuid.NewString(),
		Mode:      req.Mode,
		StartedAt: time.Now(),
	}
	if run.Mode == "" {
		run.Mode = "routes"
	}
	hub.Broadcast(CheckEvent{Type: "run_started", RunID: run.ID, Payload: run.Mode})

	result := map[string]interface{}{"runId": run.ID, "mode": run.Mode}

	switch run.Mode {
	case "api":
		base := req.BaseURL
		if base == "" {
			base = "http://localhost:8080"
		}
		checker := check.NewAPIChecker(io.Discard)
		var results []model.CheckResult
		errs := 0
		for _, ep := range check.DefaultEndpoints(base) {
			res := checker.CheckEndpoint(ctx, ep)
			if !res.Success {
				errs++
			}
			results = append(results, res)
			hub.Broadcast(CheckEvent{Type: "probe_result", RunID: run.ID, Payload: res})
		}
		run.Errors = errs
		run.Success = errs == 0
		result["results"] = results
	default:
		session := check.NewSession(routes.Registry, routes.Components, checkTokenSource())
		report := model.RegistryReport{TotalRoutes: len(routes.Registry)}
		func() {
			defer session.CapturePanics("route check run")
			for _, route := range routes.Registry {
				v := session.ValidateRoute(route.Path)
				if v.IsValid {
					report.ValidRoutes++
				}
				hub.Broadcast(CheckEvent{Type: "route_result", RunID: run.ID, Payload: map[string]interface{}{
					"path":       route.Path,
					"validation": v,
				}})
			}
		}()
		// ValidateRoute records into the session log, so a captured panic
		// surfaces in the report alongside the validation errors.
		report.Errors = session.Errors()
		run.Errors = len(report.Errors)
		run.Success = run.Errors == 0
		result["report"] = report
	}

	run.FinishedAt = time.Now()
	hub.Broadcast(CheckEvent{Type: "run_finished", RunID: run.ID, Payload: run})
	return run, result
}
