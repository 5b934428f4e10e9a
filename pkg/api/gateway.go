package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"keephy-check/pkg/form"
	"keephy-check/pkg/model"
	"keephy-check/pkg/store"
	"keephy-check/pkg/version"
)

var validate = validator.New()

var startedAt = time.Now()

// RegisterRoutes wires the gateway HTTP surface on the provided mux. db may
// be nil; endpoints needing it respond 503.
func RegisterRoutes(mux *http.ServeMux, st store.FeedbackStore, db *gorm.DB) {
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("keephy gateway"))
	})

	liveness := func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
	mux.HandleFunc("/health", liveness)
	mux.HandleFunc("/api/health", liveness)

	mux.HandleFunc("/api/status", func(w http.ResponseWriter, r *http.Request) {
		forms, _ := st.ListForms()
		writeJSON(w, http.StatusOK, StatusResponse{
			Status:        "ok",
			Version:       version.Build,
			UptimeSeconds: int64(time.Since(startedAt).Seconds()),
			Forms:         len(forms),
		})
	})

	mux.HandleFunc("/api/forms", func(w http.ResponseWriter, r *http.Request) {
		if !authFuncJWT(r) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		forms, err := st.ListForms()
		if err != nil {
			http.Error(w, "failed to list forms", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, forms)
	})

	mux.HandleFunc("/api/organizations", protectedStatic([]map[string]string{
		{"id": "org-demo", "name": "Demo Organization"},
	}))
	mux.HandleFunc("/api/notifications", protectedStatic([]map[string]string{}))

	mux.HandleFunc("/api/submissions", func(w http.ResponseWriter, r *http.Request) {
		if !authFuncJWT(r) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if db == nil {
			http.Error(w, "submission store unavailable", http.StatusServiceUnavailable)
			return
		}
		var subs []model.Submission
		if err := db.Order("created_at desc").Limit(100).Find(&subs).Error; err != nil {
			http.Error(w, "failed to list submissions", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, subs)
	})

	mux.HandleFunc("/api/analytics", func(w http.ResponseWriter, r *http.Request) {
		if !authFuncJWT(r) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		counts := map[string]int64{}
		if db != nil {
			rows, err := db.Model(&model.Submission{}).Select("form_id, count(*) as n").Group("form_id").Rows()
			if err == nil {
				defer rows.Close()
				for rows.Next() {
					var formID string
					var n int64
					if err := rows.Scan(&formID, &n); err == nil {
						counts[formID] = n
					}
				}
			}
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"submissionsByForm": counts})
	})

	mux.HandleFunc("/api/v1/forms/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		rest := strings.TrimPrefix(r.URL.Path, "/api/v1/forms/")
		id, op, _ := strings.Cut(rest, "/")
		if id == "" || op != "render" {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		f, ok, err := st.GetForm(id)
		if err != nil {
			http.Error(w, "failed to load form", http.StatusInternalServerError)
			return
		}
		if !ok {
			http.Error(w, "form not found", http.StatusNotFound)
			return
		}
		engine := form.NewEngine(f, nil)
		writeJSON(w, http.StatusOK, RenderResponse{Form: f, Fields: engine.RenderFields()})
	})

	mux.HandleFunc("/api/v1/submissions", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req SubmissionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid payload", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, "invalid payload: "+err.Error(), http.StatusBadRequest)
			return
		}
		if _, ok, _ := st.GetForm(req.FormID); !ok {
			http.Error(w, "form not found", http.StatusNotFound)
			return
		}

		sub := model.Submission{
			ID:        uuid.NewString(),
			FormID:    req.FormID,
			DeviceID:  req.DeviceID,
			CreatedAt: time.Now(),
		}
		if raw, err := json.Marshal(req.Responses); err == nil {
			sub.Responses = string(raw)
		}
		if req.Contact != nil {
			sub.Name = req.Contact.Name
			sub.Email = req.Contact.Email
		}
		if db != nil {
			if err := db.Create(&sub).Error; err != nil {
				http.Error(w, "failed to persist submission", http.StatusInternalServerError)
				return
			}
		}
		_ = st.AppendAudit(model.AuditEntry{
			Actor:     req.DeviceID,
			Action:    "submit",
			Target:    req.FormID,
			Detail:    "feedback submission accepted",
			Timestamp: time.Now(),
		})
		writeJSON(w, http.StatusCreated, map[string]string{"id": sub.ID})
	})

	mux.HandleFunc("/api/v1/audit", func(w http.ResponseWriter, r *http.Request) {
		if !authFuncJWT(r) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		entries, err := st.ListAudit(100)
		if err != nil {
			http.Error(w, "failed to list audit", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, entries)
	})
}

// protectedStatic serves a fixed JSON body behind the auth gate.
func protectedStatic(body interface{}) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !authFuncJWT(r) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, body)
	}
}

// Recover converts handler panics into 500 responses so one bad request
// cannot take the gateway down.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic serving %s: %v", r.URL.Path, rec)
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to write response: %v", err)
	}
}
