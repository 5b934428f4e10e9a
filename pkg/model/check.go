package model

import "time"

// CheckResult captures the outcome of a single endpoint or asset probe.
// Never mutated after creation.
type CheckResult struct {
	URL          string `json:"url"`
	Method       string `json:"method"`
	Status       int    `json:"status"`
	ResponseTime int64  `json:"responseTimeMs"`
	Success      bool   `json:"success"`
	Error        string `json:"error,omitempty"`
}

// RouteValidation is the result of validating one route.
type RouteValidation struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}

// RegistryReport aggregates a full scan of the route registry.
type RegistryReport struct {
	TotalRoutes int      `json:"totalRoutes"`
	ValidRoutes int      `json:"validRoutes"`
	Errors      []string `json:"errors"`
}

// CheckRun summarizes one checker invocation, for history and streaming.
type CheckRun struct {
	ID         string    `json:"id"`
	Mode       string    `json:"mode"` // api/images/routes/all
	Errors     int       `json:"errors"`
	Warnings   int       `json:"warnings"`
	Success    bool      `json:"success"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
}
