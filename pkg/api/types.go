package api

import "keephy-check/pkg/model"

// SubmissionRequest is the intake payload for POST /api/v1/submissions.
type SubmissionRequest struct {
	FormID    string          `json:"formId" validate:"required"`
	Responses []ResponseInput `json:"responses" validate:"required,min=1,dive"`
	DeviceID  string          `json:"deviceId" validate:"required"`
	Contact   *ContactInput   `json:"contactInfo,omitempty" validate:"omitempty"`
}

type ResponseInput struct {
	QuestionID string      `json:"questionId" validate:"required"`
	Answer     interface{} `json:"answer" validate:"required"`
}

type ContactInput struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// RenderResponse carries a server-side rendered form.
type RenderResponse struct {
	Form   model.Form  `json:"form"`
	Fields interface{} `json:"fields"`
}

// StatusResponse is the /api/status body.
type StatusResponse struct {
	Status        string `json:"status"`
	Version       string `json:"version"`
	UptimeSeconds int64  `json:"uptimeSeconds"`
	Forms         int    `json:"forms"`
}

// CheckRunRequest triggers a server-side check run.
type CheckRunRequest struct {
	BaseURL string `json:"baseUrl,omitempty"`
	Mode    string `json:"mode,omitempty"` // routes (default) or api
}
