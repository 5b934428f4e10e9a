// Package form implements the feedback form engine: it owns the per-session
// answer and error maps, validates required questions and contact info, and
// assembles submission payloads for the collecting backend.
package form

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"keephy-check/pkg/model"
)

// Submitter delivers a completed submission. The gateway's intake endpoint is
// one implementation; tests use fakes.
type Submitter interface {
	Submit(ctx context.Context, payload model.SubmissionPayload) error
}

var (
	// ErrValidationFailed is returned by Submit when the form does not
	// validate; per-field messages are available via Errors().
	ErrValidationFailed = errors.New("form validation failed")
	// ErrSubmitInProgress guards against double-submit from repeated input.
	ErrSubmitInProgress = errors.New("submission already in progress")
)

// Deliberately permissive, not RFC 5322.
var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// Engine collects answers for one form session. Not safe for concurrent use;
// one engine per respondent session.
type Engine struct {
	form       model.Form
	submitter  Submitter
	answers    map[string]interface{}
	errors     map[string]string
	contact    model.ContactInfo
	submitting bool
}

func NewEngine(form model.Form, submitter Submitter) *Engine {
	return &Engine{
		form:      form,
		submitter: submitter,
		answers:   map[string]interface{}{},
		errors:    map[string]string{},
	}
}

// SetAnswer records the answer for a question, overwriting any previous one.
// Any standing validation error for that question is cleared optimistically;
// re-validation happens on the next Validate call.
func (e *Engine) SetAnswer(questionID string, answer interface{}) {
	e.answers[questionID] = answer
	delete(e.errors, questionID)
}

// SetContact records respondent contact info for forms that collect it.
func (e *Engine) SetContact(name, email string) {
	e.contact = model.ContactInfo{Name: name, Email: email}
	delete(e.errors, "name")
	delete(e.errors, "email")
}

// Answers returns a copy of the current answer map.
func (e *Engine) Answers() map[string]interface{} {
	out := make(map[string]interface{}, len(e.answers))
	for k, v := range e.answers {
		out[k] = v
	}
	return out
}

// Errors returns a copy of the current validation error map, keyed by
// question ID (or "name"/"email" for contact fields).
func (e *Engine) Errors() map[string]string {
	out := make(map[string]string, len(e.errors))
	for k, v := range e.errors {
		out[k] = v
	}
	return out
}

// Validate recomputes the error map wholesale and reports whether the form
// can be submitted.
func (e *Engine) Validate() bool {
	errs := map[string]string{}

	for _, q := range e.form.Questions {
		if q.Required && !answered(e.answers[q.ID]) {
			errs[q.ID] = "This question is required"
		}
	}

	if e.form.Settings.CollectContact {
		if strings.TrimSpace(e.contact.Name) == "" {
			errs["name"] = "Name is required"
		}
		if strings.TrimSpace(e.contact.Email) == "" {
			errs["email"] = "Email is required"
		} else if !emailPattern.MatchString(e.contact.Email) {
			errs["email"] = "Please enter a valid email address"
		}
	}

	e.errors = errs
	return len(errs) == 0
}

// Submit validates and, on success, hands the assembled payload to the
// submitter. Answers are cleared after a successful submission.
func (e *Engine) Submit(ctx context.Context) error {
	if e.submitting {
		return ErrSubmitInProgress
	}
	if !e.Validate() {
		return ErrValidationFailed
	}

	e.submitting = true
	defer func() { e.submitting = false }()

	payload := model.SubmissionPayload{
		FormID:   e.form.ID,
		DeviceID: NewDeviceID(),
	}
	// Answer-map iteration order, not question display order.
	for id, answer := range e.answers {
		payload.Responses = append(payload.Responses, model.Response{QuestionID: id, Answer: answer})
	}
	if e.form.Settings.CollectContact {
		contact := e.contact
		payload.ContactInfo = &contact
	}

	if err := e.submitter.Submit(ctx, payload); err != nil {
		return fmt.Errorf("submit form %s: %w", e.form.ID, err)
	}

	e.answers = map[string]interface{}{}
	e.errors = map[string]string{}
	return nil
}

// NewDeviceID generates an opaque per-submission token. Uniqueness is
// best-effort (timestamp plus random suffix), not cryptographic.
func NewDeviceID() string {
	return fmt.Sprintf("device_%d_%s", time.Now().UnixMilli(), randomSuffix(9))
}

const suffixAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

func randomSuffix(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = suffixAlphabet[rand.Intn(len(suffixAlphabet))]
	}
	return string(b)
}

// answered reports whether a value counts as a real answer. Empty strings and
// zero ratings do not; an unanswered rating is distinct from "rated 0".
func answered(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case int:
		return t != 0
	case float64:
		return t != 0
	case json.Number:
		return t.String() != "0" && t.String() != ""
	}
	return true
}
