package model

import "time"

// Response pairs a question with the answer given for it.
type Response struct {
	QuestionID string      `json:"questionId"`
	Answer     interface{} `json:"answer"` // string or number
}

// ContactInfo is optional respondent identity collected with a submission.
type ContactInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SubmissionPayload is what the form engine hands to the submission backend.
// Response order follows answer-map iteration, not question display order.
type SubmissionPayload struct {
	FormID      string       `json:"formId"`
	Responses   []Response   `json:"responses"`
	DeviceID    string       `json:"deviceId"`
	ContactInfo *ContactInfo `json:"contactInfo,omitempty"`
}

// Submission is the persisted record of one accepted payload.
type Submission struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	FormID    string    `gorm:"index;size:64" json:"formId"`
	DeviceID  string    `gorm:"size:64" json:"deviceId"`
	Responses string    `json:"-"` // responses as raw JSON
	Name      string    `gorm:"size:128" json:"name,omitempty"`
	Email     string    `gorm:"size:128" json:"email,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
