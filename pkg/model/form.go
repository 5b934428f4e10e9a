package model

// QuestionType tags the kind of input a question expects.
type QuestionType string

const (
	QuestionRating         QuestionType = "rating"
	QuestionText           QuestionType = "text"
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionYesNo          QuestionType = "yes_no"
)

// Option is one selectable choice of a multiple-choice question.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Question is a single prompt within a form. Immutable once loaded.
type Question struct {
	ID       string       `json:"id"`
	Type     QuestionType `json:"type"`
	Text     string       `json:"text"`
	Required bool         `json:"required"`
	Options  []Option     `json:"options,omitempty"`
	Order    int          `json:"order"`
}

// FormSettings controls submission behavior for a form.
type FormSettings struct {
	AllowAnonymous  bool   `json:"allowAnonymous"`
	CollectContact  bool   `json:"collectContact"`
	ThankYouMessage string `json:"thankYouMessage,omitempty"`
}

// Form is a collection of ordered questions plus settings, served by the gateway.
type Form struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Questions   []Question   `json:"questions"`
	Settings    FormSettings `json:"settings"`
}
