package form

import (
	"encoding/json"
	"sort"

	"keephy-check/pkg/model"
)

// Field is the rendered view of one question: everything a client needs to
// draw the input and its current state. Renderers are pure; all state lives
// in the engine.
type Field struct {
	QuestionID string         `json:"questionId"`
	Kind       string         `json:"kind"`
	Label      string         `json:"label"`
	Required   bool           `json:"required"`
	Value      interface{}    `json:"value,omitempty"`
	Error      string         `json:"error,omitempty"`
	Scale      int            `json:"scale,omitempty"`   // rating only
	Options    []model.Option `json:"options,omitempty"` // multiple choice only
	Choices    []string       `json:"choices,omitempty"` // yes/no only
}

// Renderer turns a question plus its current answer into a Field.
type Renderer interface {
	Render(q model.Question, value interface{}, errMsg string) Field
}

// RendererFor selects the renderer for a question type. Unknown types fall
// back to the text renderer; that fallback is part of the contract, not an
// error.
func RendererFor(t model.QuestionType) Renderer {
	switch t {
	case model.QuestionRating:
		return ratingRenderer{}
	case model.QuestionText:
		return textRenderer{}
	case model.QuestionMultipleChoice:
		return multipleChoiceRenderer{}
	case model.QuestionYesNo:
		return yesNoRenderer{}
	default:
		return textRenderer{}
	}
}

// RenderFields renders every question of the form in display order.
func (e *Engine) RenderFields() []Field {
	questions := make([]model.Question, len(e.form.Questions))
	copy(questions, e.form.Questions)
	sort.SliceStable(questions, func(i, j int) bool {
		return questions[i].Order < questions[j].Order
	})

	fields := make([]Field, 0, len(questions))
	for _, q := range questions {
		r := RendererFor(q.Type)
		fields = append(fields, r.Render(q, e.answers[q.ID], e.errors[q.ID]))
	}
	return fields
}

type ratingRenderer struct{}

// Render exposes the 1..5 star scale. An unrated question carries no value;
// zero never appears as a selection.
func (ratingRenderer) Render(q model.Question, value interface{}, errMsg string) Field {
	f := Field{
		QuestionID: q.ID,
		Kind:       string(model.QuestionRating),
		Label:      q.Text,
		Required:   q.Required,
		Error:      errMsg,
		Scale:      5,
	}
	if n, ok := ratingValue(value); ok && n >= 1 && n <= 5 {
		f.Value = n
	}
	return f
}

type textRenderer struct{}

func (textRenderer) Render(q model.Question, value interface{}, errMsg string) Field {
	f := Field{
		QuestionID: q.ID,
		Kind:       string(model.QuestionText),
		Label:      q.Text,
		Required:   q.Required,
		Error:      errMsg,
	}
	if s, ok := value.(string); ok && s != "" {
		f.Value = s
	}
	return f
}

type multipleChoiceRenderer struct{}

// Render pre-selects only values present in the option set; unknown or
// missing values leave the field unselected.
func (multipleChoiceRenderer) Render(q model.Question, value interface{}, errMsg string) Field {
	f := Field{
		QuestionID: q.ID,
		Kind:       string(model.QuestionMultipleChoice),
		Label:      q.Text,
		Required:   q.Required,
		Error:      errMsg,
		Options:    q.Options,
	}
	if s, ok := value.(string); ok {
		for _, opt := range q.Options {
			if opt.Value == s {
				f.Value = s
				break
			}
		}
	}
	return f
}

type yesNoRenderer struct{}

func (yesNoRenderer) Render(q model.Question, value interface{}, errMsg string) Field {
	f := Field{
		QuestionID: q.ID,
		Kind:       string(model.QuestionYesNo),
		Label:      q.Text,
		Required:   q.Required,
		Error:      errMsg,
		Choices:    []string{"yes", "no"},
	}
	if s, ok := value.(string); ok && (s == "yes" || s == "no") {
		f.Value = s
	}
	return f
}

func ratingValue(v interface{}) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case float64:
		return int(t), true
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return int(n), true
		}
	}
	return 0, false
}
