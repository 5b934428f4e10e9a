package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keephy-check/pkg/model"
)

func TestRendererForFallsBackToText(t *testing.T) {
	q := model.Question{ID: "q1", Type: "slider", Text: "Unknown kind"}
	f := RendererFor(q.Type).Render(q, "hello", "")

	assert.Equal(t, "text", f.Kind, "unknown question types render as text by contract")
	assert.Equal(t, "hello", f.Value)
}

func TestRatingRenderer(t *testing.T) {
	q := model.Question{ID: "q1", Type: model.QuestionRating, Text: "Rate us", Required: true}

	t.Run("unanswered has no value", func(t *testing.T) {
		f := RendererFor(q.Type).Render(q, nil, "")
		assert.Equal(t, 5, f.Scale)
		assert.Nil(t, f.Value)
	})

	t.Run("valid selection", func(t *testing.T) {
		f := RendererFor(q.Type).Render(q, 4, "")
		assert.Equal(t, 4, f.Value)
	})

	t.Run("out of range is dropped", func(t *testing.T) {
		f := RendererFor(q.Type).Render(q, 9, "")
		assert.Nil(t, f.Value)
	})

	t.Run("zero is not a rating", func(t *testing.T) {
		f := RendererFor(q.Type).Render(q, 0, "")
		assert.Nil(t, f.Value)
	})
}

func TestMultipleChoiceRenderer(t *testing.T) {
	q := model.Question{
		ID:   "q1",
		Type: model.QuestionMultipleChoice,
		Text: "Pick one",
		Options: []model.Option{
			{Label: "Dining", Value: "dining"},
			{Label: "Event", Value: "event"},
		},
	}

	t.Run("known value selected", func(t *testing.T) {
		f := RendererFor(q.Type).Render(q, "event", "")
		assert.Equal(t, "event", f.Value)
		assert.Len(t, f.Options, 2)
	})

	t.Run("unknown value never pre-selected", func(t *testing.T) {
		f := RendererFor(q.Type).Render(q, "drive-through", "")
		assert.Nil(t, f.Value)
	})
}

func TestYesNoRenderer(t *testing.T) {
	q := model.Question{ID: "q1", Type: model.QuestionYesNo, Text: "Recommend us?"}

	f := RendererFor(q.Type).Render(q, "yes", "")
	assert.Equal(t, []string{"yes", "no"}, f.Choices)
	assert.Equal(t, "yes", f.Value)

	f = RendererFor(q.Type).Render(q, "maybe", "")
	assert.Nil(t, f.Value, "only the yes/no literals are accepted")
}

func TestRenderFieldsDisplayOrder(t *testing.T) {
	form := model.Form{
		ID: "form-1",
		Questions: []model.Question{
			{ID: "q-last", Type: model.QuestionText, Text: "Last", Order: 9},
			{ID: "q-first", Type: model.QuestionRating, Text: "First", Order: 1},
			{ID: "q-mid", Type: model.QuestionYesNo, Text: "Mid", Order: 5},
		},
	}
	e := NewEngine(form, nil)
	e.SetAnswer("q-first", 3)

	fields := e.RenderFields()
	require.Len(t, fields, 3)
	assert.Equal(t, "q-first", fields[0].QuestionID)
	assert.Equal(t, "q-mid", fields[1].QuestionID)
	assert.Equal(t, "q-last", fields[2].QuestionID)
	assert.Equal(t, 3, fields[0].Value)
}

func TestRenderFieldsCarriesErrors(t *testing.T) {
	form := model.Form{
		ID: "form-1",
		Questions: []model.Question{
			{ID: "q1", Type: model.QuestionText, Text: "Required", Required: true, Order: 1},
		},
	}
	e := NewEngine(form, nil)
	e.Validate()

	fields := e.RenderFields()
	require.Len(t, fields, 1)
	assert.Equal(t, "This question is required", fields[0].Error)
}
