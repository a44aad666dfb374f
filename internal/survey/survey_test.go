package survey

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huppifluppi/survey-tool-cli/internal/document"
)

const quiz = `title: Space quiz
description: How well do you know the solar system?
type: QUIZ
score:
  showQuestionScores: true
---
title: Warm up
content:
  - type: INFORMATION
    title: Welcome
    description: Five questions follow
  - type: DATA
    title: Your nickname
    dataType: NICKNAME
    useForLeaderboard: true
---
content:
  - type: CHOICE
    title: Largest planet?
    required: true
    choices:
      - title: Jupiter
        score: 2
        correct: true
      - title: Mars
  - type: TEXT
    title: Closest star?
    correctAnswer: Sun
  - type: RATING
    title: Fun so far?
  - type: SLIDER
    title: Distance to the moon
    start: 0
    end: 500000
    unit: km
    correctAnswer: 384400
  - type: LIKERT
    title: Opinions
    choices: [never, maybe, always]
    statements:
      - title: Pluto is a planet
`

func parse(t *testing.T, raw string) []document.Value {
	t.Helper()
	docs, err := document.Parse(raw)
	require.NoError(t, err)
	return docs
}

func TestFromDocuments(t *testing.T) {
	s, err := FromDocuments(parse(t, quiz))
	require.NoError(t, err)

	assert.Equal(t, "Space quiz", s.Header.Title)
	assert.Equal(t, TypeQuiz, s.Header.Type)
	assert.True(t, s.Header.Score.ShowQuestionScores)
	// untouched settings keep their defaults
	assert.True(t, s.Header.Score.ShowLeaderboard)
	assert.Equal(t, 10, s.Header.Score.Leaderboard.Limit)

	require.Len(t, s.Pages, 2)
	require.Len(t, s.Pages[0].Content, 2)
	require.NotNil(t, s.Pages[0].Content[0].Information)
	assert.Equal(t, "Five questions follow", s.Pages[0].Content[0].Information.Description)
	require.NotNil(t, s.Pages[0].Content[1].Data)
	assert.Equal(t, "NICKNAME", s.Pages[0].Content[1].Data.DataType)

	items := s.Pages[1].Content
	require.Len(t, items, 5)

	choice := items[0]
	assert.True(t, choice.Required)
	require.NotNil(t, choice.Choice)
	require.Len(t, choice.Choice.Choices, 2)
	require.NotNil(t, choice.Choice.Choices[0].Score)
	assert.Equal(t, 2, *choice.Choice.Choices[0].Score)
	assert.Nil(t, choice.Choice.Choices[1].Score)
	assert.Nil(t, choice.Text)

	require.NotNil(t, items[1].Text)
	assert.Equal(t, "Sun", items[1].Text.CorrectAnswer)

	require.NotNil(t, items[2].Rating)
	assert.Equal(t, &RatingQuestion{Level: 5, Symbol: "STAR", ColorGradient: "NONE"}, items[2].Rating)

	require.NotNil(t, items[3].Slider)
	require.NotNil(t, items[3].Slider.CorrectAnswer)
	assert.InDelta(t, 384400, *items[3].Slider.CorrectAnswer, 0.001)

	require.NotNil(t, items[4].Likert)
	assert.Len(t, items[4].Likert.Choices, 3)
}

func TestFromDocuments_HeaderDefaults(t *testing.T) {
	s, err := FromDocuments(parse(t, "title: t\ndescription: d\n---\ncontent:\n  - type: TEXT\n    title: q\n"))
	require.NoError(t, err)
	assert.Equal(t, NewHeader().Score, s.Header.Score)
	assert.Equal(t, TypeSurvey, s.Header.Type)
}

func TestFromDocuments_Errors(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantDoc int
		wantMsg string
	}{
		{"no documents", "", 0, "no survey header"},
		{"header only", "title: t\ndescription: d\n", 0, "survey has no pages"},
		{"header without title", "description: d\n---\ncontent:\n  - type: TEXT\n    title: q\n", 0, "invalid header"},
		{"unknown content type", "title: t\n---\ncontent:\n  - type: VIDEO\n    title: v\n", 1, "unknown content type"},
		{"page without content", "title: t\n---\ntitle: p\n---\ntitle: empty\ncontent: []\n", 1, "invalid page"},
		{"choice without choices", "title: t\n---\ncontent:\n  - type: CHOICE\n    title: c\n", 1, "invalid page"},
		{"wrong field type", "title: t\n---\ncontent:\n  - type: SLIDER\n    title: s\n    start: low\n", 1, "invalid page"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromDocuments(parse(t, tt.raw))
			require.Error(t, err)

			var modelErr *ModelError
			require.True(t, errors.As(err, &modelErr))
			assert.Equal(t, tt.wantDoc, modelErr.Document)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestFromDocuments_ValidationErrorIsExposed(t *testing.T) {
	_, err := FromDocuments(parse(t, "title: t\n---\ncontent:\n  - type: RATING\n    title: r\n    level: 1\n"))
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "Level", verrs[0].Field())
}

func TestSummary(t *testing.T) {
	s, err := FromDocuments(parse(t, quiz))
	require.NoError(t, err)

	sum := s.Summary()
	assert.Equal(t, "Space quiz", sum.Title)
	assert.Equal(t, TypeQuiz, sum.Type)
	assert.Equal(t, 6, sum.Questions)
	require.Len(t, sum.Pages, 2)
	assert.Equal(t, "Warm up", sum.Pages[0].Title)
	assert.Equal(t, ItemSummary{Type: ContentChoice, Title: "Largest planet?", Required: true}, sum.Pages[1].Items[0])
}

func TestModelError_Error(t *testing.T) {
	err := &ModelError{Document: 1, Message: "invalid page", Cause: errors.New("boom")}
	assert.Equal(t, "document 2: invalid page: boom", err.Error())
	assert.Equal(t, "document 1: no survey header", (&ModelError{Message: "no survey header"}).Error())
}
