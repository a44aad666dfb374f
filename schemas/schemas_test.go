package schemas_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huppifluppi/survey-tool-cli/internal/document"
	internalschemas "github.com/huppifluppi/survey-tool-cli/internal/schemas"
	"github.com/huppifluppi/survey-tool-cli/schemas"
)

func TestSurveySchema_ValidJSON(t *testing.T) {
	var v map[string]interface{}
	require.NoError(t, json.Unmarshal(schemas.Survey, &v), "schema file should be valid JSON")

	assert.Equal(t, "http://json-schema.org/draft-07/schema#", v["$schema"])
	defs, ok := v["definitions"].(map[string]interface{})
	require.True(t, ok)
	for _, name := range []string{"header", "page", "content", "choiceQuestion", "likertQuestion", "sliderQuestion"} {
		assert.Contains(t, defs, name)
	}
}

func TestSurveySchema_Compiles(t *testing.T) {
	_, err := internalschemas.Compile(schemas.SurveyName, schemas.Survey)
	require.NoError(t, err)
}

func TestSurveySchema_AcceptsCompleteSurvey(t *testing.T) {
	raw := `title: Customer feedback
description: Tell us how we did
type: QUIZ
imagePath: images/logo.png
score:
  showQuestionScores: true
  showLeaderboard: true
  leaderboard:
    showScores: true
    showPlaceholder: false
    limit: 10
---
title: About you
content:
  - type: DATA
    title: Your name
    dataType: NAME
    useForLeaderboard: true
  - type: INFORMATION
    title: Welcome
    description: A few questions follow
---
content:
  - type: TEXT
    title: What did you like?
    multiline: true
  - type: CHOICE
    title: Pick a colour
    required: true
    choices:
      - title: Red
        score: 1
        correct: true
      - title: Blue
  - type: RATING
    title: Rate us
    level: 5
    symbol: STAR
    colorGradient: RED2GREEN
  - type: LIKERT
    title: Statements
    choices: [disagree, neutral, agree]
    statements:
      - title: The staff was friendly
        correctChoice: agree
  - type: DATETIME
    title: When did you visit?
    inputType: DATE
    correctDateAnswer: "2024-05-01"
  - type: SLIDER
    title: How far did you travel?
    start: 0
    end: 100
    steps: 10
    unit: km
`
	docs, err := document.Parse(raw)
	require.NoError(t, err)
	require.Len(t, docs, 3)

	s, err := internalschemas.Load()
	require.NoError(t, err)
	for i, doc := range docs {
		violations, err := internalschemas.Validate(doc, s)
		require.NoError(t, err)
		assert.Empty(t, violations, "document %d", i+1)
	}
}
