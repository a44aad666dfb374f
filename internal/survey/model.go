// Package survey provides the typed, read-only model of a survey configuration.
// It is built from already schema-checked documents and is used for listing.
package survey

// Type distinguishes a plain survey from a scored quiz.
type Type string

// Survey types.
const (
	TypeSurvey Type = "SURVEY"
	TypeQuiz   Type = "QUIZ"
)

// ContentType is the kind of a page content item.
type ContentType string

// Content types.
const (
	ContentText        ContentType = "TEXT"
	ContentChoice      ContentType = "CHOICE"
	ContentData        ContentType = "DATA"
	ContentRating      ContentType = "RATING"
	ContentLikert      ContentType = "LIKERT"
	ContentInformation ContentType = "INFORMATION"
	ContentDateTime    ContentType = "DATETIME"
	ContentSlider      ContentType = "SLIDER"
)

// Survey is a complete configuration: the header document followed by its pages.
type Survey struct {
	Header Header
	Pages  []Page
}

// Header is the first document of a configuration.
type Header struct {
	Title       string        `json:"title" validate:"required"`
	Description string        `json:"description"`
	Type        Type          `json:"type" validate:"oneof=SURVEY QUIZ"`
	ImagePath   string        `json:"imagePath,omitempty"`
	Score       ScoreSettings `json:"score"`
}

// ScoreSettings are the global scoring options.
type ScoreSettings struct {
	ShowQuestionScores bool                `json:"showQuestionScores"`
	ShowLeaderboard    bool                `json:"showLeaderboard"`
	Leaderboard        LeaderboardSettings `json:"leaderboard"`
}

// LeaderboardSettings configure the leaderboard.
type LeaderboardSettings struct {
	ShowScores      bool `json:"showScores"`
	ShowPlaceholder bool `json:"showPlaceholder"`
	Limit           int  `json:"limit" validate:"min=1"`
}

// Page is one page document.
type Page struct {
	Title       string    `json:"title,omitempty"`
	Description string    `json:"description,omitempty"`
	ImagePath   string    `json:"imagePath,omitempty"`
	Content     []Content `json:"content" validate:"min=1,dive"`
}

// Content is one item of a page. Exactly the member matching Type is set.
type Content struct {
	Type     ContentType `validate:"required,oneof=TEXT CHOICE DATA RATING LIKERT INFORMATION DATETIME SLIDER"`
	Title    string      `validate:"required"`
	Required bool

	Text        *TextQuestion
	Choice      *ChoiceQuestion
	Data        *DataQuestion
	Rating      *RatingQuestion
	Likert      *LikertQuestion
	Information *InformationBlock
	DateTime    *DateTimeQuestion
	Slider      *SliderQuestion
}

// TextQuestion is a free text question.
type TextQuestion struct {
	Multiline            bool     `json:"multiline"`
	Pattern              string   `json:"pattern,omitempty"`
	Score                *int     `json:"score,omitempty" validate:"omitempty,min=0"`
	CorrectAnswer        string   `json:"correctAnswer,omitempty"`
	CorrectAnswerPattern string   `json:"correctAnswerPattern,omitempty"`
	CorrectAnswerList    []string `json:"correctAnswerList,omitempty"`
}

// ChoiceQuestion lets the participant pick from a list.
type ChoiceQuestion struct {
	Multiple   bool         `json:"multiple"`
	Limit      int          `json:"limit" validate:"min=0"`
	Dropdown   bool         `json:"dropdown"`
	Horizontal bool         `json:"horizontal"`
	Choices    []ChoiceItem `json:"choices" validate:"min=1,dive"`
}

// ChoiceItem is one selectable answer.
type ChoiceItem struct {
	Title   string `json:"title" validate:"required"`
	Score   *int   `json:"score,omitempty" validate:"omitempty,min=0"`
	Correct bool   `json:"correct"`
}

// DataQuestion captures participant details.
type DataQuestion struct {
	DataType          string `json:"dataType" validate:"oneof=NAME EMAIL PHONE CUSTOM NICKNAME AGE BIRTHDAY"`
	ValidationPattern string `json:"validationPattern,omitempty"`
	UseForLeaderboard bool   `json:"useForLeaderboard"`
}

// DateTimeQuestion asks for a date, a time or both.
type DateTimeQuestion struct {
	InputType           string `json:"inputType" validate:"oneof=DATE TIME DATETIME"`
	InitialSelectedTime string `json:"initialSelectedTime,omitempty"`
	InitialSelectedDate string `json:"initialSelectedDate,omitempty"`
	Score               *int   `json:"score,omitempty" validate:"omitempty,min=0"`
	CorrectTimeAnswer   string `json:"correctTimeAnswer,omitempty"`
	CorrectDateAnswer   string `json:"correctDateAnswer,omitempty"`
}

// RatingQuestion is a rating on a fixed scale.
type RatingQuestion struct {
	Level         int    `json:"level" validate:"min=2,max=10"`
	Symbol        string `json:"symbol" validate:"oneof=STAR HEART LIKE SMILE NUMBER"`
	ColorGradient string `json:"colorGradient" validate:"oneof=NONE RED2GREEN"`
}

// SliderQuestion picks a number, or a range, between Start and End.
type SliderQuestion struct {
	Range         bool     `json:"range"`
	Start         float64  `json:"start"`
	End           float64  `json:"end"`
	Steps         int      `json:"steps" validate:"min=0"`
	ShowDecimals  bool     `json:"showDecimals"`
	Unit          string   `json:"unit,omitempty"`
	Score         *int     `json:"score,omitempty" validate:"omitempty,min=0"`
	CorrectAnswer *float64 `json:"correctAnswer,omitempty"`
}

// LikertQuestion rates statements on a shared scale.
type LikertQuestion struct {
	Choices    []string          `json:"choices" validate:"min=2"`
	Statements []LikertStatement `json:"statements" validate:"min=1,dive"`
}

// LikertStatement is one row of a likert question.
type LikertStatement struct {
	Title         string `json:"title" validate:"required"`
	Score         *int   `json:"score,omitempty" validate:"omitempty,min=0"`
	CorrectChoice string `json:"correctChoice,omitempty"`
}

// InformationBlock shows text and an optional image without asking anything.
type InformationBlock struct {
	Description string `json:"description,omitempty"`
	ImagePath   string `json:"imagePath,omitempty"`
}

// NewHeader returns a header carrying the application defaults.
func NewHeader() Header {
	return Header{
		Type: TypeSurvey,
		Score: ScoreSettings{
			ShowQuestionScores: false,
			ShowLeaderboard:    true,
			Leaderboard: LeaderboardSettings{
				ShowScores:      true,
				ShowPlaceholder: true,
				Limit:           10,
			},
		},
	}
}

// newRatingQuestion returns a rating question carrying the application defaults.
func newRatingQuestion() *RatingQuestion {
	return &RatingQuestion{Level: 5, Symbol: "STAR", ColorGradient: "NONE"}
}

