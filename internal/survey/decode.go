package survey

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/huppifluppi/survey-tool-cli/internal/document"
)

// ModelError reports a document that does not fit the typed model.
type ModelError struct {
	Document int // 0-based
	Message  string
	Cause    error
}

func (e *ModelError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("document %d: %s: %v", e.Document+1, e.Message, e.Cause)
	}
	return fmt.Sprintf("document %d: %s", e.Document+1, e.Message)
}

func (e *ModelError) Unwrap() error {
	return e.Cause
}

// FromDocuments builds a Survey from parsed documents: the header first, then
// one page per remaining document. Missing header settings take the defaults.
func FromDocuments(docs []document.Value) (*Survey, error) {
	if len(docs) == 0 {
		return nil, &ModelError{Document: 0, Message: "no survey header"}
	}
	if len(docs) == 1 {
		return nil, &ModelError{Document: 0, Message: "survey has no pages"}
	}

	validate := validator.New()

	s := &Survey{Header: NewHeader()}
	if err := decode(docs[0], &s.Header); err != nil {
		return nil, &ModelError{Document: 0, Message: "invalid header", Cause: err}
	}
	if err := validate.Struct(&s.Header); err != nil {
		return nil, &ModelError{Document: 0, Message: "invalid header", Cause: err}
	}

	for i, doc := range docs[1:] {
		var page Page
		if err := decode(doc, &page); err != nil {
			return nil, &ModelError{Document: i + 1, Message: "invalid page", Cause: err}
		}
		if err := validate.Struct(&page); err != nil {
			return nil, &ModelError{Document: i + 1, Message: "invalid page", Cause: err}
		}
		s.Pages = append(s.Pages, page)
	}
	return s, nil
}

func decode(doc document.Value, target interface{}) error {
	data, err := doc.MarshalJSON()
	if err != nil {
		return err
	}
	return json.Unmarshal(data, target)
}

// UnmarshalJSON decodes the common content fields, then the fields of the
// member selected by "type".
func (c *Content) UnmarshalJSON(data []byte) error {
	var head struct {
		Type     ContentType `json:"type"`
		Title    string      `json:"title"`
		Required bool        `json:"required"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}
	*c = Content{Type: head.Type, Title: head.Title, Required: head.Required}

	var target interface{}
	switch head.Type {
	case ContentText:
		c.Text = &TextQuestion{}
		target = c.Text
	case ContentChoice:
		c.Choice = &ChoiceQuestion{}
		target = c.Choice
	case ContentData:
		c.Data = &DataQuestion{}
		target = c.Data
	case ContentRating:
		c.Rating = newRatingQuestion()
		target = c.Rating
	case ContentLikert:
		c.Likert = &LikertQuestion{}
		target = c.Likert
	case ContentInformation:
		c.Information = &InformationBlock{}
		target = c.Information
	case ContentDateTime:
		c.DateTime = &DateTimeQuestion{}
		target = c.DateTime
	case ContentSlider:
		c.Slider = &SliderQuestion{}
		target = c.Slider
	default:
		return fmt.Errorf("unknown content type %q", head.Type)
	}
	return json.Unmarshal(data, target)
}
