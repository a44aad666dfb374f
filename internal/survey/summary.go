package survey

// Summary is the listing of a survey's contents.
type Summary struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Type        Type          `json:"type"`
	Questions   int           `json:"questions"`
	Pages       []PageSummary `json:"pages"`
}

// PageSummary lists the items of one page.
type PageSummary struct {
	Title string        `json:"title,omitempty"`
	Items []ItemSummary `json:"items"`
}

// ItemSummary describes one content item.
type ItemSummary struct {
	Type     ContentType `json:"type"`
	Title    string      `json:"title"`
	Required bool        `json:"required"`
}

// IsQuestion reports whether the item asks the participant for input.
func (c Content) IsQuestion() bool {
	return c.Type != ContentInformation
}

// Summary lists the pages and items of s in order.
func (s *Survey) Summary() Summary {
	sum := Summary{
		Title:       s.Header.Title,
		Description: s.Header.Description,
		Type:        s.Header.Type,
		Pages:       make([]PageSummary, 0, len(s.Pages)),
	}
	for _, p := range s.Pages {
		ps := PageSummary{Title: p.Title, Items: make([]ItemSummary, 0, len(p.Content))}
		for _, c := range p.Content {
			ps.Items = append(ps.Items, ItemSummary{Type: c.Type, Title: c.Title, Required: c.Required})
			if c.IsQuestion() {
				sum.Questions++
			}
		}
		sum.Pages = append(sum.Pages, ps)
	}
	return sum
}
