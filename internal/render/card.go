package render

// UnknownName is shown for matches without a name.
const UnknownName = "Unknown"

// Card is the rendered unit for one match: photo, name and percentage.
// When no photo was found ImageHidden is set and ImageURL stays empty.
type Card struct {
	Name         string  `json:"name"`
	Percent      float64 `json:"percent"`
	PercentLabel string  `json:"percent_label"`
	ImageURL     string  `json:"image_url,omitempty"`
	ImageAlt     string  `json:"image_alt"`
	ImageHidden  bool    `json:"image_hidden"`
}

// NewCard builds the card for m without an image.
func NewCard(m Match) Card {
	name := m.Name
	if name == "" {
		name = UnknownName
	}
	return Card{
		Name:         name,
		Percent:      m.Percent,
		PercentLabel: FormatPercent(m.Percent),
	}
}

// SetImage sets the photo and uses the match name as alt text.
func (c *Card) SetImage(url, alt string) {
	c.ImageURL = url
	c.ImageAlt = alt
	c.ImageHidden = false
}

// HideImage removes any photo from the card.
func (c *Card) HideImage() {
	c.ImageURL = ""
	c.ImageAlt = ""
	c.ImageHidden = true
}
