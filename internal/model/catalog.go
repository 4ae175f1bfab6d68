package model

// Quote is one record of the quote catalog. Field names match the catalog JSON.
type Quote struct {
	Quote      string `json:"Quote"`
	Date       string `json:"Date"`
	Translated string `json:"Translated,omitempty"`
}

// Catalog holds the loaded quotes and image filenames. Index i identifies an
// item for permutation and history purposes.
type Catalog struct {
	Quotes []Quote
	Images []string
}

// QuoteCount returns the number of quotes
func (c *Catalog) QuoteCount() int {
	if c == nil {
		return 0
	}
	return len(c.Quotes)
}

// Quote returns the quote at index i, or false when i is out of range
func (c *Catalog) Quote(i int) (Quote, bool) {
	if i < 0 || i >= c.QuoteCount() {
		return Quote{}, false
	}
	return c.Quotes[i], true
}

// ImageCount returns the number of images
func (c *Catalog) ImageCount() int {
	if c == nil {
		return 0
	}
	return len(c.Images)
}
