package jokes

import (
	"fmt"
	"strings"
)

// Joke mirrors a single joke object returned by /random and inside /search results.
type Joke struct {
	ID         string   `json:"id"`
	Value      *string  `json:"value"`
	URL        string   `json:"url"`
	IconURL    string   `json:"icon_url"`
	Categories []string `json:"categories"`
	CreatedAt  string   `json:"created_at"`
	UpdatedAt  string   `json:"updated_at"`
}

// Text returns the joke body, or an empty string when the payload had none.
func (j Joke) Text() string {
	if j.Value == nil {
		return ""
	}
	return *j.Value
}

func (j Joke) validate() error {
	if j.Value == nil {
		return fmt.Errorf("joke payload missing value")
	}
	return nil
}

// SearchResponse mirrors /search.
type SearchResponse struct {
	Total  int     `json:"total"`
	Result *[]Joke `json:"result"`
}

func (s SearchResponse) validate() error {
	if s.Result == nil {
		return fmt.Errorf("search payload missing result")
	}
	for i, joke := range *s.Result {
		if err := joke.validate(); err != nil {
			return fmt.Errorf("result %d: %w", i, err)
		}
	}
	return nil
}

// CategoryJoke pairs a joke with the category it was requested under.
type CategoryJoke struct {
	Joke     string
	Category string
}

func validateCategories(categories []string) error {
	if categories == nil {
		return fmt.Errorf("categories payload is not an array")
	}
	for i, c := range categories {
		if strings.TrimSpace(c) == "" {
			return fmt.Errorf("category %d is empty", i)
		}
	}
	return nil
}
