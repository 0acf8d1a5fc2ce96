// Package classify assigns song references to coarse category buckets for
// the analytics views.
package classify

import "strings"

// Category is a coarse label derived from keyword matching on a song
// reference. It is used only for aggregate reporting.
type Category string

const (
	Romantic Category = "Romantic"
	Sad      Category = "Sad"
	Party    Category = "Party"
	Other    Category = "Other"
)

// keywordRules maps keywords to categories in precedence order. The first
// matching rule wins.
var keywordRules = []struct {
	keyword  string
	category Category
}{
	{"love", Romantic},
	{"sad", Sad},
	{"party", Party},
}

// Classify returns the category bucket for a song reference. Matching is
// case-insensitive and checked in the fixed order Romantic, Sad, Party;
// a reference matching no keyword is Other.
func Classify(reference string) Category {
	lowered := strings.ToLower(reference)
	for _, rule := range keywordRules {
		if strings.Contains(lowered, rule.keyword) {
			return rule.category
		}
	}
	return Other
}

// All returns every category in display order.
func All() []Category {
	return []Category{Romantic, Sad, Party, Other}
}
