package client

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"inkwell/app/models"

	"golang.org/x/text/cases"
)

const (
	unknownAuthor = "Unknown Author"
	uncategorized = "Uncategorized"
)

// AuthorInfo returns the display name and initial of an author reference.
// A reference that only carries an id is shown as that id; an empty
// reference yields "Unknown Author" and "?".
func AuthorInfo(ref models.Reference[models.UserSummary]) (name, initial string) {
	switch {
	case ref.IsZero():
		return unknownAuthor, "?"
	case ref.IsExpanded():
		name = ref.Expanded.Name
		if strings.TrimSpace(name) == "" {
			name = unknownAuthor
		}
	default:
		name = ref.ID
	}
	r, _ := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name, "?"
	}
	return name, string(unicode.ToUpper(r))
}

// CategoryName returns the resolved name of a category reference, or ""
// when the reference carries only an id.
func CategoryName(ref models.Reference[models.CategorySummary]) string {
	if !ref.IsExpanded() {
		return ""
	}
	return ref.Expanded.Name
}

// FilterByCategory keeps the posts whose resolved category name equals
// name under Unicode case folding. Surrounding spaces are significant.
func FilterByCategory(posts []*models.Post, name string) []*models.Post {
	fold := cases.Fold()
	want := fold.String(name)

	matched := []*models.Post{}
	for _, post := range posts {
		category := CategoryName(post.Category)
		if category == "" {
			continue
		}
		if fold.String(category) == want {
			matched = append(matched, post)
		}
	}
	return matched
}
