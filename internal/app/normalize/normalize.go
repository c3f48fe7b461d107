// Package normalize maps the heterogeneous reference fields sent by the
// gateway to canonical display strings. None of these functions fail; a
// missing field degrades to a fallback value.
package normalize

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mustso/portal/internal/app/models"
)

const (
	// UnknownLabel is returned when no display value can be derived
	UnknownLabel = "Unknown"
	// UnknownInitials is returned for an empty name
	UnknownInitials = "U"
)

// PersonName returns the display name of a person reference.
// A plain name is returned unchanged. An identity yields its trimmed full
// name, then its email, then UnknownLabel.
func PersonName(ref models.PersonRef) string {
	switch r := ref.(type) {
	case models.PersonName:
		return string(r)
	case models.Identity:
		if name := strings.TrimSpace(r.FirstName + " " + r.LastName); name != "" {
			return name
		}
		if r.Email != "" {
			return r.Email
		}
		return UnknownLabel
	default:
		return UnknownLabel
	}
}

// Person is PersonName for a JSON-decoded person field
func Person(p models.Person) string {
	return PersonName(p.Ref)
}

// CategoryLabel returns the display label of a category reference
func CategoryLabel(ref models.CategoryRef) string {
	switch r := ref.(type) {
	case models.CategoryName:
		return string(r)
	case models.CategoryInfo:
		if r.Name != nil {
			return *r.Name
		}
		return UnknownLabel
	default:
		return UnknownLabel
	}
}

// Category is CategoryLabel for a JSON-decoded category field
func Category(c models.CategoryField) string {
	return CategoryLabel(c.Ref)
}

// Initials takes the first letter of up to the first two words of name,
// uppercased. An empty name yields UnknownInitials.
func Initials(name string) string {
	words := strings.Fields(name)
	if len(words) == 0 {
		return UnknownInitials
	}
	if len(words) > 2 {
		words = words[:2]
	}

	var b strings.Builder
	for _, w := range words {
		r, _ := utf8.DecodeRuneInString(w)
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// UserName returns the display name of a user
func UserName(u *models.User) string {
	if u == nil {
		return UnknownLabel
	}
	return PersonName(u.Identity())
}
