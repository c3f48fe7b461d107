// Package viewmodel projects gateway records into presentation-ready views.
// Projection is a pure function of the record and the Options; projecting
// the same record twice yields equal values.
package viewmodel

import (
	"time"
	"unicode/utf8"

	"github.com/hako/durafmt"
	"github.com/mustso/portal/internal/app/models"
)

// LongDescriptionThreshold is the length above which a description gets a
// "show more" affordance
const LongDescriptionThreshold = 150

// RenderContext selects which fields a view carries
type RenderContext int

const (
	// Card is the compact list rendering
	Card RenderContext = iota
	// Detail is the full single-record rendering
	Detail
)

// String returns the context name
func (c RenderContext) String() string {
	switch c {
	case Detail:
		return "detail"
	default:
		return "card"
	}
}

// Options controls a projection. Now anchors relative timestamp labels;
// when zero, labels fall back to the raw timestamp.
type Options struct {
	Context RenderContext
	Now     time.Time
}

// IsLong reports whether text exceeds LongDescriptionThreshold characters
func IsLong(text string) bool {
	return utf8.RuneCountInString(text) > LongDescriptionThreshold
}

// Excerpt cuts text to LongDescriptionThreshold characters
func Excerpt(text string) string {
	if !IsLong(text) {
		return text
	}
	runes := []rune(text)
	return string(runes[:LongDescriptionThreshold]) + "..."
}

// RelativeTime renders a timestamp as "3 hours ago" relative to now.
// Legacy free-text timestamps are returned unchanged.
func RelativeTime(timestamp string, now time.Time) string {
	if now.IsZero() {
		return timestamp
	}
	t, ok := models.ParseTimestamp(timestamp)
	if !ok {
		return timestamp
	}

	d := now.Sub(t)
	if d < time.Minute {
		return "just now"
	}
	return durafmt.Parse(d.Truncate(time.Minute)).LimitFirstN(1).String() + " ago"
}
