// Package data loads the landing page's CSV sources into immutable
// in-memory snapshots and joins them by session and speaker identifiers.
//
// Everything here is built once per process: the loaders fetch, parse and
// normalize a source exactly once, and every consumer observes the same
// snapshot. The snapshots are read-only; a process restart is the only
// refresh mechanism.
package data

import (
	"strings"

	"github.com/hcd-tokyo/lp/internal/csv"
)

// Speaker is one normalized row of the speakers master.
type Speaker struct {
	// ID is parsed digits-only from the order/id columns. 0 is a valid
	// sentinel meaning "unordered", not a missing value.
	ID int

	NameJP      string
	NameEN      string
	Affiliation string

	// Title1..Title5 are free-text role and cohort tags.
	Title1 string
	Title2 string
	Title3 string
	Title4 string
	Title5 string

	Bio string

	// PhotoFile and PhotoURL are raw references; resolving them to a
	// served asset path is the presentation layer's job.
	PhotoFile string
	PhotoURL  string

	Track string

	// SessionIDs is comma-split from the session_id column.
	SessionIDs []string

	// SessionTitleRaw is the unsplit session_title cell. SessionTitles is
	// always derived from it: split on the delimiter set, trimmed, with
	// duplicates removed preserving first occurrence.
	SessionTitleRaw string
	SessionTitles   []string
}

// Titles returns the non-empty title tags in order.
func (s Speaker) Titles() []string {
	var out []string
	for _, t := range []string{s.Title1, s.Title2, s.Title3, s.Title4, s.Title5} {
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// ScheduleRow is one retained row of the schedule master. The original CSV
// columns are preserved alongside the derived fields.
type ScheduleRow struct {
	Columns csv.Record

	// SessionID is required; rows without one are discarded at load.
	SessionID string

	// Label is the generic category caption ("breakout session 1").
	Label string

	// TalkTitle is the specific presented title, falling back to Label
	// when the dedicated title columns are blank.
	TalkTitle string

	Track string
	Tags  []string
}

// HasTag reports whether the row carries the given tag.
func (r ScheduleRow) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// TextCatalog holds the display-text master: primary copy and lead copy
// keyed by catalog key, plus every non-empty value in row order for
// heuristic fallback search.
type TextCatalog struct {
	Primary   map[string]string
	Lead      map[string]string
	AllValues []string
}

// Text returns the primary copy for key, or def on miss.
func (c *TextCatalog) Text(key, def string) string {
	if c != nil {
		if v := c.Primary[key]; v != "" {
			return v
		}
	}
	return def
}

// LeadText returns the lead copy for key, or def on miss.
func (c *TextCatalog) LeadText(key, def string) string {
	if c != nil {
		if v := c.Lead[key]; v != "" {
			return v
		}
	}
	return def
}

// FindValue returns the first catalog value matching the predicate, or def.
// Used as a last-resort label source when no dedicated key exists.
func (c *TextCatalog) FindValue(match func(string) bool, def string) string {
	if c != nil {
		for _, v := range c.AllValues {
			if match(v) {
				return v
			}
		}
	}
	return def
}

// AssetManifest maps asset file basenames to their served paths.
type AssetManifest map[string]string

// PlaceholderPhoto is served when a speaker photo cannot be resolved.
const PlaceholderPhoto = "/assets/placeholder_square.jpg"

// PhotoPath resolves a raw photo file or URL reference to a served path.
func (m AssetManifest) PhotoPath(fileOrURL string) string {
	base := basename(fileOrURL)
	if base == "" {
		return PlaceholderPhoto
	}
	if p, ok := m[base]; ok {
		return p
	}
	return "/assets/" + base
}

// basename returns the final path segment of a file reference or URL.
func basename(ref string) string {
	ref = strings.TrimSpace(ref)
	if i := strings.LastIndex(ref, "/"); i >= 0 {
		ref = ref[i+1:]
	}
	return ref
}
