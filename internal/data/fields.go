package data

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/hcd-tokyo/lp/internal/csv"
)

// Column alias chains, in priority order. The masters have been edited by
// hand through several header spellings (including literal Japanese header
// text); the first non-empty cell wins, checked in the declared order.
var (
	catalogKeyCols  = []string{"key", "name", "id"}
	catalogTextCols = []string{"ja_text", "text", "value", "content"}
	catalogLeadCols = []string{"ja_lead"}

	speakerOrderCols        = []string{"order", "id"}
	speakerNameJPCols       = []string{"name_jp", "name_ja", "氏名", "名前"}
	speakerNameJPFallback   = []string{"name_jp"}
	speakerNameENCols       = []string{"name_en", "name_en_us", "name_en_gb"}
	speakerAffiliationCols  = []string{"affiliation", "org", "organization", "company"}
	speakerBioCols          = []string{"bio_ja", "bio"}
	speakerPhotoCols        = []string{"photo_file", "photo", "photo_url"}
	speakerPhotoURLCols     = []string{"photo_url"}
	speakerSessionIDCols    = []string{"session_id", "Session_ID"}
	speakerSessionTitleCols = []string{"session_title", "session_title_filled"}

	scheduleSessionIDCols = []string{"session_id", "Session_ID", "id", "ID"}
	scheduleLabelCols     = []string{"title", "セッション名"}
	scheduleTalkTitleCols = []string{"desc", "概要", "session_title_filled", "session_title"}
	scheduleTrackCols     = []string{"track", "room", "location", "会場"}
	scheduleTagCols       = []string{"tags", "tag", "タグ"}
)

// sessionTitleDelims matches every delimiter a session_title cell has been
// seen to use: full- and half-width commas and slashes, and newlines.
var sessionTitleDelims = regexp.MustCompile(`[，,／/\n]`)

// nonDigits strips everything but ASCII digits from an order/id cell.
var nonDigits = regexp.MustCompile(`[^0-9]`)

// pick returns the first non-empty value among the candidate columns,
// trimmed, or def when every candidate is empty or absent.
func pick(rec csv.Record, cols []string, def string) string {
	for _, col := range cols {
		if v := strings.TrimSpace(rec[col]); v != "" {
			return v
		}
	}
	return def
}

// parseOrderID parses a digits-only integer out of an order/id cell.
// Empty or unparseable input yields the 0 sentinel.
func parseOrderID(raw string) int {
	digits := nonDigits.ReplaceAllString(raw, "")
	if digits == "" {
		return 0
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}

// splitList splits a comma-delimited cell, trimming entries and dropping
// empty ones.
func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// splitTitles splits a session-title cell on the full delimiter set and
// deduplicates, preserving first occurrence.
func splitTitles(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var out []string
	seen := make(map[string]bool)
	for _, part := range sessionTitleDelims.Split(raw, -1) {
		p := strings.TrimSpace(part)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}
