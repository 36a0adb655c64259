package data

import "github.com/hcd-tokyo/lp/internal/csv"

// ScheduleRegistry is the normalized schedule master plus its lookups.
type ScheduleRegistry struct {
	// Rows preserves source order. Every retained row has a SessionID.
	Rows []ScheduleRow

	// LabelBySessionID maps a session id to its generic caption. A later
	// row with the same id and a non-empty label overwrites the entry.
	LabelBySessionID map[string]string

	// TalkTitleBySessionID maps a session id to its resolved talk title.
	// The first non-empty write wins within this source, so a later blank
	// row cannot erase an earlier title.
	TalkTitleBySessionID map[string]string
}

// BuildScheduleRegistry normalizes the schedule master's records. The raw
// header is used as-is; rows without a session id cannot be joined to
// anything and are discarded.
func BuildScheduleRegistry(records []csv.Record) *ScheduleRegistry {
	reg := &ScheduleRegistry{
		LabelBySessionID:     make(map[string]string),
		TalkTitleBySessionID: make(map[string]string),
	}

	for _, rec := range records {
		sessionID := pick(rec, scheduleSessionIDCols, "")
		if sessionID == "" {
			continue
		}

		label := pick(rec, scheduleLabelCols, "")
		talkTitle := pick(rec, scheduleTalkTitleCols, "")
		if talkTitle == "" {
			talkTitle = label
		}

		row := ScheduleRow{
			Columns:   rec,
			SessionID: sessionID,
			Label:     label,
			TalkTitle: talkTitle,
			Track:     pick(rec, scheduleTrackCols, ""),
			Tags:      splitList(pick(rec, scheduleTagCols, "")),
		}
		reg.Rows = append(reg.Rows, row)

		if label != "" {
			reg.LabelBySessionID[sessionID] = label
		}
		if talkTitle != "" && reg.TalkTitleBySessionID[sessionID] == "" {
			reg.TalkTitleBySessionID[sessionID] = talkTitle
		}
	}
	return reg
}

// RowByID returns the first retained row for a session id.
func (r *ScheduleRegistry) RowByID(sessionID string) (ScheduleRow, bool) {
	for _, row := range r.Rows {
		if row.SessionID == sessionID {
			return row, true
		}
	}
	return ScheduleRow{}, false
}
