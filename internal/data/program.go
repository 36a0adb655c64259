package data

import "strings"

// Program is the joined snapshot of the schedule and speaker registries.
// Its indices are finalized once, after both registries have loaded, so the
// resolver never observes a half-merged state regardless of which source
// finished first.
type Program struct {
	Schedule *ScheduleRegistry
	Speakers *SpeakerRegistry

	// LabelBySessionID and TalkTitleBySessionID start from the schedule's
	// lookups; a speaker's raw session title fills a slot only when the
	// schedule left it empty. The same human-entered title text lands
	// inconsistently across the two masters, and the schedule-authored
	// value is the more specific one.
	LabelBySessionID     map[string]string
	TalkTitleBySessionID map[string]string

	rowByID map[string]ScheduleRow
}

// BuildProgram merges the two registries into one resolvable snapshot.
func BuildProgram(schedule *ScheduleRegistry, speakers *SpeakerRegistry) *Program {
	p := &Program{
		Schedule:             schedule,
		Speakers:             speakers,
		LabelBySessionID:     make(map[string]string, len(schedule.LabelBySessionID)),
		TalkTitleBySessionID: make(map[string]string, len(schedule.TalkTitleBySessionID)),
		rowByID:              make(map[string]ScheduleRow, len(schedule.Rows)),
	}

	for sid, label := range schedule.LabelBySessionID {
		p.LabelBySessionID[sid] = label
	}
	for sid, title := range schedule.TalkTitleBySessionID {
		p.TalkTitleBySessionID[sid] = title
	}
	for _, row := range schedule.Rows {
		if _, ok := p.rowByID[row.SessionID]; !ok {
			p.rowByID[row.SessionID] = row
		}
	}

	for _, sp := range speakers.Speakers {
		if sp.SessionTitleRaw == "" {
			continue
		}
		for _, sid := range sp.SessionIDs {
			if p.LabelBySessionID[sid] == "" {
				p.LabelBySessionID[sid] = sp.SessionTitleRaw
			}
			if p.TalkTitleBySessionID[sid] == "" {
				p.TalkTitleBySessionID[sid] = sp.SessionTitleRaw
			}
		}
	}
	return p
}

// ResolveSessionTitle returns the best available title for a session, in
// priority order: the schedule row's own talk title, the merged talk-title
// lookup, the first linked speaker's self-reported title, and finally the
// generic label. Empty string means the session is unknown everywhere.
func (p *Program) ResolveSessionTitle(sessionID string) string {
	sid := strings.TrimSpace(sessionID)
	if sid == "" {
		return ""
	}

	if row, ok := p.rowByID[sid]; ok && row.TalkTitle != "" {
		return row.TalkTitle
	}
	if t := p.TalkTitleBySessionID[sid]; t != "" {
		return t
	}
	for _, sp := range p.SpeakersForSession(sid) {
		if t := strings.TrimSpace(sp.SessionTitleRaw); t != "" {
			return t
		}
		if len(sp.SessionTitles) > 0 && sp.SessionTitles[0] != "" {
			return sp.SessionTitles[0]
		}
	}
	return p.LabelBySessionID[sid]
}

// SpeakersForSession returns the speakers linked to a session, in source
// row order, or an empty slice when the session has none.
func (p *Program) SpeakersForSession(sessionID string) []Speaker {
	return p.Speakers.BySession[strings.TrimSpace(sessionID)]
}

// Row returns the first schedule row for a session id.
func (p *Program) Row(sessionID string) (ScheduleRow, bool) {
	row, ok := p.rowByID[strings.TrimSpace(sessionID)]
	return row, ok
}
