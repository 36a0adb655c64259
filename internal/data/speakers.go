package data

import (
	"strings"

	"github.com/hcd-tokyo/lp/internal/csv"
)

// SpeakerRegistry is the normalized speakers master plus its lookups.
// Both the speaker grid and the program schedule consume the same registry
// instance, so they always observe one consistent snapshot.
type SpeakerRegistry struct {
	// Speakers preserves source row order.
	Speakers []Speaker

	// ByID holds the last row seen for each id.
	ByID map[int]Speaker

	// BySession maps each session id a speaker listed to the speakers for
	// that session, in source row order.
	BySession map[string][]Speaker
}

// BuildSpeakerRegistry normalizes the speakers master's records.
func BuildSpeakerRegistry(records []csv.Record) *SpeakerRegistry {
	reg := &SpeakerRegistry{
		ByID:      make(map[int]Speaker),
		BySession: make(map[string][]Speaker),
	}

	for _, rec := range records {
		sp := normalizeSpeaker(rec)
		reg.Speakers = append(reg.Speakers, sp)
		reg.ByID[sp.ID] = sp
		for _, sid := range sp.SessionIDs {
			reg.BySession[sid] = append(reg.BySession[sid], sp)
		}
	}
	return reg
}

// normalizeSpeaker maps one raw record to a Speaker, resolving column
// aliases and splitting the multi-valued cells.
func normalizeSpeaker(rec csv.Record) Speaker {
	raw := pick(rec, speakerSessionTitleCols, "")

	return Speaker{
		ID:              parseOrderID(pick(rec, speakerOrderCols, "")),
		NameJP:          sanitizeNameJP(pick(rec, speakerNameJPCols, ""), rec),
		NameEN:          pick(rec, speakerNameENCols, ""),
		Affiliation:     pick(rec, speakerAffiliationCols, ""),
		Title1:          rec["title1"],
		Title2:          rec["title2"],
		Title3:          rec["title3"],
		Title4:          rec["title4"],
		Title5:          rec["title5"],
		Bio:             pick(rec, speakerBioCols, ""),
		PhotoFile:       pick(rec, speakerPhotoCols, ""),
		PhotoURL:        pick(rec, speakerPhotoURLCols, ""),
		Track:           rec["track"],
		SessionIDs:      splitList(pick(rec, speakerSessionIDCols, "")),
		SessionTitleRaw: raw,
		SessionTitles:   splitTitles(raw),
	}
}

// sanitizeNameJP rejects a resolved Japanese name that is literally
// "yes"/"no" (a spreadsheet checkbox column bleeding into the name chain)
// or empty, falling back to the dedicated name_jp column.
func sanitizeNameJP(name string, rec csv.Record) string {
	switch strings.ToLower(name) {
	case "", "yes", "no":
		return pick(rec, speakerNameJPFallback, "")
	}
	return name
}
