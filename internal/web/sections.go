package web

import (
	"context"
	"fmt"
	"strings"

	"github.com/hcd-tokyo/lp/internal/data"
	"github.com/hcd-tokyo/lp/internal/logging"
	"github.com/hcd-tokyo/lp/internal/web/views"
)

// Built-in copy used when a section's data source is unavailable. Failures
// are developer-facing only; visitors always see a complete page.
const (
	defaultHeroTitle     = "ホームカミングデー 2025"
	defaultHeroMeta      = "東京校 ／ オンライン ハイブリッド開催 12/14 13:00start"
	defaultHeroTagline   = "選択肢、増える。 言葉、整う。 足が、前に出る。 そんな日。"
	defaultRegisterLabel = "Peatixで参加申込"
	defaultRegisterURL   = "https://hcd-tokyo-2025.peatix.com/view"
	defaultCalendarLabel = "カレンダーに追加(.ics)"
	defaultCalendarURL   = "/assets/HCD2025.ics"

	defaultAboutTitle = "Homecoming Dayとは"

	defaultProgramTitle   = "Homecoming Day 2025 全体スケジュール"
	defaultPart1Heading   = "第1部：オープニング＆全体講演（13:00〜14:45）"
	defaultPart1Time      = "13:00〜14:45"
	defaultPart2Heading   = "第2部：分科会①／分科会②（15:00〜17:20）"
	defaultPart3Heading   = "第3部：全体懇親会（17:30〜19:00）"
	defaultPart3Time      = "17:30〜19:00"
	defaultBreak1         = "休憩（14:45〜15:00）"
	defaultBreak2         = "休憩（16:00〜16:20）"
	defaultBreak3         = "休憩（17:20〜17:30）"
	defaultBreakout1      = "分科会①（講演／ワークショップ） 15:00〜16:00"
	defaultBreakout2      = "分科会②（講演／ワークショップ） 16:20〜17:20"
	defaultLegendOpening  = "オープニング"
	defaultLegendKeynote  = "全体講演"
	defaultSessionPending = "決まり次第ご案内します"

	defaultFAQTitle = "よくあるご質問"
)

// keynoteSessionID is the schedule row the first program part is built
// around, with tag and label matches as fallbacks.
const keynoteSessionID = "S-KN-03"

// closingSessionID anchors the third program part.
const closingSessionID = "S-3"

// speakerDisplayOrder fixes the grid layout; ids missing from the registry
// are skipped. The first two ids render as keynote tiles.
var speakerDisplayOrder = []int{1, 2, 3, 4, 6, 7, 8, 9, 10, 11}

var keynoteSpeakerIDs = map[int]bool{1: true, 2: true}

// sessionNumbers caption the parallel sessions within a breakout block.
var sessionNumbers = []string{"①", "②", "③", "④", "⑤", "⑥"}

// buildPage assembles the full page view. Every section recovers its own
// data-source failure independently: the catalog, the speaker registry and
// the joined program degrade to defaults without affecting one another.
func (s *Server) buildPage(ctx context.Context) views.PageView {
	logger := logging.FromContext(ctx)

	cat, err := s.data.TextCatalog(ctx)
	if err != nil {
		logger.Warn("text catalog unavailable, rendering default copy", "error", err)
		cat = nil
	}

	assets := data.AssetManifest{}
	if m, err := s.data.Assets(ctx); err != nil {
		logger.Warn("asset manifest unavailable, using raw basenames", "error", err)
	} else {
		assets = m
	}

	var speakers *data.SpeakerRegistry
	if reg, err := s.data.Speakers(ctx); err != nil {
		logger.Warn("speakers unavailable, rendering empty grid", "error", err)
	} else {
		speakers = reg
	}

	var program *data.Program
	if p, err := s.data.Program(ctx); err != nil {
		logger.Warn("program unavailable, rendering default schedule", "error", err)
	} else {
		program = p
	}

	return views.PageView{
		Hero:     buildHero(cat),
		About:    buildAbout(cat),
		Speakers: buildSpeakers(speakers, assets),
		Program:  buildProgram(cat, program, assets),
		FAQ:      buildFAQ(cat),
	}
}

func buildHero(cat *data.TextCatalog) views.HeroView {
	calendarLabel := cat.Text("btn_calendar_ics", "")
	if calendarLabel == "" {
		calendarLabel = cat.FindValue(func(v string) bool {
			return strings.Contains(strings.ToLower(v), "ics") ||
				(strings.Contains(v, "カレンダー") && strings.Contains(v, "追加"))
		}, defaultCalendarLabel)
	}

	return views.HeroView{
		Title:         cat.Text("hero_title_jp", defaultHeroTitle),
		Meta:          cat.Text("hero_meta", defaultHeroMeta),
		Tagline:       cat.Text("hero_tagline", defaultHeroTagline),
		RegisterLabel: cat.Text("btn_register", defaultRegisterLabel),
		RegisterURL:   cat.Text("peatix_url", defaultRegisterURL),
		CalendarLabel: calendarLabel,
		CalendarURL:   cat.Text("calendar_ics_url", defaultCalendarURL),
	}
}

func buildAbout(cat *data.TextCatalog) views.AboutView {
	view := views.AboutView{
		Title: cat.Text("about_title", defaultAboutTitle),
		Lead:  cat.Text("about_lead", ""),
	}
	for i := 1; i <= 3; i++ {
		key := fmt.Sprintf("about_tip_%d", i)
		title := cat.Text(key, "")
		if title == "" {
			continue
		}
		view.Cards = append(view.Cards, views.AboutCard{
			Number: i,
			Title:  title,
			Body:   cat.LeadText(key, ""),
		})
	}
	return view
}

func buildSpeakers(reg *data.SpeakerRegistry, assets data.AssetManifest) views.SpeakersView {
	var view views.SpeakersView
	if reg == nil {
		return view
	}

	for _, id := range speakerDisplayOrder {
		sp, ok := reg.ByID[id]
		if !ok {
			continue
		}
		view.Cards = append(view.Cards, speakerCard(sp, assets, keynoteSpeakerIDs[id]))
	}
	return view
}

// speakerCard maps a registry speaker to its tile, resolving the photo via
// the asset manifest and falling back to the pending-session placeholder
// when the speaker lists no session titles.
func speakerCard(sp data.Speaker, assets data.AssetManifest, keynote bool) views.SpeakerCard {
	photo := sp.PhotoFile
	if photo == "" {
		photo = sp.PhotoURL
	}

	sessions := sp.SessionTitles
	if len(sessions) == 0 {
		sessions = []string{defaultSessionPending}
	}

	name := sp.NameJP
	if sp.NameEN != "" {
		name = sp.NameJP + " / " + sp.NameEN
	}

	return views.SpeakerCard{
		ID:          sp.ID,
		Name:        name,
		NameEN:      sp.NameEN,
		Affiliation: sp.Affiliation,
		Photo:       assets.PhotoPath(photo),
		Keynote:     keynote,
		Titles:      sp.Titles(),
		Bio:         sp.Bio,
		Sessions:    sessions,
	}
}

func buildProgram(cat *data.TextCatalog, program *data.Program, assets data.AssetManifest) views.ProgramView {
	view := views.ProgramView{
		Title: cat.Text("program_section_title", defaultProgramTitle),
	}

	part1 := views.ProgramPart{
		Heading:    cat.Text("program_part1_title", defaultPart1Heading),
		TimeRange:  cat.Text("program_part1_time_range", defaultPart1Time),
		Captions:   []string{cat.Text("program_legend_opening", defaultLegendOpening), cat.Text("program_legend_keynote", defaultLegendKeynote)},
		BreakAfter: cat.Text("program_break1_label", defaultBreak1),
	}
	if program != nil {
		if row, ok := findKeynoteRow(program); ok {
			part1.Track = row.Track
			part1.MainTitle = program.ResolveSessionTitle(row.SessionID)
			for _, sp := range program.SpeakersForSession(row.SessionID) {
				part1.Keynotes = append(part1.Keynotes, speakerCard(sp, assets, true))
			}
		}
	}
	view.Parts = append(view.Parts, part1)

	part2 := views.ProgramPart{
		Heading:    cat.Text("program_part2_title", defaultPart2Heading),
		BreakAfter: cat.Text("program_break3_label", defaultBreak3),
	}
	part2.Breakouts = append(part2.Breakouts, views.BreakoutBlock{
		Heading:    cat.Text("program_legend_breakout_part1", defaultBreakout1),
		Sessions:   breakoutSessions(program, assets, "S-1"),
		BreakAfter: cat.Text("program_break2_label", defaultBreak2),
	})
	part2.Breakouts = append(part2.Breakouts, views.BreakoutBlock{
		Heading:  cat.Text("program_legend_breakout_part2", defaultBreakout2),
		Sessions: breakoutSessions(program, assets, "S-2"),
	})
	view.Parts = append(view.Parts, part2)

	part3 := views.ProgramPart{
		Heading:   cat.Text("program_part3_title", defaultPart3Heading),
		TimeRange: cat.Text("program_part3_time_range", defaultPart3Time),
		Track:     cat.Text("program_part3_track", ""),
	}
	if program != nil {
		if row, ok := findClosingRow(program); ok && row.Track != "" {
			part3.Track = row.Track
		}
	}
	view.Parts = append(view.Parts, part3)

	return view
}

// findKeynoteRow locates the keynote schedule row: the dedicated id first,
// then the Keynote tag, then a label mentioning the keynote legend.
func findKeynoteRow(p *data.Program) (data.ScheduleRow, bool) {
	if row, ok := p.Row(keynoteSessionID); ok {
		return row, true
	}
	for _, row := range p.Schedule.Rows {
		if row.HasTag("Keynote") {
			return row, true
		}
	}
	for _, row := range p.Schedule.Rows {
		if strings.Contains(row.Label, "全体講演") {
			return row, true
		}
	}
	return data.ScheduleRow{}, false
}

// findClosingRow locates the closing-party row by id, then by title text.
func findClosingRow(p *data.Program) (data.ScheduleRow, bool) {
	if row, ok := p.Row(closingSessionID); ok {
		return row, true
	}
	for _, row := range p.Schedule.Rows {
		if strings.Contains(row.TalkTitle, "懇親会") || strings.Contains(row.Label, "懇親会") {
			return row, true
		}
	}
	return data.ScheduleRow{}, false
}

// breakoutSessions collects the parallel sessions whose id starts with the
// given prefix, excluding online-only "-Z-" rows, in schedule order.
func breakoutSessions(program *data.Program, assets data.AssetManifest, prefix string) []views.SessionCard {
	if program == nil {
		return nil
	}

	var cards []views.SessionCard
	for _, row := range program.Schedule.Rows {
		if !strings.HasPrefix(row.SessionID, prefix) || strings.Contains(row.SessionID, "-Z-") {
			continue
		}

		card := views.SessionCard{
			Number: sessionNumber(len(cards)),
			Title:  program.ResolveSessionTitle(row.SessionID),
			Track:  row.Track,
		}
		for _, sp := range program.SpeakersForSession(row.SessionID) {
			card.Speakers = append(card.Speakers, speakerCard(sp, assets, false))
			if card.Track == "" && sp.Track != "" {
				card.Track = sp.Track
			}
		}
		cards = append(cards, card)
	}
	return cards
}

func sessionNumber(index int) string {
	if index < len(sessionNumbers) {
		return sessionNumbers[index]
	}
	return ""
}

func buildFAQ(cat *data.TextCatalog) views.FAQView {
	view := views.FAQView{
		Title: cat.Text("faq_section_title", defaultFAQTitle),
	}
	for i := 1; i <= 8; i++ {
		q := cat.Text(fmt.Sprintf("faq_q%d", i), "")
		if q == "" {
			continue
		}
		view.Items = append(view.Items, views.FAQItem{
			Question: q,
			Answer:   cat.Text(fmt.Sprintf("faq_a%d", i), ""),
		})
	}
	return view
}
