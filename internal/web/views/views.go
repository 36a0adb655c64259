// Package views renders the landing page sections as templ components.
//
// The components are built in code rather than generated from .templ
// files: the page is one fixed document and every dynamic value passes
// through templ's escaping, so the template layer stays a plain Go package.
package views

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// PageView is everything the landing page needs, already resolved and
// fallback-filled by the caller. Rendering never consults the data layer.
type PageView struct {
	Hero     HeroView
	About    AboutView
	Speakers SpeakersView
	Program  ProgramView
	FAQ      FAQView
}

// HeroView fills the hero banner.
type HeroView struct {
	Title         string
	Meta          string
	Tagline       string
	RegisterLabel string
	RegisterURL   string
	CalendarLabel string
	CalendarURL   string
}

// AboutView fills the about section and its numbered tip cards.
type AboutView struct {
	Title string
	Lead  string
	Cards []AboutCard
}

// AboutCard is one numbered tip.
type AboutCard struct {
	Number int
	Title  string
	Body   string
}

// SpeakersView fills the speaker grid.
type SpeakersView struct {
	Cards []SpeakerCard
}

// SpeakerCard is one speaker tile. Keynote tiles render larger.
type SpeakerCard struct {
	ID          int
	Name        string
	NameEN      string
	Affiliation string
	Photo       string
	Keynote     bool
	Titles      []string
	Bio         string
	Sessions    []string
}

// ProgramView fills the three-part program schedule.
type ProgramView struct {
	Title string
	Parts []ProgramPart
}

// ProgramPart is one program block, optionally followed by a break bar.
type ProgramPart struct {
	Heading    string
	TimeRange  string
	Track      string
	Captions   []string
	MainTitle  string
	Keynotes   []SpeakerCard
	Breakouts  []BreakoutBlock
	BreakAfter string
}

// BreakoutBlock is one breakout slot holding parallel session cards.
type BreakoutBlock struct {
	Heading    string
	Sessions   []SessionCard
	BreakAfter string
}

// SessionCard is one session within a breakout block.
type SessionCard struct {
	Number   string
	Title    string
	Track    string
	Speakers []SpeakerCard
}

// FAQView fills the FAQ accordion.
type FAQView struct {
	Title string
	Items []FAQItem
}

// FAQItem is one question/answer pair.
type FAQItem struct {
	Question string
	Answer   string
}

// Page renders the full landing page document.
func Page(v PageView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<!doctype html><html lang=\"ja\"><head><meta charset=\"utf-8\">")
		b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">")
		b.WriteString("<title>" + templ.EscapeString(v.Hero.Title) + "</title>")
		b.WriteString("<link rel=\"stylesheet\" href=\"/static/css/site.css\">")
		b.WriteString("</head><body>")
		writeHero(&b, v.Hero)
		writeAbout(&b, v.About)
		writeSpeakers(&b, v.Speakers)
		writeProgram(&b, v.Program)
		writeFAQ(&b, v.FAQ)
		b.WriteString("</body></html>")
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func writeHero(b *strings.Builder, v HeroView) {
	b.WriteString("<section id=\"hero\" class=\"hero\">")
	b.WriteString("<h1 id=\"hero-title-text\">" + templ.EscapeString(v.Title) + "</h1>")
	b.WriteString("<p id=\"hero-meta\">" + templ.EscapeString(v.Meta) + "</p>")
	b.WriteString("<p id=\"hero-tagline\">" + templ.EscapeString(v.Tagline) + "</p>")
	if v.RegisterURL != "" {
		fmt.Fprintf(b, "<a id=\"btn-register\" class=\"btn\" href=\"%s\">%s</a>",
			templ.EscapeString(v.RegisterURL), templ.EscapeString(v.RegisterLabel))
	}
	if v.CalendarURL != "" {
		fmt.Fprintf(b, "<a id=\"btn-cal-ics\" class=\"btn\" href=\"%s\" download>%s</a>",
			templ.EscapeString(v.CalendarURL), templ.EscapeString(v.CalendarLabel))
	}
	b.WriteString("</section>")
}

func writeAbout(b *strings.Builder, v AboutView) {
	b.WriteString("<section id=\"about\" class=\"about\">")
	b.WriteString("<h2 id=\"about-title\">" + templ.EscapeString(v.Title) + "</h2>")
	b.WriteString("<p id=\"about-lead\">" + templ.EscapeString(v.Lead) + "</p>")
	b.WriteString("<div class=\"about-cards\">")
	for _, card := range v.Cards {
		b.WriteString("<div class=\"about-card\">")
		fmt.Fprintf(b, "<span class=\"wm\">%d</span>", card.Number)
		b.WriteString("<h3>" + templ.EscapeString(card.Title) + "</h3>")
		b.WriteString("<p>" + templ.EscapeString(card.Body) + "</p>")
		b.WriteString("</div>")
	}
	b.WriteString("</div></section>")
}

func writeSpeakers(b *strings.Builder, v SpeakersView) {
	b.WriteString("<section id=\"speakers\" class=\"speakers\"><div id=\"speakers-grid\" class=\"speakers-grid\">")
	for _, card := range v.Cards {
		writeSpeakerCard(b, card)
	}
	b.WriteString("</div></section>")
}

func writeSpeakerCard(b *strings.Builder, card SpeakerCard) {
	kind := "card--std"
	if card.Keynote {
		kind = "card--keynote"
	}
	fmt.Fprintf(b, "<article id=\"speaker-%d\" class=\"card %s\">", card.ID, kind)
	fmt.Fprintf(b, "<img class=\"card__photo\" src=\"%s\" alt=\"%s\">",
		templ.EscapeString(card.Photo), templ.EscapeString(card.Name))
	b.WriteString("<div class=\"card__body\">")
	b.WriteString("<h3 class=\"card__name\">" + templ.EscapeString(card.Name) + "</h3>")
	if card.Affiliation != "" {
		b.WriteString("<p class=\"card__aff\">" + templ.EscapeString(card.Affiliation) + "</p>")
	}
	for _, title := range card.Titles {
		b.WriteString("<div class=\"card__title\">" + templ.EscapeString(title) + "</div>")
	}
	if card.Bio != "" {
		b.WriteString("<p class=\"card__bio\">" + templ.EscapeString(card.Bio) + "</p>")
	}
	if len(card.Sessions) > 0 {
		b.WriteString("<div class=\"card__sessions\">")
		for _, s := range card.Sessions {
			b.WriteString("<div>" + templ.EscapeString(s) + "</div>")
		}
		b.WriteString("</div>")
	}
	b.WriteString("</div></article>")
}

func writeProgram(b *strings.Builder, v ProgramView) {
	b.WriteString("<section id=\"program\" class=\"program\">")
	b.WriteString("<h2 id=\"program-title\">" + templ.EscapeString(v.Title) + "</h2>")
	b.WriteString("<div id=\"program-blocks\">")
	for _, part := range v.Parts {
		writeProgramPart(b, part)
	}
	b.WriteString("</div></section>")
}

func writeProgramPart(b *strings.Builder, part ProgramPart) {
	b.WriteString("<section class=\"program-card\">")
	b.WriteString("<h3 class=\"program-card__head\">" + templ.EscapeString(part.Heading) + "</h3>")
	b.WriteString("<div class=\"program-card__body\">")
	if part.TimeRange != "" {
		b.WriteString("<p class=\"program-part-time\">" + templ.EscapeString(part.TimeRange) + "</p>")
	}
	if part.Track != "" {
		b.WriteString("<p class=\"program-part-track\">会場：" + templ.EscapeString(part.Track) + "</p>")
	}
	for _, caption := range part.Captions {
		b.WriteString("<p class=\"program-part-caption\">" + templ.EscapeString(caption) + "</p>")
	}
	if part.MainTitle != "" {
		b.WriteString("<p class=\"program-session-main-title\">" + templ.EscapeString(part.MainTitle) + "</p>")
	}
	if len(part.Keynotes) > 0 {
		b.WriteString("<div class=\"program-speaker-grid\">")
		for _, sp := range part.Keynotes {
			fmt.Fprintf(b, "<article class=\"program-speaker-card\"><img src=\"%s\" alt=\"%s\"><p>%s</p></article>",
				templ.EscapeString(sp.Photo), templ.EscapeString(sp.Name), templ.EscapeString(sp.Name))
		}
		b.WriteString("</div>")
	}
	for _, block := range part.Breakouts {
		writeBreakout(b, block)
	}
	b.WriteString("</div></section>")
	if part.BreakAfter != "" {
		b.WriteString("<div class=\"program-break\">" + templ.EscapeString(part.BreakAfter) + "</div>")
	}
}

func writeBreakout(b *strings.Builder, block BreakoutBlock) {
	b.WriteString("<section class=\"program-breakout\">")
	b.WriteString("<h4 class=\"program-breakout__title\">" + templ.EscapeString(block.Heading) + "</h4>")
	b.WriteString("<div class=\"program-session-grid\">")
	for _, s := range block.Sessions {
		b.WriteString("<article class=\"program-session-card\">")
		b.WriteString("<div class=\"program-session-card__session-label\">セッション" + templ.EscapeString(s.Number) + "</div>")
		if s.Title != "" {
			b.WriteString("<div class=\"program-session-card__title\">" + templ.EscapeString(s.Title) + "</div>")
		}
		if s.Track != "" {
			b.WriteString("<div class=\"program-session-card__track\">会場：" + templ.EscapeString(s.Track) + "</div>")
		}
		b.WriteString("<div class=\"program-session-card__speakers\">")
		for _, sp := range s.Speakers {
			fmt.Fprintf(b, "<a class=\"program-session-card__speaker-link\" href=\"#speaker-%d\">%s</a>",
				sp.ID, templ.EscapeString(sp.Name))
		}
		b.WriteString("</div></article>")
	}
	b.WriteString("</div></section>")
	if block.BreakAfter != "" {
		b.WriteString("<div class=\"program-break program-break--inner\">" + templ.EscapeString(block.BreakAfter) + "</div>")
	}
}

func writeFAQ(b *strings.Builder, v FAQView) {
	b.WriteString("<section id=\"faq\" class=\"faq\">")
	b.WriteString("<h2 class=\"faq-title\">" + templ.EscapeString(v.Title) + "</h2>")
	b.WriteString("<div id=\"faq-list\">")
	for _, item := range v.Items {
		b.WriteString("<details class=\"faq-card\">")
		b.WriteString("<summary class=\"faq-card__question\">Q. " + templ.EscapeString(item.Question) + "</summary>")
		b.WriteString("<div class=\"faq-card__answer\"><p>A. " + templ.EscapeString(item.Answer) + "</p></div>")
		b.WriteString("</details>")
	}
	b.WriteString("</div></section>")
}
