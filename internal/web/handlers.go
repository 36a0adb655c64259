package web

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/hcd-tokyo/lp/internal/data"
	"github.com/hcd-tokyo/lp/internal/logging"
	"github.com/hcd-tokyo/lp/internal/web/views"
)

// handleLanding renders the full landing page. Data-source failures never
// fail the request; the affected sections fall back to built-in copy.
func (s *Server) handleLanding(w http.ResponseWriter, r *http.Request) {
	page := s.buildPage(r.Context())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := views.Page(page).Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("page render failed", "error", err)
	}
}

// handleHealthz reports the load state of every data source.
// Returns 200 as long as the process is serving; consumers inspect the
// per-source states ("pending", "ok", "failed") in the body.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, map[string]any{
		"status":  "ok",
		"sources": s.data.Status(),
	})
}

func (s *Server) handleTextCatalog(w http.ResponseWriter, r *http.Request) {
	cat, err := s.data.TextCatalog(r.Context())
	if err != nil {
		s.respondError(w, r, err, http.StatusBadGateway)
		return
	}

	s.writeJSON(w, r, map[string]any{
		"text": cat.Primary,
		"lead": cat.Lead,
	})
}

// speakerJSON is the API shape for one speaker.
type speakerJSON struct {
	ID            int      `json:"id"`
	NameJP        string   `json:"name_jp"`
	NameEN        string   `json:"name_en,omitempty"`
	Affiliation   string   `json:"affiliation,omitempty"`
	Titles        []string `json:"titles,omitempty"`
	Bio           string   `json:"bio,omitempty"`
	Photo         string   `json:"photo"`
	Track         string   `json:"track,omitempty"`
	SessionIDs    []string `json:"session_ids,omitempty"`
	SessionTitles []string `json:"session_titles,omitempty"`
}

func (s *Server) speakerJSON(r *http.Request, sp data.Speaker) speakerJSON {
	assets, err := s.data.Assets(r.Context())
	if err != nil {
		assets = data.AssetManifest{}
	}

	photo := sp.PhotoFile
	if photo == "" {
		photo = sp.PhotoURL
	}

	return speakerJSON{
		ID:            sp.ID,
		NameJP:        sp.NameJP,
		NameEN:        sp.NameEN,
		Affiliation:   sp.Affiliation,
		Titles:        sp.Titles(),
		Bio:           sp.Bio,
		Photo:         assets.PhotoPath(photo),
		Track:         sp.Track,
		SessionIDs:    sp.SessionIDs,
		SessionTitles: sp.SessionTitles,
	}
}

func (s *Server) handleSpeakers(w http.ResponseWriter, r *http.Request) {
	reg, err := s.data.Speakers(r.Context())
	if err != nil {
		s.respondError(w, r, err, http.StatusBadGateway)
		return
	}

	out := make([]speakerJSON, 0, len(reg.Speakers))
	for _, sp := range reg.Speakers {
		out = append(out, s.speakerJSON(r, sp))
	}
	s.writeJSON(w, r, map[string]any{"speakers": out})
}

func (s *Server) handleSpeaker(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "speakerID"))
	if err != nil {
		s.respondError(w, r, fmt.Errorf("speaker id %q: %w", chi.URLParam(r, "speakerID"), errNotFound), http.StatusNotFound)
		return
	}

	reg, err := s.data.Speakers(r.Context())
	if err != nil {
		s.respondError(w, r, err, http.StatusBadGateway)
		return
	}

	sp, ok := reg.ByID[id]
	if !ok {
		s.respondError(w, r, fmt.Errorf("speaker %d: %w", id, errNotFound), http.StatusNotFound)
		return
	}
	s.writeJSON(w, r, s.speakerJSON(r, sp))
}

// sessionJSON is the API shape for one schedule row, with the title already
// resolved through the cross-reference chain.
type sessionJSON struct {
	SessionID string        `json:"session_id"`
	Title     string        `json:"title"`
	Label     string        `json:"label,omitempty"`
	Track     string        `json:"track,omitempty"`
	Tags      []string      `json:"tags,omitempty"`
	Speakers  []speakerJSON `json:"speakers,omitempty"`
}

func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	program, err := s.data.Program(r.Context())
	if err != nil {
		s.respondError(w, r, err, http.StatusBadGateway)
		return
	}

	out := make([]sessionJSON, 0, len(program.Schedule.Rows))
	for _, row := range program.Schedule.Rows {
		out = append(out, sessionJSON{
			SessionID: row.SessionID,
			Title:     program.ResolveSessionTitle(row.SessionID),
			Label:     row.Label,
			Track:     row.Track,
			Tags:      row.Tags,
		})
	}
	s.writeJSON(w, r, map[string]any{"sessions": out})
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	program, err := s.data.Program(r.Context())
	if err != nil {
		s.respondError(w, r, err, http.StatusBadGateway)
		return
	}

	row, ok := program.Row(sessionID)
	if !ok {
		s.respondError(w, r, fmt.Errorf("session %q: %w", sessionID, errNotFound), http.StatusNotFound)
		return
	}

	out := sessionJSON{
		SessionID: row.SessionID,
		Title:     program.ResolveSessionTitle(row.SessionID),
		Label:     row.Label,
		Track:     row.Track,
		Tags:      row.Tags,
	}
	for _, sp := range program.SpeakersForSession(sessionID) {
		out.Speakers = append(out.Speakers, s.speakerJSON(r, sp))
	}
	s.writeJSON(w, r, out)
}
