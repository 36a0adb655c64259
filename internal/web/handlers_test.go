package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hcd-tokyo/lp/internal/config"
	"github.com/hcd-tokyo/lp/internal/data"
	"github.com/hcd-tokyo/lp/internal/fetch"
)

const (
	testCatalogCSV = "key,ja_text,ja_lead\n" +
		"hero_title_jp,テストイベント 2025,\n" +
		"faq_q1,参加費はかかりますか？,\n" +
		"faq_a1,無料です。,\n"

	testSpeakersCSV = "order,name_jp,name_en,affiliation,session_id,session_title\n" +
		"1,山田太郎,Taro Yamada,テスト大学,S-KN-03,\n" +
		"3,佐藤花子,Hanako Sato,テスト株式会社,S-1-A,自己紹介の技法\n"

	testScheduleCSV = "session_id,title,desc,track,tags\n" +
		"S-KN-03,全体講演,未来をつくる対話,大ホール,Keynote\n" +
		"S-1-A,,,会議室1,\n" +
		"S-3,全体懇親会,,ラウンジ,\n"

	testAssetsCSV = "url\nhttps://cdn.example.com/photos/yamada.jpg\n"
)

// newTestServer spins up a CSV origin and a fully wired Server against it.
// Pass empty strings to serve 404 for that source.
func newTestServer(t *testing.T, catalog, speakers, schedule, assets string) (*Server, *httptest.Server) {
	t.Helper()

	mux := http.NewServeMux()
	serve := func(path, body string) {
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			if body == "" {
				http.NotFound(w, r)
				return
			}
			w.Header().Set("Content-Type", "text/csv; charset=utf-8")
			w.Write([]byte(body))
		})
	}
	serve("/text.csv", catalog)
	serve("/speakers.csv", speakers)
	serve("/schedule.csv", schedule)
	serve("/assets.csv", assets)

	origin := httptest.NewServer(mux)
	t.Cleanup(origin.Close)

	svc := data.NewService(fetch.NewClient(time.Second), data.Sources{
		TextCatalog: origin.URL + "/text.csv",
		Speakers:    origin.URL + "/speakers.csv",
		Schedule:    origin.URL + "/schedule.csv",
		Assets:      origin.URL + "/assets.csv",
	})

	cfg := &config.Config{}
	cfg.Server.RequestTimeout = 5 * time.Second

	return NewServer(svc, cfg), origin
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestLanding_RendersLoadedSections(t *testing.T) {
	s, _ := newTestServer(t, testCatalogCSV, testSpeakersCSV, testScheduleCSV, testAssetsCSV)

	rec := get(t, s, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	body := rec.Body.String()
	for _, want := range []string{
		"テストイベント 2025",
		"山田太郎",
		"佐藤花子",
		"未来をつくる対話",
		"参加費はかかりますか？",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestLanding_FallbackWhenAllSourcesDown(t *testing.T) {
	s, origin := newTestServer(t, testCatalogCSV, testSpeakersCSV, testScheduleCSV, testAssetsCSV)
	origin.Close()

	rec := get(t, s, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 even with sources down, got %d", rec.Code)
	}

	body := rec.Body.String()
	if !strings.Contains(body, defaultHeroTitle) {
		t.Error("expected default hero title")
	}
	if !strings.Contains(body, defaultProgramTitle) {
		t.Error("expected default program title")
	}
	if !strings.Contains(body, defaultFAQTitle) {
		t.Error("expected default FAQ title")
	}
}

func TestLanding_SectionsFailIndependently(t *testing.T) {
	// Catalog 404s; speakers and schedule still load.
	s, _ := newTestServer(t, "", testSpeakersCSV, testScheduleCSV, "")

	rec := get(t, s, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	body := rec.Body.String()
	if !strings.Contains(body, defaultHeroTitle) {
		t.Error("expected default hero title when catalog is down")
	}
	if !strings.Contains(body, "山田太郎") {
		t.Error("expected speakers to render despite catalog failure")
	}
	if !strings.Contains(body, "未来をつくる対話") {
		t.Error("expected schedule to render despite catalog failure")
	}
}

func TestAPISpeakers(t *testing.T) {
	s, _ := newTestServer(t, testCatalogCSV, testSpeakersCSV, testScheduleCSV, testAssetsCSV)

	rec := get(t, s, "/api/speakers")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Speakers []speakerJSON `json:"speakers"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(resp.Speakers) != 2 {
		t.Fatalf("expected 2 speakers, got %d", len(resp.Speakers))
	}
	if resp.Speakers[0].NameJP != "山田太郎" {
		t.Errorf("unexpected first speaker: %q", resp.Speakers[0].NameJP)
	}
	if resp.Speakers[0].Photo != data.PlaceholderPhoto {
		t.Errorf("speaker without photo must get the placeholder, got %q", resp.Speakers[0].Photo)
	}
}

func TestAPISpeaker_ByID(t *testing.T) {
	s, _ := newTestServer(t, testCatalogCSV, testSpeakersCSV, testScheduleCSV, testAssetsCSV)

	rec := get(t, s, "/api/speakers/3")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var sp speakerJSON
	if err := json.Unmarshal(rec.Body.Bytes(), &sp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if sp.NameJP != "佐藤花子" {
		t.Errorf("unexpected speaker: %q", sp.NameJP)
	}
	if len(sp.SessionIDs) != 1 || sp.SessionIDs[0] != "S-1-A" {
		t.Errorf("unexpected session ids: %v", sp.SessionIDs)
	}
}

func TestAPISpeaker_NotFound(t *testing.T) {
	s, _ := newTestServer(t, testCatalogCSV, testSpeakersCSV, testScheduleCSV, testAssetsCSV)

	for _, path := range []string{"/api/speakers/99", "/api/speakers/abc"} {
		rec := get(t, s, path)
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s: expected 404, got %d", path, rec.Code)
			continue
		}

		var resp ErrorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Errorf("%s: invalid JSON: %v", path, err)
			continue
		}
		if resp.Code != "NOT_FOUND" {
			t.Errorf("%s: expected code NOT_FOUND, got %q", path, resp.Code)
		}
	}
}

func TestAPISchedule_ResolvesTitles(t *testing.T) {
	s, _ := newTestServer(t, testCatalogCSV, testSpeakersCSV, testScheduleCSV, testAssetsCSV)

	rec := get(t, s, "/api/schedule")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Sessions []sessionJSON `json:"sessions"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(resp.Sessions) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(resp.Sessions))
	}

	byID := make(map[string]sessionJSON)
	for _, sess := range resp.Sessions {
		byID[sess.SessionID] = sess
	}
	if got := byID["S-KN-03"].Title; got != "未来をつくる対話" {
		t.Errorf("keynote title should come from the schedule desc, got %q", got)
	}
	if got := byID["S-1-A"].Title; got != "自己紹介の技法" {
		t.Errorf("breakout title should come from the speaker master, got %q", got)
	}
}

func TestAPISession_WithSpeakers(t *testing.T) {
	s, _ := newTestServer(t, testCatalogCSV, testSpeakersCSV, testScheduleCSV, testAssetsCSV)

	rec := get(t, s, "/api/sessions/S-1-A")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var sess sessionJSON
	if err := json.Unmarshal(rec.Body.Bytes(), &sess); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if sess.Title != "自己紹介の技法" {
		t.Errorf("unexpected title: %q", sess.Title)
	}
	if len(sess.Speakers) != 1 || sess.Speakers[0].NameJP != "佐藤花子" {
		t.Errorf("unexpected speakers: %v", sess.Speakers)
	}

	if rec := get(t, s, "/api/sessions/S-9-X"); rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown session, got %d", rec.Code)
	}
}

func TestAPITextCatalog_SourceDown(t *testing.T) {
	s, origin := newTestServer(t, testCatalogCSV, testSpeakersCSV, testScheduleCSV, testAssetsCSV)
	origin.Close()

	rec := get(t, s, "/api/text")
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.Code == "" {
		t.Error("expected a machine-readable error code")
	}
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer(t, testCatalogCSV, "", testScheduleCSV, testAssetsCSV)

	// Before any load everything is pending.
	rec := get(t, s, "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Status  string            `json:"status"`
		Sources map[string]string `json:"sources"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.Sources["text_catalog"] != "pending" {
		t.Errorf("expected text_catalog pending, got %q", resp.Sources["text_catalog"])
	}

	// Trigger loads, then the states must reflect each source's outcome.
	get(t, s, "/api/text")
	get(t, s, "/api/speakers")

	rec = get(t, s, "/healthz")
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.Sources["text_catalog"] != "ok" {
		t.Errorf("expected text_catalog ok, got %q", resp.Sources["text_catalog"])
	}
	if resp.Sources["speakers"] != "failed" {
		t.Errorf("expected speakers failed, got %q", resp.Sources["speakers"])
	}
}
