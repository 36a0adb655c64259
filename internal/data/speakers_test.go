package data

import (
	"reflect"
	"testing"

	"github.com/hcd-tokyo/lp/internal/csv"
)

func TestBuildSpeakerRegistry_Normalization(t *testing.T) {
	reg := BuildSpeakerRegistry([]csv.Record{
		{
			"order":         "No. 3",
			"name_jp":       "山田太郎",
			"name_en":       "Taro Yamada",
			"org":           "Example Inc.",
			"title1":        "2019期生",
			"bio_ja":        "プロフィール",
			"photo_file":    "photos/yamada.jpg",
			"session_id":    "S-1-01, S-2-02",
			"session_title": "講演A／講演B",
		},
	})

	if len(reg.Speakers) != 1 {
		t.Fatalf("expected 1 speaker, got %d", len(reg.Speakers))
	}
	sp := reg.Speakers[0]

	if sp.ID != 3 {
		t.Errorf("expected id 3, got %d", sp.ID)
	}
	if sp.NameJP != "山田太郎" || sp.NameEN != "Taro Yamada" {
		t.Errorf("unexpected names: %q / %q", sp.NameJP, sp.NameEN)
	}
	if sp.Affiliation != "Example Inc." {
		t.Errorf("expected affiliation from org alias, got %q", sp.Affiliation)
	}
	if want := []string{"S-1-01", "S-2-02"}; !reflect.DeepEqual(sp.SessionIDs, want) {
		t.Errorf("expected session ids %v, got %v", want, sp.SessionIDs)
	}
	if sp.SessionTitleRaw != "講演A／講演B" {
		t.Errorf("expected raw title preserved, got %q", sp.SessionTitleRaw)
	}
	if want := []string{"講演A", "講演B"}; !reflect.DeepEqual(sp.SessionTitles, want) {
		t.Errorf("expected split titles %v, got %v", want, sp.SessionTitles)
	}
}

func TestBuildSpeakerRegistry_IDSentinel(t *testing.T) {
	reg := BuildSpeakerRegistry([]csv.Record{
		{"name_jp": "名無し", "order": ""},
	})

	sp, ok := reg.ByID[0]
	if !ok {
		t.Fatal("expected id 0 sentinel to be a valid lookup key")
	}
	if sp.NameJP != "名無し" {
		t.Errorf("expected speaker stored under sentinel id, got %q", sp.NameJP)
	}
}

func TestSanitizeNameJP(t *testing.T) {
	if got := sanitizeNameJP("yes", csv.Record{"name_jp": ""}); got != "" {
		t.Errorf("expected empty fallback, never \"yes\"; got %q", got)
	}
	if got := sanitizeNameJP("YES", csv.Record{"name_jp": "正しい名前"}); got != "正しい名前" {
		t.Errorf("expected name_jp fallback for YES, got %q", got)
	}
	if got := sanitizeNameJP("No", csv.Record{"name_jp": "別の名前"}); got != "別の名前" {
		t.Errorf("expected name_jp fallback for No, got %q", got)
	}
	if got := sanitizeNameJP("", csv.Record{"name_jp": "補完名"}); got != "補完名" {
		t.Errorf("expected name_jp fallback for empty name, got %q", got)
	}
	if got := sanitizeNameJP("田中花子", csv.Record{"name_jp": "無視される"}); got != "田中花子" {
		t.Errorf("expected real name kept, got %q", got)
	}
}

func TestBuildSpeakerRegistry_SessionIndex(t *testing.T) {
	reg := BuildSpeakerRegistry([]csv.Record{
		{"order": "1", "name_jp": "一人目", "session_id": "S-KN-03"},
		{"order": "2", "name_jp": "二人目", "session_id": "S-KN-03,S-1-01"},
		{"order": "3", "name_jp": "三人目", "session_id": ""},
	})

	keynote := reg.BySession["S-KN-03"]
	if len(keynote) != 2 {
		t.Fatalf("expected 2 keynote speakers, got %d", len(keynote))
	}
	if keynote[0].NameJP != "一人目" || keynote[1].NameJP != "二人目" {
		t.Errorf("expected source row order preserved, got %v", keynote)
	}

	if got := reg.BySession["S-1-01"]; len(got) != 1 || got[0].NameJP != "二人目" {
		t.Errorf("expected second speaker under S-1-01, got %v", got)
	}

	if got := reg.BySession[""]; got != nil {
		t.Errorf("expected no index entry for empty session id, got %v", got)
	}
}
