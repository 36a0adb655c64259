package data

import "github.com/hcd-tokyo/lp/internal/csv"

// BuildTextCatalog turns the text master's records into a TextCatalog.
//
// The key comes from the first non-empty of the key/name/id columns. Rows
// without a usable key contribute no dictionary entries, but their
// non-empty text and lead values still land in AllValues so heuristic
// fallback search can find them.
func BuildTextCatalog(records []csv.Record) *TextCatalog {
	cat := &TextCatalog{
		Primary: make(map[string]string),
		Lead:    make(map[string]string),
	}

	for _, rec := range records {
		key := pick(rec, catalogKeyCols, "")
		text := pick(rec, catalogTextCols, "")
		lead := pick(rec, catalogLeadCols, "")

		if key != "" {
			if text != "" {
				cat.Primary[key] = text
			}
			if lead != "" {
				cat.Lead[key] = lead
			}
		}
		if text != "" {
			cat.AllValues = append(cat.AllValues, text)
		}
		if lead != "" {
			cat.AllValues = append(cat.AllValues, lead)
		}
	}
	return cat
}
