package data

import "github.com/hcd-tokyo/lp/internal/csv"

// BuildAssetManifest maps the asset master's url column to served paths:
// each url's basename becomes /assets/<basename>. Rows without a url are
// skipped.
func BuildAssetManifest(records []csv.Record) AssetManifest {
	manifest := make(AssetManifest)
	for _, rec := range records {
		base := basename(rec["url"])
		if base == "" {
			continue
		}
		manifest[base] = "/assets/" + base
	}
	return manifest
}
