package loader

import "strings"

/********** column registries (single source of truth) **********/

// Exact-name aliases for the fixed city extracts. First match wins.
var listingAliases = map[string][]string{
	"id":                    {"id", "listing_id"},
	"name":                  {"name", "listing_name"},
	"neighbourhood":         {"neighbourhood", "neighbourhood_cleansed", "neighborhood"},
	"room_type":             {"room_type"},
	"price":                 {"price", "nightly_price"},
	"rating":                {"review_scores_rating", "rating", "score"},
	"minimum_nights":        {"minimum_nights"},
	"number_of_reviews":     {"number_of_reviews"},
	"reviews_per_month":     {"reviews_per_month"},
	"number_of_reviews_ltm": {"number_of_reviews_ltm"},
	"availability_365":      {"availability_365"},
	"latitude":              {"latitude", "lat"},
	"longitude":             {"longitude", "lon", "lng"},
	"amenities":             {"amenities"},
}

// Substring classes for arbitrary uploaded exports.
var dateHints = []string{"date", "check", "arrival"}
var priceHints = []string{"price", "revenue", "amount", "total"}

// normalizeColumn lower-cases and space-to-underscore-normalizes a
// header cell so heuristics see one spelling.
func normalizeColumn(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

// classifyColumns tags normalized column names as date-like or
// price-like by substring match, preserving input order.
func classifyColumns(columns []string) (dateCols, priceCols []string) {
	for _, col := range columns {
		if containsAny(col, dateHints) {
			dateCols = append(dateCols, col)
		}
		if containsAny(col, priceHints) {
			priceCols = append(priceCols, col)
		}
	}
	return dateCols, priceCols
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// headerIndex resolves an alias set against a normalized header,
// returning -1 when no alias is present.
func headerIndex(header []string, aliases []string) int {
	for _, a := range aliases {
		for i, col := range header {
			if col == a {
				return i
			}
		}
	}
	return -1
}
