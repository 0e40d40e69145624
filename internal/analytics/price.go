package analytics

import (
	"strconv"
	"strings"
)

// CleanPrice coerces a raw currency cell to a float. "$1,234.00" and
// plain numerics both parse; empty, null-ish, and garbage values come
// back nil. A bad cell never fails the batch it belongs to.
func CleanPrice(raw string) *float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	switch strings.ToLower(s) {
	case "null", "none", "nan", "n/a":
		return nil
	}
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &v
}
