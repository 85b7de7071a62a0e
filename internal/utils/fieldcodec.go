package utils

import (
	"encoding/json"
	"strings"
)

/*
The Submissions sheet stores per-cleaning values as compound cells: parallel
comma-separated lists for scalars ("2030-05-05, 2030-06-06") and JSON text for
structured data (extras map, cleaning-ref array). Everything here is pure; the
repository layer decides which cell gets which encoding.
*/

// SplitCSV splits a comma-separated cell into trimmed entries, dropping
// empties and preserving order.
func SplitCSV(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		p := strings.TrimSpace(part)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// JoinCSV is the inverse of SplitCSV: trims entries, drops empties, joins
// with ", " (the separator the sheet has always used).
func JoinCSV(items []string) string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		t := strings.TrimSpace(it)
		if t != "" {
			out = append(out, t)
		}
	}
	return strings.Join(out, ", ")
}

// ParseJSONOrDefault never fails: empty input or a parse error yields the
// fallback untouched.
func ParseJSONOrDefault[T any](raw string, fallback T) T {
	if strings.TrimSpace(raw) == "" {
		return fallback
	}
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return fallback
	}
	return v
}

// NormalizeExtras coerces a decoded extras cell into map[key][]string:
// a lone string becomes a one-element list, lists get trimmed and de-emptied,
// anything else collapses to an empty list.
func NormalizeExtras(src map[string]any) map[string][]string {
	out := map[string][]string{}
	for k, v := range src {
		switch t := v.(type) {
		case string:
			if s := strings.TrimSpace(t); s != "" {
				out[k] = []string{s}
			} else {
				out[k] = []string{}
			}
		case []any:
			vals := []string{}
			for _, item := range t {
				s, ok := item.(string)
				if !ok {
					continue
				}
				if s = strings.TrimSpace(s); s != "" {
					vals = append(vals, s)
				}
			}
			out[k] = vals
		case []string:
			vals := []string{}
			for _, s := range t {
				if s = strings.TrimSpace(s); s != "" {
					vals = append(vals, s)
				}
			}
			out[k] = vals
		default:
			out[k] = []string{}
		}
	}
	return out
}

// Uniq returns each distinct trimmed non-empty value exactly once, in
// first-occurrence order. Used for the Config dropdown lists.
func Uniq(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := []string{}
	for _, it := range items {
		t := strings.TrimSpace(it)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// NormalizeHeader matches the sheet-side normalization used on every header
// lookup: hidden unicode stripped, trimmed, lowercased. Must stay in sync
// between the read and write paths or rows drift off their columns.
func NormalizeHeader(s string) string {
	replacer := strings.NewReplacer(
		"\uFEFF", " ",
		"\u200B", " ",
		"\u200C", " ",
		"\u200D", " ",
		"\u00A0", " ",
	)
	return strings.ToLower(strings.TrimSpace(replacer.Replace(s)))
}
