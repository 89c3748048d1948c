package importer

import (
	"strings"
)

// Record is one source row keyed by the exact header text.
type Record struct {
	RowNumber int
	Values    map[string]string
}

// Lookup returns the raw cell value and whether the column exists.
func (r Record) Lookup(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	value, ok := r.Values[header]
	return value, ok
}

// Get returns the trimmed value of the first present header.
func (r Record) Get(headers ...string) string {
	for _, header := range headers {
		if value, ok := r.Lookup(header); ok {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

// FirstHeader returns the first candidate present in the record.
func (r Record) FirstHeader(candidates ...string) string {
	for _, candidate := range candidates {
		if _, ok := r.Lookup(candidate); ok {
			return candidate
		}
	}
	return ""
}

// Entry is a mapped row before an id and image are assigned.
type Entry struct {
	RowNumber int
	Artist    string
	Group     string
	Title     string
	Year      string
	Technique string
	Location  string
	Filename  string
}
