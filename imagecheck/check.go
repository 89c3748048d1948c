// Package imagecheck verifies that catalog image paths point at files present
// in the image directory.
package imagecheck

import (
	"archivio/artwork"
	"os"
	"path/filepath"
	"strings"
)

type Reason string

const (
	ReasonNoImage       Reason = "no image"
	ReasonOutsidePrefix Reason = "outside prefix"
	ReasonNotFound      Reason = "file not found"
)

type Missing struct {
	Record artwork.Record
	Reason Reason
}

type Report struct {
	Total   int
	Present []artwork.Record
	Missing []Missing
}

// Check classifies every record. Image paths must be "<prefix>/<file>" with
// <file> naming a regular file directly inside imagesDir.
func Check(records []artwork.Record, imagesDir, prefix string) Report {
	report := Report{Total: len(records)}
	base := strings.TrimRight(prefix, "/") + "/"

	for _, record := range records {
		reason, ok := checkRecord(record, imagesDir, base)
		if ok {
			report.Present = append(report.Present, record)
			continue
		}
		report.Missing = append(report.Missing, Missing{Record: record, Reason: reason})
	}

	return report
}

func checkRecord(record artwork.Record, imagesDir, base string) (Reason, bool) {
	if record.Image == "" {
		return ReasonNoImage, false
	}
	name, found := strings.CutPrefix(record.Image, base)
	if !found || name == "" || strings.Contains(name, "/") {
		return ReasonOutsidePrefix, false
	}

	info, err := os.Stat(filepath.Join(imagesDir, name))
	if err != nil || !info.Mode().IsRegular() {
		return ReasonNotFound, false
	}
	return "", true
}
