package imagecheck

import (
	"archivio/artwork"
	"os"
	"path/filepath"
	"testing"
)

func TestCheck(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "rossi_tramonto.jpg"), []byte("img"), 0o600); err != nil {
		t.Fatalf("write image: %v", err)
	}
	if err := os.Mkdir(filepath.Join(dir, "folder.jpg"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	records := []artwork.Record{
		{ID: 1, Image: "/drive-opere/rossi_tramonto.jpg"},
		{ID: 2, Image: ""},
		{ID: 3, Image: "/other/rossi_tramonto.jpg"},
		{ID: 4, Image: "/drive-opere/foo bar.jpg"},
		{ID: 5, Image: "/drive-opere/folder.jpg"},
		{ID: 6, Image: "/drive-opere/../secret.jpg"},
	}

	report := Check(records, dir, "/drive-opere")

	if report.Total != 6 {
		t.Fatalf("unexpected total: %d", report.Total)
	}
	if len(report.Present) != 1 || report.Present[0].ID != 1 {
		t.Fatalf("unexpected present records: %+v", report.Present)
	}

	want := map[int]Reason{
		2: ReasonNoImage,
		3: ReasonOutsidePrefix,
		4: ReasonNotFound,
		5: ReasonNotFound,
		6: ReasonOutsidePrefix,
	}
	if len(report.Missing) != len(want) {
		t.Fatalf("expected %d missing, got %d", len(want), len(report.Missing))
	}
	for _, missing := range report.Missing {
		if want[missing.Record.ID] != missing.Reason {
			t.Fatalf("record %d: want reason %q, got %q", missing.Record.ID, want[missing.Record.ID], missing.Reason)
		}
	}
}
