package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"date only", "2021-01-01", time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"rfc3339", "2021-06-30T23:59:59Z", time.Date(2021, 6, 30, 23, 59, 59, 0, time.UTC)},
		{"rfc3339 offset", "2021-01-01T02:00:00+02:00", time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"no zone", "2021-01-01T12:30:00", time.Date(2021, 1, 1, 12, 30, 0, 0, time.UTC)},
		{"fractional second", "2021-01-01T00:00:00.500Z", time.Date(2021, 1, 1, 0, 0, 0, 500_000_000, time.UTC)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseDate(tc.input)
			if err != nil {
				t.Fatalf("parseDate(%q) failed: %v", tc.input, err)
			}
			if !got.Equal(tc.want) {
				t.Errorf("parseDate(%q) = %v, want %v", tc.input, got, tc.want)
			}
			if got.Location() != time.UTC {
				t.Errorf("parseDate(%q) location = %v, want UTC", tc.input, got.Location())
			}
		})
	}
}

func TestParseDate_FractionalSecondKeepsWholeSecondEpoch(t *testing.T) {
	got, err := parseDate("2021-01-01T00:00:00.500Z")
	if err != nil {
		t.Fatalf("parseDate failed: %v", err)
	}
	if got.Unix() != 1609459200 {
		t.Errorf("Unix() = %d, want 1609459200", got.Unix())
	}
}

func TestParseDate_Invalid(t *testing.T) {
	for _, input := range []string{"", "yesterday", "01/02/2021", "2021-13-01"} {
		if _, err := parseDate(input); err == nil {
			t.Errorf("parseDate(%q) should fail", input)
		}
	}
}

func TestWriteExportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	text := "planName,orderDate\r\nplan_A,2021-03-01T00:00:00Z\r\n"

	if err := writeExportFile(path, text); err != nil {
		t.Fatalf("writeExportFile failed: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(got) != text {
		t.Errorf("file content = %q, want %q", got, text)
	}
}

func TestWriteExportFile_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exports", "q1", "out.csv")

	if err := writeExportFile(path, "header\r\n"); err != nil {
		t.Fatalf("writeExportFile failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("output file missing: %v", err)
	}
}

func TestWriteExportFile_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := os.WriteFile(path, []byte("stale content that is longer"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := writeExportFile(path, "fresh\r\n"); err != nil {
		t.Fatalf("writeExportFile failed: %v", err)
	}
	got, _ := os.ReadFile(path)
	if string(got) != "fresh\r\n" {
		t.Errorf("file content = %q, want fully replaced", got)
	}
}
