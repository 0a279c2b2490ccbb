package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadJobFile_ParsesFullSchema(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "job.yaml")
	contents := `
shape: card
plate: positive
lines:
  - "⠓⠑⠇⠇⠕"
settings:
  cardWidth: 90
  cardHeight: 52
intSettings:
  gridColumns: 10
stringSettings:
  dotShape: rounded
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	jf, err := loadJobFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if jf.Shape != "card" || jf.Plate != "positive" {
		t.Fatalf("unexpected shape/plate: %+v", jf)
	}
	if len(jf.Lines) != 1 || jf.Lines[0] != "⠓⠑⠇⠇⠕" {
		t.Fatalf("unexpected lines: %+v", jf.Lines)
	}
	if jf.Settings["cardWidth"] != 90 || jf.Settings["cardHeight"] != 52 {
		t.Fatalf("unexpected settings: %+v", jf.Settings)
	}
	if jf.IntSettings["gridColumns"] != 10 {
		t.Fatalf("unexpected intSettings: %+v", jf.IntSettings)
	}
	if jf.StringSettings["dotShape"] != "rounded" {
		t.Fatalf("unexpected stringSettings: %+v", jf.StringSettings)
	}
}

func TestLoadJobFile_RejectsUnknownTopLevelKey(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "job.yaml")
	contents := `
shape: card
plate: positive
lines:
  - "⠓"
budgetMs: 5000
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	_, err := loadJobFile(path)
	if err == nil {
		t.Fatal("expected an error for an unrecognized top-level job file key")
	}
}

func TestLoadJobFile_MissingFileErrors(t *testing.T) {
	_, err := loadJobFile(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected an error for a missing job file")
	}
}

func TestToRaw_CarriesOriginalLinesFlag(t *testing.T) {
	jf := &jobFile{
		Shape:         "card",
		Plate:         "negative",
		Lines:         []string{"⠓"},
		OriginalLines: []string{"h"},
	}
	raw := jf.toRaw()
	if !raw.HasOriginalLines {
		t.Fatal("expected HasOriginalLines to be true when OriginalLines is non-empty")
	}
	if raw.PlateType != "negative" {
		t.Fatalf("unexpected plate type: %s", raw.PlateType)
	}
}

func TestToRaw_NoOriginalLinesFlagWhenAbsent(t *testing.T) {
	jf := &jobFile{Shape: "card", Plate: "positive", Lines: []string{"⠓"}}
	raw := jf.toRaw()
	if raw.HasOriginalLines {
		t.Fatal("expected HasOriginalLines to be false when OriginalLines is empty")
	}
}
