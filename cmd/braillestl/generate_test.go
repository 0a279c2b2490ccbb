package main

import (
	"testing"

	"github.com/brailleforge/braillestl/internal/types"
)

func TestPlatePath_UnsuffixedReturnsBaseUnchanged(t *testing.T) {
	got := platePath("model.stl", types.PlatePositive, false)
	if got != "model.stl" {
		t.Fatalf("expected unsuffixed base path, got %q", got)
	}
}

func TestPlatePath_PositiveGetsEmbossSuffix(t *testing.T) {
	got := platePath("model.stl", types.PlatePositive, true)
	if got != "model-emboss.stl" {
		t.Fatalf("expected model-emboss.stl, got %q", got)
	}
}

func TestPlatePath_NegativeGetsCounterSuffix(t *testing.T) {
	got := platePath("model.stl", types.PlateNegative, true)
	if got != "model-counter.stl" {
		t.Fatalf("expected model-counter.stl, got %q", got)
	}
}

func TestPlatePath_NoExtensionStillSuffixes(t *testing.T) {
	got := platePath("output", types.PlateNegative, true)
	if got != "output-counter" {
		t.Fatalf("expected output-counter, got %q", got)
	}
}
