package validate

import (
	"testing"

	"github.com/brailleforge/braillestl/internal/errors"
	"github.com/brailleforge/braillestl/internal/types"
	"pgregory.net/rapid"
)

func TestValidate_S1SingleCellCard(t *testing.T) {
	raw := Raw{
		ShapeType: "card",
		PlateType: "positive",
		Lines:     []string{"⠓"},
		Settings: map[string]float64{
			"cardWidth": 90, "cardHeight": 52, "cardThickness": 2.0,
			"roundedDotBaseDiameter": 1.5, "roundedDotBaseHeight": 0.5,
			"roundedDotDomeDiameter": 1.0, "roundedDotDomeHeight": 0.5,
		},
		StringSettings: map[string]string{"dotShape": "rounded", "indicatorShapes": "off"},
	}
	req, err := Validate(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Settings.IndicatorShapes != types.IndicatorsOff {
		t.Fatalf("expected indicators off")
	}
}

func TestValidate_RejectsNonBraille(t *testing.T) {
	raw := Raw{ShapeType: "card", PlateType: "positive", Lines: []string{"hello"}}
	_, err := Validate(raw)
	if err == nil || err.Reason != "not_braille" {
		t.Fatalf("expected not_braille, got %v", err)
	}
}

func TestValidate_RejectsEmptyLines(t *testing.T) {
	raw := Raw{ShapeType: "card", PlateType: "positive", Lines: nil}
	_, err := Validate(raw)
	if err == nil || err.Reason != "missing" {
		t.Fatalf("expected missing, got %v", err)
	}
}

func TestValidate_AllBlankLineFails(t *testing.T) {
	raw := Raw{ShapeType: "card", PlateType: "positive", Lines: []string{"   "}}
	_, err := Validate(raw)
	if err == nil || err.Reason != "missing" {
		t.Fatalf("expected missing for all-blank input, got %v", err)
	}
}

func TestValidate_OriginalLinesMismatch(t *testing.T) {
	raw := Raw{
		ShapeType: "card", PlateType: "positive",
		Lines: []string{"⠓", "⠁"},
		OriginalLines: []string{"H"}, HasOriginalLines: true,
	}
	_, err := Validate(raw)
	if err == nil || err.Reason != "inconsistent" {
		t.Fatalf("expected inconsistent, got %v", err)
	}
}

func TestValidate_OutOfRangeSetting(t *testing.T) {
	raw := Raw{
		ShapeType: "card", PlateType: "positive",
		Lines:    []string{"⠁"},
		Settings: map[string]float64{"cardWidth": 5000},
	}
	_, err := Validate(raw)
	if err == nil || err.Reason != "out_of_range" {
		t.Fatalf("expected out_of_range, got %v", err)
	}
}

func TestValidate_RejectsUnknownNumericSettingKey(t *testing.T) {
	raw := Raw{
		ShapeType: "card", PlateType: "positive",
		Lines:    []string{"⠁"},
		Settings: map[string]float64{"cardWidht": 90},
	}
	_, err := Validate(raw)
	if err == nil || err.Field != "cardWidht" {
		t.Fatalf("expected rejection of unrecognized key, got %v", err)
	}
}

func TestValidate_RejectsUnknownIntSettingKey(t *testing.T) {
	raw := Raw{
		ShapeType: "card", PlateType: "positive",
		Lines:       []string{"⠁"},
		IntSettings: map[string]int{"gridColums": 10},
	}
	_, err := Validate(raw)
	if err == nil || err.Field != "gridColums" {
		t.Fatalf("expected rejection of unrecognized key, got %v", err)
	}
}

func TestValidate_RejectsUnknownStringSettingKey(t *testing.T) {
	raw := Raw{
		ShapeType: "card", PlateType: "positive",
		Lines:          []string{"⠁"},
		StringSettings: map[string]string{"dotshape": "rounded"},
	}
	_, err := Validate(raw)
	if err == nil || err.Field != "dotshape" {
		t.Fatalf("expected rejection of unrecognized key, got %v", err)
	}
}

func TestValidate_CutoutRadiusMustBeSmallerThanDiameterHalf(t *testing.T) {
	raw := Raw{
		ShapeType: "cylinder", PlateType: "positive",
		Lines: []string{"⠁"},
		Settings: map[string]float64{
			"cylinderDiameter":              20,
			"cylinderPolygonalCutoutRadius": 15,
		},
	}
	_, err := Validate(raw)
	if err == nil || err.Field != "cylinderPolygonalCutoutRadius" {
		t.Fatalf("expected cutout-radius violation, got %v", err)
	}
}

// V1 (braille validity): every accepted request's code points are
// either U+0020 or within U+2800-U+28FF.
func TestProperty_V1BrailleValidity(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 6).Draw(rt, "cellCount")
		var line []rune
		for i := 0; i < n; i++ {
			if rapid.Bool().Draw(rt, "blank") {
				line = append(line, ' ')
			} else {
				offset := rapid.IntRange(0, 0xFF).Draw(rt, "offset")
				line = append(line, rune(0x2800+offset))
			}
		}
		raw := Raw{ShapeType: "card", PlateType: "positive", Lines: []string{string(line)}}
		req, err := Validate(raw)
		if err != nil {
			return // settings/line constraints may still reject; that's fine for this property
		}
		for _, l := range req.Lines {
			for _, r := range l {
				if !IsBrailleOrSpace(r) {
					rt.Fatalf("accepted non-braille rune %U", r)
				}
			}
		}
	})
}

func TestValidate_UnknownShapeType(t *testing.T) {
	_, err := Validate(Raw{ShapeType: "sphere", PlateType: "positive", Lines: []string{"⠁"}})
	if !errors.Is(err, errors.ValidationError) {
		t.Fatalf("expected ValidationError kind")
	}
}
