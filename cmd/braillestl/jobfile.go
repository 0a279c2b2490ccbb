package main

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/brailleforge/braillestl/internal/validate"
)

// jobFile is the on-disk shape of a generation job, matching
// validate.Raw's field names loosely typed per spec.md §4.1 so the
// validator owns every range/enum check; the CLI itself never
// second-guesses a value.
type jobFile struct {
	Shape          string            `yaml:"shape"`
	Plate          string            `yaml:"plate"`
	Lines          []string          `yaml:"lines"`
	OriginalLines  []string          `yaml:"originalLines"`
	Settings       map[string]float64 `yaml:"settings"`
	IntSettings    map[string]int    `yaml:"intSettings"`
	StringSettings map[string]string `yaml:"stringSettings"`
}

// loadJobFile decodes path with KnownFields(true), rejecting any top-
// level key that doesn't map onto jobFile: spec.md §9's "recognize
// every option; reject unknown keys" applies to the job file itself,
// not just the settings map nested inside it.
func loadJobFile(path string) (*jobFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	var jf jobFile
	if err := decoder.Decode(&jf); err != nil {
		return nil, fmt.Errorf("failed to decode job file: %w", err)
	}
	return &jf, nil
}

func (jf *jobFile) toRaw() validate.Raw {
	return validate.Raw{
		ShapeType:        jf.Shape,
		PlateType:        jf.Plate,
		Lines:            jf.Lines,
		OriginalLines:    jf.OriginalLines,
		HasOriginalLines: len(jf.OriginalLines) > 0,
		Settings:         jf.Settings,
		IntSettings:      jf.IntSettings,
		StringSettings:   jf.StringSettings,
	}
}
