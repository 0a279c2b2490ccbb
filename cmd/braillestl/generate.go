package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/brailleforge/braillestl/internal/csg"
	"github.com/brailleforge/braillestl/internal/logger"
	"github.com/brailleforge/braillestl/internal/specgen"
	"github.com/brailleforge/braillestl/internal/stl"
	"github.com/brailleforge/braillestl/internal/types"
	"github.com/brailleforge/braillestl/internal/validate"
)

// defaultJobBudgetMs mirrors spec.md §5's 120s default wall-clock job
// budget.
const defaultJobBudgetMs = 120_000

func newGenerateCmd() *cobra.Command {
	var (
		jobPath    string
		outPath    string
		bothPlates bool
		previewSVG string
		budgetMs   int
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Run a job file through the full pipeline and write STL output",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(jobPath, outPath, previewSVG, budgetMs, bothPlates)
		},
	}

	cmd.Flags().StringVar(&jobPath, "job", "", "path to a YAML job file (required)")
	cmd.Flags().StringVar(&outPath, "out", "model.stl", "output STL path (or path prefix when --both-plates is set)")
	cmd.Flags().BoolVar(&bothPlates, "both-plates", false, "also generate the opposite plate (emboss + counter)")
	cmd.Flags().StringVar(&previewSVG, "preview-svg", "", "optional path to write a debug layout SVG (card shape only)")
	cmd.Flags().IntVar(&budgetMs, "budget-ms", defaultJobBudgetMs, "wall-clock budget per CSG job in milliseconds (0 = no deadline)")
	_ = cmd.MarkFlagRequired("job")

	return cmd
}

func runGenerate(jobPath, outPath, previewSVG string, budgetMs int, bothPlates bool) error {
	jf, err := loadJobFile(jobPath)
	if err != nil {
		return fmt.Errorf("failed to read job file: %w", err)
	}

	plates := []types.PlateType{}
	switch jf.Plate {
	case string(types.PlatePositive):
		plates = append(plates, types.PlatePositive)
	case string(types.PlateNegative):
		plates = append(plates, types.PlateNegative)
	default:
		return fmt.Errorf("job file plate must be %q or %q, got %q", types.PlatePositive, types.PlateNegative, jf.Plate)
	}
	if bothPlates {
		plates = []types.PlateType{types.PlatePositive, types.PlateNegative}
	}

	for _, plate := range plates {
		raw := jf.toRaw()
		raw.PlateType = string(plate)

		req, verr := validate.Validate(raw)
		if verr != nil {
			return fmt.Errorf("validation failed: %s", verr.Error())
		}

		spec, serr := specgen.Extract(req)
		if serr != nil {
			return fmt.Errorf("spec extraction failed: %s", serr.Error())
		}

		shape := types.ShapeCard
		if req.ShapeType == types.ShapeCylinder {
			shape = types.ShapeCylinder
		}

		worker, werr := csg.NewWorker(shape, "")
		if werr != nil {
			return fmt.Errorf("failed to start CSG worker: %w", werr)
		}
		if ierr := worker.Init(); ierr != nil {
			return fmt.Errorf("failed to initialize CSG worker: %s", ierr.Error())
		}

		result, gerr := worker.Generate(spec, budgetMs)
		if gerr != nil {
			return fmt.Errorf("CSG generation failed: %s", gerr.Error())
		}
		if result.Degraded {
			_ = logger.GetLogger().Warning("csg: result for plate %s is degraded (non-manifold after retry)", plate)
		}

		path := platePath(outPath, plate, len(plates) > 1)
		if werr := stl.WriteBinaryFile(path, result.Triangles); werr != nil {
			return fmt.Errorf("failed to write %s: %w", path, werr)
		}
		fmt.Println("wrote", path)

		if previewSVG != "" && req.ShapeType == types.ShapeCard {
			svgPath := platePath(previewSVG, plate, len(plates) > 1)
			if perr := writeCardPreviewSVG(spec, svgPath); perr != nil {
				return fmt.Errorf("failed to write preview SVG: %w", perr)
			}
			fmt.Println("wrote", svgPath)
		}
	}

	return nil
}

// platePath appends a "-emboss"/"-counter" suffix before the file
// extension when both plates are being written to the same base path.
func platePath(base string, plate types.PlateType, suffixed bool) string {
	if !suffixed {
		return base
	}
	suffix := "emboss"
	if plate == types.PlateNegative {
		suffix = "counter"
	}
	if idx := strings.LastIndex(base, "."); idx > 0 {
		return base[:idx] + "-" + suffix + base[idx:]
	}
	return base + "-" + suffix
}
