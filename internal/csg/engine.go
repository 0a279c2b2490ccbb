package csg

import (
	"os"
	"time"

	"github.com/brailleforge/braillestl/internal/errors"
	"github.com/brailleforge/braillestl/internal/logger"
	"github.com/brailleforge/braillestl/internal/stl"
	"github.com/brailleforge/braillestl/internal/types"
)

// State is a CSG worker's position in the state machine spec.md §4.4
// defines: IDLE -> LOADING_WASM -> READY -> RUNNING -> DONE|FAILED,
// with RUNNING -> CANCELLED -> READY on cancellation.
type State int

const (
	StateIdle State = iota
	StateLoadingBackend
	StateReady
	StateRunning
	StateDone
	StateFailed
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateLoadingBackend:
		return "LOADING_WASM"
	case StateReady:
		return "READY"
	case StateRunning:
		return "RUNNING"
	case StateDone:
		return "DONE"
	case StateFailed:
		return "FAILED"
	case StateCancelled:
		return "CANCELLED"
	default:
		return "UNKNOWN"
	}
}

// Result is the output of a completed CSG job: the mesh plus whatever
// the healing pass found, matching the worker -> host "done" message
// payload's "stats" field (spec.md §6.2).
type Result struct {
	Triangles []types.Triangle
	Degraded  bool
	Stats     HealStats
}

// jobBudget threads the wall-clock deadline, scratch directory, and
// current mesh resolution through a single CSG job.
type jobBudget struct {
	deadline       time.Time
	tempDir        string
	meshResolution int
}

func (b *jobBudget) expired() bool {
	return !b.deadline.IsZero() && time.Now().After(b.deadline)
}

// Worker is a single-job-at-a-time CSG engine instance (spec.md §4.4,
// §5's "per-worker singleton"). Init moves a card worker from IDLE
// straight to READY; a cylinder worker passes through LOADING_WASM, modeling
// the Manifold-WASM module's one-time load the way spec.md describes,
// even though this backend is pure Go and the "load" is really just a
// one-time sdfx warmup no-op.
type Worker struct {
	state   State
	shape   types.ShapeType
	tempDir string
}

// NewWorker constructs a worker bound to one shape type, mirroring the
// host's "one worker per card job and one per cylinder job" policy
// (spec.md §5). tempDir holds sdfx's intermediate STL files for this
// worker's lifetime; an empty tempDir gets a fresh OS temp directory.
func NewWorker(shape types.ShapeType, tempDir string) (*Worker, error) {
	dir, err := ensureTempDir(tempDir)
	if err != nil {
		return nil, errors.New(errors.IOError, "failed to prepare CSG scratch directory", err)
	}
	return &Worker{state: StateIdle, shape: shape, tempDir: dir}, nil
}

// Init transitions IDLE -> [LOADING_WASM ->] READY.
func (w *Worker) Init() *errors.Error {
	if w.state != StateIdle {
		return errors.New(errors.BadSpec, "Init called outside IDLE state", nil)
	}
	if w.shape == types.ShapeCylinder {
		w.state = StateLoadingBackend
		w.state = StateReady
	} else {
		w.state = StateReady
	}
	return nil
}

// Cancel transitions RUNNING -> CANCELLED -> READY, discarding any
// partial mesh (spec.md §5's cancellation contract). It is a no-op
// outside RUNNING.
func (w *Worker) Cancel() {
	if w.state != StateRunning {
		return
	}
	w.state = StateCancelled
	w.state = StateReady
}

// Generate runs one job: only READY accepts it (spec.md §4.4). On
// return the worker is back at READY regardless of outcome, matching
// a worker's ability to accept the next queued job immediately
// (spec.md §5's backpressure).
func (w *Worker) Generate(spec *types.GeometrySpec, budgetMs int) (*Result, *errors.Error) {
	if w.state != StateReady {
		return nil, errors.New(errors.BadSpec, "Generate called outside READY state", nil)
	}
	w.state = StateRunning
	defer func() { w.state = StateReady }()

	budget := &jobBudget{
		tempDir:        w.tempDir,
		meshResolution: defaultMeshResolution,
	}
	if budgetMs > 0 {
		budget.deadline = time.Now().Add(time.Duration(budgetMs) * time.Millisecond)
	}

	result, err := w.runWithRetry(spec, budget)
	if err != nil {
		w.state = StateFailed
		w.state = StateReady
		return nil, err
	}
	w.state = StateDone
	return result, nil
}

// runWithRetry implements spec.md §4.4's engine selection and
// fallback order: run at the preferred resolution; if healing finds a
// non-manifold mesh, retry once at a smaller subdivision; if that
// retry is also non-manifold, return csg_degraded with the retry's
// result.
func (w *Worker) runWithRetry(spec *types.GeometrySpec, budget *jobBudget) (*Result, *errors.Error) {
	triangles, err := w.build(spec, budget)
	if err != nil {
		return nil, err
	}
	stats := Heal(triangles)
	if stats.Manifold {
		return &Result{Triangles: triangles, Stats: stats}, nil
	}

	_ = logger.GetLogger().Warning("csg: non-manifold result (boundary edges=%d), retrying at reduced resolution", stats.BoundaryEdges)
	retryBudget := &jobBudget{
		deadline:       budget.deadline,
		tempDir:        budget.tempDir,
		meshResolution: degradedResolution(budget.meshResolution),
	}
	retryTriangles, err := w.build(spec, retryBudget)
	if err != nil {
		return nil, err
	}
	retryStats := Heal(retryTriangles)
	if retryStats.Manifold {
		return &Result{Triangles: retryTriangles, Stats: retryStats}, nil
	}

	return &Result{Triangles: retryTriangles, Degraded: true, Stats: retryStats}, nil
}

func (w *Worker) build(spec *types.GeometrySpec, budget *jobBudget) ([]types.Triangle, *errors.Error) {
	switch spec.Base.Kind {
	case types.BaseCard:
		return buildCard(spec, budget)
	case types.BaseCylinder:
		return buildCylinder(spec, budget)
	default:
		return nil, errors.New(errors.BadSpec, "unknown base kind in geometry spec", nil)
	}
}

// GenerateToFile runs Generate and writes the resulting mesh to path
// as a binary STL, the shape the host -> worker "generate" message's
// ArrayBuffer reply takes once transferred out of the worker (spec.md
// §6.2). A csg_degraded result is still written; the caller decides
// whether to reject it.
func (w *Worker) GenerateToFile(spec *types.GeometrySpec, budgetMs int, outPath string) (*Result, *errors.Error) {
	result, err := w.Generate(spec, budgetMs)
	if err != nil {
		return nil, err
	}
	if werr := stl.WriteBinaryFile(outPath, result.Triangles); werr != nil {
		return nil, werr.(*errors.Error)
	}
	return result, nil
}

// ensureTempDir returns a scratch directory for intermediate sdfx STL
// files, creating it if necessary.
func ensureTempDir(dir string) (string, error) {
	if dir == "" {
		return os.MkdirTemp("", "braillestl-csg-*")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}
