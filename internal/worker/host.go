// Package worker simulates spec.md §5's host/Web-Worker concurrency
// model with goroutines and channels standing in for worker threads
// and postMessage. Grounded on the teacher's generateModelGeometry
// fan-out/fan-in (internal/stl/generator.go in the retrieved pack):
// a channel per concurrent unit plus a sync.WaitGroup, generalized
// from four fixed named components to an arbitrary pool of per-shape
// CSG workers drawing from a FIFO job queue.
package worker

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/brailleforge/braillestl/internal/csg"
	"github.com/brailleforge/braillestl/internal/errors"
	"github.com/brailleforge/braillestl/internal/logger"
	"github.com/brailleforge/braillestl/internal/types"
)

// DefaultJobBudgetMs is the wall-clock budget spec.md §5 names as the
// default per job (120s).
const DefaultJobBudgetMs = 120_000

// RespawnGrace is how long the host waits for a worker to acknowledge
// a cancel before it gives the worker up for dead and provisions a
// replacement (spec.md §5).
const RespawnGrace = 2 * time.Second

// MessageType mirrors the wire-level reply types of spec.md §6.2's
// worker message contract.
type MessageType string

const (
	MsgReady     MessageType = "ready"
	MsgDone      MessageType = "done"
	MsgError     MessageType = "error"
	MsgCancelled MessageType = "cancelled"
	MsgProgress  MessageType = "progress"
)

// Message is one host<->worker reply. Only the fields relevant to
// Type are populated, matching the tagged-union payload shapes of
// spec.md §6.2's message table.
type Message struct {
	Type     MessageType
	ID       string
	Result   *csg.Result
	Reason   *errors.Error
	Stage    string
	Fraction float64
}

// Job is one queued "generate" request (spec.md §6.2). Reply receives
// exactly one terminal message (done, error, or cancelled), optionally
// preceded by progress messages.
type Job struct {
	ID       string
	Shape    types.ShapeType
	Spec     *types.GeometrySpec
	BudgetMs int
	Reply    chan<- Message
}

// slot is one provisioned csg.Worker bound to a shape.
type slot struct {
	w  *csg.Worker
	id int
}

type cancelState struct {
	requested atomic.Bool
	acked     chan struct{}
}

// Host is the in-process stand-in for the browser's worker pool: a
// fixed per-shape capacity of csg.Worker instances, a FIFO queue for
// jobs beyond that capacity, and best-effort cancellation.
//
// Cancellation limitation: sdfx's boolean pipeline exposes no internal
// yield points, so a running job cannot actually be interrupted
// mid-boolean the way spec.md §5's "next primitive boundary" implies.
// Cancel instead takes effect at job granularity: a queued job is
// dropped before it starts; a running job is allowed to finish, its
// result discarded, and a cancelled reply sent in place of done. This
// is a disclosed simplification, not a silent one; see DESIGN.md.
type Host struct {
	mu       sync.Mutex
	tempDir  string
	capacity int

	idle    map[types.ShapeType][]*slot
	running map[types.ShapeType]int
	queue   map[types.ShapeType][]*Job
	cancels map[string]*cancelState
	nextID  int
}

// NewHost builds a host with capacityPerShape workers available for
// each of card and cylinder, each with its own scratch directory under
// tempDir.
func NewHost(tempDir string, capacityPerShape int) *Host {
	return &Host{
		tempDir:  tempDir,
		capacity: capacityPerShape,
		idle:     make(map[types.ShapeType][]*slot),
		running:  make(map[types.ShapeType]int),
		queue:    make(map[types.ShapeType][]*Job),
		cancels:  make(map[string]*cancelState),
	}
}

// Submit enqueues a job. If a worker of the job's shape is idle it
// starts immediately; if the shape's capacity has not been reached a
// fresh worker is provisioned; otherwise the job waits FIFO until a
// worker of that shape reports ready (spec.md §5's backpressure).
func (h *Host) Submit(job *Job) {
	h.mu.Lock()
	h.cancels[job.ID] = &cancelState{acked: make(chan struct{})}

	if s := h.popIdle(job.Shape); s != nil {
		h.running[job.Shape]++
		h.mu.Unlock()
		go h.run(s, job)
		return
	}
	if h.running[job.Shape] < h.capacity {
		h.running[job.Shape]++
		h.mu.Unlock()
		s, err := h.provision(job.Shape)
		if err != nil {
			job.Reply <- Message{Type: MsgError, ID: job.ID, Reason: errors.New(errors.IOError, "failed to provision worker", err)}
			h.mu.Lock()
			h.running[job.Shape]--
			h.mu.Unlock()
			return
		}
		go h.run(s, job)
		return
	}
	h.queue[job.Shape] = append(h.queue[job.Shape], job)
	h.mu.Unlock()
}

// Cancel requests cancellation of a job. If the job is still queued it
// is removed and a cancelled reply is sent synchronously; if it is
// running, the flag is observed by run() once the underlying Generate
// call returns.
func (h *Host) Cancel(jobID string, shape types.ShapeType) {
	h.mu.Lock()
	pending := h.queue[shape]
	for i, j := range pending {
		if j.ID == jobID {
			h.queue[shape] = append(pending[:i], pending[i+1:]...)
			h.mu.Unlock()
			j.Reply <- Message{Type: MsgCancelled, ID: jobID}
			return
		}
	}
	state, ok := h.cancels[jobID]
	h.mu.Unlock()
	if !ok {
		return
	}
	state.requested.Store(true)

	select {
	case <-state.acked:
	case <-time.After(RespawnGrace):
		_ = logger.GetLogger().Warning("worker: job %s did not acknowledge cancel within grace period, retiring its worker", jobID)
		h.mu.Lock()
		h.running[shape]-- // the orphaned goroutine still holds a slot's worker; don't reuse it
		h.mu.Unlock()
	}
}

func (h *Host) popIdle(shape types.ShapeType) *slot {
	list := h.idle[shape]
	if len(list) == 0 {
		return nil
	}
	s := list[len(list)-1]
	h.idle[shape] = list[:len(list)-1]
	return s
}

func (h *Host) provision(shape types.ShapeType) (*slot, error) {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.mu.Unlock()

	w, err := csg.NewWorker(shape, h.tempDir)
	if err != nil {
		return nil, err
	}
	if ferr := w.Init(); ferr != nil {
		return nil, ferr
	}
	return &slot{w: w, id: id}, nil
}

// run executes one job to completion on s, replies, returns the
// worker to the idle pool (unless retired), and pulls the next queued
// job of the same shape if any (spec.md §5's "starts them as workers
// report READY").
func (h *Host) run(s *slot, job *Job) {
	job.Reply <- Message{Type: MsgProgress, ID: job.ID, Stage: "building", Fraction: 0}

	budgetMs := job.BudgetMs
	if budgetMs <= 0 {
		budgetMs = DefaultJobBudgetMs
	}
	result, err := s.w.Generate(job.Spec, budgetMs)

	h.mu.Lock()
	state := h.cancels[job.ID]
	delete(h.cancels, job.ID)
	h.mu.Unlock()

	if state != nil && state.requested.Load() {
		close(state.acked)
		job.Reply <- Message{Type: MsgCancelled, ID: job.ID}
	} else if err != nil {
		job.Reply <- Message{Type: MsgError, ID: job.ID, Reason: err}
	} else {
		job.Reply <- Message{Type: MsgProgress, ID: job.ID, Stage: "done", Fraction: 1}
		job.Reply <- Message{Type: MsgDone, ID: job.ID, Result: result}
	}

	h.finish(s, job.Shape)
}

func (h *Host) finish(s *slot, shape types.ShapeType) {
	h.mu.Lock()
	h.running[shape]--
	next := h.popQueued(shape)
	if next == nil {
		h.idle[shape] = append(h.idle[shape], s)
	} else {
		h.running[shape]++
	}
	h.mu.Unlock()

	if next != nil {
		go h.run(s, next)
	}
}

func (h *Host) popQueued(shape types.ShapeType) *Job {
	list := h.queue[shape]
	if len(list) == 0 {
		return nil
	}
	job := list[0]
	h.queue[shape] = list[1:]
	return job
}
