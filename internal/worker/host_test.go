package worker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brailleforge/braillestl/internal/types"
)

func tinyCardSpec() *types.GeometrySpec {
	return &types.GeometrySpec{
		Base:      types.Base{Kind: types.BaseCard, Width: 6, Height: 6, Thickness: 1.5},
		PlateType: types.PlatePositive,
	}
}

func TestHost_SubmitRunsJobToDone(t *testing.T) {
	h := NewHost(t.TempDir(), 1)
	reply := make(chan Message, 8)
	h.Submit(&Job{ID: "job-1", Shape: types.ShapeCard, Spec: tinyCardSpec(), BudgetMs: 60_000, Reply: reply})

	var got []Message
	deadline := time.After(30 * time.Second)
	for {
		select {
		case m := <-reply:
			got = append(got, m)
			if m.Type == MsgDone || m.Type == MsgError {
				assertTerminal(t, got)
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for job to complete")
		}
	}
}

func assertTerminal(t *testing.T, got []Message) {
	t.Helper()
	last := got[len(got)-1]
	assert.Contains(t, []MessageType{MsgDone, MsgError}, last.Type)
	if last.Type == MsgDone {
		require.NotNil(t, last.Result)
		assert.NotEmpty(t, last.Result.Triangles)
	}
}

func TestHost_QueuesBeyondCapacityFIFO(t *testing.T) {
	h := NewHost(t.TempDir(), 1)
	reply1 := make(chan Message, 8)
	reply2 := make(chan Message, 8)

	h.Submit(&Job{ID: "a", Shape: types.ShapeCard, Spec: tinyCardSpec(), BudgetMs: 60_000, Reply: reply1})
	h.Submit(&Job{ID: "b", Shape: types.ShapeCard, Spec: tinyCardSpec(), BudgetMs: 60_000, Reply: reply2})

	drainToTerminal(t, reply1)
	drainToTerminal(t, reply2)
}

func drainToTerminal(t *testing.T, ch <-chan Message) Message {
	t.Helper()
	deadline := time.After(30 * time.Second)
	for {
		select {
		case m := <-ch:
			if m.Type == MsgDone || m.Type == MsgError || m.Type == MsgCancelled {
				return m
			}
		case <-deadline:
			t.Fatal("timed out waiting for terminal message")
		}
	}
}

func TestHost_CancelQueuedJobBeforeItStarts(t *testing.T) {
	h := NewHost(t.TempDir(), 1)
	replyBusy := make(chan Message, 8)
	replyQueued := make(chan Message, 8)

	h.Submit(&Job{ID: "busy", Shape: types.ShapeCard, Spec: tinyCardSpec(), BudgetMs: 60_000, Reply: replyBusy})
	h.Submit(&Job{ID: "queued", Shape: types.ShapeCard, Spec: tinyCardSpec(), BudgetMs: 60_000, Reply: replyQueued})

	h.Cancel("queued", types.ShapeCard)

	m := drainToTerminal(t, replyQueued)
	assert.Equal(t, MsgCancelled, m.Type)

	drainToTerminal(t, replyBusy)
}
