package meta

import (
	"context"
	"errors"
)

// BenchStage marks which part of a pool/heap exercise cycle is running for
// one named lane of a benchmark run.
type BenchStage uint8

const (
	StageRegister BenchStage = iota
	StageAllocate
	StageReuse
	StageDone
)

// BenchStatus mirrors the queued/working/done/error lifecycle of one lane.
type BenchStatus uint8

const (
	StatusQueued BenchStatus = iota
	StatusWorking
	StatusFinished
	StatusError
)

// BenchEvent reports progress for one named lane of a bench run; Type is
// empty for a run-wide event.
type BenchEvent struct {
	Type   string
	Stage  BenchStage
	Status BenchStatus
}

// ProgressSink receives BenchEvents as a run makes progress.
type ProgressSink interface {
	Emit(BenchEvent)
}

// ChannelSink forwards events onto a channel; a nil or full, unread channel
// is not this sink's problem to solve, matching the no-internal-locking
// concurrency model in §5.
type ChannelSink struct {
	Ch chan<- BenchEvent
}

func (s ChannelSink) Emit(e BenchEvent) {
	if s.Ch != nil {
		s.Ch <- e
	}
}

// BenchRequest drives RunBench: one lane per name in Lanes, each running
// Cycles alloc/deref round trips against a freshly registered pool-backed
// type, to exercise and report on LIFO slot reuse.
type BenchRequest struct {
	Reg      *Registry
	Lanes    []string
	Cycles   int
	Progress ProgressSink
}

// BenchResult totals what a run observed.
type BenchResult struct {
	Allocations int
	LIFOReuses  int
}

type benchElem struct{ n int64 }

// RunBench exercises the Pool's slot-recycling behavior once per lane,
// reporting stage transitions to req.Progress as it goes. It is the bench
// subcommand's engine, and the scenario ui.ProgressModel renders live.
func RunBench(ctx context.Context, req *BenchRequest) (BenchResult, error) {
	if req == nil || req.Reg == nil {
		return BenchResult{}, errors.New("missing bench request")
	}
	emit := func(e BenchEvent) {
		if req.Progress != nil {
			req.Progress.Emit(e)
		}
	}

	emptySig, err := PackSignature(nil)
	if err != nil {
		return BenchResult{}, err
	}

	cycles := req.Cycles
	if cycles < 1 {
		cycles = 1
	}

	var result BenchResult
	for _, name := range req.Lanes {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		emit(BenchEvent{Type: name, Stage: StageRegister, Status: StatusWorking})
		id := RegisterGoType[benchElem](req.Reg, "bench."+name)
		req.Reg.AddConstructor(id, emptySig, func(out View, args Span) {})
		pool := req.Reg.poolFor(id)
		args := SpanEmpty(req.Reg)

		emit(BenchEvent{Type: name, Stage: StageAllocate, Status: StatusWorking})
		slots := make([]SlotIndex, 0, cycles)
		for i := 0; i < cycles; i++ {
			slots = append(slots, pool.Alloc(args))
			result.Allocations++
		}

		emit(BenchEvent{Type: name, Stage: StageReuse, Status: StatusWorking})
		for i := len(slots) - 1; i >= 0; i-- {
			pool.Deref(slots[i])
		}
		reused := pool.Alloc(args)
		if reused == slots[len(slots)-1] {
			result.LIFOReuses++
		}
		pool.Deref(reused)

		emit(BenchEvent{Type: name, Stage: StageDone, Status: StatusFinished})
	}
	return result, nil
}
