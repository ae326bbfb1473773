package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ccollicutt/chronolog/pkg/event"
	"github.com/ccollicutt/chronolog/pkg/evidence"
)

// DefaultBatchTimeout is the whole-batch processing ceiling.
const DefaultBatchTimeout = 60 * time.Second

// Orchestrator runs a batch of files through the dispatcher, strictly in
// input order and sequentially, under a whole-batch deadline. A cancelled or
// timed-out batch returns no partial results: everything accumulated so far
// is discarded.
type Orchestrator struct {
	dispatcher   *Dispatcher
	batchTimeout time.Duration
}

// OrchestratorOption configures an Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithBatchTimeout overrides the whole-batch ceiling.
func WithBatchTimeout(timeout time.Duration) OrchestratorOption {
	return func(o *Orchestrator) {
		if timeout > 0 {
			o.batchTimeout = timeout
		}
	}
}

// NewOrchestrator creates an orchestrator around a dispatcher.
func NewOrchestrator(dispatcher *Dispatcher, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		dispatcher:   dispatcher,
		batchTimeout: DefaultBatchTimeout,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Process runs the batch. On success the result holds every produced event
// in input order; the caller merges it into its event sink in one append.
// On cancellation or batch timeout the result is nil and the error is a
// batch-level ProcessError; nothing may be merged.
//
// Because the dispatcher never fails, the Errors list is populated only
// when dispatch itself cannot complete.
func (o *Orchestrator) Process(ctx context.Context, files []evidence.File) (*event.ProcessingResult, error) {
	ctx, cancel := context.WithTimeout(ctx, o.batchTimeout)
	defer cancel()

	result := &event.ProcessingResult{BatchID: uuid.NewString()}

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, o.batchError(err)
		}

		events, err := o.dispatchSafe(ctx, f)

		// A cancellation that fired mid-file discards the in-flight
		// outcome along with everything accumulated so far.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, o.batchError(ctxErr)
		}

		if err != nil {
			result.Errors = append(result.Errors, event.FileError{File: f.Name, Error: err.Error()})
			continue
		}
		result.Events = append(result.Events, events...)
	}

	return result, nil
}

// dispatchSafe invokes the dispatcher, converting a panic into an error so
// one pathological file cannot abort the batch.
func (o *Orchestrator) dispatchSafe(ctx context.Context, f evidence.File) (events []event.Event, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("dispatch failed: %v", r)
		}
	}()
	return o.dispatcher.Dispatch(ctx, f), nil
}

// batchError maps a context error to the batch-level taxonomy.
func (o *Orchestrator) batchError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return evidence.WrapProcessError(evidence.KindBatchTimeout, "",
			"file processing timeout - operation took too long", err)
	}
	return evidence.WrapProcessError(evidence.KindBatchCancelled, "",
		"upload cancelled", err)
}
