package statement

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers bounds batch concurrency when no limit is configured.
const DefaultWorkers = 4

// Outcome pairs one input document with its result or its rejection. A
// rejected document never affects the rest of the batch.
type Outcome struct {
	DocumentID string           `json:"document_id"`
	Result     *StatementResult `json:"result,omitempty"`
	Err        error            `json:"-"`
}

// Batch processes many documents concurrently over one shared pipeline.
// The pipeline and registry are read-only, so no locking is needed.
type Batch struct {
	pipeline *Pipeline
	workers  int
	logger   *slog.Logger
}

// NewBatch creates a batch processor. workers <= 0 selects DefaultWorkers.
func NewBatch(pipeline *Pipeline, workers int, logger *slog.Logger) *Batch {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Batch{pipeline: pipeline, workers: workers, logger: logger}
}

// Process runs the pipeline over every input and returns one outcome per
// input, in input order. Inputs without an ID are assigned one. Cancelling
// the context discards unprocessed documents; their outcomes carry the
// context error.
func (b *Batch) Process(ctx context.Context, inputs []Input) []Outcome {
	outcomes := make([]Outcome, len(inputs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)

	for i, in := range inputs {
		i, in := i, in // per-iteration copies; required under the go1.21 toolchain
		if in.ID == "" {
			in.ID = uuid.NewString()
		}
		outcomes[i] = Outcome{DocumentID: in.ID}

		g.Go(func() error {
			result, err := b.pipeline.Parse(ctx, in)
			if err != nil {
				b.logger.Warn("document rejected", "document_id", in.ID, "err", err)
				outcomes[i].Err = err
				return nil // isolation: one bad document never stops the batch
			}
			outcomes[i].Result = result
			return nil
		})
	}

	_ = g.Wait()
	return outcomes
}
