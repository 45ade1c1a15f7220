package statement

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/FACorreiaa/statement-extractor/internal/domain/document"
	"github.com/FACorreiaa/statement-extractor/internal/domain/extract"
	"github.com/FACorreiaa/statement-extractor/internal/domain/issuer"
	"github.com/FACorreiaa/statement-extractor/internal/domain/transaction"
)

// snippetLen bounds the diagnostic snippet carried on every result.
const snippetLen = 1200

// Input is one document to process: an identifier plus the text the external
// extractor produced. Lines, when set, carries per-line position metadata and
// takes precedence over Text.
type Input struct {
	ID    string
	Text  string
	Lines []document.SourceLine
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the pipeline logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = logger }
}

// WithMinScore overrides the detection threshold.
func WithMinScore(score int) Option {
	return func(p *Pipeline) { p.minScore = score }
}

// Pipeline runs the full extraction flow: normalize, detect, extract fields,
// parse transactions, aggregate. It is immutable after construction and safe
// for concurrent use across documents.
type Pipeline struct {
	registry *issuer.Registry
	detector *issuer.Detector
	engine   *extract.Engine
	txn      *transaction.Parser
	logger   *slog.Logger
	minScore int
}

// NewPipeline builds a pipeline over a sealed registry.
func NewPipeline(registry *issuer.Registry, opts ...Option) (*Pipeline, error) {
	p := &Pipeline{registry: registry, logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}

	detector, err := issuer.NewDetector(registry, p.minScore, p.logger)
	if err != nil {
		return nil, fmt.Errorf("build detector: %w", err)
	}
	p.detector = detector
	p.engine = extract.NewEngine(p.logger)
	p.txn = transaction.NewParser(p.logger)
	return p, nil
}

// Parse processes one document. The only error is a whole-document rejection
// (undecodable text or cancellation); every other problem degrades the
// result's completeness instead.
func (p *Pipeline) Parse(ctx context.Context, in Input) (*StatementResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := p.normalize(in)
	if err != nil {
		return nil, fmt.Errorf("document %s: %w", in.ID, err)
	}

	det := p.detector.Detect(doc)

	// Field extraction and transaction parsing are independent passes over
	// the same read-only document; run them concurrently.
	var (
		fields  []extract.FieldResult
		records []transaction.Record
	)
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		fields = p.extractFields(doc, det)
		return nil
	})
	g.Go(func() error {
		records = p.parseTransactions(doc, det)
		return nil
	})
	_ = g.Wait()

	result := &StatementResult{
		DocumentID:   in.ID,
		Issuer:       det.Issuer,
		IssuerName:   det.DisplayName,
		Detection:    det,
		Fields:       fields,
		Transactions: records,
		Status:       deriveStatus(det, fields),
		Snippet:      doc.Snippet(snippetLen),
	}

	p.logger.Info("statement processed",
		"document_id", in.ID,
		"issuer", result.Issuer,
		"status", result.Status.String(),
		"transactions", len(records))
	return result, nil
}

func (p *Pipeline) normalize(in Input) (*document.RawDocument, error) {
	if len(in.Lines) > 0 {
		return document.NormalizeLines(in.Lines)
	}
	return document.Normalize(in.Text)
}

// extractFields skips extraction entirely for unidentified documents; all
// required fields report NotFound.
func (p *Pipeline) extractFields(doc *document.RawDocument, det issuer.Detection) []extract.FieldResult {
	if !det.Identified() {
		return extract.NotFoundResults()
	}
	return p.engine.ExtractFields(doc, p.registry.Get(det.Issuer))
}

// parseTransactions uses the detected profile's layout, or the generic
// layout when no issuer matched.
func (p *Pipeline) parseTransactions(doc *document.RawDocument, det issuer.Detection) []transaction.Record {
	layout := issuer.CompiledGenericLayout()
	currency := ""
	if det.Identified() {
		profile := p.registry.Get(det.Issuer)
		layout = profile.Layout
		currency = profile.Currency
	}
	return p.txn.Parse(doc, layout, currency)
}
