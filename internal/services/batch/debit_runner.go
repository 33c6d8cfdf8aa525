package batch

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/kevin07696/securepay-periodic/internal/adapters/ports"
	"github.com/kevin07696/securepay-periodic/internal/domain"
	"github.com/kevin07696/securepay-periodic/pkg/observability"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
)

// Result statuses
const (
	StatusApproved = "approved"
	StatusDeclined = "declined"
	StatusFailed   = "failed"
)

// DebitInstruction is one stored-card debit to run
type DebitInstruction struct {
	Line      int // source line, 0 when not read from a file
	ClientID  string
	Reference string
	Amount    domain.Money
}

// DebitResult pairs an instruction with its outcome.
// Exactly one of Response and Err is set.
type DebitResult struct {
	Instruction DebitInstruction
	Response    *ports.PeriodicResponse
	Err         error
}

// Status classifies the result
func (r DebitResult) Status() string {
	switch {
	case r.Err != nil:
		return StatusFailed
	case r.Response != nil && r.Response.Successful:
		return StatusApproved
	default:
		return StatusDeclined
	}
}

// Summary totals a batch
type Summary struct {
	Approved int
	Declined int
	Failed   int
	// ApprovedMinor is the sum of approved amounts in minor units
	ApprovedMinor int64
}

// Summarize totals results
func Summarize(results []DebitResult) Summary {
	var s Summary
	for _, r := range results {
		switch r.Status() {
		case StatusApproved:
			s.Approved++
			if minor, err := r.Instruction.Amount.MinorUnits(); err == nil {
				s.ApprovedMinor += minor.IntPart()
			}
		case StatusDeclined:
			s.Declined++
		default:
			s.Failed++
		}
	}
	return s
}

// DebitRunner runs debits against one gateway with bounded concurrency
type DebitRunner struct {
	gateway ports.PeriodicGatewayAdapter
	workers int
	logger  *zap.Logger
}

// NewDebitRunner creates a runner using at most workers concurrent requests
func NewDebitRunner(gateway ports.PeriodicGatewayAdapter, workers int, logger *zap.Logger) *DebitRunner {
	if workers < 1 {
		workers = 1
	}
	return &DebitRunner{
		gateway: gateway,
		workers: workers,
		logger:  logger,
	}
}

// Run debits every instruction and returns results in input order.
// Instructions not yet started when ctx is done fail with ctx.Err().
func (r *DebitRunner) Run(ctx context.Context, instructions []DebitInstruction) ([]DebitResult, error) {
	results := make([]DebitResult, len(instructions))
	if len(instructions) == 0 {
		return results, nil
	}

	pool, err := ants.NewPool(r.workers, ants.WithNonblocking(false))
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	r.logger.Info("Starting batch debit",
		zap.Int("instructions", len(instructions)),
		zap.Int("workers", r.workers),
	)

	var wg sync.WaitGroup
	for i := range instructions {
		results[i].Instruction = instructions[i]

		wg.Add(1)
		task := func() {
			defer wg.Done()
			r.debit(ctx, &results[i])
		}
		if err := pool.Submit(task); err != nil {
			results[i].Err = fmt.Errorf("submit debit: %w", err)
			wg.Done()
		}
	}
	wg.Wait()

	summary := Summarize(results)
	r.logger.Info("Batch debit finished",
		zap.Int("approved", summary.Approved),
		zap.Int("declined", summary.Declined),
		zap.Int("failed", summary.Failed),
		zap.Int64("approved_minor", summary.ApprovedMinor),
	)

	return results, nil
}

func (r *DebitRunner) debit(ctx context.Context, result *DebitResult) {
	defer func() {
		if p := recover(); p != nil {
			result.Response = nil
			result.Err = fmt.Errorf("debit panicked: %v", p)
		}
		observability.RecordBatchDebit(result.Status())
	}()

	if err := ctx.Err(); err != nil {
		result.Err = err
		return
	}

	in := result.Instruction
	resp, err := r.gateway.DebitStoredCard(ctx, in.ClientID, in.Reference, in.Amount)
	if err != nil {
		result.Err = err
		r.logger.Warn("Batch debit failed",
			zap.Int("line", in.Line),
			zap.String("client_id", in.ClientID),
			zap.String("reference", in.Reference),
			zap.Error(err),
		)
		return
	}
	if resp == nil {
		result.Err = errors.New("gateway returned no response")
		return
	}
	result.Response = resp
}
