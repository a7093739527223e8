package growth

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/mfalchetti/standgrow/internal/model"
)

// DiagnosticHints is printed when every configuration candidate has failed.
// The model rejects inputs for reasons it does not always report precisely,
// so the hints name the usual suspects.
var DiagnosticHints = []string{
	"check that the climate table has no missing months and strictly positive solar radiation",
	"check that the simulation window lies inside the climate coverage",
	"check species parameters and initial biomass for plausibility",
}

// ExhaustedError reports that every candidate configuration failed.
type ExhaustedError struct {
	Attempts []error
}

func (e *ExhaustedError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "growth model failed after %d configuration attempts", len(e.Attempts))
	for i, err := range e.Attempts {
		fmt.Fprintf(&b, "; attempt %d: %v", i+1, err)
	}
	return b.String()
}

// Invoker calls the growth model with an ordered list of configuration
// candidates, stopping at the first success.
type Invoker struct {
	runner     Runner
	candidates []RunOptions
}

// NewInvoker wires a runner with its candidate configurations. With no
// explicit candidates the default primary/fallback pair is used.
func NewInvoker(r Runner, candidates ...RunOptions) *Invoker {
	if len(candidates) == 0 {
		candidates = DefaultCandidates()
	}
	return &Invoker{runner: r, candidates: candidates}
}

// Run validates the assembled input once, then tries each candidate in
// order. The returned table is only presence-checked; its content is the
// model's contract, not ours.
func (inv *Invoker) Run(ctx context.Context, in RunInput) ([]model.ModelOutputRow, error) {
	if err := model.ValidateClimate(in.Climate); err != nil {
		return nil, err
	}
	if err := in.Site.Validate(); err != nil {
		return nil, err
	}
	if err := in.Site.CheckCoverage(in.Climate); err != nil {
		return nil, err
	}
	for _, sp := range in.Species {
		if err := sp.Validate(); err != nil {
			return nil, err
		}
	}

	var attempts []error
	for i, opts := range inv.candidates {
		in.Options = opts
		rows, err := inv.runner.Run(ctx, in)
		if err == nil {
			if len(rows) == 0 {
				err = fmt.Errorf("model returned an empty table")
			} else {
				if i > 0 {
					log.Printf("growth: candidate %d succeeded after %d failed attempt(s)", i+1, i)
				}
				return rows, nil
			}
		}
		log.Printf("growth: candidate %d (light=%d transp=%d phys=%d) failed: %v",
			i+1, opts.LightModel, opts.TranspModel, opts.PhysModel, err)
		attempts = append(attempts, err)

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}
	return nil, &ExhaustedError{Attempts: attempts}
}
