package operations

import (
	"context"
	"fmt"
	"log/slog"
)

// Runner executes pipeline steps strictly in order, aborting on the
// first failure. There is no partial-success mode and no step retries.
type Runner struct {
	steps  []Step
	states map[string]*StepState
	logger *slog.Logger
}

// NewRunner creates a Runner over the given steps. A nil logger falls
// back to slog.Default.
func NewRunner(steps []Step, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	states := make(map[string]*StepState, len(steps))
	for _, step := range steps {
		states[step.ID()] = NewStepState(step.ID(), step.Name())
	}
	return &Runner{steps: steps, states: states, logger: logger}
}

// StepState returns the runtime state of a step by ID, or nil.
func (r *Runner) StepState(id string) *StepState {
	return r.states[id]
}

// Run executes every step in sequence. The returned error names the
// failing step.
func (r *Runner) Run(ctx context.Context, state *PipelineState) error {
	for _, step := range r.steps {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("pipeline canceled before step %s: %w", step.ID(), err)
		}

		stepState := r.states[step.ID()]

		if err := step.Validate(state); err != nil {
			stepState.Fail(err)
			return fmt.Errorf("step %s validation failed: %w", step.ID(), err)
		}

		r.logger.Info("step started",
			slog.String("step", step.ID()),
			slog.String("name", step.Name()))
		stepState.Start()

		if err := step.Execute(ctx, state); err != nil {
			stepState.Fail(err)
			r.logger.Error("step failed",
				slog.String("step", step.ID()),
				slog.String("error", err.Error()))
			return fmt.Errorf("step %s failed: %w", step.ID(), err)
		}

		stepState.Complete()
		r.logger.Info("step completed",
			slog.String("step", step.ID()),
			slog.Duration("duration", stepState.Duration()))
	}
	return nil
}
