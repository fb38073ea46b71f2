// Package exact — точное решение полным перебором всех n! перестановок.
// Пригоден только для малых n.
package exact

import (
	"context"
	"math"
	"time"

	"github.com/cockroachdb/errors"

	"rpq/internal/opt"
	"rpq/internal/rpq"
)

var ErrTooManyJobs = errors.New("instance too large for exhaustive search")

// ctxCheckEvery — период проверки отмены контекста (в перестановках).
const ctxCheckEvery = 4096

type Solver struct {
	Cfg Config
}

func New(cfg Config) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Solver{Cfg: cfg}, nil
}

// Solve выбирает последовательный (Workers == 0) или параллельный перебор.
func (s *Solver) Solve(ctx context.Context, inst *rpq.Instance) (opt.Result, error) {
	if err := s.Cfg.Validate(); err != nil {
		return opt.Result{}, err
	}
	if err := checkSize(inst, s.Cfg.MaxJobs); err != nil {
		return opt.Result{}, err
	}
	if s.Cfg.Workers == 0 {
		return Sequential(ctx, inst)
	}
	return Parallel(ctx, inst, s.Cfg.Workers)
}

func checkSize(inst *rpq.Instance, maxJobs int) error {
	if err := inst.Validate(); err != nil {
		return err
	}
	if inst.Len() > maxJobs {
		return errors.WithHint(
			errors.Wrapf(ErrTooManyJobs, "%d jobs (limit %d)", inst.Len(), maxJobs),
			"use schrage or heuristic for large instances, or raise --max-jobs",
		)
	}
	return nil
}

// Sequential перебирает перестановки в лексикографическом порядке ID,
// начиная с возрастающего. При равных Cmax побеждает первая найденная.
func Sequential(ctx context.Context, inst *rpq.Instance) (opt.Result, error) {
	start := time.Now()

	if err := checkSize(inst, rpq.MaxFactorial); err != nil {
		return opt.Result{}, err
	}
	eval, err := rpq.NewEvaluator(inst)
	if err != nil {
		return opt.Result{}, err
	}

	n := inst.Len()
	perm := rpq.IdentityPermutation(n)
	best := make([]int, n)
	bestCost := math.MaxInt
	evals := 0

	for {
		if evals%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return partial(inst, best, bestCost, evals, start), err
			}
		}

		cost := eval.MustMakespan(perm)
		evals++
		if cost < bestCost {
			bestCost = cost
			copy(best, perm)
		}

		if !rpq.NextPermutation(perm) {
			break
		}
	}

	return opt.Result{
		Order:       inst.Order(best),
		Makespan:    bestCost,
		Evaluations: evals,
		Iterations:  evals,
		Duration:    time.Since(start),
		Meta: map[string]any{
			"workers": 0,
		},
	}, nil
}

// partial — лучший результат на момент отмены.
func partial(inst *rpq.Instance, best []int, bestCost, evals int, start time.Time) opt.Result {
	res := opt.Result{
		Evaluations: evals,
		Iterations:  evals,
		Duration:    time.Since(start),
		Meta:        map[string]any{"stopped": "context"},
	}
	if evals > 0 {
		res.Order = inst.Order(best)
		res.Makespan = bestCost
	}
	return res
}
