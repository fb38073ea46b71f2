// Package heuristic — быстрая эвристика: сортировка по составному ключу
// (r + q, p) без какого-либо поиска.
package heuristic

import (
	"context"
	"sort"
	"time"

	"rpq/internal/opt"
	"rpq/internal/rpq"
)

type Solver struct{}

func New() *Solver { return &Solver{} }

func (s *Solver) Solve(ctx context.Context, inst *rpq.Instance) (opt.Result, error) {
	start := time.Now()

	if err := inst.Validate(); err != nil {
		return opt.Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return opt.Result{}, err
	}

	seq := Sort(inst.Jobs)
	return opt.Result{
		Order:       seq,
		Makespan:    rpq.Cmax(seq),
		Evaluations: 1,
		Duration:    time.Since(start),
		Meta: map[string]any{
			"key": "release+delivery,processing",
		},
	}, nil
}

// Sort возвращает копию seq, упорядоченную по r+q, при равенстве — по p.
func Sort(seq []rpq.Job) []rpq.Job {
	out := make([]rpq.Job, len(seq))
	copy(out, seq)
	sort.SliceStable(out, func(a, b int) bool {
		sa := out[a].Release + out[a].Delivery
		sb := out[b].Release + out[b].Delivery
		if sa != sb {
			return sa < sb
		}
		return out[a].Processing < out[b].Processing
	})
	return out
}
