// Package groups — локальная оптимизация групп заданий с равным r (или q)
// в уже отсортированной последовательности.
package groups

import (
	"context"
	"sort"
	"time"

	"rpq/internal/opt"
	"rpq/internal/rpq"
)

type Solver struct {
	Cfg Config
}

func New(cfg Config) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Solver{Cfg: cfg}, nil
}

// Solve сортирует задания по ключу и затем переупорядочивает группы.
func (s *Solver) Solve(ctx context.Context, inst *rpq.Instance) (opt.Result, error) {
	start := time.Now()

	if err := inst.Validate(); err != nil {
		return opt.Result{}, err
	}
	if err := s.Cfg.Validate(); err != nil {
		return opt.Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return opt.Result{}, err
	}

	var seq []rpq.Job
	switch s.Cfg.Key {
	case KeyDelivery:
		seq = SortByDelivery(inst.Jobs, !s.Cfg.Descending)
	default:
		seq = SortByRelease(inst.Jobs, !s.Cfg.Descending)
	}
	seq, groups := optimize(seq, s.Cfg.Key)

	return opt.Result{
		Order:       seq,
		Makespan:    rpq.Cmax(seq),
		Evaluations: 1,
		Iterations:  groups,
		Duration:    time.Since(start),
		Meta: map[string]any{
			"key":        string(s.Cfg.Key),
			"descending": s.Cfg.Descending,
			"groups":     groups,
		},
	}, nil
}

func SortByRelease(seq []rpq.Job, ascending bool) []rpq.Job {
	return sortBy(seq, ascending, func(j rpq.Job) int { return j.Release })
}

func SortByDelivery(seq []rpq.Job, ascending bool) []rpq.Job {
	return sortBy(seq, ascending, func(j rpq.Job) int { return j.Delivery })
}

func sortBy(seq []rpq.Job, ascending bool, key func(rpq.Job) int) []rpq.Job {
	out := make([]rpq.Job, len(seq))
	copy(out, seq)
	sort.SliceStable(out, func(a, b int) bool {
		if ascending {
			return key(out[a]) < key(out[b])
		}
		return key(out[a]) > key(out[b])
	})
	return out
}

// Optimize находит максимальные подряд идущие группы с одинаковым
// значением ключа и переупорядочивает каждую так, чтобы минимизировать Cmax
// группы, рассматриваемой отдельно от остальных заданий.
// Исходный срез не изменяется.
func Optimize(seq []rpq.Job, key Key) []rpq.Job {
	out, _ := optimize(seq, key)
	return out
}

func optimize(seq []rpq.Job, key Key) ([]rpq.Job, int) {
	value := func(j rpq.Job) int { return j.Release }
	if key == KeyDelivery {
		value = func(j rpq.Job) int { return j.Delivery }
	}

	out := make([]rpq.Job, len(seq))
	copy(out, seq)

	groups := 0
	for i := 0; i < len(out); {
		j := i + 1
		for j < len(out) && value(out[j]) == value(out[i]) {
			j++
		}
		if j-i >= 2 {
			reorder(out[i:j])
			groups++
		}
		i = j
	}
	return out, groups
}

// before сообщает, что пара (a, b) даёт строго меньший Cmax, чем (b, a).
func before(a, b rpq.Job) bool {
	return rpq.Cmax([]rpq.Job{a, b}) < rpq.Cmax([]rpq.Job{b, a})
}

func reorder(group []rpq.Job) {
	if len(group) == 2 {
		if before(group[1], group[0]) {
			group[0], group[1] = group[1], group[0]
		}
		return
	}
	sort.SliceStable(group, func(a, b int) bool { return before(group[a], group[b]) })
}
