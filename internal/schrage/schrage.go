// Package schrage реализует алгоритм Шраге для задачи 1|r_j,q_j|Cmax:
// из готовых к выполнению заданий всегда запускается задание с наибольшим q.
//
// Алгоритм эвристический. Точный результат гарантируется только в частных
// случаях, в общем случае Cmax может превышать оптимум (но не более чем
// на max p_j).
package schrage

import (
	"context"
	"sort"
	"time"

	"rpq/internal/opt"
	"rpq/internal/rpq"
)

// Solver — структура реализации алгоритма Шраге.
type Solver struct {
	Cfg Config
}

func New(cfg Config) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Solver{Cfg: cfg}, nil
}

// Solve строит расписание одним проходом. Входной экземпляр не изменяется.
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

	var (
		order []rpq.Job
		cmax  int
	)
	switch s.Cfg.Variant {
	case VariantList:
		order, cmax = List(inst.Jobs)
	default:
		order, cmax = Heap(inst.Jobs)
	}

	return opt.Result{
		Order:       order,
		Makespan:    cmax,
		Evaluations: 1,
		Iterations:  len(order),
		Duration:    time.Since(start),
		Meta: map[string]any{
			"variant": string(s.Cfg.Variant),
		},
	}, nil
}

// byRelease возвращает копию заданий, упорядоченную по r; при равных r
// сохраняется исходный порядок.
func byRelease(jobs []rpq.Job) []rpq.Job {
	n := make([]rpq.Job, len(jobs))
	copy(n, jobs)
	sort.SliceStable(n, func(a, b int) bool { return n[a].Release < n[b].Release })
	return n
}

// List — вариант с линейным поиском: N просматривается курсором по
// отсортированному массиву, G — несортированный срез.
func List(jobs []rpq.Job) ([]rpq.Job, int) {
	n := byRelease(jobs)
	next := 0
	g := make([]rpq.Job, 0, len(jobs))
	order := make([]rpq.Job, 0, len(jobs))

	currentTime := 0
	cmax := 0

	for len(g) > 0 || next < len(n) {
		// Перенос всех уже доступных заданий в G
		for next < len(n) && n[next].Release <= currentTime {
			g = append(g, n[next])
			next++
		}

		// Готовых нет — сдвиг времени к ближайшему r
		if len(g) == 0 {
			currentTime = n[next].Release
			continue
		}

		// Задание с наибольшим q, при равенстве — первое найденное
		best := 0
		for i := 1; i < len(g); i++ {
			if g[i].Delivery > g[best].Delivery {
				best = i
			}
		}
		job := g[best]
		g = append(g[:best], g[best+1:]...)

		currentTime += job.Processing
		if currentTime+job.Delivery > cmax {
			cmax = currentTime + job.Delivery
		}
		order = append(order, job)
	}

	return order, cmax
}
