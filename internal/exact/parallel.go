package exact

import (
	"context"
	"math"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"

	"rpq/internal/logger"
	"rpq/internal/opt"
	"rpq/internal/rpq"
)

// chunk — непрерывный диапазон лексикографических номеров [from, to).
type chunk struct {
	from, to int64
}

// localBest — результат одного рабочего.
type localBest struct {
	perm  []int
	cost  int
	evals int
}

// split делит total номеров на workers частей по total/workers,
// остаток достаётся последней части.
func split(total int64, workers int) []chunk {
	size := total / int64(workers)
	out := make([]chunk, workers)
	for t := 0; t < workers; t++ {
		from := int64(t) * size
		to := from + size
		if t == workers-1 {
			to = total
		}
		out[t] = chunk{from: from, to: to}
	}
	return out
}

// Parallel — перебор, разделённый между workers горутинами.
// Каждый рабочий возвращает свой лучший результат, итог выбирается
// однопоточной редукцией по порядку частей, поэтому при равных Cmax
// результат совпадает с Sequential.
func Parallel(ctx context.Context, inst *rpq.Instance, workers int) (opt.Result, error) {
	start := time.Now()

	if workers <= 0 {
		return opt.Result{}, errors.Newf("workers must be > 0 (got %d)", workers)
	}
	if err := checkSize(inst, rpq.MaxFactorial); err != nil {
		return opt.Result{}, err
	}

	n := inst.Len()
	total, err := rpq.Factorial(n)
	if err != nil {
		return opt.Result{}, err
	}

	chunks := split(total, workers)
	results := make([]localBest, workers)

	g, gctx := errgroup.WithContext(ctx)
	for t, c := range chunks {
		t, c := t, c
		g.Go(func() error {
			lb, err := scanChunk(gctx, inst, c)
			results[t] = lb
			if err != nil {
				return errors.Wrapf(err, "worker %d", t)
			}
			logger.Logger.Debugw("exact search worker done",
				"worker", t,
				"from", c.from,
				"to", c.to,
				"best_cmax", lb.cost,
			)
			return nil
		})
	}
	werr := g.Wait()

	// Редукция: строгое улучшение, части в порядке номеров
	best, bestCost, evals := reduce(results)
	res := opt.Result{
		Evaluations: evals,
		Iterations:  evals,
		Duration:    time.Since(start),
		Meta: map[string]any{
			"workers": workers,
			"chunk":   total / int64(workers),
		},
	}
	if best != nil {
		res.Order = inst.Order(best)
		res.Makespan = bestCost
	}
	if werr != nil {
		// Как и Sequential, при отмене отдаём лучшее из уже просмотренного.
		res.Meta["stopped"] = "context"
		return res, werr
	}
	return res, nil
}

func reduce(results []localBest) ([]int, int, int) {
	bestCost := math.MaxInt
	var best []int
	evals := 0
	for _, lb := range results {
		evals += lb.evals
		if lb.perm != nil && lb.cost < bestCost {
			bestCost = lb.cost
			best = lb.perm
		}
	}
	return best, bestCost, evals
}

func scanChunk(ctx context.Context, inst *rpq.Instance, c chunk) (localBest, error) {
	lb := localBest{cost: math.MaxInt}
	if c.from >= c.to {
		return lb, nil
	}

	eval, err := rpq.NewEvaluator(inst)
	if err != nil {
		return lb, err
	}
	perm, err := rpq.UnrankPermutation(c.from, inst.Len())
	if err != nil {
		return lb, err
	}

	for rank := c.from; rank < c.to; rank++ {
		if lb.evals%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return lb, err
			}
		}

		cost, err := eval.Makespan(perm)
		if err != nil {
			return lb, err
		}
		lb.evals++
		if cost < lb.cost {
			lb.cost = cost
			if lb.perm == nil {
				lb.perm = make([]int, len(perm))
			}
			copy(lb.perm, perm)
		}

		if !rpq.NextPermutation(perm) {
			break
		}
	}
	return lb, nil
}
