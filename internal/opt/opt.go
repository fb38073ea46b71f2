package opt

import (
	"context"
	"time"

	"rpq/internal/rpq"
)

type Optimizer interface {
	Solve(ctx context.Context, inst *rpq.Instance) (Result, error)
}

type Result struct {
	Order       []rpq.Job
	Makespan    int
	Evaluations int
	Iterations  int
	Duration    time.Duration
	Meta        map[string]any
}

// IDs возвращает порядок заданий в виде их идентификаторов.
func (r Result) IDs() []int {
	ids := make([]int, len(r.Order))
	for i, j := range r.Order {
		ids[i] = j.ID
	}
	return ids
}
