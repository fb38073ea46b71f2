package rpq

import "github.com/cockroachdb/errors"

// Cmax — значение целевой функции: задания запускаются строго в порядке
// последовательности, не раньше своего r; результат — максимум C_j + q_j.
func Cmax(seq []Job) int {
	return simulate(len(seq), func(i int) Job { return seq[i] })
}

// simulate прогоняет n заданий в порядке at(0), ..., at(n-1).
func simulate(n int, at func(i int) Job) int {
	currentTime := 0
	cmax := 0
	for i := 0; i < n; i++ {
		j := at(i)
		if j.Release > currentTime {
			currentTime = j.Release
		}
		currentTime += j.Processing
		if currentTime+j.Delivery > cmax {
			cmax = currentTime + j.Delivery
		}
	}
	return cmax
}

// Evaluator считает Cmax для перестановок индексов заданий экземпляра.
// Не потокобезопасен: каждому рабочему потоку нужен свой.
type Evaluator struct {
	inst *Instance
	seen []int
	mark int
}

func NewEvaluator(inst *Instance) (*Evaluator, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return &Evaluator{inst: inst, seen: make([]int, inst.Len())}, nil
}

func (e *Evaluator) Makespan(perm []int) (int, error) {
	if e == nil || e.inst == nil {
		return 0, errors.New("nil evaluator")
	}
	if err := e.check(perm); err != nil {
		return 0, err
	}

	jobs := e.inst.Jobs
	return simulate(len(perm), func(i int) Job { return jobs[perm[i]] }), nil
}

func (e *Evaluator) MustMakespan(perm []int) int {
	ms, err := e.Makespan(perm)
	if err != nil {
		panic(err)
	}
	return ms
}

// check — ValidatePermutation без аллокаций: отметки в seen сравниваются
// с текущим номером вызова.
func (e *Evaluator) check(perm []int) error {
	n := len(e.seen)
	if len(perm) != n {
		return errors.Newf("permutation length must be %d (got %d)", n, len(perm))
	}
	e.mark++
	if e.mark == 0 {
		for i := range e.seen {
			e.seen[i] = 0
		}
		e.mark = 1
	}
	for i, v := range perm {
		if v < 0 || v >= n {
			return errors.Newf("perm[%d]=%d out of range [0,%d)", i, v, n)
		}
		if e.seen[v] == e.mark {
			return errors.Newf("duplicate job index %d in permutation", v)
		}
		e.seen[v] = e.mark
	}
	return nil
}
