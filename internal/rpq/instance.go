package rpq

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/cockroachdb/errors"
)

var (
	ErrEmptyInstance = errors.New("instance has no jobs")
	ErrInvalidJob    = errors.New("invalid job")
)

// Job — задание для одной машины: r (момент готовности), p (время
// выполнения), q (время доставки после завершения).
type Job struct {
	ID         int
	Release    int
	Processing int
	Delivery   int
}

func (j Job) String() string {
	return fmt.Sprintf("Task %d: rj=%d, pj=%d, qj=%d", j.ID, j.Release, j.Processing, j.Delivery)
}

// Instance — набор заданий в порядке возрастания ID.
// Позиция задания в Jobs используется как индекс в перестановках.
type Instance struct {
	Jobs []Job
}

func NewInstance(jobs []Job) (*Instance, error) {
	cp := make([]Job, len(jobs))
	copy(cp, jobs)
	sort.SliceStable(cp, func(a, b int) bool { return cp[a].ID < cp[b].ID })

	inst := &Instance{Jobs: cp}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

// FromTriples строит экземпляр из троек (r, p, q), ID назначаются 1..n.
func FromTriples(rows [][3]int) (*Instance, error) {
	jobs := make([]Job, len(rows))
	for i, row := range rows {
		jobs[i] = Job{ID: i + 1, Release: row[0], Processing: row[1], Delivery: row[2]}
	}
	return NewInstance(jobs)
}

func (inst *Instance) Validate() error {
	if inst == nil {
		return errors.New("instance is nil")
	}
	if len(inst.Jobs) == 0 {
		return ErrEmptyInstance
	}
	seen := make(map[int]struct{}, len(inst.Jobs))
	for i, j := range inst.Jobs {
		if err := ValidateJob(j); err != nil {
			return errors.Wrapf(err, "jobs[%d]", i)
		}
		if _, dup := seen[j.ID]; dup {
			return errors.Wrapf(ErrInvalidJob, "duplicate job id %d", j.ID)
		}
		seen[j.ID] = struct{}{}
	}
	return nil
}

// ValidateJob проверяет предусловия для одного задания.
func ValidateJob(j Job) error {
	if j.ID <= 0 {
		return errors.Wrapf(ErrInvalidJob, "id must be > 0 (got %d)", j.ID)
	}
	if j.Release < 0 {
		return errors.Wrapf(ErrInvalidJob, "job %d: release must be >= 0 (got %d)", j.ID, j.Release)
	}
	if j.Processing <= 0 {
		return errors.Wrapf(ErrInvalidJob, "job %d: processing must be > 0 (got %d)", j.ID, j.Processing)
	}
	if j.Delivery < 0 {
		return errors.Wrapf(ErrInvalidJob, "job %d: delivery must be >= 0 (got %d)", j.ID, j.Delivery)
	}
	return nil
}

// ValidateSequence проверяет последовательность, переданную солверу напрямую.
func ValidateSequence(seq []Job) error {
	if len(seq) == 0 {
		return ErrEmptyInstance
	}
	for _, j := range seq {
		if err := ValidateJob(j); err != nil {
			return err
		}
	}
	return nil
}

func (inst *Instance) Len() int { return len(inst.Jobs) }

// Clone возвращает копию последовательности заданий.
func (inst *Instance) Clone() []Job {
	out := make([]Job, len(inst.Jobs))
	copy(out, inst.Jobs)
	return out
}

// Order раскладывает перестановку индексов в последовательность заданий.
func (inst *Instance) Order(perm []int) []Job {
	out := make([]Job, len(perm))
	for i, idx := range perm {
		out[i] = inst.Jobs[idx]
	}
	return out
}

// Bounds — диапазоны значений для генератора случайных экземпляров.
type Bounds struct {
	MinRelease, MaxRelease       int
	MinProcessing, MaxProcessing int
	MinDelivery, MaxDelivery     int
}

func DefaultBounds(n int) Bounds {
	return Bounds{
		MinRelease: 0, MaxRelease: 10 * n,
		MinProcessing: 1, MaxProcessing: 30,
		MinDelivery: 0, MaxDelivery: 10 * n,
	}
}

func (b Bounds) Validate() error {
	if b.MinRelease < 0 || b.MaxRelease < b.MinRelease {
		return errors.Newf("invalid release bounds [%d,%d]", b.MinRelease, b.MaxRelease)
	}
	if b.MinProcessing <= 0 || b.MaxProcessing < b.MinProcessing {
		return errors.Newf("invalid processing bounds [%d,%d]", b.MinProcessing, b.MaxProcessing)
	}
	if b.MinDelivery < 0 || b.MaxDelivery < b.MinDelivery {
		return errors.Newf("invalid delivery bounds [%d,%d]", b.MinDelivery, b.MaxDelivery)
	}
	return nil
}

func RandomInstance(n int, b Bounds, rng *rand.Rand) *Instance {
	if rng == nil {
		panic("генератор случайных чисел не инициализирован (nil)")
	}
	if n <= 0 {
		panic("jobs must be > 0")
	}
	if err := b.Validate(); err != nil {
		panic(err)
	}
	jobs := make([]Job, n)
	for i := range jobs {
		jobs[i] = Job{
			ID:         i + 1,
			Release:    between(rng, b.MinRelease, b.MaxRelease),
			Processing: between(rng, b.MinProcessing, b.MaxProcessing),
			Delivery:   between(rng, b.MinDelivery, b.MaxDelivery),
		}
	}
	inst, err := NewInstance(jobs)
	if err != nil {
		panic(err)
	}
	return inst
}

func between(rng *rand.Rand, lo, hi int) int {
	span := hi - lo + 1
	if span <= 1 {
		return lo
	}
	return lo + rng.Intn(span)
}
