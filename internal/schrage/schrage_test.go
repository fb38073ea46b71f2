package schrage_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rpq/internal/exact"
	"rpq/internal/rpq"
	"rpq/internal/schrage"
)

func ids(seq []rpq.Job) []int {
	out := make([]int, len(seq))
	for i, j := range seq {
		out[i] = j.ID
	}
	return out
}

func TestSchrage_ThreeJobs(t *testing.T) {
	inst, err := rpq.FromTriples([][3]int{
		{0, 3, 5},
		{1, 2, 6},
		{3, 1, 1},
	})
	require.NoError(t, err)

	// t=0: готово только задание 1 (задание 2 появляется в t=1);
	// t=3: готовы 2 и 3, берётся 2 (q=6); Cmax = max(3+5, 5+6, 6+1) = 11.
	for name, run := range map[string]func([]rpq.Job) ([]rpq.Job, int){
		"list": schrage.List,
		"heap": schrage.Heap,
	} {
		t.Run(name, func(t *testing.T) {
			order, cmax := run(inst.Jobs)
			assert.Equal(t, 11, cmax)
			assert.Equal(t, []int{1, 2, 3}, ids(order))
			assert.Equal(t, cmax, rpq.Cmax(order))
		})
	}

	t.Run("should match the exhaustive optimum", func(t *testing.T) {
		res, err := exact.Sequential(context.Background(), inst)
		require.NoError(t, err)
		assert.Equal(t, 11, res.Makespan)
	})
}

func TestSchrage_SingleJob(t *testing.T) {
	jobs := []rpq.Job{{ID: 1, Release: 4, Processing: 3, Delivery: 2}}

	_, cmax := schrage.List(jobs)
	assert.Equal(t, 9, cmax)
	_, cmax = schrage.Heap(jobs)
	assert.Equal(t, 9, cmax)
}

func TestSchrage_ClockJump(t *testing.T) {
	jobs := []rpq.Job{
		{ID: 1, Release: 5, Processing: 2, Delivery: 1},
		{ID: 2, Release: 20, Processing: 1, Delivery: 4},
	}

	order, cmax := schrage.List(jobs)
	assert.Equal(t, []int{1, 2}, ids(order))
	assert.Equal(t, 25, cmax)

	order, cmax = schrage.Heap(jobs)
	assert.Equal(t, []int{1, 2}, ids(order))
	assert.Equal(t, 25, cmax)
}

func TestSchrage_TieOnDeliveryKeepsArrivalOrder(t *testing.T) {
	// Все готовы в t=0 с равным q: выбирается первое найденное.
	jobs := []rpq.Job{
		{ID: 1, Release: 0, Processing: 10, Delivery: 5},
		{ID: 2, Release: 0, Processing: 1, Delivery: 5},
		{ID: 3, Release: 1, Processing: 2, Delivery: 100},
	}

	orderList, cmaxList := schrage.List(jobs)
	orderHeap, cmaxHeap := schrage.Heap(jobs)

	assert.Equal(t, []int{1, 3, 2}, ids(orderList))
	assert.Equal(t, ids(orderList), ids(orderHeap))
	assert.Equal(t, cmaxList, cmaxHeap)
	assert.Equal(t, 112, cmaxList)
}

func TestSchrage_ListAndHeapAgree(t *testing.T) {
	rng := rand.New(rand.NewSource(2024))
	for i := 0; i < 300; i++ {
		n := 1 + rng.Intn(40)
		b := rpq.DefaultBounds(n)
		// Узкие диапазоны дают много равных r и q.
		if i%2 == 0 {
			b.MaxRelease = 5
			b.MaxDelivery = 5
		}
		inst := rpq.RandomInstance(n, b, rng)

		orderList, cmaxList := schrage.List(inst.Jobs)
		orderHeap, cmaxHeap := schrage.Heap(inst.Jobs)

		require.Equal(t, cmaxList, cmaxHeap, "instance %d", i)
		require.Equal(t, ids(orderList), ids(orderHeap), "instance %d", i)
		require.Equal(t, cmaxList, rpq.Cmax(orderList), "instance %d", i)
		require.Len(t, orderList, n)
	}
}

func TestSchrage_NeverBelowOptimum(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 40; i++ {
		n := 1 + rng.Intn(6)
		inst := rpq.RandomInstance(n, rpq.DefaultBounds(n), rng)

		best, err := exact.Sequential(context.Background(), inst)
		require.NoError(t, err)

		_, cmax := schrage.Heap(inst.Jobs)
		assert.GreaterOrEqual(t, cmax, best.Makespan)
	}
}

func TestSolver(t *testing.T) {
	inst, err := rpq.FromTriples([][3]int{{0, 3, 5}, {1, 2, 6}, {3, 1, 1}})
	require.NoError(t, err)
	before := inst.Clone()

	for _, v := range []schrage.Variant{schrage.VariantList, schrage.VariantHeap} {
		s, err := schrage.New(schrage.Config{Variant: v})
		require.NoError(t, err)

		res, err := s.Solve(context.Background(), inst)
		require.NoError(t, err)
		assert.Equal(t, 11, res.Makespan)
		assert.Equal(t, []int{1, 2, 3}, res.IDs())
		assert.Equal(t, string(v), res.Meta["variant"])
	}
	assert.Equal(t, before, inst.Jobs, "solver must not mutate the instance")

	t.Run("should reject unknown variant", func(t *testing.T) {
		_, err := schrage.New(schrage.Config{Variant: "tree"})
		assert.Error(t, err)
	})

	t.Run("should reject an empty instance", func(t *testing.T) {
		s, err := schrage.New(schrage.DefaultConfig())
		require.NoError(t, err)
		_, err = s.Solve(context.Background(), &rpq.Instance{})
		assert.ErrorIs(t, err, rpq.ErrEmptyInstance)
	})
}
