package bench_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rpq/internal/bench"
	"rpq/internal/heuristic"
	"rpq/internal/opt"
	"rpq/internal/rpq"
	"rpq/internal/schrage"
)

func schrageAlgo() bench.Algorithm {
	return bench.Algorithm{
		Name: "schrage",
		Factory: func() (opt.Optimizer, error) {
			return schrage.New(schrage.Config{Variant: schrage.VariantList})
		},
	}
}

func heuristicAlgo() bench.Algorithm {
	return bench.Algorithm{
		Name:    "heuristic",
		Factory: func() (opt.Optimizer, error) { return heuristic.New(), nil },
	}
}

// brokenOptimizer заявляет Cmax, не совпадающий с порядком.
type brokenOptimizer struct{}

func (brokenOptimizer) Solve(_ context.Context, inst *rpq.Instance) (opt.Result, error) {
	return opt.Result{Order: inst.Clone(), Makespan: -1}, nil
}

func TestCalcStats(t *testing.T) {
	s := bench.CalcIntStats([]int{4, 2, 6})
	assert.Equal(t, 3, s.N)
	assert.Equal(t, 2, s.Best)
	assert.Equal(t, 6, s.Worst)
	assert.InDelta(t, 4.0, s.Mean, 1e-9)
	assert.InDelta(t, 2.0, s.Std, 1e-9)

	empty := bench.CalcFloatStats(nil)
	assert.Equal(t, 0, empty.N)
	assert.Zero(t, empty.Mean)

	one := bench.CalcFloatStats([]float64{1.5})
	assert.Zero(t, one.Std)
}

func TestGapPct(t *testing.T) {
	assert.InDelta(t, 10.0, bench.GapPct(110, 100), 1e-9)
	assert.Zero(t, bench.GapPct(100, 100))
	assert.Zero(t, bench.GapPct(5, 0))
}

func TestRunner_Run(t *testing.T) {
	r := bench.Runner{Runs: 4, ExactLimit: 6, Workers: 2}
	cases := []bench.Case{
		{Jobs: 5, InstanceSeed: 1},
		{Jobs: 12, InstanceSeed: 2},
	}

	records, err := r.Run(context.Background(), cases, []bench.Algorithm{schrageAlgo(), heuristicAlgo()})
	require.NoError(t, err)
	require.Len(t, records, 4)

	small := records[0]
	assert.Equal(t, "schrage", small.Algo)
	assert.Equal(t, 5, small.Jobs)
	assert.Equal(t, 4, small.Runs)
	assert.True(t, small.Exact)
	assert.GreaterOrEqual(t, small.GapMeanPct, 0.0)
	assert.LessOrEqual(t, small.Optimal, 4)
	assert.NotEmpty(t, small.RunID)
	assert.LessOrEqual(t, small.CmaxBest, small.CmaxWorst)

	large := records[2]
	assert.Equal(t, 12, large.Jobs)
	assert.False(t, large.Exact, "optimum is not computed above ExactLimit")
	assert.NotEqual(t, small.RunID, large.RunID)
}

func TestRunner_SkipsAlgorithmAboveMaxJobs(t *testing.T) {
	r := bench.Runner{Runs: 2, ExactLimit: 5, Workers: 2}
	limited := heuristicAlgo()
	limited.MaxJobs = 5

	records, err := r.Run(context.Background(),
		[]bench.Case{{Jobs: 4, InstanceSeed: 1}, {Jobs: 12, InstanceSeed: 2}},
		[]bench.Algorithm{schrageAlgo(), limited},
	)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "heuristic", records[1].Algo)
	assert.Equal(t, 4, records[1].Jobs)
	assert.Equal(t, "schrage", records[2].Algo)
	assert.Equal(t, 12, records[2].Jobs)
}

func TestRunner_InstancesAreDeterministic(t *testing.T) {
	r := bench.Runner{Runs: 3}
	a := r.Instances(bench.Case{Jobs: 7, InstanceSeed: 99})
	b := r.Instances(bench.Case{Jobs: 7, InstanceSeed: 99})
	require.Len(t, a, 3)
	for i := range a {
		assert.Equal(t, a[i].Jobs, b[i].Jobs)
	}
	assert.NotEqual(t, a[0].Jobs, a[1].Jobs)
}

func TestRunner_RejectsInconsistentResult(t *testing.T) {
	r := bench.Runner{Runs: 1}
	c := bench.Case{Jobs: 3, InstanceSeed: 1}
	algo := bench.Algorithm{
		Name:    "broken",
		Factory: func() (opt.Optimizer, error) { return brokenOptimizer{}, nil },
	}

	_, err := r.RunCase(context.Background(), c, algo, r.Instances(c), nil)
	assert.Error(t, err)
}

func TestWriteCSV(t *testing.T) {
	records := []bench.Record{
		{RunID: "a", Algo: "schrage", Jobs: 5, Runs: 2, CmaxBest: 40, CmaxWorst: 44, CmaxMean: 42, Exact: true, GapMeanPct: 1.5, Optimal: 1},
		{RunID: "b", Algo: "heuristic", Jobs: 5, Runs: 2, CmaxBest: 41, CmaxWorst: 50, CmaxMean: 45.5},
	}
	path := filepath.Join(t.TempDir(), "nested", "results.csv")
	require.NoError(t, bench.WriteCSV(path, records))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "run_id", rows[0][0])
	assert.Equal(t, []string{"a", "schrage", "5", "2"}, rows[1][:4])
	assert.Equal(t, "true", rows[1][11])
	assert.Equal(t, "1.500", rows[1][12])
	assert.Equal(t, "45.500", rows[2][9])
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	err := bench.Render(&buf, []bench.Record{
		{Algo: "schrage", Jobs: 5, Runs: 2, CmaxBest: 40, Exact: true, Optimal: 2},
		{Algo: "heuristic", Jobs: 30, Runs: 2, CmaxBest: 90},
	})
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "schrage")
	assert.Contains(t, out, "2/2")
	assert.Contains(t, out, "heuristic")
}
