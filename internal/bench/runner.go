package bench

import (
	"context"
	"math/rand"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"rpq/internal/exact"
	"rpq/internal/opt"
	"rpq/internal/rpq"
)

type Algorithm struct {
	Name    string
	Factory func() (opt.Optimizer, error)
	// MaxJobs > 0 — алгоритм не запускается на случаях с большим n.
	MaxJobs int
}

type Case struct {
	Jobs         int
	InstanceSeed int64
}

type Record struct {
	RunID string
	Algo  string
	Jobs  int
	Runs  int

	TimeBestMs float64
	TimeMeanMs float64
	TimeStdMs  float64

	CmaxBest  int
	CmaxWorst int
	CmaxMean  float64
	CmaxStd   float64

	// Отклонение от оптимума в процентах; Exact == false, если оптимум
	// не считался (n больше ExactLimit).
	Exact      bool
	GapMeanPct float64
	GapMaxPct  float64
	Optimal    int
}

// Runner — прогон алгоритмов на случайных экземплярах.
// В каждом запуске используется свой экземпляр, сгенерированный из
// InstanceSeed случая и номера запуска.
type Runner struct {
	Runs          int
	PerRunTimeout time.Duration // 0 = без таймаута
	// ExactLimit — наибольшее n, для которого считается точный оптимум.
	ExactLimit int
	Workers    int
	Logger     *zap.SugaredLogger
}

func (r Runner) logger() *zap.SugaredLogger {
	if r.Logger == nil {
		return zap.NewNop().Sugar()
	}
	return r.Logger
}

// Instances детерминированно генерирует экземпляры случая.
func (r Runner) Instances(c Case) []*rpq.Instance {
	out := make([]*rpq.Instance, r.Runs)
	for i := range out {
		out[i] = rpq.RandomInstance(c.Jobs, rpq.DefaultBounds(c.Jobs), rand.New(rand.NewSource(c.InstanceSeed+int64(i))))
	}
	return out
}

// Optima считает точный оптимум для каждого экземпляра или возвращает nil,
// если экземпляры слишком велики для полного перебора.
func (r Runner) Optima(ctx context.Context, insts []*rpq.Instance) ([]int, error) {
	if len(insts) == 0 || insts[0].Len() > r.ExactLimit {
		return nil, nil
	}
	workers := r.Workers
	if workers <= 0 {
		workers = 1
	}
	out := make([]int, len(insts))
	for i, inst := range insts {
		res, err := exact.Parallel(ctx, inst, workers)
		if err != nil {
			return nil, errors.Wrapf(err, "optimum for instance %d", i)
		}
		out[i] = res.Makespan
	}
	return out, nil
}

// Run прогоняет все алгоритмы на всех случаях.
func (r Runner) Run(ctx context.Context, cases []Case, algos []Algorithm) ([]Record, error) {
	var records []Record
	for _, c := range cases {
		insts := r.Instances(c)
		optima, err := r.Optima(ctx, insts)
		if err != nil {
			return nil, err
		}
		for _, a := range algos {
			if a.MaxJobs > 0 && c.Jobs > a.MaxJobs {
				r.logger().Warnw("benchmark skipped: too many jobs",
					"algo", a.Name, "jobs", c.Jobs, "max_jobs", a.MaxJobs)
				continue
			}
			r.logger().Infow("benchmark started",
				"algo", a.Name, "jobs", c.Jobs, "runs", r.Runs)

			rec, err := r.RunCase(ctx, c, a, insts, optima)
			if err != nil {
				return nil, errors.Wrapf(err, "%s on %d jobs", a.Name, c.Jobs)
			}
			records = append(records, rec)

			r.logger().Infow("benchmark finished",
				"algo", a.Name,
				"jobs", c.Jobs,
				"cmax_best", rec.CmaxBest,
				"cmax_mean", rec.CmaxMean,
				"gap_mean_pct", rec.GapMeanPct,
				"time_mean_ms", rec.TimeMeanMs,
			)
		}
	}
	return records, nil
}

func (r Runner) RunCase(ctx context.Context, c Case, algo Algorithm, insts []*rpq.Instance, optima []int) (Record, error) {
	if len(insts) == 0 {
		return Record{}, errors.New("no instances")
	}
	if optima != nil && len(optima) != len(insts) {
		return Record{}, errors.Newf("optima length %d does not match %d instances", len(optima), len(insts))
	}

	cmaxes := make([]int, 0, len(insts))
	timesMs := make([]float64, 0, len(insts))
	gaps := make([]float64, 0, len(insts))
	optimal := 0

	for i, inst := range insts {
		op, err := algo.Factory()
		if err != nil {
			return Record{}, errors.Wrap(err, "factory")
		}

		runCtx := ctx
		cancel := func() {}
		if r.PerRunTimeout > 0 {
			runCtx, cancel = context.WithTimeout(ctx, r.PerRunTimeout)
		}
		start := time.Now()
		res, err := op.Solve(runCtx, inst)
		dur := time.Since(start)
		cancel()

		if err != nil && runCtx.Err() != nil {
			return Record{}, errors.Wrapf(err, "run %d: cancelled/timeout", i)
		}
		if err != nil {
			return Record{}, errors.Wrapf(err, "run %d: solve error", i)
		}
		if err := checkResult(inst, res); err != nil {
			return Record{}, errors.Wrapf(err, "run %d", i)
		}

		cmaxes = append(cmaxes, res.Makespan)
		timesMs = append(timesMs, float64(dur.Microseconds())/1000.0)
		if optima != nil {
			gaps = append(gaps, GapPct(res.Makespan, optima[i]))
			if res.Makespan == optima[i] {
				optimal++
			}
		}
	}

	cs := CalcIntStats(cmaxes)
	ts := CalcFloatStats(timesMs)
	gs := CalcFloatStats(gaps)

	return Record{
		RunID: uuid.NewString(),
		Algo:  algo.Name,
		Jobs:  c.Jobs,
		Runs:  len(insts),

		TimeBestMs: ts.Best,
		TimeMeanMs: ts.Mean,
		TimeStdMs:  ts.Std,

		CmaxBest:  cs.Best,
		CmaxWorst: cs.Worst,
		CmaxMean:  cs.Mean,
		CmaxStd:   cs.Std,

		Exact:      optima != nil,
		GapMeanPct: gs.Mean,
		GapMaxPct:  gs.Worst,
		Optimal:    optimal,
	}, nil
}

// checkResult — результат должен быть перестановкой заданий экземпляра,
// а заявленный Cmax — совпадать с пересчитанным.
func checkResult(inst *rpq.Instance, res opt.Result) error {
	if len(res.Order) != inst.Len() {
		return errors.Newf("invalid order length %d (want %d)", len(res.Order), inst.Len())
	}
	seen := make(map[int]bool, inst.Len())
	for _, j := range res.Order {
		if seen[j.ID] {
			return errors.Newf("job %d scheduled twice", j.ID)
		}
		seen[j.ID] = true
	}
	if got := rpq.Cmax(res.Order); got != res.Makespan {
		return errors.Newf("reported cmax %d, order evaluates to %d", res.Makespan, got)
	}
	return nil
}
