package commands

import (
	"runtime"
	"strings"

	"github.com/cockroachdb/errors"

	"rpq/internal/bench"
	"rpq/internal/config"
	"rpq/internal/exact"
	"rpq/internal/groups"
	"rpq/internal/heuristic"
	"rpq/internal/opt"
	"rpq/internal/schrage"
)

// NewOptimizer создаёт солвер по имени алгоритма.
func NewOptimizer(name string, cfg *config.Config) (opt.Optimizer, error) {
	switch name {
	case "schrage", "schrage-heap":
		variant := schrage.VariantList
		if name == "schrage-heap" {
			variant = schrage.VariantHeap
		}
		s, err := schrage.New(schrage.Config{Variant: variant})
		if err != nil {
			return nil, err
		}
		return s, nil

	case "exact", "exact-parallel":
		workers := 0
		if name == "exact-parallel" {
			workers = cfg.Workers
			if workers == 0 {
				workers = runtime.NumCPU()
			}
		}
		s, err := exact.New(exact.Config{Workers: workers, MaxJobs: cfg.MaxJobs})
		if err != nil {
			return nil, err
		}
		return s, nil

	case "groups":
		s, err := groups.New(groups.Config{
			Key:        groups.Key(cfg.Group.Key),
			Descending: cfg.Group.Descending,
		})
		if err != nil {
			return nil, err
		}
		return s, nil

	case "heuristic":
		return heuristic.New(), nil
	}
	return nil, errors.Newf("unknown algorithm %q", name)
}

func algorithms(names []string, cfg *config.Config) ([]bench.Algorithm, error) {
	out := make([]bench.Algorithm, 0, len(names))
	for _, name := range names {
		if _, err := NewOptimizer(name, cfg); err != nil {
			return nil, err
		}
		a := bench.Algorithm{
			Name: name,
			Factory: func() (opt.Optimizer, error) {
				return NewOptimizer(name, cfg)
			},
		}
		if strings.HasPrefix(name, "exact") {
			a.MaxJobs = cfg.MaxJobs
		}
		out = append(out, a)
	}
	return out, nil
}
