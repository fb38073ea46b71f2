package bench

import "math"

type IntStats struct {
	N     int
	Best  int
	Worst int
	Mean  float64
	Std   float64
}

func CalcIntStats(values []int) IntStats {
	fs := make([]float64, len(values))
	for i, v := range values {
		fs[i] = float64(v)
	}
	f := CalcFloatStats(fs)
	s := IntStats{N: f.N, Mean: f.Mean, Std: f.Std}
	if s.N > 0 {
		s.Best = int(f.Best)
		s.Worst = int(f.Worst)
	}
	return s
}

type FloatStats struct {
	N     int
	Best  float64
	Worst float64
	Mean  float64
	Std   float64
}

// CalcFloatStats — минимум, максимум, среднее и выборочное
// стандартное отклонение (n-1).
func CalcFloatStats(values []float64) FloatStats {
	s := FloatStats{N: len(values)}
	if s.N == 0 {
		return s
	}

	best, worst := values[0], values[0]
	sum := 0.0
	for _, v := range values {
		if v < best {
			best = v
		}
		if v > worst {
			worst = v
		}
		sum += v
	}
	mean := sum / float64(s.N)

	variance := 0.0
	if s.N >= 2 {
		for _, v := range values {
			d := v - mean
			variance += d * d
		}
		variance /= float64(s.N - 1)
	}

	s.Best = best
	s.Worst = worst
	s.Mean = mean
	s.Std = math.Sqrt(variance)
	return s
}

// GapPct — превышение cmax над оптимумом в процентах.
func GapPct(cmax, optimum int) float64 {
	if optimum <= 0 {
		return 0
	}
	return 100 * float64(cmax-optimum) / float64(optimum)
}
