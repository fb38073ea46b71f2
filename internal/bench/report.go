package bench

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
)

var csvHeader = []string{
	"run_id", "algo", "jobs", "runs",
	"time_best_ms", "time_mean_ms", "time_std_ms",
	"cmax_best", "cmax_worst", "cmax_mean", "cmax_std",
	"exact", "gap_mean_pct", "gap_max_pct", "optimal",
}

func WriteCSV(path string, records []Record) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "create %s", dir)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer f.Close()

	if err := EncodeCSV(f, records); err != nil {
		return err
	}
	return f.Close()
}

func EncodeCSV(out io.Writer, records []Record) error {
	w := csv.NewWriter(out)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range records {
		if err := w.Write(row(r)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func row(r Record) []string {
	return []string{
		r.RunID,
		r.Algo,
		strconv.Itoa(r.Jobs),
		strconv.Itoa(r.Runs),

		ftoa(r.TimeBestMs),
		ftoa(r.TimeMeanMs),
		ftoa(r.TimeStdMs),

		strconv.Itoa(r.CmaxBest),
		strconv.Itoa(r.CmaxWorst),
		ftoa(r.CmaxMean),
		ftoa(r.CmaxStd),

		strconv.FormatBool(r.Exact),
		ftoa(r.GapMeanPct),
		ftoa(r.GapMaxPct),
		strconv.Itoa(r.Optimal),
	}
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

// Render выводит сводную таблицу в терминал.
func Render(out io.Writer, records []Record) error {
	data := pterm.TableData{
		{"Algo", "Jobs", "Runs", "Cmax best", "Cmax mean", "Gap mean %", "Gap max %", "Optimal", "Time mean ms"},
	}
	for _, r := range records {
		gapMean, gapMax, optimal := "-", "-", "-"
		if r.Exact {
			gapMean = strconv.FormatFloat(r.GapMeanPct, 'f', 2, 64)
			gapMax = strconv.FormatFloat(r.GapMaxPct, 'f', 2, 64)
			optimal = strconv.Itoa(r.Optimal) + "/" + strconv.Itoa(r.Runs)
		}
		data = append(data, []string{
			r.Algo,
			strconv.Itoa(r.Jobs),
			strconv.Itoa(r.Runs),
			strconv.Itoa(r.CmaxBest),
			strconv.FormatFloat(r.CmaxMean, 'f', 2, 64),
			gapMean,
			gapMax,
			optimal,
			strconv.FormatFloat(r.TimeMeanMs, 'f', 3, 64),
		})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Srender()
	if err != nil {
		return errors.Wrap(err, "render table")
	}
	_, err = io.WriteString(out, table+"\n")
	return err
}
