package exact

import (
	"runtime"

	"github.com/cockroachdb/errors"

	"rpq/internal/rpq"
)

type Config struct {
	// Workers — число рабочих горутин; 0 означает последовательный перебор.
	Workers int

	// MaxJobs — ограничение на размер экземпляра: перебор n! перестановок.
	MaxJobs int
}

func DefaultConfig() Config {
	return Config{
		Workers: runtime.NumCPU(),
		MaxJobs: 10,
	}
}

func (c Config) Validate() error {
	if c.Workers < 0 {
		return errors.Newf("Workers должно быть >= 0 (получено %d)", c.Workers)
	}
	if c.MaxJobs <= 0 || c.MaxJobs > rpq.MaxFactorial {
		return errors.Newf("MaxJobs должно быть в диапазоне [1,%d] (получено %d)", rpq.MaxFactorial, c.MaxJobs)
	}
	return nil
}
