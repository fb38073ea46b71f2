package schrage

import "github.com/cockroachdb/errors"

// Variant определяет структуру данных для множества готовых заданий.
type Variant string

const (
	VariantList Variant = "list"
	VariantHeap Variant = "heap"
)

type Config struct {
	Variant Variant
}

func DefaultConfig() Config {
	return Config{Variant: VariantHeap}
}

func (c Config) Validate() error {
	switch c.Variant {
	case VariantList, VariantHeap:
		// ok
	default:
		return errors.Newf("неизвестный вариант алгоритма Шраге %q", c.Variant)
	}
	return nil
}
