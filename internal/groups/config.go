package groups

import "github.com/cockroachdb/errors"

// Key определяет поле, по которому строятся группы равных значений.
type Key string

const (
	KeyRelease  Key = "release"
	KeyDelivery Key = "delivery"
)

type Config struct {
	Key Key

	// Descending — порядок глобальной сортировки перед оптимизацией групп.
	Descending bool
}

func DefaultConfig() Config {
	return Config{Key: KeyRelease}
}

func (c Config) Validate() error {
	switch c.Key {
	case KeyRelease, KeyDelivery:
		// ok
	default:
		return errors.Newf("неизвестный ключ группировки %q", c.Key)
	}
	return nil
}
