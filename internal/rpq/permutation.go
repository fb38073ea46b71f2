package rpq

import "github.com/cockroachdb/errors"

// MaxFactorial — наибольшее n, для которого n! помещается в int64.
const MaxFactorial = 20

func ValidatePermutation(perm []int, n int) error {
	if len(perm) != n {
		return errors.Newf("permutation length must be %d (got %d)", n, len(perm))
	}
	seen := make([]bool, n)
	for i, v := range perm {
		if v < 0 || v >= n {
			return errors.Newf("perm[%d]=%d out of range [0,%d)", i, v, n)
		}
		if seen[v] {
			return errors.Newf("duplicate job index %d in permutation", v)
		}
		seen[v] = true
	}
	return nil
}

// IdentityPermutation генерирует срез [0, 1, ..., n-1].
func IdentityPermutation(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return p
}

// NextPermutation переставляет p в лексикографически следующую перестановку.
// Возвращает false, если p была последней; в этом случае p остаётся
// отсортированной по возрастанию.
func NextPermutation(p []int) bool {
	i := len(p) - 2
	for i >= 0 && p[i] >= p[i+1] {
		i--
	}
	if i < 0 {
		reverse(p)
		return false
	}
	j := len(p) - 1
	for p[j] <= p[i] {
		j--
	}
	p[i], p[j] = p[j], p[i]
	reverse(p[i+1:])
	return true
}

func reverse(p []int) {
	for a, b := 0, len(p)-1; a < b; a, b = a+1, b-1 {
		p[a], p[b] = p[b], p[a]
	}
}

func Factorial(n int) (int64, error) {
	if n < 0 {
		return 0, errors.Newf("factorial of negative number %d", n)
	}
	if n > MaxFactorial {
		return 0, errors.Newf("%d! overflows int64 (max n=%d)", n, MaxFactorial)
	}
	f := int64(1)
	for i := 2; i <= n; i++ {
		f *= int64(i)
	}
	return f, nil
}

// UnrankPermutation возвращает перестановку [0..n) с номером rank
// в лексикографическом порядке (факториальная система счисления).
func UnrankPermutation(rank int64, n int) ([]int, error) {
	total, err := Factorial(n)
	if err != nil {
		return nil, err
	}
	if rank < 0 || rank >= total {
		return nil, errors.Newf("rank %d out of range [0,%d)", rank, total)
	}

	pool := IdentityPermutation(n)
	out := make([]int, 0, n)
	for k := n; k > 0; k-- {
		total /= int64(k)
		pos := int(rank / total)
		rank %= total
		out = append(out, pool[pos])
		pool = append(pool[:pos], pool[pos+1:]...)
	}
	return out, nil
}
