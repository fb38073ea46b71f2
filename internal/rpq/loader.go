package rpq

import (
	"bufio"
	"io"
	"os"
	"strconv"

	"github.com/cockroachdb/errors"
)

const maxPrealloc = 1 << 16

var (
	ErrLoad           = errors.New("cannot load instance")
	ErrMalformedInput = errors.New("malformed instance data")
)

// Load читает экземпляр из файла формата:
//
//	n
//	r1 p1 q1
//	...
//	rn pn qn
func Load(path string) (*Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithHint(
			errors.Wrapf(errors.Mark(err, ErrLoad), "open %s", path),
			"check the input path (flag --input or RPQ_INPUT)",
		)
	}
	defer f.Close()

	inst, err := Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return inst, nil
}

func Parse(r io.Reader) (*Instance, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	tok := 0

	next := func(what string) (int, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return 0, errors.Mark(errors.Wrap(err, "read"), ErrLoad)
			}
			return 0, errors.Wrapf(ErrMalformedInput, "token %d: unexpected end of input, want %s", tok, what)
		}
		v, err := strconv.Atoi(sc.Text())
		if err != nil {
			return 0, errors.Wrapf(ErrMalformedInput, "token %d: %s is not an integer: %q", tok, what, sc.Text())
		}
		tok++
		return v, nil
	}

	n, err := next("job count")
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, errors.Wrapf(ErrEmptyInstance, "job count must be > 0 (got %d)", n)
	}

	// n не доверяем: память растёт по мере чтения троек, короткий файл
	// завершается ошибкой "unexpected end of input".
	jobs := make([]Job, 0, min(n, maxPrealloc))
	for i := 0; i < n; i++ {
		j := Job{ID: i + 1}
		if j.Release, err = next("release"); err != nil {
			return nil, err
		}
		if j.Processing, err = next("processing"); err != nil {
			return nil, err
		}
		if j.Delivery, err = next("delivery"); err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	if sc.Scan() {
		return nil, errors.Wrapf(ErrMalformedInput, "token %d: trailing data %q after %d jobs", tok, sc.Text(), n)
	}

	return NewInstance(jobs)
}

func Write(w io.Writer, inst *Instance) error {
	if err := inst.Validate(); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	bw.WriteString(strconv.Itoa(inst.Len()))
	bw.WriteByte('\n')
	for _, j := range inst.Jobs {
		bw.WriteString(strconv.Itoa(j.Release))
		bw.WriteByte(' ')
		bw.WriteString(strconv.Itoa(j.Processing))
		bw.WriteByte(' ')
		bw.WriteString(strconv.Itoa(j.Delivery))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
