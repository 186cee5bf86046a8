package workload

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/registrar-sim/registrar-sim/sim"
)

var (
	// ErrTruncatedBatch means the input ended inside an arrival batch.
	ErrTruncatedBatch = errors.New("input ended inside an arrival batch")
	// ErrOutOfOrder means an arrival batch precedes an earlier one in time.
	ErrOutOfOrder = errors.New("arrival ticks are not in non-decreasing order")
	// ErrNegativeValue means a count, tick or service amount was negative.
	ErrNegativeValue = errors.New("negative value")
	// ErrTickOverflow means the schedule could keep a window busy past the
	// largest representable tick.
	ErrTickOverflow = errors.New("schedule exceeds the representable tick range")
)

// maxPrealloc bounds the amounts slice capacity taken from a batch size.
const maxPrealloc = 1024

// Batch is a group of students arriving at the same tick.
type Batch struct {
	ArrivalTick int64   `yaml:"arrival_tick"`
	Amounts     []int64 `yaml:"amounts"` // service amount of each student, in queue order
}

// Schedule is a time-ordered arrival schedule plus the window count it was
// written for.
type Schedule struct {
	NumWindows int
	Batches    []Batch
}

// LoadSchedule reads a text schedule from path. See ParseSchedule for the format.
func LoadSchedule(path string) (*Schedule, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening schedule %s: %w", path, err)
	}
	defer file.Close() //nolint:errcheck // read-only file

	s, err := ParseSchedule(file)
	if err != nil {
		return nil, fmt.Errorf("schedule %s: %w", path, err)
	}
	logrus.Debugf("Loaded schedule %s: %d windows, %d batches, %d students",
		path, s.NumWindows, len(s.Batches), s.NumStudents())
	return s, nil
}

// ParseSchedule reads whitespace-separated integers: the window count, then
// repeated groups of {arrival tick, batch size, batch size service amounts}
// until end of input.
func ParseSchedule(r io.Reader) (*Schedule, error) {
	tokens := newTokenReader(r)

	numWindows, ok, err := tokens.next()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("missing window count")
	}
	if numWindows < 0 {
		return nil, fmt.Errorf("window count %d: %w", numWindows, ErrNegativeValue)
	}

	s := &Schedule{NumWindows: int(numWindows)}
	for {
		arrival, ok, err := tokens.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		size, ok, err := tokens.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("batch at tick %d has no size: %w", arrival, ErrTruncatedBatch)
		}
		if size < 0 {
			return nil, fmt.Errorf("batch at tick %d has size %d: %w", arrival, size, ErrNegativeValue)
		}

		// size is untrusted; grow the slice as amounts are actually read.
		batch := Batch{ArrivalTick: arrival, Amounts: make([]int64, 0, min(size, maxPrealloc))}
		for i := int64(0); i < size; i++ {
			amount, ok, err := tokens.next()
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, fmt.Errorf("batch at tick %d: got %d of %d amounts: %w", arrival, i, size, ErrTruncatedBatch)
			}
			batch.Amounts = append(batch.Amounts, amount)
		}
		s.Batches = append(s.Batches, batch)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks that ticks and amounts are non-negative, that batches are
// ordered by non-decreasing arrival tick, and that the last arrival plus the
// total service time stays below math.MaxInt64. No window can be busy past
// that horizon, so the simulation clock cannot overflow.
func (s *Schedule) Validate() error {
	if s.NumWindows < 0 {
		return fmt.Errorf("window count %d: %w", s.NumWindows, ErrNegativeValue)
	}
	prev := int64(0)
	total := int64(0)
	for i, b := range s.Batches {
		if b.ArrivalTick < 0 {
			return fmt.Errorf("batch %d arrival tick %d: %w", i, b.ArrivalTick, ErrNegativeValue)
		}
		if b.ArrivalTick < prev {
			return fmt.Errorf("batch %d at tick %d follows tick %d: %w", i, b.ArrivalTick, prev, ErrOutOfOrder)
		}
		prev = b.ArrivalTick
		for j, a := range b.Amounts {
			if a < 0 {
				return fmt.Errorf("batch %d student %d amount %d: %w", i, j, a, ErrNegativeValue)
			}
			if a > math.MaxInt64-total {
				return fmt.Errorf("batch %d student %d amount %d: %w", i, j, a, ErrTickOverflow)
			}
			total += a
		}
		if b.ArrivalTick >= math.MaxInt64-total {
			return fmt.Errorf("batch %d at tick %d with %d ticks of service: %w", i, b.ArrivalTick, total, ErrTickOverflow)
		}
	}
	return nil
}

// NumStudents returns the total number of students across all batches.
func (s *Schedule) NumStudents() int {
	n := 0
	for _, b := range s.Batches {
		n += len(b.Amounts)
	}
	return n
}

// Requests flattens the schedule into service requests numbered in input order.
func (s *Schedule) Requests() []*sim.ServiceRequest {
	reqs := make([]*sim.ServiceRequest, 0, s.NumStudents())
	for _, b := range s.Batches {
		for _, amount := range b.Amounts {
			reqs = append(reqs, sim.NewServiceRequest(len(reqs), b.ArrivalTick, amount))
		}
	}
	return reqs
}

// Queue returns a request queue holding every student of the schedule.
func (s *Schedule) Queue() *sim.RequestQueue {
	return sim.NewRequestQueue(s.Requests()...)
}

// tokenReader yields whitespace-separated integers from a stream.
type tokenReader struct {
	scanner *bufio.Scanner
	count   int
}

func newTokenReader(r io.Reader) *tokenReader {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	return &tokenReader{scanner: scanner}
}

// next returns the next integer. ok is false at end of input.
func (t *tokenReader) next() (value int64, ok bool, err error) {
	if !t.scanner.Scan() {
		if err := t.scanner.Err(); err != nil {
			return 0, false, fmt.Errorf("reading schedule: %w", err)
		}
		return 0, false, nil
	}
	t.count++
	word := t.scanner.Text()
	value, err = strconv.ParseInt(word, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("token %d: invalid integer %q: %w", t.count, word, err)
	}
	return value, true, nil
}
