package confirm

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rfsurvey/algo-burst/detect"
	"github.com/rfsurvey/algo-burst/spectro"
	"github.com/rfsurvey/algo-burst/spectro/npy"
)

var (
	// ErrDecisionMismatch indicates a decision vector whose length does not
	// match the candidate count.
	ErrDecisionMismatch = errors.New("confirm: decision count mismatch")
	// ErrNoStore indicates a run without a configured store.
	ErrNoStore = errors.New("confirm: no store configured")
)

// State tracks a candidate through its lifecycle.
type State int

const (
	// StateCandidate is the initial state after detection.
	StateCandidate State = iota
	// StatePresented means the candidate has been handed to the decider.
	StatePresented
	// StateConfirmed means the decider accepted the candidate.
	StateConfirmed
	// StateRejected means the decider declined the candidate.
	StateRejected
	// StatePersisted means the confirmed slice has been written.
	StatePersisted
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StatePresented:
		return "presented"
	case StateConfirmed:
		return "confirmed"
	case StateRejected:
		return "rejected"
	case StatePersisted:
		return "persisted"
	default:
		return "candidate"
	}
}

// Candidate is one detected window together with its extracted slice and axis
// labels, as handed to the decider.
type Candidate struct {
	// Index is the candidate's position in detection order. Decisions are
	// keyed by this position, not by window value.
	Index  int
	Window detect.Window
	Slice  *spectro.Spectrogram

	state State
}

// State returns the candidate's current lifecycle state.
func (c *Candidate) State() State {
	return c.state
}

// Decider supplies one boolean per candidate, in candidate order. It may block
// indefinitely (a human deciding); it must return decisions for every
// candidate or an error.
type Decider interface {
	Decide(candidates []Candidate) ([]bool, error)
}

// DeciderFunc adapts a function to the Decider interface.
type DeciderFunc func(candidates []Candidate) ([]bool, error)

// Decide calls f.
func (f DeciderFunc) Decide(candidates []Candidate) ([]bool, error) {
	return f(candidates)
}

// AcceptAll confirms every candidate without inspection.
func AcceptAll() Decider {
	return DeciderFunc(func(candidates []Candidate) ([]bool, error) {
		out := make([]bool, len(candidates))
		for i := range out {
			out[i] = true
		}

		return out, nil
	})
}

// Namer derives a burst filename from the source identifier and the window's
// start time.
type Namer func(source string, start time.Time) string

// DefaultNamer names bursts {source}-{HHMMSS}.npy. The second-resolution time
// format contains no separators that need escaping.
func DefaultNamer(source string, start time.Time) string {
	return fmt.Sprintf("%s-%s.npy", source, start.Format("150405"))
}

// Store persists one confirmed burst slice under a derived name.
type Store interface {
	WriteBurst(name string, data [][]float64) error
}

// DirStore writes bursts as .npy files in a directory, creating it on first
// use.
type DirStore struct {
	Dir string
}

// WriteBurst writes the slice to Dir/name.
func (d *DirStore) WriteBurst(name string, data [][]float64) error {
	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return fmt.Errorf("confirm: create output dir: %w", err)
	}

	f, err := os.Create(filepath.Join(d.Dir, name))
	if err != nil {
		return fmt.Errorf("confirm: create burst file: %w", err)
	}

	if err := npy.WriteMatrix(f, data); err != nil {
		f.Close()

		return fmt.Errorf("confirm: write burst file: %w", err)
	}

	return f.Close()
}

// Result reports one confirmation run.
type Result struct {
	// Candidates holds every candidate in its final state.
	Candidates []Candidate
	// Persisted lists the filenames written, in candidate order.
	Persisted []string
	// Errors maps candidate index to its persistence failure, if any.
	Errors map[int]error
}

// Confirmed returns the number of accepted candidates.
func (r *Result) Confirmed() int {
	n := 0

	for i := range r.Candidates {
		c := &r.Candidates[i]
		if c.state == StateConfirmed || c.state == StatePersisted {
			n++
		}
	}

	return n
}

// Candidates extracts the slice and axis labels for each window. Slices are
// deep copies; the parent spectrogram is not aliased.
func Candidates(s *spectro.Spectrogram, windows []detect.Window) ([]Candidate, error) {
	out := make([]Candidate, 0, len(windows))

	for i, w := range windows {
		cut, err := s.SliceTime(w.Start, w.End)
		if err != nil {
			return nil, fmt.Errorf("confirm: window %d: %w", i, err)
		}

		out = append(out, Candidate{Index: i, Window: w, Slice: cut})
	}

	return out, nil
}

// Run presents every candidate window to the decider and persists the
// confirmed ones through the store. All decisions are collected before
// persistence begins; a decision error aborts with nothing written.
// Persistence failures are per window: each is recorded in Result.Errors and
// the remaining windows are still written.
func Run(s *spectro.Spectrogram, windows []detect.Window, d Decider, store Store, source string, name Namer) (*Result, error) {
	if store == nil {
		return nil, ErrNoStore
	}

	if name == nil {
		name = DefaultNamer
	}

	candidates, err := Candidates(s, windows)
	if err != nil {
		return nil, err
	}

	for i := range candidates {
		candidates[i].state = StatePresented
	}

	decisions, err := d.Decide(candidates)
	if err != nil {
		return nil, fmt.Errorf("confirm: decide: %w", err)
	}

	if len(decisions) != len(candidates) {
		return nil, fmt.Errorf("%w: %d decisions for %d candidates", ErrDecisionMismatch, len(decisions), len(candidates))
	}

	res := &Result{Errors: map[int]error{}}

	for i := range candidates {
		c := &candidates[i]
		if !decisions[i] {
			c.state = StateRejected

			continue
		}

		c.state = StateConfirmed

		fileName := name(source, c.Slice.Times[0])
		if err := store.WriteBurst(fileName, c.Slice.Data); err != nil {
			res.Errors[i] = err

			continue
		}

		c.state = StatePersisted
		res.Persisted = append(res.Persisted, fileName)
	}

	res.Candidates = candidates

	return res, nil
}
