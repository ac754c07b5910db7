package practice

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// DefaultHistoryMax is how many saved plans are kept.
const DefaultHistoryMax = 20

// History persists saved plans as a JSON array, newest first.
type History struct {
	path        string
	max         int
	lockTimeout time.Duration
}

// NewHistory returns a store backed by path keeping at most max plans.
func NewHistory(path string, max int) *History {
	if max <= 0 {
		max = DefaultHistoryMax
	}
	return &History{path: path, max: max, lockTimeout: 5 * time.Second}
}

// Path returns the backing file.
func (h *History) Path() string { return h.path }

// Load returns the saved plans, newest first. A missing, unreadable or
// corrupt file reads as an empty history.
func (h *History) Load() []Plan {
	b, err := os.ReadFile(h.path)
	if err != nil {
		return []Plan{}
	}
	var plans []Plan
	if err := json.Unmarshal(b, &plans); err != nil {
		return []Plan{}
	}
	if plans == nil {
		plans = []Plan{}
	}
	return plans
}

// Latest returns the most recently saved plan, the one to review next.
func (h *History) Latest() (Plan, bool) {
	plans := h.Load()
	if len(plans) == 0 {
		return Plan{}, false
	}
	return plans[0], true
}

// Save prepends p and trims the history to its cap.
func (h *History) Save(p Plan) ([]Plan, error) {
	unlock, err := h.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	plans := append([]Plan{p}, h.Load()...)
	if len(plans) > h.max {
		plans = plans[:h.max]
	}
	if err := h.write(plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// Clear removes every saved plan.
func (h *History) Clear() error {
	unlock, err := h.lock()
	if err != nil {
		return err
	}
	defer unlock()
	return h.write([]Plan{})
}

func (h *History) write(plans []Plan) error {
	b, err := json.MarshalIndent(plans, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot encode history: %w", err)
	}
	tmp := h.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("cannot write history %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, h.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("cannot install history %s: %w", h.path, err)
	}
	return nil
}

// lock takes the history file lock, retrying until lockTimeout.
func (h *History) lock() (func(), error) {
	if err := os.MkdirAll(filepath.Dir(h.path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create history dir: %w", err)
	}
	lockPath := h.path + ".lock"
	l := flock.New(lockPath)
	deadline := time.Now().Add(h.lockTimeout)
	for {
		locked, err := l.TryLock()
		if err != nil {
			return nil, fmt.Errorf("cannot acquire history lock: %w", err)
		}
		if locked {
			return func() { _ = l.Unlock() }, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("history is locked by another process (lock: %s)", lockPath)
		}
		time.Sleep(100 * time.Millisecond)
	}
}
