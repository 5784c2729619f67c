// Package transformer runs an ordered list of steps over the loaded tariff
// rows. Order matters: the chain is the algorithm.
package transformer

import (
	"fmt"
	"time"

	"github.com/aarguelles2/nTOU/internal/domain"
)

// Step rewrites rows in place or returns a new slice. A non-nil error aborts
// the chain.
type Step interface {
	Name() string
	Apply(rows []domain.TariffRow) ([]domain.TariffRow, error)
}

// Observer is told about each step after it ran.
type Observer func(step string, err error, d time.Duration)

// Chain is an ordered list of steps.
type Chain []Step

// Apply runs every step in order and stops at the first error.
func (c Chain) Apply(rows []domain.TariffRow) ([]domain.TariffRow, error) {
	return c.ApplyObserved(rows, nil)
}

// ApplyObserved is Apply with a per-step callback, used for metrics and
// debug logging. obs may be nil.
func (c Chain) ApplyObserved(rows []domain.TariffRow, obs Observer) ([]domain.TariffRow, error) {
	out := rows
	for _, s := range c {
		start := time.Now()
		next, err := s.Apply(out)
		if obs != nil {
			obs(s.Name(), err, time.Since(start))
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.Name(), err)
		}
		out = next
	}
	return out, nil
}

// Names lists the step names in execution order.
func (c Chain) Names() []string {
	names := make([]string, len(c))
	for i, s := range c {
		names[i] = s.Name()
	}
	return names
}
