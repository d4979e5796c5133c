package attribution

import (
	"fmt"
	"time"

	"github.com/b2b-attribution/engine/internal/domain"
)

// validateDateWindow rejects a window where the end precedes the
// start (spec §4.5 operation 1 errors).
func validateDateWindow(from, to *time.Time) error {
	if from != nil && to != nil && to.Before(*from) {
		return fmt.Errorf("invalid date window: date_to (%s) precedes date_from (%s)", to, from)
	}
	return nil
}

// validateWeights rejects a combine-weight override containing
// negatives, or one that sums to zero (spec §4.5, §8 scenario S5).
func validateWeights(w *domain.CombineWeights) error {
	if w == nil {
		return nil
	}
	for _, v := range w.AsSlice() {
		if v < 0 {
			return fmt.Errorf("invalid combine weights: negative component %v", v)
		}
	}
	if w.Sum() <= 0 {
		return fmt.Errorf("invalid combine weights: sum must be positive, got %v", w.Sum())
	}
	return nil
}
