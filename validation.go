package tradebook

import (
	"errors"
	"fmt"
)

// ValidationWarning flags suspicious trade data that was excluded from a
// computation. It is non-fatal: the result is best-effort without the
// offending piece, and the warning travels alongside it.
type ValidationWarning struct {
	TradeID string
	Field   string
	Reason  string
}

func (w ValidationWarning) String() string {
	if w.TradeID == "" {
		return fmt.Sprintf("%s: %s", w.Field, w.Reason)
	}
	return fmt.Sprintf("trade %s: %s: %s", w.TradeID, w.Field, w.Reason)
}

// JoinWarnings folds a warning list into a single error, or nil when there
// is nothing to report. Handy for callers that log warnings in one place.
func JoinWarnings(warnings []ValidationWarning) error {
	var errs []error
	for _, w := range warnings {
		errs = append(errs, errors.New(w.String()))
	}
	return errors.Join(errs...)
}
