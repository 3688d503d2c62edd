package tradebook

import "fmt"

// AccountingBasis selects the date on which a trade's realized P/L is
// attributed to the capital ledger.
type AccountingBasis int

const (
	// Accrual attributes the whole realized P/L to the trade's entry date,
	// even when the cash movement happens later.
	Accrual AccountingBasis = iota
	// Cash attributes P/L to each individual exit date.
	Cash
)

func (b AccountingBasis) String() string {
	switch b {
	case Accrual:
		return "accrual"
	case Cash:
		return "cash"
	default:
		return "unknown"
	}
}

// ParseBasis parses a string into an AccountingBasis.
func ParseBasis(s string) (AccountingBasis, error) {
	switch s {
	case "accrual":
		return Accrual, nil
	case "cash":
		return Cash, nil
	default:
		return 0, fmt.Errorf("unknown accounting basis: %q", s)
	}
}
