package tradebook

// INR is a helper for tests to create rupee money from const
func INR(v float64) Money { return M(v, "INR") }

// NO is a helper for tests to create money from const with no currency set
func NO(v float64) Money { return M(v, "") }

// moneyEq reports money equality for tests, treating every zero amount as
// equal regardless of currency.
func moneyEq(got, want Money) bool {
	if got.IsZero() && want.IsZero() {
		return true
	}
	return got.Equal(want)
}
