package tradebook

// match is one FIFO pairing of exited quantity against entry capacity, used
// for realized P/L calculations.
type match struct {
	Quantity   Quantity
	EntryPrice Money
	ExitPrice  Money
	ExitDate   Date
	ExitIndex  int // index of the exit lot that produced the match
}

// pl returns the signed realized P/L of the match.
func (m match) pl(side Side) Money {
	diff := m.ExitPrice.Sub(m.EntryPrice)
	if side == Sell {
		diff = diff.Neg()
	}
	return diff.Mul(m.Quantity)
}

// fifoMatch pairs each valid exit lot against the oldest remaining entry
// capacity first. Quantities do not need to align across lot boundaries: an
// exit spanning several entry lots yields several matches, and a single
// entry lot can serve several exits. Exited quantity beyond the entered
// total is left unmatched.
func fifoMatch(entries []Lot, exits []Exit) []match {
	type open struct {
		price Money
		left  Quantity
	}
	var queue []open
	for _, l := range entries {
		if l.Valid() {
			queue = append(queue, open{price: l.Price, left: l.Quantity})
		}
	}

	var matches []match
	head := 0
	for i, e := range exits {
		if !e.Valid() {
			continue
		}
		left := e.Quantity
		for left.IsPositive() && head < len(queue) {
			take := left.Min(queue[head].left)
			matches = append(matches, match{
				Quantity:   take,
				EntryPrice: queue[head].price,
				ExitPrice:  e.Price,
				ExitDate:   e.Date,
				ExitIndex:  i,
			})
			queue[head].left = queue[head].left.Sub(take)
			left = left.Sub(take)
			if queue[head].left.IsZero() {
				head++
			}
		}
	}
	return matches
}
