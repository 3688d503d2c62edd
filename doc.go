// Package tradebook provides the accounting engine of a personal trading
// journal. It is designed to be local-first, auditable, and deterministic:
// the journal file is the single source of truth, and every derived figure
// can be recomputed from it.
//
// The core functionalities include:
//   - Journal Management: Recording trades (entries, pyramids, partial
//     exits) and capital events (deposits, withdrawals, yearly starting
//     capital, monthly overrides) in a chronological, human-readable record.
//   - Trade Resolution: A pure resolver that derives average prices, open
//     and exited quantities, FIFO-matched realized P/L, stock move and
//     holding days from a raw trade record.
//   - Accounting Basis: An adapter that attributes P/L either to a trade's
//     entry date (accrual) or to each individual exit date (cash), exploding
//     multi-exit trades into independent ledger entries when needed.
//   - True Portfolio: A month-by-month reconstruction of the capital
//     balance from sparse, possibly-overridden inputs, carrying each month's
//     final capital into the next.
//   - Risk Metrics: Drawdown, volatility, Sharpe/Sortino/Calmar ratios,
//     streaks and expectancy computed over the reconstructed capital series,
//     with careful handling of degenerate inputs.
//   - Data Persistence: Encoding and decoding of the journal to and from a
//     human-readable, version-controllable JSONL format.
//
// This package serves as the foundational logic for the `tbk` command-line
// tool, ensuring that all operations are consistent and based on a single
// source of truth.
package tradebook
