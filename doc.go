// Package rebalance computes, caches, and rebalances a multi-asset
// investment portfolio from a ledger of buy/sell/dividend transactions.
//
// The core functionalities include:
//   - Decimal Value Types: exact fixed-point arithmetic for every monetary
//     amount, quantity, and ratio, with no binary floating-point rounding.
//   - Stock Metrics: per-stock quantity, weighted-average cost, current
//     value, and realized/unrealized profit derived from the transaction list.
//   - Rebalancing Strategies: three interchangeable algorithms (add-investment,
//     sell-rebalance, simple-ratio) producing buy/sell recommendations.
//   - Orchestration: portfolio totals in both currency denominations and
//     per-sector breakdowns, computed statelessly on every pass.
//   - Risk Analysis: concentration and target-deviation warnings over the
//     orchestrator's output.
//
// Result caching lives in the cache subpackage; off-thread execution with a
// synchronous fallback lives in the offload subpackage. This package serves
// as the foundational logic for the `rebal` command-line tool.
package rebalance
