// Package portion reduces a division's assigned slices into one Portion per
// agent and checks the fairness properties of the result.
//
// A Portion is the union of every slice an agent owns: its sorted,
// non-overlapping edges and, for every agent j, the fraction of j's total
// valuation that the portion holds. Envy-freeness checks consume exactly
// those fractions.
//
// Checks:
//
//   - CheckPartition:    the slices tile [0, cakeSize) with no gaps or overlaps.
//   - CheckEnvyFree:     no agent values another portion above its own.
//   - CheckProportional: every agent holds at least 1/n of its own valuation.
package portion
