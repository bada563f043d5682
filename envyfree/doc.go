// Package envyfree implements exact envy-free division procedures for a
// one-dimensional resource with heterogeneous, piecewise-linear valuations.
//
// 🚀 Procedures:
//
//   - CutAndChoose:    two agents. Agent 0 halves, agent 1 chooses.
//   - SelfridgeConway: three agents, at most five cuts. Cut, trim, choose,
//     then divide the trimming.
//
// Selfridge–Conway outline (0-based agents):
//  1. Agent 0 cuts the resource into three slices it values equally.
//  2. Agent 1 ranks them. If its two largest are equal it trims nothing;
//     agent 2, agent 1 and agent 0 then pick in that order.
//  3. Otherwise agent 1 trims its largest slice down to the value of the
//     second largest and sets the trimming aside.
//  4. Agent 2 picks its favourite; agent 1 must take the trimmed piece if
//     it remains, otherwise picks its favourite; agent 0 takes the last.
//  5. Whichever of agents 1 and 2 did not take the trimmed piece cuts the
//     trimming into three equal-value pieces. The taker of the trimmed
//     piece picks first, then agent 0, then the cutter takes the last.
//
// The procedure is a fixed-depth decision tree. Every decision is recorded
// in the returned trace in causal order.
//
// Numeric tolerance:
//
//	Options.Tolerance (default DefaultTolerance = 1e-13) decides whether
//	agent 1's two largest slices are equal. It absorbs floating-point noise
//	only; it is not an approximation bound of the kind used by approximate
//	envy-free algorithms.
//
// Complexity:
//
//   - Time:  O(N·S) per cut or slice valuation, a constant number of times.
//   - Space: O(N) per slice, a constant number of slices.
//
// Errors (sentinel):
//
//   - ErrInvalidAgentCount           wrong number of profiles; nothing is computed.
//   - valuation.ErrMalformedProfile  a profile does not partition the resource.
//   - valuation.ErrDomain            a cut-line search could not be satisfied.
package envyfree
