// Package divide is the single entry point for running a division by name.
//
// A Runner looks the algorithm up in the catalogue, validates the profiles,
// checks the agent count, dispatches to the local procedure (package
// envyfree) or to a remote Solver (package oracle), and aggregates the
// resulting slices into one Portion per agent. Every run gets a fresh UUID.
//
// Catalogue:
//
//	cut-and-choose        2 agents    local   exact
//	selfridge-conway      3 agents    local   exact
//	branzei-nisan         3 agents    remote  approximate
//	hollender-rubinstein  4 agents    remote  approximate
//	piecewise-constant    3–4 agents  remote  approximate
//
// Errors: ErrUnknownAlgorithm, ErrNoSolver, envyfree.ErrInvalidAgentCount,
// valuation.ErrMalformedProfile, plus whatever the Solver returns.
package divide
