// Package fairdiv is a toolkit for dividing a one-dimensional resource (a
// cake, a shift schedule, a strip of land) among agents who value its parts
// differently, so that nobody prefers another agent's share to their own.
//
// 🚀 What is fairdiv?
//
//	A small, deterministic division engine that brings together:
//		• Valuations: piecewise-linear density profiles, exact integrals and cut inversion
//		• Slice algebra: cutting, ranking and removing slices with stable tie-breaks
//		• Procedures: Selfridge–Conway (3 agents) and cut-and-choose (2 agents)
//		• Remote solvers: approximate 3- and 4-agent divisions through an HTTP oracle
//		• Decision traces: every cut, trim and pick, replayable and narratable
//		• Aggregation: per-agent portions, envy-freeness and proportionality checks
//
// Packages:
//
//	valuation/ — Segment, Profile, ValueOf, FindCutLineByPercent/ByValue, Validate
//	cake/      — Slice, AssignedSlice, Cut, SortDescending, RemoveBest
//	trace/     — Step, Action, Trace, Replay, Narrate
//	envyfree/  — SelfridgeConway, CutAndChoose
//	portion/   — Aggregate, CheckPartition, CheckEnvyFree, CheckProportional
//	oracle/    — HTTP client for the approximate-division service
//	divide/    — catalogue and Runner: run any algorithm by name
//	cmd/fairdiv — CLI: divide, algorithms, serve, version
//
// Quick ASCII example (three agents, cake of size 90):
//
//	0          25   30   35   40                65                90
//	|--Agent 1--|-A2-|-A1-|-A3-|------Agent 2-----|------Agent 3-----|
//
// Agent 1 cuts thirds, Agent 2 trims its favourite, Agent 3 picks first,
// and the trimming [25,40) is shared out in a second round.
//
//	go get github.com/katalvlaran/fairdiv
package fairdiv
