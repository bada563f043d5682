// Package trace records the decision trace of a division procedure: an
// ordered, append-only log of who acted, on which slices, and how.
//
// Steps are structured (Actor, Action, Pieces, Cuts, Assign) and are kept in
// causal order, so a consumer can replay the procedure and explain it
// without recomputing anything. Pieces are deep-copied snapshots taken when
// the step is appended; later phases can never alter an earlier entry.
//
// Turning a step into a sentence is a separate concern handled by Narrate;
// algorithms only deal in Actions.
package trace
