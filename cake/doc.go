// Package cake provides the slice algebra used by division procedures:
// immutable intervals of the resource that carry how much every agent
// values them, plus ranking and selection helpers.
//
// Every operation is pure. A Slice is a value; Cut, Assign, SortDescending
// and RemoveBest return fresh values and never touch their inputs, so each
// phase of a procedure can be inspected and tested on its own.
//
// Ordering contract:
//
//	Ties are broken by position in the input sequence (earliest wins).
//	Procedures in this module build their sequences in ascending interval
//	start order, except where a sequence has been re-ranked by an agent,
//	in which case the stable ranked order is the input order.
package cake
