// Package oracle talks to an external approximate-division service and turns
// its answers into the same Result shape the local procedures produce.
//
// Three endpoints are supported, all taking the JSON body
//
//	{"preferences": [[segment, ...], ...], "cakeSize": n}
//
//	/api/three_agent          Brânzei–Nisan style ε-envy-free division, 3 agents
//	/api/four_agent           Hollender–Rubinstein style division, 4 agents
//	/api/piecewise_constant   division for piecewise-constant densities, 3–4 agents
//
// The service is treated as an opaque oracle: only its cut positions and
// assignment are trusted. Slice values are re-derived locally with cake.Cut,
// so the Solution and Steps carry numbers consistent with the profiles the
// caller supplied.
//
// Errors:
//
//   - *APIError        the service answered with a non-2xx status.
//   - ErrBadResponse   the body decoded but is unusable (missing assignment
//     entries, cut positions out of order or outside the cake, unknown segment
//     indices).
//   - envyfree.ErrInvalidAgentCount   the endpoint does not support the number
//     of profiles given.
//
// Client methods log request outcomes through an injected *zap.Logger; the
// Build* functions are pure and never log.
package oracle
