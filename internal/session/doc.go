// Package session owns the portal credential and the authorization state
// derived from it.
//
// The credential is an opaque signed token issued by the portal at login. The
// client parses it locally (no signing key, no validation round trip) to
// derive identity and capability flags, persists the raw string in the cache
// database so sessions survive restarts, and clears it on logout or whenever
// parsing fails.
//
// [Guard] implements the single route-guard contract used by every view:
// pending while the initial credential check runs, then allow, redirect to
// login, or redirect home depending on the route's requirements.
package session
