// Package player implements the playback and playlist engine.
//
// [Engine] owns the single media resource and tracks transport state through
// four states: Idle, Paused, Playing and Ended. It mediates playlist
// traversal over the most recently fetched snapshot (next/previous with
// modulo wraparound), auto-advances on natural end of media, and issues a
// best-effort play-count report on every transition into Playing while a
// valid credential is held.
//
// Automatic playback after selection is gated behind the first explicit
// play press, mirroring platform autoplay restrictions: before that press a
// newly selected item stays paused, afterwards every selection (including
// auto-advance) starts immediately.
//
// [Media] abstracts the playback resource. [ExecMedia] drives an external
// player process; tests use an in-memory fake.
package player
