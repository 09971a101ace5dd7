// Package tasks runs background work for the client, currently the live
// stream poller.
//
// # Polling
//
// [Poller.Run] refreshes the live stream list on an interval and delivers
// each result as a [StreamUpdate] on a channel consumed by the TUI or the
// watch command.
//
// # Generation Guard
//
// Network responses can arrive out of order. Every fetch carries a
// monotonically increasing generation number, and a result is only delivered
// when its generation is newer than the last delivered one. A slow response
// therefore never overwrites a fresher stream list. [Poller.Invalidate]
// advances the applied generation directly so that anything already in
// flight is discarded, which callers use after a mutation such as joining or
// leaving a stream.
//
// # Backpressure
//
// Sends are non-blocking: when the consumer is not reading, the update is
// dropped. The next poll delivers a fresher list, so nothing is lost that a
// retry would not recover. Fetch rate is capped with a rate.Limiter
// independent of the tick interval.
package tasks
