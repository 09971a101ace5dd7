// Package repositories implements SQLite persistence for local client state.
//
// The client keeps two things on disk: the portal credential, which survives
// process restarts so the session can be restored without a fresh login, and
// a local play history recorded alongside each play report.
//
// Key Implementations:
//   - [CredentialRepository] : single-row credential storage, satisfies session.CredentialStore
//   - [HistoryRepository] : append-only play history with recency queries
//
// Schema setup lives in shared's migration runner; repositories assume the
// tables exist.
package repositories
