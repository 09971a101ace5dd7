// Package models defines the data types exchanged with the podcast portal API.
//
// The portal owns all of this data; the client holds read-only snapshots fetched
// on demand. JSON field names mirror the API responses exactly:
//   - [User] : Portal account with role and active flag
//   - [Podcast] : Episode with media locator, artwork and usage counters
//   - [LiveStream] : Broadcast entry with status and viewer counters
//   - [Health] : Health check response with display label mapping
//   - [Token] : Token endpoint response
//
// [PlayEvent] is the one locally owned type: a record of a play report written
// to the client-side cache database.
package models
