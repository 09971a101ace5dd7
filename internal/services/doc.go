// Package services implements HTTP clients for the podcast portal API.
//
// # Clients
//
// Each client wraps a slice of the portal's REST surface:
//   - [PortalService] : authentication, podcasts, uploads, health
//   - [LiveService] : live stream listing, join/leave, lecturer start/stop
//   - [AdminService] : user and content moderation (admin credential required)
//   - [APIService] : raw authenticated requests for endpoints the typed clients do not cover
//
// All clients share the same request plumbing: the bearer credential is
// attached from a [TokenSource] (satisfied by session.Manager), request and
// response bodies are JSON, and non-2xx responses become errors built from
// the portal's {"detail": "..."} payload.
//
// # Authentication
//
// [PortalService.Authenticate] uses the OAuth2 password grant against
// /api/auth/token; the portal expects form-encoded credentials and answers
// with a bearer token that the caller hands to the session layer.
//
// # Error Handling
//
// Failures map onto typed errors from the shared package:
//   - [shared.ErrAuthFailed] : login rejected
//   - [shared.ErrNotAuthenticated] : portal answered 401
//   - [shared.ErrForbidden] : portal answered 403
//   - [shared.ErrServiceUnavailable] : transport failure, portal unreachable
//   - [shared.ErrAPIRequest] : any other non-2xx response
package services
