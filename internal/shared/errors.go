package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Authentication errors
	ErrAuthFailed        = fmt.Errorf("authentication failed")
	ErrNotAuthenticated  = fmt.Errorf("not authenticated")
	ErrInvalidCredential = fmt.Errorf("invalid credential")
	ErrForbidden         = fmt.Errorf("insufficient role")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrPodcastNotFound    = fmt.Errorf("podcast not found")
	ErrStreamNotFound     = fmt.Errorf("live stream not found")
	ErrUserNotFound       = fmt.Errorf("user not found")

	// Playback errors
	ErrPlaybackBlocked = fmt.Errorf("playback not permitted")
	ErrNoMedia         = fmt.Errorf("no media loaded")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
