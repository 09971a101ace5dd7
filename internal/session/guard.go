package session

// Route names the navigable surfaces of the client.
type Route string

const (
	RouteLogin     Route = "login"
	RouteDashboard Route = "dashboard"
	RouteAdmin     Route = "admin"
)

// Requirements declares what a route demands of the session.
type Requirements struct {
	RequiresAuth  bool
	RequiresAdmin bool
}

// Decision is the outcome of evaluating a route guard.
type Decision int

const (
	// Pending means the initial credential check has not completed; render a
	// pending state and nothing else.
	Pending Decision = iota
	// Allow renders the guarded content.
	Allow
	// RedirectLogin sends the user to the login view.
	RedirectLogin
	// RedirectHome sends a non-admin to the default landing route.
	RedirectHome
)

func (d Decision) String() string {
	switch d {
	case Pending:
		return "pending"
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect_login"
	case RedirectHome:
		return "redirect_home"
	default:
		return ""
	}
}

// Guard evaluates a route's requirements against the session. It must be
// re-evaluated on every navigation and on every session change.
func Guard(s Session, req Requirements) Decision {
	if s.Loading {
		return Pending
	}
	if (req.RequiresAuth || req.RequiresAdmin) && !s.Authenticated {
		return RedirectLogin
	}
	if req.RequiresAdmin && !s.IsAdmin {
		return RedirectHome
	}
	return Allow
}
