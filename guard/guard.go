// Package guard decides whether a protected region of the UI tree may
// render, as a pure function of the session snapshot. It holds no state and
// performs no I/O; navigation is the caller's job, driven by the returned
// decision.
package guard

// State is the session snapshot a decision is derived from.
type State struct {
	IsLoading       bool
	IsAuthenticated bool
	// Role is the platform role decoded from the bearer token. Display and
	// routing data only; the server re-checks authorization on every call.
	Role string
	// AllowedRoles, when non-empty, restricts the region to those roles.
	AllowedRoles []string
	// AttemptedRoute is preserved on redirect for post-login return.
	AttemptedRoute string
}

// Action is what the caller should render or do.
type Action uint8

const (
	// ActionLoading renders the loading placeholder and nothing else.
	ActionLoading Action = iota
	// ActionRedirect sends the visitor to the entry route.
	ActionRedirect
	// ActionDeny renders the access-denied view. No redirect: the session
	// is valid, the region is just not for this role.
	ActionDeny
	// ActionAllow renders the protected children unchanged.
	ActionAllow
)

// Decision is the guard's verdict for one render.
type Decision struct {
	Action     Action
	RedirectTo string
	ReturnTo   string
}

// Config names the entry route unauthenticated visitors are sent to.
type Config struct {
	EntryRoute string
}

// Evaluate derives a Decision. Loading always wins; then authentication;
// then the optional role check.
func Evaluate(cfg Config, st State) Decision {
	entry := cfg.EntryRoute
	if entry == "" {
		entry = "/"
	}

	if st.IsLoading {
		return Decision{Action: ActionLoading}
	}
	if !st.IsAuthenticated {
		return Decision{
			Action:     ActionRedirect,
			RedirectTo: entry,
			ReturnTo:   st.AttemptedRoute,
		}
	}
	if len(st.AllowedRoles) > 0 && !contains(st.AllowedRoles, st.Role) {
		return Decision{Action: ActionDeny}
	}
	return Decision{Action: ActionAllow}
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
