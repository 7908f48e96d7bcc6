package entity

// Session is the locally persisted proof of authentication: the token pair
// plus the cached identity fields derived from the last successful validation.
//
// A session is active iff both tokens are present in the device store. An
// active session's access token may be stale without the session being
// inactive; staleness is resolved by a refresh attempt, not by discarding the
// session eagerly.
type Session struct {
	AccessToken  string
	RefreshToken string
	Identity     Identity
}

// Active reports whether both tokens are present.
func (s *Session) Active() bool {
	return s != nil && s.AccessToken != "" && s.RefreshToken != ""
}

// BootstrapState is the outcome of a cold-start session check.
type BootstrapState int

const (
	// BootstrapUnauthenticated means no usable session exists; the caller
	// must route to login.
	BootstrapUnauthenticated BootstrapState = iota
	// BootstrapAuthenticated means the device holds a validated session.
	BootstrapAuthenticated
	// BootstrapOffline means tokens were present but every check failed on
	// transport, so their validity is unknown. The default policy still
	// clears the session; the state exists so callers can tell the two
	// apart instead of silently logging out an offline user.
	BootstrapOffline
)

// String returns the string representation of the BootstrapState.
func (s BootstrapState) String() string {
	switch s {
	case BootstrapAuthenticated:
		return "authenticated"
	case BootstrapOffline:
		return "offline"
	default:
		return "unauthenticated"
	}
}
