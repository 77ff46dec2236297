// Package engine defines the boundary to the streaming engine that owns the
// RTSP state machine and media relaying. The orchestration layer only ever
// talks to these interfaces; internal/engine/live provides the real thing and
// tests substitute fakes.
package engine

import "context"

// SessionOptions carries the per-session knobs forwarded to the engine when
// a proxy session is created.
type SessionOptions struct {
	// Username and Password are passed through to the back-end source.
	// Both are set or both are empty.
	Username string
	Password string

	// TunnelPort, when non-zero, requests RTSP-over-HTTP tunneling to the
	// back-end on that port.
	TunnelPort int

	Verbosity int
}

// Session is the opaque handle for one registered proxy session. The
// orchestration layer reads its identity for diagnostics and otherwise
// forgets it after registration.
type Session interface {
	ID() string
	SourceURL() string
	Name() string
}

// Server is the bound listening server. Exactly one exists per process.
type Server interface {
	// Register hands ownership of the session to the server for the rest
	// of the process lifetime.
	Register(Session)

	// PublicURL derives the playback URL clients use for the session.
	PublicURL(Session) string

	// Port reports the port the server actually bound.
	Port() int

	Close() error
}

// HTTPTunneler is implemented by servers that can additionally accept
// RTSP-over-HTTP clients. Setup reports whether the listener came up.
type HTTPTunneler interface {
	SetupTunnelingOverHTTP(port int) bool
}

// Engine is the external streaming engine as seen by the bootstrap chain.
type Engine interface {
	// CreateServer binds a listening server on port. auth may be nil,
	// meaning no client access control.
	CreateServer(port int, auth *AuthDatabase) (Server, error)

	// CreateProxySession builds a session relaying sourceURL under the
	// published name. An empty name is accepted.
	CreateProxySession(s Server, sourceURL, name string, opts SessionOptions) (Session, error)

	// RunEventLoop serves all created servers until ctx is cancelled.
	// Under normal operation the caller passes a background context and
	// the call never returns.
	RunEventLoop(ctx context.Context) error
}
