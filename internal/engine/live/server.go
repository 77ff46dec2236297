package live

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"

	"rtspproxy_go/internal/engine"
	"rtspproxy_go/internal/logger"
)

// Server owns the RTSP listener and the registry of proxy sessions, keyed by
// published name in registration order.
type Server struct {
	listener net.Listener
	auth     *engine.AuthDatabase

	mu       sync.RWMutex
	sessions map[string]*Session
	order    []string

	tunnel net.Listener
}

func newServer(listener net.Listener, auth *engine.AuthDatabase) *Server {
	return &Server{
		listener: listener,
		auth:     auth,
		sessions: make(map[string]*Session),
	}
}

// Register takes ownership of the session. A later registration under the
// same published name replaces the earlier one but keeps its position.
func (s *Server) Register(sess engine.Session) {
	ps, ok := sess.(*Session)
	if !ok {
		logger.Error().Str("name", sess.Name()).Msg("refusing to register a foreign session handle")
		return
	}
	s.mu.Lock()
	if _, exists := s.sessions[ps.name]; !exists {
		s.order = append(s.order, ps.name)
	}
	s.sessions[ps.name] = ps
	s.mu.Unlock()
}

// PublicURL derives the playback URL clients use for the session.
func (s *Server) PublicURL(sess engine.Session) string {
	return fmt.Sprintf("rtsp://%s:%d/%s", s.publicHost(), s.Port(), sess.Name())
}

func (s *Server) Port() int {
	return s.listener.Addr().(*net.TCPAddr).Port
}

func (s *Server) Close() error {
	if s.tunnel != nil {
		_ = s.tunnel.Close()
	}
	return s.listener.Close()
}

// SessionNames reports the published names in registration order.
func (s *Server) SessionNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, len(s.order))
	copy(names, s.order)
	return names
}

func (s *Server) lookup(name string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[name]
	return sess, ok
}

// SetupTunnelingOverHTTP starts an HTTP listener for RTSP-over-HTTP clients.
// Failure to bind is reported, not fatal.
func (s *Server) SetupTunnelingOverHTTP(port int) bool {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		logger.Warn().Int("port", port).Err(err).Msg("RTSP-over-HTTP tunneling is not available")
		return false
	}
	s.tunnel = listener

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleTunnelRequest)
	go func() {
		if err := http.Serve(listener, mux); err != nil && !errors.Is(err, net.ErrClosed) {
			logger.Warn().Err(err).Msg("HTTP tunnel listener stopped")
		}
	}()

	logger.Info().Int("port", port).Msg("RTSP-over-HTTP tunneling enabled")
	return true
}

// handleTunnelRequest answers the initial GET of the RTSP-over-HTTP
// handshake; the interleaved command channel arrives on the paired POST.
func (s *Server) handleTunnelRequest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/x-rtsp-tunnelled")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
}

func (s *Server) acceptLoop(ctx context.Context) {
	go func() {
		<-ctx.Done()
		_ = s.listener.Close()
	}()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return
			}
			logger.Warn().Err(err).Msg("accept failed")
			continue
		}
		c := newClientConn(conn, s)
		go c.serve()
	}
}

// publicHost picks the address used in announced URLs: the bound host when
// the listener is pinned to one, else the first global unicast IPv4.
func (s *Server) publicHost() string {
	if addr, ok := s.listener.Addr().(*net.TCPAddr); ok && addr.IP != nil && !addr.IP.IsUnspecified() {
		return addr.IP.String()
	}
	addrs, err := net.InterfaceAddrs()
	if err == nil {
		for _, a := range addrs {
			ipNet, ok := a.(*net.IPNet)
			if !ok || ipNet.IP.IsLoopback() {
				continue
			}
			if ip4 := ipNet.IP.To4(); ip4 != nil {
				return ip4.String()
			}
		}
	}
	return "127.0.0.1"
}
