package live

import (
	"fmt"
	"strings"

	"rtspproxy_go/internal/engine"
)

// Session is one proxied stream: an upstream source URL published under a
// local name. The zero name is legal; such a session is reachable at the
// server's URL prefix itself.
type Session struct {
	id        string
	sourceURL string
	name      string
	opts      engine.SessionOptions
}

func (s *Session) ID() string        { return s.id }
func (s *Session) SourceURL() string { return s.sourceURL }
func (s *Session) Name() string      { return s.name }

// sdp renders the minimal session description announced to clients before
// the relay is negotiated with the back end.
func (s *Session) sdp(host string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "v=0\r\n")
	fmt.Fprintf(&b, "o=- %s 1 IN IP4 %s\r\n", strings.ReplaceAll(s.id, "-", ""), host)
	fmt.Fprintf(&b, "s=%s\r\n", s.name)
	fmt.Fprintf(&b, "i=proxied from %s\r\n", s.sourceURL)
	fmt.Fprintf(&b, "t=0 0\r\n")
	fmt.Fprintf(&b, "a=control:*\r\n")
	return b.String()
}
