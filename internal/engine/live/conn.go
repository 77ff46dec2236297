package live

import (
	"bufio"
	"encoding/base64"
	"fmt"
	"io"
	"net"
	"net/url"
	"strings"

	"rtspproxy_go/internal/logger"
)

const allowedMethods = "OPTIONS, DESCRIBE, SETUP, PLAY, TEARDOWN"

// clientConn handles one downstream RTSP client. Request parsing follows
// RFC 2326 framing: request line, headers, blank line.
type clientConn struct {
	conn net.Conn
	srv  *Server
	rw   *bufio.ReadWriter
}

type request struct {
	method  string
	url     string
	headers map[string]string
}

func newClientConn(conn net.Conn, srv *Server) *clientConn {
	return &clientConn{
		conn: conn,
		srv:  srv,
		rw:   bufio.NewReadWriter(bufio.NewReader(conn), bufio.NewWriter(conn)),
	}
}

func (c *clientConn) serve() {
	defer c.conn.Close()
	logger.Debug().Str("remote", c.conn.RemoteAddr().String()).Msg("client connected")

	for {
		req, err := c.readRequest()
		if err != nil {
			if err != io.EOF {
				logger.Debug().Err(err).Msg("client connection closed")
			}
			return
		}
		logger.Trace().Str("method", req.method).Str("url", req.url).Msg("request")

		cseq := req.headers["cseq"]
		switch req.method {
		case "OPTIONS":
			c.reply(cseq, "200 OK", []string{"Public: " + allowedMethods}, "")
		case "DESCRIBE":
			c.handleDescribe(req, cseq)
		case "SETUP", "PLAY":
			// transport negotiation is owned by the relay machinery
			c.reply(cseq, "455 Method Not Valid in This State", nil, "")
		case "TEARDOWN":
			c.reply(cseq, "200 OK", nil, "")
			return
		default:
			c.reply(cseq, "405 Method Not Allowed", []string{"Allow: " + allowedMethods}, "")
		}
	}
}

func (c *clientConn) handleDescribe(req *request, cseq string) {
	if c.srv.auth != nil && !c.authorized(req) {
		header := fmt.Sprintf("WWW-Authenticate: Basic realm=%q", c.srv.auth.Realm)
		c.reply(cseq, "401 Unauthorized", []string{header}, "")
		return
	}

	sess, ok := c.srv.lookup(streamName(req.url))
	if !ok {
		c.reply(cseq, "404 Stream Not Found", nil, "")
		return
	}

	host := c.srv.publicHost()
	c.reply(cseq, "200 OK", []string{
		"Content-Base: " + c.srv.PublicURL(sess) + "/",
		"Content-Type: application/sdp",
	}, sess.sdp(host))
}

// authorized checks Basic credentials against the server's auth database.
func (c *clientConn) authorized(req *request) bool {
	value, ok := strings.CutPrefix(req.headers["authorization"], "Basic ")
	if !ok {
		return false
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(value))
	if err != nil {
		return false
	}
	username, password, ok := strings.Cut(string(decoded), ":")
	if !ok {
		return false
	}
	want, ok := c.srv.auth.Lookup(username)
	return ok && want == password
}

func (c *clientConn) readRequest() (*request, error) {
	line, err := c.readLine()
	if err != nil {
		return nil, err
	}
	for line == "" {
		if line, err = c.readLine(); err != nil {
			return nil, err
		}
	}

	parts := strings.SplitN(line, " ", 3)
	if len(parts) != 3 || !strings.HasPrefix(parts[2], "RTSP/") {
		return nil, fmt.Errorf("malformed request line %q", line)
	}
	req := &request{
		method:  parts[0],
		url:     parts[1],
		headers: make(map[string]string),
	}

	for {
		line, err := c.readLine()
		if err != nil {
			return nil, err
		}
		if line == "" {
			return req, nil
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("malformed header line %q", line)
		}
		req.headers[strings.ToLower(strings.TrimSpace(name))] = strings.TrimSpace(value)
	}
}

func (c *clientConn) readLine() (string, error) {
	line, err := c.rw.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (c *clientConn) reply(cseq, status string, headers []string, body string) {
	fmt.Fprintf(c.rw, "RTSP/1.0 %s\r\n", status)
	if cseq != "" {
		fmt.Fprintf(c.rw, "CSeq: %s\r\n", cseq)
	}
	for _, h := range headers {
		fmt.Fprintf(c.rw, "%s\r\n", h)
	}
	if body != "" {
		fmt.Fprintf(c.rw, "Content-Length: %d\r\n", len(body))
	}
	fmt.Fprintf(c.rw, "\r\n%s", body)
	_ = c.rw.Flush()
}

// streamName extracts the published name from a request URL: the path with
// its leading slash removed. Unparsable URLs fall back to the raw string.
func streamName(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return strings.TrimPrefix(raw, "/")
	}
	return strings.TrimPrefix(u.Path, "/")
}
