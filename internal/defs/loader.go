// Package defs streams the definition file and registers one proxy session
// per well-formed line, in file order.
package defs

import (
	"bufio"
	"os"
	"strings"
	"unicode"

	"rtspproxy_go/internal/engine"
	"rtspproxy_go/internal/logger"
)

// Loader registers proxy sessions parsed from a definition file. It holds no
// reference to a session after handing it to the server.
type Loader struct {
	eng  engine.Engine
	srv  engine.Server
	opts engine.SessionOptions
}

func New(eng engine.Engine, srv engine.Server, opts engine.SessionOptions) *Loader {
	return &Loader{eng: eng, srv: srv, opts: opts}
}

// Load reads the file at path and registers a session per entry, returning
// the number registered. An unopenable file is not fatal: the server simply
// comes up with zero sessions.
func (l *Loader) Load(path string) int {
	f, err := os.Open(path)
	if err != nil {
		logger.Warn().Str("path", path).Err(err).Msg("cannot open definition file, no streams will be proxied")
		return 0
	}
	defer f.Close()

	count := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		sourceURL, name := splitEntry(line)
		if name == "" {
			logger.Debug().Str("line", line).Msg("definition line has no stream name")
		}

		sess, err := l.eng.CreateProxySession(l.srv, sourceURL, name, l.opts)
		if err != nil {
			logger.Error().Str("source", sourceURL).Str("name", name).Err(err).Msg("failed to create proxy session")
			continue
		}
		l.srv.Register(sess)
		count++

		logger.Info().
			Str("source", sourceURL).
			Str("play_url", l.srv.PublicURL(sess)).
			Msg("RTSP stream, proxying")
	}
	if err := scanner.Err(); err != nil {
		logger.Warn().Str("path", path).Err(err).Msg("error while reading definition file")
	}

	return count
}

// splitEntry splits a definition line at its first whitespace character.
// The published name is everything after that single character and may
// itself contain whitespace. A line with no separator yields an empty name.
func splitEntry(line string) (sourceURL, name string) {
	i := strings.IndexFunc(line, unicode.IsSpace)
	if i < 0 {
		return line, ""
	}
	return line[:i], line[i+1:]
}
