// Package live implements engine.Engine on top of plain TCP listeners: it
// binds RTSP servers, keeps the session registry, answers client requests
// and derives playback URLs.
package live

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/google/uuid"

	"rtspproxy_go/internal/engine"
)

type Engine struct {
	mu      sync.Mutex
	servers []*Server
}

func New() *Engine {
	return &Engine{}
}

// CreateServer binds a TCP listener on the given port. The bind error is
// returned untouched so the caller can report the underlying reason.
func (e *Engine) CreateServer(port int, auth *engine.AuthDatabase) (engine.Server, error) {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, err
	}

	srv := newServer(listener, auth)
	e.mu.Lock()
	e.servers = append(e.servers, srv)
	e.mu.Unlock()
	return srv, nil
}

func (e *Engine) CreateProxySession(s engine.Server, sourceURL, name string, opts engine.SessionOptions) (engine.Session, error) {
	if sourceURL == "" {
		return nil, errors.New("proxy session requires a source URL")
	}
	if _, ok := s.(*Server); !ok {
		return nil, errors.New("server handle was not created by this engine")
	}
	return &Session{
		id:        uuid.New().String(),
		sourceURL: sourceURL,
		name:      name,
		opts:      opts,
	}, nil
}

// RunEventLoop serves every created server until ctx is cancelled. With a
// background context this blocks for the process lifetime.
func (e *Engine) RunEventLoop(ctx context.Context) error {
	e.mu.Lock()
	servers := make([]*Server, len(e.servers))
	copy(servers, e.servers)
	e.mu.Unlock()

	var wg sync.WaitGroup
	for _, srv := range servers {
		wg.Add(1)
		go func(s *Server) {
			defer wg.Done()
			s.acceptLoop(ctx)
		}(srv)
	}

	<-ctx.Done()
	for _, srv := range servers {
		_ = srv.Close()
	}
	wg.Wait()
	return ctx.Err()
}
