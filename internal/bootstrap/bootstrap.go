// Package bootstrap obtains the one bound server handle, applying the
// port-fallback policy: the configured port first, then the standard RTSP
// port when the configured one differs and cannot be bound.
package bootstrap

import (
	"errors"
	"fmt"

	"rtspproxy_go/internal/engine"
	"rtspproxy_go/internal/logger"
	"rtspproxy_go/internal/types"
)

// ErrBind marks a total bootstrap failure: no attempted port could be bound.
var ErrBind = errors.New("unable to create RTSP server")

// Server asks the engine for a server on port. Operators commonly
// misconfigure a custom port, so a failed bind on a non-default port is
// retried once on 554 before giving up. The returned error wraps ErrBind and
// the engine's reason.
func Server(eng engine.Engine, port int, auth *engine.AuthDatabase) (engine.Server, error) {
	srv, err := eng.CreateServer(port, auth)
	if err == nil {
		return srv, nil
	}

	if port != types.DefaultRTSPPort {
		logger.Warn().Int("port", port).Err(err).
			Msgf("unable to create a RTSP server with port number %d, trying instead with the standard port number (%d)", port, types.DefaultRTSPPort)
		srv, err = eng.CreateServer(types.DefaultRTSPPort, auth)
		if err == nil {
			return srv, nil
		}
	}

	return nil, fmt.Errorf("%w: %v", ErrBind, err)
}
