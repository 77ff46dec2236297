// Package cli turns the raw argument vector into a types.Config. It never
// terminates the process: malformed input yields an error wrapping ErrUsage
// and the entrypoint decides what to do with it.
package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"rtspproxy_go/internal/config"
	"rtspproxy_go/internal/types"
)

// ErrUsage marks malformed command lines. No partial Config accompanies it.
var ErrUsage = errors.New("usage error")

// UsageString returns the one-line usage synopsis for progName.
func UsageString(progName string) string {
	return fmt.Sprintf("Usage: %s [-v|-V] [-p <rtspServer-port>] [-T <http-port>]"+
		" [-u <username> <password>] [-c <defaults-file>] <rtsp_url_definition_file>", progName)
}

// Parse consumes args (the argument vector without the program name).
// Options must precede the single required positional token, the definition
// file path. When both -v and -V are given the last one wins. A -c defaults
// file is applied before any flag, so flags always override it.
func Parse(args []string) (*types.Config, error) {
	cfg := types.NewConfig()

	if err := applyDefaultsFile(cfg, args); err != nil {
		return nil, err
	}

	i := 0
	for i < len(args) {
		opt := args[i]
		if !strings.HasPrefix(opt, "-") {
			break // the remaining tokens are positional
		}

		switch opt {
		case "-v":
			cfg.Verbosity = types.Verbose
		case "-V":
			cfg.Verbosity = types.VeryVerbose
		case "-p":
			port, err := portValue(args, i, opt)
			if err != nil {
				return nil, err
			}
			cfg.RTSPPort = port
			i++
		case "-T":
			port, err := portValue(args, i, opt)
			if err != nil {
				return nil, err
			}
			cfg.TunnelPort = port
			i++
		case "-u":
			if i+2 >= len(args) || flagLike(args[i+1]) || flagLike(args[i+2]) {
				return nil, fmt.Errorf("%w: -u requires <username> <password>", ErrUsage)
			}
			cfg.Username = args[i+1]
			cfg.Password = args[i+2]
			i += 2
		case "-c":
			if i+1 >= len(args) || flagLike(args[i+1]) {
				return nil, fmt.Errorf("%w: -c requires a file path", ErrUsage)
			}
			// already loaded by applyDefaultsFile, just consume the value
			i++
		default:
			return nil, fmt.Errorf("%w: unrecognized option %q", ErrUsage, opt)
		}
		i++
	}

	rest := args[i:]
	switch {
	case len(rest) == 0:
		return nil, fmt.Errorf("%w: missing definition file path", ErrUsage)
	case len(rest) > 1:
		return nil, fmt.Errorf("%w: unexpected argument %q", ErrUsage, rest[1])
	}
	cfg.DefsPath = rest[0]

	// credentials travel as a pair; a lone half can only come from a
	// defaults file and is rejected the same as on the command line
	if (cfg.Username == "") != (cfg.Password == "") {
		return nil, fmt.Errorf("%w: username and password must be given together", ErrUsage)
	}

	return cfg, nil
}

// applyDefaultsFile scans the leading options for -c and, when present,
// loads the referenced ini file into cfg before the flags are processed.
func applyDefaultsFile(cfg *types.Config, args []string) error {
	for i := 0; i < len(args) && strings.HasPrefix(args[i], "-"); i++ {
		switch args[i] {
		case "-c":
			if i+1 >= len(args) || flagLike(args[i+1]) {
				return fmt.Errorf("%w: -c requires a file path", ErrUsage)
			}
			if err := config.LoadIni(cfg, args[i+1]); err != nil {
				return fmt.Errorf("loading defaults file %q: %w", args[i+1], err)
			}
			return nil
		case "-p", "-T":
			i++ // skip the option value so the prefix check above stays on options
		case "-u":
			i += 2
		}
	}
	return nil
}

// portValue validates the token following a port-taking option: it must
// exist, must not look like another option, and must parse to 1..65535.
func portValue(args []string, i int, opt string) (int, error) {
	if i+1 >= len(args) || flagLike(args[i+1]) {
		return 0, fmt.Errorf("%w: %s requires a port number", ErrUsage, opt)
	}
	port, err := strconv.Atoi(args[i+1])
	if err != nil || port <= 0 || port > 65535 {
		return 0, fmt.Errorf("%w: %s requires a positive port number, got %q", ErrUsage, opt, args[i+1])
	}
	return port, nil
}

func flagLike(s string) bool {
	return strings.HasPrefix(s, "-")
}
