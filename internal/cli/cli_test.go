package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"rtspproxy_go/internal/types"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]string{"streams.txt"})
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if cfg.RTSPPort != types.DefaultRTSPPort {
		t.Errorf("expected default port %d, got %d", types.DefaultRTSPPort, cfg.RTSPPort)
	}
	if cfg.Verbosity != types.Quiet {
		t.Errorf("expected quiet verbosity, got %d", cfg.Verbosity)
	}
	if cfg.TunnelPort != 0 {
		t.Errorf("expected tunneling disabled, got port %d", cfg.TunnelPort)
	}
	if cfg.DefsPath != "streams.txt" {
		t.Errorf("expected defs path %q, got %q", "streams.txt", cfg.DefsPath)
	}
}

func TestParse_PortFlag(t *testing.T) {
	for _, port := range []int{1, 554, 8554, 65535} {
		t.Run(fmt.Sprintf("port_%d", port), func(t *testing.T) {
			cfg, err := Parse([]string{"-p", fmt.Sprintf("%d", port), "streams.txt"})
			if err != nil {
				t.Fatalf("Parse() failed: %v", err)
			}
			if cfg.RTSPPort != port {
				t.Errorf("expected port %d, got %d", port, cfg.RTSPPort)
			}
		})
	}
}

func TestParse_UsageErrors(t *testing.T) {
	cases := map[string][]string{
		"no arguments":        {},
		"only flags":          {"-v"},
		"unknown flag":        {"-x", "streams.txt"},
		"bare dash":           {"-", "streams.txt"},
		"p without value":     {"-p"},
		"p non-numeric":       {"-p", "abc", "streams.txt"},
		"p zero":              {"-p", "0", "streams.txt"},
		"p too large":         {"-p", "65536", "streams.txt"},
		"p followed by flag":  {"-p", "-v", "streams.txt"},
		"T without value":     {"-T", "streams.txt"},
		"u missing password":  {"-u", "admin", "streams.txt"},
		"u followed by flag":  {"-u", "admin", "-v", "streams.txt"},
		"extra positional":    {"streams.txt", "extra.txt"},
		"flag after position": {"streams.txt", "-v"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			cfg, err := Parse(args)
			if !errors.Is(err, ErrUsage) {
				t.Fatalf("expected ErrUsage, got cfg=%v err=%v", cfg, err)
			}
			if cfg != nil {
				t.Errorf("expected no partial config on usage error, got %+v", cfg)
			}
		})
	}
}

func TestParse_VerbosityLastWins(t *testing.T) {
	cfg, err := Parse([]string{"-v", "-V", "streams.txt"})
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if cfg.Verbosity != types.VeryVerbose {
		t.Errorf("expected -V to win, got %d", cfg.Verbosity)
	}

	cfg, err = Parse([]string{"-V", "-v", "streams.txt"})
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if cfg.Verbosity != types.Verbose {
		t.Errorf("expected -v to win, got %d", cfg.Verbosity)
	}
}

func TestParse_Credentials(t *testing.T) {
	cfg, err := Parse([]string{"-u", "admin", "secret", "-T", "8000", "streams.txt"})
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if cfg.Username != "admin" || cfg.Password != "secret" {
		t.Errorf("expected admin/secret, got %q/%q", cfg.Username, cfg.Password)
	}
	if cfg.TunnelPort != 8000 {
		t.Errorf("expected tunnel port 8000, got %d", cfg.TunnelPort)
	}
}

func TestParse_DefaultsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "defaults.ini")
	content := "[server]\nrtsp_port = 7554\ntunnel_port = 8000\n\n[auth]\nusername = admin\npassword = secret\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write defaults file: %v", err)
	}

	t.Run("values from file", func(t *testing.T) {
		cfg, err := Parse([]string{"-c", path, "streams.txt"})
		if err != nil {
			t.Fatalf("Parse() failed: %v", err)
		}
		if cfg.RTSPPort != 7554 {
			t.Errorf("expected port 7554 from defaults file, got %d", cfg.RTSPPort)
		}
		if cfg.Username != "admin" || cfg.Password != "secret" {
			t.Errorf("expected credentials from defaults file, got %q/%q", cfg.Username, cfg.Password)
		}
	})

	t.Run("flags override file", func(t *testing.T) {
		cfg, err := Parse([]string{"-c", path, "-p", "9554", "streams.txt"})
		if err != nil {
			t.Fatalf("Parse() failed: %v", err)
		}
		if cfg.RTSPPort != 9554 {
			t.Errorf("expected -p to override defaults file, got %d", cfg.RTSPPort)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Parse([]string{"-c", filepath.Join(dir, "nope.ini"), "streams.txt"})
		if err == nil {
			t.Fatal("expected error for missing defaults file")
		}
	})
}
