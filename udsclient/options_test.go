package udsclient

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/LoveWonYoung/udskit/uds"
)

func writeOptionsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "client.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadRequestOptions(t *testing.T) {
	path := writeOptionsFile(t, `
timeout = "2s"
max_retries = 5
retry_delay = "250ms"
response_pending_timeout = "10s"
standard_version = "2013"
`)
	opts, err := LoadRequestOptions(path)
	if err != nil {
		t.Fatal(err)
	}
	if opts.Timeout != 2*time.Second {
		t.Errorf("Timeout = %v", opts.Timeout)
	}
	if opts.MaxRetries != 5 {
		t.Errorf("MaxRetries = %d", opts.MaxRetries)
	}
	if opts.RetryDelay != 250*time.Millisecond {
		t.Errorf("RetryDelay = %v", opts.RetryDelay)
	}
	if opts.ResponsePendingTimeout != 10*time.Second {
		t.Errorf("ResponsePendingTimeout = %v", opts.ResponsePendingTimeout)
	}
	if opts.StandardVersion != uds.Standard2013 {
		t.Errorf("StandardVersion = %v", opts.StandardVersion)
	}
}

func TestLoadRequestOptionsPartial(t *testing.T) {
	path := writeOptionsFile(t, `max_retries = 1`)
	opts, err := LoadRequestOptions(path)
	if err != nil {
		t.Fatal(err)
	}
	if opts.MaxRetries != 1 {
		t.Errorf("MaxRetries = %d", opts.MaxRetries)
	}

	// keys absent from the file keep their defaults
	def := DefaultRequestOptions()
	if opts.Timeout != def.Timeout {
		t.Errorf("Timeout = %v, want default %v", opts.Timeout, def.Timeout)
	}
	if opts.StandardVersion != def.StandardVersion {
		t.Errorf("StandardVersion = %v, want default %v", opts.StandardVersion, def.StandardVersion)
	}
}

func TestLoadRequestOptionsErrors(t *testing.T) {
	cases := map[string]string{
		"bad duration":         `timeout = "soon"`,
		"negative retries":     `max_retries = -1`,
		"bad standard version": `standard_version = "1999"`,
		"bad retry delay":      `retry_delay = "often"`,
		"bad pending duration": `response_pending_timeout = "later"`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := writeOptionsFile(t, content)
			if _, err := LoadRequestOptions(path); err == nil {
				t.Errorf("content %q should fail", content)
			}
		})
	}

	if _, err := LoadRequestOptions(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("missing file should fail")
	}
}

func TestParseStandardVersion(t *testing.T) {
	cases := map[string]uds.StandardVersion{
		"pre-2006": uds.StandardPre2006,
		"2006":     uds.Standard2006,
		"2013":     uds.Standard2013,
		"2020":     uds.Standard2020,
		"":         uds.Standard2020,
		" 2013 ":   uds.Standard2013,
	}
	for in, want := range cases {
		got, err := parseStandardVersion(in)
		if err != nil {
			t.Errorf("parseStandardVersion(%q): %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("parseStandardVersion(%q) = %v, want %v", in, got, want)
		}
	}

	if _, err := parseStandardVersion("iso14229"); err == nil {
		t.Error("unknown version string should fail")
	}
}
