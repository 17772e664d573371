package udsclient

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/LoveWonYoung/udskit/uds"
)

const (
	defaultTimeout                = 500 * time.Millisecond
	defaultMaxRetries             = 3
	defaultRetryDelay             = 100 * time.Millisecond
	defaultResponsePendingTimeout = 5000 * time.Millisecond
)

// RequestOptions configure the request/response cycle.
type RequestOptions struct {
	// Timeout bounds one send/receive cycle.
	Timeout time.Duration
	// MaxRetries applies only to retryable negative responses.
	MaxRetries int
	// RetryDelay is the pause between retries.
	RetryDelay time.Duration
	// ResponsePendingTimeout replaces the deadline after a ResponsePending
	// negative response.
	ResponsePendingTimeout time.Duration
	// StandardVersion selects the record shapes used when interpreting
	// responses.
	StandardVersion uds.StandardVersion
}

// DefaultRequestOptions returns the defaults used when no config is given.
func DefaultRequestOptions() RequestOptions {
	return RequestOptions{
		Timeout:                defaultTimeout,
		MaxRetries:             defaultMaxRetries,
		RetryDelay:             defaultRetryDelay,
		ResponsePendingTimeout: defaultResponsePendingTimeout,
		StandardVersion:        uds.LatestStandard(),
	}
}

type fileOptions struct {
	Timeout                string `toml:"timeout"`
	MaxRetries             int    `toml:"max_retries"`
	RetryDelay             string `toml:"retry_delay"`
	ResponsePendingTimeout string `toml:"response_pending_timeout"`
	StandardVersion        string `toml:"standard_version"`
}

// LoadRequestOptions reads request options from a TOML file, with missing
// keys keeping their default value.
func LoadRequestOptions(path string) (RequestOptions, error) {
	opts := DefaultRequestOptions()

	var raw fileOptions
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return RequestOptions{}, fmt.Errorf("load client options: %w", err)
	}

	if meta.IsDefined("timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.Timeout))
		if err != nil {
			return RequestOptions{}, fmt.Errorf("parse timeout: %w", err)
		}
		opts.Timeout = d
	}

	if meta.IsDefined("max_retries") {
		if raw.MaxRetries < 0 {
			return RequestOptions{}, fmt.Errorf("max_retries must not be negative, got %d", raw.MaxRetries)
		}
		opts.MaxRetries = raw.MaxRetries
	}

	if meta.IsDefined("retry_delay") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.RetryDelay))
		if err != nil {
			return RequestOptions{}, fmt.Errorf("parse retry_delay: %w", err)
		}
		opts.RetryDelay = d
	}

	if meta.IsDefined("response_pending_timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.ResponsePendingTimeout))
		if err != nil {
			return RequestOptions{}, fmt.Errorf("parse response_pending_timeout: %w", err)
		}
		opts.ResponsePendingTimeout = d
	}

	if meta.IsDefined("standard_version") {
		v, err := parseStandardVersion(raw.StandardVersion)
		if err != nil {
			return RequestOptions{}, err
		}
		opts.StandardVersion = v
	}

	return opts, nil
}

func parseStandardVersion(s string) (uds.StandardVersion, error) {
	switch strings.TrimSpace(s) {
	case "pre-2006":
		return uds.StandardPre2006, nil
	case "2006":
		return uds.Standard2006, nil
	case "2013":
		return uds.Standard2013, nil
	case "2020", "":
		return uds.Standard2020, nil
	}
	return 0, fmt.Errorf("unknown standard version %q", s)
}
