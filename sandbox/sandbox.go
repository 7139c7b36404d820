// Package sandbox is the HTTP client for the Sandbox Executor: an
// external service that runs an untrusted program under a
// resource-bounded sandbox and reports its exit code and captured
// stdio.
//
// Payload packaging (tar + gzip + base64) is built on archive/tar,
// compress/gzip, and encoding/base64 from the standard library —
// justified in DESIGN.md.
package sandbox

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"pdarena.dev/service/apperr"
	"pdarena.dev/service/iox"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultRetries is the number of retry attempts on transient failure.
const DefaultRetries = 2

// MaxTimeSeconds bounds a single round's sandboxed execution wall-clock
// time.
const MaxTimeSeconds = 1.0

// Config configures the sandbox client.
type Config struct {
	ServiceURL string
	Timeout    time.Duration
	Retries    int
}

// Client invokes the Sandbox Executor service over HTTP.
type Client struct {
	config Config
	http   *http.Client
}

// New creates a sandbox client. Returns an error if ServiceURL is empty.
func New(cfg Config) (*Client, error) {
	if cfg.ServiceURL == "" {
		return nil, errors.New("sandbox: ServiceURL is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Retries < 0 {
		cfg.Retries = DefaultRetries
	}
	return &Client{config: cfg, http: &http.Client{Timeout: cfg.Timeout}}, nil
}

// runCodeRequest is the wire request to the external Sandbox Executor.
type runCodeRequest struct {
	Base64TarGz string  `json:"base64_tar_gz"`
	MaxTimeS    float64 `json:"max_time_s"`
}

// wireRunCodeResponse is the wire response from the external Sandbox
// Executor: stdout/stderr are base64-encoded on the wire and decoded
// into RunCodeResponse before being returned to the caller.
type wireRunCodeResponse struct {
	Stdout   string `json:"stdout"`
	Stderr   string `json:"stderr"`
	ExitCode *int64 `json:"exit_code"`
}

// RunCodeResponse is the decoded result of a sandboxed run. ExitCode is
// nil when the sandbox could not determine one (e.g. it was killed).
type RunCodeResponse struct {
	Stdout   string
	Stderr   string
	ExitCode *int64
}

// PackFiles tars and gzips files (name -> content), then base64-encodes
// the result for submission to the Sandbox Executor.
func PackFiles(files map[string]string) (string, error) {
	var tarBuf bytes.Buffer
	gz := gzip.NewWriter(&tarBuf)
	tw := tar.NewWriter(gz)

	for name, content := range files {
		hdr := &tar.Header{
			Name: name,
			Mode: 0o644,
			Size: int64(len(content)),
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return "", fmt.Errorf("sandbox: write tar header for %s: %w", name, err)
		}
		if _, err := tw.Write([]byte(content)); err != nil {
			return "", fmt.Errorf("sandbox: write tar body for %s: %w", name, err)
		}
	}
	if err := tw.Close(); err != nil {
		return "", fmt.Errorf("sandbox: close tar writer: %w", err)
	}
	if err := gz.Close(); err != nil {
		return "", fmt.Errorf("sandbox: close gzip writer: %w", err)
	}

	return base64.StdEncoding.EncodeToString(tarBuf.Bytes()), nil
}

// Run submits the packed files for sandboxed execution and returns the
// captured result. Retries on network failure and 5xx responses with
// exponential backoff; 4xx responses are non-retriable.
func (c *Client) Run(ctx context.Context, files map[string]string) (RunCodeResponse, error) {
	payload, err := PackFiles(files)
	if err != nil {
		return RunCodeResponse{}, apperr.Wrap(apperr.InternalServerError, err)
	}

	body, err := json.Marshal(runCodeRequest{Base64TarGz: payload, MaxTimeS: MaxTimeSeconds})
	if err != nil {
		return RunCodeResponse{}, apperr.Wrap(apperr.InternalServerError, err)
	}

	attempts := 1 + c.config.Retries
	var lastErr error
	for i := range attempts {
		if err := ctx.Err(); err != nil {
			return RunCodeResponse{}, apperr.Wrap(apperr.Network, err)
		}
		if i > 0 {
			backoff := time.Duration(1<<uint(i-1)) * 500 * time.Millisecond
			select {
			case <-ctx.Done():
				return RunCodeResponse{}, apperr.Wrap(apperr.Network, ctx.Err())
			case <-time.After(backoff):
			}
		}

		resp, err := c.doRequest(ctx, body)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.Code >= 400 && statusErr.Code < 500 {
			break
		}
	}
	return RunCodeResponse{}, apperr.Wrap(apperr.Network, lastErr)
}

// StatusError is returned for non-2xx HTTP responses from the sandbox
// service, distinguishing retriable (5xx) from non-retriable (4xx).
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("sandbox: unexpected status %d", e.Code)
}

func (c *Client) doRequest(ctx context.Context, body []byte) (RunCodeResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.ServiceURL+"/run_code", bytes.NewReader(body))
	if err != nil {
		return RunCodeResponse{}, fmt.Errorf("sandbox: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return RunCodeResponse{}, fmt.Errorf("sandbox: request failed: %w", err)
	}
	defer iox.DiscardClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return RunCodeResponse{}, &StatusError{Code: resp.StatusCode}
	}

	var wire wireRunCodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return RunCodeResponse{}, fmt.Errorf("sandbox: decode response: %w", err)
	}

	stdout, err := decodeBase64(wire.Stdout)
	if err != nil {
		return RunCodeResponse{}, fmt.Errorf("sandbox: decode stdout: %w", err)
	}
	stderr, err := decodeBase64(wire.Stderr)
	if err != nil {
		return RunCodeResponse{}, fmt.Errorf("sandbox: decode stderr: %w", err)
	}

	return RunCodeResponse{Stdout: stdout, Stderr: stderr, ExitCode: wire.ExitCode}, nil
}

// decodeBase64 decodes s, the empty string decoding to the empty
// string rather than an error.
func decodeBase64(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	decoded, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

// Close releases idle client connections.
func (c *Client) Close() error {
	c.http.CloseIdleConnections()
	return nil
}
