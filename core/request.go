package core

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

const UserAgent = "instanceupdater/1.0"

// Request is a fluent GET builder, grounded on the teacher's GetWithUA but
// expanded to the C1 fetcher contract: expected-status checking plus three
// terminal forms (bytes, JSON, stream-to-file), all cooperatively
// cancellable via ctx.
type Request struct {
	client *http.Client
	ctx    context.Context
	url    string
	status int
}

// Get starts a GET request against url using client (http.DefaultClient if
// nil), bound to ctx for cancellation.
func Get(ctx context.Context, client *http.Client, url string) *Request {
	if client == nil {
		client = http.DefaultClient
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return &Request{client: client, ctx: ctx, url: url, status: http.StatusOK}
}

// ExpectStatus sets the status code that must be returned for the request
// to be considered successful.
func (r *Request) ExpectStatus(code int) *Request {
	r.status = code
	return r
}

func (r *Request) do() (*http.Response, error) {
	req, err := http.NewRequestWithContext(r.ctx, http.MethodGet, r.url, nil)
	if err != nil {
		return nil, &NetworkError{URL: r.url, Cause: err}
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		if errors.Is(r.ctx.Err(), context.Canceled) {
			return nil, ErrCancelled
		}
		return nil, &NetworkError{URL: r.url, Cause: err}
	}
	if resp.StatusCode != r.status {
		resp.Body.Close()
		return nil, &HttpStatusError{URL: r.url, Code: resp.StatusCode}
	}
	return resp, nil
}

// Bytes reads the entire response body into memory.
func (r *Request) Bytes() ([]byte, error) {
	resp, err := r.do()
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(r.ctx.Err(), context.Canceled) {
			return nil, ErrCancelled
		}
		return nil, &NetworkError{URL: r.url, Cause: err}
	}
	return b, nil
}

// JSON decodes the response body into v.
func (r *Request) JSON(v interface{}) error {
	b, err := r.Bytes()
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, v); err != nil {
		return &DecodeError{URL: r.url, Cause: err}
	}
	return nil
}

// StreamTo writes the response body directly to path (creating its parent
// directory), with no temp file or rename of its own -- for callers such as
// the downloader that manage their own tmp-then-verify-then-rename sequence
// around a multi-source retry loop.
func (r *Request) StreamTo(path string) error {
	resp, err := r.do()
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	_, copyErr := io.Copy(f, resp.Body)
	closeErr := f.Close()

	if copyErr != nil || closeErr != nil {
		os.Remove(path)
		if errors.Is(r.ctx.Err(), context.Canceled) {
			return ErrCancelled
		}
		if copyErr != nil {
			return &NetworkError{URL: r.url, Cause: copyErr}
		}
		return closeErr
	}
	return nil
}
