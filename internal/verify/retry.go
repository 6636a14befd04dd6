package verify

import (
	"context"
	"errors"
	"net"
	"net/http"
	"syscall"
	"time"
)

const (
	maxAttempts  = 5
	initialDelay = 500 * time.Millisecond
	maxDelay     = 8 * time.Second
)

// doRequest executes req with the bounded retry/backoff policy: up to
// maxAttempts tries, an initial delay of initialDelay doubled after every
// retryable failure and capped at maxDelay. Only HTTP 429/5xx responses and
// a fixed set of transient transport errors are retried; anything else
// returns immediately.
func doRequest(ctx context.Context, client *http.Client, req *http.Request) (*http.Response, error) {
	delay := initialDelay
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err == nil && !isRetryableStatus(resp.StatusCode) {
			return resp, nil
		}

		if err != nil {
			lastErr = err
			if !isRetryableTransportError(err) {
				return nil, err
			}
		} else {
			lastErr = statusError(resp.StatusCode)
			resp.Body.Close()
		}

		if attempt == maxAttempts {
			break
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}

		delay *= 2
		if delay > maxDelay {
			delay = maxDelay
		}
	}

	return nil, lastErr
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}

// isRetryableTransportError matches the fixed set of transient network
// failures worth retrying: connection resets, timeouts and temporary DNS
// lookup failures. Anything else (connection refused, malformed URL, TLS
// verification failure, ...) is treated as permanent.
func isRetryableTransportError(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return dnsErr.IsTemporary || dnsErr.Timeout()
	}
	if errors.Is(err, syscall.ECONNRESET) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

type httpStatusError struct {
	code int
}

func statusError(code int) error {
	return &httpStatusError{code: code}
}

func (e *httpStatusError) Error() string {
	return http.StatusText(e.code)
}
