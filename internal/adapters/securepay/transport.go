package securepay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kevin07696/securepay-periodic/internal/adapters/ports"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const contentTypeXML = "text/xml; charset=UTF-8"

var errMalformedURL = errors.New("endpoint must be an absolute http(s) url")

// httpTransport posts one XML document per call. It holds no per-call state.
type httpTransport struct {
	client           ports.HTTPClient
	limiter          *rate.Limiter // nil when unlimited
	maxResponseBytes int64
	logger           *zap.Logger
}

func newHTTPTransport(client ports.HTTPClient, config *PeriodicConfig, logger *zap.Logger) *httpTransport {
	t := &httpTransport{
		client:           client,
		maxResponseBytes: config.MaxResponseBytes,
		logger:           logger,
	}
	if config.RequestsPerSecond > 0 {
		burst := config.Burst
		if burst < 1 {
			burst = 1
		}
		t.limiter = rate.NewLimiter(rate.Limit(config.RequestsPerSecond), burst)
	}
	if t.maxResponseBytes <= 0 {
		t.maxResponseBytes = 1 << 20
	}
	return t
}

// send posts payload to endpoint and returns the response body
func (t *httpTransport) send(ctx context.Context, endpoint, payload string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", &TransportError{URL: endpoint, Err: err}
	}
	if u.Host == "" || (u.Scheme != "https" && u.Scheme != "http") {
		return "", &TransportError{URL: endpoint, Err: errMalformedURL}
	}

	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return "", &TransportError{URL: endpoint, Err: fmt.Errorf("rate limit wait: %w", err)}
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(payload))
	if err != nil {
		return "", &TransportError{URL: endpoint, Err: fmt.Errorf("failed to create HTTP request: %w", err)}
	}
	httpReq.Header.Set("Content-Type", contentTypeXML)
	httpReq.Header.Set("Accept", "text/xml")

	startTime := time.Now()
	httpResp, err := t.client.Do(httpReq)
	if err != nil {
		return "", &TransportError{URL: endpoint, Err: fmt.Errorf("failed to send request: %w", err)}
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(httpResp.Body, t.maxResponseBytes))
	if err != nil {
		return "", &TransportError{URL: endpoint, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	t.logger.Debug("Received SecurePay response",
		zap.Int("http_status", httpResp.StatusCode),
		zap.Int("bytes", len(body)),
		zap.Duration("elapsed", time.Since(startTime)),
	)

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return "", &TransportError{URL: endpoint, HTTPStatus: httpResp.StatusCode}
	}

	return string(body), nil
}
