package link

import (
	"context"
	"errors"
	"fmt"
	"time"

	"protocol-catalog/internal/config"
	"protocol-catalog/internal/domain/entity"
	domainService "protocol-catalog/internal/domain/service"
	"protocol-catalog/internal/pkg/apperrors"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// Compile-time check
var _ domainService.LinkChecker = (*Checker)(nil)

const (
	userAgent    = "protocolctl-linkcheck/1.0"
	maxRedirects = 5
)

// Checker implements the domainService.LinkChecker interface with fasthttp.
type Checker struct {
	client  *fasthttp.Client
	timeout time.Duration
	logger  *zap.Logger
}

// NewChecker creates a new link checker instance.
func NewChecker(cfg config.ValidatorConfig, logger *zap.Logger) *Checker {
	return NewCheckerWithClient(&fasthttp.Client{
		Name:        userAgent,
		ReadTimeout: cfg.GetLinkTimeout(),
	}, cfg.GetLinkTimeout(), logger)
}

// NewCheckerWithClient creates a checker around an existing fasthttp client.
func NewCheckerWithClient(client *fasthttp.Client, timeout time.Duration, logger *zap.Logger) *Checker {
	return &Checker{
		client:  client,
		timeout: timeout,
		logger:  logger.Named("LinkChecker"),
	}
}

// CheckLink probes url with HEAD, falling back to GET when the server rejects
// HEAD. A non-nil error always comes with Reachable=false in the status.
func (c *Checker) CheckLink(ctx context.Context, url entity.LinkURL) (entity.LinkStatus, error) {
	startTime := time.Now()
	status := entity.LinkStatus{URL: url}

	code, err := c.do(ctx, fasthttp.MethodHead, url)
	if err == nil && (code == fasthttp.StatusMethodNotAllowed || code == fasthttp.StatusNotImplemented) {
		c.logger.Debug("HEAD rejected, retrying with GET", zap.String("url", url.String()), zap.Int("statusCode", code))
		code, err = c.do(ctx, fasthttp.MethodGet, url)
	}
	status.Latency = time.Since(startTime)
	status.StatusCode = code

	if err != nil {
		status.Reason = err.Error()
		return status, err
	}

	if code >= fasthttp.StatusBadRequest {
		c.logger.Debug("Link returned error status", zap.String("url", url.String()), zap.Int("statusCode", code))
		status.Reason = fmt.Sprintf("http status %d", code)
		return status, fmt.Errorf("%w: %s returned http status %d",
			apperrors.ErrExternalServiceFailure, url, code,
		)
	}

	status.Reachable = true
	c.logger.Debug("Link is reachable",
		zap.String("url", url.String()),
		zap.Int("statusCode", code),
		zap.Duration("latency", status.Latency),
	)
	return status, nil
}

// do sends one request and returns the final status code after redirects.
func (c *Checker) do(ctx context.Context, method string, url entity.LinkURL) (int, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url.String())
	req.Header.SetMethod(method)
	// only the status line matters
	resp.SkipBody = true

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining > 0 && (timeout <= 0 || remaining < timeout) {
			timeout = remaining
		}
	}
	if timeout > 0 {
		req.SetTimeout(timeout)
	}

	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("%w: %s %s: %v", apperrors.ErrTimeout, method, url, err)
	}

	err := c.client.DoRedirects(req, resp, maxRedirects)
	if err != nil {
		if errors.Is(err, fasthttp.ErrTimeout) {
			c.logger.Debug("Link check timed out",
				zap.String("url", url.String()),
				zap.Duration("timeout", timeout),
				zap.Error(err),
			)
			return 0, fmt.Errorf("%w: %s %s timed out after %v",
				apperrors.ErrTimeout, method, url, timeout,
			)
		}
		c.logger.Debug("Link check request failed", zap.String("url", url.String()), zap.Error(err))
		return 0, fmt.Errorf("%w: %s %s failed: %v",
			apperrors.ErrExternalServiceFailure, method, url, err,
		)
	}

	return resp.StatusCode(), nil
}
