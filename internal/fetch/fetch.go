// Package fetch retrieves HTML pages over HTTP and decodes their bodies
// to UTF-8 according to the declared charset.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/html/charset"

	"github.com/schoolsby-tools/teacherscrape/internal/retry"
)

// DecodeError reports a response body that could not be decoded as text.
// It is never retried: a second attempt would fetch the same bytes.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode body of %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Fetcher retrieves pages through a shared HTTP client. One Fetcher is
// created per run and shared by all concurrent page fetches.
type Fetcher struct {
	client    *http.Client
	userAgent string
	retryCfg  retry.Config
}

// New creates a Fetcher around the shared client.
func New(client *http.Client, userAgent string, retryCfg retry.Config) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{
		client:    client,
		userAgent: userAgent,
		retryCfg:  retryCfg,
	}
}

// Page retrieves pageURL with the configured retry budget and returns the
// body decoded to UTF-8. Transport failures and retryable status codes
// consume attempts; decode failures abort immediately.
func (f *Fetcher) Page(ctx context.Context, pageURL string) (string, error) {
	var body string

	err := retry.WithRetry(ctx, f.retryCfg, func() error {
		log.Debug().Str("url", pageURL).Msg("Trying to get page")
		b, err := f.get(ctx, pageURL)
		if err != nil {
			return err
		}
		body = b
		return nil
	})
	if err != nil {
		return "", err
	}
	return body, nil
}

// PageOnce retrieves pageURL with a single attempt and no retry. Used for
// the directory page, where a failure is fatal to the whole run.
func (f *Fetcher) PageOnce(ctx context.Context, pageURL string) (string, error) {
	return f.get(ctx, pageURL)
}

func (f *Fetcher) get(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", retry.Permanent(fmt.Errorf("failed to create request: %w", err))
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "ru-RU,ru;q=0.9,en;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", retry.NewHTTPError(resp.StatusCode, resp.Status, pageURL)
	}

	reader, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", retry.Permanent(&DecodeError{URL: pageURL, Err: err})
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return "", classifyReadError(pageURL, err)
	}

	return string(body), nil
}

// classifyReadError separates transport failures, which are worth another
// attempt, from decode failures, which are not.
func classifyReadError(pageURL string, err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("failed to read body of %s: %w", pageURL, err)
	}
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("failed to read body of %s: %w", pageURL, err)
	}
	return retry.Permanent(&DecodeError{URL: pageURL, Err: err})
}
