// Package fetch downloads remote video sources so URL inputs work the same
// as local files everywhere downstream.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Downloader fetches video files over HTTP with retries. Transport-level
// failures and server errors are retried with exponential backoff; client
// errors are treated as permanent.
type Downloader struct {
	client     *http.Client
	logger     *zap.Logger
	maxRetries int
	baseDelay  time.Duration
}

// NewDownloader creates a Downloader with a no-op logger.
func NewDownloader() *Downloader {
	return NewDownloaderWithLogger(zap.NewNop())
}

// NewDownloaderWithLogger creates a Downloader that logs each attempt.
func NewDownloaderWithLogger(logger *zap.Logger) *Downloader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Downloader{
		client:     newDownloadClient(),
		logger:     logger,
		maxRetries: 3,
		baseDelay:  time.Second,
	}
}

// newDownloadClient builds a client with connection-phase timeouts but no
// overall deadline, since large videos legitimately take minutes to pull.
func newDownloadClient() *http.Client {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
	}
	return &http.Client{Transport: transport}
}

// IsURL reports whether the input names a remote source rather than a local
// file.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// permanentError marks failures that more attempts cannot fix.
type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Download fetches the URL into destDir and returns the downloaded file's
// path. The filename comes from the URL path when it has one.
func (d *Downloader) Download(ctx context.Context, rawURL, destDir string) (string, error) {
	dest := filepath.Join(destDir, filenameFromURL(rawURL))

	var lastErr error
	for attempt := 1; attempt <= d.maxRetries; attempt++ {
		d.logger.Info("downloading video",
			zap.String("url", rawURL),
			zap.String("dest", dest),
			zap.Int("attempt", attempt))

		err := d.fetch(ctx, rawURL, dest)
		if err == nil {
			return dest, nil
		}

		var perm *permanentError
		if errors.As(err, &perm) {
			return "", fmt.Errorf("failed to download %s: %w", rawURL, perm.err)
		}

		lastErr = err
		d.logger.Warn("download attempt failed",
			zap.String("url", rawURL),
			zap.Int("attempt", attempt),
			zap.Error(err))

		if attempt == d.maxRetries {
			break
		}

		delay := d.baseDelay * (1 << (attempt - 1))
		select {
		case <-ctx.Done():
			return "", fmt.Errorf("download cancelled: %w (last error: %v)", ctx.Err(), lastErr)
		case <-time.After(delay):
		}
	}

	return "", fmt.Errorf("failed to download %s after %d attempts: %w", rawURL, d.maxRetries, lastErr)
}

// fetch performs a single download attempt, streaming the body straight to
// disk.
func (d *Downloader) fetch(ctx context.Context, rawURL, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return &permanentError{err: fmt.Errorf("invalid download URL: %w", err)}
	}
	req.Header.Set("Accept", "video/mp4,video/*,*/*;q=0.8")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode >= 500:
		return fmt.Errorf("server error: status %d", resp.StatusCode)
	default:
		return &permanentError{err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	f, err := os.Create(dest)
	if err != nil {
		return &permanentError{err: fmt.Errorf("failed to create %s: %w", dest, err)}
	}
	defer f.Close()

	written, err := io.Copy(f, resp.Body)
	if err != nil {
		os.Remove(dest)
		return fmt.Errorf("download interrupted after %d bytes: %w", written, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to finalize %s: %w", dest, err)
	}

	d.logger.Info("download complete",
		zap.String("dest", dest),
		zap.Int64("bytes", written))
	return nil
}

// filenameFromURL derives a local filename from the URL path, falling back
// to a generic name when the path gives nothing usable.
func filenameFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "download.mp4"
	}
	name := path.Base(u.Path)
	if name == "" || name == "." || name == "/" {
		return "download.mp4"
	}
	return name
}
