package loader

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"time"

	// Image formats understood by the fetcher.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	_ "github.com/BrandonKowalski/certifiable" // Add CA certificates to the default trust store
)

const (
	DefaultFetchTimeout       = 15 * time.Second
	DefaultMaxBytes     int64 = 16 << 20
	userAgent                 = "spotifyapp/1.0"
)

// HTTPFetcher downloads images over HTTP(S) and decodes them.
type HTTPFetcher struct {
	Client   *http.Client
	MaxBytes int64
}

// NewHTTPFetcher creates a fetcher with the given timeout and body size
// limit. Zero values select the defaults.
func NewHTTPFetcher(timeout time.Duration, maxBytes int64) *HTTPFetcher {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &HTTPFetcher{
		Client:   &http.Client{Timeout: timeout},
		MaxBytes: maxBytes,
	}
}

// Fetch implements Fetcher. Every failure is a *ResourceLoadError.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (*Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, NewResourceLoadError(rawURL, "fetch", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "image/*")

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, NewResourceLoadError(rawURL, "fetch", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, NewResourceLoadError(rawURL, "status", fmt.Errorf("unexpected status %s", resp.Status))
	}

	maxBytes := f.MaxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes+1))
	if err != nil {
		return nil, NewResourceLoadError(rawURL, "read", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, NewResourceLoadError(rawURL, "read", ErrTooLarge)
	}

	return Decode(rawURL, data)
}

// Decode turns raw bytes into an Image.
func Decode(rawURL string, data []byte) (*Image, error) {
	decoded, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, NewResourceLoadError(rawURL, "decode", err)
	}

	bounds := decoded.Bounds()
	return &Image{
		URL:     rawURL,
		Data:    data,
		Format:  format,
		Width:   bounds.Dx(),
		Height:  bounds.Dy(),
		Decoded: decoded,
	}, nil
}
