package loader

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 0x1D, G: 0xB9, B: 0x54, A: 0xFF})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestHTTPFetcher(t *testing.T) {
	cover := pngBytes(t, 4, 3)

	mux := http.NewServeMux()
	mux.HandleFunc("/cover.png", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(cover)
	})
	mux.HandleFunc("/text", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not an image"))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	fetcher := NewHTTPFetcher(0, 0)

	t.Run("decodes png", func(t *testing.T) {
		img, err := fetcher.Fetch(context.Background(), server.URL+"/cover.png")
		require.NoError(t, err)
		assert.Equal(t, "png", img.Format)
		assert.Equal(t, 4, img.Width)
		assert.Equal(t, 3, img.Height)
		assert.Equal(t, cover, img.Data)
	})

	tests := []struct {
		name     string
		fetcher  *HTTPFetcher
		path     string
		wantOp   string
		wantBase error
	}{
		{name: "missing", fetcher: fetcher, path: "/missing.png", wantOp: "status"},
		{name: "undecodable", fetcher: fetcher, path: "/text", wantOp: "decode"},
		{name: "too large", fetcher: NewHTTPFetcher(0, 16), path: "/cover.png", wantOp: "read", wantBase: ErrTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.fetcher.Fetch(context.Background(), server.URL+tt.path)
			require.Error(t, err)

			var loadErr *ResourceLoadError
			require.True(t, errors.As(err, &loadErr))
			assert.Equal(t, tt.wantOp, loadErr.Op)
			if tt.wantBase != nil {
				assert.ErrorIs(t, err, tt.wantBase)
			}
		})
	}
}

func TestHTTPFetcherHonoursCancellation(t *testing.T) {
	block := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer server.Close()
	defer close(block)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewHTTPFetcher(0, 0).Fetch(ctx, server.URL)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
