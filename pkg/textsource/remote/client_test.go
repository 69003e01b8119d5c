package remote_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"

	"veggieplan/pkg/serrors"
	"veggieplan/pkg/textsource"
	"veggieplan/pkg/textsource/remote"

	"github.com/stretchr/testify/require"
)

// pngImage starts with the PNG signature, which is enough for type sniffing.
var pngImage = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

// rtFunc allows using a function as an http.RoundTripper.
type rtFunc func(*http.Request) (*http.Response, error)

func (f rtFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func newTestClient(fn rtFunc) *remote.Client {
	return remote.New(&http.Client{Transport: fn}, remote.Options{
		Endpoint:  "https://ocr.local/v1/recognize",
		Token:     "test-token",
		Languages: []string{"en", "ko"},
	})
}

func respond(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestClient_Recognize_Lines(t *testing.T) {
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "ocr.local", r.URL.Host)
		require.Equal(t, "/v1/recognize", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		var body struct {
			ImageBase64 string   `json:"image_base64"`
			Languages   []string `json:"languages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, base64.StdEncoding.EncodeToString(pngImage), body.ImageBase64)
		require.Equal(t, []string{"en", "ko"}, body.Languages)

		return respond(http.StatusOK, `{"lines":["Sugar","Whey"]}`), nil
	})

	got, err := c.Recognize(context.Background(), pngImage)
	require.NoError(t, err)
	require.Equal(t, []string{"Sugar", "Whey"}, got)
}

func TestClient_Recognize_TextFallback(t *testing.T) {
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		return respond(http.StatusOK, `{"text":"Ingredients:\r\nSugar\n\n  \nHoney\n"}`), nil
	})

	got, err := c.Recognize(context.Background(), pngImage)
	require.NoError(t, err)
	require.Equal(t, []string{"Ingredients:", "Sugar", "Honey"}, got)
}

func TestClient_Recognize_NoTokenHeader(t *testing.T) {
	c := remote.New(&http.Client{Transport: rtFunc(func(r *http.Request) (*http.Response, error) {
		require.Empty(t, r.Header.Get("Authorization"))

		return respond(http.StatusOK, `{"lines":[]}`), nil
	})}, remote.Options{Endpoint: "https://ocr.local/v1/recognize"})

	got, err := c.Recognize(context.Background(), pngImage)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestClient_Recognize_RejectsNonImages(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		calls.Add(1)

		return respond(http.StatusOK, `{"lines":[]}`), nil
	})

	for _, in := range [][]byte{nil, []byte("plain text, not an image")} {
		_, err := c.Recognize(context.Background(), in)
		require.Error(t, err)
		require.ErrorIs(t, err, textsource.ErrImageDecode)
	}
	require.Zero(t, calls.Load(), "engine must not be called for invalid uploads")
}

func TestClient_Recognize_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		kind   serrors.Kind
	}{
		{name: "bad request", status: http.StatusBadRequest, kind: textsource.ErrImageDecode},
		{name: "unsupported media", status: http.StatusUnsupportedMediaType, kind: textsource.ErrImageDecode},
		{name: "unprocessable", status: http.StatusUnprocessableEntity, kind: textsource.ErrImageDecode},
		{name: "rate limited", status: http.StatusTooManyRequests, kind: serrors.ErrRateLimited},
		{name: "server error", status: http.StatusInternalServerError, kind: textsource.ErrRecognitionFailure},
		{name: "unavailable", status: http.StatusServiceUnavailable, kind: textsource.ErrRecognitionFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(func(r *http.Request) (*http.Response, error) {
				return respond(tt.status, "nope"), nil
			})
			_, err := c.Recognize(context.Background(), pngImage)
			require.Error(t, err)
			require.ErrorIs(t, err, tt.kind)
		})
	}
}

func TestClient_Recognize_TransportError(t *testing.T) {
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	})

	_, err := c.Recognize(context.Background(), pngImage)
	require.Error(t, err)
	require.ErrorIs(t, err, textsource.ErrRecognitionFailure)
}

func TestClient_Recognize_BadJSON(t *testing.T) {
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		return respond(http.StatusOK, `{`), nil
	})

	_, err := c.Recognize(context.Background(), pngImage)
	require.Error(t, err)
	require.ErrorIs(t, err, textsource.ErrRecognitionFailure)
}

func TestClient_Recognize_WaitsForSlot(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	c := remote.New(&http.Client{Transport: rtFunc(func(r *http.Request) (*http.Response, error) {
		close(started)
		<-release

		return respond(http.StatusOK, `{"lines":["Salt"]}`), nil
	})}, remote.Options{Endpoint: "https://ocr.local/v1/recognize", MaxConcurrent: 1})

	done := make(chan error, 1)
	go func() {
		_, err := c.Recognize(context.Background(), pngImage)
		done <- err
	}()
	<-started

	// the only slot is taken, so a canceled caller gives up with a timeout
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Recognize(ctx, pngImage)
	require.ErrorIs(t, err, serrors.ErrTimeout)

	close(release)
	require.NoError(t, <-done)
}

func TestSplitLines(t *testing.T) {
	require.Equal(t, []string{}, remote.SplitLines(""))
	require.Equal(t, []string{" Whey "}, remote.SplitLines("\n Whey \n\n"))
}
