// Package remote provides a textsource.Recognizer backed by an external OCR
// engine reachable over HTTP.
package remote

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"veggieplan/pkg/serrors"
	"veggieplan/pkg/textsource"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/sync/semaphore"
)

// DefaultMaxConcurrent is used when Options.MaxConcurrent is not positive.
const DefaultMaxConcurrent = 4

// Options configure the remote recognizer.
type Options struct {
	// Endpoint is the full URL of the engine's recognize endpoint.
	Endpoint string
	// Token is sent as a bearer token when set.
	Token string
	// Languages are passed to the engine as recognition hints.
	Languages []string
	// MaxConcurrent bounds the number of in-flight engine calls.
	MaxConcurrent int64
}

// Client sends images to the OCR engine. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	options    Options
	sem        *semaphore.Weighted
}

// Ensure Client conforms to the textsource.Recognizer interface at compile time.
var _ textsource.Recognizer = (*Client)(nil)

// New constructs a Client using httpClient for all engine calls.
func New(httpClient *http.Client, options Options) *Client {
	if options.MaxConcurrent <= 0 {
		options.MaxConcurrent = DefaultMaxConcurrent
	}

	return &Client{
		httpClient: httpClient,
		options:    options,
		sem:        semaphore.NewWeighted(options.MaxConcurrent),
	}
}

type recognizeReq struct {
	ImageBase64 string   `json:"image_base64"`
	Languages   []string `json:"languages,omitempty"`
}

type recognizeRes struct {
	Lines []string `json:"lines"`
	Text  string   `json:"text"`
}

// Recognize validates that image looks like an image, sends it to the engine
// and returns the recognized fragments.
func (c *Client) Recognize(ctx context.Context, image []byte) ([]string, error) {
	if len(image) == 0 {
		return nil, serrors.With(textsource.ErrImageDecode, "empty image")
	}
	if mt := mimetype.Detect(image); !strings.HasPrefix(mt.String(), "image/") {
		return nil, serrors.With(textsource.ErrImageDecode, "unsupported content type %s", mt.String())
	}

	bodyBytes, err := json.Marshal(recognizeReq{
		ImageBase64: base64.StdEncoding.EncodeToString(image),
		Languages:   c.options.Languages,
	})
	if err != nil {
		return nil, fmt.Errorf("could not marshal request: %w", err)
	}

	if err := c.sem.Acquire(ctx, 1); err != nil {
		return nil, serrors.Wrap(serrors.ErrTimeout, err, "waiting for recognition slot")
	}
	defer c.sem.Release(1)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.options.Endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.options.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.options.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, serrors.Wrap(textsource.ErrRecognitionFailure, err, "could not reach recognition engine")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, serrors.Wrap(textsource.ErrRecognitionFailure, err, "could not read engine response")
	}

	switch {
	case resp.StatusCode == http.StatusBadRequest,
		resp.StatusCode == http.StatusUnsupportedMediaType,
		resp.StatusCode == http.StatusUnprocessableEntity:
		return nil, serrors.With(textsource.ErrImageDecode, "engine rejected image: %s", strings.TrimSpace(string(b)))
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, serrors.With(serrors.ErrRateLimited, "engine rate limited: %s", strings.TrimSpace(string(b)))
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, serrors.With(textsource.ErrRecognitionFailure,
			"engine returned %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var rs recognizeRes
	if err := json.Unmarshal(b, &rs); err != nil {
		return nil, serrors.Wrap(textsource.ErrRecognitionFailure, err, "could not decode engine response")
	}

	if rs.Lines != nil {
		return rs.Lines, nil
	}

	return SplitLines(rs.Text), nil
}

// SplitLines splits free text into fragments, one per non-blank line. Lines
// are returned as-is; normalization is the classifier's job.
func SplitLines(text string) []string {
	out := make([]string, 0)
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
	}

	return out
}
