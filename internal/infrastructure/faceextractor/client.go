// Package faceextractor talks to the external face detection and embedding service.
package faceextractor

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"appraiser-auth.backend/internal/domain/entities"
	domainerrors "appraiser-auth.backend/internal/domain/errors"
	"appraiser-auth.backend/pkg/logger"
)

const maxErrorBody = 4 << 10

type extractRequest struct {
	Image string `json:"image"`
}

type extractedFace struct {
	Embedding []float64  `json:"embedding"`
	BBox      [4]float64 `json:"bbox"`
	DetScore  float64    `json:"det_score"`
}

type extractResponse struct {
	Faces []extractedFace `json:"faces"`
}

// Client calls POST {baseURL}/extract and GET {baseURL}/health
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: &http.Transport{MaxIdleConnsPerHost: 10},
		},
	}
}

// Detect returns every face found in image.
// Transport failures, timeouts and 5xx responses surface as ErrServiceUnavailable.
func (c *Client) Detect(ctx context.Context, image []byte) ([]entities.DetectedFace, error) {
	payload, err := json.Marshal(extractRequest{Image: base64.StdEncoding.EncodeToString(image)})
	if err != nil {
		return nil, fmt.Errorf("encode extract request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/extract", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", domainerrors.ErrServiceUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn(ctx, "Face extractor request failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domainerrors.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		return nil, fmt.Errorf("%w: %s", domainerrors.ErrInvalidImage, readErrorBody(resp.Body))
	default:
		body := readErrorBody(resp.Body)
		logger.Warn(ctx, "Face extractor returned error status",
			zap.Int("status", resp.StatusCode),
			zap.String("body", body),
		)
		return nil, fmt.Errorf("%w: extractor status %d", domainerrors.ErrServiceUnavailable, resp.StatusCode)
	}

	var out extractResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: decode extractor response: %v", domainerrors.ErrServiceUnavailable, err)
	}

	faces := make([]entities.DetectedFace, 0, len(out.Faces))
	for i, f := range out.Faces {
		emb := entities.Embedding(f.Embedding)
		if err := emb.Validate(); err != nil {
			return nil, fmt.Errorf("%w: face %d: %v", domainerrors.ErrServiceUnavailable, i, err)
		}
		faces = append(faces, entities.DetectedFace{
			Embedding:  emb,
			BBox:       entities.BoundingBox(f.BBox),
			Confidence: f.DetScore,
		})
	}
	return faces, nil
}

// Health reports nil when the extractor answers its health probe with 2xx
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", http.NoBody)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", domainerrors.ErrServiceUnavailable, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domainerrors.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: health status %d", domainerrors.ErrServiceUnavailable, resp.StatusCode)
	}
	return nil
}

func readErrorBody(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, maxErrorBody))
	return strings.TrimSpace(string(b))
}
