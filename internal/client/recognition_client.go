package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"plate-service/internal/config"
)

// PlateDetection is one observed plate as reported by the external
// camera/ML recognition service. Text is raw OCR output; normalization
// and matching happen on our side.
type PlateDetection struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	CountryID  string    `json:"country_id"`
	CameraID   string    `json:"camera_id"`
	Confidence float64   `json:"confidence"`
	DetectedAt time.Time `json:"detected_at"`
}

type detectionsResponse struct {
	Data []PlateDetection `json:"data"`
}

type RecognitionClient struct {
	baseURL       string
	internalToken string
	httpClient    *http.Client
}

func NewRecognitionClient(cfg *config.Config) *RecognitionClient {
	return &RecognitionClient{
		baseURL:       cfg.ExternalServices.RecognitionServiceURL,
		internalToken: cfg.ExternalServices.RecognitionInternalToken,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// GetRecentDetections fetches the detections observed since the given time,
// optionally for a single camera. Network errors are retried with a short
// backoff; HTTP-level failures are not.
func (c *RecognitionClient) GetRecentDetections(ctx context.Context, since time.Time, cameraID string) ([]PlateDetection, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("recognition service URL is not configured")
	}

	u, err := url.Parse(c.baseURL + "/internal/recognitions")
	if err != nil {
		return nil, fmt.Errorf("invalid recognition service URL: %w", err)
	}

	q := u.Query()
	q.Set("since", since.Format(time.RFC3339))
	if cameraID != "" {
		q.Set("camera_id", cameraID)
	}
	u.RawQuery = q.Encode()

	var resp *http.Response
	var lastErr error
	maxRetries := 3
	for attempt := 0; attempt < maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		if c.internalToken != "" {
			req.Header.Set("X-Internal-Token", c.internalToken)
		}

		resp, lastErr = c.httpClient.Do(req)
		if lastErr == nil {
			break
		}
		if attempt == maxRetries-1 {
			return nil, fmt.Errorf("failed to execute request after %d attempts: %w", maxRetries, lastErr)
		}
		time.Sleep(time.Duration(attempt+1) * 500 * time.Millisecond)
	}
	if resp == nil {
		return nil, fmt.Errorf("failed to execute request: %w", lastErr)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("recognition service returned status %d: %s", resp.StatusCode, string(body))
	}

	var response detectionsResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return response.Data, nil
}
