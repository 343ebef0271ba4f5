// Package mlserver calls the external leaf-image classifier over HTTP.
package mlserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/haiminh/plant-disease-assistant/internal/core/domain"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type predictRequest struct {
	ImageURL string `json:"image_url"`
}

type predictLabel struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

type predictResponse struct {
	Success bool         `json:"success"`
	Plant   predictLabel `json:"plant"`
	Disease predictLabel `json:"disease"`
	Error   string       `json:"error"`
}

func (c *Client) Predict(ctx context.Context, imageURL string) (domain.LeafPrediction, error) {
	body, err := json.Marshal(predictRequest{ImageURL: imageURL})
	if err != nil {
		return domain.LeafPrediction{}, fmt.Errorf("marshal predict request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return domain.LeafPrediction{}, fmt.Errorf("create predict request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.LeafPrediction{}, domain.WrapError(domain.ErrExternalService, "leaf prediction", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return domain.LeafPrediction{}, domain.WrapError(domain.ErrExternalService, "leaf prediction",
			fmt.Errorf("status %s: %s", resp.Status, strings.TrimSpace(string(raw))))
	}

	var out predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return domain.LeafPrediction{}, domain.WrapError(domain.ErrExternalService, "leaf prediction",
			fmt.Errorf("decode response: %w", err))
	}
	if !out.Success {
		message := out.Error
		if message == "" {
			message = "classifier reported failure"
		}
		return domain.LeafPrediction{}, domain.WrapError(domain.ErrExternalService, "leaf prediction",
			fmt.Errorf("%s", message))
	}

	return domain.LeafPrediction{
		Plant:   domain.Label{Name: out.Plant.Name, Confidence: out.Plant.Confidence},
		Disease: domain.Label{Name: out.Disease.Name, Confidence: out.Disease.Confidence},
	}, nil
}
