package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/intakehq/document-router-api/internal/utils"
)

// ZeroShot ranks candidate labels against a piece of text, best first.
type ZeroShot interface {
	Rank(ctx context.Context, text string, labels []string) ([]string, error)
}

type hfZeroShot struct {
	apiKey string
	model  string
	logger *utils.Logger
	client *http.Client
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfParameters struct {
	CandidateLabels []string `json:"candidate_labels"`
}

type hfResponse struct {
	Labels []string  `json:"labels"`
	Scores []float64 `json:"scores"`
	Error  string    `json:"error,omitempty"`
}

// NewHFZeroShot returns a zero-shot classifier backed by the Hugging Face
// inference API. It fails when no API key is configured.
func NewHFZeroShot(apiKey, model string, logger *utils.Logger) (ZeroShot, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("HF_API_KEY is not set")
	}

	return &hfZeroShot{
		apiKey: apiKey,
		model:  model,
		logger: logger,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

func (z *hfZeroShot) Rank(ctx context.Context, text string, labels []string) ([]string, error) {
	// Truncate text if too long (keep first 4000 characters)
	if len(text) > 4000 {
		text = text[:4000] + "..."
	}

	reqBody := hfRequest{
		Inputs: text,
		Parameters: hfParameters{
			CandidateLabels: labels,
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := "https://api-inference.huggingface.co/models/" + z.model
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+z.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := z.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		z.logger.Error("Inference API error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("inference API returned status %d", resp.StatusCode)
	}

	var hfResp hfResponse
	if err := json.Unmarshal(body, &hfResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if hfResp.Error != "" {
		return nil, fmt.Errorf("inference API error: %s", hfResp.Error)
	}

	return hfResp.Labels, nil
}
