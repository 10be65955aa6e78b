package collaborator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Hadi891/CareerCompass/internal/domain"
)

// OllamaClient talks to a local Ollama server over its generate API.
// Two models are used: a parsing model for structured extraction and
// generation, and a chat model for conversational turns.
type OllamaClient struct {
	baseURL    string
	parseModel string
	chatModel  string
	timeout    time.Duration
	httpClient *http.Client
}

func NewOllamaClient(baseURL, parseModel, chatModel string, timeout time.Duration) *OllamaClient {
	return &OllamaClient{
		baseURL:    baseURL,
		parseModel: parseModel,
		chatModel:  chatModel,
		timeout:    timeout,
		httpClient: &http.Client{},
	}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

func (c *OllamaClient) Complete(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, c.parseModel, prompt)
}

func (c *OllamaClient) Chat(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, c.chatModel, prompt)
}

func (c *OllamaClient) generate(ctx context.Context, model, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(generateRequest{Model: model, Prompt: prompt, Stream: false})
	if err != nil {
		return "", fmt.Errorf("marshal generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: model %s exceeded %s", domain.ErrCollaboratorTimeout, model, c.timeout)
		}
		return "", fmt.Errorf("%w: %v", domain.ErrCollaboratorUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("%w: model server returned %d: %s",
			domain.ErrCollaboratorUnavailable, resp.StatusCode, bytes.TrimSpace(payload))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: undecodable model server reply: %v", domain.ErrCollaboratorUnavailable, err)
	}
	return out.Response, nil
}
