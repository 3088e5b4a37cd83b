package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"app/internal/model"
)

const (
	chatCompletionEndpoint = "/chat/completions"
	generationTimeout      = 60 * time.Second

	slideSystemPrompt = `You are a presentation writer. Output JSON only, in the shape ` +
		`{"slides": [{"title": "...", "content": {"description": "...", "bulletPoints": ["..."]}}]}. ` +
		`Keep each slide short and punchy.`
)

// SlideGenerator produces an ordered slide deck for a topic.
type SlideGenerator interface {
	Generate(ctx context.Context, prompt string, slideCount int) ([]model.Slide, error)
}

type groqGenerator struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

// NewGroqGenerator creates a SlideGenerator backed by Groq's
// OpenAI-compatible chat completions API.
func NewGroqGenerator(baseURL, apiKey, modelName string) SlideGenerator {
	return &groqGenerator{
		client:  &http.Client{Timeout: generationTimeout},
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   modelName,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// slideDocument is the JSON object the model is instructed to return. The
// slides field must be present; a missing field means the model ignored the
// contract and the whole generation is treated as failed.
type slideDocument struct {
	Slides *[]model.Slide `json:"slides"`
}

func (g *groqGenerator) Generate(ctx context.Context, prompt string, slideCount int) ([]model.Slide, error) {
	reqBody := chatCompletionRequest{
		Model: g.model,
		Messages: []chatMessage{
			{Role: "system", Content: slideSystemPrompt},
			{Role: "user", Content: fmt.Sprintf("Create %d slides for: %s", slideCount, prompt)},
		},
	}
	reqBody.ResponseFormat.Type = "json_object"

	bodyJSON, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+chatCompletionEndpoint, bytes.NewReader(bodyJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to create generation request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("generation request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read generation response: %w", err)
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return nil, fmt.Errorf("invalid response from generator: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if completion.Error != nil && completion.Error.Message != "" {
			return nil, fmt.Errorf("generator returned HTTP %d: %s", resp.StatusCode, completion.Error.Message)
		}
		return nil, fmt.Errorf("generator returned HTTP %d", resp.StatusCode)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("generator returned no choices")
	}

	var doc slideDocument
	if err := json.Unmarshal([]byte(completion.Choices[0].Message.Content), &doc); err != nil {
		return nil, fmt.Errorf("generator output is not valid JSON: %w", err)
	}
	if doc.Slides == nil {
		return nil, fmt.Errorf("generator output has no slides field")
	}

	return *doc.Slides, nil
}
