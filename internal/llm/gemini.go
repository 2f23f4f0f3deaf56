package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// Gemini serves both as Extractor and Solver.
type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, apiKey, modelName string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		log.Error().Err(err).Msg("Failed to create Gemini client")
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &Gemini{client: client, model: modelName}, nil
}

func (g *Gemini) Close() error {
	return g.client.Close()
}

// ExtractQuestions sends the PDF inline next to the request text.
func (g *Gemini) ExtractQuestions(ctx context.Context, pdf []byte, instruction, request string) (string, error) {
	m := g.client.GenerativeModel(g.model)
	m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(instruction)}}
	m.ResponseMIMEType = "application/json"
	m.SetTemperature(0.1)

	resp, err := m.GenerateContent(ctx,
		genai.Blob{MIMEType: "application/pdf", Data: pdf},
		genai.Text(request),
	)
	if err != nil {
		return "", fmt.Errorf("gemini extraction call: %w", err)
	}
	return responseText(resp)
}

func (g *Gemini) Solve(ctx context.Context, prompt string) (string, error) {
	m := g.client.GenerativeModel(g.model)
	m.ResponseMIMEType = "application/json"
	m.SetTemperature(0)

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini solve call: %w", err)
	}
	return responseText(resp)
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", ErrEmptyResponse
	}
	return b.String(), nil
}
