package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// ChatCompleter is the part of the OpenAI client the AI service uses
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type AIService struct {
	client ChatCompleter
}

// SuggestedCard is a card draft produced by the model
type SuggestedCard struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Labels      []string `json:"labels"`
}

func NewAIService(apiKey string) *AIService {
	return &AIService{
		client: openai.NewClient(apiKey),
	}
}

// NewAIServiceWithClient builds the service around an existing client
func NewAIServiceWithClient(client ChatCompleter) *AIService {
	return &AIService{client: client}
}

// SuggestCards turns free text into card drafts using OpenAI GPT
func (s *AIService) SuggestCards(ctx context.Context, labels []string, text string) ([]SuggestedCard, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	available := "(none)"
	if len(labels) > 0 {
		available = strings.Join(labels, ", ")
	}

	prompt := fmt.Sprintf(`You are an assistant that turns notes into cards for a Kanban board.
Extract the concrete pieces of work from the text below.

Labels available on this board: %s

Text:
%s

Respond with a JSON array of cards in this form:
[
  {
    "title": "short title of the work",
    "description": "what needs to be done",
    "labels": ["zero or more of the available labels"]
  }
]

Rules:
- Return an empty array [] when the text contains no work
- Only use labels from the available list
- Return JSON only, without any explanation`, available, text)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)

	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	content := stripCodeFence(resp.Choices[0].Message.Content)

	var cards []SuggestedCard
	if err := json.Unmarshal([]byte(content), &cards); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	return cards, nil
}

// stripCodeFence removes a surrounding ``` block that models sometimes add
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
