// Package suggest implements the AI tier suggester. Suggestions are advisory
// only; the bulk updater never applies them.
package suggest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tier_server/pkg/logger"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAISuggester implements out.TierSuggester with a chat completion. The
// model is forced to answer with one candidate tier name or NONE.
type OpenAISuggester struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	log     *logger.Logger
}

// NewOpenAISuggester creates the suggester. model defaults to gpt-4o-mini.
func NewOpenAISuggester(apiKey, model string, timeout time.Duration) *OpenAISuggester {
	if model == "" {
		model = "gpt-4o-mini"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &OpenAISuggester{
		client:  openai.NewClient(apiKey),
		model:   model,
		timeout: timeout,
		log:     logger.WithField("component", "suggester"),
	}
}

const suggesterSystemPrompt = "You assign menswear products to pricing tiers. " +
	"Answer with exactly one tier name from the candidate list, nothing else. " +
	"Answer NONE if no candidate fits."

// SuggestTier asks the model for a tier, constrained to candidates. Returns
// "" when the model declines or answers outside the candidate list.
func (s *OpenAISuggester) SuggestTier(ctx context.Context, productTitle string, candidates []string) (string, error) {
	if len(candidates) == 0 {
		return "", nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	prompt := fmt.Sprintf("Product title: %s\n\nCandidate tiers:\n%s",
		productTitle, strings.Join(candidates, "\n"))

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: suggesterSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0,
		MaxTokens:   20,
	})
	if err != nil {
		return "", fmt.Errorf("tier suggestion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}

	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	if answer == "" || answer == "NONE" {
		return "", nil
	}
	for _, candidate := range candidates {
		if strings.EqualFold(answer, candidate) {
			return candidate, nil
		}
	}
	s.log.WithFields(map[string]any{"answer": answer, "product": productTitle}).
		Debug("suggester answered outside candidate list")
	return "", nil
}
