package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/gitmeta/auto-topics/internal/content"
	"github.com/gitmeta/auto-topics/internal/topics"
	openai "github.com/sashabaranov/go-openai"
)

const (
	// MaxDescriptionLength is GitHub's repository description limit.
	MaxDescriptionLength = 350

	// descriptionExcerptLength bounds how much of the content blob the
	// description prompt carries. Descriptions need less context than
	// topics do.
	descriptionExcerptLength = 2500
)

type Client struct {
	client *openai.Client
	model  string
}

func NewClient(baseURL, apiKey, model string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = strings.TrimSuffix(baseURL, "/")
	return &Client{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

const topicsPromptFormat = `Analyze this repository and generate 5-8 GitHub topics.
Rules:
- Only lowercase, hyphenated keywords (e.g. flutter, react-native, machine-learning).
- Include tech stack (language, framework) and domain (e.g. cli-tool, api, mobile-app).
- No spaces; use hyphens. No hashtags or extra symbols.
- Repo name for context: %s

Content:
%s`

// GenerateTopics asks the model for topic suggestions and normalizes the
// reply into valid GitHub topics. The model's output format is not
// trusted; normalization handles comma lists, line lists, and stray
// punctuation alike.
func (c *Client) GenerateTopics(ctx context.Context, contentBlob, repoName string) ([]string, error) {
	raw, err := c.complete(ctx, fmt.Sprintf(topicsPromptFormat, repoName, contentBlob))
	if err != nil {
		return nil, fmt.Errorf("generating topics for %s: %w", repoName, err)
	}
	return topics.Normalize(raw), nil
}

const descriptionPromptFormat = `Write a single short sentence for this repository's GitHub description.
- Max 350 characters. No line breaks. Clear and professional.
- Repo name: %s
- Describe what the repo does and main tech/purpose.

Content:
%s`

// GenerateDescription asks the model for a one-sentence description and
// truncates it to GitHub's limit. Returns "" if the model produced
// nothing.
func (c *Client) GenerateDescription(ctx context.Context, contentBlob, repoName string) (string, error) {
	excerpt := content.Truncate(contentBlob, descriptionExcerptLength)
	raw, err := c.complete(ctx, fmt.Sprintf(descriptionPromptFormat, repoName, excerpt))
	if err != nil {
		return "", fmt.Errorf("generating description for %s: %w", repoName, err)
	}
	return content.Truncate(raw, MaxDescriptionLength), nil
}

func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
