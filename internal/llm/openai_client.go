// ABOUTME: OpenAI client for medication enrichment suggestions
// ABOUTME: JSON-only prompt with fence stripping, retries and a hard timeout
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/harper/vitus/internal/models"
	"github.com/harper/vitus/internal/util"
)

// DefaultChatModel is the default model for enrichment completions.
const DefaultChatModel = "gpt-4o-mini"

// Categories a suggestion may carry; anything else collapses to Other.
var Categories = []string{"Heart", "Joints", "Beauty", "Sleep", "Digestion", "Immunity", "Other"}

// ClientConfig holds configuration for the enrichment client.
type ClientConfig struct {
	APIKey     string
	ChatModel  string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

// DefaultConfig returns the default client configuration. The timeout is
// generous because enrichment is a background nicety, not a hot path.
func DefaultConfig(apiKey string) *ClientConfig {
	return &ClientConfig{
		APIKey:     apiKey,
		ChatModel:  DefaultChatModel,
		Timeout:    2 * time.Minute,
		MaxRetries: 3,
		RetryDelay: 2 * time.Second,
	}
}

// Client wraps the OpenAI API for enrichment with retry logic.
type Client struct {
	client     *openai.Client
	chatModel  string
	timeout    time.Duration
	maxRetries int
	retryDelay time.Duration
}

// NewClient creates an enrichment client with default configuration.
func NewClient(apiKey string) (*Client, error) {
	return NewClientWithConfig(DefaultConfig(apiKey))
}

// NewClientWithConfig creates an enrichment client with custom configuration.
func NewClientWithConfig(cfg *ClientConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	chatModel := cfg.ChatModel
	if chatModel == "" {
		chatModel = DefaultChatModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}

	return &Client{
		client:     openai.NewClient(cfg.APIKey),
		chatModel:  chatModel,
		timeout:    timeout,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
	}, nil
}

// MedicationSuggestion is the structured enrichment result. Fields may be
// empty; callers merge whatever is present into a medication record.
type MedicationSuggestion struct {
	Purpose      string `json:"purpose"`
	Category     string `json:"category"`
	Prescription string `json:"prescription"`
	Notes        string `json:"notes"`
	Warning      string `json:"warning"`
	AIContext    string `json:"aiContext"`
}

// Apply merges the non-empty suggestion fields into a medication record.
func (sug MedicationSuggestion) Apply(m models.Medication) models.Medication {
	if sug.Purpose != "" {
		m.Purpose = sug.Purpose
	}
	if sug.Category != "" {
		m.Category = sug.Category
	}
	if sug.Prescription != "" {
		m.Prescription = sug.Prescription
	}
	if sug.Notes != "" {
		m.Notes = sug.Notes
	}
	if sug.Warning != "" {
		m.Warning = sug.Warning
	}
	if sug.AIContext != "" {
		m.AIContext = sug.AIContext
	}
	return m
}

// EnrichMedication asks the model for structured information about a
// medication or supplement by name and form.
func (c *Client) EnrichMedication(name, form string) (*MedicationSuggestion, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("medication name is required")
	}

	systemPrompt := fmt.Sprintf(`You are a pharmacy and herbal-medicine expert helping maintain a home medicine cabinet. Given a medication or supplement, respond ONLY with a JSON object with these fields:
purpose (short statement of what it is for), category (exactly one of: %s), prescription (how to take it), notes (a useful tip or fact), warning (what to watch out for), aiContext (a brief profile of the substance).
If unsure, say so in warning or notes and use category "Other". No text outside the JSON object.`, strings.Join(Categories, ", "))

	userPrompt := fmt.Sprintf("Name: %q.", name)
	if form = strings.TrimSpace(form); form != "" {
		userPrompt = fmt.Sprintf("Name: %q. Form: %q.", name, form)
	}

	var suggestion MedicationSuggestion
	err := util.Retry(c.maxRetries, c.retryDelay, func() error {
		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
		defer cancel()

		resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: c.chatModel,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
				{Role: openai.ChatMessageRoleUser, Content: userPrompt},
			},
			Temperature: 0.2,
		})
		if err != nil {
			return err
		}
		if len(resp.Choices) == 0 {
			return fmt.Errorf("no completion choices returned")
		}

		var parsed MedicationSuggestion
		raw := StripJSONFences(resp.Choices[0].Message.Content)
		if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
			return fmt.Errorf("failed to parse suggestion JSON: %w", err)
		}

		suggestion = MedicationSuggestion{
			Purpose:      strings.TrimSpace(parsed.Purpose),
			Category:     NormalizeCategory(parsed.Category),
			Prescription: strings.TrimSpace(parsed.Prescription),
			Notes:        strings.TrimSpace(parsed.Notes),
			Warning:      strings.TrimSpace(parsed.Warning),
			AIContext:    strings.TrimSpace(parsed.AIContext),
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("enrichment failed after %d attempts: %w", c.maxRetries+1, err)
	}
	return &suggestion, nil
}

// NormalizeCategory clamps a suggested category to the fixed set,
// accepting case variants; anything unknown or empty becomes Other.
func NormalizeCategory(cat string) string {
	cat = strings.TrimSpace(cat)
	for _, allowed := range Categories {
		if strings.EqualFold(cat, allowed) {
			return allowed
		}
	}
	return "Other"
}

var jsonFenceRe = regexp.MustCompile("(?i)```json\\s*")

// StripJSONFences removes markdown code fences around a JSON payload.
func StripJSONFences(s string) string {
	s = jsonFenceRe.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
