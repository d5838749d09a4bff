package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// AssistService extracts structured application drafts from pasted job
// postings using OpenAI.
type AssistService struct {
	client *openai.Client
}

// ApplicationDraft is the model's reading of a job posting. Everything is
// optional except company and role_title; the caller reviews it before
// creating a real application.
type ApplicationDraft struct {
	Company        string   `json:"company"`
	RoleTitle      string   `json:"role_title"`
	LocationMode   *string  `json:"location_mode"`
	LocationText   *string  `json:"location_text"`
	SeniorityLevel *string  `json:"seniority_level"`
	SalaryMin      *float64 `json:"salary_min"`
	SalaryMax      *float64 `json:"salary_max"`
	SalaryCurrency *string  `json:"salary_currency"`
	TechKeywords   []string `json:"tech_keywords"`
	Tags           []string `json:"tags"`
}

func NewAssistService(apiKey string) *AssistService {
	return &AssistService{
		client: openai.NewClient(apiKey),
	}
}

// ParseJobPosting analyzes job-posting text and extracts an application draft
func (s *AssistService) ParseJobPosting(ctx context.Context, text string) (*ApplicationDraft, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	prompt := fmt.Sprintf(`You are a job-posting parser. Extract the fields below from the posting text and answer with JSON only, no explanation.

Posting:
%s

Answer in exactly this JSON shape:
{
  "company": "employer name",
  "role_title": "title of the role",
  "location_mode": "remote" | "onsite" | "hybrid" | null,
  "location_text": "city / office location or null",
  "seniority_level": "seniority wording from the posting or null",
  "salary_min": lower salary bound as a number or null,
  "salary_max": upper salary bound as a number or null,
  "salary_currency": "ISO currency code or null",
  "tech_keywords": ["technologies mentioned"],
  "tags": ["short labels you would file this posting under"]
}

Rules:
- Use null for anything the posting does not state; never invent values
- salary bounds must be plain numbers (no currency symbols or ranges)
- return JSON only`, text)

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

	content := resp.Choices[0].Message.Content

	var draft ApplicationDraft
	if err := json.Unmarshal([]byte(content), &draft); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	return &draft, nil
}
