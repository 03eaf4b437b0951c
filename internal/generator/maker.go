// Package generator produces draft questions through the OpenAI API. Every
// generated item enters the bank as pending_review; nothing it writes is
// served to students without a reviewer decision.
package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"

	"github.com/nocalc-trainer/reviewd/internal/question"
)

type Maker struct {
	client *openai.Client
	model  string
}

func NewMaker(apiKey, model string) *Maker {
	return &Maker{client: openai.NewClient(apiKey), model: model}
}

// Request describes one generation run.
type Request struct {
	SchemaID   string
	Subject    string
	TestType   string
	Difficulty question.Difficulty
	PrimaryTag string
}

// generatedItem is the function-tool payload shape the model fills in.
type generatedItem struct {
	Stem              string            `json:"question_stem"`
	Options           map[string]string `json:"options"`
	CorrectOption     string            `json:"correct_option"`
	SolutionReasoning string            `json:"solution_reasoning"`
	KeyInsight        string            `json:"key_insight"`
	DistractorMap     map[string]string `json:"distractor_map"`
}

// GenerateBatch asks the model for batchSize questions and returns the ones
// that survive normalization and validation, stamped with a fresh generation
// id and pending_review status.
func (m *Maker) GenerateBatch(ctx context.Context, req Request, batchSize int) ([]question.Question, error) {
	log.Printf("generating %d questions (schema=%s, difficulty=%s)", batchSize, req.SchemaID, req.Difficulty)

	resp, err := m.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: m.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleSystem,
				Content: "You write no-calculator exam questions. Each question has four options " +
					"keyed A-D, exactly one correct, and an explanation for every wrong option.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: m.buildPrompt(req, batchSize),
			},
		},
		Tools: []openai.Tool{
			{
				Type: openai.ToolTypeFunction,
				Function: &openai.FunctionDefinition{
					Name:        "submit_questions",
					Description: "Submit generated exam questions",
					Parameters: map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"questions": map[string]interface{}{
								"type": "array",
								"items": map[string]interface{}{
									"type": "object",
									"properties": map[string]interface{}{
										"question_stem": map[string]interface{}{
											"type":        "string",
											"description": "The question text",
										},
										"options": map[string]interface{}{
											"type":        "object",
											"description": "Option letter (A-D) to option text",
										},
										"correct_option": map[string]interface{}{
											"type":        "string",
											"description": "The letter of the correct option",
										},
										"solution_reasoning": map[string]interface{}{
											"type":        "string",
											"description": "Step-by-step solution",
										},
										"key_insight": map[string]interface{}{
											"type":        "string",
											"description": "The one insight that unlocks the problem",
										},
										"distractor_map": map[string]interface{}{
											"type":        "object",
											"description": "Wrong option letter to why a student picks it",
										},
									},
									"required": []string{"question_stem", "options", "correct_option", "solution_reasoning"},
								},
							},
						},
						"required": []string{"questions"},
					},
				},
			},
		},
		ToolChoice: openai.ToolChoice{
			Type:     openai.ToolTypeFunction,
			Function: openai.ToolFunction{Name: "submit_questions"},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("generate questions: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response choices")
	}
	choice := resp.Choices[0]
	if len(choice.Message.ToolCalls) == 0 {
		return nil, fmt.Errorf("no tool calls in response")
	}
	toolCall := choice.Message.ToolCalls[0]
	if toolCall.Function.Name != "submit_questions" {
		return nil, fmt.Errorf("unexpected tool call: %s", toolCall.Function.Name)
	}

	var args struct {
		Questions []generatedItem `json:"questions"`
	}
	if err := json.Unmarshal([]byte(toolCall.Function.Arguments), &args); err != nil {
		return nil, fmt.Errorf("decode tool arguments: %w", err)
	}

	genID := uuid.NewString()
	now := time.Now()
	out := make([]question.Question, 0, len(args.Questions))
	for _, item := range args.Questions {
		q := question.Normalize(question.Raw{
			ID:                uuid.NewString(),
			GenerationID:      genID,
			SchemaID:          req.SchemaID,
			Stem:              item.Stem,
			Options:           item.Options,
			CorrectOption:     item.CorrectOption,
			SolutionReasoning: item.SolutionReasoning,
			KeyInsight:        item.KeyInsight,
			DistractorMap:     item.DistractorMap,
			Difficulty:        string(req.Difficulty),
			PrimaryTag:        req.PrimaryTag,
			Subject:           req.Subject,
			TestType:          req.TestType,
			Status:            string(question.StatusPendingReview),
			CreatedAt:         &now,
			UpdatedAt:         &now,
		})
		if err := question.Validate(q); err != nil {
			log.Printf("dropping generated question: %v", err)
			continue
		}
		out = append(out, q)
	}
	return out, nil
}

func (m *Maker) buildPrompt(req Request, batchSize int) string {
	return fmt.Sprintf(
		"Generate %d %s questions for the %q template family (subject: %s). "+
			"No calculator allowed; arithmetic must stay mental-math friendly. "+
			"Submit them with the submit_questions tool.",
		batchSize, req.Difficulty, req.SchemaID, req.Subject)
}
