package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Commands the agent may return
const (
	CommandGetWaterBodyReport = "GetWaterBodyReport"
	CommandGeneralQuery       = "GeneralQuery"
)

// AgentResponse defines the structured output from the OpenAI agent.
type AgentResponse struct {
	CommandName   string `json:"command_name" jsonschema_description:"The command to execute, e.g., GetWaterBodyReport or GeneralQuery"`
	WaterBodyName string `json:"water_body_name" jsonschema_description:"Exact name of the water body from the known list, if applicable"`
	UserMessage   string `json:"user_message" jsonschema_description:"A message to show back to the user in their original language"`
}

// OpenAIService defines the interface for interacting with the OpenAI agent.
type OpenAIService interface {
	InterpretUserQuery(ctx context.Context, userMessage string, waterBodies []string) (*AgentResponse, error)
}

// openAIServiceImpl implements the OpenAIService interface.
type openAIServiceImpl struct {
	client openai.Client
	model  openai.ChatModel
	schema interface{}
}

// GenerateSchema generates a JSON schema for a given type.
func GenerateSchema[T any]() interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	schema := reflector.Reflect(v)
	return schema
}

// NewOpenAIService creates and initializes a new OpenAIService.
func NewOpenAIService(apiKey, model string) (OpenAIService, error) {
	if apiKey == "" {
		return nil, errors.New("OpenAI API key is empty")
	}
	chatModel := openai.ChatModel(model)
	if model == "" {
		chatModel = openai.ChatModelGPT4o
	}
	client := openai.NewClient(option.WithAPIKey(apiKey))
	schema := GenerateSchema[AgentResponse]()

	return &openAIServiceImpl{
		client: client,
		model:  chatModel,
		schema: schema,
	}, nil
}

// buildSystemPrompt describes the agent's job and the known water bodies
func buildSystemPrompt(waterBodies []string) string {
	return fmt.Sprintf(`You are a friendly fishing guide bot for lakes in the Vologda region. You know the local water bodies, their fish and how weather affects the bite.

Your mission is to understand which water body the user asks about so the bot can send a fishing-conditions report.

Requirements:
- You understand Russian and English.
- You reply in the same language the user used, briefly.

List of known water bodies: %s

Behavior:
1. If the user wants conditions, weather or a bite forecast for a specific water body from the list:
   - command_name = "%s"
   - water_body_name: the exact name from the list; if the user's choice is missing or ambiguous, use an empty string.
   - user_message: a one-line confirmation in the user's language.
2. Otherwise (greetings, small talk, unknown places):
   - command_name = "%s"
   - water_body_name = ""
   - user_message: a short helpful reply in their language, suggesting the /spots menu.

Output **strictly** in JSON.`, strings.Join(waterBodies, "; "), CommandGetWaterBodyReport, CommandGeneralQuery)
}

// InterpretUserQuery sends a message to the OpenAI agent and returns the structured response.
func (s *openAIServiceImpl) InterpretUserQuery(ctx context.Context, userMessage string, waterBodies []string) (*AgentResponse, error) {
	schemaParam := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:        "agent_response",
		Description: openai.String("Structured response containing command, water body name, and user message"),
		Schema:      s.schema,
		Strict:      openai.Bool(true),
	}

	respFormat := openai.ChatCompletionNewParamsResponseFormatUnion{
		OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{JSONSchema: schemaParam},
	}

	chat, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(buildSystemPrompt(waterBodies)),
			openai.UserMessage(userMessage),
		},
		ResponseFormat: respFormat,
		Model:          s.model,
	})

	if err != nil {
		return nil, fmt.Errorf("error calling OpenAI API: %w", err)
	}

	if len(chat.Choices) == 0 || chat.Choices[0].Message.Content == "" {
		return nil, errors.New("received empty response from OpenAI")
	}

	return parseAgentResponse(chat.Choices[0].Message.Content)
}

// parseAgentResponse decodes the agent's JSON output
func parseAgentResponse(content string) (*AgentResponse, error) {
	var agentResp AgentResponse
	if err := json.Unmarshal([]byte(content), &agentResp); err != nil {
		log.Printf("Failed to unmarshal OpenAI response: %s\nRaw response: %s", err, content)
		return nil, fmt.Errorf("error unmarshalling OpenAI response: %w", err)
	}
	return &agentResp, nil
}
