package openai

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestBuildSystemPromptListsWaterBodies(t *testing.T) {
	prompt := buildSystemPrompt([]string{"Lake A", "Lake B"})

	for _, want := range []string{"Lake A; Lake B", CommandGetWaterBodyReport, CommandGeneralQuery} {
		if !strings.Contains(prompt, want) {
			t.Errorf("system prompt does not contain %q", want)
		}
	}
}

func TestParseAgentResponse(t *testing.T) {
	resp, err := parseAgentResponse(`{"command_name":"GetWaterBodyReport","water_body_name":"Lake A","user_message":"Checking Lake A"}`)
	if err != nil {
		t.Fatalf("parseAgentResponse() error = %v", err)
	}
	if resp.CommandName != CommandGetWaterBodyReport || resp.WaterBodyName != "Lake A" || resp.UserMessage != "Checking Lake A" {
		t.Errorf("unexpected response: %+v", resp)
	}

	if _, err := parseAgentResponse("not json"); err == nil {
		t.Error("expected an error for invalid JSON")
	}
}

func TestGenerateSchemaHasAgentFields(t *testing.T) {
	raw, err := json.Marshal(GenerateSchema[AgentResponse]())
	if err != nil {
		t.Fatalf("failed to marshal schema: %v", err)
	}
	for _, field := range []string{"command_name", "water_body_name", "user_message"} {
		if !strings.Contains(string(raw), field) {
			t.Errorf("schema is missing property %s: %s", field, raw)
		}
	}
}

func TestNewOpenAIServiceRequiresKey(t *testing.T) {
	if _, err := NewOpenAIService("", ""); err == nil {
		t.Error("expected an error for an empty API key")
	}
}
