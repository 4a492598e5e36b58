package voiceagent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultVapiBaseURL = "https://api.vapi.ai"

// Vapi calls the vendor's REST API directly; the vendor publishes no Go SDK.
type Vapi struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func NewVapi(apiKey string) *Vapi {
	return &Vapi{
		apiKey:  apiKey,
		baseURL: defaultVapiBaseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

type vapiModelMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type vapiModel struct {
	Model       string             `json:"model"`
	Provider    string             `json:"provider"`
	Messages    []vapiModelMessage `json:"messages"`
	Temperature float64            `json:"temperature,omitempty"`
}

type vapiTranscriber struct {
	Provider            string  `json:"provider"`
	Language            string  `json:"language"`
	ConfidenceThreshold float64 `json:"confidenceThreshold"`
}

type vapiStartSpeakingPlan struct {
	WaitSeconds             float64 `json:"waitSeconds"`
	SmartEndpointingEnabled bool    `json:"smartEndpointingEnabled"`
}

type vapiStopSpeakingPlan struct {
	NumWords       int     `json:"numWords"`
	VoiceSeconds   float64 `json:"voiceSeconds"`
	BackoffSeconds float64 `json:"backoffSeconds"`
}

type vapiAssistantRequest struct {
	Name              string                 `json:"name,omitempty"`
	FirstMessage      string                 `json:"firstMessage"`
	Model             vapiModel              `json:"model"`
	Transcriber       vapiTranscriber        `json:"transcriber"`
	StartSpeakingPlan *vapiStartSpeakingPlan `json:"startSpeakingPlan,omitempty"`
	StopSpeakingPlan  *vapiStopSpeakingPlan  `json:"stopSpeakingPlan,omitempty"`
	ServerMessages    []string               `json:"serverMessages"`
}

func assistantRequest(p AssistantParams) vapiAssistantRequest {
	language := p.Language
	if language == "" {
		language = "en"
	}
	return vapiAssistantRequest{
		Name:         p.Name,
		FirstMessage: p.FirstMessage,
		Model: vapiModel{
			Model:       p.Model,
			Provider:    p.Provider,
			Messages:    []vapiModelMessage{{Role: "system", Content: p.SystemPrompt}},
			Temperature: 0.5,
		},
		Transcriber: vapiTranscriber{
			Provider:            "assembly-ai",
			Language:            language,
			ConfidenceThreshold: 0.7,
		},
		// tuned for webinar turn-taking: longer waits, brief acknowledgments
		StartSpeakingPlan: &vapiStartSpeakingPlan{
			WaitSeconds:             0.8,
			SmartEndpointingEnabled: true,
		},
		StopSpeakingPlan: &vapiStopSpeakingPlan{
			NumWords:       2,
			VoiceSeconds:   0.3,
			BackoffSeconds: 1.2,
		},
		ServerMessages: []string{},
	}
}

func (v *Vapi) CreateAssistant(ctx context.Context, p AssistantParams) (*Assistant, error) {
	var out Assistant
	if err := v.do(ctx, http.MethodPost, "/assistant", assistantRequest(p), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (v *Vapi) UpdateAssistant(ctx context.Context, assistantID string, p AssistantParams) error {
	req := assistantRequest(p)
	req.Name = "" // name is immutable on update
	return v.do(ctx, http.MethodPatch, "/assistant/"+assistantID, req, nil)
}

func (v *Vapi) do(ctx context.Context, method, path string, body any, out any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, v.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+v.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("vapi: %s %s: status %d: %s", method, path, resp.StatusCode, string(msg))
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
