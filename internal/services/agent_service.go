package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/vocallq/vocallq/internal/models"
	"github.com/vocallq/vocallq/internal/providers/voiceagent"
	pgrepo "github.com/vocallq/vocallq/internal/repositories/postgres"
	"github.com/vocallq/vocallq/internal/utils"
)

const (
	agentModel    = "gpt-4o"
	agentProvider = "openai"
)

// aiAgentPrompt is the base system prompt every assistant starts from; the
// user-supplied prompt is appended to it.
const aiAgentPrompt = `You are a helpful voice assistant for a webinar platform. ` +
	`Answer attendee questions clearly and concisely. If you do not know the ` +
	`answer, say so and offer to pass the question to the presenter.`

// CreateAgentInput is the user-supplied part of a new assistant.
type CreateAgentInput struct {
	Name         string `json:"name"`
	Prompt       string `json:"prompt"`
	FirstMessage string `json:"first_message"`
	Language     string `json:"language"`
}

// UpdateAgentInput updates the mutable assistant fields.
type UpdateAgentInput struct {
	Prompt       string `json:"prompt"`
	FirstMessage string `json:"first_message"`
}

type AgentService interface {
	Create(ctx context.Context, userID string, in CreateAgentInput) (*models.AiAgent, error)
	Get(ctx context.Context, agentID, userID string) (*models.AiAgent, error)
	List(ctx context.Context, userID string) ([]models.AiAgent, error)
	Update(ctx context.Context, agentID, userID string, in UpdateAgentInput) (*models.AiAgent, error)
}

type agentService struct {
	agents   pgrepo.AgentRepo
	provider voiceagent.Provider
}

func NewAgentService(agents pgrepo.AgentRepo, provider voiceagent.Provider) AgentService {
	return &agentService{agents: agents, provider: provider}
}

func defaultFirstMessage(name string) string {
	return fmt.Sprintf("Hi there, this is %s from customer support. How can I help you today?", name)
}

func (s *agentService) Create(ctx context.Context, userID string, in CreateAgentInput) (*models.AiAgent, error) {
	const op = "AgentService.Create"

	if userID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "Unauthorized", nil)
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "name is required", nil)
	}

	firstMessage := in.FirstMessage
	if firstMessage == "" {
		firstMessage = defaultFirstMessage(name)
	}
	prompt := aiAgentPrompt
	if in.Prompt != "" {
		prompt = aiAgentPrompt + "\n\n" + in.Prompt
	}

	assistant, err := s.provider.CreateAssistant(ctx, voiceagent.AssistantParams{
		Name:         name,
		FirstMessage: firstMessage,
		SystemPrompt: prompt,
		Model:        agentModel,
		Provider:     agentProvider,
		Language:     in.Language,
	})
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "Failed to create assistant", err)
	}

	agent := &models.AiAgent{
		ID:                uuid.NewString(),
		UserID:            userID,
		VendorAssistantID: assistant.ID,
		Name:              name,
		Provider:          agentProvider,
		Model:             agentModel,
		Prompt:            prompt,
		FirstMessage:      firstMessage,
	}
	if err := s.agents.Create(ctx, agent); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "Failed to save assistant", err)
	}
	return agent, nil
}

func (s *agentService) Get(ctx context.Context, agentID, userID string) (*models.AiAgent, error) {
	const op = "AgentService.Get"

	if userID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "Unauthorized", nil)
	}
	agent, err := s.agents.GetOwned(ctx, agentID, userID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "Agent not found or access denied", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "Failed to fetch agent", err)
	}
	return agent, nil
}

func (s *agentService) List(ctx context.Context, userID string) ([]models.AiAgent, error) {
	const op = "AgentService.List"

	if userID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "Unauthorized", nil)
	}
	rows, err := s.agents.ListByUser(ctx, userID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "Failed to fetch agents", err)
	}
	if rows == nil {
		rows = []models.AiAgent{}
	}
	return rows, nil
}

func (s *agentService) Update(ctx context.Context, agentID, userID string, in UpdateAgentInput) (*models.AiAgent, error) {
	const op = "AgentService.Update"

	if userID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "Unauthorized", nil)
	}
	agent, err := s.agents.GetOwned(ctx, agentID, userID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "Agent not found or access denied", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "Failed to fetch agent", err)
	}

	if in.Prompt != "" {
		agent.Prompt = in.Prompt
	}
	if in.FirstMessage != "" {
		agent.FirstMessage = in.FirstMessage
	}

	if err := s.provider.UpdateAssistant(ctx, agent.VendorAssistantID, voiceagent.AssistantParams{
		Name:         agent.Name,
		FirstMessage: agent.FirstMessage,
		SystemPrompt: agent.Prompt,
		Model:        agent.Model,
		Provider:     agent.Provider,
	}); err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "Failed to update assistant", err)
	}
	if err := s.agents.Update(ctx, agent); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "Failed to save assistant", err)
	}
	return agent, nil
}
