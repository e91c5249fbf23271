package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/admitpath-backend/internal/catalog"
	"github.com/yungbote/admitpath-backend/internal/clients/openai"
	types "github.com/yungbote/admitpath-backend/internal/domain"
	"github.com/yungbote/admitpath-backend/internal/pkg/logger"
)

// VerificationRequest carries everything the oracle may use to judge one
// submission. Baseline is the frozen snapshot the user's catalog was built
// from. PriorFeedback is the feedback from the user's previous rejection
// for the same requirement, when one exists.
type VerificationRequest struct {
	UserID        uuid.UUID
	Phase         types.Phase
	Requirement   catalog.RequirementDefinition
	Baseline      types.Baseline
	Payload       map[string]any
	PriorFeedback string
}

// Verdict is the oracle's judgement. SatisfiedKeys may name requirement keys
// beyond the submitted one when a single proof covers several; an empty list
// means only the submitted key. CooldownHours applies on rejection only.
type Verdict struct {
	Approved      bool
	Reason        string
	CooldownHours int
	SatisfiedKeys []string
}

// Verifier is the oracle contract. Implementations must be side-effect free:
// the engine owns all ledger and state writes.
type Verifier interface {
	Verify(ctx context.Context, req VerificationRequest) (*Verdict, error)
	Model() string
}

type llmVerifier struct {
	log             *logger.Logger
	ai              openai.Client
	defaultCooldown int
}

func NewLLMVerifier(baseLog *logger.Logger, ai openai.Client, defaultCooldownHours int) (Verifier, error) {
	if ai == nil {
		return nil, fmt.Errorf("openai client required")
	}
	if defaultCooldownHours < 0 {
		defaultCooldownHours = 0
	}
	return &llmVerifier{
		log:             baseLog.With("service", "LLMVerifier"),
		ai:              ai,
		defaultCooldown: defaultCooldownHours,
	}, nil
}

func (v *llmVerifier) Model() string { return v.ai.Model() }

var verdictSchema = map[string]any{
	"type":                 "object",
	"additionalProperties": false,
	"properties": map[string]any{
		"approved": map[string]any{
			"type":        "boolean",
			"description": "Whether the submitted proof genuinely satisfies the requirement.",
		},
		"reason": map[string]any{
			"type":        "string",
			"description": "Short feedback for the student, in the student's locale when known.",
		},
		"cooldown_hours": map[string]any{
			"type":        "integer",
			"description": "Hours before the student may resubmit after a rejection. 0 for approvals.",
		},
		"satisfied_keys": map[string]any{
			"type":        "array",
			"items":       map[string]any{"type": "string"},
			"description": "All requirement keys this proof satisfies, including the submitted one.",
		},
	},
	"required": []string{"approved", "reason", "cooldown_hours", "satisfied_keys"},
}

const verifierSystemPrompt = `You are a strict but fair admissions mentor reviewing a student's proof of completing a preparation requirement. Judge only whether the evidence plausibly satisfies the requirement. Reject vague, empty, or off-topic submissions with concrete feedback on what to fix. If the proof also clearly satisfies other requirements of the same phase, list their keys in satisfied_keys.`

func (v *llmVerifier) Verify(ctx context.Context, req VerificationRequest) (*Verdict, error) {
	if req.Requirement.Key == "" {
		return nil, fmt.Errorf("requirement key required")
	}

	payloadJSON, err := json.Marshal(req.Payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	var prompt strings.Builder
	if !req.Baseline.Empty() {
		baselineJSON, _ := json.Marshal(req.Baseline)
		fmt.Fprintf(&prompt, "Student baseline: %s\n", baselineJSON)
	}
	fmt.Fprintf(&prompt, "Phase: %s\n", req.Phase)
	fmt.Fprintf(&prompt, "Requirement key: %s\n", req.Requirement.Key)
	fmt.Fprintf(&prompt, "Requirement: %s\n", req.Requirement.Label)
	if req.Requirement.Description != "" {
		fmt.Fprintf(&prompt, "Details: %s\n", req.Requirement.Description)
	}
	if len(req.Requirement.Fields) > 0 {
		fields, _ := json.Marshal(req.Requirement.Fields)
		fmt.Fprintf(&prompt, "Expected proof fields: %s\n", fields)
	}
	fmt.Fprintf(&prompt, "Submitted proof: %s\n", payloadJSON)
	if req.PriorFeedback != "" {
		fmt.Fprintf(&prompt, "Feedback on the student's previous rejected attempt: %s\n", req.PriorFeedback)
	}

	obj, err := v.ai.GenerateJSON(ctx, verifierSystemPrompt, prompt.String(), "requirement_verdict", verdictSchema)
	if err != nil {
		return nil, err
	}

	verdict := &Verdict{}
	if a, ok := obj["approved"].(bool); ok {
		verdict.Approved = a
	}
	if r, ok := obj["reason"].(string); ok {
		verdict.Reason = strings.TrimSpace(r)
	}
	if c, ok := obj["cooldown_hours"].(float64); ok && c > 0 {
		verdict.CooldownHours = int(c)
	}
	if raw, ok := obj["satisfied_keys"].([]any); ok {
		for _, item := range raw {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				verdict.SatisfiedKeys = append(verdict.SatisfiedKeys, strings.TrimSpace(s))
			}
		}
	}

	if !verdict.Approved && verdict.CooldownHours == 0 {
		verdict.CooldownHours = v.defaultCooldown
	}
	if verdict.Approved {
		verdict.CooldownHours = 0
	}
	return verdict, nil
}
