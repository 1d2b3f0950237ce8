package coach

import (
	"context"
	"log/slog"

	"github.com/fabianfernandess/FitQuest/internal/genai"
	"github.com/fabianfernandess/FitQuest/internal/models"
)

// Coach assembles the coaching pipeline behind a single entry point. The
// provider gateway is the only injected dependency and the only I/O point.
type Coach struct {
	generator genai.Generator
}

// NewCoach creates a coach using the given provider gateway.
func NewCoach(generator genai.Generator) *Coach {
	return &Coach{generator: generator}
}

// GetFitnessResponse builds the prompt for the user context, calls the
// provider, and extracts, validates, and sanitizes the reply.
//
// It is a total function: any failure in the gateway, extractor, or
// validator is caught here, logged, and converted into the canonical
// fallback reply. Callers can always render the returned value without
// additional checks. Diagnostic detail goes to the structured log, never to
// the return value.
func (c *Coach) GetFitnessResponse(ctx context.Context, userCtx models.UserContext) models.FitnessReply {
	systemPrompt, userMessage := BuildPrompt(userCtx)

	raw, err := c.generator.Generate(ctx, systemPrompt, userMessage)
	if err != nil {
		slog.Error("Coach provider call failed", "error", err, "user", userCtx.Name)
		return models.FallbackReply()
	}

	candidate, err := ExtractJSON(raw)
	if err != nil {
		slog.Warn("Coach could not locate JSON in provider output", "error", err, "rawLength", len(raw))
		return models.FallbackReply()
	}

	doc, err := Validate(candidate)
	if err != nil {
		slog.Warn("Coach reply failed validation", "error", err)
		return models.FallbackReply()
	}

	return Sanitize(doc)
}
