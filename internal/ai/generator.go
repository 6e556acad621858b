// Package ai defines the content generation interface and prompt construction.
package ai

import (
	"context"
	"fmt"

	"github.com/avaskin/contentforge/internal/model"
)

// Generator produces marketing copy for a generation request and reports
// which model produced it.
type Generator interface {
	Generate(ctx context.Context, req model.GenerationRequest) (content, modelUsed string, err error)
}

var contentNames = map[model.ContentType]string{
	model.ContentBlog:   "blog post",
	model.ContentEmail:  "marketing email",
	model.ContentSocial: "social media post",
}

var lengthGuidance = map[model.Length]string{
	model.LengthShort:  "Keep it concise (1-2 short paragraphs or 100-200 words).",
	model.LengthMedium: "Make it moderate length (3-4 paragraphs or 300-500 words).",
	model.LengthLong:   "Make it comprehensive (5+ paragraphs or 600-1000 words).",
}

// SystemPrompt builds the system instruction from the request's shape parameters.
func SystemPrompt(req model.GenerationRequest) string {
	name, ok := contentNames[req.ContentType]
	if !ok {
		name = "content"
	}
	return fmt.Sprintf(
		"You are a professional marketing copywriter AI. You write %s in a %s tone.\n%s\nOutput only the final content, no explanations or meta-commentary. Make it engaging and actionable.",
		name, req.Tone, lengthGuidance[req.Length],
	)
}

// UserPrompt builds the user message with product and audience details.
func UserPrompt(req model.GenerationRequest) string {
	prompt := fmt.Sprintf("Product/Brand: %s\nTarget Audience: %s", req.Product, req.Audience)
	if req.ExtraInstructions != "" {
		prompt += "\n\nAdditional Instructions: " + req.ExtraInstructions
	}
	return prompt
}
