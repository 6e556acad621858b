package ai

import (
	"context"
	"strings"
	"testing"

	"github.com/avaskin/contentforge/internal/model"
)

func TestSystemPrompt(t *testing.T) {
	t.Parallel()

	req := model.GenerationRequest{
		ContentType: model.ContentBlog,
		Tone:        model.ToneCasual,
		Length:      model.LengthShort,
	}
	got := SystemPrompt(req)
	if !strings.Contains(got, "blog post") || !strings.Contains(got, "casual tone") {
		t.Fatalf("prompt missing shape parameters: %s", got)
	}
	if !strings.Contains(got, "100-200 words") {
		t.Fatalf("prompt missing length guidance: %s", got)
	}

	// unknown content type falls back to a generic noun
	req.ContentType = "podcast"
	if got := SystemPrompt(req); !strings.Contains(got, "write content") {
		t.Fatalf("fallback noun missing: %s", got)
	}
}

func TestUserPrompt(t *testing.T) {
	t.Parallel()

	req := model.GenerationRequest{Product: "Widget", Audience: "makers"}
	got := UserPrompt(req)
	if !strings.Contains(got, "Product/Brand: Widget") || !strings.Contains(got, "Target Audience: makers") {
		t.Fatalf("user prompt incomplete: %s", got)
	}
	if strings.Contains(got, "Additional Instructions") {
		t.Fatalf("no extra instructions were given: %s", got)
	}

	req.ExtraInstructions = "mention the discount"
	if got := UserPrompt(req); !strings.Contains(got, "Additional Instructions: mention the discount") {
		t.Fatalf("extra instructions missing: %s", got)
	}
}

func TestMock_GeneratePerContentType(t *testing.T) {
	t.Parallel()

	for _, ct := range []model.ContentType{model.ContentBlog, model.ContentEmail, model.ContentSocial} {
		content, modelUsed, err := Mock{}.Generate(context.Background(), model.GenerationRequest{
			ContentType: ct,
			Tone:        model.ToneFormal,
			Length:      model.LengthShort,
			Product:     "Widget",
			Audience:    "makers",
		})
		if err != nil {
			t.Fatalf("Generate(%s): %v", ct, err)
		}
		if modelUsed != MockModelName {
			t.Fatalf("modelUsed=%q", modelUsed)
		}
		if !strings.Contains(content, "Widget") || !strings.Contains(content, "makers") {
			t.Fatalf("template for %s must mention product and audience: %s", ct, content)
		}
	}
}
