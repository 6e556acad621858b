package ai

import (
	"context"
	"fmt"

	"github.com/avaskin/contentforge/internal/model"
)

// MockModelName is reported by the demo generator so stored records
// are distinguishable from real AI output.
const MockModelName = "mock-demo-model"

// Mock is a template-based generator used when no AI API key is configured.
// It keeps the platform usable for demos and tests.
type Mock struct{}

var _ Generator = Mock{}

// Generate renders a canned template for the requested content type.
func (Mock) Generate(_ context.Context, req model.GenerationRequest) (string, string, error) {
	var content string
	switch req.ContentType {
	case model.ContentBlog:
		content = fmt.Sprintf(`# %[1]s: A Game-Changer for %[2]s

In today's fast-paced world, %[2]s are constantly looking for innovative solutions. Enter %[1]s - a revolutionary offering that's transforming the landscape.

## Why %[1]s Matters

%[1]s addresses key challenges faced by %[2]s with its unique approach:

- **Innovative Design**: Built with %[2]s in mind
- **User-Friendly**: Easy to implement and use
- **Results-Driven**: Proven track record of success

*This is demo content. Configure an AI API key for real generation.*`, req.Product, req.Audience)

	case model.ContentSocial:
		content = fmt.Sprintf(`Exciting news for %[2]s!

Introducing %[1]s - the solution you've been waiting for!

Perfect for %[2]s who want to save time, increase efficiency and achieve better results.

[Demo content - add an API key for real AI generation]`, req.Product, req.Audience)

	case model.ContentEmail:
		content = fmt.Sprintf(`Subject: Discover How %[1]s Can Transform Your Workflow

Hi there,

I wanted to reach out to %[2]s like you who are looking for better solutions.

%[1]s is designed specifically with your needs in mind:

- Streamlined processes
- Time-saving features
- Measurable results

Best regards,
The %[1]s Team

---
Demo content - configure an AI API key for real generation.`, req.Product, req.Audience)

	default:
		content = fmt.Sprintf(`**%s for %s**

This is demo content. Content type: %s, tone: %s.
Configure an AI API key for real generation.`, req.Product, req.Audience, req.ContentType, req.Tone)
	}
	return content, MockModelName, nil
}
