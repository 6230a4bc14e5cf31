package ai

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"

	"shopfront/internal/core"
)

// descriptionFallback is returned when no draft could be generated. The
// operator edits the description before saving either way.
const descriptionFallback = "A quality pair from our collection. Replace this placeholder with fit, material, and sizing details before publishing."

// Describe drafts a product description for the back office from the bare
// catalog facts. Failures and a missing API key degrade to a placeholder
// the operator overwrites by hand.
func (a *Advisor) Describe(ctx context.Context, in core.ProductInput) string {
	if !a.enabled {
		return descriptionFallback
	}

	prompt := fmt.Sprintf(`Write a product description for a footwear storefront.
Two short paragraphs, plain text, no headings and no bullet lists.
Mention fit and typical use. Do not invent materials or features.

Product: %s
Brand: %s
Category: %s
Sizes: %s
Colors: %s`,
		in.Name, in.Brand, in.Category,
		strings.Join(in.Sizes, ", "), strings.Join(in.Colors, ", "))

	resp, err := a.client.Responses.New(ctx, responses.ResponseNewParams{
		Model: shared.ResponsesModel(shared.ChatModelGPT4o),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: param.NewOpt(prompt),
		},
	})
	if err != nil {
		log.Printf("describe request: %v", err)
		return descriptionFallback
	}
	text := strings.TrimSpace(resp.OutputText())
	if text == "" {
		log.Print("describe request: empty response content")
		return descriptionFallback
	}
	return text
}
