package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
	"github.com/openai/openai-go/shared/constant"

	"shopfront/internal/core"
)

// Canned replies for when the advisor cannot produce an answer. The
// storefront shows these verbatim, so they stay apologetic and generic.
const (
	replyOffline = "Sorry, the shopping assistant is offline right now. Please browse the catalog or contact the shop directly."
	replyFailed  = "Sorry, I could not come up with a suggestion just now. Please try asking again in a moment."
)

// Advice is the structured answer of the shopping assistant. ProductIDs
// holds up to three catalog IDs to showcase next to the reply.
type Advice struct {
	Reply      string   `json:"reply" jsonschema_description:"Conversational answer to the shopper, two or three sentences"`
	ProductIDs []string `json:"product_ids" jsonschema_description:"IDs of up to three recommended products from the catalog, empty if nothing fits"`
}

// AdvisorService answers shopper questions against the current catalog.
type AdvisorService interface {
	// Advise never fails the storefront: model and transport errors degrade
	// to a canned apologetic reply with no recommendations.
	Advise(ctx context.Context, question string, catalog []core.Product) *Advice
}

type Advisor struct {
	client  *openai.Client
	enabled bool
}

// NewAdvisor builds the assistant. An empty API key disables it, leaving
// only canned replies.
func NewAdvisor(apiKey string) *Advisor {
	if apiKey == "" {
		return &Advisor{}
	}
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &Advisor{client: &client, enabled: true}
}

func (a *Advisor) Advise(ctx context.Context, question string, catalog []core.Product) *Advice {
	if !a.enabled {
		return &Advice{Reply: replyOffline}
	}

	prompt := fmt.Sprintf(`You are a friendly shopping assistant for a footwear store.
Answer the shopper's question and recommend matching products.
Rules:
1. Recommend ONLY product IDs from the catalog below, at most three.
2. If nothing fits, return an empty product list and say so politely.
3. Keep the reply short and conversational. Prices are in %s.

Catalog:
%s

Question: %s`, core.Currency, renderCatalog(catalog), question)

	schemaMap, err := structuredSchema(Advice{})
	if err != nil {
		log.Printf("advisor schema: %v", err)
		return &Advice{Reply: replyFailed}
	}

	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(shared.ChatModelGPT4o),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: param.NewOpt(prompt),
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Type:        constant.JSONSchema("json_schema"),
					Name:        "shopping_advice",
					Strict:      param.NewOpt(true),
					Schema:      schemaMap,
					Description: param.NewOpt("A reply to the shopper with up to three recommended product IDs"),
				},
			},
		},
	}

	resp, err := a.client.Responses.New(ctx, params)
	if err != nil {
		log.Printf("advisor request: %v", err)
		return &Advice{Reply: replyFailed}
	}
	content := resp.OutputText()
	if content == "" {
		log.Print("advisor request: empty response content")
		return &Advice{Reply: replyFailed}
	}

	var advice Advice
	if err := json.Unmarshal([]byte(content), &advice); err != nil {
		log.Printf("advisor parse: %v", err)
		return &Advice{Reply: replyFailed}
	}
	advice.ProductIDs = filterKnownIDs(advice.ProductIDs, catalog, 3)
	return &advice
}

// filterKnownIDs drops hallucinated IDs and caps the recommendation count.
func filterKnownIDs(ids []string, catalog []core.Product, max int) []string {
	known := make(map[string]bool, len(catalog))
	for _, p := range catalog {
		known[p.ID] = true
	}
	var out []string
	for _, id := range ids {
		if known[id] && len(out) < max {
			out = append(out, id)
		}
	}
	return out
}

func renderCatalog(catalog []core.Product) string {
	var b strings.Builder
	for _, p := range catalog {
		units := 0
		for _, e := range p.Stock {
			units += e.Quantity
		}
		stock := "in stock"
		if units <= 0 {
			stock = "sold out"
		}
		category := p.Category
		if p.Subcategory != "" {
			category += "/" + p.Subcategory
		}
		fmt.Fprintf(&b, "- %s: %s by %s (%s), %s %s, sizes %s, colors %s, %s. %s\n",
			p.ID, p.Name, p.Brand, category,
			core.Currency, p.EffectivePrice().String(),
			strings.Join(p.Sizes, "/"), strings.Join(p.Colors, "/"),
			stock, p.Description)
	}
	return b.String()
}

// structuredSchema reflects a Go struct into the schema map the Responses
// API expects for strict structured output.
func structuredSchema(v any) (map[string]any, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	schemaJSON, err := json.Marshal(reflector.Reflect(v))
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	var schemaMap map[string]any
	if err := json.Unmarshal(schemaJSON, &schemaMap); err != nil {
		return nil, fmt.Errorf("unmarshal schema to map: %w", err)
	}
	return schemaMap, nil
}
