// Package ocr extracts receipt fields from photos using Gemini vision.
// The model is asked for strict JSON; the output is then validated and
// normalized before it becomes a transaction, so a hallucinated field
// never reaches the ledger unchecked.
package ocr

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

// DefaultModelName is the Gemini model used for receipt extraction.
const DefaultModelName = "gemini-2.5-flash"

// Receipt amounts outside these bounds are treated as misreads.
const (
	minReceiptAmount = 1_000
	maxReceiptAmount = 100_000_000
)

// Fields is the structured result of reading one receipt photo.
type Fields struct {
	Amount   float64   // grand total, always within the sanity bounds
	Merchant string    // shop name, "Merchant" when unreadable
	Category string    // expense category derived from the merchant
	Date     time.Time // zero when the receipt shows no usable date
	Detail   string    // line items, newline separated
}

// Extractor calls Gemini to read receipts.
type Extractor struct {
	client *genai.Client
	model  string
	loc    *time.Location
	log    zerolog.Logger
}

// NewExtractor creates a Gemini-backed receipt extractor. Credentials
// come from the environment (GOOGLE_API_KEY or application default
// credentials).
func NewExtractor(ctx context.Context, loc *time.Location, log zerolog.Logger) (*Extractor, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("ocr: create genai client: %w", err)
	}
	return &Extractor{client: client, model: DefaultModelName, loc: loc, log: log}, nil
}

const receiptPrompt = "You are a receipt reader for Indonesian shop receipts.\n\n" +
	"Task:\n" +
	"- Read the attached receipt photo.\n" +
	"- Output STRICT JSON only (no comments, no extra text).\n" +
	"- Output a single JSON object.\n\n" +
	"The object must have these fields:\n" +
	"- \"amount\": number, the grand total paid, in rupiah, no separators\n" +
	"- \"merchant\": string, the shop name, or null if unreadable\n" +
	"- \"date\": string \"DD/MM/YYYY\" from the receipt, or null\n" +
	"- \"items\": array of strings, one per purchased line item, or []\n\n" +
	"Return ONLY valid raw JSON.\n" +
	"Do NOT wrap the response in code fences.\n" +
	"Output must begin with \"{\" and end with \"}\".\n"

// ExtractReceipt reads one receipt image and returns its fields. It
// fails when the model output has no usable amount; everything else
// degrades to defaults.
func (e *Extractor) ExtractReceipt(ctx context.Context, image []byte, mimeType string) (*Fields, error) {
	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: receiptPrompt},
				{
					InlineData: &genai.Blob{
						MIMEType: mimeType,
						Data:     image,
					},
				},
			},
		},
	}

	resp, err := e.client.Models.GenerateContent(ctx, e.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("ocr: generate content: %w", err)
	}

	rawText := resp.Text()
	if rawText == "" {
		return nil, fmt.Errorf("ocr: empty response from model")
	}

	fields, err := parseModelOutput(cleanModelJSON(rawText), e.loc)
	if err != nil {
		return nil, fmt.Errorf("ocr: %w\nraw response: %s", err, rawText)
	}

	e.log.Info().
		Float64("amount", fields.Amount).
		Str("merchant", fields.Merchant).
		Str("category", fields.Category).
		Msg("Receipt extracted")
	return fields, nil
}

// parseModelOutput validates the model's JSON and normalizes it into
// Fields. The amount is mandatory and bounded; merchant, date and items
// are best effort.
func parseModelOutput(clean string, loc *time.Location) (*Fields, error) {
	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(clean), &obj); err != nil {
		return nil, fmt.Errorf("unmarshal JSON: %w", err)
	}

	amount, ok := obj["amount"].(float64)
	if !ok {
		return nil, fmt.Errorf("model output has no numeric amount")
	}
	if amount < minReceiptAmount || amount > maxReceiptAmount {
		return nil, fmt.Errorf("amount %.0f outside receipt bounds", amount)
	}

	fields := &Fields{Amount: amount, Merchant: "Merchant"}

	if m, ok := obj["merchant"].(string); ok && strings.TrimSpace(m) != "" {
		fields.Merchant = strings.TrimSpace(m)
	}
	fields.Category = CategoryFromMerchant(fields.Merchant)

	if d, ok := obj["date"].(string); ok && d != "" {
		if t, err := time.ParseInLocation("02/01/2006", strings.TrimSpace(d), loc); err == nil {
			fields.Date = t
		}
	}

	if items, ok := obj["items"].([]interface{}); ok {
		fields.Detail = joinItems(items)
	}

	return fields, nil
}

// maxDetailLines caps how many receipt lines end up in the detail block.
const maxDetailLines = 30

func joinItems(items []interface{}) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if len(s) < 2 {
			continue
		}
		lines = append(lines, s)
		if len(lines) == maxDetailLines {
			break
		}
	}
	return strings.Join(lines, "\n")
}

// cleanModelJSON strips Markdown fences and surrounding junk when the
// model ignores the raw-JSON instruction.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}

	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}

	s = strings.TrimSpace(s)

	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end != -1 && end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}

	return s
}
