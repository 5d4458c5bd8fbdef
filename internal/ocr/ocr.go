// Package ocr extracts structured receipt data from images using a
// Gemini vision model.
package ocr

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"google.golang.org/genai"
)

// DefaultModel is used when the OCR_MODEL environment variable is unset.
const DefaultModel = "gemini-2.0-flash"

// Result is the structured data extracted from a receipt image. Fields
// the model could not read are left at their zero value.
type Result struct {
	Date         string           `json:"date"`
	Fournisseur  string           `json:"fournisseur"`
	Description  string           `json:"description"`
	MontantHT    *decimal.Decimal `json:"montant_ht"`
	TPS          *decimal.Decimal `json:"tps"`
	TVQ          *decimal.Decimal `json:"tvq"`
	TotalTTC     *decimal.Decimal `json:"total_ttc"`
	ModePaiement string           `json:"mode_paiement"`
	NumeroRecu   string           `json:"numero_recu"`
	Confiance    float64          `json:"confiance"`
}

const prompt = "Tu es un extracteur de reçus pour une entreprise québécoise.\n\n" +
	"Tâche:\n" +
	"- Lis le reçu ou la facture en pièce jointe.\n" +
	"- Réponds UNIQUEMENT avec un objet JSON strict (pas de commentaires, pas de texte autour).\n\n" +
	"L'objet doit avoir ces champs:\n" +
	"- \"date\": string au format ISO \"YYYY-MM-DD\", ou null\n" +
	"- \"fournisseur\": string, le nom du commerce\n" +
	"- \"description\": string, résumé court de l'achat\n" +
	"- \"montant_ht\": number, le sous-total avant taxes, ou null\n" +
	"- \"tps\": number, le montant de TPS, ou null\n" +
	"- \"tvq\": number, le montant de TVQ, ou null\n" +
	"- \"total_ttc\": number, le total payé, ou null\n" +
	"- \"mode_paiement\": string (ex. \"Carte de crédit\", \"Comptant\"), ou null\n" +
	"- \"numero_recu\": string, le numéro du reçu, ou null\n" +
	"- \"confiance\": number entre 0 et 1, ta confiance globale dans l'extraction\n\n" +
	"Règles:\n" +
	"- Si le sous-total est absent mais que le total et les taxes sont lisibles, calcule montant_ht = total_ttc - tps - tvq.\n" +
	"- Ne confonds pas TPS (5%) et TVQ (9,975%).\n" +
	"- N'encadre PAS la réponse avec ```json ni aucun Markdown.\n" +
	"- La réponse doit commencer par \"{\" et finir par \"}\".\n"

// Client wraps the generative model used for receipt extraction.
type Client struct {
	genai *genai.Client
	model string
}

// NewClient creates an OCR client. The underlying genai client reads
// its API key from the GEMINI_API_KEY environment variable.
func NewClient(ctx context.Context) (*Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("ocr: create genai client: %w", err)
	}

	model := os.Getenv("OCR_MODEL")
	if model == "" {
		model = DefaultModel
	}

	return &Client{genai: client, model: model}, nil
}

// Extract sends a base64 encoded image to the model and decodes its
// JSON answer. On a malformed model response the raw text is returned
// alongside the error so callers can surface it.
func (c *Client) Extract(ctx context.Context, imageBase64, mimeType string) (Result, string, error) {
	image, err := base64.StdEncoding.DecodeString(imageBase64)
	if err != nil {
		return Result{}, "", fmt.Errorf("ocr: decode image: %w", err)
	}

	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: prompt},
				{
					InlineData: &genai.Blob{
						MIMEType: mimeType,
						Data:     image,
					},
				},
			},
		},
	}

	resp, err := c.genai.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return Result{}, "", fmt.Errorf("ocr: generate content: %w", err)
	}

	rawText := resp.Text()
	if rawText == "" {
		return Result{}, "", fmt.Errorf("ocr: empty response from model")
	}

	var result Result
	if err := json.Unmarshal([]byte(cleanModelJSON(rawText)), &result); err != nil {
		return Result{}, rawText, fmt.Errorf("ocr: unmarshal model response: %w", err)
	}

	return result, rawText, nil
}

// cleanModelJSON strips Markdown fences and surrounding junk when the
// model ignores the strict JSON instructions.
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

	// Keep only from the first '{' to the last '}' if there is still
	// text around the object.
	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end != -1 && end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}

	return s
}
