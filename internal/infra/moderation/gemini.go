package moderation

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const moderationPrompt = "Analyse cette image. Réponds uniquement par 'SAFE' si elle est " +
	"appropriée pour une publicité sur une newsletter pro, ou 'UNSAFE' si elle contient du " +
	"contenu choquant, sexuel, violent ou de la propagande. Si tu n'es pas sûr, réponds 'UNSAFE'."

// GeminiClassifier asks a Gemini vision model for a SAFE/UNSAFE verdict.
type GeminiClassifier struct {
	apiKey string
	model  string
}

func NewGeminiClassifier(apiKey string) *GeminiClassifier {
	return &GeminiClassifier{apiKey: apiKey, model: "gemini-1.5-flash"}
}

func (g *GeminiClassifier) IsSafe(ctx context.Context, image []byte, mimeType string) (bool, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return false, fmt.Errorf("moderation client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(g.model)
	resp, err := model.GenerateContent(ctx,
		genai.ImageData(formatFromMIME(mimeType), image),
		genai.Text(moderationPrompt),
	)
	if err != nil {
		return false, fmt.Errorf("moderation request: %w", err)
	}

	verdict := strings.ToUpper(strings.TrimSpace(textOf(resp)))
	log.Printf("[MODERATION] verdict=%q", verdict)

	return strings.Contains(verdict, "SAFE") && !strings.Contains(verdict, "UNSAFE"), nil
}

func textOf(resp *genai.GenerateContentResponse) string {
	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				b.WriteString(string(t))
			}
		}
	}
	return b.String()
}

// formatFromMIME maps "image/jpeg" to the bare format Gemini expects.
func formatFromMIME(mimeType string) string {
	if f, ok := strings.CutPrefix(mimeType, "image/"); ok && f != "" {
		return f
	}
	return "jpeg"
}
