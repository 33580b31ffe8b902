package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mySmartShop/domain"
	"net/http"
	"strings"
	"time"
)

// minResponseLength guards against truncated or empty generations; anything
// shorter is treated as a failure so the caller falls back.
const minResponseLength = 20

type GeminiConfig struct {
	APIKey      string
	BaseUrl     string
	Model       string
	Temperature float64
	MaxTokens   int
}

// GeminiRepository calls the generateContent endpoint to produce one short
// natural-language explanation per recommended product.
type GeminiRepository struct {
	geminiConfig GeminiConfig
	client       *http.Client
}

func NewGeminiRepository(cfg GeminiConfig) *GeminiRepository {
	return &GeminiRepository{
		geminiConfig: cfg,
		client:       &http.Client{Timeout: 5 * time.Second},
	}
}

type generatePart struct {
	Text string `json:"text"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateRequest struct {
	Contents         []generateContent `json:"contents"`
	GenerationConfig generationConfig  `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []generatePart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (r *GeminiRepository) Explain(ctx context.Context, insights domain.UserInsights, product domain.Product, score float64, rank int) (string, error) {
	if r.geminiConfig.APIKey == "" {
		return "", errors.New("gemini api key is not configured")
	}

	payload := generateRequest{
		Contents: []generateContent{
			{Parts: []generatePart{{Text: buildPrompt(insights, product, score, rank)}}},
		},
		GenerationConfig: generationConfig{
			Temperature:     r.geminiConfig.Temperature,
			MaxOutputTokens: r.geminiConfig.MaxTokens,
		},
	}

	payloadByte, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal json payload: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", r.geminiConfig.BaseUrl, r.geminiConfig.Model)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payloadByte))
	if err != nil {
		return "", err
	}
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("x-goog-api-key", r.geminiConfig.APIKey)

	res, err := r.client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return "", fmt.Errorf("gemini returned status %d: %s", res.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to unmarshal gemini response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("gemini error %d: %s", parsed.Error.Code, parsed.Error.Message)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini returned no candidates")
	}

	text := strings.TrimSpace(parsed.Candidates[0].Content.Parts[0].Text)
	if len(text) < minResponseLength {
		return "", fmt.Errorf("gemini returned a truncated response: %q", text)
	}

	return text, nil
}

// buildPrompt condenses the user's taste summary and the candidate into a
// short instruction so the generation stays one to two sentences.
func buildPrompt(insights domain.UserInsights, product domain.Product, score float64, rank int) string {
	var sb strings.Builder

	sb.WriteString("You write one-sentence product recommendation explanations for an online shop.\n")
	sb.WriteString("Shopper profile:\n")

	if len(insights.FavoriteCategories) > 0 {
		categories := make([]string, 0, len(insights.FavoriteCategories))
		for _, c := range insights.FavoriteCategories {
			categories = append(categories, c.Category)
		}
		fmt.Fprintf(&sb, "- favorite categories: %s\n", strings.Join(categories, ", "))
	}
	if len(insights.FavoriteBrands) > 0 {
		brands := make([]string, 0, len(insights.FavoriteBrands))
		for _, b := range insights.FavoriteBrands {
			brands = append(brands, b.Brand)
		}
		fmt.Fprintf(&sb, "- favorite brands: %s\n", strings.Join(brands, ", "))
	}
	if insights.AvgPrice > 0 {
		fmt.Fprintf(&sb, "- typical spend: %.2f\n", insights.AvgPrice)
	}
	for _, p := range insights.RecentPurchases {
		fmt.Fprintf(&sb, "- recently bought: %s (%s)\n", p.Name, p.Category)
	}

	fmt.Fprintf(&sb, "Recommended product (rank %d, match score %.2f): %s, category %s, brand %s, price %.2f, rating %.1f.\n",
		rank, score, product.Name, product.Category, product.Brand, product.Price, product.Rating)
	sb.WriteString("Explain in one or two friendly sentences why this shopper would like it. Do not mention scores or ranks.")

	return sb.String()
}
