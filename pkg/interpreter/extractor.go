package interpreter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"MediPlan-Backend/domain"
	"MediPlan-Backend/internal/utils"
)

// RuleExtractor is one stage of the interpretation chain. A stage either
// returns a well-formed rule list or an error, which triggers the next
// stage.
type RuleExtractor interface {
	Name() string
	Extract(ctx context.Context, text string) ([]domain.DietRule, error)
}

// DefaultExtractors returns the staged chain in fallback order: Gemini,
// then the NER model service, then the deterministic keyword scanner.
func DefaultExtractors() []RuleExtractor {
	return []RuleExtractor{
		NewGeminiExtractor(),
		NewNERExtractor(),
		NewKeywordExtractor(),
	}
}

type extractedRule struct {
	RuleText       string   `json:"rule_text"`
	Priority       string   `json:"priority"`
	FoodCategories []string `json:"food_categories"`
	Action         string   `json:"action"`
	Source         string   `json:"source"`
}

type geminiExtractor struct {
	httpClient *http.Client
}

func NewGeminiExtractor() RuleExtractor {
	return &geminiExtractor{
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (e *geminiExtractor) Name() string { return "gemini" }

func (e *geminiExtractor) Extract(ctx context.Context, text string) ([]domain.DietRule, error) {
	geminiAPIKey := utils.GetConfig("GEMINI_API_KEY")
	if geminiAPIKey == "" {
		return nil, fmt.Errorf("%w: GEMINI_API_KEY not set", domain.ErrExtractionBackend)
	}

	geminiModel := utils.GetConfig("GEMINI_MODEL")
	if geminiModel == "" {
		return nil, fmt.Errorf("%w: GEMINI_MODEL not set", domain.ErrExtractionBackend)
	}

	geminiURL := fmt.Sprintf("https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s", geminiModel, geminiAPIKey)

	prompt := "Extract dietary rules from the following medical notes. Respond ONLY with a valid JSON array. " +
		"Each element must contain exactly these fields: 'rule_text' (string), 'priority' (REQUIRED, RECOMMENDED or OPTIONAL), " +
		"'food_categories' (array drawn from proteins, carbs, dairy, fats, vegetables, fruits, sweets, all), " +
		"'action' (include, exclude or limit) and 'source' (string). " +
		"Do not include any explanations, markdown formatting, or extra text.\n\nNOTES:\n" + text

	requestBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]interface{}{
					{"text": prompt},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"temperature":     0.1,
			"topP":            0.8,
			"topK":            40,
			"maxOutputTokens": 2048,
		},
	}

	requestJSON, err := json.Marshal(requestBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", geminiURL, bytes.NewBuffer(requestJSON))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("gemini API error: %s - %s", resp.Status, string(bodyBytes))
	}

	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		return nil, err
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("%w: empty gemini response", domain.ErrExtractionBackend)
	}

	return parseRuleJSON(geminiResp.Candidates[0].Content.Parts[0].Text, "gemini")
}

// parseRuleJSON extracts a JSON array from free-form model output,
// stripping markdown fences when present, and normalizes each rule.
func parseRuleJSON(responseText, source string) ([]domain.DietRule, error) {
	responseText = strings.TrimSpace(responseText)
	if strings.HasPrefix(responseText, "```json") {
		responseText = strings.TrimPrefix(responseText, "```json")
		responseText = strings.TrimSuffix(responseText, "```")
	} else if strings.HasPrefix(responseText, "```") {
		responseText = strings.TrimPrefix(responseText, "```")
		responseText = strings.TrimSuffix(responseText, "```")
	}

	jsonPattern := regexp.MustCompile(`(?s)\[.*\]`)
	if matches := jsonPattern.FindString(responseText); matches != "" {
		responseText = matches
	}

	var raw []extractedRule
	if err := json.Unmarshal([]byte(strings.TrimSpace(responseText)), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse extracted rules: %v", err)
	}

	var rules []domain.DietRule
	for _, r := range raw {
		rule, ok := normalizeRule(r, source)
		if !ok {
			continue
		}
		rules = append(rules, rule)
	}

	if len(rules) == 0 {
		return nil, fmt.Errorf("%w: no usable rules in response", domain.ErrExtractionBackend)
	}
	return rules, nil
}

func normalizeRule(r extractedRule, source string) (domain.DietRule, bool) {
	if strings.TrimSpace(r.RuleText) == "" {
		return domain.DietRule{}, false
	}

	priority := domain.RulePriority(strings.ToUpper(strings.TrimSpace(r.Priority)))
	switch priority {
	case domain.PriorityRequired, domain.PriorityRecommended, domain.PriorityOptional:
	default:
		priority = domain.PriorityOptional
	}

	action := domain.RuleAction(strings.ToLower(strings.TrimSpace(r.Action)))
	switch action {
	case domain.ActionInclude, domain.ActionExclude, domain.ActionLimit:
	default:
		return domain.DietRule{}, false
	}

	var categories []domain.FoodCategory
	for _, c := range r.FoodCategories {
		category := domain.FoodCategory(strings.ToLower(strings.TrimSpace(c)))
		switch category {
		case domain.CategoryProteins, domain.CategoryCarbs, domain.CategoryDairy,
			domain.CategoryFats, domain.CategoryVegetables, domain.CategoryFruits,
			domain.CategorySweets, domain.CategoryAll:
			categories = appendCategory(categories, category)
		}
	}
	if len(categories) == 0 {
		return domain.DietRule{}, false
	}
	sortCategories(categories)

	if r.Source == "" {
		r.Source = source
	}

	return domain.DietRule{
		RuleText:       strings.TrimSpace(r.RuleText),
		Priority:       priority,
		FoodCategories: categories,
		Action:         action,
		Source:         r.Source,
	}, true
}

type nerExtractor struct {
	httpClient *http.Client
}

func NewNERExtractor() RuleExtractor {
	return &nerExtractor{
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

func (e *nerExtractor) Name() string { return "ner" }

func (e *nerExtractor) Extract(ctx context.Context, text string) ([]domain.DietRule, error) {
	nerModelURL := utils.GetConfig("NER_MODEL_URL")
	if nerModelURL == "" {
		return nil, fmt.Errorf("%w: NER_MODEL_URL not set", domain.ErrExtractionBackend)
	}

	requestJSON, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", nerModelURL, bytes.NewBuffer(requestJSON))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("NER model error: %s - %s", resp.Status, string(bodyBytes))
	}

	var nerResponse struct {
		Success  bool            `json:"success"`
		Entities []extractedRule `json:"entities"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&nerResponse); err != nil {
		return nil, err
	}

	if !nerResponse.Success || len(nerResponse.Entities) == 0 {
		return nil, fmt.Errorf("%w: NER model returned no entities", domain.ErrExtractionBackend)
	}

	var rules []domain.DietRule
	for _, entity := range nerResponse.Entities {
		rule, ok := normalizeRule(entity, "ner")
		if !ok {
			continue
		}
		rules = append(rules, rule)
	}

	if len(rules) == 0 {
		return nil, fmt.Errorf("%w: no usable rules from NER model", domain.ErrExtractionBackend)
	}
	return rules, nil
}
