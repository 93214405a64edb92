package openfda

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/microcosm-cc/bluemonday"
	"github.com/pharmakart/pharmacy-store-platform/internal/models"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Fixed text served whenever the lookup cannot provide a field.
const FallbackText = "No information available from FDA database"

// Client looks up drug label information by brand name. Implementations are
// best-effort: callers must treat any error as "serve the fallback".
type Client interface {
	Lookup(ctx context.Context, name string) (*models.DrugInfo, error)
}

type client struct {
	baseURL    string
	httpClient *http.Client
	sanitizer  *bluemonday.Policy
}

func NewClient(baseURL string, httpClient *http.Client) Client {

	if httpClient.Transport == nil {
		httpClient.Transport = otelhttp.NewTransport(http.DefaultTransport)
	}

	return &client{
		baseURL:    baseURL,
		httpClient: httpClient,
		sanitizer:  bluemonday.StrictPolicy(),
	}
}

func FallbackInfo() *models.DrugInfo {
	return &models.DrugInfo{
		Description: FallbackText,
		Uses:        FallbackText,
		SideEffects: FallbackText,
		Precautions: FallbackText,
	}
}

// label result fields, each an array of free-text sections
type labelResult struct {
	Description          []string `json:"description"`
	Purpose              []string `json:"purpose"`
	ClinicalPharmacology []string `json:"clinical_pharmacology"`
	IndicationsAndUsage  []string `json:"indications_and_usage"`
	AdverseReactions     []string `json:"adverse_reactions"`
	Warnings             []string `json:"warnings"`
	BoxedWarning         []string `json:"boxed_warning"`
	Contraindications    []string `json:"contraindications"`
	DrugInteractions     []string `json:"drug_interactions"`
	Precautions          []string `json:"precautions"`
}

type labelResponse struct {
	Results []labelResult `json:"results"`
}

// Lookup queries the openFDA drug label endpoint for the brand name and maps
// the first result's sections onto DrugInfo, preferring the most specific
// section for each field the way the storefront has always presented them.
func (c *client) Lookup(ctx context.Context, name string) (*models.DrugInfo, error) {

	endpoint := fmt.Sprintf("%s/drug/label.json?search=%s&limit=1",
		c.baseURL, url.QueryEscape(fmt.Sprintf("openfda.brand_name:%q", name)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build openFDA request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openFDA request failed: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openFDA returned status %d", resp.StatusCode)
	}

	var payload labelResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode openFDA response: %w", err)
	}

	if len(payload.Results) == 0 {
		return nil, fmt.Errorf("no openFDA results for %q", name)
	}

	result := payload.Results[0]
	info := FallbackInfo()

	if text, ok := firstOf(result.Description, result.Purpose, result.ClinicalPharmacology); ok {
		info.Description = c.sanitizer.Sanitize(text)
	}

	if text, ok := firstOf(result.IndicationsAndUsage, result.Purpose); ok {
		info.Uses = c.sanitizer.Sanitize(text)
	}

	if text, ok := firstOf(result.AdverseReactions, result.Warnings, result.BoxedWarning, result.Contraindications, result.DrugInteractions); ok {
		info.SideEffects = c.sanitizer.Sanitize(text)
	}

	if text, ok := firstOf(result.Precautions, result.Warnings, result.DrugInteractions, result.Contraindications); ok {
		info.Precautions = c.sanitizer.Sanitize(text)
	}

	return info, nil
}

// firstOf returns the first section that has any text.
func firstOf(sections ...[]string) (string, bool) {
	for _, section := range sections {
		if len(section) > 0 && section[0] != "" {
			return section[0], true
		}
	}

	return "", false
}
