package riot

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

const (
	// LoL Status API - lightweight, accepted by every key type
	statusEndpoint = "/lol/status/v4/platform-data"

	defaultValidationTimeout = 10 * time.Second
)

// KeyValidator probes a Riot API key before the service starts taking traffic
type KeyValidator struct {
	httpClient *http.Client
	baseURL    string
}

// KeyValidatorOption configures a KeyValidator
type KeyValidatorOption func(*KeyValidator)

// WithBaseURL sets a custom base URL (useful for testing)
func WithBaseURL(url string) KeyValidatorOption {
	return func(v *KeyValidator) {
		v.baseURL = url
	}
}

// WithTimeout sets a custom timeout for validation requests
func WithTimeout(timeout time.Duration) KeyValidatorOption {
	return func(v *KeyValidator) {
		v.httpClient.Timeout = timeout
	}
}

// NewKeyValidator creates a validator that probes the given platform host
func NewKeyValidator(platform string, opts ...KeyValidatorOption) *KeyValidator {
	if platform == "" {
		platform = DefaultRouting.Platform
	}
	v := &KeyValidator{
		httpClient: &http.Client{
			Timeout: defaultValidationTimeout,
		},
		baseURL: fmt.Sprintf("https://%s.api.riotgames.com", platform),
	}

	for _, opt := range opts {
		opt(v)
	}

	return v
}

// ValidateKey returns:
//   - (true, nil) if the key is valid
//   - (false, nil) if the key is invalid or expired (401/403)
//   - (false, error) if validity could not be determined
func (v *KeyValidator) ValidateKey(ctx context.Context, apiKey string) (bool, error) {
	if apiKey == "" {
		return false, fmt.Errorf("API key cannot be empty")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.baseURL+statusEndpoint, nil)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Riot-Token", apiKey)

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return false, nil
	default:
		return false, &APIError{StatusCode: resp.StatusCode, Path: statusEndpoint}
	}
}
