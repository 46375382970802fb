package bungie

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const (
	productName = "trialscope"
	projectURL  = "https://github.com/tmoller/trialscope"
)

// Client is a Destiny 2 API client.
type Client struct {
	baseURL    string
	apiKey     string
	userAgent  string
	httpClient *http.Client
	logger     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithBaseURL overrides the API base URL. Mainly useful for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// NewClient creates a new Bungie client. All three credentials are required:
// the API key authenticates every request, and the app id and version
// identify this application in the User-Agent header as Bungie's terms ask.
// Supplying an empty credential is a setup bug and fails with
// ErrNotConfigured before any request can be built.
func NewClient(apiKey, appID, appVersion string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: missing API key", ErrNotConfigured)
	}
	if appID == "" {
		return nil, fmt.Errorf("%w: missing app id", ErrNotConfigured)
	}
	if appVersion == "" {
		return nil, fmt.Errorf("%w: missing app version", ErrNotConfigured)
	}

	client := &Client{
		baseURL:   defaultBaseURL,
		apiKey:    apiKey,
		userAgent: fmt.Sprintf("%s/%s AppId/%s (+%s)", productName, appVersion, appID, projectURL),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// doRequest performs an authenticated GET and pre-screens the response for
// the maintenance condition before any other error classification.
func (c *Client) doRequest(ctx context.Context, requestURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("User-Agent", c.userAgent)

	c.logger.Debug().Str("url", requestURL).Msg("Making Bungie API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	// Bungie reports maintenance through its error envelope, sometimes under
	// a 200 status, so this check runs before status validation. The decode
	// is best-effort: a body that isn't an envelope just skips the check.
	var envelope ErrorResponse
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.ErrorCode == ErrorCodeSystemDisabled {
		c.logger.Warn().Str("status", envelope.ErrorStatus).Msg("Destiny API is under maintenance")
		return nil, fmt.Errorf("%w: %s", ErrSystemDisabled, envelope.Message)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}

// GetProfile fetches a player's profile with the fixed component set
// (profile header and character progressions).
func (c *Client) GetProfile(ctx context.Context, membershipType MembershipType, membershipID string) (*Profile, error) {
	body, err := c.doRequest(ctx, c.profileURL(membershipType, membershipID))
	if err != nil {
		return nil, err
	}

	var response profileResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse profile response: %w", err)
	}

	c.logger.Debug().
		Str("membership_id", membershipID).
		Int("characters", len(response.Response.Profile.Data.CharacterIDs)).
		Msg("Retrieved profile")

	return &response.Response, nil
}

// SearchPlayer searches for players by display name. MembershipTypeAll
// searches every platform and is only valid here.
func (c *Client) SearchPlayer(ctx context.Context, membershipType MembershipType, name string) ([]UserInfoCard, error) {
	body, err := c.doRequest(ctx, c.searchPlayerURL(membershipType, name))
	if err != nil {
		return nil, err
	}

	var response searchResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}

	c.logger.Debug().
		Str("name", name).
		Int("results", len(response.Response)).
		Msg("Searched for player")

	return response.Response, nil
}

// GetActivityHistory fetches a character's Trials of Osiris activity history.
func (c *Client) GetActivityHistory(ctx context.Context, membershipType MembershipType, membershipID, characterID string) ([]Activity, error) {
	body, err := c.doRequest(ctx, c.activityHistoryURL(membershipType, membershipID, characterID))
	if err != nil {
		return nil, err
	}

	var response activityHistoryResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse activity history response: %w", err)
	}

	c.logger.Debug().
		Str("character_id", characterID).
		Int("activities", len(response.Response.Activities)).
		Msg("Retrieved activity history")

	return response.Response.Activities, nil
}
