package bungie

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const systemDisabledBody = `{
	"ErrorCode": 5,
	"ThrottleSeconds": 0,
	"ErrorStatus": "SystemDisabled",
	"Message": "This system is temporarily disabled for maintenance.",
	"MessageData": {}
}`

func TestNewClient(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name       string
		apiKey     string
		appID      string
		appVersion string
		wantErr    bool
		errMsg     string
	}{
		{
			name:       "valid config",
			apiKey:     "test-key",
			appID:      "12345",
			appVersion: "1.2.0",
		},
		{
			name:       "missing API key",
			appID:      "12345",
			appVersion: "1.2.0",
			wantErr:    true,
			errMsg:     "missing API key",
		},
		{
			name:       "missing app id",
			apiKey:     "test-key",
			appVersion: "1.2.0",
			wantErr:    true,
			errMsg:     "missing app id",
		},
		{
			name:    "missing app version",
			apiKey:  "test-key",
			appID:   "12345",
			wantErr: true,
			errMsg:  "missing app version",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.apiKey, tt.appID, tt.appVersion, logger)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrNotConfigured)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "trialscope/1.2.0 AppId/12345 (+https://github.com/tmoller/trialscope)", client.userAgent)
		})
	}
}

func TestClientOptions(t *testing.T) {
	t.Run("with timeout", func(t *testing.T) {
		client := newTestClient(t, WithTimeout(5*time.Second))
		assert.Equal(t, 5*time.Second, client.httpClient.Timeout)
	})

	t.Run("with custom http client", func(t *testing.T) {
		customClient := &http.Client{Timeout: 10 * time.Second}
		client := newTestClient(t, WithHTTPClient(customClient))
		assert.Equal(t, customClient, client.httpClient)
	})

	t.Run("with base URL", func(t *testing.T) {
		client := newTestClient(t, WithBaseURL("http://localhost:8080"))
		assert.Equal(t, "http://localhost:8080/3/Profile/1?components=100,202",
			client.profileURL(MembershipTypeSteam, "1"))
	})
}

func TestDoRequestHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("X-API-Key"))
		assert.Equal(t, "trialscope/1.2.0 AppId/12345 (+https://github.com/tmoller/trialscope)", r.Header.Get("User-Agent"))
		w.Write([]byte(`{"Response": [], "ErrorCode": 1}`))
	}))
	defer server.Close()

	client := newTestClient(t, WithBaseURL(server.URL))

	_, err := client.SearchPlayer(context.Background(), MembershipTypeAll, "Gladd")
	require.NoError(t, err)
}

func TestDoRequestSystemDisabled(t *testing.T) {
	// Bungie has been observed returning the maintenance envelope under both
	// success and error statuses; the detection must not depend on status.
	for _, status := range []int{http.StatusOK, http.StatusServiceUnavailable} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(status)
				w.Write([]byte(systemDisabledBody))
			}))
			defer server.Close()

			client := newTestClient(t, WithBaseURL(server.URL))

			_, err := client.GetProfile(context.Background(), MembershipTypeSteam, "123")
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrSystemDisabled)
			assert.Contains(t, err.Error(), "temporarily disabled")

			var apiErr *APIError
			assert.False(t, errors.As(err, &apiErr), "maintenance must take precedence over status validation")
		})
	}
}

func TestDoRequestSuccessEnvelopeIsNotMaintenance(t *testing.T) {
	// A normal success payload also decodes into the envelope shape (with
	// ErrorCode 1); it must pass through untouched.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"Response": {"profile": {"data": {"userInfo": {"membershipType": 3, "membershipId": "123", "displayName": "Gladd"}, "characterIds": ["1", "2", "3"]}}},
			"ErrorCode": 1,
			"ErrorStatus": "Success"
		}`))
	}))
	defer server.Close()

	client := newTestClient(t, WithBaseURL(server.URL))

	profile, err := client.GetProfile(context.Background(), MembershipTypeSteam, "123")
	require.NoError(t, err)
	assert.Equal(t, "Gladd", profile.Profile.Data.UserInfo.DisplayName)
	assert.Equal(t, MembershipTypeSteam, profile.Profile.Data.UserInfo.Platform())
	assert.Len(t, profile.Profile.Data.CharacterIDs, 3)
}

func TestDoRequestNonEnvelopeBodyUsesStatusValidation(t *testing.T) {
	// A body that does not decode as the envelope at all (here: a JSON
	// array) must skip the maintenance check and fall through to status
	// validation.
	t.Run("success status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"membershipType": 3, "membershipId": "123"}]`))
		}))
		defer server.Close()

		client := newTestClient(t, WithBaseURL(server.URL))

		body, err := client.doRequest(context.Background(), server.URL+"/anything")
		require.NoError(t, err)
		assert.NotEmpty(t, body)
	})

	t.Run("404 status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`not json at all`))
		}))
		defer server.Close()

		client := newTestClient(t, WithBaseURL(server.URL))

		_, err := client.GetProfile(context.Background(), MembershipTypeSteam, "123")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrSystemDisabled)

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
		assert.True(t, apiErr.IsNotFound())
	})
}

func TestDoRequestTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := newTestClient(t, WithBaseURL(server.URL))

	_, err := client.GetProfile(context.Background(), MembershipTypeSteam, "123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request failed")
}

func TestSearchPlayer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/SearchDestinyPlayer/-1/Gladd/", r.URL.Path)
		w.Write([]byte(`{
			"Response": [
				{"membershipType": 3, "membershipId": "123", "displayName": "Gladd"},
				{"membershipType": 2, "membershipId": "456", "displayName": "Gladd"}
			],
			"ErrorCode": 1
		}`))
	}))
	defer server.Close()

	client := newTestClient(t, WithBaseURL(server.URL))

	results, err := client.SearchPlayer(context.Background(), MembershipTypeAll, "Gladd")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, MembershipTypeSteam, results[0].Platform())
	assert.Equal(t, MembershipTypePSN, results[1].Platform())
}

func TestGetActivityHistory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/Account/123/Character/456/Stats/Activities/", r.URL.Path)
		assert.Equal(t, "69", r.URL.Query().Get("mode"))
		w.Write([]byte(`{
			"Response": {
				"activities": [
					{
						"period": "2024-06-01T17:04:30Z",
						"activityDetails": {"instanceId": "987", "mode": 69},
						"values": {
							"kills": {"basic": {"value": 12, "displayValue": "12"}},
							"deaths": {"basic": {"value": 3, "displayValue": "3"}},
							"assists": {"basic": {"value": 5, "displayValue": "5"}},
							"standing": {"basic": {"value": 0, "displayValue": "Victory"}},
							"activityDurationSeconds": {"basic": {"value": 540, "displayValue": "9m"}}
						}
					},
					{
						"period": "2024-06-01T16:40:11Z",
						"activityDetails": {"instanceId": "986", "mode": 69},
						"values": {
							"kills": {"basic": {"value": 4, "displayValue": "4"}},
							"deaths": {"basic": {"value": 0, "displayValue": "0"}},
							"standing": {"basic": {"value": 1, "displayValue": "Defeat"}}
						}
					}
				]
			},
			"ErrorCode": 1
		}`))
	}))
	defer server.Close()

	client := newTestClient(t, WithBaseURL(server.URL))

	activities, err := client.GetActivityHistory(context.Background(), MembershipTypeSteam, "123", "456")
	require.NoError(t, err)
	require.Len(t, activities, 2)

	first := activities[0]
	assert.Equal(t, 12, first.Kills())
	assert.Equal(t, 3, first.Deaths())
	assert.Equal(t, 5, first.Assists())
	assert.InDelta(t, 4.0, first.KDRatio(), 0.001)
	assert.True(t, first.Victory())
	assert.Equal(t, 540, first.DurationSeconds())
	assert.Equal(t, time.Date(2024, 6, 1, 17, 4, 30, 0, time.UTC), first.Period)

	second := activities[1]
	assert.False(t, second.Victory())
	assert.InDelta(t, 4.0, second.KDRatio(), 0.001, "zero deaths counts kills as the ratio")
	assert.Zero(t, second.StatValue("missing"), "absent stats read as zero")
}

func TestGetProfileDecodeFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Response": "not an object"}`))
	}))
	defer server.Close()

	client := newTestClient(t, WithBaseURL(server.URL))

	_, err := client.GetProfile(context.Background(), MembershipTypeSteam, "123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse profile response")
	assert.NotErrorIs(t, err, ErrSystemDisabled)
}
