// Package bungie provides a client for the Destiny 2 API on bungie.net.
//
// The client covers the three calls trialscope needs: player profile fetch
// (with a fixed component set), player search, and per-character Trials of
// Osiris activity history.
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client, err := bungie.NewClient(apiKey, appID, appVersion, logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	profile, err := client.GetProfile(ctx, bungie.MembershipTypeSteam, "4611686018467284386")
//
// # Error Handling
//
// Bungie signals planned maintenance through its own error envelope rather
// than HTTP status codes, so every response is pre-screened for the
// system-disabled error code before anything else. Callers can special-case
// that condition:
//
//	if errors.Is(err, bungie.ErrSystemDisabled) {
//		// back off and retry later
//	}
//
// Other failures surface as wrapped transport errors, *APIError for
// non-success statuses, or decode errors for unexpected payloads.
package bungie
