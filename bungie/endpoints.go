package bungie

import (
	"fmt"
	"net/url"
)

const (
	defaultBaseURL = "https://www.bungie.net/Platform/Destiny2"

	// activityModeTrials is the Destiny activity mode code for Trials of
	// Osiris, the only competitive history this client fetches.
	activityModeTrials = 69
)

// profileURL builds the URL for a profile fetch with the fixed component set.
func (c *Client) profileURL(membershipType MembershipType, membershipID string) string {
	return fmt.Sprintf("%s/%s/Profile/%s?components=%s",
		c.baseURL, membershipType.Code(), membershipID, joinComponents(profileComponents))
}

// searchPlayerURL builds the URL for a player search. The trailing slash is
// required; without it the API redirects and drops the search term.
func (c *Client) searchPlayerURL(membershipType MembershipType, name string) string {
	return fmt.Sprintf("%s/SearchDestinyPlayer/%s/%s/",
		c.baseURL, membershipType.Code(), url.PathEscape(name))
}

// activityHistoryURL builds the URL for a character's Trials activity history.
func (c *Client) activityHistoryURL(membershipType MembershipType, membershipID, characterID string) string {
	return fmt.Sprintf("%s/%s/Account/%s/Character/%s/Stats/Activities/?mode=%d",
		c.baseURL, membershipType.Code(), membershipID, characterID, activityModeTrials)
}
