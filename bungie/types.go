package bungie

import "time"

// PlatformErrorCode is the Bungie API's own error code, carried in every
// response envelope.
type PlatformErrorCode int

// Error codes of interest. The full enumeration is far larger; anything else
// is treated as "other" and ignored.
const (
	ErrorCodeNone           PlatformErrorCode = 0
	ErrorCodeSuccess        PlatformErrorCode = 1
	ErrorCodeSystemDisabled PlatformErrorCode = 5
)

// ErrorResponse is the Bungie API error envelope. During maintenance windows
// the API returns this shape in place of the normal payload.
type ErrorResponse struct {
	ErrorCode       PlatformErrorCode `json:"ErrorCode"`
	ThrottleSeconds int               `json:"ThrottleSeconds"`
	ErrorStatus     string            `json:"ErrorStatus"`
	Message         string            `json:"Message"`
	MessageData     map[string]string `json:"MessageData"`
}

// UserInfoCard identifies a player account on a single platform.
type UserInfoCard struct {
	MembershipType          int    `json:"membershipType"`
	MembershipID            string `json:"membershipId"`
	DisplayName             string `json:"displayName"`
	BungieGlobalDisplayName string `json:"bungieGlobalDisplayName"`
	IconPath                string `json:"iconPath"`
}

// Platform returns the normalized platform the account lives on.
func (u UserInfoCard) Platform() MembershipType {
	return MembershipTypeFromCode(u.MembershipType)
}

// profileResponse is the success wrapper around a profile payload.
type profileResponse struct {
	Response Profile `json:"Response"`
}

// Profile is a decoded profile response containing the fixed component set
// (profile header and character progressions).
type Profile struct {
	Profile               ProfileComponent               `json:"profile"`
	CharacterProgressions CharacterProgressionsComponent `json:"characterProgressions"`
}

// ProfileComponent wraps the profile header data.
type ProfileComponent struct {
	Data ProfileData `json:"data"`
}

// ProfileData is the profile header: who the player is and which characters
// they have.
type ProfileData struct {
	UserInfo       UserInfoCard `json:"userInfo"`
	DateLastPlayed time.Time    `json:"dateLastPlayed"`
	CharacterIDs   []string     `json:"characterIds"`
}

// CharacterProgressionsComponent wraps per-character progression data, keyed
// by character id.
type CharacterProgressionsComponent struct {
	Data map[string]CharacterProgressions `json:"data"`
}

// CharacterProgressions holds one character's progressions, keyed by the
// progression definition hash.
type CharacterProgressions struct {
	Progressions map[string]Progression `json:"progressions"`
}

// Progression is one progression track (rank, level, season pass, ...).
type Progression struct {
	ProgressionHash     uint32 `json:"progressionHash"`
	Level               int    `json:"level"`
	CurrentProgress     int    `json:"currentProgress"`
	ProgressToNextLevel int    `json:"progressToNextLevel"`
	NextLevelAt         int    `json:"nextLevelAt"`
}

// searchResponse is the success wrapper around player search results.
type searchResponse struct {
	Response []UserInfoCard `json:"Response"`
}

// activityHistoryResponse is the success wrapper around activity history.
type activityHistoryResponse struct {
	Response ActivityHistory `json:"Response"`
}

// ActivityHistory is a page of historical activities for one character.
type ActivityHistory struct {
	Activities []Activity `json:"activities"`
}

// Activity is a single played activity with its stat values.
type Activity struct {
	Period          time.Time               `json:"period"`
	ActivityDetails ActivityDetails         `json:"activityDetails"`
	Values          map[string]ActivityStat `json:"values"`
}

// ActivityDetails identifies which activity was played.
type ActivityDetails struct {
	ReferenceID          uint32 `json:"referenceId"`
	DirectorActivityHash uint32 `json:"directorActivityHash"`
	InstanceID           string `json:"instanceId"`
	Mode                 int    `json:"mode"`
	Modes                []int  `json:"modes"`
}

// ActivityStat is one named stat for an activity.
type ActivityStat struct {
	Basic ActivityStatValue `json:"basic"`
}

// ActivityStatValue carries a stat's numeric value and its display form.
type ActivityStatValue struct {
	Value        float64 `json:"value"`
	DisplayValue string  `json:"displayValue"`
}

// StatValue returns the numeric value of a named stat, or 0 if the stat is
// not present on this activity.
func (a Activity) StatValue(name string) float64 {
	return a.Values[name].Basic.Value
}

// Kills returns the kill count for this activity.
func (a Activity) Kills() int {
	return int(a.StatValue("kills"))
}

// Deaths returns the death count for this activity.
func (a Activity) Deaths() int {
	return int(a.StatValue("deaths"))
}

// Assists returns the assist count for this activity.
func (a Activity) Assists() int {
	return int(a.StatValue("assists"))
}

// KDRatio returns kills over deaths, treating zero deaths as a flawless run.
func (a Activity) KDRatio() float64 {
	deaths := a.StatValue("deaths")
	if deaths == 0 {
		return a.StatValue("kills")
	}
	return a.StatValue("kills") / deaths
}

// Victory reports whether the player's team won. Standing 0 is a win.
func (a Activity) Victory() bool {
	return a.StatValue("standing") == 0
}

// DurationSeconds returns how long the activity lasted.
func (a Activity) DurationSeconds() int {
	return int(a.StatValue("activityDurationSeconds"))
}
