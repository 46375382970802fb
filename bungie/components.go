package bungie

import (
	"strconv"
	"strings"
)

// ComponentType names a section of a Destiny profile response. The API only
// populates the sections listed in the components query parameter.
type ComponentType int

// The component codes defined by the Destiny 2 API.
const (
	ComponentNone                  ComponentType = 0
	ComponentProfiles              ComponentType = 100
	ComponentVendorReceipts        ComponentType = 101
	ComponentProfileInventories    ComponentType = 102
	ComponentProfileCurrencies     ComponentType = 103
	ComponentProfileProgression    ComponentType = 104
	ComponentCharacters            ComponentType = 200
	ComponentCharacterInventories  ComponentType = 201
	ComponentCharacterProgressions ComponentType = 202
	ComponentCharacterRenderData   ComponentType = 203
	ComponentCharacterActivities   ComponentType = 204
	ComponentCharacterEquipment    ComponentType = 205
	ComponentItemInstances         ComponentType = 300
	ComponentItemObjectives        ComponentType = 301
	ComponentItemPerks             ComponentType = 302
	ComponentItemRenderData        ComponentType = 303
	ComponentItemStats             ComponentType = 304
	ComponentItemSockets           ComponentType = 305
	ComponentItemTalentGrids       ComponentType = 306
	ComponentItemCommonData        ComponentType = 307
	ComponentItemPlugStates        ComponentType = 308
	ComponentVendors               ComponentType = 400
	ComponentVendorCategories      ComponentType = 401
	ComponentVendorSales           ComponentType = 402
	ComponentKiosks                ComponentType = 500
	ComponentCurrencyLookups       ComponentType = 600
	ComponentPresentationNodes     ComponentType = 700
	ComponentCollectibles          ComponentType = 800
	ComponentRecords               ComponentType = 900
	ComponentTransitory            ComponentType = 1000
	ComponentMetrics               ComponentType = 1100
)

// profileComponents is the fixed set of components requested on every profile
// call. The client only ever needs the profile header and character
// progressions, so this is not caller-configurable.
var profileComponents = []ComponentType{
	ComponentProfiles,
	ComponentCharacterProgressions,
}

// Code returns the component's numeric code as a string.
func (c ComponentType) Code() string {
	return strconv.Itoa(int(c))
}

// joinComponents renders a component list as the comma-joined query value the
// API expects, preserving declaration order.
func joinComponents(components []ComponentType) string {
	codes := make([]string, 0, len(components))
	for _, c := range components {
		codes = append(codes, c.Code())
	}
	return strings.Join(codes, ",")
}
