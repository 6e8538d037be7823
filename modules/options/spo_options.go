package options

import "github.com/praetorian-inc/m365/pkg/types"

var WebUrlOpt = types.Option{
	Name:        "webUrl",
	Short:       "u",
	Description: "Absolute URL of the site to which the navigation node should be added",
	Required:    true,
	Type:        types.String,
	Value:       "",
}

// NavigationLocationOpt is case-sensitive, so the list is enforced by the
// command validator rather than by ValidateOption.
var NavigationLocationOpt = types.Option{
	Name:        "location",
	Short:       "l",
	Description: "Navigation where the node should be added. QuickLaunch|TopNavigationBar",
	Required:    false,
	Type:        types.String,
	Value:       "",
}

var NavigationTitleOpt = types.Option{
	Name:        "title",
	Short:       "t",
	Description: "Navigation node title",
	Required:    true,
	Type:        types.String,
	Value:       "",
}

var NavigationUrlOpt = types.Option{
	Name:        "url",
	Description: "Navigation node URL",
	Required:    true,
	Type:        types.String,
	Value:       "",
}

var ParentNodeIdOpt = types.Option{
	Name:        "parentNodeId",
	Description: "ID of the node below which the node should be added",
	Required:    false,
	Type:        types.String,
	Value:       "",
}

var IsExternalOpt = types.Option{
	Name:        "isExternal",
	Description: "Set, if the navigation node points to an external URL",
	Required:    false,
	Type:        types.Bool,
	Value:       "false",
}
