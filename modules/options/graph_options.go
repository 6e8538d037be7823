package options

import (
	"regexp"

	"github.com/praetorian-inc/m365/pkg/types"
)

// GUIDFormat matches the canonical 8-4-4-4-12 hex form, any case.
var GUIDFormat = regexp.MustCompile("^[0-9A-Fa-f]{8}-([0-9A-Fa-f]{4}-){3}[0-9A-Fa-f]{12}$")

var AppIdOpt = types.Option{
	Name:        "appId",
	Short:       "i",
	Description: "Application (client) ID of the app registration",
	Required:    false,
	Type:        types.String,
	Value:       "",
	ValueFormat: GUIDFormat,
}

var ObjectIdOpt = types.Option{
	Name:        "objectId",
	Description: "Object ID of the service principal",
	Required:    false,
	Type:        types.String,
	Value:       "",
	ValueFormat: GUIDFormat,
}

var DisplayNameOpt = types.Option{
	Name:        "displayName",
	Short:       "n",
	Description: "Display name of the service principal",
	Required:    false,
	Type:        types.String,
	Value:       "",
}
