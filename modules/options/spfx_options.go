package options

import "github.com/praetorian-inc/m365/pkg/types"

var NewNameOpt = types.Option{
	Name:        "newName",
	Short:       "n",
	Description: "New name for the project",
	Required:    true,
	Type:        types.String,
	Value:       "",
}

var GenerateNewIdOpt = types.Option{
	Name:        "generateNewId",
	Description: "Generate a new solution ID for the project",
	Required:    false,
	Type:        types.Bool,
	Value:       "false",
}
