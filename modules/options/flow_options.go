package options

import "github.com/praetorian-inc/m365/pkg/types"

var FlowEnvironmentOpt = types.Option{
	Name:        "environment",
	Short:       "e",
	Description: "Name of the environment the flow belongs to",
	Required:    true,
	Type:        types.String,
	Value:       "",
}

var FlowNameOpt = types.Option{
	Name:        "flow",
	Description: "Name of the flow the run belongs to",
	Required:    true,
	Type:        types.String,
	Value:       "",
}

var FlowRunNameOpt = types.Option{
	Name:        "name",
	Short:       "n",
	Description: "Name of the run to retrieve",
	Required:    true,
	Type:        types.String,
	Value:       "",
}
