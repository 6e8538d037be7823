package options

import "github.com/praetorian-inc/m365/pkg/types"

var OutputOpt = types.Option{
	Name:        "output",
	Short:       "o",
	Description: "output format",
	Required:    false,
	Type:        types.String,
	Value:       "text",
	ValueList:   []string{"json", "text", "md", "yaml"},
}

var QueryOpt = types.Option{
	Name:        "query",
	Description: "jq expression applied to structured output",
	Required:    false,
	Type:        types.String,
	Value:       "",
}

var FileNameOpt = types.Option{
	Name:        "file",
	Short:       "f",
	Description: "also write the full JSON result to this file",
	Required:    false,
	Type:        types.String,
	Value:       "",
}

var WorkersOpt = types.Option{
	Name:        "workers",
	Short:       "w",
	Description: "Maximum number of concurrent lookups, 0 for unbounded",
	Required:    false,
	Type:        types.Int,
	Value:       "0",
}
