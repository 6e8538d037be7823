package types

import (
	"encoding/json"
)

type Platform string

const (
	Graph  Platform = "aad"
	Flow   Platform = "flow"
	Spo    Platform = "spo"
	Spfx   Platform = "spfx"
	Status Platform = "status"
)

// Result is a single unit of module output. Data is the full, machine shaped
// payload; Summary is the reduced column set rendered for humans. A nil Summary
// means the module has no summarized view and Data is printed as-is.
type Result struct {
	Platform Platform       `json:"platform"`
	Module   string         `json:"module"`
	Filename string         `json:"-"`
	Data     any            `json:"data"`
	Summary  *MarkdownTable `json:"-"`
}

type ResultOption func(*Result)

func NewResult(platform Platform, module string, data any, opts ...ResultOption) Result {
	r := &Result{
		Platform: platform,
		Module:   module,
		Data:     data,
	}

	for _, opt := range opts {
		opt(r)
	}
	return *r
}

func WithFilename(filename string) ResultOption {
	return func(r *Result) {
		r.Filename = filename
	}
}

func WithSummary(table MarkdownTable) ResultOption {
	return func(r *Result) {
		r.Summary = &table
	}
}

func (r *Result) String() string {
	d, _ := json.MarshalIndent(r.Data, "", "  ")
	return string(d)
}

func (r *Result) DataJson() []byte {
	d, _ := json.Marshal(r.Data)
	return d
}
