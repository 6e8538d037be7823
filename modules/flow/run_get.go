package flow

import (
	"context"
	"fmt"
	"net/url"

	"github.com/praetorian-inc/m365/internal/message"
	op "github.com/praetorian-inc/m365/internal/output_providers"
	"github.com/praetorian-inc/m365/internal/registry"
	"github.com/praetorian-inc/m365/modules"
	"github.com/praetorian-inc/m365/modules/options"
	"github.com/praetorian-inc/m365/pkg/request"
	"github.com/praetorian-inc/m365/pkg/session"
	"github.com/praetorian-inc/m365/pkg/types"
)

const apiVersion = "2016-11-01"

var RunGetMetadata = modules.Metadata{
	Id:          "get",
	Path:        []string{"run"},
	Description: "Gets information about a specific run of the specified Microsoft Flow",
	Platform:    types.Flow,
	Authors:     []string{"Praetorian"},
	References: []string{
		"https://learn.microsoft.com/en-us/power-automate/",
	},
}

var RunGetOptions = []*types.Option{
	&options.FlowEnvironmentOpt,
	&options.FlowNameOpt,
	&options.FlowRunNameOpt,
}

var RunGetOutputProviders = types.OutputProviders{
	op.NewConsoleProvider,
	op.NewFileProvider,
}

func init() {
	registry.Register(RunGetMetadata, RunGetOptions, nil, NewRunGet)
}

// Getter is the part of the REST client the command needs.
type Getter interface {
	Get(ctx context.Context, url string, headers request.Headers, out any) error
}

type RunGet struct {
	modules.BaseModule
	client  Getter
	baseURL string
}

func NewRunGet(opts []*types.Option, sess *session.Session, run types.Run) (modules.Module, error) {
	return newRunGet(opts, sess, run, sess.Client(sess.AzMgmt()), sess.AzMgmt()), nil
}

func newRunGet(opts []*types.Option, sess *session.Session, run types.Run, client Getter, baseURL string) *RunGet {
	return &RunGet{
		BaseModule: modules.NewBaseModule(RunGetMetadata, opts, sess, run, RunGetOutputProviders),
		client:     client,
		baseURL:    baseURL,
	}
}

// RunURL builds the management URL of a flow run. baseURL must end with a
// slash.
func RunURL(baseURL, environment, flow, name string) string {
	return fmt.Sprintf("%sproviders/Microsoft.ProcessSimple/environments/%s/flows/%s/runs/%s?api-version=%s",
		baseURL, url.PathEscape(environment), url.PathEscape(flow), url.PathEscape(name), apiVersion)
}

func (m *RunGet) Invoke(ctx context.Context) error {
	environment := options.Value(options.FlowEnvironmentOpt.Name, m.Options)
	flow := options.Value(options.FlowNameOpt.Name, m.Options)
	name := options.Value(options.FlowRunNameOpt.Name, m.Options)

	message.Verbose("Retrieving information about run %s of Microsoft Flow %s...", name, flow)

	var run map[string]any
	if err := m.client.Get(ctx, RunURL(m.baseURL, environment, flow, name), request.Headers{"accept": "application/json"}, &run); err != nil {
		return err
	}

	return m.Send(ctx, m.MakeResult(run, types.WithSummary(RunSummary(run))))
}

// RunSummary extracts name, start and end time, status and trigger name.
// Missing values render as empty strings.
func RunSummary(run map[string]any) types.MarkdownTable {
	props, _ := run["properties"].(map[string]any)
	trigger, _ := props["trigger"].(map[string]any)

	return types.MarkdownTable{
		TableHeading: "Flow run",
		Headers:      []string{"name", "startTime", "endTime", "status", "triggerName"},
		Rows: [][]string{{
			stringField(run, "name"),
			stringField(props, "startTime"),
			stringField(props, "endTime"),
			stringField(props, "status"),
			stringField(trigger, "name"),
		}},
	}
}

func stringField(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	switch v := m[key].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
