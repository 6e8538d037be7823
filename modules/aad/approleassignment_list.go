package aad

import (
	"context"
	"log/slog"

	op "github.com/praetorian-inc/m365/internal/output_providers"
	"github.com/praetorian-inc/m365/internal/registry"
	"github.com/praetorian-inc/m365/modules"
	"github.com/praetorian-inc/m365/modules/options"
	"github.com/praetorian-inc/m365/pkg/approleassignment"
	"github.com/praetorian-inc/m365/pkg/graph"
	"github.com/praetorian-inc/m365/pkg/session"
	"github.com/praetorian-inc/m365/pkg/types"
)

var AppRoleAssignmentListMetadata = modules.Metadata{
	Id:          "list",
	Path:        []string{"approleassignment"},
	Description: "Lists app role assignments for the specified application registration",
	Platform:    types.Graph,
	Authors:     []string{"Praetorian"},
	References: []string{
		"https://learn.microsoft.com/en-us/graph/api/serviceprincipal-list-approleassignments",
		"https://learn.microsoft.com/en-us/graph/api/resources/approle",
	},
}

var AppRoleAssignmentListOptions = []*types.Option{
	&options.AppIdOpt,
	&options.ObjectIdOpt,
	&options.DisplayNameOpt,
	&options.WorkersOpt,
}

var AppRoleAssignmentListOutputProviders = types.OutputProviders{
	op.NewConsoleProvider,
	op.NewFileProvider,
}

func init() {
	registry.Register(AppRoleAssignmentListMetadata, AppRoleAssignmentListOptions, ValidateAppRoleAssignmentList, NewAppRoleAssignmentList)
}

// ValidateAppRoleAssignmentList requires exactly one selector. GUID shape is
// checked by the option definitions.
func ValidateAppRoleAssignmentList(opts []*types.Option) error {
	return options.ExactlyOneOf(opts, options.AppIdOpt.Name, options.ObjectIdOpt.Name, options.DisplayNameOpt.Name)
}

type AppRoleAssignmentList struct {
	modules.BaseModule
	directory approleassignment.Directory
}

func NewAppRoleAssignmentList(opts []*types.Option, sess *session.Session, run types.Run) (modules.Module, error) {
	client, err := sess.GraphClient()
	if err != nil {
		return nil, err
	}
	return newAppRoleAssignmentList(opts, sess, run, graph.NewDirectory(client)), nil
}

func newAppRoleAssignmentList(opts []*types.Option, sess *session.Session, run types.Run, dir approleassignment.Directory) *AppRoleAssignmentList {
	return &AppRoleAssignmentList{
		BaseModule: modules.NewBaseModule(AppRoleAssignmentListMetadata, opts, sess, run, AppRoleAssignmentListOutputProviders),
		directory:  dir,
	}
}

func (m *AppRoleAssignmentList) Invoke(ctx context.Context) error {
	sel := approleassignment.Selector{
		AppId:       options.Value(options.AppIdOpt.Name, m.Options),
		ObjectId:    options.Value(options.ObjectIdOpt.Name, m.Options),
		DisplayName: options.Value(options.DisplayNameOpt.Name, m.Options),
	}

	resolver := approleassignment.NewResolver(m.directory,
		approleassignment.WithWorkers(options.IntValue(options.WorkersOpt.Name, m.Options, 0)),
		approleassignment.WithLogger(slog.Default().With("module", m.Command())),
	)

	assignments, err := resolver.Resolve(ctx, sel)
	if err != nil {
		return err
	}

	return m.Send(ctx, m.MakeResult(assignments, types.WithSummary(approleassignment.SummaryTable(assignments))))
}
