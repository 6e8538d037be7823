package spfx

import (
	"context"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/praetorian-inc/m365/internal/message"
	op "github.com/praetorian-inc/m365/internal/output_providers"
	"github.com/praetorian-inc/m365/internal/registry"
	"github.com/praetorian-inc/m365/modules"
	"github.com/praetorian-inc/m365/modules/options"
	"github.com/praetorian-inc/m365/pkg/session"
	"github.com/praetorian-inc/m365/pkg/types"
)

var ComponentRenameMetadata = modules.Metadata{
	Id:          "rename",
	Path:        []string{"project", "component"},
	Description: "Renames SharePoint Framework component",
	Platform:    types.Spfx,
	Authors:     []string{"Praetorian"},
	References: []string{
		"https://learn.microsoft.com/en-us/sharepoint/dev/spfx/toolchain/scaffolding-projects-using-yeoman-sharepoint-generator",
	},
}

var ComponentRenameOptions = []*types.Option{
	&options.NewNameOpt,
	&options.GenerateNewIdOpt,
}

var ComponentRenameOutputProviders = types.OutputProviders{
	op.NewConsoleProvider,
	op.NewFileProvider,
}

func init() {
	registry.Register(ComponentRenameMetadata, ComponentRenameOptions, nil, NewComponentRename)
}

type RenameResult struct {
	ProjectRoot  string   `json:"projectRoot"`
	NewName      string   `json:"newName"`
	LibraryId    string   `json:"libraryId,omitempty"`
	UpdatedFiles []string `json:"updatedFiles"`
}

type ComponentRename struct {
	modules.BaseModule
	dir   string
	newId func() string
}

func NewComponentRename(opts []*types.Option, sess *session.Session, run types.Run) (modules.Module, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return newComponentRename(opts, sess, run, dir), nil
}

func newComponentRename(opts []*types.Option, sess *session.Session, run types.Run, dir string) *ComponentRename {
	return &ComponentRename{
		BaseModule: modules.NewBaseModule(ComponentRenameMetadata, opts, sess, run, ComponentRenameOutputProviders),
		dir:        dir,
		newId:      uuid.NewString,
	}
}

func (m *ComponentRename) Invoke(ctx context.Context) error {
	root, err := FindProjectRoot(m.dir)
	if err != nil {
		return err
	}

	newName := options.Value(options.NewNameOpt.Name, m.Options)
	slog.Debug("Renaming SharePoint Framework component", "newName", newName, "root", root)

	result := RenameResult{ProjectRoot: root, NewName: newName, UpdatedFiles: []string{}}

	changed, err := RenamePackage(root, newName)
	if err != nil {
		return err
	}
	if changed {
		slog.Debug("Updated " + packageJSON)
		result.UpdatedFiles = append(result.UpdatedFiles, packageJSON)
	}

	if options.BoolValue(options.GenerateNewIdOpt.Name, m.Options) {
		id := m.newId()
		changed, err := RegenerateLibrary(root, newName, id)
		if err != nil {
			return err
		}
		if changed {
			slog.Debug("Updated " + yoRcFile)
			result.LibraryId = id
			result.UpdatedFiles = append(result.UpdatedFiles, yoRcFile)
		}
	}

	table := types.MarkdownTable{
		TableHeading: "Updated files",
		Headers:      []string{"file"},
	}
	for _, f := range result.UpdatedFiles {
		table.Rows = append(table.Rows, []string{f})
	}

	if err := m.Send(ctx, m.MakeResult(result, types.WithSummary(table))); err != nil {
		return err
	}
	message.Done()
	return nil
}
