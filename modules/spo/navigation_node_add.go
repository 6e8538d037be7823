package spo

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/praetorian-inc/m365/internal/message"
	op "github.com/praetorian-inc/m365/internal/output_providers"
	"github.com/praetorian-inc/m365/internal/registry"
	"github.com/praetorian-inc/m365/modules"
	"github.com/praetorian-inc/m365/modules/options"
	m365errors "github.com/praetorian-inc/m365/pkg/errors"
	"github.com/praetorian-inc/m365/pkg/session"
	"github.com/praetorian-inc/m365/pkg/types"
)

var NavigationLocations = []string{"QuickLaunch", "TopNavigationBar"}

var NavigationNodeAddMetadata = modules.Metadata{
	Id:          "add",
	Path:        []string{"navigation", "node"},
	Description: "Adds a navigation node to the specified site navigation",
	Platform:    types.Spo,
	Authors:     []string{"Praetorian"},
	References: []string{
		"https://learn.microsoft.com/en-us/sharepoint/dev/sp-add-ins/working-with-navigation",
	},
}

var NavigationNodeAddOptions = []*types.Option{
	&options.WebUrlOpt,
	&options.NavigationLocationOpt,
	&options.NavigationTitleOpt,
	&options.NavigationUrlOpt,
	&options.ParentNodeIdOpt,
	&options.IsExternalOpt,
}

var NavigationNodeAddOutputProviders = types.OutputProviders{
	op.NewConsoleProvider,
	op.NewFileProvider,
}

func init() {
	registry.Register(NavigationNodeAddMetadata, NavigationNodeAddOptions, ValidateNavigationNodeAdd, NewNavigationNodeAdd)
}

func ValidateNavigationNodeAdd(opts []*types.Option) error {
	webURL := options.Value(options.WebUrlOpt.Name, opts)
	if !session.IsValidSharePointURL(webURL) {
		return m365errors.NewValidationError("%s is not a valid SharePoint Online site URL", webURL)
	}

	if parent := options.Value(options.ParentNodeIdOpt.Name, opts); parent != "" {
		if _, err := strconv.Atoi(parent); err != nil {
			return m365errors.NewValidationError("%s is not a number", parent)
		}
		return nil
	}

	location := options.Value(options.NavigationLocationOpt.Name, opts)
	for _, allowed := range NavigationLocations {
		if location == allowed {
			return nil
		}
	}
	return m365errors.NewValidationError("%s is not a valid value for the location option. Allowed values are %s", location, strings.Join(NavigationLocations, "|"))
}

// NavigationNode is the request body for a new node.
type NavigationNode struct {
	Title      string
	Url        string
	IsExternal bool
}

type NavigationNodeAdd struct {
	modules.BaseModule
	client Poster
}

func NewNavigationNodeAdd(opts []*types.Option, sess *session.Session, run types.Run) (modules.Module, error) {
	client, err := clientFor(sess, options.Value(options.WebUrlOpt.Name, opts))
	if err != nil {
		return nil, err
	}
	return newNavigationNodeAdd(opts, sess, run, client), nil
}

func newNavigationNodeAdd(opts []*types.Option, sess *session.Session, run types.Run, client Poster) *NavigationNodeAdd {
	return &NavigationNodeAdd{
		BaseModule: modules.NewBaseModule(NavigationNodeAddMetadata, opts, sess, run, NavigationNodeAddOutputProviders),
		client:     client,
	}
}

// NodesURL returns the collection a node is added to: the children of the
// parent node when one is given, otherwise the named navigation.
func NodesURL(webURL, location, parentNodeId string) string {
	collection := strings.ToLower(location)
	if parentNodeId != "" {
		collection = fmt.Sprintf("GetNodeById(%s)/Children", parentNodeId)
	}
	return fmt.Sprintf("%s/_api/web/navigation/%s", strings.TrimSuffix(webURL, "/"), collection)
}

func (m *NavigationNodeAdd) Invoke(ctx context.Context) error {
	message.Verbose("Adding navigation node...")

	target := NodesURL(
		options.Value(options.WebUrlOpt.Name, m.Options),
		options.Value(options.NavigationLocationOpt.Name, m.Options),
		options.Value(options.ParentNodeIdOpt.Name, m.Options),
	)
	body := NavigationNode{
		Title:      options.Value(options.NavigationTitleOpt.Name, m.Options),
		Url:        options.Value(options.NavigationUrlOpt.Name, m.Options),
		IsExternal: options.BoolValue(options.IsExternalOpt.Name, m.Options),
	}

	var node map[string]any
	if err := m.client.Post(ctx, target, noMetadata, body, &node); err != nil {
		return err
	}

	if err := m.Send(ctx, m.MakeResult(node, types.WithSummary(nodeSummary(node)))); err != nil {
		return err
	}
	message.Done()
	return nil
}

// nodeSummary renders every field the server returned for the node, the
// common ones first.
func nodeSummary(node map[string]any) types.MarkdownTable {
	headers := []string{"Id", "Title", "Url", "IsExternal"}
	rest := make([]string, 0, len(node))
	for key := range node {
		if !slices.Contains(headers, key) {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	headers = append(headers, rest...)

	row := make([]string, 0, len(headers))
	for _, key := range headers {
		row = append(row, cell(node[key]))
	}
	return types.MarkdownTable{
		TableHeading: "Navigation node",
		Headers:      headers,
		Rows:         [][]string{row},
	}
}

func cell(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case map[string]any, []any:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(b)
	default:
		return fmt.Sprint(v)
	}
}
