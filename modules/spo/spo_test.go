package spo

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"sync"
	"testing"

	"github.com/praetorian-inc/m365/internal/message"
	"github.com/praetorian-inc/m365/modules"
	"github.com/praetorian-inc/m365/modules/options"
	m365errors "github.com/praetorian-inc/m365/pkg/errors"
	"github.com/praetorian-inc/m365/pkg/request"
	"github.com/praetorian-inc/m365/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePoster struct {
	url     string
	headers request.Headers
	body    any
	resp    string
	err     error
}

func (f *fakePoster) Post(_ context.Context, url string, headers request.Headers, body any, out any) error {
	f.url = url
	f.headers = headers
	f.body = body
	if f.err != nil {
		return f.err
	}
	return json.Unmarshal([]byte(f.resp), out)
}

func opt(def types.Option, value string) *types.Option {
	def.Value = value
	return &def
}

func invoke(t *testing.T, newModule func(run types.Run) modules.Module) []types.Result {
	t.Helper()
	run := types.NewRun()

	var results []types.Result
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for r := range run.Data {
			results = append(results, r)
		}
	}()

	err := newModule(run).Invoke(context.Background())
	close(run.Data)
	wg.Wait()
	require.NoError(t, err)
	return results
}

func TestValidateNavigationNodeAdd(t *testing.T) {
	tests := []struct {
		name     string
		webUrl   string
		location string
		parent   string
		wantErr  string
	}{
		{name: "quick launch", webUrl: "https://contoso.sharepoint.com/sites/team-a", location: "QuickLaunch"},
		{name: "top navigation", webUrl: "https://contoso.sharepoint.com/sites/team-a", location: "TopNavigationBar"},
		{name: "parent node", webUrl: "https://contoso.sharepoint.com/sites/team-a", parent: "2030"},
		{
			name:    "invalid url",
			webUrl:  "foo",
			wantErr: "foo is not a valid SharePoint Online site URL",
		},
		{
			name:    "parent not a number",
			webUrl:  "https://contoso.sharepoint.com/sites/team-a",
			parent:  "abc",
			wantErr: "abc is not a number",
		},
		{
			name:     "location is case-sensitive",
			webUrl:   "https://contoso.sharepoint.com/sites/team-a",
			location: "quicklaunch",
			wantErr:  "quicklaunch is not a valid value for the location option. Allowed values are QuickLaunch|TopNavigationBar",
		},
		{
			name:    "missing location",
			webUrl:  "https://contoso.sharepoint.com/sites/team-a",
			wantErr: " is not a valid value for the location option. Allowed values are QuickLaunch|TopNavigationBar",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := []*types.Option{
				opt(options.WebUrlOpt, tt.webUrl),
				opt(options.NavigationLocationOpt, tt.location),
				opt(options.ParentNodeIdOpt, tt.parent),
			}
			err := ValidateNavigationNodeAdd(opts)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
			assert.True(t, m365errors.IsValidation(err))
		})
	}
}

func TestNodesURL(t *testing.T) {
	assert.Equal(t, "https://contoso.sharepoint.com/sites/team-a/_api/web/navigation/quicklaunch",
		NodesURL("https://contoso.sharepoint.com/sites/team-a", "QuickLaunch", ""))
	assert.Equal(t, "https://contoso.sharepoint.com/sites/team-a/_api/web/navigation/topnavigationbar",
		NodesURL("https://contoso.sharepoint.com/sites/team-a/", "TopNavigationBar", ""))
	assert.Equal(t, "https://contoso.sharepoint.com/sites/team-a/_api/web/navigation/GetNodeById(2030)/Children",
		NodesURL("https://contoso.sharepoint.com/sites/team-a", "", "2030"))
}

func TestNavigationNodeAdd(t *testing.T) {
	poster := &fakePoster{resp: `{"AudienceIds":null,"Id":2003,"IsDocLib":true,"IsExternal":false,"IsVisible":true,"ListTemplateType":0,"Title":"About","Url":"/sites/team-a/sitepages/about.aspx"}`}
	opts := []*types.Option{
		opt(options.WebUrlOpt, "https://contoso.sharepoint.com/sites/team-a"),
		opt(options.NavigationLocationOpt, "QuickLaunch"),
		opt(options.NavigationTitleOpt, "About"),
		opt(options.NavigationUrlOpt, "/sites/team-a/sitepages/about.aspx"),
		opt(options.IsExternalOpt, "false"),
	}

	results := invoke(t, func(run types.Run) modules.Module {
		return newNavigationNodeAdd(opts, nil, run, poster)
	})

	assert.Equal(t, "https://contoso.sharepoint.com/sites/team-a/_api/web/navigation/quicklaunch", poster.url)
	assert.Equal(t, request.AcceptNoMetadata, poster.headers["accept"])
	assert.Equal(t, request.AcceptNoMetadata, poster.headers["content-type"])
	assert.Equal(t, NavigationNode{Title: "About", Url: "/sites/team-a/sitepages/about.aspx", IsExternal: false}, poster.body)

	require.Len(t, results, 1)
	assert.Equal(t, "navigation node add", results[0].Module)
	require.NotNil(t, results[0].Summary)
	assert.Equal(t, []string{"Id", "Title", "Url", "IsExternal", "AudienceIds", "IsDocLib", "IsVisible", "ListTemplateType"}, results[0].Summary.Headers)
	assert.Equal(t, [][]string{{"2003", "About", "/sites/team-a/sitepages/about.aspx", "false", "", "true", "true", "0"}}, results[0].Summary.Rows)
}

func TestNodeSummaryNestedValues(t *testing.T) {
	table := nodeSummary(map[string]any{
		"Id":          float64(7),
		"Title":       "Docs",
		"AudienceIds": []any{"a1", "a2"},
	})

	assert.Equal(t, []string{"Id", "Title", "Url", "IsExternal", "AudienceIds"}, table.Headers)
	assert.Equal(t, [][]string{{"7", "Docs", "", "", `["a1","a2"]`}}, table.Rows)
}

func TestNavigationNodeAddError(t *testing.T) {
	poster := &fakePoster{err: &m365errors.TransportError{StatusCode: 400, Message: "Invalid request"}}
	opts := []*types.Option{
		opt(options.WebUrlOpt, "https://contoso.sharepoint.com/sites/team-a"),
		opt(options.ParentNodeIdOpt, "2030"),
		opt(options.NavigationTitleOpt, "About"),
		opt(options.NavigationUrlOpt, "https://example.com"),
		opt(options.IsExternalOpt, "true"),
	}

	m := newNavigationNodeAdd(opts, nil, types.NewRun(), poster)
	err := m.Invoke(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Invalid request", err.Error())
	assert.Equal(t, "https://contoso.sharepoint.com/sites/team-a/_api/web/navigation/GetNodeById(2030)/Children", poster.url)
	assert.True(t, poster.body.(NavigationNode).IsExternal)
}

func TestThemeList(t *testing.T) {
	poster := &fakePoster{resp: `{"hideDefaultThemes":false,"themePreviews":[{"name":"Mint","themeJson":"{}"},{"name":"Mint Inverted","themeJson":"{}"}]}`}

	results := invoke(t, func(run types.Run) modules.Module {
		return newThemeList(nil, nil, run, poster, "https://contoso-admin.sharepoint.com")
	})

	assert.Equal(t, "https://contoso-admin.sharepoint.com/_api/thememanager/GetTenantThemingOptions", poster.url)
	assert.Equal(t, request.AcceptNoMetadata, poster.headers["accept"])
	assert.Nil(t, poster.body)

	require.Len(t, results, 1)
	assert.Equal(t, []Theme{{Name: "Mint", ThemeJson: "{}"}, {Name: "Mint Inverted", ThemeJson: "{}"}}, results[0].Data)
	assert.Equal(t, [][]string{{"Mint"}, {"Mint Inverted"}}, results[0].Summary.Rows)
}

func TestThemeListEmpty(t *testing.T) {
	var stderr bytes.Buffer
	message.SetOutput(&stderr)
	message.SetNoColor(true)
	message.SetVerbose(true)
	t.Cleanup(func() {
		message.SetOutput(os.Stderr)
		message.SetVerbose(false)
	})

	poster := &fakePoster{resp: `{"themePreviews":[]}`}

	results := invoke(t, func(run types.Run) modules.Module {
		return newThemeList(nil, nil, run, poster, "https://contoso-admin.sharepoint.com")
	})

	require.Len(t, results, 1)
	assert.Equal(t, []Theme{}, results[0].Data)
	assert.Equal(t, "Retrieving themes from tenant store...\nNo themes found\n", stderr.String())
}
