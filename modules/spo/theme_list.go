package spo

import (
	"context"
	"fmt"

	"github.com/praetorian-inc/m365/internal/message"
	op "github.com/praetorian-inc/m365/internal/output_providers"
	"github.com/praetorian-inc/m365/internal/registry"
	"github.com/praetorian-inc/m365/modules"
	"github.com/praetorian-inc/m365/pkg/request"
	"github.com/praetorian-inc/m365/pkg/session"
	"github.com/praetorian-inc/m365/pkg/types"
)

var ThemeListMetadata = modules.Metadata{
	Id:          "list",
	Path:        []string{"theme"},
	Description: "Retrieves the list of custom themes",
	Platform:    types.Spo,
	Authors:     []string{"Praetorian"},
	References: []string{
		"https://learn.microsoft.com/en-us/sharepoint/dev/declarative-customization/site-theming/sharepoint-site-theming-rest-api",
	},
}

var ThemeListOutputProviders = types.OutputProviders{
	op.NewConsoleProvider,
	op.NewFileProvider,
}

func init() {
	registry.Register(ThemeListMetadata, nil, nil, NewThemeList)
}

type Theme struct {
	Name      string `json:"name"`
	ThemeJson string `json:"themeJson"`
}

type themingOptions struct {
	HideDefaultThemes bool    `json:"hideDefaultThemes"`
	ThemePreviews     []Theme `json:"themePreviews"`
}

type ThemeList struct {
	modules.BaseModule
	client   Poster
	adminURL string
}

func NewThemeList(opts []*types.Option, sess *session.Session, run types.Run) (modules.Module, error) {
	adminURL, err := sess.SpoAdminURL()
	if err != nil {
		return nil, err
	}
	client, err := clientFor(sess, adminURL)
	if err != nil {
		return nil, err
	}
	return newThemeList(opts, sess, run, client, adminURL), nil
}

func newThemeList(opts []*types.Option, sess *session.Session, run types.Run, client Poster, adminURL string) *ThemeList {
	return &ThemeList{
		BaseModule: modules.NewBaseModule(ThemeListMetadata, opts, sess, run, ThemeListOutputProviders),
		client:     client,
		adminURL:   adminURL,
	}
}

func (m *ThemeList) Invoke(ctx context.Context) error {
	message.Verbose("Retrieving themes from tenant store...")

	var res themingOptions
	target := fmt.Sprintf("%s/_api/thememanager/GetTenantThemingOptions", m.adminURL)
	if err := m.client.Post(ctx, target, request.Headers{"accept": request.AcceptNoMetadata}, nil, &res); err != nil {
		return err
	}

	themes := res.ThemePreviews
	if themes == nil {
		themes = []Theme{}
	}
	if len(themes) == 0 {
		message.Verbose("No themes found")
	}

	table := types.MarkdownTable{
		TableHeading: "Themes",
		Headers:      []string{"Name"},
	}
	for _, theme := range themes {
		table.Rows = append(table.Rows, []string{theme.Name})
	}

	return m.Send(ctx, m.MakeResult(themes, types.WithSummary(table)))
}
