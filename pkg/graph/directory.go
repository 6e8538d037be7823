package graph

import (
	"context"

	"github.com/google/uuid"
	"github.com/microsoftgraph/msgraph-sdk-go/models"
	"github.com/microsoftgraph/msgraph-sdk-go/serviceprincipals"
	"github.com/praetorian-inc/m365/pkg/approleassignment"
	m365errors "github.com/praetorian-inc/m365/pkg/errors"
)

// Directory serves service principals to the app role assignment resolver.
type Directory struct {
	client *Client
}

func NewDirectory(client *Client) *Directory {
	return &Directory{client: client}
}

func (d *Directory) FindServicePrincipals(ctx context.Context, filter string) ([]approleassignment.ServicePrincipal, error) {
	resp, err := d.client.sdk.ServicePrincipals().Get(ctx, &serviceprincipals.ServicePrincipalsRequestBuilderGetRequestConfiguration{
		QueryParameters: &serviceprincipals.ServicePrincipalsRequestBuilderGetQueryParameters{
			Filter: &filter,
			Expand: []string{"appRoleAssignments"},
		},
	})
	if err != nil {
		return nil, m365errors.FromGraph(err)
	}

	var principals []approleassignment.ServicePrincipal
	for _, sp := range resp.GetValue() {
		principals = append(principals, toServicePrincipal(sp))
	}
	return principals, nil
}

func (d *Directory) GetServicePrincipal(ctx context.Context, id string) (*approleassignment.ServicePrincipal, error) {
	sp, err := d.client.sdk.ServicePrincipals().ByServicePrincipalId(id).Get(ctx, nil)
	if err != nil {
		return nil, m365errors.FromGraph(err)
	}
	converted := toServicePrincipal(sp)
	return &converted, nil
}

func toServicePrincipal(sp models.ServicePrincipalable) approleassignment.ServicePrincipal {
	out := approleassignment.ServicePrincipal{
		Id:          deref(sp.GetId()),
		AppId:       deref(sp.GetAppId()),
		DisplayName: deref(sp.GetDisplayName()),
	}

	for _, role := range sp.GetAppRoles() {
		out.AppRoles = append(out.AppRoles, approleassignment.AppRole{
			Id:    uuidString(role.GetId()),
			Value: deref(role.GetValue()),
		})
	}

	for _, a := range sp.GetAppRoleAssignments() {
		out.AppRoleAssignments = append(out.AppRoleAssignments, approleassignment.AppRoleAssignment{
			AppRoleId:           uuidString(a.GetAppRoleId()),
			ResourceId:          uuidString(a.GetResourceId()),
			ResourceDisplayName: deref(a.GetResourceDisplayName()),
		})
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func uuidString(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}
