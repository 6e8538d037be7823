package graph

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/microsoft/kiota-abstractions-go/authentication"
	kiotaauth "github.com/microsoft/kiota-authentication-azure-go"
	msgraphsdk "github.com/microsoftgraph/msgraph-sdk-go"
	"github.com/microsoftgraph/msgraph-sdk-go/organization"
	m365errors "github.com/praetorian-inc/m365/pkg/errors"
)

const DefaultBaseURL = "https://graph.microsoft.com"

// Client wraps the msgraph SDK for the few Graph calls the commands make.
type Client struct {
	sdk *msgraphsdk.GraphServiceClient
}

// NewClient builds a Graph client against baseURL (e.g.
// https://graph.microsoft.com) using auth to sign requests. A nil httpClient
// selects the SDK's default middleware pipeline.
func NewClient(auth authentication.AuthenticationProvider, baseURL string, httpClient *http.Client) (*Client, error) {
	adapter, err := msgraphsdk.NewGraphRequestAdapterWithParseNodeFactoryAndSerializationWriterFactoryAndHttpClient(auth, nil, nil, httpClient)
	if err != nil {
		return nil, fmt.Errorf("failed to create Graph request adapter: %w", err)
	}
	adapter.SetBaseUrl(versionedURL(baseURL))

	return &Client{sdk: msgraphsdk.NewGraphServiceClient(adapter)}, nil
}

// NewClientWithCredential signs requests with tokens for <baseURL>/.default.
func NewClientWithCredential(cred azcore.TokenCredential, baseURL string) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, m365errors.NewValidationError("%s is not a valid Graph URL", baseURL)
	}

	scope := strings.TrimSuffix(baseURL, "/") + "/.default"
	auth, err := kiotaauth.NewAzureIdentityAuthenticationProviderWithScopesAndValidHosts(cred, []string{scope}, []string{u.Host})
	if err != nil {
		return nil, fmt.Errorf("failed to create Graph authentication provider: %w", err)
	}
	return NewClient(auth, baseURL, nil)
}

func versionedURL(baseURL string) string {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return strings.TrimSuffix(baseURL, "/") + "/v1.0"
}

// TenantDetails returns the display name and id of the signed-in tenant.
func (c *Client) TenantDetails(ctx context.Context) (string, string, error) {
	org, err := c.sdk.Organization().Get(ctx, &organization.OrganizationRequestBuilderGetRequestConfiguration{})
	if err != nil {
		return "", "", fmt.Errorf("failed to get organization details: %w", m365errors.FromGraph(err))
	}

	tenantName := "Unknown"
	tenantID := "Unknown"

	if orgValue := org.GetValue(); len(orgValue) > 0 {
		if displayName := orgValue[0].GetDisplayName(); displayName != nil {
			tenantName = *displayName
		}
		if id := orgValue[0].GetId(); id != nil {
			tenantID = *id
		}
	}

	return tenantName, tenantID, nil
}
