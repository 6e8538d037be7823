package session

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	m365errors "github.com/praetorian-inc/m365/pkg/errors"
	"github.com/praetorian-inc/m365/pkg/graph"
	"github.com/praetorian-inc/m365/pkg/request"
)

const (
	DefaultGraphURL  = graph.DefaultBaseURL
	DefaultAzMgmtURL = "https://management.azure.com/"
)

var spoURLFormat = regexp.MustCompile(`(?i)^https://[a-z0-9-]+(-admin)?\.sharepoint\.(com|us|de|cn)(/.*)?$`)

// Session carries what a command needs to reach the services: a token
// credential, the resource endpoints and HTTP client options. It replaces
// any process-wide connection state and is passed to every command.
type Session struct {
	Credential    azcore.TokenCredential
	GraphURL      string
	AzMgmtURL     string
	SpoURL        string
	ClientOptions policy.ClientOptions
}

// Client returns a REST client whose tokens are scoped to resource.
func (s *Session) Client(resource string) *request.Client {
	return request.NewClient(request.Options{
		Credential:    s.Credential,
		Scopes:        []string{request.Scope(resource)},
		ClientOptions: s.ClientOptions,
	})
}

// AzMgmt returns the Azure management endpoint with a trailing slash.
func (s *Session) AzMgmt() string {
	u := s.AzMgmtURL
	if u == "" {
		u = DefaultAzMgmtURL
	}
	if !strings.HasSuffix(u, "/") {
		u += "/"
	}
	return u
}

func (s *Session) Graph() string {
	if s.GraphURL == "" {
		return DefaultGraphURL
	}
	return strings.TrimSuffix(s.GraphURL, "/")
}

// GraphClient builds an msgraph client signed with the session credential.
func (s *Session) GraphClient() (*graph.Client, error) {
	return graph.NewClientWithCredential(s.Credential, s.Graph())
}

// SpoAdminURL derives the tenant admin site from the configured SharePoint
// URL, e.g. https://contoso.sharepoint.com becomes
// https://contoso-admin.sharepoint.com.
func (s *Session) SpoAdminURL() (string, error) {
	if s.SpoURL == "" {
		return "", m365errors.NewValidationError("SharePoint Online URL not set. Configure spo-url or set M365_SPO_URL")
	}
	return AdminURL(s.SpoURL)
}

func AdminURL(spoURL string) (string, error) {
	u, err := url.Parse(spoURL)
	if err != nil || u.Host == "" || !IsValidSharePointURL(spoURL) {
		return "", m365errors.NewValidationError("%s is not a valid SharePoint Online site URL", spoURL)
	}

	tenant, domain, _ := strings.Cut(u.Host, ".")
	if !strings.HasSuffix(tenant, "-admin") {
		tenant += "-admin"
	}
	return fmt.Sprintf("https://%s.%s", tenant, domain), nil
}

// IsValidSharePointURL reports whether u is an absolute https URL on a
// SharePoint Online host.
func IsValidSharePointURL(u string) bool {
	return spoURLFormat.MatchString(u)
}
