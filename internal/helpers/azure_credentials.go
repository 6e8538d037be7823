package helpers

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	m365errors "github.com/praetorian-inc/m365/pkg/errors"
)

const (
	AuthTypeDefault     = "default"
	AuthTypeCLI         = "cli"
	AuthTypeSecret      = "secret"
	AuthTypeCertificate = "certificate"
)

// AuthTypes lists the accepted values of the auth-type setting.
var AuthTypes = []string{AuthTypeDefault, AuthTypeCLI, AuthTypeSecret, AuthTypeCertificate}

// CredentialConfig is the subset of configuration needed to build a token
// credential.
type CredentialConfig struct {
	AuthType            string
	TenantID            string
	ClientID            string
	ClientSecret        string
	CertificateFile     string
	CertificatePassword string
	ClientOptions       policy.ClientOptions
}

// GetAzureCredentials returns a token credential for the configured auth type.
// An empty auth type falls back to DefaultAzureCredential.
func GetAzureCredentials(cfg CredentialConfig) (azcore.TokenCredential, error) {
	authType := strings.ToLower(strings.TrimSpace(cfg.AuthType))
	if authType == "" {
		authType = AuthTypeDefault
	}

	switch authType {
	case AuthTypeDefault:
		cred, err := azidentity.NewDefaultAzureCredential(&azidentity.DefaultAzureCredentialOptions{
			ClientOptions: cfg.ClientOptions,
			TenantID:      cfg.TenantID,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to get Azure credentials: %w", err)
		}
		return cred, nil

	case AuthTypeCLI:
		cred, err := azidentity.NewAzureCLICredential(&azidentity.AzureCLICredentialOptions{
			TenantID: cfg.TenantID,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create Azure CLI credential: %w", err)
		}
		return cred, nil

	case AuthTypeSecret:
		if err := requireSettings(cfg, "client-secret", cfg.ClientSecret); err != nil {
			return nil, err
		}
		cred, err := azidentity.NewClientSecretCredential(cfg.TenantID, cfg.ClientID, cfg.ClientSecret,
			&azidentity.ClientSecretCredentialOptions{ClientOptions: cfg.ClientOptions})
		if err != nil {
			return nil, fmt.Errorf("failed to create client secret credential: %w", err)
		}
		return cred, nil

	case AuthTypeCertificate:
		if err := requireSettings(cfg, "certificate-file", cfg.CertificateFile); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(cfg.CertificateFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read certificate: %w", err)
		}
		var password []byte
		if cfg.CertificatePassword != "" {
			password = []byte(cfg.CertificatePassword)
		}
		certs, key, err := azidentity.ParseCertificates(data, password)
		if err != nil {
			return nil, fmt.Errorf("failed to parse certificate %s: %w", cfg.CertificateFile, err)
		}
		cred, err := azidentity.NewClientCertificateCredential(cfg.TenantID, cfg.ClientID, certs, key,
			&azidentity.ClientCertificateCredentialOptions{ClientOptions: cfg.ClientOptions})
		if err != nil {
			return nil, fmt.Errorf("failed to create client certificate credential: %w", err)
		}
		return cred, nil
	}

	return nil, m365errors.NewValidationError("%s is not a valid auth type. Allowed values are %s", cfg.AuthType, strings.Join(AuthTypes, "|"))
}

func requireSettings(cfg CredentialConfig, secretName, secret string) error {
	switch {
	case cfg.TenantID == "":
		return m365errors.NewValidationError("tenant is required for %s authentication", cfg.AuthType)
	case cfg.ClientID == "":
		return m365errors.NewValidationError("client-id is required for %s authentication", cfg.AuthType)
	case secret == "":
		return m365errors.NewValidationError("%s is required for %s authentication", secretName, cfg.AuthType)
	}
	return nil
}

// DeferredCredential builds the configured credential on the first token
// request, so commands that never call a service do not need valid
// authentication settings.
type DeferredCredential struct {
	cfg   CredentialConfig
	build func(CredentialConfig) (azcore.TokenCredential, error)

	once sync.Once
	cred azcore.TokenCredential
	err  error
}

func NewDeferredCredential(cfg CredentialConfig) *DeferredCredential {
	return &DeferredCredential{cfg: cfg, build: GetAzureCredentials}
}

func (d *DeferredCredential) GetToken(ctx context.Context, opts policy.TokenRequestOptions) (azcore.AccessToken, error) {
	d.once.Do(func() {
		d.cred, d.err = d.build(d.cfg)
	})
	if d.err != nil {
		return azcore.AccessToken{}, d.err
	}
	return d.cred.GetToken(ctx, opts)
}
