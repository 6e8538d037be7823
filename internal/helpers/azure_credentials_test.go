package helpers

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	m365errors "github.com/praetorian-inc/m365/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testTenant = "5b0a7b3c-3c2d-4b8a-9a53-8f1d0b1c2d3e"
	testClient = "36e3a540-6f25-4483-9542-9f5fa00bb633"
)

func TestGetAzureCredentialsSecret(t *testing.T) {
	cred, err := GetAzureCredentials(CredentialConfig{
		AuthType:     "Secret",
		TenantID:     testTenant,
		ClientID:     testClient,
		ClientSecret: "s3cr3t",
	})
	require.NoError(t, err)
	assert.IsType(t, &azidentity.ClientSecretCredential{}, cred)
}

func TestGetAzureCredentialsCLI(t *testing.T) {
	cred, err := GetAzureCredentials(CredentialConfig{AuthType: AuthTypeCLI})
	require.NoError(t, err)
	assert.IsType(t, &azidentity.AzureCLICredential{}, cred)
}

func TestGetAzureCredentialsValidation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     CredentialConfig
		wantErr string
	}{
		{
			name:    "unknown auth type",
			cfg:     CredentialConfig{AuthType: "password"},
			wantErr: "password is not a valid auth type. Allowed values are default|cli|secret|certificate",
		},
		{
			name:    "secret without tenant",
			cfg:     CredentialConfig{AuthType: AuthTypeSecret, ClientID: testClient, ClientSecret: "x"},
			wantErr: "tenant is required for secret authentication",
		},
		{
			name:    "secret without client id",
			cfg:     CredentialConfig{AuthType: AuthTypeSecret, TenantID: testTenant, ClientSecret: "x"},
			wantErr: "client-id is required for secret authentication",
		},
		{
			name:    "secret without secret",
			cfg:     CredentialConfig{AuthType: AuthTypeSecret, TenantID: testTenant, ClientID: testClient},
			wantErr: "client-secret is required for secret authentication",
		},
		{
			name:    "certificate without file",
			cfg:     CredentialConfig{AuthType: AuthTypeCertificate, TenantID: testTenant, ClientID: testClient},
			wantErr: "certificate-file is required for certificate authentication",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cred, err := GetAzureCredentials(tt.cfg)
			assert.Nil(t, cred)
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
			assert.True(t, m365errors.IsValidation(err))
		})
	}
}

func TestGetAzureCredentialsMissingCertificate(t *testing.T) {
	_, err := GetAzureCredentials(CredentialConfig{
		AuthType:        AuthTypeCertificate,
		TenantID:        testTenant,
		ClientID:        testClient,
		CertificateFile: filepath.Join(t.TempDir(), "missing.pem"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read certificate")
	assert.False(t, m365errors.IsValidation(err))
}

type staticCredential struct{ token string }

func (s staticCredential) GetToken(context.Context, policy.TokenRequestOptions) (azcore.AccessToken, error) {
	return azcore.AccessToken{Token: s.token}, nil
}

func TestDeferredCredential(t *testing.T) {
	builds := 0
	d := NewDeferredCredential(CredentialConfig{AuthType: AuthTypeCLI})
	d.build = func(CredentialConfig) (azcore.TokenCredential, error) {
		builds++
		return staticCredential{token: "abc"}, nil
	}

	for range 2 {
		tok, err := d.GetToken(context.Background(), policy.TokenRequestOptions{})
		require.NoError(t, err)
		assert.Equal(t, "abc", tok.Token)
	}
	assert.Equal(t, 1, builds)
}

func TestDeferredCredentialInvalidConfig(t *testing.T) {
	d := NewDeferredCredential(CredentialConfig{AuthType: AuthTypeSecret})

	_, err := d.GetToken(context.Background(), policy.TokenRequestOptions{})
	require.Error(t, err)
	assert.True(t, m365errors.IsValidation(err))
	assert.Equal(t, "tenant is required for secret authentication", err.Error())
}
