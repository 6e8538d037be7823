package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/golang-jwt/jwt/v5"
	op "github.com/praetorian-inc/m365/internal/output_providers"
	"github.com/praetorian-inc/m365/modules"
	"github.com/praetorian-inc/m365/pkg/request"
	"github.com/praetorian-inc/m365/pkg/session"
	"github.com/praetorian-inc/m365/pkg/types"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Shows the signed in identity and tenant",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := getOpts(cmd, nil)
		if err != nil {
			return err
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()

		st, err := getStatus(ctx, newSession())
		if err != nil {
			return err
		}

		result := types.NewResult(types.Status, "status", st, types.WithSummary(st.table()))
		providers := modules.RenderOutputProviders(types.OutputProviders{op.NewConsoleProvider, op.NewFileProvider}, opts)
		for _, provider := range providers {
			if err := provider.Write(result); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

type Status struct {
	TenantId   string `json:"tenantId"`
	TenantName string `json:"tenantName,omitempty"`
	Identity   string `json:"identity,omitempty"`
	AppId      string `json:"appId,omitempty"`
	ExpiresOn  string `json:"expiresOn,omitempty"`
}

func (s Status) table() types.MarkdownTable {
	return types.MarkdownTable{
		TableHeading: "Connection status",
		Headers:      []string{"tenantId", "tenantName", "identity", "appId", "expiresOn"},
		Rows:         [][]string{{s.TenantId, s.TenantName, s.Identity, s.AppId, s.ExpiresOn}},
	}
}

// getStatus requests a Graph token and reports who it was issued to. The
// tenant display name is best effort.
func getStatus(ctx context.Context, sess *session.Session) (Status, error) {
	token, err := sess.Credential.GetToken(ctx, policy.TokenRequestOptions{
		Scopes: []string{request.Scope(sess.Graph())},
	})
	if err != nil {
		return Status{}, fmt.Errorf("failed to acquire access token: %w", err)
	}

	st, err := statusFromToken(token.Token)
	if err != nil {
		return Status{}, err
	}

	client, err := sess.GraphClient()
	if err != nil {
		return Status{}, err
	}
	name, _, err := client.TenantDetails(ctx)
	if err != nil {
		slog.Debug("Could not read tenant details", "error", err)
		return st, nil
	}
	st.TenantName = name
	return st, nil
}

// statusFromToken decodes the access token claims without verifying the
// signature.
func statusFromToken(token string) (Status, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return Status{}, fmt.Errorf("failed to decode access token: %w", err)
	}

	st := Status{
		TenantId: firstClaim(claims, "tid"),
		Identity: firstClaim(claims, "upn", "unique_name", "preferred_username"),
		AppId:    firstClaim(claims, "appid", "azp"),
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		st.ExpiresOn = exp.UTC().Format(time.RFC3339)
	}
	return st, nil
}

func firstClaim(claims jwt.MapClaims, names ...string) string {
	for _, name := range names {
		if v, ok := claims[name].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
