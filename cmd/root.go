package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/praetorian-inc/m365/internal/helpers"
	"github.com/praetorian-inc/m365/internal/logs"
	"github.com/praetorian-inc/m365/internal/message"
	o "github.com/praetorian-inc/m365/modules/options"
	m365errors "github.com/praetorian-inc/m365/pkg/errors"
	"github.com/praetorian-inc/m365/pkg/session"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile     string
	verboseFlag bool
	debugFlag   bool
	quietFlag   bool
	noColorFlag bool
	timeoutFlag time.Duration
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:           "m365",
	Short:         "m365 manages Microsoft 365 tenants from the command line.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		message.Error("%s", err)
		os.Exit(m365errors.ExitCode(err))
	}
}

func init() {
	cobra.OnInitialize(initLogging, initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.m365.yaml)")
	flags.StringP(o.OutputOpt.Name, o.OutputOpt.Short, o.OutputOpt.Value, o.OutputOpt.Description)
	flags.String(o.QueryOpt.Name, o.QueryOpt.Value, o.QueryOpt.Description)
	flags.StringP(o.FileNameOpt.Name, o.FileNameOpt.Short, o.FileNameOpt.Value, o.FileNameOpt.Description)
	flags.BoolVar(&verboseFlag, "verbose", false, "print progress messages")
	flags.BoolVar(&debugFlag, "debug", false, "enable debug logging")
	flags.BoolVar(&quietFlag, "quiet", false, "suppress informational messages")
	flags.BoolVar(&noColorFlag, "no-color", false, "disable colored output")
	flags.DurationVar(&timeoutFlag, "timeout", 0, "abort the command after this duration, 0 for no limit")

	generateCommands(rootCmd)
}

func initLogging() {
	logger := logs.ConsoleLogger(debugFlag)
	if debugFlag {
		logs.RouteAzureSDK(logger)
	}

	message.AutoColor()
	if noColorFlag {
		message.SetNoColor(true)
	}
	message.SetQuiet(quietFlag)
	message.SetVerbose(verboseFlag || debugFlag)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".m365")
	}

	viper.SetDefault(configAuthType, helpers.AuthTypeDefault)
	viper.SetDefault(configGraphURL, session.DefaultGraphURL)
	viper.SetDefault(configAzMgmtURL, session.DefaultAzMgmtURL)
	viper.SetDefault(configMaxRetries, 3)

	viper.SetEnvPrefix("M365")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		slog.Debug("Using config file", "path", viper.ConfigFileUsed())
	}
}

const (
	configAuthType            = "auth-type"
	configTenant              = "tenant"
	configClientID            = "client-id"
	configClientSecret        = "client-secret"
	configCertificateFile     = "certificate-file"
	configCertificatePassword = "certificate-password"
	configSpoURL              = "spo-url"
	configGraphURL            = "graph-url"
	configAzMgmtURL           = "azmgmt-url"
	configMaxRetries          = "max-retries"
)

// newSession builds the per command session from configuration. The
// credential is only created once a service asks for a token.
func newSession() *session.Session {
	var clientOptions policy.ClientOptions
	clientOptions.Retry.MaxRetries = int32(viper.GetInt(configMaxRetries))

	return &session.Session{
		Credential: helpers.NewDeferredCredential(helpers.CredentialConfig{
			AuthType:            viper.GetString(configAuthType),
			TenantID:            viper.GetString(configTenant),
			ClientID:            viper.GetString(configClientID),
			ClientSecret:        viper.GetString(configClientSecret),
			CertificateFile:     viper.GetString(configCertificateFile),
			CertificatePassword: viper.GetString(configCertificatePassword),
			ClientOptions:       clientOptions,
		}),
		GraphURL:      viper.GetString(configGraphURL),
		AzMgmtURL:     viper.GetString(configAzMgmtURL),
		SpoURL:        viper.GetString(configSpoURL),
		ClientOptions: clientOptions,
	}
}

// commandContext applies --timeout to the command context.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if timeoutFlag > 0 {
		return context.WithTimeout(ctx, timeoutFlag)
	}
	return context.WithCancel(ctx)
}
