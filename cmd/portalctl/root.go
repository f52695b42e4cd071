package main

import (
	"context"
	"lgu-portal-service/internal/app/drivers/logger"
	"lgu-portal-service/internal/app/services/core/catalog"
	"lgu-portal-service/internal/app/services/core/stepper"
	"lgu-portal-service/internal/app/services/portalclient"
	"lgu-portal-service/internal/pkg/utils"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	keyAPIURL    = "api-url"
	keyPortalURL = "portal-url"
	keyTimeout   = "timeout"
	keyLogLevel  = "log-level"
	keyJSONLogs  = "json-logs"
	keyVerbose   = "verbose"
	keyConfig    = "config"
)

// cli carries what every subcommand needs once flags and environment have
// been merged by viper.
type cli struct {
	v       *viper.Viper
	console *logrus.Logger
}

func newRootCmd() *cobra.Command {
	app := &cli{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:           "portalctl",
		Short:         "portalctl - drive LGU portal payments from the terminal",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.load(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String(keyAPIURL, "http://localhost:8080", "Portal API base URL")
	flags.String(keyPortalURL, "http://localhost:3000", "Portal site base URL used for gateway return links")
	flags.Duration(keyTimeout, 30*time.Second, "Timeout for each API call")
	flags.String(keyLogLevel, "info", "Console log level")
	flags.Bool(keyJSONLogs, false, "Write console logs as JSON")
	flags.BoolP(keyVerbose, "v", false, "Also print client request logs")
	flags.String(keyConfig, "", "Optional YAML config file")

	rootCmd.AddCommand(newPayCmd(app))
	rootCmd.AddCommand(newReceiptCmd(app))
	rootCmd.AddCommand(newAdminTokenCmd(app))
	return rootCmd
}

// load merges flags, PORTAL_* environment variables and the optional config
// file, in that order of precedence.
func (c *cli) load(cmd *cobra.Command) error {
	if err := c.v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	c.v.SetEnvPrefix("PORTAL")
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()

	if path := c.v.GetString(keyConfig); path != "" {
		c.v.SetConfigFile(path)
		c.v.SetConfigType("yaml")
		if err := c.v.ReadInConfig(); err != nil {
			return err
		}
	}

	c.console = logger.NewConsoleLogger(os.Stderr, c.v.GetString(keyLogLevel), c.v.GetBool(keyJSONLogs))
	return nil
}

// clientLogger is the zap logger handed to the portal client and stepper.
func (c *cli) clientLogger() *zap.Logger {
	if !c.v.GetBool(keyVerbose) {
		return zap.NewNop()
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		c.console.WithError(err).Warn("falling back to silent client logs")
		return zap.NewNop()
	}
	return log
}

func (c *cli) newStepper(navigator stepper.Navigator) (*stepper.Stepper, error) {
	log := c.clientLogger()
	client := portalclient.New(c.v.GetString(keyAPIURL), c.v.GetDuration(keyTimeout), log)

	builtin, err := catalog.LoadBuiltinCatalog()
	if err != nil {
		return nil, err
	}

	return stepper.New(stepper.Dependencies{
		Resolver:  catalog.NewResolver(client, builtin, log),
		Settings:  client,
		Uploads:   client,
		Payments:  client,
		Navigator: navigator,
		Log:       log,
	}, stepper.Options{
		PortalBaseURL: c.v.GetString(keyPortalURL),
	}), nil
}

func (c *cli) commandContext(cmd *cobra.Command) context.Context {
	return utils.WithRequestID(cmd.Context(), uuid.NewString())
}

// consoleNavigator reports stepper transitions on the console.
type consoleNavigator struct {
	console  *logrus.Logger
	checkout string
}

func (n *consoleNavigator) Replace(location stepper.Location) {
	n.console.WithFields(logrus.Fields{
		"step":          location.Step,
		"transactionId": location.TransactionID,
	}).Debug("session moved")
}

func (n *consoleNavigator) Redirect(checkoutURL string) {
	n.checkout = checkoutURL
	n.console.WithField("checkoutUrl", checkoutURL).Info("redirecting to hosted checkout")
}
