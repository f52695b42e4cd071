package main

import (
	"fmt"
	"lgu-portal-service/internal/app/config"
	"lgu-portal-service/internal/app/services/shared/jwtmanager"
	"time"

	"github.com/spf13/cobra"
)

func newAdminTokenCmd(app *cli) *cobra.Command {
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "admin-token [subject]",
		Short: "Mint a bearer token for the admin API",
		Long: `Signs an admin API token with JWT_SECRET from the environment or .env
file, the same secret the portal server verifies with.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := app.commandContext(cmd)

			manager, err := jwtmanager.NewJWTManager(config.NewInternalConfig(), app.clientLogger())
			if err != nil {
				return err
			}

			token, err := manager.CreateToken(ctx, &jwtmanager.CreateTokenInput{Subject: args[0], TTL: ttl})
			if err != nil {
				return err
			}

			app.console.WithField("expiresAt", token.ExpiresAt.Format(time.RFC3339)).Info("admin token issued")
			fmt.Fprintln(cmd.OutOrStdout(), token.Token)
			return nil
		},
	}

	cmd.Flags().DurationVar(&ttl, "ttl", 0, "Token lifetime, defaults to JWT_EXP_TIME_IN_HOUR")
	return cmd
}
