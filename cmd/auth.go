package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DoubleTimeOnly/daybrief/internal/auth"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage Google Calendar authentication",
		Long: `Complete the one-time OAuth2 bootstrap against your own Google OAuth
client. Store the client identity with 'auth configure' (or export
GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET), print the consent URL with
'auth url', then trade the code Google shows you with 'auth exchange'.`,
	}

	cmd.AddCommand(newAuthConfigureCmd())
	cmd.AddCommand(newAuthURLCmd())
	cmd.AddCommand(newAuthExchangeCmd())
	return cmd
}

func newAuthConfigureCmd() *cobra.Command {
	var clientID, clientSecret string

	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Store the OAuth client ID and secret",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, store, err := loadSettings()
			if err != nil {
				return err
			}
			if clientID != "" {
				settings.ClientID = clientID
			}
			if clientSecret != "" {
				settings.ClientSecret = clientSecret
			}
			if !settings.HasClientCredentials() {
				return auth.ErrMissingCredentials
			}
			if err := store.Save(settings); err != nil {
				return fmt.Errorf("failed to save settings: %w", err)
			}
			newNotifier().Infof("OAuth client stored. Next: 'daybrief auth url'.")
			return nil
		},
	}

	cmd.Flags().StringVar(&clientID, "client-id", "", "Google OAuth client ID")
	cmd.Flags().StringVar(&clientSecret, "client-secret", "", "Google OAuth client secret")
	return cmd
}

func newAuthURLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "url",
		Short: "Print the consent URL to obtain an authorization code",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, store, err := loadSettings()
			if err != nil {
				return err
			}

			manager := auth.NewManager(settings, store, auth.WithLogger(newLogger()))
			url, err := manager.AuthCodeURL()
			if err != nil {
				if errors.Is(err, auth.ErrMissingCredentials) {
					newNotifier().Errorf("OAuth client not configured. Run 'daybrief auth configure' first.")
				}
				return err
			}

			fmt.Printf("Visit the following URL, accept the prompts and copy the authorization code:\n%s\n", url)
			return nil
		},
	}
}

func newAuthExchangeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exchange <code>",
		Short: "Exchange an authorization code for tokens",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			notifier := newNotifier()

			settings, store, err := loadSettings()
			if err != nil {
				notifier.Errorf("Could not load settings: %v", err)
				return err
			}

			manager := auth.NewManager(settings, store, auth.WithLogger(newLogger()))
			if err := manager.ExchangeAuthorizationCode(context.Background(), args[0]); err != nil {
				if errors.Is(err, auth.ErrExchangeRejected) {
					notifier.Errorf("Google rejected the authorization code. Request a fresh one with 'daybrief auth url'.")
				} else {
					notifyAuthError(notifier, err)
				}
				return err
			}

			notifier.Infof("Authenticated. Add calendars with 'daybrief sources add <calendar-id>'.")
			return nil
		},
	}
}
