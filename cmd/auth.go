package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/studybuddy-ai/studybuddy/internal/auth"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage Google account authorization for exports",
	Long: `Authorize studybuddy against your Google account so study notes can be
exported to Google Docs. Tokens are stored in the studybuddy database.`,
}

var authGoogleCmd = &cobra.Command{
	Use:   "google",
	Short: "Authenticate with Google via OAuth2",
	Long: `Opens your browser for Google OAuth2 authorization with Docs and Drive
scopes. You need a Google Cloud OAuth2 Client ID and Secret, set either
in .studybuddy.yml (google_client_id, google_client_secret) or via the
GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET environment variables.`,
	RunE: runAuthGoogle,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether a Google account is connected",
	RunE:  runAuthStatus,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored Google token",
	RunE:  runAuthLogout,
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authGoogleCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authLogoutCmd)
}

// googleClientCredentials resolves the OAuth client from config, falling
// back to environment variables.
func googleClientCredentials() (clientID, clientSecret string, err error) {
	cfg, err := loadConfig()
	if err != nil {
		return "", "", err
	}
	clientID = cfg.GoogleClientID
	if clientID == "" {
		clientID = os.Getenv("GOOGLE_CLIENT_ID")
	}
	clientSecret = cfg.GoogleClientSecret
	if clientSecret == "" {
		clientSecret = os.Getenv("GOOGLE_CLIENT_SECRET")
	}
	if clientID == "" || clientSecret == "" {
		return "", "", fmt.Errorf("Google OAuth client is not configured; set google_client_id and google_client_secret in %s", cfgFile)
	}
	return clientID, clientSecret, nil
}

func runAuthGoogle(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	clientID, clientSecret, err := googleClientCredentials()
	if err != nil {
		return err
	}

	token, err := auth.RunGoogleOAuth(clientID, clientSecret)
	if err != nil {
		return fmt.Errorf("OAuth flow failed: %w", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	database, err := openDatabase(cfg)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	if err := auth.NewStore(database).SaveToken(ctx, auth.ProviderGoogle, token); err != nil {
		return fmt.Errorf("saving token: %w", err)
	}

	fmt.Println("Google account connected. Exports to Google Docs are now available.")
	return nil
}

func runAuthStatus(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	database, err := openDatabase(cfg)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	if auth.NewStore(database).HasToken(ctx, auth.ProviderGoogle) {
		fmt.Println("google: connected")
	} else {
		fmt.Println("google: not connected (run `studybuddy auth google`)")
	}
	return nil
}

func runAuthLogout(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	database, err := openDatabase(cfg)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	if err := auth.NewStore(database).Delete(ctx, auth.ProviderGoogle); err != nil {
		return fmt.Errorf("removing token: %w", err)
	}
	fmt.Println("Google token removed.")
	return nil
}
