package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"dashinbox/internal/config"
	"dashinbox/internal/preference"
	"dashinbox/internal/repository/restapi"
	"dashinbox/internal/service"
)

var (
	version = "dev"
	commit  = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "inboxctl",
	Short: "Terminal client for the dashboard inbox, preferences and charts",
	Long: `inboxctl drives the dashboard's message inbox from a terminal: list
messages, open them (marking them read), delete them, flip the dark mode
preference and print the domain statistics charts.`,
	Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		envFile, _ := cmd.Flags().GetString("env-file")
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s: %w", envFile, err)
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Disable completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().String("env-file", ".env", "dotenv file with API credentials")
	rootCmd.PersistentFlags().Duration("wait", 30*time.Second, "how long to wait for outbound requests")
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func newRepository(cfg *config.Config) *restapi.MessageRepository {
	return restapi.NewMessageRepository(restapi.Options{
		BaseURL:   cfg.API.BaseURL,
		CSRFToken: cfg.API.CSRFToken,
		SessionID: cfg.API.SessionID,
		APIToken:  cfg.API.Token,
		Timeout:   cfg.API.Timeout,
	})
}

// loadInbox fetches the inbox the same way a page load would.
func loadInbox(cmd *cobra.Command) (*service.InboxService, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger := log.New(io.Discard, "", 0)
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logger = log.New(cmd.ErrOrStderr(), "inbox-service ", log.LstdFlags)
	}

	svc := service.NewInboxService(newRepository(cfg), service.InboxServiceOptions{Logger: logger})
	if err := svc.ReloadInbox(cmd.Context()); err != nil {
		return nil, err
	}
	return svc, nil
}

// openPreferences returns the preference store and a cleanup func.
func openPreferences(ctx context.Context) (preference.Store, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	if cfg.Preference.Backend != "redis" {
		return preference.NewFileStore(cfg.Preference.File, cfg.Preference.Profile), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}
	return preference.NewRedisStore(client, cfg.Preference.Profile), func() { client.Close() }, nil
}

func waitTimeout(cmd *cobra.Command) time.Duration {
	d, _ := cmd.Flags().GetDuration("wait")
	return d
}
