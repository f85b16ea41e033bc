package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/taskdeck/taskdeck/internal/api"
	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/internal/database"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Taskdeck API server",
	Long:  `Start the Taskdeck server to handle task and account requests over HTTP.`,
	Example: `taskdeck serve --config config.yml
taskdeck serve -c /path/to/config.yml --log-level debug
`,
	Run: startServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func startServer(cmd *cobra.Command, _ []string) {
	cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if rootCmdPersistentFlags.LogLevel == "" {
		setLogLevel(cfg.LogLevel)
	}

	db, err := database.New(cfg.Database.Path)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if err := bootstrapAdmin(ctx, cfg, db); err != nil {
		log.Fatalf("failed to bootstrap admin account: %v", err)
	}

	server, err := api.New(cfg, db, log.GetLevel() == log.DebugLevel)
	if err != nil {
		log.Fatalf("failed to create API server: %v", err)
	}

	// Start the API server in a goroutine
	go func() {
		log.Info("starting API server", "listen", cfg.Listen)
		if err := server.Run(); err != nil {
			log.Error("API server error", "error", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	log.Info("taskdeck started successfully")
	<-c
	log.Info("shutting down gracefully...")

	// Give time for graceful shutdown
	cancel()
	time.Sleep(2 * time.Second)
}

// bootstrapAdmin ensures the configured admin account exists. It only runs
// when admin credentials are configured and the username is still free.
func bootstrapAdmin(ctx context.Context, cfg *config.Config, db database.DB) error {
	if cfg.Admin == nil || cfg.Admin.Username == "" {
		return nil
	}

	if _, err := db.GetUserByUsername(ctx, cfg.Admin.Username); err == nil {
		return nil
	} else if !errors.Is(err, database.ErrNotFound) {
		return err
	}

	user := &database.User{
		Username:    cfg.Admin.Username,
		Email:       cfg.Admin.Email,
		IsSuperuser: true,
	}
	if err := user.SetPassword(cfg.Admin.Password); err != nil {
		return err
	}
	if err := db.CreateUser(ctx, user); err != nil {
		return err
	}

	log.Info("created admin account", "username", user.Username)
	return nil
}
