// Command adminctl manages administrator accounts directly in MongoDB.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	mongoadapter "github.com/sachin24864/RealEstate-Website/internal/adapter/mongo"
	"github.com/sachin24864/RealEstate-Website/internal/auth"
	"github.com/sachin24864/RealEstate-Website/internal/config"
	"github.com/sachin24864/RealEstate-Website/internal/platform/logger"
	"github.com/sachin24864/RealEstate-Website/internal/usecase"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const commandTimeout = 30 * time.Second

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "adminctl",
		Short:         "Manage real-estate administrator accounts",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", os.Getenv("ESTATE_CONFIG_PATH"), "path to config file or directory")

	root.AddCommand(newCreateAdminCmd(&configPath), newResetPasswordCmd(&configPath))
	return root
}

func newCreateAdminCmd(configPath *string) *cobra.Command {
	var in usecase.CreateAdminInput

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an administrator account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withAuthUseCase(cmd.Context(), *configPath, func(ctx context.Context, uc *usecase.AuthUseCase) error {
				admin, err := uc.CreateAdmin(ctx, in)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "created admin %s (%s)\n", admin.Email, admin.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "display name")
	cmd.Flags().StringVar(&in.Email, "email", "", "login email")
	cmd.Flags().StringVar(&in.PhoneNumber, "phone", "", "phone number")
	cmd.Flags().StringVar(&in.Password, "password", "", "initial password (min 8 characters)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newResetPasswordCmd(configPath *string) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Set a new password for an administrator",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withAuthUseCase(cmd.Context(), *configPath, func(ctx context.Context, uc *usecase.AuthUseCase) error {
				if err := uc.ResetPassword(ctx, email, password); err != nil {
					if errors.Is(err, usecase.ErrAdminNotFound) {
						return fmt.Errorf("no admin with email %q", email)
					}
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "password updated for %s\n", email)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "admin email")
	cmd.Flags().StringVar(&password, "password", "", "new password (min 8 characters)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

// withAuthUseCase connects to MongoDB, runs fn and disconnects.
func withAuthUseCase(parent context.Context, configPath string, fn func(context.Context, *usecase.AuthUseCase) error) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	appLogger, err := logger.New(logger.Config{Level: cfg.Logger.Level, Format: "console"})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := appLogger.Zap()
	defer func() { _ = log.Sync() }()

	client, err := mongoadapter.NewMongoDBConnection(&cfg.Mongo)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, commandTimeout)
	defer cancel()
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn("Error disconnecting from MongoDB", zap.Error(err))
		}
	}()

	admins := mongoadapter.NewAdminMongoRepository(client.Database(cfg.Mongo.Database), log)
	// Token issuance is never used here, so the secret only has to be non-empty.
	secret := cfg.Auth.JWTSecret
	if secret == "" {
		secret = "adminctl"
	}
	uc := usecase.NewAuthUseCase(admins, auth.NewTokenManager(secret, cfg.Auth.TokenTTL), nil, "", log)
	return fn(ctx, uc)
}
