package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/amirphl/Rentora/models"
	"github.com/amirphl/Rentora/repository"
	"github.com/amirphl/Rentora/utils"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

func newCreateAdminCmd() *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account",
		Long:  "Create an admin account. The password falls back to the ADMIN_PASSWORD environment variable.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				password = os.Getenv("ADMIN_PASSWORD")
			}
			username = strings.TrimSpace(username)
			if username == "" {
				return errors.New("username is required")
			}
			if len(password) < 8 {
				return errors.New("password must be at least 8 characters")
			}

			cfg, _, err := bootstrap()
			if err != nil {
				return err
			}
			db, err := initializeDatabase(cfg.Database)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.RequestTimeout)
			defer cancel()

			adminRepo := repository.NewAdminRepository(db)
			existing, err := adminRepo.ByUsername(ctx, username)
			if err != nil {
				return fmt.Errorf("failed to look up admin: %w", err)
			}
			if existing != nil {
				return fmt.Errorf("admin %q already exists", username)
			}

			hash, err := bcrypt.GenerateFromPassword([]byte(password), cfg.Security.BcryptCost)
			if err != nil {
				return fmt.Errorf("failed to hash password: %w", err)
			}

			admin := &models.Admin{
				Username:     username,
				PasswordHash: string(hash),
				IsActive:     utils.ToPtr(true),
			}
			if err := adminRepo.Save(ctx, admin); err != nil {
				return fmt.Errorf("failed to create admin: %w", err)
			}

			log.Info().Str("username", admin.Username).Str("uuid", admin.UUID.String()).Msg("admin created")
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "admin username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "admin password")
	return cmd
}
