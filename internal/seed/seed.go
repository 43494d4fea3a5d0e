package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"portfolio/api/internal/config"
	"portfolio/api/internal/ids"
	"portfolio/api/internal/models"
	"portfolio/api/internal/repository"
	"portfolio/api/internal/security"
	"portfolio/api/internal/service"
)

var defaultCategories = []models.BlogCategory{
	{Name: "Design", Slug: "design"},
	{Name: "Development", Slug: "development"},
	{Name: "Digital Marketing", Slug: "digital-marketing"},
	{Name: "Web3", Slug: "web3"},
	{Name: "UX/UI", Slug: "ux-ui"},
}

// Run bootstraps the admin principal and the default category set. It is
// idempotent and safe to run on every startup.
func Run(ctx context.Context, users service.UserStore, categories service.CategoryStore, cfg config.SeedConfig, log zerolog.Logger) error {
	if err := seedAdmin(ctx, users, cfg, log); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if err := seedCategories(ctx, categories, log); err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}
	return nil
}

func seedAdmin(ctx context.Context, users service.UserStore, cfg config.SeedConfig, log zerolog.Logger) error {
	if cfg.AdminPassword == "" {
		log.Warn().Msg("no admin password configured, skipping admin seed")
		return nil
	}

	_, err := users.FindByUsername(ctx, cfg.AdminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return err
	}

	passwordHash, err := security.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}

	user := models.User{
		ID:           ids.New(),
		Username:     cfg.AdminUsername,
		PasswordHash: passwordHash,
		IsAdmin:      true,
	}
	if cfg.AdminEmail != "" {
		user.Email = &cfg.AdminEmail
	}
	if cfg.AdminFullName != "" {
		user.FullName = &cfg.AdminFullName
	}

	if err := users.Create(ctx, user); err != nil {
		return err
	}

	log.Info().Str("username", user.Username).Msg("admin user created")
	return nil
}

func seedCategories(ctx context.Context, categories service.CategoryStore, log zerolog.Logger) error {
	for _, category := range defaultCategories {
		_, err := categories.GetBySlug(ctx, category.Slug)
		if err == nil {
			continue
		}
		if !errors.Is(err, repository.ErrCategoryNotFound) {
			return err
		}

		category.ID = ids.New()
		if err := categories.Create(ctx, category); err != nil {
			return err
		}
		log.Info().Str("slug", category.Slug).Msg("category created")
	}
	return nil
}
