package main

import (
	"github.com/pferate/puppy-website/internal/config"
	"github.com/pferate/puppy-website/internal/identity"
	"github.com/pferate/puppy-website/internal/repository"
	"github.com/pferate/puppy-website/internal/services"
	"github.com/pferate/puppy-website/internal/tokens"
	"gorm.io/gorm"
)

// app holds the services and identity configuration shared by every command.
type app struct {
	identity      *identity.Manager
	auth          *services.AuthService
	groups        *services.GroupService
	notifications *services.NotificationService
	catalog       *services.CatalogService
	ventures      *services.VentureService
}

func newApp(cfg *config.Config, db *gorm.DB) *app {
	userRepo := repository.NewUserRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)

	authService := services.NewAuthService(userRepo, tokens.NewSigner([]byte(cfg.SecretKey)), cfg.TokenTTL)

	return &app{
		identity:      identity.NewManager(authService.LoadUser, nil),
		auth:          authService,
		groups:        services.NewGroupService(groupRepo, userRepo),
		notifications: services.NewNotificationService(repository.NewNotificationRepository(db), userRepo),
		catalog:       services.NewCatalogService(categoryRepo, userRepo),
		ventures:      services.NewVentureService(repository.NewVentureRepository(db), userRepo, categoryRepo),
	}
}
