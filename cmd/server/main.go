package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/bwmarrin/discordgo"
	"github.com/go-chi/chi/v5"
	"github.com/nuestraboda/wedding-rsvp-api/internal/auth"
	"github.com/nuestraboda/wedding-rsvp-api/internal/config"
	"github.com/nuestraboda/wedding-rsvp-api/internal/database"
	"github.com/nuestraboda/wedding-rsvp-api/internal/handlers"
	"github.com/nuestraboda/wedding-rsvp-api/internal/notifier"
	"github.com/nuestraboda/wedding-rsvp-api/internal/rsvp"
	"github.com/nuestraboda/wedding-rsvp-api/internal/store"
	"github.com/nuestraboda/wedding-rsvp-api/internal/validation"
	"github.com/rs/zerolog"
)

func main() {
	// Load Configuration
	cfg := config.LoadConfig()

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	// Connect to Database
	db := database.Connect(cfg)

	if err := auth.SeedHost(db, cfg.SeedHostEmail, cfg.SeedHostPassword); err != nil {
		log.Fatalf("Failed to seed host account: %v", err)
	}

	dataStore := store.New(db, logger)

	// Initialize Notifiers
	var guestNotifier rsvp.GuestNotifier
	emailNotifier, err := notifier.NewEmailNotifier(cfg, logger)
	if err != nil {
		log.Printf("Email notifier not initialized: %v", err)
	} else {
		guestNotifier = emailNotifier
	}

	var hostNotifier rsvp.HostNotifier
	if cfg.DiscordBotToken != "" {
		session, err := discordgo.New("Bot " + cfg.DiscordBotToken)
		if err != nil {
			log.Printf("Discord notifier not initialized: %v", err)
		} else {
			hostNotifier = notifier.NewDiscordNotifier(session, cfg.DiscordNotificationsChannelID)
		}
	}

	// Initialize Handlers
	authHandler := auth.NewAuthHandler(cfg, db)
	submitter := rsvp.NewSubmitter(dataStore, guestNotifier, hostNotifier, cfg.PublicURL, logger)
	machine := validation.NewMachine(dataStore, validation.NoScanner{}, logger)

	familyHandler := handlers.NewFamilyHandler(dataStore, authHandler)
	guestHandler := handlers.NewGuestHandler(dataStore, authHandler)
	rsvpHandler := handlers.NewRsvpHandler(dataStore, submitter, authHandler)
	validateHandler := handlers.NewValidateHandler(machine)
	apiKeyHandler := handlers.NewAPIKeyHandler(db, authHandler)

	// Initialize Router
	r := chi.NewRouter()

	// Register Routes
	handlers.RegisterRoutes(r, authHandler, familyHandler, guestHandler, rsvpHandler, validateHandler, apiKeyHandler)

	// Start Server
	log.Printf("Starting server on port %s", cfg.Port)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
