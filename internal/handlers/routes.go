package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/nuestraboda/wedding-rsvp-api/internal/auth"
)

func RegisterRoutes(r *chi.Mux, authHandler *auth.AuthHandler, familyHandler *FamilyHandler, guestHandler *GuestHandler, rsvpHandler *RsvpHandler, validateHandler *ValidateHandler, apiKeyHandler *APIKeyHandler) {
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Initialize Huma API
	config := huma.DefaultConfig("Wedding RSVP API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"cookieAuth": {
			Type: "apiKey",
			In:   "cookie",
			Name: "auth_token",
		},
		"terminalKey": {
			Type: "apiKey",
			In:   "header",
			Name: "X-API-KEY",
		},
	}
	api := humachi.New(r, config)

	hostOnly := func(o *huma.Operation) {
		o.Security = []map[string][]string{{"cookieAuth": {}}, {"terminalKey": {}}}
	}

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Auth routes
	r.Get("/auth/google/login", authHandler.HandleGoogleLogin)
	r.Get("/auth/google/callback", authHandler.HandleGoogleCallback)
	huma.Post(api, "/auth/login", authHandler.HandlePasswordLogin)
	huma.Get(api, "/me", authHandler.HandleMe, hostOnly)

	// Public invitation + RSVP + check-in validation
	huma.Get(api, "/api/invitation", rsvpHandler.HandleInvitation)
	huma.Post(api, "/api/invitation/{familyID}/rsvp", rsvpHandler.HandleSubmit)
	huma.Get(api, "/api/validate/{guestID}", validateHandler.HandleValidate)
	huma.Post(api, "/api/validate", validateHandler.HandleValidatePayload)
	huma.Post(api, "/api/validate/reset", validateHandler.HandleReset)

	// Host-only data registration and audit
	huma.Post(api, "/api/families", familyHandler.HandleCreate, hostOnly)
	huma.Get(api, "/api/families", familyHandler.HandleList, hostOnly)
	huma.Get(api, "/api/families/{id}", familyHandler.HandleGet, hostOnly)
	huma.Put(api, "/api/families/{id}", familyHandler.HandleUpdate, hostOnly)
	huma.Delete(api, "/api/families/{id}", familyHandler.HandleDelete, hostOnly)

	huma.Post(api, "/api/guests", guestHandler.HandleCreate, hostOnly)
	huma.Get(api, "/api/guests", guestHandler.HandleList, hostOnly)
	huma.Put(api, "/api/guests/{id}", guestHandler.HandleUpdate, hostOnly)
	huma.Delete(api, "/api/guests/{id}", guestHandler.HandleDelete, hostOnly)

	huma.Get(api, "/api/rsvps", rsvpHandler.HandleListRsvps, hostOnly)

	huma.Post(api, "/api/keys", apiKeyHandler.HandleCreate, hostOnly)
	huma.Get(api, "/api/keys", apiKeyHandler.HandleList, hostOnly)
	huma.Delete(api, "/api/keys/{id}", apiKeyHandler.HandleDelete, hostOnly)
}
