package handlers

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/nuestraboda/wedding-rsvp-api/internal/auth"
	"github.com/nuestraboda/wedding-rsvp-api/internal/models"
	"github.com/nuestraboda/wedding-rsvp-api/internal/store"
)

// GuestHandler serves the host-only guest registration surface.
type GuestHandler struct {
	store       *store.Store
	authHandler *auth.AuthHandler
}

func NewGuestHandler(st *store.Store, authHandler *auth.AuthHandler) *GuestHandler {
	return &GuestHandler{store: st, authHandler: authHandler}
}

type CreateGuestInput struct {
	auth.AuthInput
	Body struct {
		Name     string `json:"name"`
		Phone    string `json:"phone,omitempty"`
		Email    string `json:"email,omitempty" format:"email"`
		FamilyID string `json:"family_id" doc:"Owning family identifier"`
	}
}

type GuestOutput struct {
	Body models.Guest
}

func (h *GuestHandler) HandleCreate(ctx context.Context, input *CreateGuestInput) (*GuestOutput, error) {
	if _, err := h.authHandler.Authorize(ctx, input.AuthInput); err != nil {
		return nil, err
	}

	guest := models.Guest{
		Name:     input.Body.Name,
		Phone:    input.Body.Phone,
		Email:    input.Body.Email,
		FamilyID: input.Body.FamilyID,
	}
	if _, err := h.store.CreateGuest(ctx, &guest); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, huma.Error400BadRequest("Family not found")
		}
		return nil, huma.Error400BadRequest(err.Error())
	}
	return &GuestOutput{Body: guest}, nil
}

type ListGuestsInput struct {
	auth.AuthInput
	FamilyID string `query:"family_id" doc:"Filter by owning family"`
}

type ListGuestsOutput struct {
	Body []models.Guest
}

func (h *GuestHandler) HandleList(ctx context.Context, input *ListGuestsInput) (*ListGuestsOutput, error) {
	if _, err := h.authHandler.Authorize(ctx, input.AuthInput); err != nil {
		return nil, err
	}

	var (
		guests []models.Guest
		err    error
	)
	if input.FamilyID != "" {
		guests, err = h.store.ListGuestsByFamily(ctx, input.FamilyID)
	} else {
		guests, err = h.store.ListGuests(ctx)
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to list guests")
	}
	return &ListGuestsOutput{Body: guests}, nil
}

type UpdateGuestInput struct {
	auth.AuthInput
	ID   string `path:"id"`
	Body struct {
		Name         *string `json:"name,omitempty"`
		Phone        *string `json:"phone,omitempty"`
		Email        *string `json:"email,omitempty"`
		Confirmed    *bool   `json:"confirmed,omitempty"`
		Attending    *bool   `json:"attending,omitempty"`
		FavoriteSong *string `json:"favorite_song,omitempty"`
	}
}

func (h *GuestHandler) HandleUpdate(ctx context.Context, input *UpdateGuestInput) (*GuestOutput, error) {
	if _, err := h.authHandler.Authorize(ctx, input.AuthInput); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if input.Body.Name != nil {
		fields["name"] = *input.Body.Name
	}
	if input.Body.Phone != nil {
		fields["phone"] = *input.Body.Phone
	}
	if input.Body.Email != nil {
		fields["email"] = *input.Body.Email
	}
	if input.Body.Confirmed != nil {
		fields["confirmed"] = *input.Body.Confirmed
	}
	if input.Body.Attending != nil {
		fields["attending"] = *input.Body.Attending
	}
	if input.Body.FavoriteSong != nil {
		fields["favorite_song"] = *input.Body.FavoriteSong
	}
	if len(fields) == 0 {
		return nil, huma.Error400BadRequest("No fields to update")
	}

	if err := h.store.UpdateGuest(ctx, input.ID, fields); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, huma.Error404NotFound("Guest not found")
		}
		return nil, huma.Error500InternalServerError("Failed to update guest")
	}

	guest, err := h.store.GetGuestByID(ctx, input.ID)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to reload guest")
	}
	return &GuestOutput{Body: *guest}, nil
}

type DeleteGuestInput struct {
	auth.AuthInput
	ID string `path:"id"`
}

func (h *GuestHandler) HandleDelete(ctx context.Context, input *DeleteGuestInput) (*struct{}, error) {
	if _, err := h.authHandler.Authorize(ctx, input.AuthInput); err != nil {
		return nil, err
	}

	if err := h.store.DeleteGuest(ctx, input.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, huma.Error404NotFound("Guest not found")
		}
		return nil, huma.Error500InternalServerError("Failed to delete guest")
	}
	return nil, nil
}
