package handlers

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/nuestraboda/wedding-rsvp-api/internal/auth"
	"github.com/nuestraboda/wedding-rsvp-api/internal/models"
	"github.com/nuestraboda/wedding-rsvp-api/internal/store"
)

// FamilyHandler serves the host-only family registration surface.
type FamilyHandler struct {
	store       *store.Store
	authHandler *auth.AuthHandler
}

func NewFamilyHandler(st *store.Store, authHandler *auth.AuthHandler) *FamilyHandler {
	return &FamilyHandler{store: st, authHandler: authHandler}
}

type CreateFamilyInput struct {
	auth.AuthInput
	Body struct {
		FamilyName   string `json:"family_name" doc:"Household name on the invitation"`
		InvitedCount int    `json:"invited_count" minimum:"1" doc:"Number of invited seats"`
		Notes        string `json:"notes,omitempty"`
	}
}

type FamilyOutput struct {
	Body models.Family
}

func (h *FamilyHandler) HandleCreate(ctx context.Context, input *CreateFamilyInput) (*FamilyOutput, error) {
	if _, err := h.authHandler.Authorize(ctx, input.AuthInput); err != nil {
		return nil, err
	}

	family := models.Family{
		FamilyName:   input.Body.FamilyName,
		InvitedCount: input.Body.InvitedCount,
		Notes:        input.Body.Notes,
	}
	if _, err := h.store.CreateFamily(ctx, &family); err != nil {
		return nil, huma.Error400BadRequest(err.Error())
	}
	return &FamilyOutput{Body: family}, nil
}

type ListFamiliesInput struct {
	auth.AuthInput
}

type ListFamiliesOutput struct {
	Body []models.Family
}

func (h *FamilyHandler) HandleList(ctx context.Context, input *ListFamiliesInput) (*ListFamiliesOutput, error) {
	if _, err := h.authHandler.Authorize(ctx, input.AuthInput); err != nil {
		return nil, err
	}

	families, err := h.store.ListFamilies(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to list families")
	}
	return &ListFamiliesOutput{Body: families}, nil
}

type GetFamilyInput struct {
	auth.AuthInput
	ID string `path:"id"`
}

func (h *FamilyHandler) HandleGet(ctx context.Context, input *GetFamilyInput) (*FamilyOutput, error) {
	if _, err := h.authHandler.Authorize(ctx, input.AuthInput); err != nil {
		return nil, err
	}

	family, err := h.store.GetFamilyByID(ctx, input.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, huma.Error404NotFound("Family not found")
		}
		return nil, huma.Error500InternalServerError("Failed to load family")
	}
	return &FamilyOutput{Body: *family}, nil
}

type UpdateFamilyInput struct {
	auth.AuthInput
	ID   string `path:"id"`
	Body struct {
		FamilyName   *string `json:"family_name,omitempty"`
		InvitedCount *int    `json:"invited_count,omitempty" minimum:"1"`
		Notes        *string `json:"notes,omitempty"`
	}
}

func (h *FamilyHandler) HandleUpdate(ctx context.Context, input *UpdateFamilyInput) (*FamilyOutput, error) {
	if _, err := h.authHandler.Authorize(ctx, input.AuthInput); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if input.Body.FamilyName != nil {
		fields["family_name"] = *input.Body.FamilyName
	}
	if input.Body.InvitedCount != nil {
		fields["invited_count"] = *input.Body.InvitedCount
	}
	if input.Body.Notes != nil {
		fields["notes"] = *input.Body.Notes
	}
	if len(fields) == 0 {
		return nil, huma.Error400BadRequest("No fields to update")
	}

	if err := h.store.UpdateFamily(ctx, input.ID, fields); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, huma.Error404NotFound("Family not found")
		}
		return nil, huma.Error500InternalServerError("Failed to update family")
	}

	family, err := h.store.GetFamilyByID(ctx, input.ID)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to reload family")
	}
	return &FamilyOutput{Body: *family}, nil
}

type DeleteFamilyInput struct {
	auth.AuthInput
	ID string `path:"id"`
}

func (h *FamilyHandler) HandleDelete(ctx context.Context, input *DeleteFamilyInput) (*struct{}, error) {
	if _, err := h.authHandler.Authorize(ctx, input.AuthInput); err != nil {
		return nil, err
	}

	if err := h.store.DeleteFamily(ctx, input.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, huma.Error404NotFound("Family not found")
		}
		return nil, huma.Error500InternalServerError("Failed to delete family")
	}
	return nil, nil
}
