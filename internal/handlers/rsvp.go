package handlers

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/nuestraboda/wedding-rsvp-api/internal/auth"
	"github.com/nuestraboda/wedding-rsvp-api/internal/models"
	"github.com/nuestraboda/wedding-rsvp-api/internal/rsvp"
	"github.com/nuestraboda/wedding-rsvp-api/internal/status"
	"github.com/nuestraboda/wedding-rsvp-api/internal/store"
)

// RsvpHandler serves the public invitation page and its submission, plus
// the host-only audit listing.
type RsvpHandler struct {
	store       *store.Store
	submitter   *rsvp.Submitter
	authHandler *auth.AuthHandler
}

func NewRsvpHandler(st *store.Store, submitter *rsvp.Submitter, authHandler *auth.AuthHandler) *RsvpHandler {
	return &RsvpHandler{store: st, submitter: submitter, authHandler: authHandler}
}

type InvitationInput struct {
	ID string `query:"id" doc:"Family identifier from the invitation link"`
}

type InvitationOutput struct {
	Body struct {
		Family         models.Family  `json:"family"`
		Guests         []models.Guest `json:"guests"`
		FullyConfirmed bool           `json:"fully_confirmed"`
	}
}

// HandleInvitation backs the `/?id=<familyId>` entry point: the family
// and its guests, plus whether a submission prompt is still needed.
func (h *RsvpHandler) HandleInvitation(ctx context.Context, input *InvitationInput) (*InvitationOutput, error) {
	if input.ID == "" {
		return nil, huma.Error400BadRequest("Missing family id")
	}

	family, err := h.store.GetFamilyByID(ctx, input.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, huma.Error404NotFound("Family not found")
		}
		return nil, huma.Error500InternalServerError("Failed to load family")
	}

	guests, err := h.store.ListGuestsByFamily(ctx, input.ID)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load guests")
	}

	out := &InvitationOutput{}
	out.Body.Family = *family
	out.Body.Guests = guests
	out.Body.FullyConfirmed = status.IsFamilyFullyConfirmed(guests)
	return out, nil
}

type GuestSelection struct {
	GuestID        string   `json:"guest_id"`
	Attending      bool     `json:"attending"`
	Email          string   `json:"email,omitempty"`
	Phone          string   `json:"phone,omitempty"`
	FavoriteSong   string   `json:"favorite_song,omitempty"`
	GuestCount     int      `json:"guest_count,omitempty" minimum:"0"`
	Allergies      []string `json:"allergies,omitempty"`
	OtherAllergies string   `json:"other_allergies,omitempty"`
	Message        string   `json:"message,omitempty"`
}

type SubmitRsvpInput struct {
	FamilyID string `path:"familyID"`
	Body     struct {
		Selections []GuestSelection `json:"selections"`
	}
}

type SubmitRsvpOutput struct {
	Body struct {
		Outcome            rsvp.Outcome `json:"outcome"`
		Message            string       `json:"message"`
		ConfirmedAttending int          `json:"confirmed_attending"`
	}
}

func (h *RsvpHandler) HandleSubmit(ctx context.Context, input *SubmitRsvpInput) (*SubmitRsvpOutput, error) {
	selections := make([]rsvp.Selection, 0, len(input.Body.Selections))
	for _, s := range input.Body.Selections {
		selections = append(selections, rsvp.Selection{
			GuestID:        s.GuestID,
			Attending:      s.Attending,
			Email:          s.Email,
			Phone:          s.Phone,
			FavoriteSong:   s.FavoriteSong,
			GuestCount:     s.GuestCount,
			Allergies:      s.Allergies,
			OtherAllergies: s.OtherAllergies,
			Message:        s.Message,
		})
	}

	result, err := h.submitter.Submit(ctx, input.FamilyID, selections)
	if err != nil {
		var vErr *rsvp.ValidationError
		if errors.As(err, &vErr) {
			return nil, huma.Error422UnprocessableEntity(vErr.Error())
		}
		if errors.Is(err, store.ErrNotFound) {
			return nil, huma.Error404NotFound("Family not found")
		}
		return nil, huma.Error500InternalServerError("Failed to process RSVP: " + err.Error())
	}

	out := &SubmitRsvpOutput{}
	out.Body.Outcome = result.Outcome
	out.Body.ConfirmedAttending = result.ConfirmedAttending
	switch result.Outcome {
	case rsvp.OutcomeAlreadyComplete:
		out.Body.Message = "Esta familia ya confirmó a todos sus invitados."
	case rsvp.OutcomeNoNewSelection:
		out.Body.Message = "No hay selecciones nuevas para enviar."
	default:
		out.Body.Message = "¡Gracias por confirmar tu asistencia!"
	}
	return out, nil
}

type ListRsvpsInput struct {
	auth.AuthInput
	GuestID string `query:"guest_id" doc:"Filter by guest"`
}

type ListRsvpsOutput struct {
	Body []models.Rsvp
}

func (h *RsvpHandler) HandleListRsvps(ctx context.Context, input *ListRsvpsInput) (*ListRsvpsOutput, error) {
	if _, err := h.authHandler.Authorize(ctx, input.AuthInput); err != nil {
		return nil, err
	}

	var (
		rsvps []models.Rsvp
		err   error
	)
	if input.GuestID != "" {
		rsvps, err = h.store.ListRsvpsByGuest(ctx, input.GuestID)
	} else {
		rsvps, err = h.store.ListRsvps(ctx)
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to list RSVPs")
	}
	return &ListRsvpsOutput{Body: rsvps}, nil
}
