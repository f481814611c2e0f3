package handlers

import (
	"context"
	"testing"

	"github.com/nuestraboda/wedding-rsvp-api/internal/models"
	"github.com/nuestraboda/wedding-rsvp-api/internal/validation"
	"github.com/rs/zerolog"
)

func boolPtr(b bool) *bool { return &b }

func newValidateHandler(env *testEnv) *ValidateHandler {
	machine := validation.NewMachine(env.store, validation.NoScanner{}, zerolog.Nop())
	return NewValidateHandler(machine)
}

func TestHandleValidate(t *testing.T) {
	env := newTestEnv(t)
	handler := newValidateHandler(env)
	ctx := context.Background()

	famID, _ := env.store.CreateFamily(ctx, &models.Family{FamilyName: "Alarcon", InvitedCount: 3})
	attendingID, _ := env.store.CreateGuest(ctx, &models.Guest{
		Name: "Ana", FamilyID: famID, Confirmed: boolPtr(true), Attending: boolPtr(true),
	})
	declinedID, _ := env.store.CreateGuest(ctx, &models.Guest{
		Name: "Luis", FamilyID: famID, Confirmed: boolPtr(true), Attending: boolPtr(false),
	})
	pendingID, _ := env.store.CreateGuest(ctx, &models.Guest{Name: "Marta", FamilyID: famID})

	t.Run("Valid", func(t *testing.T) {
		resp, err := handler.HandleValidate(ctx, &ValidateGuestInput{GuestID: attendingID})
		if err != nil {
			t.Fatalf("HandleValidate returned error: %v", err)
		}
		if resp.Body.State != validation.StateValid {
			t.Errorf("expected valid, got %s (%s)", resp.Body.State, resp.Body.Reason)
		}
		if resp.Body.FamilyName != "Alarcon" {
			t.Errorf("expected family name Alarcon, got %q", resp.Body.FamilyName)
		}
		if resp.Body.Message != "ACCESO AUTORIZADO" {
			t.Errorf("unexpected message %q", resp.Body.Message)
		}
	})

	t.Run("Declined", func(t *testing.T) {
		resp, _ := handler.HandleValidate(ctx, &ValidateGuestInput{GuestID: declinedID})
		if resp.Body.Reason != validation.ReasonDeclined {
			t.Errorf("expected declined, got %s", resp.Body.Reason)
		}
	})

	t.Run("Pending", func(t *testing.T) {
		resp, _ := handler.HandleValidate(ctx, &ValidateGuestInput{GuestID: pendingID})
		if resp.Body.Reason != validation.ReasonPending {
			t.Errorf("expected pending, got %s", resp.Body.Reason)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		resp, _ := handler.HandleValidate(ctx, &ValidateGuestInput{GuestID: "ghost"})
		if resp.Body.Reason != validation.ReasonNotFound {
			t.Errorf("expected not-found, got %s", resp.Body.Reason)
		}
	})

	t.Run("ScannedURLPayload", func(t *testing.T) {
		input := &ValidatePayloadInput{}
		input.Body.Payload = "https://boda.example/validate/" + attendingID
		resp, err := handler.HandleValidatePayload(ctx, input)
		if err != nil {
			t.Fatalf("HandleValidatePayload returned error: %v", err)
		}
		if resp.Body.State != validation.StateValid {
			t.Errorf("expected valid from URL payload, got %s", resp.Body.State)
		}
	})

	t.Run("EmptyPayload", func(t *testing.T) {
		input := &ValidatePayloadInput{}
		input.Body.Payload = "   "
		if _, err := handler.HandleValidatePayload(ctx, input); err == nil {
			t.Fatal("expected error for empty payload, got nil")
		}
	})

	t.Run("Reset", func(t *testing.T) {
		resp, err := handler.HandleReset(ctx, &ResetValidationInput{})
		if err != nil {
			t.Fatalf("HandleReset returned error: %v", err)
		}
		if resp.Body.State != validation.StateManual {
			t.Errorf("expected manual after reset, got %s", resp.Body.State)
		}
		if resp.Body.GuestName != "" {
			t.Error("expected guest cleared on reset")
		}
	})
}
