package handlers

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/nuestraboda/wedding-rsvp-api/internal/validation"
)

// ValidateHandler backs the `/validate/<guestId>` entry point. It owns
// one validation machine; concurrent requests follow the machine's
// last-write-wins display semantics while each caller still gets the
// outcome of its own lookup.
type ValidateHandler struct {
	machine *validation.Machine
}

func NewValidateHandler(machine *validation.Machine) *ValidateHandler {
	return &ValidateHandler{machine: machine}
}

type ValidationResult struct {
	State      validation.State  `json:"state"`
	Reason     validation.Reason `json:"reason,omitempty"`
	GuestName  string            `json:"guest_name,omitempty"`
	FamilyName string            `json:"family_name,omitempty"`
	Message    string            `json:"message"`
}

func toResult(st validation.Status) ValidationResult {
	res := ValidationResult{
		State:      st.State,
		Reason:     st.Reason,
		FamilyName: st.FamilyName,
	}
	if st.Guest != nil {
		res.GuestName = st.Guest.Name
	}

	switch {
	case st.State == validation.StateValid:
		res.Message = "ACCESO AUTORIZADO"
	case st.Reason == validation.ReasonDeclined:
		res.Message = "El invitado declinó la asistencia."
	case st.Reason == validation.ReasonPending:
		res.Message = "Falta confirmación de asistencia."
	case st.Reason == validation.ReasonNotFound:
		res.Message = "Invitado no encontrado."
	case st.Reason == validation.ReasonConnection:
		res.Message = "Error de conexión."
	}
	return res
}

type ValidateGuestInput struct {
	GuestID string `path:"guestID"`
}

type ValidateOutput struct {
	Body ValidationResult
}

func (h *ValidateHandler) HandleValidate(ctx context.Context, input *ValidateGuestInput) (*ValidateOutput, error) {
	st := h.machine.Validate(ctx, validation.ExtractIdentifier(input.GuestID))
	return &ValidateOutput{Body: toResult(st)}, nil
}

type ValidatePayloadInput struct {
	Body struct {
		Payload string `json:"payload" doc:"Raw scanned payload or manually entered identifier"`
	}
}

// HandleValidatePayload accepts whatever the scanner decoded: a bare
// identifier or the full validation URL.
func (h *ValidateHandler) HandleValidatePayload(ctx context.Context, input *ValidatePayloadInput) (*ValidateOutput, error) {
	id := validation.ExtractIdentifier(input.Body.Payload)
	if id == "" {
		return nil, huma.Error400BadRequest("Empty identifier")
	}
	st := h.machine.Validate(ctx, id)
	return &ValidateOutput{Body: toResult(st)}, nil
}

type ResetValidationInput struct{}

func (h *ValidateHandler) HandleReset(ctx context.Context, input *ResetValidationInput) (*ValidateOutput, error) {
	st := h.machine.Reset()
	return &ValidateOutput{Body: toResult(st)}, nil
}
