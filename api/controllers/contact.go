package controllers

import (
	"net/http"
	"strings"

	"github.com/guardtag/guardtag-backend/api/responses"
	"github.com/guardtag/guardtag-backend/api/validators"
	"github.com/guardtag/guardtag-backend/internal/contacts"
	"github.com/guardtag/guardtag-backend/pkg/logger"
)

type contactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required,min=10"`
}

// SubmitContact stores a contact-form message.
func SubmitContact(svc contacts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload contactRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		contact, err := svc.Create(r.Context(), contacts.CreateContactInput{
			Name:    strings.TrimSpace(payload.Name),
			Email:   strings.TrimSpace(payload.Email),
			Subject: strings.TrimSpace(payload.Subject),
			Message: strings.TrimSpace(payload.Message),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]string{
			"id": contact.ID.String(),
		})
	}
}
