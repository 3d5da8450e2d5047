package http

import (
	"errors"
	"html/template"
	"net/http"
	"time"

	"worklog/internal/core"
	"worklog/internal/log"
)

func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		MethodNotAllowedError("POST").Write(w)
		return
	}
	if err := r.ParseForm(); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Parse form error",
			log.FieldError, err, log.FieldPath, r.URL.Path)
		ErrorResponse(http.StatusBadRequest, "Invalid request format").Write(w)
		return
	}

	caseID := sanitizeInput(r.Form.Get("case_id"))
	description := sanitizeInput(r.Form.Get("description"))
	categoryID := sanitizeInput(r.Form.Get("category_id"))

	item, err := s.worklog.AddWorkItem(r.Context(), caseID, description, categoryID, time.Now())
	if err != nil {
		if core.IsValidation(err) {
			UnprocessableEntityError(validationMessage(err)).Write(w)
			return
		}
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to save work item",
			log.FieldError, err,
			log.FieldCaseID, caseID,
			log.FieldOperation, log.OpCreate)
		InternalServerError("Could not save the entry. Nothing was recorded.").Write(w)
		return
	}

	NewHTMXResponse().
		TriggerItemCreated().
		TriggerFormReset().
		BodyHTML(`<div class="success">Logged ` + template.HTMLEscapeString(item.Description) + `</div>`).
		Write(w)
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		MethodNotAllowedError("POST").Write(w)
		return
	}
	if err := r.ParseForm(); err != nil {
		ErrorResponse(http.StatusBadRequest, "Invalid request format").Write(w)
		return
	}

	id := sanitizeInput(r.Form.Get("id"))
	if err := s.worklog.DeleteWorkItem(r.Context(), id); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to delete work item",
			log.FieldError, err,
			log.FieldItemID, id,
			log.FieldOperation, log.OpDelete)
		InternalServerError("Could not delete the entry.").Write(w)
		return
	}

	NewHTMXResponse().TriggerItemDeleted().Write(w)
}

// validationMessage maps validation sentinels to user-facing text.
func validationMessage(err error) string {
	switch {
	case errors.Is(err, core.ErrEmptyDescription):
		return "Description is required."
	case errors.Is(err, core.ErrEmptyCategory):
		return "Pick a category."
	case errors.Is(err, core.ErrEmptyName):
		return "Name is required."
	default:
		return "Invalid input."
	}
}
