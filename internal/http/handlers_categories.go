package http

import (
	"html/template"
	"net/http"

	"worklog/internal/core"
	"worklog/internal/log"
)

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		MethodNotAllowedError("POST").Write(w)
		return
	}
	if err := r.ParseForm(); err != nil {
		ErrorResponse(http.StatusBadRequest, "Invalid request format").Write(w)
		return
	}

	name := sanitizeInput(r.Form.Get("name"))
	color := sanitizeInput(r.Form.Get("color"))

	cat, err := s.worklog.AddCategory(r.Context(), name, color)
	if err != nil {
		if core.IsValidation(err) {
			UnprocessableEntityError(validationMessage(err)).Write(w)
			return
		}
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to save category",
			log.FieldError, err,
			log.FieldCategoryName, name,
			log.FieldOperation, log.OpCreate)
		InternalServerError("Could not save the category.").Write(w)
		return
	}

	NewHTMXResponse().
		TriggerCategoryChanged().
		TriggerFormReset().
		BodyHTML(`<div class="success">Added ` + template.HTMLEscapeString(cat.Name) + `</div>`).
		Write(w)
}

// handleDeleteCategory removes a category. Work items that reference it are
// deliberately left alone; they show up as "Unknown" from now on.
func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		MethodNotAllowedError("POST").Write(w)
		return
	}
	if err := r.ParseForm(); err != nil {
		ErrorResponse(http.StatusBadRequest, "Invalid request format").Write(w)
		return
	}

	id := sanitizeInput(r.Form.Get("id"))
	if err := s.worklog.DeleteCategory(r.Context(), id); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to delete category",
			log.FieldError, err,
			log.FieldCategoryID, id,
			log.FieldOperation, log.OpDelete)
		InternalServerError("Could not delete the category.").Write(w)
		return
	}

	NewHTMXResponse().TriggerCategoryChanged().Write(w)
}
