package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
)

// GetContact godoc
// @Summary Get contact
// @Tags Contacts
// @Produce json
// @Param id path int true "Contact ID"
// @Success 200 {object} ContactResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /contacts/{id} [get]
func (h *Handler) GetContact(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid contact id")
		return
	}

	c, err := h.service.GetContact(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "GetContact", logrus.Fields{"id": id})
		return
	}
	writeJSON(w, http.StatusOK, toContactResponse(c))
}
