package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
)

// DeleteContact godoc
// @Summary Delete contact
// @Tags Contacts
// @Produce json
// @Param id path int true "Contact ID"
// @Success 204
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /contacts/{id} [delete]
func (h *Handler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid contact id")
		return
	}

	if err := h.service.DeleteContact(r.Context(), id); err != nil {
		writeServiceError(w, err, "DeleteContact", logrus.Fields{"id": id})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
