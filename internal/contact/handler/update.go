package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
)

// UpdateContact godoc
// @Summary Update contact
// @Description Rewrites every mutable field, converted salary amounts included
// @Tags Contacts
// @Accept json
// @Produce json
// @Param id path int true "Contact ID"
// @Param contact body ContactRequest true "Contact"
// @Success 200 {object} ContactResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /contacts/{id} [put]
func (h *Handler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid contact id")
		return
	}
	req, ok := decodeContactRequest(w, r)
	if !ok {
		return
	}

	c, err := h.service.UpdateContact(r.Context(), id, req.toInput())
	if err != nil {
		writeServiceError(w, err, "UpdateContact", logrus.Fields{"id": id, "email": req.Email})
		return
	}
	writeJSON(w, http.StatusOK, toContactResponse(c))
}
