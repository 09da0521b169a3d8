package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
)

// CreateContact godoc
// @Summary Create contact
// @Description Salary is converted to USD and EUR at write time; if the rate provider is down the contact is stored without converted amounts
// @Tags Contacts
// @Accept json
// @Produce json
// @Param contact body ContactRequest true "Contact"
// @Success 201 {object} ContactResponse
// @Failure 400 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /contacts [post]
func (h *Handler) CreateContact(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeContactRequest(w, r)
	if !ok {
		return
	}

	c, err := h.service.CreateContact(r.Context(), req.toInput())
	if err != nil {
		writeServiceError(w, err, "CreateContact", logrus.Fields{"email": req.Email})
		return
	}
	writeJSON(w, http.StatusCreated, toContactResponse(c))
}
