package handler

import (
	"net/http"

	"contacts/internal/contact"

	"github.com/sirupsen/logrus"
)

// ListContacts godoc
// @Summary List contacts
// @Description Page through contacts ordered by name, optionally filtered by a case-insensitive substring of name or email
// @Tags Contacts
// @Produce json
// @Param page query int false "Page number, defaults to 1"
// @Param limit query int false "Page size, defaults to 8"
// @Param search query string false "Substring of name or email"
// @Success 200 {object} ListContactsResponse
// @Failure 500 {object} errorResponse
// @Router /contacts [get]
func (h *Handler) ListContacts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	q := contact.ParseListQuery(query.Get("page"), query.Get("limit"), query.Get("search"))

	page, err := h.service.ListContacts(r.Context(), q)
	if err != nil {
		writeServiceError(w, err, "ListContacts", logrus.Fields{"page": q.Page, "limit": q.Limit, "search": q.Search})
		return
	}

	res := ListContactsResponse{
		Contacts:   make([]ContactResponse, 0, len(page.Contacts)),
		Total:      page.Total,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: page.TotalPages,
	}
	for _, c := range page.Contacts {
		res.Contacts = append(res.Contacts, toContactResponse(c))
	}
	writeJSON(w, http.StatusOK, res)
}
