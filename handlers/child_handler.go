package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/albertofp/club-system/repositories"
	"github.com/albertofp/club-system/services"
)

type ChildHandler struct {
	childService services.ChildService
}

func NewChildHandler(cs services.ChildService) *ChildHandler {
	return &ChildHandler{childService: cs}
}

// CreateHandler handles POST /children
func (h *ChildHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var input services.CreateChildInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	child, err := h.childService.CreateChild(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"child": child}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetByIDHandler handles GET /children/{childID}
func (h *ChildHandler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "childID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	child, err := h.childService.GetChildByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"child": child}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListHandler handles GET /children
func (h *ChildHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	var filter repositories.ListChildrenFilter
	query := r.URL.Query()

	if guardianIDStr := query.Get("guardian_id"); guardianIDStr != "" {
		if id, err := strconv.Atoi(guardianIDStr); err == nil && id > 0 {
			filter.GuardianID = &id
		} else {
			badRequestResponse(w, r, errors.New("invalid guardian_id query parameter"))
			return
		}
	}
	if teamIDStr := query.Get("team_id"); teamIDStr != "" {
		if id, err := strconv.Atoi(teamIDStr); err == nil && id > 0 {
			filter.TeamID = &id
		} else {
			badRequestResponse(w, r, errors.New("invalid team_id query parameter"))
			return
		}
	}

	limit, offset, err := paginationParams(r, 20)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	filter.Limit = limit
	filter.Offset = offset

	children, err := h.childService.ListChildren(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"children": children}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateHandler handles PUT /children/{childID}
func (h *ChildHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "childID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.UpdateChildInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	child, err := h.childService.UpdateChild(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"child": child}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteHandler handles DELETE /children/{childID}
func (h *ChildHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "childID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.childService.DeleteChild(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
