package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/albertofp/club-system/services"
)

type GuardianHandler struct {
	guardianService services.GuardianService
}

func NewGuardianHandler(gs services.GuardianService) *GuardianHandler {
	return &GuardianHandler{guardianService: gs}
}

// CreateHandler handles POST /guardians
func (h *GuardianHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var input services.CreateGuardianInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	guardian, err := h.guardianService.CreateGuardian(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"guardian": guardian}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetByIDHandler handles GET /guardians/{guardianID}
func (h *GuardianHandler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "guardianID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	guardian, err := h.guardianService.GetGuardianByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"guardian": guardian}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListHandler handles GET /guardians
func (h *GuardianHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := paginationParams(r, 20)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	guardians, err := h.guardianService.ListGuardians(r.Context(), limit, offset)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"guardians": guardians}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateHandler handles PUT /guardians/{guardianID}
func (h *GuardianHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "guardianID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.UpdateGuardianInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	guardian, err := h.guardianService.UpdateGuardian(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"guardian": guardian}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteHandler handles DELETE /guardians/{guardianID}
func (h *GuardianHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "guardianID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.guardianService.DeleteGuardian(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func paginationParams(r *http.Request, defaultLimit int) (limit, offset int, err error) {
	limit = defaultLimit
	query := r.URL.Query()

	if limitStr := query.Get("limit"); limitStr != "" {
		n, convErr := strconv.Atoi(limitStr)
		if convErr != nil || n <= 0 {
			return 0, 0, errors.New("invalid limit query parameter")
		}
		limit = n
	}
	if offsetStr := query.Get("offset"); offsetStr != "" {
		n, convErr := strconv.Atoi(offsetStr)
		if convErr != nil || n < 0 {
			return 0, 0, errors.New("invalid offset query parameter")
		}
		offset = n
	}
	return limit, offset, nil
}
