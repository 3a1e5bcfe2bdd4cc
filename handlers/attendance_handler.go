package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/albertofp/club-system/services"
)

type AttendanceHandler struct {
	attendanceService services.AttendanceService
}

func NewAttendanceHandler(as services.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: as}
}

// CheckInHandler handles POST /check-ins
func (h *AttendanceHandler) CheckInHandler(w http.ResponseWriter, r *http.Request) {
	var input services.CheckInInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	checkIn, err := h.attendanceService.RecordCheckIn(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"check_in": checkIn}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListByChildHandler handles GET /children/{childID}/check-ins
func (h *AttendanceHandler) ListByChildHandler(w http.ResponseWriter, r *http.Request) {
	childID, err := getIDFromURL(r, "childID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	limit, offset, err := paginationParams(r, 50)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	checkIns, err := h.attendanceService.ListCheckInsByChild(r.Context(), childID, limit, offset)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"check_ins": checkIns}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListByDayHandler handles GET /check-ins?day=2026-04-01
func (h *AttendanceHandler) ListByDayHandler(w http.ResponseWriter, r *http.Request) {
	dayStr := r.URL.Query().Get("day")
	if dayStr == "" {
		badRequestResponse(w, r, errors.New("day query parameter is required"))
		return
	}
	day, err := time.Parse("2006-01-02", dayStr)
	if err != nil {
		badRequestResponse(w, r, errors.New("day must be formatted as YYYY-MM-DD"))
		return
	}

	checkIns, err := h.attendanceService.ListCheckInsByDay(r.Context(), day)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"check_ins": checkIns}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteHandler handles DELETE /check-ins/{checkInID}
func (h *AttendanceHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "checkInID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.attendanceService.DeleteCheckIn(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
