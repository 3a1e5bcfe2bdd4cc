package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/albertofp/club-system/models"
	"github.com/albertofp/club-system/repositories"
	"github.com/albertofp/club-system/services"
)

type PaymentHandler struct {
	paymentService services.PaymentService
}

func NewPaymentHandler(ps services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: ps}
}

// CreateHandler handles POST /payments
func (h *PaymentHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var input services.CreatePaymentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	payment, err := h.paymentService.CreatePayment(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"payment": payment}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetByIDHandler handles GET /payments/{paymentID}
func (h *PaymentHandler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "paymentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	payment, err := h.paymentService.GetPaymentByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"payment": payment}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListHandler handles GET /payments
func (h *PaymentHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	var filter repositories.ListPaymentsFilter
	query := r.URL.Query()

	if childIDStr := query.Get("child_id"); childIDStr != "" {
		if id, err := strconv.Atoi(childIDStr); err == nil && id > 0 {
			filter.ChildID = &id
		} else {
			badRequestResponse(w, r, errors.New("invalid child_id query parameter"))
			return
		}
	}
	if statusStr := query.Get("status"); statusStr != "" {
		status := models.PaymentStatus(statusStr)
		filter.Status = &status
	}

	limit, offset, err := paginationParams(r, 20)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	filter.Limit = limit
	filter.Offset = offset

	payments, err := h.paymentService.ListPayments(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"payments": payments}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// MarkPaidHandler handles POST /payments/{paymentID}/pay
func (h *PaymentHandler) MarkPaidHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "paymentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	payment, err := h.paymentService.MarkPaid(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"payment": payment}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteHandler handles DELETE /payments/{paymentID}
func (h *PaymentHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "paymentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.paymentService.DeletePayment(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
