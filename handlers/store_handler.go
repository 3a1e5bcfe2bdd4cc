package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/albertofp/club-system/models"
	"github.com/albertofp/club-system/repositories"
	"github.com/albertofp/club-system/services"
)

type StoreHandler struct {
	storeService services.StoreService
}

func NewStoreHandler(ss services.StoreService) *StoreHandler {
	return &StoreHandler{storeService: ss}
}

// CreateProductHandler handles POST /store/products
func (h *StoreHandler) CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var input services.CreateProductInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	product, err := h.storeService.CreateProduct(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"product": product}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetProductHandler handles GET /store/products/{productID}
func (h *StoreHandler) GetProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "productID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	product, err := h.storeService.GetProductByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"product": product}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListProductsHandler handles GET /store/products
func (h *StoreHandler) ListProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := h.storeService.ListProducts(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"products": products}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteProductHandler handles DELETE /store/products/{productID}
func (h *StoreHandler) DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "productID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.storeService.DeleteProduct(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// PlaceOrderHandler handles POST /store/orders
func (h *StoreHandler) PlaceOrderHandler(w http.ResponseWriter, r *http.Request) {
	var input services.PlaceOrderInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	order, err := h.storeService.PlaceOrder(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"order": order}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListOrdersHandler handles GET /store/orders
func (h *StoreHandler) ListOrdersHandler(w http.ResponseWriter, r *http.Request) {
	var filter repositories.ListOrdersFilter
	query := r.URL.Query()

	if guardianIDStr := query.Get("guardian_id"); guardianIDStr != "" {
		if id, err := strconv.Atoi(guardianIDStr); err == nil && id > 0 {
			filter.GuardianID = &id
		} else {
			badRequestResponse(w, r, errors.New("invalid guardian_id query parameter"))
			return
		}
	}
	if statusStr := query.Get("status"); statusStr != "" {
		status := models.OrderStatus(statusStr)
		filter.Status = &status
	}

	limit, offset, err := paginationParams(r, 50)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	filter.Limit = limit
	filter.Offset = offset

	orders, err := h.storeService.ListOrders(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"orders": orders}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CancelOrderHandler handles POST /store/orders/{orderID}/cancel
func (h *StoreHandler) CancelOrderHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "orderID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	order, err := h.storeService.CancelOrder(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"order": order}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
