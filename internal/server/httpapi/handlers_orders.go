package httpapi

import (
	"net/http"
	"time"

	"github.com/wstore/webshop/internal/common"
	"github.com/wstore/webshop/internal/server/models"
)

type createOrderRequest struct {
	Items           []models.OrderItem `json:"items"`
	ShippingAddress addressRequest     `json:"shippingAddress"`
	TotalPrice      float64            `json:"totalPrice"`
	ExVAT           float64            `json:"exVat"`
	VAT             float64            `json:"vat"`
}

type orderResponse struct {
	ID              string             `json:"id"`
	UserID          string             `json:"user"`
	Items           []models.OrderItem `json:"items"`
	ShippingAddress models.Address     `json:"shippingAddress"`
	TotalPrice      float64            `json:"totalPrice"`
	ExVAT           float64            `json:"exVat"`
	VAT             float64            `json:"vat"`
	IsPaid          bool               `json:"isPaid"`
	PaidDate        *time.Time         `json:"paidDate,omitempty"`
	IsDelivered     bool               `json:"isDelivered"`
	DeliveredDate   *time.Time         `json:"deliveredDate,omitempty"`
	CreatedAt       time.Time          `json:"createdAt"`
}

func toOrderResponse(o *models.Order) orderResponse {
	return orderResponse{
		ID:              o.ID,
		UserID:          o.UserID,
		Items:           o.Items,
		ShippingAddress: o.ShippingAddress,
		TotalPrice:      o.TotalPrice,
		ExVAT:           o.ExVAT,
		VAT:             o.VAT,
		IsPaid:          o.IsPaid,
		PaidDate:        o.PaidDate,
		IsDelivered:     o.IsDelivered,
		DeliveredDate:   o.DeliveredDate,
		CreatedAt:       o.CreatedAt,
	}
}

func toOrderResponses(orders []*models.Order) []orderResponse {
	resp := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, toOrderResponse(o))
	}
	return resp
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	user := PrincipalFromContext(r.Context())
	if user == nil {
		s.writeServiceError(r.Context(), w, common.ErrorForbidden)
		return
	}

	var req createOrderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeServiceError(r.Context(), w, common.ErrorValidation)
		return
	}
	if len(req.Items) == 0 {
		s.writeValidation(w, "you must supply at least one item")
		return
	}
	if msg, ok := req.ShippingAddress.validate(); !ok {
		s.writeValidation(w, msg)
		return
	}

	order := &models.Order{
		Items:           req.Items,
		ShippingAddress: req.ShippingAddress.toAddress(),
		TotalPrice:      req.TotalPrice,
		ExVAT:           req.ExVAT,
		VAT:             req.VAT,
	}
	created, err := s.orders.Create(r.Context(), user.ID, order)
	if err != nil {
		s.writeServiceError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(created))
}

// handleAdminOrders returns every order in the shop.
func (s *Server) handleAdminOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := s.orders.GetAll(r.Context())
	if err != nil {
		s.writeServiceError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponses(orders))
}

func (s *Server) handleUserOrders(w http.ResponseWriter, r *http.Request) {
	user := PrincipalFromContext(r.Context())
	if user == nil {
		s.writeServiceError(r.Context(), w, common.ErrorForbidden)
		return
	}
	orders, err := s.orders.GetByUser(r.Context(), user.ID)
	if err != nil {
		s.writeServiceError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponses(orders))
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	user := PrincipalFromContext(r.Context())
	if user == nil {
		s.writeServiceError(r.Context(), w, common.ErrorForbidden)
		return
	}
	// Always scoped to the requester; admins review orders through the
	// admin listing, not this route.
	order, err := s.orders.Get(r.Context(), r.PathValue("id"), user.ID)
	if err != nil {
		s.writeServiceError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func (s *Server) handlePayOrder(w http.ResponseWriter, r *http.Request) {
	user := PrincipalFromContext(r.Context())
	if user == nil {
		s.writeServiceError(r.Context(), w, common.ErrorForbidden)
		return
	}
	if err := s.orders.Pay(r.Context(), r.PathValue("id"), user.ID); err != nil {
		s.writeServiceError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func (s *Server) handleDeleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := s.orders.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.writeServiceError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Successfully deleted order"})
}
