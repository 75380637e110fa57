package httpapi

import "net/http"

// Handler assembles the route table. Every route passes through the CORS and
// authentication middleware; admin-only routes add the admin guard on top.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	authed := func(h http.HandlerFunc) http.HandlerFunc {
		return s.authenticate(h)
	}
	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return s.authenticate(s.requireAdmin(h))
	}

	// Session lifecycle. Refresh and logout work off the refresh cookie, so
	// neither goes through the bearer-token middleware.
	mux.HandleFunc("POST /user/login", s.handleLogin)
	mux.HandleFunc("GET /admin/refreshToken", s.handleRefresh)
	mux.HandleFunc("GET /admin/removeRefreshToken", s.handleLogout)

	// Users.
	mux.HandleFunc("POST /user", s.handleRegister)
	mux.HandleFunc("GET /user/get-user", authed(s.handleGetUser))
	mux.HandleFunc("GET /user", admin(s.handleListUsers))
	mux.HandleFunc("GET /user/get-edit-user/{id}", admin(s.handleGetEditUser))
	mux.HandleFunc("PUT /user/{id}", admin(s.handleUpdateUser))
	mux.HandleFunc("DELETE /user/{id}", admin(s.handleDeleteUser))
	mux.HandleFunc("POST /user/change-password", authed(s.handleChangePassword))
	mux.HandleFunc("POST /user/details", authed(s.handleUserDetails))
	mux.HandleFunc("POST /user/shipping-address", authed(s.handleShippingAddress))
	mux.HandleFunc("POST /user/checkout-address", authed(s.handleCheckoutAddress))

	// Products. Browsing is public, catalogue management is admin-only.
	mux.HandleFunc("GET /product", s.handleListProducts)
	mux.HandleFunc("POST /product/query", s.handleQueryProducts)
	mux.HandleFunc("GET /product/{id}", s.handleGetProduct)
	mux.HandleFunc("POST /product", admin(s.handleCreateProduct))
	mux.HandleFunc("PUT /product/{id}", admin(s.handleUpdateProduct))
	mux.HandleFunc("DELETE /product/{id}", admin(s.handleDeleteProduct))

	// Orders.
	mux.HandleFunc("POST /order", authed(s.handleCreateOrder))
	mux.HandleFunc("GET /order", admin(s.handleAdminOrders))
	mux.HandleFunc("GET /order/user-orders", authed(s.handleUserOrders))
	mux.HandleFunc("GET /order/{id}", authed(s.handleGetOrder))
	mux.HandleFunc("POST /order/{id}/pay", authed(s.handlePayOrder))
	mux.HandleFunc("DELETE /order/{id}", admin(s.handleDeleteOrder))

	// Payments. The client ID is public configuration, no auth required.
	mux.HandleFunc("GET /paypal", s.handlePayPalID)

	return s.cors(mux)
}
