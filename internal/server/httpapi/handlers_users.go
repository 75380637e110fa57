package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/wstore/webshop/internal/common"
	"github.com/wstore/webshop/internal/server/models"
)

type registerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

func (r *registerRequest) validate() (string, bool) {
	if strings.TrimSpace(r.Email) == "" {
		return "you must supply an email address in order to create an account", false
	}
	if strings.TrimSpace(r.FirstName) == "" {
		return "you must supply a first name in order to create an account", false
	}
	if strings.TrimSpace(r.LastName) == "" {
		return "you must supply a last name in order to create an account", false
	}
	if r.Password == "" {
		return "you must supply a password in order to create an account", false
	}
	return "", true
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeServiceError(r.Context(), w, common.ErrorValidation)
		return
	}
	if msg, ok := req.validate(); !ok {
		s.writeValidation(w, msg)
		return
	}

	user, err := s.users.Register(r.Context(), req.FirstName, req.LastName, req.Email, req.Password)
	if err != nil {
		if err == common.ErrorAlreadyExists {
			s.writeValidation(w, "a user with this email already exists, please use a different email")
			return
		}
		s.writeServiceError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserInfo(user))
}

// handleGetUser returns the authenticated user's own record.
func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	user := PrincipalFromContext(r.Context())
	if user == nil {
		s.writeServiceError(r.Context(), w, common.ErrorForbidden)
		return
	}
	writeJSON(w, http.StatusOK, toUserInfo(user))
}

// handleListUsers returns every account (admin screen).
func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.GetAll(r.Context())
	if err != nil {
		s.writeServiceError(r.Context(), w, err)
		return
	}
	infos := make([]userInfo, 0, len(users))
	for _, u := range users {
		infos = append(infos, toUserInfo(u))
	}
	writeJSON(w, http.StatusOK, infos)
}

// handleGetEditUser returns the record backing the admin edit screen.
func (s *Server) handleGetEditUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.users.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeServiceError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserInfo(user))
}

type adminUpdateUserRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	IsAdmin   bool   `json:"isAdmin"`
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var req adminUpdateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeServiceError(r.Context(), w, common.ErrorValidation)
		return
	}
	if err := s.users.AdminUpdate(r.Context(), r.PathValue("id"), req.FirstName, req.LastName, req.IsAdmin); err != nil {
		s.writeServiceError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := s.users.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.writeServiceError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Successfully deleted user"})
}

type changePasswordRequest struct {
	OriginalPassword string `json:"originalPassword"`
	NewPassword      string `json:"newPassword"`
	RepeatPassword   string `json:"repeatPassword"`
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	user := PrincipalFromContext(r.Context())
	if user == nil {
		s.writeServiceError(r.Context(), w, common.ErrorForbidden)
		return
	}

	var req changePasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeServiceError(r.Context(), w, common.ErrorValidation)
		return
	}
	if req.OriginalPassword == "" {
		s.writeValidation(w, "you must supply your current password")
		return
	}
	if req.NewPassword == "" || req.RepeatPassword == "" {
		s.writeValidation(w, "you must supply your new password")
		return
	}
	if req.NewPassword != req.RepeatPassword {
		s.writeValidation(w, "the passwords entered are not the same")
		return
	}

	if err := s.users.ChangePassword(r.Context(), user.ID, req.OriginalPassword, req.NewPassword); err != nil {
		s.writeServiceError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Successfully saved new password"})
}

type userDetailsRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

func (s *Server) handleUserDetails(w http.ResponseWriter, r *http.Request) {
	user := PrincipalFromContext(r.Context())
	if user == nil {
		s.writeServiceError(r.Context(), w, common.ErrorForbidden)
		return
	}

	var req userDetailsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeServiceError(r.Context(), w, common.ErrorValidation)
		return
	}
	if strings.TrimSpace(req.FirstName) == "" {
		s.writeValidation(w, "you must supply your first name")
		return
	}
	if strings.TrimSpace(req.LastName) == "" {
		s.writeValidation(w, "you must supply your last name")
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		s.writeValidation(w, "you must supply your email")
		return
	}

	if err := s.users.UpdateDetails(r.Context(), user.ID, req.FirstName, req.LastName, req.Email); err != nil {
		s.writeServiceError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "success"})
}

type addressRequest struct {
	Address  string `json:"address"`
	City     string `json:"city"`
	PostCode string `json:"postCode"`
	County   string `json:"county"`
	Country  string `json:"country"`
}

func (a *addressRequest) validate() (string, bool) {
	if strings.TrimSpace(a.Address) == "" {
		return "you must supply your address", false
	}
	if strings.TrimSpace(a.City) == "" {
		return "you must supply your city or town", false
	}
	if strings.TrimSpace(a.PostCode) == "" {
		return "you must supply your post code", false
	}
	if strings.TrimSpace(a.County) == "" {
		return "you must supply your county", false
	}
	if strings.TrimSpace(a.Country) == "" {
		return "you must supply your country", false
	}
	return "", true
}

func (a *addressRequest) toAddress() models.Address {
	return models.Address{
		Address:  a.Address,
		City:     a.City,
		PostCode: a.PostCode,
		County:   a.County,
		Country:  a.Country,
	}
}

func (s *Server) handleShippingAddress(w http.ResponseWriter, r *http.Request) {
	s.handleAddressUpdate(w, r, s.users.SetShippingDetails)
}

func (s *Server) handleCheckoutAddress(w http.ResponseWriter, r *http.Request) {
	s.handleAddressUpdate(w, r, s.users.SetCheckoutAddress)
}

func (s *Server) handleAddressUpdate(w http.ResponseWriter, r *http.Request,
	apply func(ctx context.Context, userID string, address models.Address) error) {
	user := PrincipalFromContext(r.Context())
	if user == nil {
		s.writeServiceError(r.Context(), w, common.ErrorForbidden)
		return
	}

	var req addressRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeServiceError(r.Context(), w, common.ErrorValidation)
		return
	}
	if msg, ok := req.validate(); !ok {
		s.writeValidation(w, msg)
		return
	}

	if err := apply(r.Context(), user.ID, req.toAddress()); err != nil {
		s.writeServiceError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "success"})
}
