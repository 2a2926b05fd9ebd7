package controllers

import (
	"log/slog"
	"net/http"

	"inkwell/app/services"
)

// AuthController handles registration, login and account maintenance
type AuthController struct {
	authService *services.AuthService
	logger      *slog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService, logger *slog.Logger) *AuthController {
	return &AuthController{authService: authService, logger: logger}
}

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type passwordInput struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func sendToken(w http.ResponseWriter, status int, res *services.AuthResult) {
	sendJSON(w, status, Response{Success: true, Token: res.Token, User: res.User})
}

// Register creates an account and responds with its credential
func (ac *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var input services.RegisterInput
	if err := decodeJSON(w, r, &input); err != nil {
		sendError(w, r, ac.logger, err)
		return
	}
	res, err := ac.authService.Register(input)
	if err != nil {
		sendError(w, r, ac.logger, err)
		return
	}
	sendToken(w, http.StatusCreated, res)
}

// Login responds with a fresh credential
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var input loginInput
	if err := decodeJSON(w, r, &input); err != nil {
		sendError(w, r, ac.logger, err)
		return
	}
	res, err := ac.authService.Login(input.Email, input.Password)
	if err != nil {
		sendError(w, r, ac.logger, err)
		return
	}
	sendToken(w, http.StatusOK, res)
}

// Me responds with the caller's account
func (ac *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	caller, err := callerOf(r)
	if err != nil {
		sendError(w, r, ac.logger, err)
		return
	}
	user, err := ac.authService.Me(caller)
	if err != nil {
		sendError(w, r, ac.logger, err)
		return
	}
	sendJSON(w, http.StatusOK, Response{Success: true, User: user, Data: user})
}

// UpdateDetails changes the caller's name and email
func (ac *AuthController) UpdateDetails(w http.ResponseWriter, r *http.Request) {
	caller, err := callerOf(r)
	if err != nil {
		sendError(w, r, ac.logger, err)
		return
	}
	var input services.DetailsInput
	if err := decodeJSON(w, r, &input); err != nil {
		sendError(w, r, ac.logger, err)
		return
	}
	user, err := ac.authService.UpdateDetails(caller, input)
	if err != nil {
		sendError(w, r, ac.logger, err)
		return
	}
	sendData(w, http.StatusOK, user)
}

// UpdatePassword changes the caller's password and issues a new credential
func (ac *AuthController) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	caller, err := callerOf(r)
	if err != nil {
		sendError(w, r, ac.logger, err)
		return
	}
	var input passwordInput
	if err := decodeJSON(w, r, &input); err != nil {
		sendError(w, r, ac.logger, err)
		return
	}
	res, err := ac.authService.UpdatePassword(caller, input.CurrentPassword, input.NewPassword)
	if err != nil {
		sendError(w, r, ac.logger, err)
		return
	}
	sendToken(w, http.StatusOK, res)
}
