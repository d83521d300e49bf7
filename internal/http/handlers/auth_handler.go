// README: Account handlers: register, login and the caller's profile.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ojoto/internal/http/middleware"
	"ojoto/internal/modules/user"
)

type AuthHandler struct {
	users *user.Service
}

func NewAuthHandler(svc *user.Service) *AuthHandler {
	return &AuthHandler{users: svc}
}

type tokenResp struct {
	Msg         string `json:"msg"`
	AccessToken string `json:"access_token"`
}

type profileResp struct {
	ID          int64  `json:"id"`
	Fullname    string `json:"fullname"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
}

func toProfileResp(u *user.User) profileResp {
	return profileResp{
		ID:          u.ID,
		Fullname:    u.Fullname,
		Address:     u.Address,
		PhoneNumber: u.PhoneNumber,
		Email:       u.Email,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req user.RegisterInput
	if !bindJSON(c, &req) {
		return
	}
	token, _, err := h.users.Register(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, tokenResp{Msg: "User registered successfully", AccessToken: token})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req user.LoginInput
	if !bindJSON(c, &req) {
		return
	}
	token, err := h.users.Login(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, tokenResp{Msg: "Login successful", AccessToken: token})
}

func (h *AuthHandler) Profile(c *gin.Context) {
	id, err := user.ParseSubject(middleware.CallerUID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	u, err := h.users.Profile(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, toProfileResp(u))
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	id, err := user.ParseSubject(middleware.CallerUID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	var req user.ProfilePatch
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.users.UpdateProfile(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, toProfileResp(u))
}
