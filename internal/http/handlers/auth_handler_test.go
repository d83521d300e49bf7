package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"ojoto/internal/http/handlers"
	httpmiddleware "ojoto/internal/http/middleware"
	"ojoto/internal/infra"
	"ojoto/internal/modules/contact"
	"ojoto/internal/modules/user"
	"ojoto/internal/testing/fakes"
)

func buildAccountRouter(t *testing.T) (*gin.Engine, *fakes.ContactStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	jwtm, err := infra.NewJWTManager(infra.JWTConfig{Secret: "handler-test", Issuer: "ojoto", TTL: time.Hour})
	if err != nil {
		t.Fatalf("jwt: %v", err)
	}
	users := user.NewService(fakes.NewUserStore(), jwtm).WithBcryptCost(bcrypt.MinCost)
	contacts := fakes.NewContactStore()

	ah := handlers.NewAuthHandler(users)
	r := gin.New()
	r.POST("/api/auth/register", ah.Register)
	r.POST("/api/auth/login", ah.Login)
	r.GET("/api/auth/profile", httpmiddleware.Auth(jwtm), ah.Profile)
	r.PUT("/api/auth/profile", httpmiddleware.Auth(jwtm), ah.UpdateProfile)
	r.POST("/api/contact", handlers.NewContactHandler(contact.NewService(contacts)).Submit)
	return r, contacts
}

type tokenBody struct {
	Msg         string `json:"msg"`
	AccessToken string `json:"access_token"`
	Error       string `json:"error"`
}

func registration() map[string]any {
	return map[string]any{
		"fullname":     "Ada Obi",
		"address":      "5 Okpara Avenue",
		"phone_number": "08012345678",
		"email":        "ada@example.com",
		"password":     "secret1",
	}
}

func TestRegisterLoginProfile(t *testing.T) {
	r, _ := buildAccountRouter(t)

	w := doRequest(r, http.MethodPost, "/api/auth/register", registration(), "")
	if w.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var reg tokenBody
	decode(t, w, &reg)
	if reg.AccessToken == "" || reg.Msg != "User registered successfully" {
		t.Fatalf("register body = %+v", reg)
	}

	w = doRequest(r, http.MethodPost, "/api/auth/register", registration(), "")
	var dup tokenBody
	decode(t, w, &dup)
	if w.Code != http.StatusBadRequest || dup.Error != "email is already registered" {
		t.Fatalf("duplicate register: %d %+v", w.Code, dup)
	}

	w = doRequest(r, http.MethodPost, "/api/auth/login", map[string]any{"email": "ada@example.com", "password": "nope!!"}, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad login: expected 401, got %d", w.Code)
	}

	w = doRequest(r, http.MethodPost, "/api/auth/login", map[string]any{"email": "ada@example.com", "password": "secret1"}, "")
	var login tokenBody
	decode(t, w, &login)
	if w.Code != http.StatusOK || login.AccessToken == "" {
		t.Fatalf("login: %d %+v", w.Code, login)
	}

	w = doRequest(r, http.MethodGet, "/api/auth/profile", nil, login.AccessToken)
	var profile map[string]any
	decode(t, w, &profile)
	if w.Code != http.StatusOK || profile["email"] != "ada@example.com" || profile["fullname"] != "Ada Obi" {
		t.Fatalf("profile: %d %v", w.Code, profile)
	}
	if _, leaked := profile["password_hash"]; leaked {
		t.Fatalf("password hash leaked")
	}

	w = doRequest(r, http.MethodPut, "/api/auth/profile", map[string]any{"address": "1 Rangers Ave"}, login.AccessToken)
	decode(t, w, &profile)
	if w.Code != http.StatusOK || profile["address"] != "1 Rangers Ave" {
		t.Fatalf("update profile: %d %v", w.Code, profile)
	}
}

func TestRegisterValidationError(t *testing.T) {
	r, _ := buildAccountRouter(t)
	body := registration()
	body["password"] = "123"
	w := doRequest(r, http.MethodPost, "/api/auth/register", body, "")
	var resp tokenBody
	decode(t, w, &resp)
	if w.Code != http.StatusBadRequest || resp.Error != "password must be at least 6 characters" {
		t.Fatalf("register: %d %+v", w.Code, resp)
	}
}

func TestContactSubmit(t *testing.T) {
	r, store := buildAccountRouter(t)

	w := doRequest(r, http.MethodPost, "/api/contact", map[string]any{
		"name": "Chidi", "email": "chidi@example.com", "message": "Hello",
	}, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var body map[string]string
	decode(t, w, &body)
	if body["message"] != "Message sent successfully" {
		t.Fatalf("body = %v", body)
	}

	w = doRequest(r, http.MethodPost, "/api/contact", map[string]any{"name": "Chidi"}, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if len(store.Messages()) != 1 {
		t.Fatalf("stored = %d, want 1", len(store.Messages()))
	}
}
