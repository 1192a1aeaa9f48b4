package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/trn-gabru/lafabrica/internal/auth"
	"github.com/trn-gabru/lafabrica/internal/httpx"
	"github.com/trn-gabru/lafabrica/internal/middleware"
	"github.com/trn-gabru/lafabrica/internal/models"
	"github.com/trn-gabru/lafabrica/internal/transport"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

// AdminLogin checks the supplied credentials against the admins collection
// and mints a bearer token. The token travels in the response body; the
// client attaches it to later requests, the server keeps no session.
func (s *Server) AdminLogin(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)

	var req LoginRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("admin login: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if err := s.Val.Struct(req); err != nil {
		log.Warn("admin login: validation error")
		transport.WriteError(w, http.StatusBadRequest, "username and password are required", httpx.ValidationDetails(s.Val.ValidationErrors(err)))
		return
	}

	if s.JWT == nil {
		log.Warn("admin login: not configured")
		transport.WriteError(w, http.StatusServiceUnavailable, "admin auth not configured", nil)
		return
	}

	username := models.NormalizeUsername(req.Username)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var admin models.Admin
	err := s.Cols.Admins.FindOne(ctx, bson.M{"username": username}).Decode(&admin)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			log.Warn("admin login: unknown user", slog.String("username", username))
			transport.WriteError(w, http.StatusUnauthorized, "invalid credentials", nil)
			return
		}
		log.Error("admin login: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	if err := auth.ComparePassword(admin.PasswordHash, req.Password); err != nil {
		log.Warn("admin login: invalid password", slog.String("username", username))
		transport.WriteError(w, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}

	token, err := s.JWT.NewToken(admin.ID, admin.Username)
	if err != nil {
		log.Error("admin login: token error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "token error", nil)
		return
	}

	log.Info("admin login: ok", slog.String("username", admin.Username))
	transport.WriteJSON(w, http.StatusOK, LoginResponse{
		Token:   token,
		Message: "login successful",
	})
}

// AuthVerify reports whether the presented bearer token is still valid and
// who it belongs to. The admin UI calls this on load to decide whether to
// show the login form.
func (s *Server) AuthVerify(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)

	if s.JWT == nil {
		log.Warn("auth verify: not configured")
		transport.WriteError(w, http.StatusServiceUnavailable, "admin auth not configured", nil)
		return
	}

	token := middleware.BearerToken(r)
	if token == "" {
		log.Warn("auth verify: missing token")
		transport.WriteError(w, http.StatusUnauthorized, "no token provided", nil)
		return
	}

	identity, err := s.JWT.Verify(token)
	if err != nil {
		log.Warn("auth verify: invalid token")
		transport.WriteError(w, http.StatusUnauthorized, "invalid token", nil)
		return
	}

	log.Info("auth verify: ok", slog.String("username", identity.Username))
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"valid": true,
		"user":  identity,
	})
}
