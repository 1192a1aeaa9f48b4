package handlers

import (
	"log/slog"
	"net/http"

	"github.com/trn-gabru/lafabrica/internal/auth"
	"github.com/trn-gabru/lafabrica/internal/config"
	"github.com/trn-gabru/lafabrica/internal/db"
	"github.com/trn-gabru/lafabrica/internal/middleware"
	"github.com/trn-gabru/lafabrica/internal/validation"
)

type Server struct {
	Cfg  *config.Config
	Cols *db.Collections
	Val  *validation.Validator
	Log  *slog.Logger
	JWT  *auth.Manager
}

func (s *Server) logWithRequest(r *http.Request) *slog.Logger {
	if r == nil {
		return s.Log
	}
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return s.Log.With(slog.String("request_id", id))
	}
	return s.Log
}
