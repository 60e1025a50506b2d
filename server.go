package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"i4.energy/across/btgw/hc05"
)

// Module is the part of the HC-05 driver exposed over HTTP.
type Module interface {
	SendData(data string) error
	Version(ctx context.Context) (string, error)
	SetName(ctx context.Context, name string) error
	SetPIN(ctx context.Context, pin string) error
	SetBaudRate(ctx context.Context, rate uint32) error
	ResetModule(ctx context.Context) error
	Mode() hc05.Mode
	LineAvailable() bool
}

// Server handles incoming HTTP requests for administering the configured
// HC-05 module
type Server struct {
	Logger *slog.Logger
	Module Module
	// LED is optional.
	LED *LogIndicator
}

// ServeHTTP implements the http.Handler interface for the Server struct
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /send", s.handleSend)
	mux.HandleFunc("GET /version", s.handleVersion)
	mux.HandleFunc("PUT /name", s.handleName)
	mux.HandleFunc("PUT /pin", s.handlePIN)
	mux.HandleFunc("PUT /baud", s.handleBaud)
	mux.HandleFunc("POST /reset", s.handleReset)
	mux.HandleFunc("GET /status", s.handleStatus)
	mux.ServeHTTP(w, r)
}

func (s *Server) sendError(w http.ResponseWriter, message string, statusCode int) {
	if message == "" {
		w.WriteHeader(statusCode)
		return
	}

	type ErrorResponse struct {
		Message string `json:"message"`
	}
	resp := ErrorResponse{Message: message}
	s.sendJSON(w, resp, statusCode)
}

func (s *Server) sendJSON(w http.ResponseWriter, v any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}

// sendModuleError maps driver errors to HTTP status codes
func (s *Server) sendModuleError(w http.ResponseWriter, op string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, hc05.ErrInvalidArgument):
		status = http.StatusBadRequest
	case errors.Is(err, hc05.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	}
	s.Logger.Error("Module operation failed", "op", op, "error", err, "status", status)
	s.sendError(w, err.Error(), status)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.sendError(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// handleSend transmits data to the remote peer as-is
func (s *Server) handleSend(w http.ResponseWriter, r *http.Request) {
	type SendRequest struct {
		Data string `json:"data"`
	}

	var req SendRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Data == "" {
		s.sendError(w, "'data' field is required", http.StatusBadRequest)
		return
	}

	if err := s.Module.SendData(req.Data); err != nil {
		s.sendModuleError(w, "send", err)
		return
	}

	s.Logger.Info("Data sent successfully", "length", len(req.Data))
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	version, err := s.Module.Version(r.Context())
	if err != nil {
		s.sendModuleError(w, "version", err)
		return
	}

	s.sendJSON(w, map[string]string{"version": version}, http.StatusOK)
}

func (s *Server) handleName(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if !s.decode(w, r, &req) {
		return
	}

	if err := s.Module.SetName(r.Context(), req.Name); err != nil {
		s.sendModuleError(w, "name", err)
		return
	}

	s.Logger.Info("Device name set", "name", req.Name)
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handlePIN(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PIN string `json:"pin"`
	}
	if !s.decode(w, r, &req) {
		return
	}

	if err := s.Module.SetPIN(r.Context(), req.PIN); err != nil {
		s.sendModuleError(w, "pin", err)
		return
	}

	s.Logger.Info("Pairing PIN set")
	w.WriteHeader(http.StatusOK)
}

// handleBaud changes the module's stored UART setting. It takes effect
// after the module restarts.
func (s *Server) handleBaud(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Rate uint32 `json:"rate"`
	}
	if !s.decode(w, r, &req) {
		return
	}

	if err := s.Module.SetBaudRate(r.Context(), req.Rate); err != nil {
		s.sendModuleError(w, "baud", err)
		return
	}

	s.Logger.Info("Module baud rate set", "rate", req.Rate)
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.Module.ResetModule(r.Context()); err != nil {
		s.sendModuleError(w, "reset", err)
		return
	}

	s.Logger.Info("Module reset")
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	type StatusResponse struct {
		Mode        string `json:"mode"`
		LinePending bool   `json:"line_pending"`
		LED         *bool  `json:"led,omitempty"`
	}

	resp := StatusResponse{
		Mode:        s.Module.Mode().String(),
		LinePending: s.Module.LineAvailable(),
	}
	if s.LED != nil {
		on := s.LED.IsOn()
		resp.LED = &on
	}
	s.sendJSON(w, resp, http.StatusOK)
}
