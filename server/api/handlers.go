package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mystenlabs/zklogin-verifier/verifier"
)

// Server handles HTTP requests for zkLogin signature verification
type Server struct {
	verifier *verifier.Verifier
}

// NewServer creates a new HTTP server
func NewServer(v *verifier.Verifier) *Server {
	return &Server{
		verifier: v,
	}
}

// ==== Request/Response Types ====

// VerifyResponse reports the definitive result of a verification request
type VerifyResponse struct {
	IsVerified bool `json:"is_verified"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string    `json:"error"`
	Code      string    `json:"code,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ProviderListResponse lists the providers trusted on a network
type ProviderListResponse struct {
	Network   string              `json:"network"`
	Providers []verifier.Provider `json:"providers"`
	Count     int                 `json:"count"`
}

// ==== Handlers ====

// HandleHealth handles health check requests
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// HandleListProviders lists the provider allowlist for a network
// (?network=..., default Mainnet)
func (s *Server) HandleListProviders(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("network")
	if name == "" {
		name = string(verifier.NetworkMainnet)
	}
	network, err := verifier.ParseNetwork(name)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	providers := s.verifier.Providers(network)
	respondJSON(w, http.StatusOK, ProviderListResponse{
		Network:   string(network),
		Providers: providers,
		Count:     len(providers),
	})
}

// HandleVerify handles signature verification requests
func (s *Server) HandleVerify(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request",
			"failed to read request body")
		return
	}
	defer r.Body.Close()

	var req verifier.RawRequest
	if err := json.Unmarshal(body, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request",
			fmt.Sprintf("failed to parse request: %v", err))
		return
	}

	outcome := s.verifier.Verify(r.Context(), &req)
	if outcome.Failure == nil {
		respondJSON(w, http.StatusOK, VerifyResponse{IsVerified: outcome.Verified})
		return
	}

	switch outcome.Failure.Kind {
	case verifier.FailureProofInvalid:
		// Indistinguishable from a definitive negative for callers; the
		// reason is already logged by the pipeline.
		respondJSON(w, http.StatusOK, VerifyResponse{IsVerified: false})
	case verifier.FailureEpochFetch:
		respondError(w, http.StatusBadGateway, string(outcome.Failure.Kind), outcome.Failure.Reason)
	default:
		respondError(w, http.StatusBadRequest, string(outcome.Failure.Kind), outcome.Failure.Reason)
	}
}

// ==== Helper Functions ====

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error:     message,
		Code:      code,
		Timestamp: time.Now(),
	})
}
