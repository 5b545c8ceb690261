// This is a mock authentication service for local development. It issues
// the JWTs the admin API expects on its mutating routes.
package main

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/testnest/admin/internal/admin/auth"
)

const (
	defaultPort   = "8081"
	defaultSecret = "jwt_secret"
	defaultUser   = "admin"
)

// TokenResponse represents the response structure
type TokenResponse struct {
	Token string `json:"token"`
}

func tokenHandler(secret string, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.URL.Query().Get("user")
		if userID == "" {
			userID = defaultUser
		}

		token, err := auth.GenerateToken(userID, secret)
		if err != nil {
			logger.Error("failed to generate token", zap.Error(err))
			http.Error(w, "Failed to generate token", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(TokenResponse{Token: token}); err != nil {
			logger.Error("failed to encode token", zap.Error(err))
		}
		logger.Info("token issued", zap.String("sub", userID))
	}
}

func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	port := envOr("AUTH_PORT", defaultPort)
	secret := envOr("JWT_SECRET", defaultSecret)

	mux := http.NewServeMux()
	mux.HandleFunc("/token", tokenHandler(secret, logger))

	server := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	logger.Info("Authentication service running", zap.String("port", port))
	if err := server.ListenAndServe(); err != nil {
		logger.Fatal("authentication service stopped", zap.Error(err))
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
