package api

import (
	"net/http"

	_ "github.com/AlexZinkM/solana-login/docs"
	"github.com/AlexZinkM/solana-login/internal/handler"

	httpSwagger "github.com/swaggo/http-swagger"
)

// SetupRouter sets up router with handlers
func SetupRouter(sessionHandler *handler.SessionHandler) http.Handler {
	mux := http.NewServeMux()

	// Swagger UI
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Session endpoints
	mux.HandleFunc("/session", sessionHandler.GetSession)
	mux.HandleFunc("/session/login", sessionHandler.Login)
	mux.HandleFunc("/session/logout", sessionHandler.Logout)
	mux.HandleFunc("/session/export", sessionHandler.Export)
	mux.HandleFunc("/network", sessionHandler.Network)

	return mux
}
