package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerFavoriteRoutes(mux *http.ServeMux, handler *Handler, apiToken string) {
	mux.Handle("POST /favorites", RequireAPIToken(apiToken, http.HandlerFunc(handler.CreateFavorite)))
	mux.Handle("GET /favorites/users/{userID}", RequireAPIToken(apiToken, http.HandlerFunc(handler.ListFavorites)))
	mux.Handle("GET /favorites/users/{userID}/detailed", RequireAPIToken(apiToken, http.HandlerFunc(handler.ListDetailedFavorites)))
	mux.Handle("GET /favorites/users/{userID}/stats", RequireAPIToken(apiToken, http.HandlerFunc(handler.GetFavoriteStats)))
	mux.Handle("GET /favorites/users/{userID}/feed", RequireAPIToken(apiToken, http.HandlerFunc(handler.GetFavoriteFeed)))
	mux.Handle("DELETE /favorites/users/{userID}/{entityType}/{entityID}", RequireAPIToken(apiToken, http.HandlerFunc(handler.DeleteFavorite)))
	mux.Handle("GET /favorites/users/{userID}/{entityType}/{entityID}/check", RequireAPIToken(apiToken, http.HandlerFunc(handler.CheckFavorite)))
	mux.Handle("PUT /favorites/users/{userID}/{entityType}/{entityID}/preferences", RequireAPIToken(apiToken, http.HandlerFunc(handler.UpdateFavoritePreferences)))
}

func registerSyncRoutes(mux *http.ServeMux, handler *Handler, apiToken string) {
	mux.Handle("POST /favorites/users/{userID}/sync", RequireAPIToken(apiToken, http.HandlerFunc(handler.IncrementalSync)))
	mux.Handle("POST /favorites/users/{userID}/force-sync", RequireAPIToken(apiToken, http.HandlerFunc(handler.ForceSync)))
	mux.Handle("POST /favorites/users/{userID}/resolve-conflict", RequireAPIToken(apiToken, http.HandlerFunc(handler.ResolveConflict)))
}
