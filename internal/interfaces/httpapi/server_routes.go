package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerGameRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/games/{gameID}/projection", handler.GetGameProjection)
	mux.HandleFunc("GET /v1/games/{gameID}/recap", handler.GetGameRecap)
}

func registerInternalRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/games/{gameID}/events", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.IngestGameEvents)))
	mux.Handle("POST /v1/games/{gameID}/media", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.GenerateGameMedia)))
}
