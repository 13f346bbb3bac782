package server

import (
	"net/http"

	"github.com/gorilla/mux"
)

// PredictionHandlers is the handler surface the router wires up.
type PredictionHandlers interface {
	PredictADR(w http.ResponseWriter, r *http.Request)
	PredictCancellation(w http.ResponseWriter, r *http.Request)
	Ping(w http.ResponseWriter, r *http.Request)
}

type Router struct {
	predictionHandler PredictionHandlers
	router            *mux.Router
}

// NewRouter creates a router with the app's routes.
func NewRouter(
	predictionHandler PredictionHandlers,
	router *mux.Router) *Router {
	return &Router{
		predictionHandler: predictionHandler,
		router:            router,
	}
}

func (r *Router) RegisterRoutes() {
	// expects a JSON body of the form {"features": {<raw booking fields>}}
	r.router.HandleFunc("/predict/adr", r.predictionHandler.PredictADR).Methods("POST")
	r.router.HandleFunc("/predict/cancellation", r.predictionHandler.PredictCancellation).Methods("POST")

	r.router.HandleFunc("/ping", r.predictionHandler.Ping).Methods("GET")
}
