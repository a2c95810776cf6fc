package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"ispdesk-backend/internal/service"
)

type RateHandler struct {
	rateSvc service.RateService
}

func NewRateHandler(rateSvc service.RateService) *RateHandler {
	return &RateHandler{rateSvc: rateSvc}
}

func (h *RateHandler) Get(w http.ResponseWriter, r *http.Request) {
	tag := mux.Vars(r)["tag"]
	rate, err := h.rateSvc.GetRate(r.Context(), tag)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to read commission rate")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"provider_tag": tag, "commission_percent": rate})
}

type setRateRequest struct {
	CommissionPercent string `json:"commission_percent"`
}

func (h *RateHandler) Set(w http.ResponseWriter, r *http.Request) {
	var req setRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tag := mux.Vars(r)["tag"]
	if err := h.rateSvc.SetRate(r.Context(), tag, req.CommissionPercent); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"provider_tag": tag, "commission_percent": req.CommissionPercent})
}

func (h *RateHandler) List(w http.ResponseWriter, r *http.Request) {
	providers, err := h.rateSvc.ListProviders(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list providers")
		return
	}
	writeJSON(w, http.StatusOK, providers)
}
