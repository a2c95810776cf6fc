package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"ispdesk-backend/internal/domain"
	"ispdesk-backend/internal/service"
)

type ComplaintHandler struct {
	complaintSvc service.ComplaintService
}

func NewComplaintHandler(complaintSvc service.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{complaintSvc: complaintSvc}
}

type openComplaintRequest struct {
	CustomerID string `json:"customer_id"`
	Subject    string `json:"subject"`
	Detail     string `json:"detail"`
}

func (h *ComplaintHandler) Open(w http.ResponseWriter, r *http.Request) {
	var req openComplaintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	complaint, err := h.complaintSvc.OpenComplaint(r.Context(), req.CustomerID, req.Subject, req.Detail)
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			writeError(w, http.StatusNotFound, "customer not found")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, complaint)
}

type updateComplaintRequest struct {
	Status string `json:"status"`
}

func (h *ComplaintHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateComplaintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id := mux.Vars(r)["id"]
	complaint, err := h.complaintSvc.UpdateStatus(r.Context(), id, domain.ComplaintStatus(req.Status))
	if err != nil {
		if errors.Is(err, service.ErrComplaintNotFound) {
			writeError(w, http.StatusNotFound, "complaint not found")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, complaint)
}

func (h *ComplaintHandler) List(w http.ResponseWriter, r *http.Request) {
	status := domain.ComplaintStatus(r.URL.Query().Get("status"))
	complaints, err := h.complaintSvc.ListComplaints(r.Context(), status)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list complaints")
		return
	}
	writeJSON(w, http.StatusOK, complaints)
}
