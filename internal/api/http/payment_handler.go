package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"ispdesk-backend/internal/billing"
	"ispdesk-backend/internal/service"
)

type PaymentHandler struct {
	paymentSvc service.PaymentService
}

func NewPaymentHandler(paymentSvc service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentSvc: paymentSvc}
}

type recordPaymentRequest struct {
	CustomerID     string `json:"customer_id"`
	Source         string `json:"source"`
	SourceFilter   string `json:"source_filter"`
	BillAmount     string `json:"bill_amount"`
	ReceivedAmount string `json:"received_amount"`
	UseWallet      bool   `json:"use_wallet"`
	ModeOfPayment  string `json:"mode_of_payment"`
	PaidDate       string `json:"paid_date"` // yyyy-mm-dd
}

func (h *PaymentHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req recordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.CustomerID == "" {
		writeError(w, http.StatusBadRequest, "customer_id is required")
		return
	}

	payment, err := h.paymentSvc.RecordPayment(r.Context(), billing.RecordInput{
		CustomerID:     req.CustomerID,
		Source:         req.Source,
		SourceFilter:   req.SourceFilter,
		BillAmount:     req.BillAmount,
		ReceivedAmount: req.ReceivedAmount,
		UseWallet:      req.UseWallet,
		ModeOfPayment:  req.ModeOfPayment,
		PaidDate:       req.PaidDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDuplicatePayment),
			errors.Is(err, service.ErrSettlementConflict):
			writeError(w, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrCustomerNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, billing.ErrInvalidDate):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to record payment")
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"payment":       payment,
		"whatsapp_link": service.WhatsAppReceiptLink(payment),
	})
}

func (h *PaymentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	payment, err := h.paymentSvc.GetPayment(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, "payment not found")
		return
	}
	writeJSON(w, http.StatusOK, payment)
}

func (h *PaymentHandler) ListByCustomer(w http.ResponseWriter, r *http.Request) {
	customerID := mux.Vars(r)["id"]
	payments, err := h.paymentSvc.ListCustomerPayments(r.Context(), customerID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list payments")
		return
	}
	writeJSON(w, http.StatusOK, payments)
}

func (h *PaymentHandler) MonthlySummary(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if month == "" {
		writeError(w, http.StatusBadRequest, "month query parameter is required (yyyy-mm)")
		return
	}
	summary, err := h.paymentSvc.MonthlySummary(r.Context(), month)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to build summary")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
