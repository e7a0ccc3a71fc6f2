package handler

import (
	"net/http"

	"github.com/bernardmuller/expense-tracker-sub000/internal/application/expense"
	"github.com/bernardmuller/expense-tracker-sub000/internal/domain"
	"github.com/bernardmuller/expense-tracker-sub000/internal/pkg/validate"
	"github.com/go-chi/chi/v5"
)

// maxReceiptSize caps receipt uploads at 10 MiB.
const maxReceiptSize = 10 << 20

type ExpenseHandler struct {
	svc expense.Service
}

func NewExpenseHandler(svc expense.Service) *ExpenseHandler {
	return &ExpenseHandler{svc: svc}
}

func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	var body domain.CreateExpenseRequest
	if !decodeBody(w, r, &body) {
		return
	}
	if err := validate.Struct(body); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	e, err := h.svc.Create(r.Context(), userID, chi.URLParam(r, "budgetID"), body)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	es, err := h.svc.List(r.Context(), userID, chi.URLParam(r, "budgetID"))
	if err != nil {
		writeError(w, err)
		return
	}
	if es == nil {
		es = []domain.Expense{}
	}
	writeJSON(w, http.StatusOK, es)
}

func (h *ExpenseHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	e, err := h.svc.Get(r.Context(), userID, chi.URLParam(r, "expenseID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *ExpenseHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	var body domain.UpdateExpenseRequest
	if !decodeBody(w, r, &body) {
		return
	}
	if err := validate.Struct(body); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	e, err := h.svc.Update(r.Context(), userID, chi.URLParam(r, "expenseID"), body)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), userID, chi.URLParam(r, "expenseID")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// UploadReceipt accepts a multipart form with a single "receipt" file part.
func (h *ExpenseHandler) UploadReceipt(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	if err := r.ParseMultipartForm(maxReceiptSize); err != nil {
		writeBadRequest(w, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("receipt")
	if err != nil {
		writeBadRequest(w, "missing receipt file")
		return
	}
	defer file.Close()

	e, err := h.svc.AttachReceipt(r.Context(), userID, chi.URLParam(r, "expenseID"), header.Filename, file)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *ExpenseHandler) ReceiptURL(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	url, err := h.svc.ReceiptURL(r.Context(), userID, chi.URLParam(r, "expenseID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}
