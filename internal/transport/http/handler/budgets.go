package handler

import (
	"net/http"

	"github.com/bernardmuller/expense-tracker-sub000/internal/application/budget"
	"github.com/bernardmuller/expense-tracker-sub000/internal/domain"
	"github.com/bernardmuller/expense-tracker-sub000/internal/pkg/validate"
	"github.com/go-chi/chi/v5"
)

type BudgetHandler struct {
	svc budget.Service
}

func NewBudgetHandler(svc budget.Service) *BudgetHandler {
	return &BudgetHandler{svc: svc}
}

func (h *BudgetHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	var body domain.CreateBudgetRequest
	if !decodeBody(w, r, &body) {
		return
	}
	if err := validate.Struct(body); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	b, err := h.svc.Create(r.Context(), userID, body)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (h *BudgetHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	bs, err := h.svc.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	if bs == nil {
		bs = []domain.Budget{}
	}
	writeJSON(w, http.StatusOK, bs)
}

func (h *BudgetHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	b, err := h.svc.Get(r.Context(), userID, chi.URLParam(r, "budgetID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *BudgetHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	var body domain.UpdateBudgetRequest
	if !decodeBody(w, r, &body) {
		return
	}
	if err := validate.Struct(body); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	b, err := h.svc.Update(r.Context(), userID, chi.URLParam(r, "budgetID"), body)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *BudgetHandler) Archive(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	if err := h.svc.Archive(r.Context(), userID, chi.URLParam(r, "budgetID")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
