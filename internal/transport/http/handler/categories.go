package handler

import (
	"net/http"

	"github.com/bernardmuller/expense-tracker-sub000/internal/application/category"
	"github.com/bernardmuller/expense-tracker-sub000/internal/domain"
	"github.com/bernardmuller/expense-tracker-sub000/internal/pkg/validate"
	"github.com/go-chi/chi/v5"
)

type CategoryHandler struct {
	svc category.Service
}

func NewCategoryHandler(svc category.Service) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	var body domain.CreateCategoryRequest
	if !decodeBody(w, r, &body) {
		return
	}
	if err := validate.Struct(body); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	c, err := h.svc.Create(r.Context(), userID, chi.URLParam(r, "budgetID"), body)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	cs, err := h.svc.List(r.Context(), userID, chi.URLParam(r, "budgetID"))
	if err != nil {
		writeError(w, err)
		return
	}
	if cs == nil {
		cs = []domain.Category{}
	}
	writeJSON(w, http.StatusOK, cs)
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	var body domain.UpdateCategoryRequest
	if !decodeBody(w, r, &body) {
		return
	}
	if err := validate.Struct(body); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	c, err := h.svc.Update(r.Context(), userID, chi.URLParam(r, "categoryID"), body)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), userID, chi.URLParam(r, "categoryID")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
