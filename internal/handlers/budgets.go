package handlers

import (
	"net/http"

	"FINTRACK_BACK-END/internal/dto"
	"FINTRACK_BACK-END/internal/services"
	"FINTRACK_BACK-END/internal/utils"
)

const budgetNotFound = "Budget not found"

type BudgetHandler struct {
	budgets *services.BudgetService
}

func NewBudgetHandler(budgets *services.BudgetService) *BudgetHandler {
	return &BudgetHandler{budgets: budgets}
}

func budgetInput(req dto.BudgetRequest) services.BudgetInput {
	return services.BudgetInput{
		Category: req.Category,
		Amount:   req.Amount,
		Period:   req.Period,
		Currency: req.Currency,
	}
}

// List godoc
// @Summary      List budgets
// @Description  Spent, remaining, progress and status are computed from current transactions
// @Tags         budgets
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   dto.BudgetResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /budgets [get]
func (h *BudgetHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(w, r)
	if !ok {
		return
	}

	spends, err := h.budgets.List(r.Context(), userID)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.NewBudgetList(spends))
}

// Create godoc
// @Summary      Create budget
// @Tags         budgets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      dto.BudgetRequest  true  "Budget"
// @Success      201      {object}  dto.BudgetResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      409      {object}  dto.ErrorResponse
// @Router       /budgets [post]
func (h *BudgetHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(w, r)
	if !ok {
		return
	}

	var req dto.BudgetRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		utils.WriteAppError(w, err)
		return
	}

	spend, err := h.budgets.Create(r.Context(), userID, budgetInput(req))
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, dto.NewBudgetResponse(spend))
}

// Get godoc
// @Summary      Get budget
// @Tags         budgets
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Budget id"
// @Success      200  {object}  dto.BudgetResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /budgets/{id} [get]
func (h *BudgetHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, budgetNotFound)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	spend, err := h.budgets.Get(r.Context(), userID, id)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.NewBudgetResponse(spend))
}

// Update godoc
// @Summary      Update budget
// @Tags         budgets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string             true  "Budget id"
// @Param        payload  body      dto.BudgetRequest  true  "Fields to change"
// @Success      200      {object}  dto.BudgetResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Failure      409      {object}  dto.ErrorResponse
// @Router       /budgets/{id} [put]
func (h *BudgetHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, budgetNotFound)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	var req dto.BudgetRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		utils.WriteAppError(w, err)
		return
	}

	spend, err := h.budgets.Update(r.Context(), userID, id, budgetInput(req))
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.NewBudgetResponse(spend))
}

// Delete godoc
// @Summary      Delete budget
// @Tags         budgets
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Budget id"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /budgets/{id} [delete]
func (h *BudgetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, budgetNotFound)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	if err := h.budgets.Delete(r.Context(), userID, id); err != nil {
		utils.WriteAppError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Success: true, Message: "Budget deleted successfully"})
}
