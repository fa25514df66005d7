package handlers

import (
	"net/http"

	"FINTRACK_BACK-END/internal/dto"
	"FINTRACK_BACK-END/internal/services"
	"FINTRACK_BACK-END/internal/utils"
)

const transactionNotFound = "Transaction not found"

type TransactionHandler struct {
	transactions *services.TransactionService
}

func NewTransactionHandler(transactions *services.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactions: transactions}
}

func filterParams(r *http.Request) services.FilterParams {
	q := r.URL.Query()
	return services.FilterParams{
		Category:  q.Get("category"),
		StartDate: q.Get("startDate"),
		EndDate:   q.Get("endDate"),
		Search:    q.Get("search"),
		Type:      q.Get("type"),
	}
}

func transactionInput(req dto.TransactionRequest) services.TransactionInput {
	return services.TransactionInput{
		Date:        req.Date,
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		Currency:    req.Currency,
	}
}

// List godoc
// @Summary      List transactions
// @Description  Newest first. endDate given as a plain date includes that whole day
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Param        userId     query     string  true   "Owner id, must match the session"
// @Param        category   query     string  false  "Category or all"
// @Param        startDate  query     string  false  "YYYY-MM-DD or RFC3339"
// @Param        endDate    query     string  false  "YYYY-MM-DD or RFC3339"
// @Param        search     query     string  false  "Substring of description or category"
// @Param        type       query     string  false  "income, expense or all"
// @Success      200  {array}   dto.TransactionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /transactions [get]
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(w, r)
	if !ok {
		return
	}
	if err := checkUserID(userID, r.URL.Query().Get("userId")); err != nil {
		utils.WriteAppError(w, err)
		return
	}

	txs, err := h.transactions.List(r.Context(), userID, filterParams(r))
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.NewTransactionList(txs))
}

// Create godoc
// @Summary      Create transaction
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      dto.TransactionRequest  true  "Transaction"
// @Success      201      {object}  dto.TransactionResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      401      {object}  dto.ErrorResponse
// @Failure      403      {object}  dto.ErrorResponse
// @Router       /transactions [post]
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(w, r)
	if !ok {
		return
	}

	var req dto.TransactionRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		utils.WriteAppError(w, err)
		return
	}
	claimed := ""
	if req.UserID != nil {
		claimed = *req.UserID
	}
	if err := checkUserID(userID, claimed); err != nil {
		utils.WriteAppError(w, err)
		return
	}

	tx, err := h.transactions.Create(r.Context(), userID, transactionInput(req))
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, dto.NewTransactionResponse(tx))
}

// Get godoc
// @Summary      Get transaction
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Transaction id"
// @Success      200  {object}  dto.TransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /transactions/{id} [get]
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, transactionNotFound)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	tx, err := h.transactions.Get(r.Context(), userID, id)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.NewTransactionResponse(tx))
}

// Update godoc
// @Summary      Update transaction
// @Description  Only the fields present in the body are changed
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                  true  "Transaction id"
// @Param        payload  body      dto.TransactionRequest  true  "Fields to change"
// @Success      200      {object}  dto.TransactionResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Router       /transactions/{id} [put]
func (h *TransactionHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, transactionNotFound)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	var req dto.TransactionRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		utils.WriteAppError(w, err)
		return
	}
	if req.UserID != nil {
		if err := checkUserID(userID, *req.UserID); err != nil {
			utils.WriteAppError(w, err)
			return
		}
	}

	tx, err := h.transactions.Update(r.Context(), userID, id, transactionInput(req))
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.NewTransactionResponse(tx))
}

// Delete godoc
// @Summary      Delete transaction
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Transaction id"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /transactions/{id} [delete]
func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, transactionNotFound)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	if err := h.transactions.Delete(r.Context(), userID, id); err != nil {
		utils.WriteAppError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Success: true, Message: "Transaction deleted successfully"})
}
