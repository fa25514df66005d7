package handlers

import (
	"net/http"

	"FINTRACK_BACK-END/internal/dto"
	"FINTRACK_BACK-END/internal/services"
	"FINTRACK_BACK-END/internal/utils"
)

type ReportHandler struct {
	reports *services.ReportService
}

func NewReportHandler(reports *services.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Get godoc
// @Summary      Financial report
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        timeframe  query     string  false  "week, month, quarter, year or all (default all)"
// @Param        category   query     string  false  "Category or all"
// @Param        type       query     string  false  "income, expense or all"
// @Param        search     query     string  false  "Substring of description or category"
// @Success      200  {object}  dto.ReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /reports [get]
func (h *ReportHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(w, r)
	if !ok {
		return
	}

	report, err := h.reports.Build(r.Context(), userID, r.URL.Query().Get("timeframe"), filterParams(r))
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.NewReportResponse(report))
}
