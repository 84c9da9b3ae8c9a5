package generate_excel

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"zko-backend/http-server/response"
)

type GenerateExcelHandler interface {
	GenerateExcel(ctx context.Context, orderID int64) ([]byte, error)
}

// GenerateReportExcel: GET /api/pallets/zko/{orderId}/report, xlsx с палетами заказа.
func GenerateReportExcel(log *slog.Logger, gen GenerateExcelHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.report.GenerateReportExcel"

		orderID, err := response.PathID(r, "orderId")
		if err != nil {
			response.BadRequest(w, r, err.Error())
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), time.Minute)
		defer cancel()

		excelBytes, err := gen.GenerateExcel(ctx, orderID)
		if err != nil {
			response.Error(w, r, log, op, err)
			return
		}

		fileName := fmt.Sprintf("ZKO_%d_palety_%s.xlsx", orderID, time.Now().Format("2006-01-02_150405"))

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", "attachment; filename="+fileName)
		w.Header().Set("Content-Length", strconv.Itoa(len(excelBytes)))
		if _, err := w.Write(excelBytes); err != nil {
			log.Error("не удалось отдать excel", slog.String("op", op), slog.String("error", err.Error()))
		}
	}
}
