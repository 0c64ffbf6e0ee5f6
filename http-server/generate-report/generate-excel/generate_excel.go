package generate_excel

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

type GenerateExcelHandler interface {
	GenerateExcel(ctx context.Context) ([]byte, error)
}

// GenerateReportExcel downloads the contract history workbook.
func GenerateReportExcel(log *slog.Logger, gen GenerateExcelHandler, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.generate_report.GenerateReportExcel"

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		excelBytes, err := gen.GenerateExcel(ctx)
		if err != nil {
			log.Error("failed to generate excel", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Erro interno", http.StatusInternalServerError)
			return
		}

		fileName := fmt.Sprintf("historico_contratos_%s.xlsx", now().Format("2006-01-02_150405"))

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", "attachment; filename="+fileName)
		w.Write(excelBytes)
	}
}
