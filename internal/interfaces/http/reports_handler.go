package http

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/contable-api/internal/application/dto"
)

// ReportsService es lo que el handler necesita del caso de uso de reportes.
type ReportsService interface {
	AccountActivity(ctx context.Context, companyID, accountID string, req dto.AccountActivityRequest) (*dto.AccountActivityDTO, error)
	BalanceSheet(ctx context.Context, companyID string, req dto.PeriodRequest) (*dto.BalanceSheetDTO, error)
	IncomeStatement(ctx context.Context, companyID string, req dto.PeriodRequest) (*dto.IncomeStatementDTO, error)
	ExportPDF(ctx context.Context, companyID, kind string, req dto.PeriodRequest) ([]byte, error)
}

// ReportsHandler maneja los reportes contables (mayor y estados financieros).
type ReportsHandler struct {
	uc ReportsService
}

// NewReportsHandler construye el handler.
func NewReportsHandler(uc ReportsService) *ReportsHandler {
	return &ReportsHandler{uc: uc}
}

// AccountActivity godoc
// @Summary      Mayor de cuenta con saldo corrido
// @Description  Primera fila: saldo inicial al día anterior a start_date. Luego una fila por movimiento del período con su saldo acumulado.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        id              path   string  true   "ID de la cuenta"
// @Param        start_date      query  string  false  "Inicio (YYYY-MM-DD). Default: primer día del mes."
// @Param        end_date        query  string  false  "Fin (YYYY-MM-DD). Default: hoy."
// @Param        cost_center_id  query  string  false  "Filtra por centro de costo"
// @Success      200  {object}  dto.AccountActivityDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/accounts/{id}/activity [get]
func (h *ReportsHandler) AccountActivity(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var req dto.AccountActivityRequest
	if err := c.QueryParser(&req); err != nil {
		return invalidParams(c)
	}
	out, err := h.uc.AccountActivity(c.Context(), companyID, c.Params("id"), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// BalanceSheet godoc
// @Summary      Estado de situación financiera
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "Inicio (YYYY-MM-DD)"
// @Param        end_date    query  string  false  "Fin (YYYY-MM-DD)"
// @Success      200  {object}  dto.BalanceSheetDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/balance-sheet [get]
func (h *ReportsHandler) BalanceSheet(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var req dto.PeriodRequest
	if err := c.QueryParser(&req); err != nil {
		return invalidParams(c)
	}
	out, err := h.uc.BalanceSheet(c.Context(), companyID, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// IncomeStatement godoc
// @Summary      Estado de resultados
// @Description  La última fila es la utilidad o pérdida del período.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "Inicio (YYYY-MM-DD)"
// @Param        end_date    query  string  false  "Fin (YYYY-MM-DD)"
// @Success      200  {object}  dto.IncomeStatementDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/income-statement [get]
func (h *ReportsHandler) IncomeStatement(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var req dto.PeriodRequest
	if err := c.QueryParser(&req); err != nil {
		return invalidParams(c)
	}
	out, err := h.uc.IncomeStatement(c.Context(), companyID, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ExportPDF godoc
// @Summary      Descarga un estado financiero en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        kind        path   string  true   "balance-sheet | income-statement"
// @Param        start_date  query  string  false  "Inicio (YYYY-MM-DD)"
// @Param        end_date    query  string  false  "Fin (YYYY-MM-DD)"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/{kind}/pdf [get]
func (h *ReportsHandler) ExportPDF(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var req dto.PeriodRequest
	if err := c.QueryParser(&req); err != nil {
		return invalidParams(c)
	}
	kind := c.Params("kind")
	doc, err := h.uc.ExportPDF(c.Context(), companyID, kind, req)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s.pdf"`, kind))
	return c.Send(doc)
}

func invalidParams(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos",
	})
}
