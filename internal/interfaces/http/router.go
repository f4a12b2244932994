package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/contable-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Reports   ReportsService
	Documents DocumentsService
	JWTSecret string
}

// Router registra las rutas de la API. Todo /api requiere Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// Reportes: cualquier rol autenticado (incluye auditor, solo lectura)
	reports := api.Group("/reports")
	reportsHandler := NewReportsHandler(deps.Reports)
	reports.Get("/accounts/:id/activity", reportsHandler.AccountActivity)
	reports.Get("/balance-sheet", reportsHandler.BalanceSheet)
	reports.Get("/income-statement", reportsHandler.IncomeStatement)
	reports.Get("/:kind/pdf", reportsHandler.ExportPDF)

	// Comprobantes electrónicos
	docs := api.Group("/documents/access-keys")
	docsHandler := NewDocumentsHandler(deps.Documents)
	docs.Post("/", RequireRole(jwt.RoleAdmin, jwt.RoleContador), docsHandler.IssueAccessKey)
	docs.Post("/verify", docsHandler.VerifyAccessKey)
	docs.Get("/:key", docsHandler.GetByAccessKey)

	points := api.Group("/emission-points")
	points.Get("/", docsHandler.ListEmissionPoints)
	points.Post("/", RequireRole(jwt.RoleAdmin), docsHandler.CreateEmissionPoint)
}
