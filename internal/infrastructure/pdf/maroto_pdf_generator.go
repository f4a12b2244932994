// Package pdf implementa la versión imprimible de los estados financieros.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Razón Social + RUC  │  Título del reporte + período │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Código | Cuenta | Tipo | Saldo                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES                                                     │
//	│  FOOTER: fecha de generación                                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/contable-api/internal/application/dto"
	"github.com/jhoicas/contable-api/internal/application/reports"
	"github.com/jhoicas/contable-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 170, Green: 30, Blue: 30}
)

var accountTypeNames = map[string]string{
	string(entity.AccountTypeAsset):     "Activo",
	string(entity.AccountTypeLiability): "Pasivo",
	string(entity.AccountTypeEquity):    "Patrimonio",
	string(entity.AccountTypeIncome):    "Ingreso",
	string(entity.AccountTypeExpense):   "Gasto",
}

// ── Generator ─────────────────────────────────────────────────────────────────

var _ reports.ReportPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa reports.ReportPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	now func() time.Time
}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator {
	return &MarotoPDFGenerator{now: time.Now}
}

// BalanceSheetPDF estado de situación financiera.
func (g *MarotoPDFGenerator) BalanceSheetPDF(_ context.Context, company *entity.Company, r *dto.BalanceSheetDTO) ([]byte, error) {
	if company == nil || r == nil {
		return nil, fmt.Errorf("pdf: faltan empresa o reporte")
	}
	m := g.newDocument(company, "Estado de Situación Financiera")
	m.AddRows(headerRow(company, "ESTADO DE SITUACIÓN FINANCIERA", r.StartDate, r.EndDate))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	m.AddRows(accountRows(r.Rows)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(
		totalRow("Total activo", r.TotalAssets, false),
		totalRow("Total pasivo", r.TotalLiabilities, false),
		totalRow("Total patrimonio", r.TotalEquity, false),
	)
	m.AddRows(footerRow(g.now()))
	return generate(m)
}

// IncomeStatementPDF estado de resultados; la fila de utilidad/pérdida va resaltada.
func (g *MarotoPDFGenerator) IncomeStatementPDF(_ context.Context, company *entity.Company, r *dto.IncomeStatementDTO) ([]byte, error) {
	if company == nil || r == nil {
		return nil, fmt.Errorf("pdf: faltan empresa o reporte")
	}
	m := g.newDocument(company, "Estado de Resultados")
	m.AddRows(headerRow(company, "ESTADO DE RESULTADOS", r.StartDate, r.EndDate))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())

	accounts := r.Rows
	if n := len(accounts); n > 0 && accounts[n-1].AccountID == "" {
		accounts = accounts[:n-1] // la fila de resultado se imprime como total
	}
	m.AddRows(accountRows(accounts)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(
		totalRow("Total ingresos", r.TotalIncome, false),
		totalRow("Total gastos", r.TotalExpense, false),
		totalRow(r.ResultLabel, r.NetResult, true),
	)
	m.AddRows(footerRow(g.now()))
	return generate(m)
}

func (g *MarotoPDFGenerator) newDocument(company *entity.Company, title string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(company.LegalName, true).
		Build()
	return maroto.New(cfg)
}

func generate(m core.Maroto) ([]byte, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: razón social + RUC (izq) y título + período (der).
func headerRow(company *entity.Company, title, start, end string) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(company.LegalName, props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
			text.New("RUC: "+company.RUC, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Del %s al %s", displayDate(start), displayDate(end)), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Código", 2, align.Left),
		h("Cuenta", 5, align.Left),
		h("Tipo", 2, align.Center),
		h("Saldo", 3, align.Right),
	)
}

// accountRows: una fila por cuenta.
func accountRows(rows []dto.AccountSummaryDTO) []core.Row {
	out := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		out = append(out, row.New(6).Add(
			col.New(2).Add(text.New(r.Code, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(5).Add(text.New(r.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(accountTypeNames[r.AccountType], props.Text{Size: 8, Top: 1, Align: align.Center})),
			col.New(3).Add(text.New(FormatMoney(r.Balance), amountProps(r.Balance, false))),
		))
	}
	return out
}

func totalRow(label string, amount decimal.Decimal, highlight bool) core.Row {
	size := 9.0
	if highlight {
		size = 10
	}
	return row.New(7).Add(
		col.New(6),
		col.New(3).Add(text.New(label+":", props.Text{
			Style: fontstyle.Bold, Size: size, Align: align.Right, Right: 2, Color: colorPrimary,
		})),
		col.New(3).Add(text.New(FormatMoney(amount), amountProps(amount, true))),
	)
}

func footerRow(now time.Time) core.Row {
	return row.New(12).Add(col.New(12).Add(
		text.New("Generado el "+now.Format("02/01/2006 15:04"), props.Text{
			Size: 7, Color: colorGray, Top: 6, Align: align.Right,
		}),
	))
}

func amountProps(d decimal.Decimal, bold bool) props.Text {
	p := props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1}
	if bold {
		p.Style = fontstyle.Bold
		p.Size = 9
	}
	if d.IsNegative() {
		p.Color = colorRed
	}
	return p
}

// ── helpers ───────────────────────────────────────────────────────────────────

// FormatMoney formatea con separador de miles "," y 2 decimales, signo adelante.
// Ej: -1234567.5 → "-1,234,567.50"
func FormatMoney(d decimal.Decimal) string {
	d = d.Round(2)
	intPart, frac, _ := strings.Cut(d.Abs().StringFixed(2), ".")

	var b strings.Builder
	if d.IsNegative() {
		b.WriteByte('-')
	}
	n := len(intPart)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteByte(c)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

// displayDate YYYY-MM-DD → DD/MM/YYYY; si no parsea devuelve la entrada.
func displayDate(s string) string {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return s
	}
	return t.Format("02/01/2006")
}
