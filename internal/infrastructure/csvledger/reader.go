// Package csvledger lee líneas del mayor exportadas a CSV para generar reportes sin base de datos.
//
// Columnas: id,account_id,date,debit,credit,cost_center_id,description
// La primera fila puede ser la cabecera. Fechas en YYYY-MM-DD o RFC 3339.
package csvledger

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/contable-api/internal/domain"
	"github.com/jhoicas/contable-api/internal/domain/entity"
)

const numColumns = 7

// Options de lectura.
type Options struct {
	Latin1   bool           // el archivo viene en ISO-8859-1 (exportaciones de Excel en Windows)
	Location *time.Location // zona para fechas sin hora; nil = UTC
}

// ReadFile abre path y lee sus líneas.
func ReadFile(path string, opts Options) ([]entity.LedgerLine, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csvledger: %w", err)
	}
	defer f.Close()
	return Read(f, opts)
}

// Read parsea todas las filas. Se detiene en la primera fila inválida e indica su número
// (1 = primera fila del archivo).
func Read(r io.Reader, opts Options) ([]entity.LedgerLine, error) {
	if opts.Latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numColumns
	cr.TrimLeadingSpace = true

	var lines []entity.LedgerLine
	for n := 1; ; n++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csvledger: fila %d: %w", n, err)
		}
		if n == 1 && strings.EqualFold(strings.TrimSpace(rec[0]), "id") {
			continue
		}
		l, err := parseRecord(rec, loc)
		if err != nil {
			return nil, fmt.Errorf("csvledger: fila %d: %w", n, err)
		}
		lines = append(lines, l)
	}
	return lines, nil
}

func parseRecord(rec []string, loc *time.Location) (entity.LedgerLine, error) {
	for i := range rec {
		rec[i] = strings.TrimSpace(rec[i])
	}
	l := entity.LedgerLine{ID: rec[0], AccountID: rec[1], Description: rec[6]}
	if l.AccountID == "" {
		return l, domain.NewValidationError("account_id", "requerido")
	}

	date, err := parseDate(rec[2], loc)
	if err != nil {
		return l, err
	}
	l.Date = date

	if l.Debit, err = parseAmount("debit", rec[3]); err != nil {
		return l, err
	}
	if l.Credit, err = parseAmount("credit", rec[4]); err != nil {
		return l, err
	}
	if rec[5] != "" {
		cc := rec[5]
		l.CostCenterID = &cc
	}
	return l, nil
}

func parseDate(s string, loc *time.Location) (time.Time, error) {
	if s == "" {
		return time.Time{}, domain.NewValidationError("date", "requerida")
	}
	if t, err := time.ParseInLocation("2006-01-02", s, loc); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(loc), nil
	}
	return time.Time{}, domain.NewValidationError("date", "fecha %q inválida", s)
}

// parseAmount vacío = 0. Montos no numéricos son ArithmeticError; negativos, ValidationError.
func parseAmount(field, s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &domain.ArithmeticError{Field: field, Value: s}
	}
	if d.IsNegative() {
		return decimal.Zero, domain.NewValidationError(field, "no puede ser negativo: %s", s)
	}
	return d, nil
}
