// seed_plan_cuentas genera el script SQL que carga el plan de cuentas de una empresa
// a partir del CSV de la Superintendencia de Compañías (codigo;nombre, ISO-8859-1).
//
// Uso: go run ./cmd/seed_plan_cuentas <ruc> [ruta/plan_cuentas.csv]
// Por defecto busca plan_cuentas.csv en el directorio actual.
// Escribe: migrations/002_seed_plan_cuentas.sql
package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/contable-api/internal/domain/entity"
	"github.com/jhoicas/contable-api/pkg/sri"
)

type seedAccount struct {
	code       string
	name       string
	typ        entity.AccountType
	parentCode string
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Uso: seed_plan_cuentas <ruc> [plan_cuentas.csv]")
		os.Exit(2)
	}
	ruc := os.Args[1]
	if err := sri.ValidateRUC(ruc); err != nil {
		fmt.Fprintf(os.Stderr, "RUC: %v\n", err)
		os.Exit(1)
	}
	csvPath := "plan_cuentas.csv"
	if len(os.Args) > 2 {
		csvPath = os.Args[2]
	}

	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	accounts, err := readChart(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer plan de cuentas: %v\n", err)
		os.Exit(1)
	}

	outPath := filepath.Join(findModuleRoot(), "migrations", "002_seed_plan_cuentas.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSQL(out, ruc, accounts); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d cuentas\n", outPath, len(accounts))
}

// readChart lee filas codigo;nombre. Se omiten la cabecera y las filas vacías.
func readChart(r io.Reader) ([]seedAccount, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	seen := make(map[string]bool)
	var accounts []seedAccount
	for n := 1; ; n++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("fila %d: %w", n, err)
		}
		if len(rec) < 2 {
			continue
		}
		code := strings.TrimSuffix(strings.TrimSpace(rec[0]), ".")
		name := strings.TrimSpace(rec[1])
		if code == "" || name == "" || strings.EqualFold(code, "codigo") || strings.EqualFold(code, "código") {
			continue
		}
		typ, ok := accountTypeFor(code)
		if !ok {
			return nil, fmt.Errorf("fila %d: código %q fuera de los grupos 1 a 6", n, code)
		}
		if seen[code] {
			return nil, fmt.Errorf("fila %d: código %q repetido", n, code)
		}
		seen[code] = true
		accounts = append(accounts, seedAccount{code: code, name: name, typ: typ, parentCode: parentCode(code)})
	}

	// Los padres primero para que el UPDATE de parent_id los encuentre.
	sort.SliceStable(accounts, func(i, j int) bool {
		return strings.Count(accounts[i].code, ".") < strings.Count(accounts[j].code, ".")
	})
	return accounts, nil
}

// accountTypeFor usa el grupo (primer dígito) del catálogo NIIF de Supercias.
func accountTypeFor(code string) (entity.AccountType, bool) {
	switch code[0] {
	case '1':
		return entity.AccountTypeAsset, true
	case '2':
		return entity.AccountTypeLiability, true
	case '3':
		return entity.AccountTypeEquity, true
	case '4':
		return entity.AccountTypeIncome, true
	case '5', '6':
		return entity.AccountTypeExpense, true
	}
	return "", false
}

func parentCode(code string) string {
	i := strings.LastIndex(code, ".")
	if i < 0 {
		return ""
	}
	return code[:i]
}

func writeSQL(w io.Writer, ruc string, accounts []seedAccount) error {
	var b strings.Builder
	b.WriteString("-- Plan de cuentas (catálogo NIIF Superintendencia de Compañías)\n")
	fmt.Fprintf(&b, "-- Empresa RUC %s. Generado por cmd/seed_plan_cuentas\n\n", ruc)

	b.WriteString("-- 1. Cuentas\n")
	for _, a := range accounts {
		fmt.Fprintf(&b, "INSERT INTO accounts (company_id, code, name, account_type)\n")
		fmt.Fprintf(&b, "SELECT id, '%s', '%s', '%s' FROM companies WHERE ruc = '%s'\n",
			escapeSQL(a.code), escapeSQL(a.name), a.typ, ruc)
		b.WriteString("ON CONFLICT (company_id, code) DO UPDATE SET name = EXCLUDED.name, account_type = EXCLUDED.account_type;\n")
	}

	b.WriteString("\n-- 2. Jerarquía\n")
	for _, a := range accounts {
		if a.parentCode == "" {
			continue
		}
		fmt.Fprintf(&b, "UPDATE accounts c SET parent_id = p.id FROM accounts p, companies e\n")
		fmt.Fprintf(&b, "WHERE e.ruc = '%s' AND c.company_id = e.id AND p.company_id = e.id AND c.code = '%s' AND p.code = '%s';\n",
			ruc, escapeSQL(a.code), escapeSQL(a.parentCode))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
