package ledger_test

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/contable-api/internal/domain"
	"github.com/jhoicas/contable-api/internal/domain/entity"
	"github.com/jhoicas/contable-api/internal/domain/ledger"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func line(id string, date time.Time, debit, credit string) entity.LedgerLine {
	return entity.LedgerLine{
		ID:          id,
		AccountID:   "acc-1",
		Date:        date,
		Debit:       decimal.RequireFromString(debit),
		Credit:      decimal.RequireFromString(credit),
		Description: "mov " + id,
	}
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msg ...string) {
	t.Helper()
	m := "esperado " + want + ", obtenido " + got.String()
	if len(msg) > 0 {
		m = msg[0] + ": " + m
	}
	assert.True(t, decimal.RequireFromString(want).Equal(got), m)
}

// ── NormalizeRange ────────────────────────────────────────────────────────────

func TestNormalizeRange_ExtremosDelDia(t *testing.T) {
	r, err := ledger.NormalizeRange(
		time.Date(2024, 3, 1, 15, 30, 0, 0, time.UTC),
		time.Date(2024, 3, 31, 8, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), r.Start)
	assert.Equal(t, time.Date(2024, 3, 31, 23, 59, 59, int(999*time.Millisecond), time.UTC), r.End)
}

func TestNormalizeRange_MismoDiaEsValido(t *testing.T) {
	_, err := ledger.NormalizeRange(day(2024, 3, 1), day(2024, 3, 1))
	assert.NoError(t, err)
}

func TestNormalizeRange_RangoInvertido(t *testing.T) {
	_, err := ledger.NormalizeRange(day(2024, 4, 1), day(2024, 3, 1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation), "un rango invertido es un error de validación")

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "start_date", vErr.Field)
}

func TestNormalizeRange_FechasVacias(t *testing.T) {
	_, err := ledger.NormalizeRange(time.Time{}, day(2024, 3, 1))
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = ledger.NormalizeRange(day(2024, 3, 1), time.Time{})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ── ComputeBalances ───────────────────────────────────────────────────────────

// Saldo inicial = 100 - 40 = 60 y ningún movimiento en marzo: una sola fila.
func TestComputeBalances_SaldoInicialSinMovimientos(t *testing.T) {
	lines := []entity.LedgerLine{
		line("a", day(2024, 1, 1), "100", "0"),
		line("b", day(2024, 2, 1), "0", "40"),
	}

	rows, err := ledger.ComputeBalances(lines, day(2024, 3, 1), day(2024, 3, 31))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, ledger.OpeningBalanceLabel, rows[0].Description)
	assert.Empty(t, rows[0].ID)
	assertDecimal(t, "0", rows[0].Debit)
	assertDecimal(t, "0", rows[0].Credit)
	assertDecimal(t, "60", rows[0].RunningBalance)
}

func TestComputeBalances_SinLineasSoloFilaInicial(t *testing.T) {
	rows, err := ledger.ComputeBalances(nil, day(2024, 3, 1), day(2024, 3, 31))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assertDecimal(t, "0", rows[0].RunningBalance)
}

func TestComputeBalances_RecurrenciaSaldoCorrido(t *testing.T) {
	lines := []entity.LedgerLine{
		line("1", day(2024, 2, 10), "250.10", "0"),
		line("2", day(2024, 3, 15), "0", "75.35"),
		line("3", day(2024, 3, 2), "19.99", "0"),
		line("4", day(2024, 3, 20), "0.01", "3.03"),
		line("5", day(2024, 3, 2), "0", "100"),
		line("6", day(2024, 4, 1), "999", "0"), // fuera del rango
	}

	rows, err := ledger.ComputeBalances(lines, day(2024, 3, 1), day(2024, 3, 31))
	require.NoError(t, err)
	require.Len(t, rows, 5, "saldo inicial + 4 movimientos de marzo")

	assertDecimal(t, "250.10", rows[0].RunningBalance)
	for i := 1; i < len(rows); i++ {
		want := rows[i-1].RunningBalance.Add(rows[i].Debit).Sub(rows[i].Credit)
		assert.True(t, want.Equal(rows[i].RunningBalance), "fila %d rompe la recurrencia", i)
		assert.False(t, rows[i].Date.Before(rows[i-1].Date), "fila %d fuera de orden", i)
	}
	assertDecimal(t, "91.72", rows[len(rows)-1].RunningBalance)
}

// Dos movimientos del mismo día conservan el orden de entrada.
func TestComputeBalances_OrdenEstableMismoDia(t *testing.T) {
	lines := []entity.LedgerLine{
		line("tarde", day(2024, 3, 5), "10", "0"),
		line("x", day(2024, 3, 4), "1", "0"),
		line("temprano", day(2024, 3, 5), "0", "5"),
	}
	rows, err := ledger.ComputeBalances(lines, day(2024, 3, 1), day(2024, 3, 31))
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "x", rows[1].ID)
	assert.Equal(t, "tarde", rows[2].ID)
	assert.Equal(t, "temprano", rows[3].ID)
}

func TestComputeBalances_NoModificaLaEntrada(t *testing.T) {
	lines := []entity.LedgerLine{
		line("b", day(2024, 3, 9), "1", "0"),
		line("a", day(2024, 3, 1), "1", "0"),
	}
	_, err := ledger.ComputeBalances(lines, day(2024, 3, 1), day(2024, 3, 31))
	require.NoError(t, err)
	assert.Equal(t, "b", lines[0].ID)
	assert.Equal(t, "a", lines[1].ID)
}

// Un movimiento al final del último día pertenece al rango; uno al inicio del primero también.
func TestComputeBalances_LimitesInclusivos(t *testing.T) {
	lines := []entity.LedgerLine{
		line("fin", time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC), "7", "0"),
		line("inicio", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), "3", "0"),
		line("antes", time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC), "11", "0"),
		line("despues", time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), "13", "0"),
	}
	rows, err := ledger.ComputeBalances(lines, day(2024, 3, 1), day(2024, 3, 31))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assertDecimal(t, "11", rows[0].RunningBalance, "solo 'antes' forma el saldo inicial")
	assert.Equal(t, "inicio", rows[1].ID)
	assert.Equal(t, "fin", rows[2].ID)
	assertDecimal(t, "21", rows[2].RunningBalance)
}

// Fechas sin hora: el fin del rango cubre todo el día.
func TestComputeBalances_FechaFinSinHoraIncluyeDiaCompleto(t *testing.T) {
	lines := []entity.LedgerLine{line("1", time.Date(2024, 3, 31, 18, 0, 0, 0, time.UTC), "5", "0")}
	rows, err := ledger.ComputeBalances(lines, day(2024, 3, 31), day(2024, 3, 31))
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestComputeBalances_RangoInvertido(t *testing.T) {
	_, err := ledger.ComputeBalances(nil, day(2024, 3, 31), day(2024, 3, 1))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestComputeBalances_EtiquetaCentroDeCosto(t *testing.T) {
	cc := "cc-1"
	unknown := "cc-x"
	lines := []entity.LedgerLine{
		line("1", day(2024, 3, 2), "5", "0"),
		line("2", day(2024, 3, 3), "5", "0"),
		line("3", day(2024, 3, 4), "5", "0"),
	}
	lines[0].CostCenterID = &cc
	lines[1].CostCenterID = &unknown

	rows, err := ledger.ComputeBalancesWithLabels(lines, day(2024, 3, 1), day(2024, 3, 31),
		map[string]string{cc: "CC01 - Ventas"})
	require.NoError(t, err)
	require.Len(t, rows, 4)
	require.NotNil(t, rows[1].CostCenterLabel)
	assert.Equal(t, "CC01 - Ventas", *rows[1].CostCenterLabel)
	assert.Nil(t, rows[2].CostCenterLabel)
	assert.Nil(t, rows[3].CostCenterLabel)
}

// Sumar muchos centavos no acumula error de punto flotante.
func TestComputeBalances_SinDerivaDeCentavos(t *testing.T) {
	var lines []entity.LedgerLine
	for i := 0; i < 1000; i++ {
		lines = append(lines, line("c", day(2024, 1, 1), "0.10", "0"))
	}
	rows, err := ledger.ComputeBalances(lines, day(2024, 3, 1), day(2024, 3, 31))
	require.NoError(t, err)
	assertDecimal(t, "100", rows[0].RunningBalance)
}

// ── OpeningBalance / ComputeNetMovement ───────────────────────────────────────

func TestOpeningBalance_IndependienteDelOrden(t *testing.T) {
	var lines []entity.LedgerLine
	for i := 0; i < 50; i++ {
		d := decimal.NewFromInt(int64(i)).Div(decimal.NewFromInt(7)).Round(2)
		lines = append(lines, entity.LedgerLine{
			ID:     "l",
			Date:   day(2023, time.Month(1+i%12), 1+i%28),
			Debit:  d,
			Credit: d.Div(decimal.NewFromInt(3)).Round(2),
		})
	}
	want, err := ledger.OpeningBalance(lines, day(2024, 1, 1), day(2024, 1, 31))
	require.NoError(t, err)

	rnd := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := append([]entity.LedgerLine(nil), lines...)
		rnd.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		got, err := ledger.OpeningBalance(shuffled, day(2024, 1, 1), day(2024, 1, 31))
		require.NoError(t, err)
		assert.True(t, want.Equal(got), "el saldo inicial no debe depender del orden")
	}
}

func TestComputeNetMovement_SoloDentroDelRango(t *testing.T) {
	lines := []entity.LedgerLine{
		line("1", day(2024, 2, 28), "100", "0"),
		line("2", day(2024, 3, 10), "30", "0"),
		line("3", day(2024, 3, 20), "0", "12.50"),
		line("4", day(2024, 4, 1), "100", "0"),
	}
	net, err := ledger.ComputeNetMovement(lines, day(2024, 3, 1), day(2024, 3, 31))
	require.NoError(t, err)
	assertDecimal(t, "17.50", net)
}

func TestComputeNetMovement_RangoInvertido(t *testing.T) {
	_, err := ledger.ComputeNetMovement(nil, day(2024, 3, 31), day(2024, 3, 1))
	assert.ErrorIs(t, err, domain.ErrValidation)
}
