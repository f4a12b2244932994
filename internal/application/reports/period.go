package reports

import (
	"time"

	"github.com/jhoicas/contable-api/internal/domain"
	"github.com/jhoicas/contable-api/internal/domain/entity"
)

const dateLayout = "2006-01-02"

// ParsePeriod interpreta start/end (YYYY-MM-DD) en loc. Sin start se usa el primer día del mes de
// now; sin end, el día de now. Las horas se completan en ledger.NormalizeRange.
func ParsePeriod(startStr, endStr string, now time.Time, loc *time.Location) (start, end time.Time, err error) {
	now = now.In(loc)

	if endStr == "" {
		end = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	} else {
		end, err = time.ParseInLocation(dateLayout, endStr, loc)
		if err != nil {
			return time.Time{}, time.Time{}, domain.NewValidationError("end_date", "formato esperado YYYY-MM-DD: %q", endStr)
		}
	}

	if startStr == "" {
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	} else {
		start, err = time.ParseInLocation(dateLayout, startStr, loc)
		if err != nil {
			return time.Time{}, time.Time{}, domain.NewValidationError("start_date", "formato esperado YYYY-MM-DD: %q", startStr)
		}
	}

	if start.After(end) {
		return time.Time{}, time.Time{}, domain.NewValidationError("start_date", "no puede ser posterior a end_date")
	}
	return start, end, nil
}

// inLocation reinterpreta las fechas contables en loc conservando el día de calendario.
// Las columnas DATE llegan como medianoche UTC; sin esto un asiento del primer día quedaría antes
// del inicio del rango en zonas con offset negativo. Modifica el slice recibido.
func inLocation(lines []entity.LedgerLine, loc *time.Location) []entity.LedgerLine {
	for i := range lines {
		d := lines[i].Date
		lines[i].Date = time.Date(d.Year(), d.Month(), d.Day(), d.Hour(), d.Minute(), d.Second(), d.Nanosecond(), loc)
	}
	return lines
}
