package commands

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/contable-api/internal/application/reports"
	"github.com/jhoicas/contable-api/internal/domain/entity"
	"github.com/jhoicas/contable-api/internal/domain/ledger"
	"github.com/jhoicas/contable-api/internal/infrastructure/csvledger"
)

func newReportCommand(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reporte",
		Short: "Reportes contables a partir de archivos exportados",
	}
	cmd.AddCommand(newAccountActivityCommand(root))
	return cmd
}

type activityOptions struct {
	csvPath    string
	accountID  string
	from       string
	to         string
	costCenter string
	timezone   string
	latin1     bool
}

func newAccountActivityCommand(root *rootOptions) *cobra.Command {
	var o activityOptions

	cmd := &cobra.Command{
		Use:   "mayor",
		Short: "Mayor de una cuenta con saldo inicial y saldo corrido",
		Long: "Lee un CSV con columnas id,account_id,date,debit,credit,cost_center_id,description\n" +
			"e imprime el mayor de la cuenta indicada en el período.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAccountActivity(cmd.OutOrStdout(), root, o, time.Now())
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.csvPath, "csv", "", "archivo CSV con las líneas del mayor (requerido)")
	f.StringVar(&o.accountID, "cuenta", "", "id de la cuenta (requerido)")
	f.StringVar(&o.from, "desde", "", "inicio YYYY-MM-DD (por defecto primer día del mes)")
	f.StringVar(&o.to, "hasta", "", "fin YYYY-MM-DD (por defecto hoy)")
	f.StringVar(&o.costCenter, "centro", "", "filtra por centro de costo")
	f.StringVar(&o.timezone, "zona", "America/Guayaquil", "zona horaria de las fechas")
	f.BoolVar(&o.latin1, "latin1", false, "el CSV está en ISO-8859-1")
	_ = cmd.MarkFlagRequired("csv")
	_ = cmd.MarkFlagRequired("cuenta")

	return cmd
}

func runAccountActivity(out io.Writer, root *rootOptions, o activityOptions, now time.Time) error {
	log := root.logger().Named("mayor")

	loc, err := time.LoadLocation(o.timezone)
	if err != nil {
		return fmt.Errorf("zona horaria %q: %w", o.timezone, err)
	}
	start, end, err := reports.ParsePeriod(o.from, o.to, now, loc)
	if err != nil {
		return err
	}

	all, err := csvledger.ReadFile(o.csvPath, csvledger.Options{Latin1: o.latin1, Location: loc})
	if err != nil {
		return err
	}
	lines := make([]entity.LedgerLine, 0, len(all))
	for _, l := range all {
		if l.AccountID != o.accountID {
			continue
		}
		if o.costCenter != "" && (l.CostCenterID == nil || *l.CostCenterID != o.costCenter) {
			continue
		}
		lines = append(lines, l)
	}
	log.Debug().
		Str("file", o.csvPath).
		Int("read", len(all)).
		Int("selected", len(lines)).
		Msg("líneas cargadas")

	// En el CSV el centro de costo ya viene como código legible.
	labels := make(map[string]string)
	for _, l := range lines {
		if l.CostCenterID != nil {
			labels[*l.CostCenterID] = *l.CostCenterID
		}
	}
	rows, err := ledger.ComputeBalancesWithLabels(lines, start, end, labels)
	if err != nil {
		return err
	}
	return printActivity(out, o.accountID, start, end, rows)
}

func printActivity(out io.Writer, accountID string, start, end time.Time, rows []ledger.BalanceRow) error {
	fmt.Fprintf(out, "Cuenta %s del %s al %s\n\n", accountID, start.Format("02/01/2006"), end.Format("02/01/2006"))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "Fecha\tID\tDescripción\tCentro\tDebe\tHaber\tSaldo\t")
	for _, r := range rows {
		center := ""
		if r.CostCenterLabel != nil {
			center = *r.CostCenterLabel
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			r.Date.Format("02/01/2006"), r.ID, r.Description, center,
			r.Debit.StringFixed(2), r.Credit.StringFixed(2), r.RunningBalance.StringFixed(2))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "\nSaldo final: %s\n", rows[len(rows)-1].RunningBalance.StringFixed(2))
	return err
}
