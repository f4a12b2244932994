package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/contable-api/internal/application/documents"
	"github.com/jhoicas/contable-api/internal/domain"
	"github.com/jhoicas/contable-api/pkg/sri"
)

func newAccessKeyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clave",
		Short: "Genera o verifica claves de acceso de comprobantes electrónicos",
	}
	cmd.AddCommand(newAccessKeyGenerateCommand())
	cmd.AddCommand(newAccessKeyVerifyCommand())
	return cmd
}

type generateOptions struct {
	date         string
	docType      string
	ruc          string
	environment  string
	series       string
	sequential   string
	numericCode  string
	emissionType string
}

func newAccessKeyGenerateCommand() *cobra.Command {
	var o generateOptions

	cmd := &cobra.Command{
		Use:   "generar",
		Short: "Genera la clave de acceso de 49 dígitos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			key, err := runGenerate(o)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), key)
			return err
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.date, "fecha", "", "fecha de emisión YYYY-MM-DD (por defecto hoy)")
	f.StringVar(&o.docType, "tipo", sri.DocTypeInvoice, "tipo de comprobante (01 factura, 04 nota de crédito, ...)")
	f.StringVar(&o.ruc, "ruc", "", "RUC del emisor (requerido)")
	f.StringVar(&o.environment, "ambiente", "1", "1/pruebas o 2/produccion")
	f.StringVar(&o.series, "serie", "", "establecimiento + punto de emisión, ej. 001001 (requerido)")
	f.StringVar(&o.sequential, "secuencial", "", "secuencial del comprobante (requerido)")
	f.StringVar(&o.numericCode, "codigo", "", "código numérico de 8 dígitos (por defecto aleatorio)")
	f.StringVar(&o.emissionType, "emision", sri.EmissionNormal, "tipo de emisión")
	_ = cmd.MarkFlagRequired("ruc")
	_ = cmd.MarkFlagRequired("serie")
	_ = cmd.MarkFlagRequired("secuencial")

	return cmd
}

func runGenerate(o generateOptions) (string, error) {
	issueDate := time.Now()
	if o.date != "" {
		d, err := time.Parse(time.DateOnly, o.date)
		if err != nil {
			return "", domain.NewValidationError("fecha", "formato esperado YYYY-MM-DD: %q", o.date)
		}
		issueDate = d
	}
	env, ok := sri.ParseEnvironment(o.environment)
	if !ok {
		return "", domain.NewValidationError("ambiente", "valor %q no reconocido", o.environment)
	}
	code := o.numericCode
	if code == "" {
		var err error
		if code, err = documents.RandomNumericCode(); err != nil {
			return "", err
		}
	}
	return sri.GenerateAccessKey(sri.AccessKeyParams{
		IssueDate:    issueDate,
		DocumentType: o.docType,
		TaxpayerID:   o.ruc,
		Environment:  env,
		Series:       o.series,
		Sequential:   o.sequential,
		NumericCode:  code,
		EmissionType: o.emissionType,
	})
}

func newAccessKeyVerifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "verificar <clave>",
		Short: "Verifica el dígito verificador y muestra los campos de la clave",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parts, err := sri.ParseAccessKey(args[0])
			if err != nil {
				return fmt.Errorf("clave inválida: %w", err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Fecha de emisión\t%s\n", parts.IssueDate.Format("02/01/2006"))
			fmt.Fprintf(w, "Tipo de comprobante\t%s %s\n", parts.DocumentType, sri.DocumentTypes[parts.DocumentType])
			fmt.Fprintf(w, "RUC\t%s\n", parts.TaxpayerID)
			fmt.Fprintf(w, "Ambiente\t%s\n", parts.Environment)
			fmt.Fprintf(w, "Serie\t%s-%s\n", parts.Establishment, parts.EmissionPoint)
			fmt.Fprintf(w, "Secuencial\t%s\n", parts.Sequential)
			fmt.Fprintf(w, "Código numérico\t%s\n", parts.NumericCode)
			fmt.Fprintf(w, "Tipo de emisión\t%s\n", parts.EmissionType)
			fmt.Fprintf(w, "Dígito verificador\t%d (válido)\n", parts.CheckDigit)
			return w.Flush()
		},
	}
}
