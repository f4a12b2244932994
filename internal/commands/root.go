// Package commands define la CLI contable: claves de acceso SRI y mayor de cuenta desde CSV,
// sin base de datos ni servidor.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/contable-api/internal/buildinfo"
	"github.com/jhoicas/contable-api/pkg/logger"
)

type rootOptions struct {
	verbose bool
}

// logger devuelve un logger a stderr con --verbose; descarta todo en otro caso.
func (o *rootOptions) logger() *logger.Logger {
	if !o.verbose {
		return logger.Nop()
	}
	return logger.New(logger.Config{Env: "development", Level: "debug", Output: os.Stderr})
}

// NewRootCommand construye el comando raíz con todos los subcomandos registrados.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:     "contable",
		Short:   "Herramientas contables: claves de acceso SRI y mayor de cuentas",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log de depuración a stderr")

	rootCmd.AddCommand(newAccessKeyCommand())
	rootCmd.AddCommand(newReportCommand(opts))

	return rootCmd
}
