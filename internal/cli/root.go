// Package cli implements the ductdraw command line.
package cli

import (
	"io"
	"log"

	"github.com/spf13/cobra"

	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/common/config"
	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/fittings"
	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/layout"
	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/standards"
)

// options are the persistent flags shared by every command.
type options struct {
	verbose   bool
	standards string
	company   string
}

func (o *options) library() (*fittings.Library, error) {
	table, err := standards.Load(o.standards)
	if err != nil {
		return nil, err
	}
	return fittings.New(table), nil
}

// logf logs with the component tag when --verbose is set.
func (o *options) logf(format string, args ...any) {
	if o.verbose {
		log.Printf(format, args...)
	}
}

// NewRootCommand builds the ductdraw command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "ductdraw",
		Short: "Parametric duct fitting drawings and DXF fabrication sheets",
		Long: `Draw duct fittings from a handful of parameters and compose them into
A4 fabrication sheets exported as DXF.

Examples:
  ductdraw archetypes                                   # List the drawable fittings
  ductdraw generate elbow --set d1=500 --set angle=45   # Elbow as SVG on stdout
  ductdraw generate tee -o tee.png --size 512           # Tee as a PNG thumbnail
  ductdraw export project.yaml -o sheets.dxf            # Fabrication sheets
  ductdraw standard 480                                 # Flange table row`,
		SilenceUsage: true,
	}

	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")
	root.PersistentFlags().StringVar(&opts.standards, "standards", config.GetEnv("STANDARDS_FILE", ""),
		"flange table YAML (default: embedded table)")
	root.PersistentFlags().StringVar(&opts.company, "company", config.GetEnv("COMPANY_NAME", layout.DefaultCompany),
		"company name printed on sheets")

	root.AddCommand(
		newGenerateCommand(opts),
		newExportCommand(opts),
		newStandardCommand(opts),
		newArchetypesCommand(opts),
	)
	return root
}

// output opens path for writing, or returns w for "" and "-".
func output(path string, w io.Writer) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return w, func() error { return nil }, nil
	}
	f, err := create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
