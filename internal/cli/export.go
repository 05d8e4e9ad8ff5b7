package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/layout"
	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/models"
)

func newExportCommand(opts *options) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export <project.yaml|project.json>",
		Short: "Compose a project file into DXF fabrication sheets",
		Long: `Lay the items of a project file out six to a page and write one DXF
document. Items with an unknown archetype keep their text rows but get no
drawing; the count of skipped nodes is reported on stderr.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := LoadProject(args[0])
			if err != nil {
				return err
			}
			lib, err := opts.library()
			if err != nil {
				return err
			}
			opts.logf("[EXPORT] %s: %d items", p.Name, len(p.Items))

			doc := layout.Compose(p.Header, p.Items, layout.Options{Company: opts.company, Library: lib})
			if doc.Stats.Skipped > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "skipped %d nodes\n", doc.Stats.Skipped)
			}

			w, closeOut, err := output(out, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if _, err := doc.WriteTo(w); err != nil {
				closeOut()
				return fmt.Errorf("write document: %w", err)
			}
			opts.logf("[EXPORT] Wrote %d entities", doc.Len())
			return closeOut()
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default: stdout)")
	return cmd
}

// LoadProject reads a project from YAML (.yaml, .yml) or JSON.
func LoadProject(path string) (*models.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read project: %w", err)
	}
	var p models.Project
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &p)
	default:
		err = json.Unmarshal(data, &p)
	}
	if err != nil {
		return nil, fmt.Errorf("parse project %s: %w", filepath.Base(path), err)
	}
	if p.Name == "" {
		p.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return &p, nil
}
