package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/dxf"
	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/mapper"
	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/models"
	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/preview"
	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/scene"
)

type generateFlags struct {
	set    []string
	active string
	out    string
	format string
	size   int
}

func newGenerateCommand(opts *options) *cobra.Command {
	f := &generateFlags{}
	cmd := &cobra.Command{
		Use:   "generate <archetype>",
		Short: "Draw one fitting",
		Long: `Draw one fitting as SVG, PNG, DXF or a JSON scene. Parameters not set
take the archetype defaults. The format follows the output file extension
unless --format is given; without an output file SVG goes to stdout.

Values of --set are numbers, true/false, JSON lists or objects, or text:
  ductdraw generate straight_with_taps --set 'taps=[{"distance":400,"angle":90,"diameter":150}]'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts, f, args[0])
		},
	}
	cmd.Flags().StringArrayVar(&f.set, "set", nil, "parameter as key=value (repeatable)")
	cmd.Flags().StringVar(&f.active, "active", "", "parameter whose dimension is highlighted")
	cmd.Flags().StringVarP(&f.out, "output", "o", "", "output file (.svg, .png, .dxf, .json)")
	cmd.Flags().StringVar(&f.format, "format", "", "svg, png, dxf or json")
	cmd.Flags().IntVar(&f.size, "size", preview.DefaultSize, "PNG edge in pixels")
	return cmd
}

func runGenerate(cmd *cobra.Command, opts *options, f *generateFlags, archetype string) error {
	params, err := ParseSets(f.set)
	if err != nil {
		return err
	}
	lib, err := opts.library()
	if err != nil {
		return err
	}

	sc, err := lib.Generate(archetype, params, f.active)
	if err != nil {
		return err
	}
	opts.logf("[DRAFTER] Generated %s: %d nodes", archetype, len(sc.Nodes))

	format := strings.ToLower(f.format)
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(f.out)), ".")
	}
	if format == "" {
		format = "svg"
	}

	w, closeOut, err := output(f.out, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if err := writeScene(w, &sc, format, f.size, func() models.GenerateResponse {
		desc, _ := lib.Describe(archetype, params)
		return models.GenerateResponse{
			Archetype:   archetype,
			Description: desc,
			Params:      lib.Table().Hydrate(archetype, params),
			Scene:       sc,
		}
	}); err != nil {
		closeOut()
		return err
	}
	return closeOut()
}

func writeScene(w io.Writer, sc *scene.Scene, format string, size int, response func() models.GenerateResponse) error {
	switch format {
	case "svg":
		out, err := mapper.NewRenderer().Render(sc)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, out)
		return err
	case "png":
		data, err := preview.PNG(sc, size)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case "dxf":
		ents, _ := dxf.Transcode(sc, dxf.CanvasPlacement(sc))
		doc := dxf.NewDocument()
		doc.Add(ents...)
		_, err := doc.WriteTo(w)
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(response())
	}
	return fmt.Errorf("unknown format %q", format)
}

// ParseSets turns key=value pairs into parameters. Values are decoded as
// numbers, booleans or JSON when they look like one, else kept as text.
func ParseSets(sets []string) (scene.Params, error) {
	params := scene.Params{}
	for _, s := range sets {
		key, value, ok := strings.Cut(s, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --set %q: want key=value", s)
		}
		v, err := parseValue(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("invalid --set %q: %w", s, err)
		}
		params[key] = v
	}
	return params, nil
}

func parseValue(s string) (any, error) {
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f, nil
	}
	if s == "true" || s == "false" {
		return s == "true", nil
	}
	if strings.HasPrefix(s, "[") || strings.HasPrefix(s, "{") {
		var v any
		if err := json.Unmarshal([]byte(s), &v); err != nil {
			return nil, err
		}
		return v, nil
	}
	return s, nil
}

func create(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}
	return os.Create(path)
}
