package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	pagefill "github.com/goliatone/go-pagefill"
	"github.com/goliatone/go-pagefill/internal/config"
	"github.com/goliatone/go-pagefill/pkg/export"
	"github.com/goliatone/go-pagefill/pkg/pdf"
	"github.com/goliatone/go-pagefill/pkg/placeholder"
	"github.com/goliatone/go-pagefill/pkg/prompt"
	"github.com/goliatone/go-pagefill/pkg/store"
)

const usage = `usage: pagefill <command> [flags]

commands:
  extract   list the placeholders referenced by an editor project
  export    fill a stored template and write the export
  list      list the templates in a templates directory
`

func main() {
	log.SetFlags(0)
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	switch os.Args[1] {
	case "extract":
		err = runExtract(ctx, os.Args[2:])
	case "export":
		err = runExport(ctx, os.Args[2:])
	case "list":
		err = runList(ctx, os.Args[2:])
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("pagefill %s: %v", os.Args[1], err)
	}
}

func runExtract(ctx context.Context, args []string) error {
	fset := flag.NewFlagSet("extract", flag.ExitOnError)
	projectPath := fset.String("project", "", "editor project JSON file")
	brackets := fset.String("brackets", "", `bracket pair as "open,close" (default "{{,}}")`)
	output := fset.String("output", "", "output file (stdout if empty)")
	_ = fset.Parse(args)

	if strings.TrimSpace(*projectPath) == "" {
		return errors.New("-project is required")
	}
	delims, err := placeholder.Parse(*brackets)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(*projectPath)
	if err != nil {
		return err
	}

	res, err := pagefill.ExtractProject(ctx, data, delims)
	if err != nil {
		return err
	}
	body, err := json.MarshalIndent(map[string]any{
		"brackets": delims.Slice(),
		"fields":   res.Fields,
		"values":   res.Values,
		"keys":     res.Keys,
	}, "", "  ")
	if err != nil {
		return err
	}
	return writeOutput(*output, append(body, '\n'))
}

func runList(ctx context.Context, args []string) error {
	fset := flag.NewFlagSet("list", flag.ExitOnError)
	configPath := fset.String("config", "", "configuration file (YAML)")
	templatesDir := fset.String("templates", "", "templates directory (overrides config)")
	_ = fset.Parse(args)

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	templates, err := loadTemplates(cfg, *templatesDir)
	if err != nil {
		return err
	}
	list, err := templates.List(ctx)
	if err != nil {
		return err
	}
	for _, tpl := range list {
		fmt.Printf("%-20s %-20s %-6s %s\n", tpl.ID, tpl.Slug, tpl.Type, tpl.Name)
	}
	return nil
}

func runExport(ctx context.Context, args []string) error {
	fset := flag.NewFlagSet("export", flag.ExitOnError)
	configPath := fset.String("config", "", "configuration file (YAML)")
	templatesDir := fset.String("templates", "", "templates directory (overrides config)")
	slug := fset.String("slug", "", "template slug")
	id := fset.String("id", "", "template id")
	valuesPath := fset.String("values", "", "JSON file holding a value object or an array of them")
	format := fset.String("type", string(export.DefaultFormat), "export type: html, inline-html, email, pdf")
	orientation := fset.String("orientation", "", "pdf orientation: portrait or landscape")
	pageSize := fset.String("page-size", "", `pdf page size: a name such as A4 or JSON like {"width":8.5,"height":11,"unit":"in"}`)
	output := fset.String("output", "", "output file (stdout if empty)")
	interactive := fset.Bool("prompt", false, "ask for missing values and the export type")
	_ = fset.Parse(args)

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	templates, err := loadTemplates(cfg, *templatesDir)
	if err != nil {
		return err
	}
	options, err := cfg.PipelineOptions(templates)
	if err != nil {
		return err
	}
	pipeline := pagefill.NewPipeline(options...)

	req := export.Request{
		Ref:    store.Ref{ID: strings.TrimSpace(*id), Slug: strings.TrimSpace(*slug)},
		Format: export.ParseFormat(*format),
	}
	if req.Ref.IsZero() {
		return export.ErrMissingTemplateRef
	}
	if *valuesPath != "" {
		data, err := os.ReadFile(*valuesPath)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(data, &req.Values); err != nil {
			return fmt.Errorf("values: %w", err)
		}
	}
	if *orientation != "" {
		o, err := pdf.ParseOrientation(*orientation)
		if err != nil {
			return err
		}
		req.Orientation = o
	}
	if *pageSize != "" {
		size, err := parsePageSize(*pageSize)
		if err != nil {
			return err
		}
		req.PageSize = size
	}

	if *interactive {
		if err := promptRequest(ctx, templates, pipeline, &req); err != nil {
			return err
		}
	}

	res, err := pipeline.Export(ctx, req)
	if err != nil {
		return err
	}
	if res.IsBinary() {
		if *output == "" {
			return errors.New("-output is required for binary exports")
		}
		if err := os.WriteFile(*output, res.PDF, 0o644); err != nil {
			return err
		}
		fmt.Printf("PDF written to %s\n", *output)
		return nil
	}

	body, err := json.MarshalIndent(res.Body(), "", "  ")
	if err != nil {
		return err
	}
	return writeOutput(*output, append(body, '\n'))
}

func promptRequest(ctx context.Context, templates store.Store, pipeline *export.Pipeline, req *export.Request) error {
	driver := prompt.NewSurvey()

	formats := make([]string, 0)
	for _, f := range pipeline.Registry().List() {
		formats = append(formats, string(f))
	}
	chosen, err := prompt.ChooseFormat(ctx, driver, formats, string(req.Format))
	if err != nil {
		return err
	}
	req.Format = export.Format(chosen)

	tpl, err := templates.Get(ctx, req.Ref)
	if err != nil {
		return err
	}
	keys, err := templateKeys(tpl)
	if err != nil {
		return err
	}

	if req.Values.Batch {
		sets := make([]map[string]string, 0, len(req.Values.Sets))
		for _, set := range req.Values.Sets {
			filled, err := prompt.Collect(ctx, driver, keys, set, prompt.WithDefaults(tpl.Values))
			if err != nil {
				return err
			}
			sets = append(sets, filled)
		}
		req.Values = export.BatchOf(sets...)
		return nil
	}

	var known map[string]string
	if len(req.Values.Sets) == 1 {
		known = req.Values.Sets[0]
	}
	filled, err := prompt.Collect(ctx, driver, keys, known, prompt.WithDefaults(tpl.Values))
	if err != nil {
		return err
	}
	req.Values = export.Single(filled)
	return nil
}

// templateKeys lists the distinct keys in tpl's markup in order of
// appearance.
func templateKeys(tpl store.Template) ([]string, error) {
	m, err := placeholder.Cached(tpl.Delimiters())
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	var keys []string
	for _, key := range m.Keys(tpl.HTML) {
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	return keys, nil
}

func loadTemplates(cfg config.Config, override string) (*store.Memory, error) {
	fallback := pagefill.SamplesFS()
	if dir := strings.TrimSpace(override); dir != "" {
		cfg.Templates.Dir = dir
		fallback = nil
	}
	fsys, err := cfg.TemplatesFS(fallback)
	if err != nil {
		return nil, err
	}
	return pagefill.LoadTemplates(fsys)
}

func parsePageSize(raw string) (pdf.PageSize, error) {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "{") {
		size := pdf.Named(trimmed)
		return size, size.Validate()
	}
	var size pdf.PageSize
	if err := json.Unmarshal([]byte(trimmed), &size); err != nil {
		return pdf.PageSize{}, err
	}
	return size, size.Validate()
}

func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	fmt.Printf("Output written to %s\n", path)
	return nil
}
