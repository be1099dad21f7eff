package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wideptr/wideptr/internal/generator/codegen"
	generrors "github.com/wideptr/wideptr/internal/generator/errors"
	"github.com/wideptr/wideptr/internal/generator/source"
)

var (
	genJSON    bool
	genVerbose bool
	genOutput  string
)

func init() {
	genCmd.Flags().BoolVar(&genJSON, "json", false, "Output diagnostics in JSON format")
	genCmd.Flags().BoolVar(&genVerbose, "verbose", false, "Trace scanning and emission")
	genCmd.Flags().StringVar(&genOutput, "output", "", "Generated file name (default "+codegen.DefaultOutput+")")
}

var genCmd = &cobra.Command{
	Use:   "gen [dir]",
	Short: "Generate capability declarations for marked types",
	Long: `Scan a package directory for //wideptr:pointee directives and write the
capability declarations to a single generated file. Intended to run under
go:generate. Nothing is written when any declaration is rejected.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if genOutput != "" {
			cfg.Output = genOutput
		}
		if genJSON {
			cfg.JSON = true
		}
		if genVerbose {
			cfg.Verbose = true
		}

		log := zap.NewNop()
		if cfg.Verbose {
			dev, err := zap.NewDevelopment()
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			log = dev
			defer func() { _ = log.Sync() }()
		}

		pkg, diags := source.Load(dir, cfg.Output, log)
		if diags.HasErrors() {
			return reportDiags(diags, cfg.JSON)
		}

		if len(pkg.Decls) == 0 {
			fmt.Printf("no %s directives in %s\n", source.Directive, dir)
			return nil
		}

		gen := codegen.NewGenerator(log)
		src, genErr := gen.File(pkg)
		if genErr != nil {
			return reportDiags(append(diags, genErr), cfg.JSON)
		}

		out := filepath.Join(dir, cfg.Output)
		if err := os.WriteFile(out, []byte(src), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", out, err)
		}

		if len(diags) > 0 && !cfg.JSON {
			fmt.Fprint(os.Stderr, generrors.FormatList(diags))
		}
		fmt.Printf("wrote %s (%d capability declaration(s))\n", out, len(pkg.Decls))
		return nil
	},
}

// reportDiags renders the run's diagnostics and returns the error that
// makes the command exit nonzero.
func reportDiags(diags generrors.List, asJSON bool) error {
	if asJSON {
		s, err := diags.ToJSON()
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, s)
		errs, _ := diags.Counts()
		return fmt.Errorf("generation failed with %d error(s)", errs)
	}
	return diags
}
