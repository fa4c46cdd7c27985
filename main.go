package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/orayew2002/marriage-form/config"
	"github.com/orayew2002/marriage-form/domain"
	"github.com/orayew2002/marriage-form/layout"
	"github.com/orayew2002/marriage-form/logger"
	"github.com/orayew2002/marriage-form/processor"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logger.ErrorLog(context.Background(), "marriage-form failed: %v", err)
		os.Exit(1)
	}
	os.Exit(0)
}

type cliOptions struct {
	envFile  string
	input    string
	output   string
	template string
	layout   string
	image    string
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	rootCmd := &cobra.Command{
		Use:   "marriage-form",
		Short: "Fill the marriage-license application workbook",
		Long: `marriage-form reads one application as a JSON object on stdin, fills the
application template and writes the resulting xlsx workbook to stdout.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFill(cmd, opts)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "Path to the .env file")
	rootCmd.PersistentFlags().StringVarP(&opts.input, "input", "i", "", "Read the application from a file (default: stdin)")
	rootCmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file or directory (default: stdout)")
	rootCmd.Flags().StringVar(&opts.template, "template", "", "Template workbook path")
	rootCmd.Flags().StringVar(&opts.layout, "layout", "", "Cell layout YAML (default: embedded layout)")
	rootCmd.Flags().StringVar(&opts.image, "image", "", "Default couple photo path")

	rootCmd.AddCommand(newPlanCmd(opts), newSampleCmd())
	return rootCmd
}

func newPlanCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Print which sheets a fill would keep",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := setup(opts)
			if err != nil {
				return err
			}

			app, err := readApplication(cmd, opts.input)
			if err != nil {
				return err
			}

			plan := domain.NewPlan(app, cfg.Jurisdiction())
			data, err := json.MarshalIndent(plan, "", "  ")
			if err != nil {
				return fmt.Errorf("encode plan: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
}

func newSampleCmd() *cobra.Command {
	var fake domain.FakeOptions

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Print a realistic fake application as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := json.MarshalIndent(domain.GenerateInput(fake), "", "  ")
			if err != nil {
				return fmt.Errorf("encode sample: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}

	cmd.Flags().IntVar(&fake.GroomAge, "groom-age", 0, "Groom age (default: random adult)")
	cmd.Flags().IntVar(&fake.BrideAge, "bride-age", 0, "Bride age (default: random adult)")
	cmd.Flags().StringVar(&fake.GroomTown, "groom-town", "", "Groom town (default: random)")
	cmd.Flags().StringVar(&fake.BrideTown, "bride-town", "", "Bride town (default: random)")

	return cmd
}

// setup loads configuration, applies flag overrides and starts the logger.
func setup(opts *cliOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.envFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg.Resolve(config.ExecutableDir())

	if opts.template != "" {
		cfg.TemplatePath = opts.template
	}
	if opts.layout != "" {
		cfg.LayoutPath = opts.layout
	}
	if opts.image != "" {
		cfg.ImagePath = opts.image
	}

	logger.Init(cfg.LogLevel, cfg.LogFilePath)
	return cfg, nil
}

func runFill(cmd *cobra.Command, opts *cliOptions) error {
	ctx := cmd.Context()

	cfg, err := setup(opts)
	if err != nil {
		return err
	}

	app, err := readApplication(cmd, opts.input)
	if err != nil {
		return err
	}

	l := layout.Default()
	if cfg.LayoutPath != "" {
		if l, err = layout.Load(cfg.LayoutPath); err != nil {
			return err
		}
	}

	filler := processor.New(processor.Options{
		TemplatePath:     cfg.TemplatePath,
		DefaultImagePath: cfg.ImagePath,
		Jurisdiction:     cfg.Jurisdiction(),
		Layout:           l,
	})

	data, err := filler.Fill(ctx, app)
	if err != nil {
		return err
	}

	if opts.output == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	path := outputPath(opts.output, app.Code)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	logger.InfoLog(ctx, "workbook written to %s (%d bytes)", path, len(data))

	return nil
}

func readApplication(cmd *cobra.Command, input string) (*domain.Application, error) {
	var (
		data []byte
		err  error
	)
	if input != "" {
		data, err = os.ReadFile(input)
	} else {
		data, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	return domain.Parse(data)
}

// outputPath names the workbook after the application code when out is a directory.
func outputPath(out, code string) string {
	if info, err := os.Stat(out); err != nil || !info.IsDir() {
		return out
	}
	return filepath.Join(out, "MARRIAGE_APPLICATION_"+fileCode(code)+".xlsx")
}

func fileCode(code string) string {
	code = strings.Map(func(r rune) rune {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return -1
		}
	}, code)
	if code == "" {
		return "DRAFT"
	}
	return code
}
