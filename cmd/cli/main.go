package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"datasuite/adapters/excel"
	"datasuite/adapters/mail"
	"datasuite/adapters/pdf"
	"datasuite/app"
	"datasuite/internal/config"
	"datasuite/internal/testkit"
	"datasuite/internal/watch"
	"datasuite/ports"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "datasuite",
		Short: "Turn raw business data files into cleaned datasets, reports, and email digests",
	}

	rootCmd.AddCommand(
		newAnalyzeCmd(),
		newReportCmd(),
		newWatchCmd(),
		newSampleCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildService(cfg *config.Config) *app.ReportService {
	openReader := func(path string) ports.TableReader { return excel.NewDataReader(path) }
	notifier := mail.NewNotifier(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.Report.CompanyName)
	return app.NewReportService(
		openReader,
		excel.NewReportWriter(cfg.Report.CompanyName),
		pdf.NewReportWriter(cfg.Report.CompanyName),
		notifier,
		cfg.Report.OutputDir,
		cfg.Report.MaxFileSizeMB,
	)
}

func newAnalyzeCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Clean a data file and print its analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			svc := buildService(cfg)

			proc, err := svc.LoadProcessor(args[0])
			if err != nil {
				return err
			}

			if asJSON {
				out, err := json.MarshalIndent(proc.Analyze(), "", "  ")
				if err != nil {
					return fmt.Errorf("failed to encode report: %w", err)
				}
				fmt.Println(string(out))
				return nil
			}

			fmt.Println(proc.Summarize())
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full analysis report as JSON")
	return cmd
}

func newReportCmd() *cobra.Command {
	var recipients, subject string

	cmd := &cobra.Command{
		Use:   "report <file>",
		Short: "Generate Excel and PDF reports, optionally emailing them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if err := cfg.EnsureOutputDir(); err != nil {
				return err
			}
			svc := buildService(cfg)

			result, err := svc.Generate(context.Background(), app.GenerateRequest{FilePath: args[0]})
			if err != nil {
				return err
			}

			fmt.Println(result.Digest)
			fmt.Printf("\nExcel report: %s\nPDF report:   %s\n", result.ExcelPath, result.PDFPath)

			if recipients == "" {
				return nil
			}
			delivery, err := svc.Notify(result, recipients, subject)
			if err != nil {
				return err
			}
			fmt.Println(delivery.Message)
			return nil
		},
	}

	cmd.Flags().StringVar(&recipients, "email", "", "comma-separated recipient addresses")
	cmd.Flags().StringVar(&subject, "subject", "", "email subject (default is company report subject)")
	return cmd
}

func newWatchCmd() *cobra.Command {
	var recipients string

	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Watch a drop folder and generate reports for new data files",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if len(args) == 1 {
				cfg.Watch.Dir = args[0]
			}
			if err := cfg.EnsureOutputDir(); err != nil {
				return err
			}

			w := watch.NewWatcher(cfg.Watch.Dir, buildService(cfg), recipients, cfg.Watch.Interval)
			return w.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&recipients, "email", "", "comma-separated recipients for every generated report")
	return cmd
}

func newSampleCmd() *cobra.Command {
	var rows int
	var seed int64

	cmd := &cobra.Command{
		Use:   "sample <path>",
		Short: "Write a synthetic sales CSV for trying out the pipeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			genCfg := testkit.DefaultSalesConfig()
			genCfg.RowCount = rows
			genCfg.Seed = seed

			if err := testkit.WriteSalesCSV(genCfg, args[0]); err != nil {
				return err
			}
			fmt.Printf("Wrote %d rows to %s\n", rows, args[0])
			return nil
		},
	}

	cmd.Flags().IntVar(&rows, "rows", 200, "number of data rows")
	cmd.Flags().Int64Var(&seed, "seed", 42, "random seed")
	return cmd
}
