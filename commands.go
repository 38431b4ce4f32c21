package main

import (
	"fmt"
	"os"
	"prodledger/aggregation"
	"prodledger/backup"
	"prodledger/recipeimport"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	okLabel   = color.New(color.FgGreen).Sprint("OK  ")
	failLabel = color.New(color.FgRed).Sprint("FAIL")
	heading   = color.New(color.Bold)
)

func importRecipeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import-recipe <workbook.xlsx>",
		Short: "Import every recipe sheet of a workbook",
		Long: `Import every recipe sheet of a workbook. Each sheet replaces the recipes
of the product whose code is in cell A1. Sheets listed in recipe_skip_sheets are ignored.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dbConn, cfg, err := openDatabase()
			if err != nil {
				return err
			}
			defer dbConn.Close()

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open workbook: %w", err)
			}
			defer f.Close()

			results, err := recipeimport.ImportWorkbook(dbConn, f, cfg.RecipeSkipSheets)
			if err != nil {
				return err
			}
			failed := 0
			for _, r := range results {
				if !r.Success {
					failed++
					fmt.Printf("%s %-12s %-30s %s\n", failLabel, r.ProductCode, r.ProductName, r.Message)
					continue
				}
				d := r.Result.Details
				fmt.Printf("%s %-12s %-30s inserted %d, skipped %d\n", okLabel, r.ProductCode, r.ProductName, d.TotalInserted, d.TotalSkipped)
			}
			fmt.Printf("\n%d sheets, %d failed\n", len(results), failed)
			return nil
		},
	}
}

func backupCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Write a consistent copy of the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			dbConn, cfg, err := openDatabase()
			if err != nil {
				return err
			}
			defer dbConn.Close()

			dest, err := backup.NewManager(dbConn, cfg.DatabasePath, cfg.BackupDir).Backup(out)
			if err != nil {
				return err
			}
			fmt.Printf("%s backup written to %s\n", okLabel, dest)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "backup file (default: timestamped file in backup_dir)")
	return cmd
}

func restoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <backup.db>",
		Short: "Replace the database with a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dbConn, cfg, err := openDatabase()
			if err != nil {
				return err
			}
			defer dbConn.Close()

			if err := backup.NewManager(dbConn, cfg.DatabasePath, cfg.BackupDir).Restore(args[0]); err != nil {
				return err
			}
			fmt.Printf("%s database restored from %s\n", okLabel, args[0])
			return nil
		},
	}
}

func reportCmd() *cobra.Command {
	now := time.Now()
	var year, month int
	var xlsxOut string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print production and manpower reports",
	}
	cmd.PersistentFlags().IntVar(&year, "year", now.Year(), "report year")

	monthly := &cobra.Command{
		Use:   "monthly",
		Short: "Section-wise and daily production value for one month",
		RunE: func(cmd *cobra.Command, args []string) error {
			dbConn, _, err := openDatabase()
			if err != nil {
				return err
			}
			defer dbConn.Close()

			s := aggregation.MonthlyProductionSummary(dbConn, year, month)
			p := message.NewPrinter(language.English)
			heading.Printf("%s %d\n", s.MonthName, s.Year)
			p.Printf("Total value   %.2f\n", s.MonthlyTotal.InexactFloat64())
			p.Printf("Daily average %.2f over %d working days\n", s.DailyAverage.InexactFloat64(), s.WorkingDays)
			p.Printf("Products      %d\n\n", s.TotalProducts)
			for _, sec := range s.SectionWise {
				p.Printf("  %-24s batch %8d  carton %8d  value %14.2f\n", sec.SectionName, sec.TotalBatch, sec.TotalCarton, sec.TotalValue.InexactFloat64())
			}

			if xlsxOut != "" {
				f, _, err := aggregation.MonthlyReportWorkbook(s)
				if err != nil {
					return err
				}
				defer f.Close()
				if err := f.SaveAs(xlsxOut); err != nil {
					return fmt.Errorf("failed to save %s: %w", xlsxOut, err)
				}
				fmt.Printf("\n%s workbook written to %s\n", okLabel, xlsxOut)
			}
			return nil
		},
	}
	monthly.Flags().IntVar(&month, "month", int(now.Month()), "report month (1-12)")
	monthly.Flags().StringVar(&xlsxOut, "xlsx", "", "also write the report as an xlsx workbook")

	yearly := &cobra.Command{
		Use:   "yearly",
		Short: "Month-by-month production value for one year",
		RunE: func(cmd *cobra.Command, args []string) error {
			dbConn, _, err := openDatabase()
			if err != nil {
				return err
			}
			defer dbConn.Close()

			s := aggregation.YearlyProductionSummary(dbConn, year)
			p := message.NewPrinter(language.English)
			heading.Printf("%d\n", s.Year)
			p.Printf("Yearly total    %.2f\n", s.YearlyTotal.InexactFloat64())
			p.Printf("Monthly average %.2f\n", s.MonthlyAverage.InexactFloat64())
			if s.BestMonth != nil {
				p.Printf("Best month      %s (%.2f)\n", s.BestMonth.MonthName, s.BestMonth.Value.InexactFloat64())
			}
			fmt.Println()
			for _, m := range s.MonthlySummaries {
				p.Printf("  %-10s %14.2f  %3d working days\n", m.MonthName, m.MonthlyTotal.InexactFloat64(), m.WorkingDays)
			}
			return nil
		},
	}

	manpowerCmd := &cobra.Command{
		Use:   "manpower",
		Short: "Yearly manpower, or per-section details with --month",
		RunE: func(cmd *cobra.Command, args []string) error {
			dbConn, _, err := openDatabase()
			if err != nil {
				return err
			}
			defer dbConn.Close()

			p := message.NewPrinter(language.English)
			if cmd.Flags().Changed("month") {
				heading.Printf("Section manpower %d-%02d\n", year, month)
				for _, d := range aggregation.SectionManpowerDetails(dbConn, year, month) {
					p.Printf("  %-24s total %8d  days %3d  avg %8.2f\n", d.SectionName, d.TotalManpower, d.DaysWithData, d.AvgDailyManpower)
				}
				return nil
			}

			s := aggregation.YearlyManpowerSummary(dbConn, year)
			heading.Printf("Manpower %d\n", s.Year)
			for _, m := range s.MonthlySummary {
				p.Printf("  %-10s %10d\n", time.Month(m.Month).String(), m.TotalManpower)
			}
			return nil
		},
	}
	manpowerCmd.Flags().IntVar(&month, "month", int(now.Month()), "show per-section details for this month")

	cmd.AddCommand(monthly, yearly, manpowerCmd)
	return cmd
}
