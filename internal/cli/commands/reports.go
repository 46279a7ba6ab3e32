package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/salespoint/internal/api/client"
	"github.com/salespoint/internal/models"
	"github.com/spf13/cobra"
)

func NewReportsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "reports",
		Short:   "Sales report commands",
		Aliases: []string{"report", "r"},
	}

	cmd.AddCommand(newReportsLatestCommand())
	cmd.AddCommand(newReportsHistoryCommand())
	cmd.AddCommand(newReportsGenerateCommand())

	return cmd
}

func newReportsLatestCommand() *cobra.Command {
	var reportType string

	cmd := &cobra.Command{
		Use:   "latest",
		Short: "Show the most recent report of a type",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.NewClient()
			if err != nil {
				return fmt.Errorf("failed to create client: %v", err)
			}

			record, err := c.LatestReport(models.ReportType(reportType))
			if err != nil {
				return err
			}

			return printReport(record)
		},
	}

	cmd.Flags().StringVarP(&reportType, "type", "t", "Daily", "Report type (Daily, Weekly, Monthly)")
	return cmd
}

func newReportsHistoryCommand() *cobra.Command {
	var (
		reportType string
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List generated reports, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.NewClient()
			if err != nil {
				return fmt.Errorf("failed to create client: %v", err)
			}

			records, err := c.ReportHistory(models.ReportType(reportType), limit)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTYPE\tPERIOD\tSALES\tTRANSACTIONS\tGENERATED")
			for _, r := range records {
				fmt.Fprintf(w, "%d\t%s\t%s..%s\t%.2f\t%d\t%s\n",
					r.ID, r.ReportType, r.PeriodStart, r.PeriodEnd,
					r.TotalSales, r.TotalTransactions,
					r.CreatedAt.Format(time.RFC3339))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&reportType, "type", "t", "", "Filter by report type")
	cmd.Flags().IntVarP(&limit, "limit", "n", 30, "Maximum number of reports")
	return cmd
}

func newReportsGenerateCommand() *cobra.Command {
	var (
		reportType string
		date       string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate (or regenerate) a report for a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.NewClient()
			if err != nil {
				return fmt.Errorf("failed to create client: %v", err)
			}

			if date == "" {
				date = time.Now().Format("2006-01-02")
			}

			result, err := c.GenerateReport(models.ReportType(reportType), date)
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}

	cmd.Flags().StringVarP(&reportType, "type", "t", "Daily", "Report type (Daily, Weekly, Monthly)")
	cmd.Flags().StringVarP(&date, "date", "d", "", "Target date YYYY-MM-DD (default today)")
	return cmd
}

func printReport(r *models.Report) error {
	fmt.Printf("Report #%d  %s  (%s .. %s)\n", r.ID, r.ReportType, r.PeriodStart, r.PeriodEnd)
	fmt.Printf("Total sales: %.2f  Transactions: %d  Generated: %s\n",
		r.TotalSales, r.TotalTransactions, r.CreatedAt.Format(time.RFC3339))

	if r.Data != "" {
		var data map[string]interface{}
		if err := json.Unmarshal([]byte(r.Data), &data); err == nil {
			pretty, _ := json.MarshalIndent(data, "", "  ")
			fmt.Println(string(pretty))
		}
	}
	return nil
}
