package commands

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/salespoint/internal/api/client"
	"github.com/spf13/cobra"
)

func NewSchedulesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "schedules",
		Short:   "Report schedule commands",
		Aliases: []string{"schedule", "sched"},
	}

	cmd.AddCommand(newSchedulesListCommand())

	return cmd
}

func newSchedulesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recurring report schedules",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.NewClient()
			if err != nil {
				return fmt.Errorf("failed to create client: %v", err)
			}

			schedules, err := c.ListSchedules()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTYPE\tACTIVE\tNEXT RUN\tLAST GENERATED")
			for _, entry := range schedules {
				last := "-"
				if entry.LastGenerated != nil {
					last = entry.LastGenerated.Format(time.RFC3339)
				}
				fmt.Fprintf(w, "%d\t%s\t%t\t%s\t%s\n",
					entry.ID, entry.ReportType, entry.IsActive,
					entry.NextRun.Format(time.RFC3339), last)
			}
			return w.Flush()
		},
	}
}
