package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"companysite/internal/config"
	"companysite/internal/dashboard"
	"companysite/internal/repository"
)

var (
	nextRunsTodayOnly bool
	nextRunsFilter    string
)

var nextRunsCmd = &cobra.Command{
	Use:   "next-runs",
	Short: "Print every schedule with its projected next run",
	RunE:  runNextRuns,
}

func init() {
	nextRunsCmd.Flags().BoolVar(&nextRunsTodayOnly, "today-only", false, "Only schedules due today")
	nextRunsCmd.Flags().StringVar(&nextRunsFilter, "filter", "All", "All, Errors, Running or To Go")
}

func runNextRuns(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	db, err := config.NewDatabase(&cfg.Database)
	if err != nil {
		return err
	}

	views := dashboard.NewService(repository.NewScheduleRepository(db), repository.NewCompanyRepository(db))
	today := time.Now().In(cfg.Server.Location())
	view, err := views.Load(cmd.Context(), nextRunsTodayOnly, dashboard.ParseCategory(nextRunsFilter), today)
	if err != nil {
		return err
	}
	return printView(cmd.OutOrStdout(), view)
}

func printView(out io.Writer, view dashboard.View) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tREPORT\tDB\tFREQUENCY\tLAST RUN\tSTATE\tNEXT RUN")
	for _, s := range view.Schedules {
		next := "N/A"
		if s.NextRunDate != nil {
			next = s.NextRunDate.Format("2006-01-02")
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			s.ID, s.ReportName, s.ClientDatabase, s.Frequency,
			s.LastRunDate.Format("2006-01-02 15:04"), s.LastRunState, next)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	for _, s := range view.Schedules {
		if !s.Frequency.Known() {
			fmt.Fprintf(out, "warning: schedule %d has unknown frequency %q, next run not projected\n", s.ID, s.Frequency)
		}
		if !s.LastRunState.Known() {
			fmt.Fprintf(out, "warning: schedule %d has unknown run state %q\n", s.ID, s.LastRunState)
		}
	}
	_, err := fmt.Fprintf(out, "\ndone %d, to go %d, errors %d\n", view.DoneCount, view.ToGoCount, view.ErrorCount)
	return err
}
