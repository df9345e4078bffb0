package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/chatlens"
)

// Run executes the reports command.
func (c *ReportsCmd) Run(deps *Dependencies) error {
	if c.ID != "" {
		r, err := deps.Reports.FindReportByID(deps.Ctx, c.ID)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", chatlens.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n\n", r.ID, r.CreatedAt.Format(time.DateTime), r.Source)
		fmt.Fprintln(deps.Stdout, r.Output)
		return nil
	}

	filter := chatlens.ReportFilter{Limit: c.Limit}
	if c.Site != "" {
		site := chatlens.Site(c.Site)
		filter.Site = &site
	}

	reports, err := deps.Reports.FindReports(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", chatlens.ErrorMessage(err))
		return err
	}

	if len(reports) == 0 {
		fmt.Fprintln(deps.Stdout, "No reports found. Use 'chatlens analyze' to create one.")
		return nil
	}

	for _, r := range reports {
		fmt.Fprintf(deps.Stdout, "%s  %s  %-18s  %3d msgs  %s\n",
			r.ID, r.CreatedAt.Format(time.DateTime), r.Site, r.MessageCount, r.Source)
	}
	return nil
}
