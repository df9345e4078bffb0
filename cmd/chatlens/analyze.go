package main

import (
	"fmt"

	"github.com/fwojciec/chatlens"
	"github.com/fwojciec/chatlens/collect"
)

// Run executes the analyze command.
func (c *AnalyzeCmd) Run(deps *Dependencies) error {
	outcomes, err := deps.Collector.Collect(deps.Ctx, []collect.Target{{Source: c.Target, Host: c.Host}}, nil)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", chatlens.ErrorMessage(err))
		return err
	}
	o := outcomes[0]
	if o.Err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", chatlens.ErrorMessage(o.Err))
		return o.Err
	}

	messages, err := o.Result.Transcript()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", chatlens.ErrorMessage(err))
		return err
	}

	settings, err := deps.Settings.FindSettings(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", chatlens.ErrorMessage(err))
		return err
	}

	req := &chatlens.AnalysisRequest{Messages: messages, Settings: *settings}
	if err := req.Validate(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", chatlens.ErrorMessage(err))
		return err
	}

	output, err := deps.Analyzer.Analyze(deps.Ctx, req, func(status string) {
		fmt.Fprintln(deps.Stderr, status)
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", chatlens.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, output)

	if c.NoSave {
		return nil
	}

	site, _ := deps.Detector.Match(o.Host)
	report := &chatlens.Report{
		Source:           c.Target,
		Site:             site,
		MessageCount:     len(messages),
		ConversationHash: chatlens.HashConversation(messages),
		Output:           output,
	}
	if err := deps.Reports.CreateReport(deps.Ctx, report); err != nil {
		fmt.Fprintf(deps.Stderr, "error: saving report: %s\n", chatlens.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stderr, "Saved report %s\n", report.ID)
	return nil
}
