package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fwojciec/chatlens"
	"github.com/fwojciec/chatlens/collect"
)

// Run executes the scrape command. Each target's result is printed as one
// JSON line on stdout in argument order.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	targets := make([]collect.Target, len(c.Targets))
	for i, src := range c.Targets {
		targets[i] = collect.Target{Source: src, Host: c.Host}
	}

	outcomes, err := deps.Collector.Collect(deps.Ctx, targets, nil)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", chatlens.ErrorMessage(err))
		return err
	}

	var store chatlens.TranscriptStore
	if c.Out != "" {
		store = deps.NewStore(c.Out)
	}

	failed, saved := 0, 0
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", o.Target.Source, errorText(o.Err))
			continue
		}
		if o.Result.IsError() {
			failed++
		}

		line, err := json.Marshal(o.Result)
		if err != nil {
			return err
		}
		fmt.Fprintln(deps.Stdout, string(line))

		if store != nil {
			if err := store.Save(deps.Ctx, o.Target.Source, o.Result); err != nil {
				_ = store.Abort()
				fmt.Fprintf(deps.Stderr, "error: saving %s: %s\n", o.Target.Source, errorText(err))
				return err
			}
			saved++
		}
	}

	// Committing an empty batch would replace the previous one.
	switch {
	case store == nil:
	case saved == 0:
		_ = store.Abort()
	default:
		if err := store.Commit(); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d targets failed", failed, len(outcomes))
	}
	return nil
}

// errorText returns the message of an application error, or the full text
// of any other error.
func errorText(err error) string {
	var e *chatlens.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
