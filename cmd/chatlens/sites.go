package main

import "fmt"

// Run executes the sites command.
func (c *SitesCmd) Run(deps *Dependencies) error {
	for _, site := range deps.Detector.Sites() {
		fmt.Fprintln(deps.Stdout, site)
	}
	return nil
}
