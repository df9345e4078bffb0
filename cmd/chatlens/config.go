package main

import (
	"fmt"

	"github.com/fwojciec/chatlens"
)

// Run executes the config show command.
func (c *ConfigShowCmd) Run(deps *Dependencies) error {
	s, err := deps.Settings.FindSettings(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", chatlens.ErrorMessage(err))
		return err
	}
	printSettings(deps, s)
	return nil
}

// Run executes the config set command.
func (c *ConfigSetCmd) Run(deps *Dependencies) error {
	var upd chatlens.SettingsUpdate
	switch {
	case c.Reset:
		empty := ""
		upd.EmbeddingModel = &empty
		upd.LLMModel = &empty
	case c.EmbeddingModel == "" && c.LLMModel == "":
		err := chatlens.Errorf(chatlens.EINVALID, "nothing to set. Pass --embedding-model, --llm-model or --reset")
		fmt.Fprintf(deps.Stderr, "error: %s\n", chatlens.ErrorMessage(err))
		return err
	}
	if c.EmbeddingModel != "" {
		upd.EmbeddingModel = &c.EmbeddingModel
	}
	if c.LLMModel != "" {
		upd.LLMModel = &c.LLMModel
	}

	s, err := deps.Settings.UpdateSettings(deps.Ctx, upd)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", chatlens.ErrorMessage(err))
		return err
	}
	printSettings(deps, s)
	return nil
}

func printSettings(deps *Dependencies, s *chatlens.Settings) {
	fmt.Fprintf(deps.Stdout, "embedding_model  %s\n", s.EmbeddingModel)
	fmt.Fprintf(deps.Stdout, "llm_model        %s\n", s.LLMModel)
}
