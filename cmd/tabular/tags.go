package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"tabular/internal/tags"
)

func tagsCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "Print the parsed commands.tag file",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTags(*configPath)
		},
	}
}

func runTags(configPath string) error {
	e, err := newEnv(configPath)
	if err != nil {
		return err
	}

	path := e.cfg.TagsFile
	if !filepath.IsAbs(path) {
		path = filepath.Join(e.cfg.DataDir, path)
	}

	list, err := tags.Load(path)
	if err != nil {
		return err
	}
	for _, t := range list {
		fmt.Println(t)
	}
	return nil
}
