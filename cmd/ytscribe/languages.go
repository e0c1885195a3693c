package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var languagesCmd = &cobra.Command{
	Use:   "languages [video id or url]",
	Short: "List available transcript languages",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := buildClient()
		if err != nil {
			return err
		}
		languages, err := c.AvailableLanguages(context.Background(), args[0])
		if err != nil {
			return err
		}
		for _, lang := range languages {
			kind := "manual"
			if lang.AutoGenerated {
				kind = "auto-generated"
			}
			fmt.Printf("%-8s %s (%s)\n", lang.Code, lang.Name, kind)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(languagesCmd)
}
