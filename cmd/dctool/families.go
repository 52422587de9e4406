package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/HonzaMatousek/libdivecomputer/internal/parser"
)

var familiesCmd = &cobra.Command{
	Use:   "families",
	Short: "List the supported device families",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, family := range parser.Families() {
			fmt.Println(family)
		}
	},
}

func init() {
	rootCmd.AddCommand(familiesCmd)
}
