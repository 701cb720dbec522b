package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/partstack/bomtree"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of bomtree",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("bomtree version %s\n", strings.TrimSpace(bomtree.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
