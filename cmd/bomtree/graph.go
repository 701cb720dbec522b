package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/partstack/bomtree/internal/presentation/graph"
	"github.com/partstack/bomtree/pkg/domain"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <part-id>",
	Short: "Export the assembly tree visualization",
	Long:  `Resolves the assembly tree for the given part and outputs a Mermaid diagram (graph TD) of its structure.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		partID, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Printf("Invalid part id %q\n", args[0])
			os.Exit(1)
		}

		maxDepth, _ := cmd.Flags().GetInt("max-depth")

		svc, err := newService(cmd)
		if err != nil {
			fmt.Printf("Error initializing bomtree: %v\n", err)
			os.Exit(1)
		}

		opts := svc.Defaults()
		if cmd.Flags().Changed("max-depth") {
			opts.MaxDepth = domain.ClampDepth(maxDepth)
		}

		root, err := svc.BuildTree(cmd.Context(), partID, opts)
		if err != nil {
			fmt.Printf("Error building tree: %v\n", err)
			os.Exit(1)
		}

		fmt.Print(graph.GenerateMermaid(root))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)

	graphCmd.Flags().Int("max-depth", domain.DefaultMaxDepth, "Maximum recursion depth")
}
