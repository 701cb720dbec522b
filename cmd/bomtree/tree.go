package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/partstack/bomtree/internal/presentation/tui"
	"github.com/partstack/bomtree/pkg/builder"
	"github.com/partstack/bomtree/pkg/domain"
)

// treeCmd represents the tree command
var treeCmd = &cobra.Command{
	Use:   "tree <part-id>",
	Short: "Print the assembly tree for a part",
	Long:  `Resolves the bill of materials for the given part and prints the resulting assembly tree, rendered as markdown when attached to a terminal.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		partID, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Printf("Invalid part id %q\n", args[0])
			os.Exit(1)
		}

		maxDepth, _ := cmd.Flags().GetInt("max-depth")
		substitutes, _ := cmd.Flags().GetBool("substitutes")
		plain, _ := cmd.Flags().GetBool("plain")

		svc, err := newService(cmd)
		if err != nil {
			fmt.Printf("Error initializing bomtree: %v\n", err)
			os.Exit(1)
		}

		opts := svc.Defaults()
		if cmd.Flags().Changed("max-depth") {
			opts.MaxDepth = domain.ClampDepth(maxDepth)
		}
		opts.IncludeSubstitutes = substitutes

		root, err := svc.BuildTree(cmd.Context(), partID, opts)
		if err != nil {
			fmt.Printf("Error building tree: %v\n", err)
			os.Exit(1)
		}

		markdown := tui.Outline(root, domain.ComputeMetrics(root))

		if plain || !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Print(markdown)
			return
		}

		render := tui.NewRenderer()
		out, err := render(markdown)
		if err != nil {
			fmt.Print(markdown)
			return
		}
		fmt.Print(out)
	},
}

func init() {
	rootCmd.AddCommand(treeCmd)

	treeCmd.Flags().Int("max-depth", builder.DefaultOptions().MaxDepth, "Maximum recursion depth")
	treeCmd.Flags().Bool("substitutes", false, "Include substitute parts")
	treeCmd.Flags().Bool("plain", false, "Print raw markdown without terminal styling")
}
