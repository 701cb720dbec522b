package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/partstack/bomtree/pkg/export"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export <part-id>",
	Short: "Export an assembly tree to a file",
	Long:  `Resolves the assembly tree for the given part and writes it as CSV, one row per node. The filename is rendered from a configurable template; pass --out - to write to stdout.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		partID, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Printf("Invalid part id %q\n", args[0])
			os.Exit(1)
		}

		out, _ := cmd.Flags().GetString("out")
		maxDepth, _ := cmd.Flags().GetInt("max-depth")
		substitutes, _ := cmd.Flags().GetBool("substitutes")
		template, _ := cmd.Flags().GetString("filename-template")

		opts, err := export.DecodeOptions(map[string]any{
			"max_depth":           maxDepth,
			"include_substitutes": substitutes,
			"filename_template":   template,
		})
		if err != nil {
			fmt.Printf("Invalid export options: %v\n", err)
			os.Exit(1)
		}

		svc, err := newService(cmd)
		if err != nil {
			fmt.Printf("Error initializing bomtree: %v\n", err)
			os.Exit(1)
		}

		build := svc.Defaults()
		build.MaxDepth = opts.MaxDepth
		build.IncludeSubstitutes = opts.IncludeSubstitutes

		root, err := svc.BuildTree(cmd.Context(), partID, build)
		if err != nil {
			fmt.Printf("Error building tree: %v\n", err)
			os.Exit(1)
		}

		if out == "-" {
			if err := export.WriteCSV(os.Stdout, root, nil, nil); err != nil {
				fmt.Printf("Error writing export: %v\n", err)
				os.Exit(1)
			}
			return
		}

		gen := export.FilenameGenerator{Template: opts.FilenameTemplate}
		name := gen.Generate(root.Part.Name, opts.Format, nil)
		path := filepath.Join(out, name)

		f, err := os.Create(path)
		if err != nil {
			fmt.Printf("Error creating %s: %v\n", path, err)
			os.Exit(1)
		}
		defer f.Close()

		context := map[string]any{"part": root.Part.Name}
		if err := export.WriteCSV(f, root, nil, context); err != nil {
			fmt.Printf("Error writing export: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", path)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("out", "o", ".", "Output directory, or - for stdout")
	exportCmd.Flags().Int("max-depth", 10, "Maximum recursion depth")
	exportCmd.Flags().Bool("substitutes", false, "Include substitute parts")
	exportCmd.Flags().String("filename-template", "", "Go template for the output filename")
}
