package main

import (
	"fmt"
	"os"

	pipelineengine "github.com/flowctl/pipeline"
	"github.com/spf13/cobra"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:   "pipeline",
		Short: "Run and inspect pipeline interpreter scripts",
	}
	root.PersistentFlags().StringVar(&configPath, "globals", "", "path to a TOML file seeding global variables")

	root.AddCommand(runCmd())
	root.AddCommand(filtersCmd())
	root.AddCommand(hiddenCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCmd() *cobra.Command {
	var input string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "run <script>",
		Short: "Execute a pipeline script file against an input string",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			commands, err := parseScript(string(text))
			if err != nil {
				return err
			}

			pipelineengine.RegisterStdlib(pipelineengine.DefaultRegistry)

			if configPath != "" {
				globals, err := pipelineengine.LoadGlobalsFromTOML(configPath)
				if err != nil {
					return fmt.Errorf("loading globals: %w", err)
				}
				for name, g := range globals {
					pipelineengine.GlobalVariables.Set(name, g.Value, g.ReadOnly)
				}
			}

			cfg := pipelineengine.DefaultConfig()
			cfg.LoggingEnabled = verbose

			p := pipelineengine.New(cfg)
			p.Logger().SetOutput(cmd.ErrOrStderr())
			for _, c := range commands {
				p.AddCommand(c)
			}

			out, err := p.Execute(input)
			if err != nil {
				return err
			}

			fmt.Println(out)
			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "initial value of the pipeline's global variable slot")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "enable trace/debug logging from the registry, factory expander, and executor")
	return cmd
}

func filtersCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "filters",
		Short: "List registered filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			pipelineengine.RegisterStdlib(pipelineengine.DefaultRegistry)
			for _, doc := range pipelineengine.DefaultRegistry.ListFilters(category) {
				fmt.Printf("%s\t%s\n", doc.QualifiedName, doc.Description)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "restrict the listing to a single category")
	return cmd
}

func hiddenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hidden <qualified-name>",
		Short: "Show the recorded reason a filter is unavailable, if any",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pipelineengine.RegisterStdlib(pipelineengine.DefaultRegistry)
			reason, ok := pipelineengine.DefaultRegistry.HiddenReason(args[0])
			if !ok {
				fmt.Printf("%s is not hidden\n", args[0])
				return nil
			}
			fmt.Println(reason)
			return nil
		},
	}
}
