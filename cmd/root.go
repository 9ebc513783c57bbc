package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/depscope/depscope/cmd/analyze"
	"github.com/depscope/depscope/cmd/focus"
	"github.com/depscope/depscope/cmd/metrics"
	"github.com/depscope/depscope/cmd/unused"
	"github.com/depscope/depscope/cmd/watch"
)

// version is set via build-time ldflags
var version = "dev"

// buildDate is set via build-time ldflags
var buildDate = "unknown"

// commit is set via build-time ldflags
var commit = "unknown"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "depscope",
	Short: "Analyze Python project import dependency graphs",
	Long: `Depscope builds a file-level import dependency graph for a Python
project and answers reachability, neighborhood and degree queries over it.
External and standard-library imports are excluded; the graph models only
intra-project file dependencies.

Use 'depscope --help' to see all available commands, or 'depscope <command> --help'
for detailed information about a specific command.`,
	Version: version,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(analyze.Cmd)
	rootCmd.AddCommand(unused.Cmd)
	rootCmd.AddCommand(focus.Cmd)
	rootCmd.AddCommand(metrics.Cmd)
	rootCmd.AddCommand(watch.Cmd)

	if rootCmd.Annotations == nil {
		rootCmd.Annotations = make(map[string]string)
	}
	rootCmd.Annotations["buildDate"] = buildDate
	rootCmd.Annotations["commit"] = commit

	rootCmd.Version = version
	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
Build date: {{printf "%s" (index .Annotations "buildDate")}}
Commit: {{printf "%s" (index .Annotations "commit")}}
`)
}
