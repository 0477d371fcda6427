package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"toolwizard-cli/internal/app"
)

// Build-time variables injected via ldflags
var (
	version   = "dev"
	commit    = "unknown"
	date      = "unknown"
	goVersion = runtime.Version()
)

var rootCmd = &cobra.Command{
	Use:   "toolwizard",
	Short: "An interactive wizard for scaffolding MATLAB analysis tools",
	Long: `Toolwizard walks you through creating a MATLAB tool skeleton: it asks for
a tool name, a destination directory, and an optional input data file,
validates every answer before moving on, and generates a source stub and
README from bundled templates.

All tool details are collected through the dialogue; there are no flags
for them. The --config flag points at an optional settings file
controlling the default output path, the required input extension, and a
template override directory.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Check if version flag is set
		if versionFlag, _ := cmd.Flags().GetBool("version"); versionFlag {
			versionCmd.Run(cmd, args)
			return nil
		}

		configPath, err := configPathFromFlags(cmd)
		if err != nil {
			return fmt.Errorf("invalid arguments: %w", err)
		}

		return app.Run(configPath)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  "Print detailed version information including build version, commit, date, and platform details.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("toolwizard version %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built: %s\n", date)
		fmt.Printf("  go version: %s\n", goVersion)
		fmt.Printf("  platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List available templates",
	Long:  "List the templates bundled into the binary and any overrides found in the configured templates_location directory.",
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, err := configPathFromFlags(cmd)
		if err != nil {
			return fmt.Errorf("invalid arguments: %w", err)
		}

		return app.ListTemplates(configPath)
	},
}

func init() {
	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(templatesCmd)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file path (default ~/.config/toolwizard/config.toml)")
	rootCmd.PersistentFlags().BoolP("version", "v", false, "print version information")
}

// configPathFromFlags extracts the settings file path from command flags
func configPathFromFlags(cmd *cobra.Command) (string, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return "", fmt.Errorf("invalid config flag: %w", err)
	}
	return configPath, nil
}

func main() {
	// Disable usage on error to show only our custom error messages
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
