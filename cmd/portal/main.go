// Command portal is a command-line client for the university portal API.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mustso/portal/internal/bootstrap"
	"github.com/mustso/portal/internal/config"
	"github.com/mustso/portal/internal/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	configPath string
	envFile    string
	dataSource string
	verbose    bool

	app *bootstrap.Client
)

// errReported marks a failure whose message was already printed
var errReported = errors.New("command failed")

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "portal",
	Short: "University portal client",
	Long: `Browse announcements, leaders and colleges from the portal API.

Use --data-source mock (or PORTAL_DATA_SOURCE=mock) to work against the
built-in seeded gateway instead of a live server.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func setup(cmd *cobra.Command, args []string) error {
	var envFiles []string
	if envFile != "" {
		envFiles = append(envFiles, envFile)
	}
	if dataSource != "" {
		os.Setenv("PORTAL_DATA_SOURCE", dataSource)
	}

	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath, envFiles...)
	if err != nil {
		return err
	}
	if verbose {
		cfg.Logging.Level = string(logger.DebugLevel)
		lgr = bootstrap.SetupLogger(cfg)
	}

	app, err = bootstrap.BuildClient(cmd.Context(), cfg, lgr)
	return err
}

// execute runs the root command with args. The client is closed on every
// path; cobra skips post-run hooks when a command fails.
func execute(args []string, stdout, stderr io.Writer) error {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	app = nil
	err := rootCmd.Execute()
	if app != nil {
		if cerr := app.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close session store: %w", cerr)
		}
	}
	return err
}

// now anchors relative timestamp labels
func now() time.Time {
	return time.Now()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.GetEnv("PORTAL_CONFIG", "configs/config.yaml"), "Config file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env", "", "Load environment variables from a .env file")
	rootCmd.PersistentFlags().StringVar(&dataSource, "data-source", "", "Data source: live or mock")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd)
	rootCmd.AddCommand(announcementsCmd)
	rootCmd.AddCommand(leadersCmd)
	rootCmd.AddCommand(collegesCmd)
	rootCmd.AddCommand(directoryCmd)
}

func main() {
	if err := execute(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
