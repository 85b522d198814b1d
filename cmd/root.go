package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"lox/interpreter-go/pkg/driver"
)

var (
	tokDebug   bool
	parseDebug bool
	envDebug   bool
	errorLimit int
)

var errorHeader = color.New(color.FgRed, color.Bold)

var rootCmd = &cobra.Command{
	Use:   "lox [script]",
	Short: "Tree-walking interpreter for the lox language",
	Long: `lox runs a script when given a path, or starts an interactive
prompt when given none. Debug switches can come from flags, from a lox.yml
in the working directory, or from #pragma directives inside a script.
`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if len(args) == 1 {
			return runFile(args[0], cfg)
		}
		return runPrompt(cfg)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&tokDebug, "tok-debug", false, "dump the token stream before parsing")
	rootCmd.PersistentFlags().BoolVar(&parseDebug, "parse-debug", false, "dump the parsed tree before interpretation")
	rootCmd.PersistentFlags().BoolVar(&envDebug, "env-debug", false, "dump the global environment after the run")
	rootCmd.PersistentFlags().IntVar(&errorLimit, "limit", 0, "parser diagnostic capacity (0 uses the configured default)")
}

// loadConfig merges lox.yml with any explicitly set flags; flags win.
func loadConfig(cmd *cobra.Command) (driver.Config, error) {
	cfg, err := driver.LoadConfig(".")
	if err != nil {
		return cfg, err
	}
	flags := cmd.Flags()
	if flags.Changed("tok-debug") {
		cfg.TokenDebug = tokDebug
	}
	if flags.Changed("parse-debug") {
		cfg.ParseDebug = parseDebug
	}
	if flags.Changed("env-debug") {
		cfg.EnvDebug = envDebug
	}
	if flags.Changed("limit") && errorLimit > 0 {
		cfg.ParserErrorLimit = errorLimit
	}
	return cfg, nil
}

func runFile(path string, cfg driver.Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "%s file not found\n", path)
			os.Exit(1)
		}
		return err
	}

	src, cfg := driver.ScanPragmas(string(data), cfg)
	result := driver.Run(src, cfg, os.Stdout, os.Stdout, nil)
	if result.Failed() {
		reportDiagnostics(os.Stderr, result)
		os.Exit(1)
	}
	return nil
}

func reportDiagnostics(w io.Writer, result driver.Result) {
	errorHeader.Fprintln(w, result.Phase.Header())
	for _, msg := range result.Diagnostics {
		fmt.Fprintf(w, "\t%s\n", msg)
	}
}
