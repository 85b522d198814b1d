package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lox/interpreter-go/pkg/driver"
	"lox/interpreter-go/pkg/lexer"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens <script>",
	Short: "Dump the token stream of a script without running it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			if os.IsNotExist(err) {
				fmt.Fprintf(os.Stderr, "%s file not found\n", args[0])
				os.Exit(1)
			}
			return err
		}

		src, _ := driver.ScanPragmas(string(data)+"\n", driver.DefaultConfig())
		tokens, errs := lexer.Scan(src)
		if errs.HasErrors() {
			errorHeader.Fprintln(os.Stderr, driver.PhaseSyntax.Header())
			for _, msg := range errs.Messages() {
				fmt.Fprintf(os.Stderr, "\t%s\n", msg)
			}
			os.Exit(1)
		}
		for _, tok := range tokens {
			fmt.Println(tok)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}
