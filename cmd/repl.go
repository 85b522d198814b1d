package cmd

import (
	"bufio"
	"fmt"
	"os"

	"golang.org/x/term"

	"lox/interpreter-go/pkg/driver"
	"lox/interpreter-go/pkg/runtime"
)

// runPrompt reads one line at a time and runs it against a global
// environment that persists for the whole session. A failed run does not end
// the session; the next line starts with the bindings that survived.
func runPrompt(cfg driver.Config) error {
	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	scanner := bufio.NewScanner(os.Stdin)
	var env *runtime.Environment

	for {
		if interactive {
			fmt.Print(">>> ")
		}
		if !scanner.Scan() {
			if interactive {
				fmt.Println()
			}
			return scanner.Err()
		}

		result := driver.Run(scanner.Text()+"\n", cfg, os.Stdout, os.Stdout, env)
		if result.Failed() {
			reportDiagnostics(os.Stderr, result)
		}
		env = result.Env
	}
}
