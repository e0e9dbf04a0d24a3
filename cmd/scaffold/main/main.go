package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/scaffold/cmd/scaffold"
	"github.com/arthur-debert/scaffold/pkg/errors"
	"github.com/arthur-debert/scaffold/pkg/ui/styles"
)

func main() {
	rootCmd := scaffold.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		errorStyle := styles.GetStyle("Error")
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		if code := errors.GetErrorCode(err); code != errors.ErrUnknown {
			fmt.Fprintln(os.Stderr, styles.Render("Muted", "code: "+string(code)))
		}
		os.Exit(1)
	}
}
