package main

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/arthur-debert/envsync/internal/cli"
	"github.com/arthur-debert/envsync/pkg/errors"
	"github.com/arthur-debert/envsync/pkg/style"
)

func main() {
	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		if stderrors.Is(err, cli.ErrSourcingAborted) {
			// The sourcing warning is already on stderr; only the exit
			// status matters to the startup snippet.
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "%s %s\n", style.Badge(style.StatusError), style.Error(err.Error()))
		if remediation := errors.Remediation(errors.GetErrorCode(err)); remediation != "" {
			fmt.Fprintln(os.Stderr, style.Muted(remediation))
		}
		os.Exit(errors.ExitCode(err))
	}
}
