package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/all-dot-files/tictoc/pkg/errors"
)

// PrintError prints the error in a user-friendly format
func PrintError(err error) {
	printError(os.Stderr, err)
}

func printError(w io.Writer, err error) {
	if err == nil {
		return
	}

	red := color.New(color.FgRed, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	dim := color.New(color.FgHiBlack).SprintFunc()

	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		fmt.Fprintf(w, "%s %s\n", red("Error:"), appErr.Message)

		if appErr.Suggestion != "" {
			fmt.Fprintf(w, "\n%s %s\n", yellow("Suggestion:"), appErr.Suggestion)
		}

		if IsDebug() {
			fmt.Fprintf(w, "\n%s\n", dim("--- Debug Info ---"))
			fmt.Fprintf(w, "%s Code: %s\n", dim("•"), appErr.Code)
			fmt.Fprintf(w, "%s Op:   %s\n", dim("•"), appErr.Op)
			if appErr.Err != nil {
				fmt.Fprintf(w, "%s Cause: %+v\n", dim("•"), appErr.Err)
			}
		}
		return
	}

	fmt.Fprintf(w, "%s %s\n", red("Error:"), err.Error())
	if IsDebug() {
		fmt.Fprintf(w, "\n%s %+v\n", dim("Debug:"), err)
	}
}
