package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/mustso/portal/internal/app/models/dto"
)

// check prints a failed envelope with a retry hint and returns errReported
func check[T any](w io.Writer, env dto.Envelope[T], what string) error {
	if env.Success {
		return nil
	}
	fmt.Fprintf(w, "Failed to %s: %s\n", what, env.Error)
	fmt.Fprintln(w, "Check your connection and run the command again to retry.")
	return errReported
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
