package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "stmctl",
	Short: "Drive a TL2-style STM region with synthetic workers",
	Long:  "stmctl creates an in-process STM region and hammers it with concurrent random transactions, reporting commit/abort statistics.",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
