package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "jsexpr",
	Short: "jsexpr - JavaScript expression evaluator",
	Long: `jsexpr evaluates a safe subset of JavaScript expressions against a
variable context and a registry of host functions.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(replCmd)
}
