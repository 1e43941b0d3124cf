package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"jsexpr/funcs"
	"jsexpr/jsexpr"
	"jsexpr/rules"
)

var contextFile string

var evalCmd = &cobra.Command{
	Use:   "eval EXPR",
	Short: "Evaluate one expression and print the result as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		vars, err := loadContext(contextFile)
		if err != nil {
			return err
		}
		value, err := jsexpr.New(vars, funcs.Defaults()).Evaluate(args[0])
		if err != nil {
			return err
		}
		fmt.Println(renderValue(value))
		return nil
	},
}

func init() {
	evalCmd.Flags().StringVarP(&contextFile, "context", "c", "", "JSON file providing the variable context")
}

func loadContext(path string) (map[string]any, error) {
	if path == "" {
		return nil, nil
	}
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading context file: %w", err)
	}
	return rules.ContextFromJSON(payload)
}

// renderValue prints a result as JSON. Non-finite numbers have no JSON
// form, so they fall back to their JavaScript names.
func renderValue(v any) string {
	out, err := json.Marshal(v)
	if err != nil {
		return jsexpr.ToString(v)
	}
	return string(out)
}
