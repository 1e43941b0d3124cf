package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"jsexpr/funcs"
	"jsexpr/jsexpr"
)

const historyFile = ".jsexpr_history"

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive expression prompt",
	RunE: func(cmd *cobra.Command, args []string) error {
		vars, err := loadContext(contextFile)
		if err != nil {
			return err
		}
		runREPL(vars)
		return nil
	},
}

func init() {
	replCmd.Flags().StringVarP(&contextFile, "context", "c", "", "JSON file providing the variable context")
}

func runREPL(vars map[string]any) {
	fmt.Println("jsexpr repl, :quit to exit")

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	ev := jsexpr.New(vars, funcs.Defaults())

	for {
		line, err := ln.Prompt("> ")
		if err != nil {
			fmt.Println()
			break
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			if trimmed == ":quit" || trimmed == ":q" {
				break
			}
			fmt.Println("commands: :quit")
			continue
		}

		value, err := ev.Evaluate(line)
		if err != nil {
			fmt.Println(err)
			continue
		}
		fmt.Println(renderValue(value))

		ln.AppendHistory(line)
	}

	if f, err := os.Create(histPath); err == nil {
		_, _ = ln.WriteHistory(f)
		_ = f.Close()
	}
}
