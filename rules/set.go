// Package rules loads named expression rules from YAML files and evaluates
// them against request contexts.
package rules

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"jsexpr/jsexpr"
)

var validate = validator.New()

// Rule is one named expression with its metadata. Expressions are compiled
// once at load time; Tree holds the parsed form.
type Rule struct {
	ID          string `yaml:"id" validate:"required"`
	Expr        string `yaml:"expr" validate:"required"`
	Description string `yaml:"description"`
	Severity    string `yaml:"severity" default:"warn" validate:"oneof=info warn deny"`

	Tree jsexpr.Node `yaml:"-"`
}

type ruleFile struct {
	Rules []*Rule `yaml:"rules"`
}

// Set is a collection of compiled rules keyed by ID.
type Set struct {
	rules map[string]*Rule
	order []string
}

// Load reads one YAML rule file, applies defaults, validates metadata and
// compiles every expression. Any failure is a load failure.
func Load(path string) (*Set, error) {
	set := &Set{rules: make(map[string]*Rule)}
	if err := set.addFile(path); err != nil {
		return nil, err
	}
	return set, nil
}

// LoadDir loads every *.yaml file in dir, in lexical order.
func LoadDir(dir string) (*Set, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("error reading directory: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no rule files in %s", dir)
	}
	set := &Set{rules: make(map[string]*Rule)}
	for _, file := range files {
		if err := set.addFile(file); err != nil {
			return nil, err
		}
	}
	return set, nil
}

func (s *Set) addFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading rule file: %w", err)
	}
	var file ruleFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("error unmarshalling %s: %w", path, err)
	}
	for _, rule := range file.Rules {
		if err := defaults.Set(rule); err != nil {
			return fmt.Errorf("applying defaults for rule in %s: %w", path, err)
		}
		if err := validate.Struct(rule); err != nil {
			return fmt.Errorf("invalid rule %q in %s: %w", rule.ID, path, err)
		}
		tree, err := jsexpr.Parse(rule.Expr)
		if err != nil {
			return fmt.Errorf("compiling rule %q in %s: %w", rule.ID, path, err)
		}
		rule.Tree = tree
		if _, exists := s.rules[rule.ID]; exists {
			return fmt.Errorf("duplicate rule id %q in %s", rule.ID, path)
		}
		s.rules[rule.ID] = rule
		s.order = append(s.order, rule.ID)
	}
	return nil
}

// Get returns the rule with the given ID, or nil.
func (s *Set) Get(id string) *Rule {
	return s.rules[id]
}

// IDs returns the rule IDs in load order.
func (s *Set) IDs() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Outcome is the result of evaluating one rule.
type Outcome struct {
	Rule  *Rule
	Value any
	Pass  bool
	Err   error
}

// Eval evaluates one rule by ID against the given variables and functions.
// Pass is the truthiness of the result value.
func (s *Set) Eval(ruleID string, vars map[string]any, funcs jsexpr.FuncMap) (Outcome, error) {
	rule, ok := s.rules[ruleID]
	if !ok {
		return Outcome{}, fmt.Errorf("unknown rule %q", ruleID)
	}
	return evalRule(rule, vars, funcs), nil
}

// EvalAll evaluates every rule in load order. Per-rule failures land in the
// outcome's Err field rather than aborting the batch.
func (s *Set) EvalAll(vars map[string]any, funcs jsexpr.FuncMap) []Outcome {
	outcomes := make([]Outcome, 0, len(s.order))
	for _, id := range s.order {
		outcomes = append(outcomes, evalRule(s.rules[id], vars, funcs))
	}
	return outcomes
}

func evalRule(rule *Rule, vars map[string]any, funcs jsexpr.FuncMap) Outcome {
	value, err := jsexpr.New(vars, funcs).EvaluateTree(rule.Tree)
	if err != nil {
		return Outcome{Rule: rule, Err: fmt.Errorf("evaluating rule %q: %w", rule.ID, err)}
	}
	return Outcome{Rule: rule, Value: value, Pass: jsexpr.ToBool(value)}
}
