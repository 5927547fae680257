package naming

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/navikt/otel-argbind/binding"
)

// ErrInvalidRule is returned for rules that are neither a list nor a map of names.
var ErrInvalidRule = errors.New("naming: invalid rule")

// Rule names the parameters of one method, either positionally or by parameter name.
type Rule struct {
	Positional []string
	ByName     map[string]string
}

// UnmarshalYAML accepts a sequence of attribute names or a mapping from parameter name
// to attribute name.
func (r *Rule) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		return node.Decode(&r.Positional)
	case yaml.MappingNode:
		return node.Decode(&r.ByName)
	default:
		return fmt.Errorf("%w: line %d: expected a list or a map", ErrInvalidRule, node.Line)
	}
}

// Rules maps methods to their naming rule. Keys are either "Class.method" or the fully
// qualified signature "Class.method(String,int[])" to tell overloads apart; the
// signature form wins.
type Rules map[string]Rule

// LoadRules reads rules from YAML.
func LoadRules(r io.Reader) (Rules, error) {
	var rules Rules
	if err := yaml.NewDecoder(r).Decode(&rules); err != nil {
		if errors.Is(err, io.EOF) {
			return Rules{}, nil
		}
		return nil, fmt.Errorf("decode naming rules: %w", err)
	}
	return rules, nil
}

// LoadRulesFile reads rules from a YAML file.
func LoadRulesFile(path string) (Rules, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open naming rules: %w", err)
	}
	defer f.Close()
	return LoadRules(f)
}

// AttributeNames implements binding.NamingStrategy. Methods without a rule are not
// bound.
func (r Rules) AttributeNames(m *binding.Method, params []binding.Parameter) []string {
	rule, ok := r[m.String()]
	if !ok {
		rule, ok = r[m.FullName()]
	}
	if !ok {
		return nil
	}
	if rule.Positional != nil {
		return rule.Positional
	}
	names := make([]string, len(params))
	for i, p := range params {
		if p.Name != "" {
			names[i] = rule.ByName[p.Name]
		}
	}
	return names
}
