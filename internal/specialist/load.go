package specialist

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
)

// ErrEmptyTable is returned when a rules file declares no usable rules
var ErrEmptyTable = errors.New("specialty table has no rules")

type rulesFile struct {
	Rules []Rule `toml:"rule"`
}

// LoadRules reads an ordered specialty table from a TOML file:
//
//	[[rule]]
//	keyword = "chest pain"
//	specialty = "Cardiologist"
//
// Order in the file is precedence order.
func LoadRules(path string) ([]Rule, error) {
	var f rulesFile
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("failed to decode specialty table %s: %w", path, err)
	}
	return validRules(f.Rules)
}

// ParseRules is LoadRules for in-memory TOML
func ParseRules(data string) ([]Rule, error) {
	var f rulesFile
	if _, err := toml.Decode(data, &f); err != nil {
		return nil, fmt.Errorf("failed to decode specialty table: %w", err)
	}
	return validRules(f.Rules)
}

func validRules(rules []Rule) ([]Rule, error) {
	for i, r := range rules {
		if r.Keyword == "" || r.Specialty == "" {
			return nil, fmt.Errorf("rule %d: keyword and specialty are required", i+1)
		}
	}
	if len(rules) == 0 {
		return nil, ErrEmptyTable
	}
	return rules, nil
}
