package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/alfredjeanlab/maintgraph/internal/model"
)

// LoadRuleSet returns the built-in rule set, overlaid with the TOML file at
// path when path is non-empty. Keys present in the file replace the built-in
// value; a list such as smart_keys is replaced as a whole. Unknown keys are
// rejected and the result is validated.
func LoadRuleSet(path string) (model.RuleSet, error) {
	rs := model.DefaultRuleSet()
	if path == "" {
		return rs, nil
	}

	md, err := toml.DecodeFile(path, &rs)
	if err != nil {
		return model.RuleSet{}, fmt.Errorf("read rules %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return model.RuleSet{}, fmt.Errorf("read rules %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := model.ValidateRuleSet(&rs); err != nil {
		return model.RuleSet{}, fmt.Errorf("rules %s: %w", path, err)
	}
	return rs, nil
}
