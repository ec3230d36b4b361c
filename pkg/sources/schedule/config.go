package schedule

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// RulesFile is the on-disk shape of a sweep configuration: one cron spec and
// the rules every run applies.
type RulesFile struct {
	Cron  string
	Rules []Rule
}

type rulesDocument struct {
	Cron  string         `yaml:"cron"`
	Rules []ruleDocument `yaml:"rules"`
}

type ruleDocument struct {
	WorkflowID string `yaml:"workflow_id"`
	FromState  string `yaml:"from_state"`
	ToState    string `yaml:"to_state"`
	OlderThan  string `yaml:"older_than"`
	Note       string `yaml:"note"`
}

// LoadRulesFile loads a sweep configuration from a YAML file. Durations use
// Go syntax, e.g. "72h".
func LoadRulesFile(path string) (RulesFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RulesFile{}, fmt.Errorf("failed to read rules file %s: %w", path, err)
	}

	var doc rulesDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return RulesFile{}, fmt.Errorf("failed to parse rules file %s: %w", path, err)
	}

	if doc.Cron == "" {
		return RulesFile{}, fmt.Errorf("rules file %s: cron spec is required", path)
	}

	if len(doc.Rules) == 0 {
		return RulesFile{}, fmt.Errorf("rules file %s: at least one rule is required", path)
	}

	file := RulesFile{Cron: doc.Cron, Rules: make([]Rule, 0, len(doc.Rules))}

	for i, rule := range doc.Rules {
		if rule.WorkflowID == "" || rule.FromState == "" || rule.ToState == "" {
			return RulesFile{}, fmt.Errorf(
				"rules file %s: rule %d needs workflow_id, from_state and to_state", path, i)
		}

		var olderThan time.Duration

		if rule.OlderThan != "" {
			olderThan, err = time.ParseDuration(rule.OlderThan)
			if err != nil {
				return RulesFile{}, fmt.Errorf("rules file %s: rule %d: %w", path, i, err)
			}
		}

		file.Rules = append(file.Rules, Rule{
			WorkflowID: rule.WorkflowID,
			FromState:  rule.FromState,
			ToState:    rule.ToState,
			OlderThan:  olderThan,
			Note:       rule.Note,
		})
	}

	return file, nil
}
