package service

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// subjectRulesFile is the on-disk shape of operator-supplied overrides.
type subjectRulesFile struct {
	Rules []struct {
		Contains string `yaml:"contains"`
		Subject  string `yaml:"subject"`
	} `yaml:"rules"`
}

// LoadSubjectRules reads extra overrides from a YAML file. An empty path yields no rules.
func LoadSubjectRules(path string) ([]SubjectRule, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read subject rules: %w", err)
	}
	return ParseSubjectRules(data)
}

// ParseSubjectRules decodes YAML rules. Each rule matches against the cleaned label.
func ParseSubjectRules(data []byte) ([]SubjectRule, error) {
	var file subjectRulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse subject rules: %w", err)
	}
	rules := make([]SubjectRule, 0, len(file.Rules))
	for i, r := range file.Rules {
		contains := strings.TrimSpace(r.Contains)
		subject := strings.TrimSpace(r.Subject)
		if contains == "" || subject == "" {
			return nil, fmt.Errorf("subject rule %d: contains and subject are required", i+1)
		}
		rules = append(rules, SubjectRule{Subject: subject, CleanedContains: []string{contains}})
	}
	return rules, nil
}

// BuildSubjectCanonicalizer appends the rules from path after the built-in overrides.
func BuildSubjectCanonicalizer(path string) (*SubjectCanonicalizer, error) {
	extra, err := LoadSubjectRules(path)
	if err != nil {
		return nil, err
	}
	return NewSubjectCanonicalizer(append(DefaultSubjectRules(), extra...)), nil
}
