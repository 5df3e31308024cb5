package service

import (
	"strings"

	"github.com/noah-isme/attendance-report/internal/models"
)

// headerRule claims a header line when any keyword occurs in it. When nextLine is set and the claimed
// line has no colon, the value is read from the following line.
type headerRule struct {
	keywords     []string
	requireColon bool
	nextLine     bool
	field        func(info *models.StudentInfo) *string
}

var headerRules = []headerRule{
	{
		keywords:     []string{"Name"},
		requireColon: true,
		field:        func(info *models.StudentInfo) *string { return &info.Name },
	},
	{
		keywords: []string{"SAP ID", "Student ID"},
		nextLine: true,
		field:    func(info *models.StudentInfo) *string { return &info.ID },
	},
	{
		keywords: []string{"Program", "Programme"},
		field:    func(info *models.StudentInfo) *string { return &info.Program },
	},
	{
		keywords: []string{"Batch"},
		field:    func(info *models.StudentInfo) *string { return &info.Batch },
	},
}

// ScanStudentInfo reads student metadata from first-page text. The first rule whose keyword occurs in a
// line owns that line, and the first value found for a field is kept. A "Name" line without a colon is
// not claimed, so it may still match a later rule.
func ScanStudentInfo(text string) models.StudentInfo {
	var info models.StudentInfo
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		for _, rule := range headerRules {
			if !claims(rule, line) {
				continue
			}
			if target := rule.field(&info); *target == "" {
				*target = ruleValue(rule, lines, i)
			}
			break
		}
	}
	return info
}

func ruleValue(rule headerRule, lines []string, i int) string {
	if v, ok := afterColon(lines[i]); ok {
		return v
	}
	if rule.nextLine && i+1 < len(lines) {
		return strings.TrimSpace(lines[i+1])
	}
	return ""
}

func claims(rule headerRule, line string) bool {
	if rule.requireColon && !strings.Contains(line, ":") {
		return false
	}
	for _, kw := range rule.keywords {
		if strings.Contains(line, kw) {
			return true
		}
	}
	return false
}

func afterColon(line string) (string, bool) {
	_, value, ok := strings.Cut(line, ":")
	if !ok {
		return "", false
	}
	return strings.TrimSpace(value), true
}
