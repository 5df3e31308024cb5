package service

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/cloudflare/ahocorasick"

	"github.com/noah-isme/attendance-report/internal/models"
)

const minRecordCells = 6

var (
	sectionCodePattern  = regexp.MustCompile(`[TP]{1,2}\d+\s*-?\s*`)
	degreeMarkerPattern = regexp.MustCompile(`(BT|BTech|B\.Tech).*`)
	cohortMarkerPattern = regexp.MustCompile(`(Cyber|OE\d+|BTMT\d+|MBA).*`)
)

// SubjectRule maps labels containing fragments onto a canonical subject. A rule matches when every
// CleanedContains fragment occurs in the cleaned label, or when every RawContains fragment occurs in
// the untouched label. Empty fragment lists never match.
type SubjectRule struct {
	Subject         string
	CleanedContains []string
	RawContains     []string
}

// DefaultSubjectRules are the built-in overrides in priority order.
func DefaultSubjectRules() []SubjectRule {
	return []SubjectRule{
		{
			Subject:         "AI and ML for Cybersecurity",
			CleanedContains: []string{"AI and ML"},
			RawContains:     []string{"Cybersecurity", "AI"},
		},
		{Subject: "Network Security", CleanedContains: []string{"Network Security"}},
		{Subject: "Visual Analytics", CleanedContains: []string{"Visual Analytics"}},
		{Subject: "Software Engineering", CleanedContains: []string{"Software Engineering"}},
		{Subject: "Cybersecurity Fundamentals", CleanedContains: []string{"Cybersecurity Fundamentals"}},
		{Subject: "Introduction to Forensic Science", CleanedContains: []string{"Forensic"}},
		{Subject: "Drone Technology", CleanedContains: []string{"Drone"}},
	}
}

// SubjectCanonicalizer turns free-form course titles into canonical subject names.
type SubjectCanonicalizer struct {
	rules     []SubjectRule
	fragments []string
	index     map[string]int
	matcher   *ahocorasick.Matcher
}

// NewSubjectCanonicalizer builds a canonicalizer whose rules are evaluated in the given order.
func NewSubjectCanonicalizer(rules []SubjectRule) *SubjectCanonicalizer {
	c := &SubjectCanonicalizer{
		rules: rules,
		index: make(map[string]int),
	}
	for _, rule := range rules {
		for _, fragment := range append(append([]string{}, rule.CleanedContains...), rule.RawContains...) {
			if fragment == "" {
				continue
			}
			if _, ok := c.index[fragment]; ok {
				continue
			}
			c.index[fragment] = len(c.fragments)
			c.fragments = append(c.fragments, fragment)
		}
	}
	if len(c.fragments) > 0 {
		c.matcher = ahocorasick.NewStringMatcher(c.fragments)
	}
	return c
}

// Rules returns the rules in evaluation order.
func (c *SubjectCanonicalizer) Rules() []SubjectRule {
	return append([]SubjectRule(nil), c.rules...)
}

// CleanCourseName strips section codes and program markers from label, then applies the override rules.
// Labels no rule claims keep their cleaned text.
func (c *SubjectCanonicalizer) CleanCourseName(label string) string {
	cleaned := StripCourseLabel(label)

	cleanedHits := c.hits(cleaned)
	rawHits := c.hits(label)
	for _, rule := range c.rules {
		if containsAll(cleanedHits, rule.CleanedContains) || containsAll(rawHits, rule.RawContains) {
			return rule.Subject
		}
	}
	return cleaned
}

// StripCourseLabel performs the textual cleanup steps without any override rules.
func StripCourseLabel(label string) string {
	cleaned := sectionCodePattern.ReplaceAllString(label, "")
	cleaned = degreeMarkerPattern.ReplaceAllString(cleaned, "")
	cleaned = cohortMarkerPattern.ReplaceAllString(cleaned, "")
	return strings.TrimSpace(cleaned)
}

func (c *SubjectCanonicalizer) hits(text string) map[string]bool {
	found := make(map[string]bool)
	if c.matcher == nil || text == "" {
		return found
	}
	matches := c.matcher.MatchThreadSafe([]byte(text))
	for _, idx := range matches {
		if idx >= 0 && idx < len(c.fragments) {
			found[c.fragments[idx]] = true
		}
	}
	return found
}

func containsAll(hits map[string]bool, fragments []string) bool {
	if len(fragments) == 0 {
		return false
	}
	for _, fragment := range fragments {
		if !hits[fragment] {
			return false
		}
	}
	return true
}

// RecordNormalizer classifies raw table rows into lecture records.
type RecordNormalizer struct {
	subjects *SubjectCanonicalizer
}

// NewRecordNormalizer constructs a normalizer. A nil canonicalizer falls back to the built-in rules.
func NewRecordNormalizer(subjects *SubjectCanonicalizer) *RecordNormalizer {
	if subjects == nil {
		subjects = NewSubjectCanonicalizer(DefaultSubjectRules())
	}
	return &RecordNormalizer{subjects: subjects}
}

// Accept turns row into a lecture record. Rows that are too short or whose first cell is not a positive
// integer are rejected with ok=false; rejection is never an error.
func (n *RecordNormalizer) Accept(row models.RawRow) (models.LectureRecord, bool) {
	if len(row) < minRecordCells {
		return models.LectureRecord{}, false
	}
	seq, ok := parseSequenceNumber(row[0])
	if !ok {
		return models.LectureRecord{}, false
	}

	course := strings.TrimSpace(row[1])
	rawMark := strings.TrimSpace(row[5])
	return models.LectureRecord{
		SequenceNumber:   seq,
		RawCourseLabel:   course,
		CanonicalSubject: n.subjects.CleanCourseName(course),
		Date:             strings.TrimSpace(row[2]),
		StartTime:        strings.TrimSpace(row[3]),
		EndTime:          strings.TrimSpace(row[4]),
		RawMark:          rawMark,
		Mark:             models.ParseAttendanceMark(rawMark),
	}, true
}

// parseSequenceNumber accepts ASCII digits only, so signs and spaces inside the cell reject the row.
func parseSequenceNumber(cell string) (int, bool) {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return 0, false
	}
	for _, r := range trimmed {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	seq, err := strconv.Atoi(trimmed)
	if err != nil || seq <= 0 {
		return 0, false
	}
	return seq, true
}
