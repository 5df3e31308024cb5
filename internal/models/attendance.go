package models

// AttendanceMark classifies a single lecture for a student.
type AttendanceMark string

const (
	MarkPresent AttendanceMark = "present"
	MarkAbsent  AttendanceMark = "absent"
	MarkUnknown AttendanceMark = "unknown"
)

// ParseAttendanceMark maps the literal cell value onto a mark. Only "P" and "A" are recognised;
// anything else, including an empty cell, is Unknown.
func ParseAttendanceMark(raw string) AttendanceMark {
	switch raw {
	case "P":
		return MarkPresent
	case "A":
		return MarkAbsent
	default:
		return MarkUnknown
	}
}

// Valid returns true when the mark is a supported value.
func (m AttendanceMark) Valid() bool {
	switch m {
	case MarkPresent, MarkAbsent, MarkUnknown:
		return true
	default:
		return false
	}
}

// RawRow is one table row exactly as extracted, before classification.
type RawRow []string

// LectureRecord is a canonical, accepted attendance row.
type LectureRecord struct {
	SequenceNumber   int            `json:"sr_no"`
	RawCourseLabel   string         `json:"course"`
	CanonicalSubject string         `json:"subject"`
	Date             string         `json:"date"`
	StartTime        string         `json:"start_time"`
	EndTime          string         `json:"end_time"`
	RawMark          string         `json:"attendance"`
	Mark             AttendanceMark `json:"mark"`
}

// SubjectStats accumulates the lectures of one canonical subject.
type SubjectStats struct {
	Subject     string          `json:"subject"`
	Total       int             `json:"total"`
	Present     int             `json:"present"`
	Absent      int             `json:"absent"`
	AbsentDates []string        `json:"absent_dates"`
	Lectures    []LectureRecord `json:"lectures"`
}

// NewSubjectStats creates an empty bucket for subject.
func NewSubjectStats(subject string) *SubjectStats {
	return &SubjectStats{
		Subject:     subject,
		AbsentDates: []string{},
		Lectures:    []LectureRecord{},
	}
}

// Add folds one lecture into the bucket.
func (s *SubjectStats) Add(rec LectureRecord) {
	s.Total++
	s.Lectures = append(s.Lectures, rec)
	switch rec.Mark {
	case MarkPresent:
		s.Present++
	case MarkAbsent:
		s.Absent++
		s.AbsentDates = append(s.AbsentDates, rec.Date)
	}
}

// Unknown counts lectures that were neither present nor absent.
func (s *SubjectStats) Unknown() int {
	return s.Total - s.Present - s.Absent
}

// Percentage is present/total*100, or 0 for an empty bucket.
func (s *SubjectStats) Percentage() float64 {
	return Percentage(s.Present, s.Total)
}

// Percentage returns present/total*100, defined as 0 when total is 0.
func Percentage(present, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(present) / float64(total) * 100
}
