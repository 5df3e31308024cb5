package service

import "github.com/noah-isme/attendance-report/internal/models"

// Aggregate folds records into per-subject buckets in a single sequential pass. Buckets are created on
// first sight of a subject; lecture and absence order follow the input.
func Aggregate(records []models.LectureRecord) map[string]*models.SubjectStats {
	subjects := make(map[string]*models.SubjectStats)
	for _, rec := range records {
		stats, ok := subjects[rec.CanonicalSubject]
		if !ok {
			stats = models.NewSubjectStats(rec.CanonicalSubject)
			subjects[rec.CanonicalSubject] = stats
		}
		stats.Add(rec)
	}
	return subjects
}
