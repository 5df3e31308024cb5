package service

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/noah-isme/attendance-report/internal/models"
)

var fixtureLabels = []string{
	"T1-AI and ML for Cybersecurity BTMT101",
	"P2-Network Security Cyber501",
	"T1-Software Engineering BT01",
	"T2-Visual Analytics MBA02",
	"P1-Introduction to Forensic Science OE301",
	"T3-Drone Technology B.Tech",
}

var fixtureMarks = []string{"P", "P", "P", "A", "", "NA"}

// recordGenerator produces raw attendance rows for property tests.
type recordGenerator struct {
	faker *gofakeit.Faker
}

func newRecordGenerator(seed int64) *recordGenerator {
	return &recordGenerator{faker: gofakeit.New(seed)}
}

func (g *recordGenerator) row(seq int) models.RawRow {
	date := g.faker.DateRange(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC))
	hour := g.faker.IntRange(8, 16)
	return models.RawRow{
		fmt.Sprintf("%d", seq),
		g.faker.RandomString(fixtureLabels),
		date.Format("2006-01-02"),
		fmt.Sprintf("%02d:00", hour),
		fmt.Sprintf("%02d:00", hour+1),
		g.faker.RandomString(fixtureMarks),
	}
}

func (g *recordGenerator) records(n int) []models.LectureRecord {
	normalizer := NewRecordNormalizer(nil)
	records := make([]models.LectureRecord, 0, n)
	for i := 1; i <= n; i++ {
		rec, ok := normalizer.Accept(g.row(i))
		if ok {
			records = append(records, rec)
		}
	}
	return records
}
