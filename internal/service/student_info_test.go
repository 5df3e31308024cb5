package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/attendance-report/internal/models"
)

func TestScanStudentInfo(t *testing.T) {
	text := "STUDENT ATTENDANCE\nName : Jane Doe\nSAP ID\n70012345\nProgramme : B.Tech Cyber Security\nBatch : 2022-2026\n"

	assert.Equal(t, models.StudentInfo{
		Name:    "Jane Doe",
		ID:      "70012345",
		Program: "B.Tech Cyber Security",
		Batch:   "2022-2026",
	}, ScanStudentInfo(text))
}

func TestScanStudentInfoInlineID(t *testing.T) {
	info := ScanStudentInfo("Student ID: S-42\nBatch 2023")
	assert.Equal(t, "S-42", info.ID)
	assert.Empty(t, info.Batch)
}

func TestScanStudentInfoFirstRuleOwnsLine(t *testing.T) {
	// The name rule claims this line, so the program keyword on it is ignored.
	info := ScanStudentInfo("Program Name: Cyber Security")
	assert.Equal(t, "Cyber Security", info.Name)
	assert.Empty(t, info.Program)
}

func TestScanStudentInfoNameWithoutColonFallsThrough(t *testing.T) {
	info := ScanStudentInfo("Programme Name\nProgram: MBA")
	assert.Empty(t, info.Name)
	assert.Equal(t, "MBA", info.Program)
}

func TestScanStudentInfoFirstValueWins(t *testing.T) {
	info := ScanStudentInfo("Name : Jane Doe\nGuardian Name : John Doe\nBatch :\nBatch : 2022")
	assert.Equal(t, "Jane Doe", info.Name)
	// An empty value does not fill the field, so a later line still can.
	assert.Equal(t, "2022", info.Batch)
}

func TestScanStudentInfoEmpty(t *testing.T) {
	assert.Equal(t, models.StudentInfo{}, ScanStudentInfo(""))
}
