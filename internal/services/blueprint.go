package services

import "github.com/cetprep/mocktest-service/internal/models"

// SectionTemplate describes one timed section of an exam composition: which
// subjects contribute, the total question count and the time limit.
type SectionTemplate struct {
	Subjects    []models.SubjectCode
	Count       int
	TimeMinutes int
}

// examBlueprints holds the two supported exam compositions.
var examBlueprints = map[models.TestType][]SectionTemplate{
	models.TestTypePCM: {
		{Subjects: []models.SubjectCode{models.SubjectPhysics, models.SubjectChemistry}, Count: 100, TimeMinutes: 90},
		{Subjects: []models.SubjectCode{models.SubjectMaths1, models.SubjectMaths2}, Count: 50, TimeMinutes: 90},
	},
	models.TestTypePCB: {
		{Subjects: []models.SubjectCode{models.SubjectPhysics, models.SubjectChemistry}, Count: 100, TimeMinutes: 90},
		{Subjects: []models.SubjectCode{models.SubjectBiology}, Count: 100, TimeMinutes: 90},
	},
}

// BlueprintFor returns the section templates for an exam type.
func BlueprintFor(testType models.TestType) ([]SectionTemplate, error) {
	blueprint, ok := examBlueprints[testType]
	if !ok {
		return nil, ErrUnknownTestType
	}
	return blueprint, nil
}
