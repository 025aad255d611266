package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StandardLevel string

const (
	Standard11 StandardLevel = "STD_11"
	Standard12 StandardLevel = "STD_12"
)

type SubjectCode string

const (
	SubjectPhysics   SubjectCode = "PHYS"
	SubjectChemistry SubjectCode = "CHEM"
	SubjectMaths1    SubjectCode = "MATHS_1"
	SubjectMaths2    SubjectCode = "MATHS_2"
	SubjectBiology   SubjectCode = "BIO"
)

// AllSubjectCodes is the closed set of supported subject codes.
var AllSubjectCodes = []SubjectCode{
	SubjectPhysics,
	SubjectChemistry,
	SubjectMaths1,
	SubjectMaths2,
	SubjectBiology,
}

// Standard is an academic year level. Reference data, seeded once.
type Standard struct {
	ID       string        `json:"id" gorm:"type:uuid;primaryKey"`
	Standard StandardLevel `json:"standard" gorm:"not null;uniqueIndex" validate:"required,oneof=STD_11 STD_12"`
	Order    int           `json:"order" gorm:"not null"`
}

// Subject belongs to exactly one Standard and carries a fixed code.
type Subject struct {
	ID         string      `json:"id" gorm:"type:uuid;primaryKey"`
	Code       SubjectCode `json:"code" gorm:"not null;index:idx_subjects_standard_code,unique" validate:"required,subject_code"`
	Order      int         `json:"order" gorm:"not null"`
	StandardID string      `json:"standard_id" gorm:"type:uuid;not null;index:idx_subjects_standard_code,unique"`

	Standard Standard  `json:"-" gorm:"foreignKey:StandardID"`
	Chapters []Chapter `json:"chapters,omitempty" gorm:"foreignKey:SubjectID"`
}

// Chapter is a curriculum unit under a Subject. Chapter names are what the
// weighting rules match against.
type Chapter struct {
	ID        string `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string `json:"name" gorm:"not null;index:idx_chapters_subject_name,unique"`
	Order     int    `json:"order" gorm:"not null"`
	SubjectID string `json:"subject_id" gorm:"type:uuid;not null;index:idx_chapters_subject_name,unique"`

	Subject Subject `json:"-" gorm:"foreignKey:SubjectID"`
}

func (s *Standard) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

func (s *Subject) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

func (c *Chapter) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

func (Standard) TableName() string { return "standards" }
func (Subject) TableName() string  { return "subjects" }
func (Chapter) TableName() string  { return "chapters" }
