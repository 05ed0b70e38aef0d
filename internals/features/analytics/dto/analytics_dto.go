// file: internals/features/analytics/dto/analytics_dto.go
package dto

import "github.com/google/uuid"

// RatingStats: ringkasan nilai rating 1..5.
type RatingStats struct {
	Average      float64        `json:"average_rating"`
	RatingCount  int            `json:"rating_count"`
	Distribution map[string]int `json:"distribution"`
}

type Overview struct {
	Departments   int64            `json:"departments"`
	Faculties     int64            `json:"faculties"`
	Semesters     int64            `json:"semesters"`
	Subjects      int64            `json:"subjects"`
	Forms         int64            `json:"forms"`
	FormsByStatus map[string]int64 `json:"forms_by_status"`
	Responses     int64            `json:"responses"`
	Ratings       RatingStats      `json:"ratings"`
}

type SubjectRating struct {
	SubjectID     uuid.UUID `json:"subject_id"`
	SubjectName   string    `json:"subject_name"`
	SubjectCode   string    `json:"subject_code"`
	ResponseCount int       `json:"response_count"`
	RatingStats
}

type FacultyRating struct {
	FacultyID          uuid.UUID `json:"faculty_id"`
	FacultyName        string    `json:"faculty_name"`
	FacultyDesignation string    `json:"faculty_designation"`
	ResponseCount      int       `json:"response_count"`
	RatingStats
}

type SemesterTrendPoint struct {
	SemesterID     uuid.UUID `json:"semester_id"`
	SemesterNumber int       `json:"semester_number"`
	AcademicYear   string    `json:"academic_year"`
	SemesterType   string    `json:"semester_type"`
	Forms          int       `json:"forms"`
	Responses      int       `json:"responses"`
	RatingStats
}
