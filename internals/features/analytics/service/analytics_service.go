// file: internals/features/analytics/service/analytics_service.go
package service

import (
	"context"
	"math"
	"sort"
	"strconv"

	"github.com/google/uuid"

	"reflectify_backend/internals/databases/repository"
	deptModel "reflectify_backend/internals/features/academics/departments/model"
	facultyModel "reflectify_backend/internals/features/academics/faculties/model"
	semModel "reflectify_backend/internals/features/academics/semesters/model"
	subjectModel "reflectify_backend/internals/features/academics/subjects/model"
	"reflectify_backend/internals/features/analytics/dto"
	formModel "reflectify_backend/internals/features/feedback/forms/model"
	responseModel "reflectify_backend/internals/features/feedback/responses/model"
)

// Scope membatasi form yang dihitung. Field nil = semua.
type Scope struct {
	SemesterID   *uuid.UUID
	DepartmentID *uuid.UUID
	FormID       *uuid.UUID
}

type AnalyticsService struct {
	Departments repository.Repository[deptModel.DepartmentModel]
	Faculties   repository.Repository[facultyModel.FacultyModel]
	Semesters   repository.Repository[semModel.SemesterModel]
	Subjects    repository.Repository[subjectModel.SubjectModel]
	Forms       repository.Repository[formModel.FeedbackFormModel]
	Responses   repository.Repository[responseModel.FeedbackResponseModel]
}

// accumulator rating
type acc struct {
	sum       float64
	n         int
	dist      [formModel.RatingMax + 1]int
	responses map[uuid.UUID]struct{}
}

func newAcc() *acc { return &acc{responses: map[uuid.UUID]struct{}{}} }

func (a *acc) add(v float64, responseID uuid.UUID) {
	a.sum += v
	a.n++
	if i := int(v); i >= formModel.RatingMin && i <= formModel.RatingMax {
		a.dist[i]++
	}
	a.responses[responseID] = struct{}{}
}

func (a *acc) stats() dto.RatingStats {
	out := dto.RatingStats{RatingCount: a.n, Distribution: map[string]int{}}
	for i := formModel.RatingMin; i <= formModel.RatingMax; i++ {
		out.Distribution[strconv.Itoa(i)] = a.dist[i]
	}
	if a.n > 0 {
		out.Average = math.Round(a.sum/float64(a.n)*100) / 100
	}
	return out
}

// formsInScope: form non-DRAFT sesuai scope. DepartmentID di-resolve lewat
// semester milik departemen tsb.
func (s *AnalyticsService) formsInScope(ctx context.Context, sc Scope) ([]formModel.FeedbackFormModel, error) {
	f := repository.Filter{In: map[string][]any{
		"feedback_form_status": {string(formModel.FormStatusActive), string(formModel.FormStatusClosed)},
	}}
	if sc.FormID != nil {
		f = f.And("feedback_form_id", *sc.FormID)
	}
	if sc.SemesterID != nil {
		f = f.And("feedback_form_semester_id", *sc.SemesterID)
	}
	forms, err := s.Forms.List(ctx, f)
	if err != nil || sc.DepartmentID == nil {
		return forms, err
	}
	sems, err := s.Semesters.List(ctx, repository.Where("semester_department_id", *sc.DepartmentID))
	if err != nil {
		return nil, err
	}
	inDept := make(map[uuid.UUID]bool, len(sems))
	for _, sm := range sems {
		inDept[sm.SemesterID] = true
	}
	out := forms[:0]
	for _, fm := range forms {
		if inDept[fm.FeedbackFormSemesterID] {
			out = append(out, fm)
		}
	}
	return out, nil
}

func (s *AnalyticsService) responsesFor(ctx context.Context, forms []formModel.FeedbackFormModel) ([]responseModel.FeedbackResponseModel, error) {
	if len(forms) == 0 {
		return nil, nil
	}
	ids := make([]any, 0, len(forms))
	for _, f := range forms {
		ids = append(ids, f.FeedbackFormID)
	}
	return s.Responses.List(ctx, repository.Filter{In: map[string][]any{"feedback_response_form_id": ids}})
}

// eachRating memanggil fn untuk setiap jawaban rating yang valid.
func eachRating(forms []formModel.FeedbackFormModel, responses []responseModel.FeedbackResponseModel, fn func(form *formModel.FeedbackFormModel, q formModel.Question, r *responseModel.FeedbackResponseModel, v float64)) {
	byID := make(map[uuid.UUID]*formModel.FeedbackFormModel, len(forms))
	for i := range forms {
		byID[forms[i].FeedbackFormID] = &forms[i]
	}
	for i := range responses {
		r := &responses[i]
		form, ok := byID[r.FeedbackResponseFormID]
		if !ok {
			continue
		}
		for _, q := range form.FeedbackFormQuestions {
			if q.Type != formModel.QuestionTypeRating {
				continue
			}
			if v, ok := r.Rating(q.ID); ok {
				fn(form, q, r, v)
			}
		}
	}
}

func (s *AnalyticsService) Overview(ctx context.Context) (*dto.Overview, error) {
	out := &dto.Overview{FormsByStatus: map[string]int64{}}
	var err error
	if out.Departments, err = s.Departments.Count(ctx, repository.Filter{}); err != nil {
		return nil, err
	}
	if out.Faculties, err = s.Faculties.Count(ctx, repository.Filter{}); err != nil {
		return nil, err
	}
	if out.Semesters, err = s.Semesters.Count(ctx, repository.Filter{}); err != nil {
		return nil, err
	}
	if out.Subjects, err = s.Subjects.Count(ctx, repository.Filter{}); err != nil {
		return nil, err
	}
	for _, st := range []formModel.FormStatus{formModel.FormStatusDraft, formModel.FormStatusActive, formModel.FormStatusClosed} {
		n, err := s.Forms.Count(ctx, repository.Where("feedback_form_status", string(st)))
		if err != nil {
			return nil, err
		}
		out.FormsByStatus[string(st)] = n
		out.Forms += n
	}
	if out.Responses, err = s.Responses.Count(ctx, repository.Filter{}); err != nil {
		return nil, err
	}

	forms, err := s.formsInScope(ctx, Scope{})
	if err != nil {
		return nil, err
	}
	responses, err := s.responsesFor(ctx, forms)
	if err != nil {
		return nil, err
	}
	all := newAcc()
	eachRating(forms, responses, func(_ *formModel.FeedbackFormModel, _ formModel.Question, r *responseModel.FeedbackResponseModel, v float64) {
		all.add(v, r.FeedbackResponseID)
	})
	out.Ratings = all.stats()
	return out, nil
}

// SubjectRatings: rata-rata per mata kuliah dari pertanyaan rating yang
// punya subject_id. Urut average desc, lalu nama.
func (s *AnalyticsService) SubjectRatings(ctx context.Context, sc Scope) ([]dto.SubjectRating, error) {
	forms, err := s.formsInScope(ctx, sc)
	if err != nil {
		return nil, err
	}
	responses, err := s.responsesFor(ctx, forms)
	if err != nil {
		return nil, err
	}
	accs := map[uuid.UUID]*acc{}
	eachRating(forms, responses, func(_ *formModel.FeedbackFormModel, q formModel.Question, r *responseModel.FeedbackResponseModel, v float64) {
		if q.SubjectID == nil {
			return
		}
		a, ok := accs[*q.SubjectID]
		if !ok {
			a = newAcc()
			accs[*q.SubjectID] = a
		}
		a.add(v, r.FeedbackResponseID)
	})

	out := make([]dto.SubjectRating, 0, len(accs))
	for id, a := range accs {
		row := dto.SubjectRating{SubjectID: id, ResponseCount: len(a.responses), RatingStats: a.stats()}
		if sub, err := s.Subjects.GetUnscoped(ctx, id); err == nil {
			row.SubjectName = sub.SubjectName
			row.SubjectCode = sub.SubjectCode
		}
		out = append(out, row)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Average != out[j].Average {
			return out[i].Average > out[j].Average
		}
		return out[i].SubjectName < out[j].SubjectName
	})
	return out, nil
}

// FacultyRatings: sama seperti SubjectRatings tapi per dosen.
func (s *AnalyticsService) FacultyRatings(ctx context.Context, sc Scope) ([]dto.FacultyRating, error) {
	forms, err := s.formsInScope(ctx, sc)
	if err != nil {
		return nil, err
	}
	responses, err := s.responsesFor(ctx, forms)
	if err != nil {
		return nil, err
	}
	accs := map[uuid.UUID]*acc{}
	eachRating(forms, responses, func(_ *formModel.FeedbackFormModel, q formModel.Question, r *responseModel.FeedbackResponseModel, v float64) {
		if q.FacultyID == nil {
			return
		}
		a, ok := accs[*q.FacultyID]
		if !ok {
			a = newAcc()
			accs[*q.FacultyID] = a
		}
		a.add(v, r.FeedbackResponseID)
	})

	out := make([]dto.FacultyRating, 0, len(accs))
	for id, a := range accs {
		row := dto.FacultyRating{FacultyID: id, ResponseCount: len(a.responses), RatingStats: a.stats()}
		if fac, err := s.Faculties.GetUnscoped(ctx, id); err == nil {
			row.FacultyName = fac.FacultyName
			row.FacultyDesignation = fac.FacultyDesignation
		}
		out = append(out, row)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Average != out[j].Average {
			return out[i].Average > out[j].Average
		}
		return out[i].FacultyName < out[j].FacultyName
	})
	return out, nil
}

// SemesterTrend: satu titik per semester yang punya form, urut academic
// year lalu nomor semester.
func (s *AnalyticsService) SemesterTrend(ctx context.Context, sc Scope) ([]dto.SemesterTrendPoint, error) {
	sc.SemesterID = nil
	forms, err := s.formsInScope(ctx, sc)
	if err != nil {
		return nil, err
	}
	responses, err := s.responsesFor(ctx, forms)
	if err != nil {
		return nil, err
	}

	formCount := map[uuid.UUID]int{}
	for _, f := range forms {
		formCount[f.FeedbackFormSemesterID]++
	}
	accs := map[uuid.UUID]*acc{}
	for id := range formCount {
		accs[id] = newAcc()
	}
	respCount := map[uuid.UUID]int{}
	semOf := make(map[uuid.UUID]uuid.UUID, len(forms))
	for _, f := range forms {
		semOf[f.FeedbackFormID] = f.FeedbackFormSemesterID
	}
	for _, r := range responses {
		respCount[semOf[r.FeedbackResponseFormID]]++
	}
	eachRating(forms, responses, func(form *formModel.FeedbackFormModel, _ formModel.Question, r *responseModel.FeedbackResponseModel, v float64) {
		accs[form.FeedbackFormSemesterID].add(v, r.FeedbackResponseID)
	})

	out := make([]dto.SemesterTrendPoint, 0, len(accs))
	for id, a := range accs {
		pt := dto.SemesterTrendPoint{
			SemesterID:  id,
			Forms:       formCount[id],
			Responses:   respCount[id],
			RatingStats: a.stats(),
		}
		if sem, err := s.Semesters.GetUnscoped(ctx, id); err == nil {
			pt.SemesterNumber = sem.SemesterNumber
			pt.AcademicYear = sem.SemesterAcademicYear
			pt.SemesterType = sem.SemesterType
		}
		out = append(out, pt)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].AcademicYear != out[j].AcademicYear {
			return out[i].AcademicYear < out[j].AcademicYear
		}
		return out[i].SemesterNumber < out[j].SemesterNumber
	})
	return out, nil
}
