package feedback

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	database "reflectify_backend/internals/databases"
	"reflectify_backend/internals/databases/repository"
	formModel "reflectify_backend/internals/features/feedback/forms/model"
	helper "reflectify_backend/internals/helpers"
)

// SeedSampleForms membuat satu form DRAFT untuk setiap semester yang belum
// punya form: satu pertanyaan rating per mata kuliah + satu komentar bebas.
func SeedSampleForms(ctx context.Context, st *database.Stores) error {
	sems, err := st.Semesters.List(ctx, repository.Filter{})
	if err != nil {
		return err
	}
	for _, sem := range sems {
		has, err := repository.Exists(ctx, st.Forms, repository.Where("feedback_form_semester_id", sem.SemesterID))
		if err != nil {
			return err
		}
		if has {
			continue
		}
		subjects, err := st.Subjects.List(ctx, repository.Where("subject_semester_id", sem.SemesterID))
		if err != nil {
			return err
		}
		if len(subjects) == 0 {
			continue
		}

		qs := datatypes.JSONSlice[formModel.Question]{}
		for i, sub := range subjects {
			subID := sub.SubjectID
			qs = append(qs, formModel.Question{
				ID:        fmt.Sprintf("q%d", i+1),
				Text:      fmt.Sprintf("How would you rate the teaching of %s?", sub.SubjectName),
				Type:      formModel.QuestionTypeRating,
				SubjectID: &subID,
				Required:  true,
			})
		}
		qs = append(qs, formModel.Question{
			ID:   fmt.Sprintf("q%d", len(subjects)+1),
			Text: "Any other comments?",
			Type: formModel.QuestionTypeText,
		})

		title := fmt.Sprintf("Semester %d feedback %s", sem.SemesterNumber, sem.SemesterAcademicYear)
		slug, err := helper.UniqueSlug(ctx, helper.Slugify(title, 100), 100, func(ctx context.Context, s string) (bool, error) {
			f := repository.Where("feedback_form_slug", s)
			f.WithDeleted = true
			return repository.Exists(ctx, st.Forms, f)
		})
		if err != nil {
			return err
		}
		form := formModel.FeedbackFormModel{
			FeedbackFormID:         uuid.New(),
			FeedbackFormSemesterID: sem.SemesterID,
			FeedbackFormTitle:      title,
			FeedbackFormSlug:       slug,
			FeedbackFormDivision:   "A",
			FeedbackFormStatus:     formModel.FormStatusDraft,
			FeedbackFormQuestions:  qs,
		}
		if err := st.Forms.Create(ctx, &form); err != nil {
			return err
		}
		log.Printf("✅ Form contoh '%s' dibuat", slug)
	}
	return nil
}
