// file: internals/features/feedback/forms/controller/form_controller.go
package controller

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"reflectify_backend/internals/databases/repository"
	facultyModel "reflectify_backend/internals/features/academics/faculties/model"
	semModel "reflectify_backend/internals/features/academics/semesters/model"
	subjectModel "reflectify_backend/internals/features/academics/subjects/model"
	"reflectify_backend/internals/features/feedback/forms/dto"
	"reflectify_backend/internals/features/feedback/forms/model"
	"reflectify_backend/internals/features/feedback/forms/service"
	helper "reflectify_backend/internals/helpers"
	"reflectify_backend/internals/helpers/datatable"
)

const slugMaxLen = 100

type FormController struct {
	Repo      repository.Repository[model.FeedbackFormModel]
	Semesters repository.Repository[semModel.SemesterModel]
	Faculties repository.Repository[facultyModel.FacultyModel]
	Subjects  repository.Repository[subjectModel.SubjectModel]
	Service   *service.FormService
	Validator *validator.Validate
}

func NewFormController(
	repo repository.Repository[model.FeedbackFormModel],
	semesters repository.Repository[semModel.SemesterModel],
	faculties repository.Repository[facultyModel.FacultyModel],
	subjects repository.Repository[subjectModel.SubjectModel],
	svc *service.FormService,
) *FormController {
	return &FormController{
		Repo:      repo,
		Semesters: semesters,
		Faculties: faculties,
		Subjects:  subjects,
		Service:   svc,
		Validator: helper.NewValidator(),
	}
}

var formColumns = []datatable.Column[model.FeedbackFormModel]{
	{Key: "title", Header: "Title", Sortable: true, Field: func(f model.FeedbackFormModel) any { return f.FeedbackFormTitle }},
	{Key: "slug", Header: "Slug", Sortable: true, Field: func(f model.FeedbackFormModel) any { return f.FeedbackFormSlug }},
	{Key: "division", Header: "Division", Sortable: true, Field: func(f model.FeedbackFormModel) any { return f.FeedbackFormDivision }},
	{Key: "status", Header: "Status", Sortable: true, Field: func(f model.FeedbackFormModel) any { return string(f.FeedbackFormStatus) }},
	{Key: "end_date", Header: "Ends", Sortable: true, Field: func(f model.FeedbackFormModel) any { return f.FeedbackFormEndDate }},
	{Key: "created_at", Header: "Created", Sortable: true, Field: func(f model.FeedbackFormModel) any { return f.FeedbackFormCreatedAt }},
}

func (ctl *FormController) slugTaken(ctx context.Context, slug string) (bool, error) {
	f := repository.Where("feedback_form_slug", slug)
	f.WithDeleted = true
	return repository.Exists(ctx, ctl.Repo, f)
}

func (ctl *FormController) ensureSemester(c *fiber.Ctx, id uuid.UUID) (bool, error) {
	found, err := repository.Exists(c.UserContext(), ctl.Semesters, repository.Where("semester_id", id))
	if err != nil {
		return false, helper.JsonDBError(c, err, "Gagal cek semester")
	}
	if !found {
		return false, helper.JsonError(c, fiber.StatusBadRequest, "Semester tidak ditemukan")
	}
	return true, nil
}

// checkQuestions: id unik, faculty/subject yang dirujuk harus ada.
func (ctl *FormController) checkQuestions(c *fiber.Ctx, qs []dto.QuestionDTO) (bool, error) {
	if dup := dto.DuplicateQuestionIDs(qs); len(dup) > 0 {
		return false, helper.JsonValidationError(c, map[string][]string{
			"feedback_form_questions": {"duplicate id: " + strings.Join(dup, ", ")},
		})
	}
	ctx := c.UserContext()
	for _, q := range qs {
		if q.FacultyID != nil {
			found, err := repository.Exists(ctx, ctl.Faculties, repository.Where("faculty_id", *q.FacultyID))
			if err != nil {
				return false, helper.JsonDBError(c, err, "Gagal cek dosen")
			}
			if !found {
				return false, helper.JsonError(c, fiber.StatusBadRequest, "Dosen pada pertanyaan tidak ditemukan")
			}
		}
		if q.SubjectID != nil {
			found, err := repository.Exists(ctx, ctl.Subjects, repository.Where("subject_id", *q.SubjectID))
			if err != nil {
				return false, helper.JsonDBError(c, err, "Gagal cek mata kuliah")
			}
			if !found {
				return false, helper.JsonError(c, fiber.StatusBadRequest, "Mata kuliah pada pertanyaan tidak ditemukan")
			}
		}
	}
	return true, nil
}

// lifecycleError memetakan error transisi status ke response.
func lifecycleError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, service.ErrNotDraft), errors.Is(err, service.ErrNotActive):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, service.ErrNoQuestions), errors.Is(err, service.ErrEndInThePast):
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	default:
		return helper.JsonDBError(c, err, fallback)
	}
}

// GET /api/a/feedback-forms?status=&semester_id=&division=
func (ctl *FormController) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "", "", helper.AdminOpts)

	f := helper.SoftDeleteScope(c, repository.Filter{})
	if v := strings.ToUpper(strings.TrimSpace(c.Query("status"))); v != "" {
		if !model.FormStatus(v).Valid() {
			return helper.JsonError(c, fiber.StatusBadRequest, "status harus DRAFT, ACTIVE atau CLOSED")
		}
		f = f.And("feedback_form_status", v)
	}
	semID, err := helper.ParseUUIDQuery(c, "semester_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if semID != nil {
		f = f.And("feedback_form_semester_id", *semID)
	}
	if v := strings.ToUpper(strings.TrimSpace(c.Query("division"))); v != "" {
		f = f.And("feedback_form_division", v)
	}

	rows, err := ctl.Repo.List(c.UserContext(), f)
	if err != nil {
		return helper.JsonDBError(c, err, "Gagal mengambil form")
	}
	return helper.RespondList(c, "ok", rows, formColumns, p, dto.FromModel)
}

// GET /api/a/feedback-forms/:id
func (ctl *FormController) Get(c *fiber.Ctx) error {
	id, ok, err := helper.ParseIDParam(c, "id")
	if !ok {
		return err
	}
	ent, err := ctl.Repo.Get(c.UserContext(), id)
	if err != nil {
		return helper.JsonDBError(c, err, "Gagal mengambil form")
	}
	return helper.JsonOK(c, "ok", dto.FromModel(*ent))
}

// POST /api/a/feedback-forms
func (ctl *FormController) Create(c *fiber.Ctx) error {
	var req dto.FormCreateDTO
	if ok, err := helper.BindAndValidate(c, ctl.Validator, &req); !ok {
		return err
	}
	if ok, err := ctl.ensureSemester(c, req.FeedbackFormSemesterID); !ok {
		return err
	}
	if ok, err := ctl.checkQuestions(c, req.FeedbackFormQuestions); !ok {
		return err
	}

	slug, err := helper.UniqueSlug(c.UserContext(), helper.Slugify(req.FeedbackFormTitle, slugMaxLen), slugMaxLen, ctl.slugTaken)
	if err != nil {
		return helper.JsonDBError(c, err, "Gagal membuat slug")
	}
	ent := req.ToModel(slug)
	if !dto.DatesValid(&ent) {
		return helper.JsonValidationError(c, map[string][]string{"feedback_form_end_date": {"must not be before start date"}})
	}
	if err := ctl.Repo.Create(c.UserContext(), &ent); err != nil {
		return helper.JsonDBError(c, err, "Gagal membuat form")
	}
	log.Printf("[INFO] form dibuat: %s", ent.FeedbackFormSlug)
	return helper.JsonCreated(c, "Form berhasil dibuat", dto.FromModel(ent))
}

// PATCH /api/a/feedback-forms/:id
// Pertanyaan, semester dan divisi hanya bisa diubah saat DRAFT; form CLOSED
// tidak bisa diubah sama sekali.
func (ctl *FormController) Patch(c *fiber.Ctx) error {
	id, ok, err := helper.ParseIDParam(c, "id")
	if !ok {
		return err
	}
	var req dto.FormUpdateDTO
	if ok, err := helper.BindAndValidate(c, ctl.Validator, &req); !ok {
		return err
	}
	ent, err := ctl.Repo.Get(c.UserContext(), id)
	if err != nil {
		return helper.JsonDBError(c, err, "Gagal mengambil form")
	}
	switch {
	case ent.FeedbackFormStatus == model.FormStatusClosed:
		return helper.JsonError(c, fiber.StatusConflict, "Form sudah CLOSED")
	case ent.FeedbackFormStatus != model.FormStatusDraft && req.TouchesContent():
		return helper.JsonError(c, fiber.StatusConflict, "Pertanyaan hanya bisa diubah saat DRAFT")
	}

	if req.FeedbackFormSemesterID != nil {
		if ok, err := ctl.ensureSemester(c, *req.FeedbackFormSemesterID); !ok {
			return err
		}
	}
	if req.FeedbackFormQuestions != nil {
		if ok, err := ctl.checkQuestions(c, *req.FeedbackFormQuestions); !ok {
			return err
		}
	}
	req.ApplyUpdates(ent)
	if !dto.DatesValid(ent) {
		return helper.JsonValidationError(c, map[string][]string{"feedback_form_end_date": {"must not be before start date"}})
	}

	if err := ctl.Repo.Save(c.UserContext(), ent); err != nil {
		return helper.JsonDBError(c, err, "Gagal memperbarui form")
	}
	return helper.JsonUpdated(c, "Form berhasil diperbarui", dto.FromModel(*ent))
}

// DELETE /api/a/feedback-forms/:id
func (ctl *FormController) Delete(c *fiber.Ctx) error {
	id, ok, err := helper.ParseIDParam(c, "id")
	if !ok {
		return err
	}
	if err := ctl.Repo.SoftDelete(c.UserContext(), id); err != nil {
		return helper.JsonDBError(c, err, "Gagal menghapus form")
	}
	return helper.JsonDeleted(c, "Form berhasil dihapus", fiber.Map{"feedback_form_id": id})
}

// POST /api/a/feedback-forms/:id/restore
func (ctl *FormController) Restore(c *fiber.Ctx) error {
	id, ok, err := helper.ParseIDParam(c, "id")
	if !ok {
		return err
	}
	ent, err := ctl.Repo.GetUnscoped(c.UserContext(), id)
	if err != nil {
		return helper.JsonDBError(c, err, "Gagal mengambil form")
	}
	if !ent.FeedbackFormDeletedAt.Valid {
		return helper.JsonError(c, fiber.StatusBadRequest, "Form tidak dalam keadaan terhapus")
	}
	restored, err := ctl.Repo.Restore(c.UserContext(), id)
	if err != nil {
		return helper.JsonDBError(c, err, "Gagal restore form")
	}
	return helper.JsonOK(c, "Form berhasil direstore", dto.FromModel(*restored))
}

// POST /api/a/feedback-forms/:id/publish
func (ctl *FormController) Publish(c *fiber.Ctx) error {
	id, ok, err := helper.ParseIDParam(c, "id")
	if !ok {
		return err
	}
	ent, sent, err := ctl.Service.Publish(c.UserContext(), id)
	if err != nil {
		return lifecycleError(c, err, "Gagal publish form")
	}
	return helper.JsonOK(c, "Form berhasil dipublish", fiber.Map{
		"form":            dto.FromModel(*ent),
		"emails_enqueued": sent,
		"link":            ctl.Service.FormLink(ent.FeedbackFormSlug),
	})
}

// POST /api/a/feedback-forms/:id/resend
func (ctl *FormController) Resend(c *fiber.Ctx) error {
	id, ok, err := helper.ParseIDParam(c, "id")
	if !ok {
		return err
	}
	sent, err := ctl.Service.Resend(c.UserContext(), id)
	if err != nil {
		return lifecycleError(c, err, "Gagal kirim ulang undangan")
	}
	return helper.JsonOK(c, "Undangan dikirim ulang", fiber.Map{"emails_enqueued": sent})
}

// POST /api/a/feedback-forms/:id/close
func (ctl *FormController) Close(c *fiber.Ctx) error {
	id, ok, err := helper.ParseIDParam(c, "id")
	if !ok {
		return err
	}
	ent, err := ctl.Service.Close(c.UserContext(), id)
	if err != nil {
		return lifecycleError(c, err, "Gagal menutup form")
	}
	return helper.JsonOK(c, "Form berhasil ditutup", dto.FromModel(*ent))
}
