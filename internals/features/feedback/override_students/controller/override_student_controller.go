// file: internals/features/feedback/override_students/controller/override_student_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"reflectify_backend/internals/databases/repository"
	formModel "reflectify_backend/internals/features/feedback/forms/model"
	"reflectify_backend/internals/features/feedback/override_students/dto"
	"reflectify_backend/internals/features/feedback/override_students/model"
	helper "reflectify_backend/internals/helpers"
	"reflectify_backend/internals/helpers/datatable"
)

type OverrideStudentController struct {
	Repo      repository.Repository[model.OverrideStudentModel]
	Forms     repository.Repository[formModel.FeedbackFormModel]
	Validator *validator.Validate
}

func NewOverrideStudentController(
	repo repository.Repository[model.OverrideStudentModel],
	forms repository.Repository[formModel.FeedbackFormModel],
) *OverrideStudentController {
	return &OverrideStudentController{Repo: repo, Forms: forms, Validator: helper.NewValidator()}
}

var overrideColumns = []datatable.Column[model.OverrideStudentModel]{
	{Key: "enrollment_number", Header: "Enrollment", Sortable: true, Field: func(s model.OverrideStudentModel) any { return s.OverrideStudentEnrollmentNumber }},
	{Key: "name", Header: "Name", Sortable: true, Field: func(s model.OverrideStudentModel) any { return s.OverrideStudentName }},
	{Key: "email", Header: "Email", Sortable: true, Field: func(s model.OverrideStudentModel) any { return s.OverrideStudentEmail }},
	{Key: "batch", Header: "Batch", Sortable: true, Field: func(s model.OverrideStudentModel) any { return s.OverrideStudentBatch }},
	{Key: "phone_number", Header: "Phone", Field: func(s model.OverrideStudentModel) any { return s.OverrideStudentPhoneNumber }},
}

// loadForm: form harus ada; writable=true menolak form CLOSED.
func (ctl *OverrideStudentController) loadForm(c *fiber.Ctx, writable bool) (uuid.UUID, bool, error) {
	id, ok, err := helper.ParseIDParam(c, "id")
	if !ok {
		return uuid.Nil, false, err
	}
	form, err := ctl.Forms.Get(c.UserContext(), id)
	if err != nil {
		return uuid.Nil, false, helper.JsonDBError(c, err, "Gagal mengambil form")
	}
	if writable && form.FeedbackFormStatus == formModel.FormStatusClosed {
		return uuid.Nil, false, helper.JsonError(c, fiber.StatusConflict, "Form sudah CLOSED")
	}
	return id, true, nil
}

// GET /api/a/feedback-forms/:id/override-students
func (ctl *OverrideStudentController) List(c *fiber.Ctx) error {
	formID, ok, err := ctl.loadForm(c, false)
	if !ok {
		return err
	}
	p := helper.ParseFiber(c, "", "", helper.AdminOpts)
	rows, err := ctl.Repo.List(c.UserContext(), repository.Where("override_student_form_id", formID))
	if err != nil {
		return helper.JsonDBError(c, err, "Gagal mengambil override students")
	}
	return helper.RespondList(c, "ok", rows, overrideColumns, p, dto.FromModel)
}

// POST /api/a/feedback-forms/:id/override-students
// Email yang sudah terdaftar di form ini dilewati (dilaporkan di "skipped").
func (ctl *OverrideStudentController) Add(c *fiber.Ctx) error {
	formID, ok, err := ctl.loadForm(c, true)
	if !ok {
		return err
	}
	var req dto.OverrideStudentsAddDTO
	if ok, err := helper.BindAndValidate(c, ctl.Validator, &req); !ok {
		return err
	}

	ctx := c.UserContext()
	existing, err := ctl.Repo.List(ctx, repository.Where("override_student_form_id", formID))
	if err != nil {
		return helper.JsonDBError(c, err, "Gagal mengambil override students")
	}
	seen := make(map[string]bool, len(existing))
	for _, s := range existing {
		seen[s.OverrideStudentEmail] = true
	}

	created := make([]dto.OverrideStudentResponse, 0, len(req.Students))
	skipped := []string{}
	for _, in := range req.Students {
		ent := in.ToModel(formID)
		if seen[ent.OverrideStudentEmail] {
			skipped = append(skipped, ent.OverrideStudentEmail)
			continue
		}
		if err := ctl.Repo.Create(ctx, &ent); err != nil {
			return helper.JsonDBError(c, err, "Gagal menambah override student")
		}
		seen[ent.OverrideStudentEmail] = true
		created = append(created, dto.FromModel(ent))
	}
	return helper.JsonCreated(c, "Override students ditambahkan", fiber.Map{
		"created": created,
		"skipped": skipped,
	})
}

// DELETE /api/a/feedback-forms/:id/override-students/:student_id
func (ctl *OverrideStudentController) Delete(c *fiber.Ctx) error {
	formID, ok, err := ctl.loadForm(c, true)
	if !ok {
		return err
	}
	sid, ok, err := helper.ParseIDParam(c, "student_id")
	if !ok {
		return err
	}
	ent, err := ctl.Repo.Get(c.UserContext(), sid)
	if err != nil {
		return helper.JsonDBError(c, err, "Gagal mengambil override student")
	}
	if ent.OverrideStudentFormID != formID {
		return helper.JsonError(c, fiber.StatusNotFound, "Override student tidak ada di form ini")
	}
	if err := ctl.Repo.SoftDelete(c.UserContext(), sid); err != nil {
		return helper.JsonDBError(c, err, "Gagal menghapus override student")
	}
	return helper.JsonDeleted(c, "Override student dihapus", fiber.Map{"override_student_id": sid})
}

// DELETE /api/a/feedback-forms/:id/override-students
func (ctl *OverrideStudentController) Clear(c *fiber.Ctx) error {
	formID, ok, err := ctl.loadForm(c, true)
	if !ok {
		return err
	}
	ctx := c.UserContext()
	rows, err := ctl.Repo.List(ctx, repository.Where("override_student_form_id", formID))
	if err != nil {
		return helper.JsonDBError(c, err, "Gagal mengambil override students")
	}
	for _, r := range rows {
		if err := ctl.Repo.SoftDelete(ctx, r.OverrideStudentID); err != nil {
			return helper.JsonDBError(c, err, "Gagal menghapus override students")
		}
	}
	return helper.JsonDeleted(c, "Override students dihapus", fiber.Map{"deleted": len(rows)})
}
