// file: internals/features/feedback/responses/controller/response_controller.go
package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"reflectify_backend/internals/databases/repository"
	formDTO "reflectify_backend/internals/features/feedback/forms/dto"
	formModel "reflectify_backend/internals/features/feedback/forms/model"
	formService "reflectify_backend/internals/features/feedback/forms/service"
	"reflectify_backend/internals/features/feedback/responses/dto"
	"reflectify_backend/internals/features/feedback/responses/model"
	"reflectify_backend/internals/features/feedback/responses/service"
	helper "reflectify_backend/internals/helpers"
	"reflectify_backend/internals/helpers/datatable"
)

type ResponseController struct {
	Repo      repository.Repository[model.FeedbackResponseModel]
	Forms     repository.Repository[formModel.FeedbackFormModel]
	Service   *formService.FormService
	Validator *validator.Validate
}

func NewResponseController(
	repo repository.Repository[model.FeedbackResponseModel],
	forms repository.Repository[formModel.FeedbackFormModel],
	svc *formService.FormService,
) *ResponseController {
	return &ResponseController{Repo: repo, Forms: forms, Service: svc, Validator: helper.NewValidator()}
}

var responseColumns = []datatable.Column[model.FeedbackResponseModel]{
	{Key: "email", Header: "Email", Sortable: true, Field: func(r model.FeedbackResponseModel) any { return r.FeedbackResponseRespondentEmail }},
	{Key: "submitted_at", Header: "Submitted", Sortable: true, Field: func(r model.FeedbackResponseModel) any { return r.FeedbackResponseSubmittedAt }},
}

/* ===================== ADMIN ===================== */

// GET /api/a/feedback-forms/:id/responses
func (ctl *ResponseController) List(c *fiber.Ctx) error {
	id, ok, err := helper.ParseIDParam(c, "id")
	if !ok {
		return err
	}
	if _, err := ctl.Forms.Get(c.UserContext(), id); err != nil {
		return helper.JsonDBError(c, err, "Gagal mengambil form")
	}
	p := helper.ParseFiber(c, "", "", helper.AdminOpts)
	rows, err := ctl.Repo.List(c.UserContext(), repository.Where("feedback_response_form_id", id))
	if err != nil {
		return helper.JsonDBError(c, err, "Gagal mengambil respon")
	}
	return helper.RespondList(c, "ok", rows, responseColumns, p, dto.FromModel)
}

// DELETE /api/a/feedback-forms/:id/responses/:response_id
// Respon dihapus permanen dari hitungan supaya mahasiswa bisa mengisi ulang.
func (ctl *ResponseController) Delete(c *fiber.Ctx) error {
	formID, ok, err := helper.ParseIDParam(c, "id")
	if !ok {
		return err
	}
	rid, ok, err := helper.ParseIDParam(c, "response_id")
	if !ok {
		return err
	}
	ent, err := ctl.Repo.Get(c.UserContext(), rid)
	if err != nil {
		return helper.JsonDBError(c, err, "Gagal mengambil respon")
	}
	if ent.FeedbackResponseFormID != formID {
		return helper.JsonError(c, fiber.StatusNotFound, "Respon tidak ada di form ini")
	}
	if err := ctl.Repo.SoftDelete(c.UserContext(), rid); err != nil {
		return helper.JsonDBError(c, err, "Gagal menghapus respon")
	}
	return helper.JsonDeleted(c, "Respon dihapus", fiber.Map{"feedback_response_id": rid})
}

/* ===================== PUBLIC ===================== */

// openForm: form berdasarkan slug yang sedang menerima respon. DRAFT
// diperlakukan seperti tidak ada.
func (ctl *ResponseController) openForm(c *fiber.Ctx) (*formModel.FeedbackFormModel, bool, error) {
	slug := strings.ToLower(strings.TrimSpace(c.Params("slug")))
	if slug == "" {
		return nil, false, helper.JsonError(c, fiber.StatusBadRequest, "Slug wajib diisi")
	}
	form, err := ctl.Forms.First(c.UserContext(), repository.Where("feedback_form_slug", slug))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, false, helper.JsonError(c, fiber.StatusNotFound, "Form tidak ditemukan")
		}
		return nil, false, helper.JsonDBError(c, err, "Gagal mengambil form")
	}
	if form.FeedbackFormStatus == formModel.FormStatusDraft {
		return nil, false, helper.JsonError(c, fiber.StatusNotFound, "Form tidak ditemukan")
	}
	if !form.AcceptsResponses(ctl.Service.Now()) {
		return nil, false, helper.JsonError(c, fiber.StatusForbidden, "Form tidak sedang menerima respon")
	}
	return form, true, nil
}

// GET /api/public/forms/:slug
func (ctl *ResponseController) PublicForm(c *fiber.Ctx) error {
	form, ok, err := ctl.openForm(c)
	if !ok {
		return err
	}
	return helper.JsonOK(c, "ok", formDTO.ToPublic(*form))
}

// POST /api/public/forms/:slug/responses
func (ctl *ResponseController) Submit(c *fiber.Ctx) error {
	form, ok, err := ctl.openForm(c)
	if !ok {
		return err
	}
	var req dto.SubmitResponseDTO
	if ok, err := helper.BindAndValidate(c, ctl.Validator, &req); !ok {
		return err
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	ctx := c.UserContext()

	allowed, err := ctl.Service.IsRecipient(ctx, form, email)
	if err != nil {
		return helper.JsonDBError(c, err, "Gagal cek penerima")
	}
	if !allowed {
		return helper.JsonError(c, fiber.StatusForbidden, "Email tidak terdaftar untuk form ini")
	}

	answers, fieldErrs := service.ValidateAnswers(form, req.Answers)
	if fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	dup, err := repository.Exists(ctx, ctl.Repo,
		repository.Where("feedback_response_form_id", form.FeedbackFormID).And("feedback_response_respondent_email", email))
	if err != nil {
		return helper.JsonDBError(c, err, "Gagal cek respon")
	}
	if dup {
		return helper.JsonError(c, fiber.StatusConflict, "Email ini sudah mengisi form")
	}

	ent := model.FeedbackResponseModel{
		FeedbackResponseFormID:          form.FeedbackFormID,
		FeedbackResponseRespondentEmail: email,
		FeedbackResponseAnswers:         answers,
		FeedbackResponseSubmittedAt:     ctl.Service.Now(),
	}
	if err := ctl.Repo.Create(ctx, &ent); err != nil {
		return helper.JsonDBError(c, err, "Gagal menyimpan respon")
	}
	log.Printf("[INFO] ✅ respon form %s dari %s", form.FeedbackFormSlug, email)
	return helper.JsonCreated(c, "Terima kasih, respon tersimpan", fiber.Map{
		"feedback_response_id": ent.FeedbackResponseID,
	})
}
