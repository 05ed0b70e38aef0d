// file: internals/features/academics/subjects/controller/subject_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"reflectify_backend/internals/databases/repository"
	deptModel "reflectify_backend/internals/features/academics/departments/model"
	semModel "reflectify_backend/internals/features/academics/semesters/model"
	"reflectify_backend/internals/features/academics/subjects/dto"
	"reflectify_backend/internals/features/academics/subjects/model"
	helper "reflectify_backend/internals/helpers"
	"reflectify_backend/internals/helpers/datatable"
)

type SubjectController struct {
	Repo        repository.Repository[model.SubjectModel]
	Departments repository.Repository[deptModel.DepartmentModel]
	Semesters   repository.Repository[semModel.SemesterModel]
	Validator   *validator.Validate
}

func NewSubjectController(
	repo repository.Repository[model.SubjectModel],
	departments repository.Repository[deptModel.DepartmentModel],
	semesters repository.Repository[semModel.SemesterModel],
) *SubjectController {
	return &SubjectController{Repo: repo, Departments: departments, Semesters: semesters, Validator: helper.NewValidator()}
}

var subjectColumns = []datatable.Column[model.SubjectModel]{
	{Key: "name", Header: "Name", Sortable: true, Field: func(s model.SubjectModel) any { return s.SubjectName }},
	{Key: "abbreviation", Header: "Abbr", Sortable: true, Field: func(s model.SubjectModel) any { return s.SubjectAbbreviation }},
	{Key: "subject_code", Header: "Code", Sortable: true, Field: func(s model.SubjectModel) any { return s.SubjectCode }},
	{Key: "type", Header: "Type", Sortable: true, Field: func(s model.SubjectModel) any { return s.SubjectType }},
	{Key: "created_at", Header: "Created", Sortable: true, Field: func(s model.SubjectModel) any { return s.SubjectCreatedAt }},
}

// checkRefs: departemen ada, semester ada dan milik departemen yang sama.
func (ctl *SubjectController) checkRefs(c *fiber.Ctx, deptID, semID uuid.UUID) (bool, error) {
	found, err := repository.Exists(c.UserContext(), ctl.Departments, repository.Where("department_id", deptID))
	if err != nil {
		return false, helper.JsonDBError(c, err, "Gagal cek departemen")
	}
	if !found {
		return false, helper.JsonError(c, fiber.StatusBadRequest, "Departemen tidak ditemukan")
	}
	sem, err := ctl.Semesters.Get(c.UserContext(), semID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, helper.JsonError(c, fiber.StatusBadRequest, "Semester tidak ditemukan")
		}
		return false, helper.JsonDBError(c, err, "Gagal cek semester")
	}
	if sem.SemesterDepartmentID != deptID {
		return false, helper.JsonError(c, fiber.StatusBadRequest, "Semester bukan milik departemen ini")
	}
	return true, nil
}

func (ctl *SubjectController) codeTaken(c *fiber.Ctx, ent *model.SubjectModel, exclude *uuid.UUID) (bool, error) {
	f := repository.Where("subject_department_id", ent.SubjectDepartmentID).And("subject_code", ent.SubjectCode)
	f.ExcludeID = exclude
	return repository.Exists(c.UserContext(), ctl.Repo, f)
}

// GET /api/a/subjects?department_id=&semester_id=&type=
func (ctl *SubjectController) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "", "", helper.AdminOpts)

	f := helper.SoftDeleteScope(c, repository.Filter{})
	for param, col := range map[string]string{"department_id": "subject_department_id", "semester_id": "subject_semester_id"} {
		id, err := helper.ParseUUIDQuery(c, param)
		if err != nil {
			return helper.FromFiberError(c, err)
		}
		if id != nil {
			f = f.And(col, *id)
		}
	}
	if v := strings.ToUpper(strings.TrimSpace(c.Query("type"))); v != "" {
		if v != model.SubjectTypeMandatory && v != model.SubjectTypeElective {
			return helper.JsonError(c, fiber.StatusBadRequest, "type harus MANDATORY atau ELECTIVE")
		}
		f = f.And("subject_type", v)
	}

	rows, err := ctl.Repo.List(c.UserContext(), f)
	if err != nil {
		return helper.JsonDBError(c, err, "Gagal mengambil mata kuliah")
	}
	return helper.RespondList(c, "ok", rows, subjectColumns, p, dto.FromModel)
}

// GET /api/a/subjects/:id
func (ctl *SubjectController) Get(c *fiber.Ctx) error {
	id, ok, err := helper.ParseIDParam(c, "id")
	if !ok {
		return err
	}
	ent, err := ctl.Repo.Get(c.UserContext(), id)
	if err != nil {
		return helper.JsonDBError(c, err, "Gagal mengambil mata kuliah")
	}
	return helper.JsonOK(c, "ok", dto.FromModel(*ent))
}

// POST /api/a/subjects
func (ctl *SubjectController) Create(c *fiber.Ctx) error {
	var req dto.SubjectCreateDTO
	if ok, err := helper.BindAndValidate(c, ctl.Validator, &req); !ok {
		return err
	}
	ent := req.ToModel()
	if ok, err := ctl.checkRefs(c, ent.SubjectDepartmentID, ent.SubjectSemesterID); !ok {
		return err
	}
	taken, err := ctl.codeTaken(c, &ent, nil)
	if err != nil {
		return helper.JsonDBError(c, err, "Gagal cek kode")
	}
	if taken {
		return helper.JsonError(c, fiber.StatusConflict, "Kode mata kuliah sudah dipakai di departemen ini")
	}
	if err := ctl.Repo.Create(c.UserContext(), &ent); err != nil {
		return helper.JsonDBError(c, err, "Gagal membuat mata kuliah")
	}
	return helper.JsonCreated(c, "Mata kuliah berhasil dibuat", dto.FromModel(ent))
}

// PATCH /api/a/subjects/:id
func (ctl *SubjectController) Patch(c *fiber.Ctx) error {
	id, ok, err := helper.ParseIDParam(c, "id")
	if !ok {
		return err
	}
	var req dto.SubjectUpdateDTO
	if ok, err := helper.BindAndValidate(c, ctl.Validator, &req); !ok {
		return err
	}
	ent, err := ctl.Repo.Get(c.UserContext(), id)
	if err != nil {
		return helper.JsonDBError(c, err, "Gagal mengambil mata kuliah")
	}
	req.ApplyUpdates(ent)

	if req.SubjectDepartmentID != nil || req.SubjectSemesterID != nil {
		if ok, err := ctl.checkRefs(c, ent.SubjectDepartmentID, ent.SubjectSemesterID); !ok {
			return err
		}
	}
	taken, err := ctl.codeTaken(c, ent, &ent.SubjectID)
	if err != nil {
		return helper.JsonDBError(c, err, "Gagal cek kode")
	}
	if taken {
		return helper.JsonError(c, fiber.StatusConflict, "Kode mata kuliah sudah dipakai di departemen ini")
	}

	if err := ctl.Repo.Save(c.UserContext(), ent); err != nil {
		return helper.JsonDBError(c, err, "Gagal memperbarui mata kuliah")
	}
	return helper.JsonUpdated(c, "Mata kuliah berhasil diperbarui", dto.FromModel(*ent))
}

// DELETE /api/a/subjects/:id
func (ctl *SubjectController) Delete(c *fiber.Ctx) error {
	id, ok, err := helper.ParseIDParam(c, "id")
	if !ok {
		return err
	}
	if err := ctl.Repo.SoftDelete(c.UserContext(), id); err != nil {
		return helper.JsonDBError(c, err, "Gagal menghapus mata kuliah")
	}
	return helper.JsonDeleted(c, "Mata kuliah berhasil dihapus", fiber.Map{"subject_id": id})
}

// POST /api/a/subjects/:id/restore
func (ctl *SubjectController) Restore(c *fiber.Ctx) error {
	id, ok, err := helper.ParseIDParam(c, "id")
	if !ok {
		return err
	}
	ent, err := ctl.Repo.GetUnscoped(c.UserContext(), id)
	if err != nil {
		return helper.JsonDBError(c, err, "Gagal mengambil mata kuliah")
	}
	if !ent.SubjectDeletedAt.Valid {
		return helper.JsonError(c, fiber.StatusBadRequest, "Mata kuliah tidak dalam keadaan terhapus")
	}
	taken, err := ctl.codeTaken(c, ent, &ent.SubjectID)
	if err != nil {
		return helper.JsonDBError(c, err, "Gagal cek kode")
	}
	if taken {
		return helper.JsonError(c, fiber.StatusConflict, "Kode mata kuliah sudah dipakai mata kuliah lain")
	}
	restored, err := ctl.Repo.Restore(c.UserContext(), id)
	if err != nil {
		return helper.JsonDBError(c, err, "Gagal restore mata kuliah")
	}
	return helper.JsonOK(c, "Mata kuliah berhasil direstore", dto.FromModel(*restored))
}
