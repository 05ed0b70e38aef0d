// file: internals/features/academics/semesters/controller/semester_controller.go
package controller

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"reflectify_backend/internals/databases/repository"
	deptModel "reflectify_backend/internals/features/academics/departments/model"
	"reflectify_backend/internals/features/academics/semesters/dto"
	"reflectify_backend/internals/features/academics/semesters/model"
	helper "reflectify_backend/internals/helpers"
	"reflectify_backend/internals/helpers/datatable"
)

type SemesterController struct {
	Repo        repository.Repository[model.SemesterModel]
	Departments repository.Repository[deptModel.DepartmentModel]
	Validator   *validator.Validate
}

func NewSemesterController(repo repository.Repository[model.SemesterModel], departments repository.Repository[deptModel.DepartmentModel]) *SemesterController {
	return &SemesterController{Repo: repo, Departments: departments, Validator: helper.NewValidator()}
}

var semesterColumns = []datatable.Column[model.SemesterModel]{
	{Key: "semester_number", Header: "Semester", Sortable: true, Align: datatable.AlignRight, Field: func(s model.SemesterModel) any { return s.SemesterNumber }},
	{Key: "academic_year", Header: "Academic Year", Sortable: true, Field: func(s model.SemesterModel) any { return s.SemesterAcademicYear }},
	{Key: "semester_type", Header: "Type", Sortable: true, Field: func(s model.SemesterModel) any { return s.SemesterType }},
	{Key: "start_date", Header: "Start", Sortable: true, Field: func(s model.SemesterModel) any { return s.SemesterStartDate }},
	{Key: "end_date", Header: "End", Sortable: true, Field: func(s model.SemesterModel) any { return s.SemesterEndDate }},
	{Key: "created_at", Header: "Created", Sortable: true, Field: func(s model.SemesterModel) any { return s.SemesterCreatedAt }},
}

func (ctl *SemesterController) ensureDepartment(c *fiber.Ctx, id uuid.UUID) (bool, error) {
	found, err := repository.Exists(c.UserContext(), ctl.Departments, repository.Where("department_id", id))
	if err != nil {
		return false, helper.JsonDBError(c, err, "Gagal cek departemen")
	}
	if !found {
		return false, helper.JsonError(c, fiber.StatusBadRequest, "Departemen tidak ditemukan")
	}
	return true, nil
}

// duplicate: (department, number, academic_year) harus unik.
func (ctl *SemesterController) duplicate(c *fiber.Ctx, ent *model.SemesterModel, exclude *uuid.UUID) (bool, error) {
	f := repository.Where("semester_department_id", ent.SemesterDepartmentID).
		And("semester_number", ent.SemesterNumber).
		And("semester_academic_year", ent.SemesterAcademicYear)
	f.ExcludeID = exclude
	return repository.Exists(c.UserContext(), ctl.Repo, f)
}

// GET /api/a/semesters?department_id=&academic_year=&semester_type=&semester_number=
func (ctl *SemesterController) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "", "", helper.AdminOpts)

	f := helper.SoftDeleteScope(c, repository.Filter{})
	deptID, err := helper.ParseUUIDQuery(c, "department_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if deptID != nil {
		f = f.And("semester_department_id", *deptID)
	}
	if v := strings.TrimSpace(c.Query("academic_year")); v != "" {
		f = f.And("semester_academic_year", v)
	}
	if v := strings.ToUpper(strings.TrimSpace(c.Query("semester_type"))); v != "" {
		if v != model.SemesterTypeOdd && v != model.SemesterTypeEven {
			return helper.JsonError(c, fiber.StatusBadRequest, "semester_type harus ODD atau EVEN")
		}
		f = f.And("semester_type", v)
	}
	if v := strings.TrimSpace(c.Query("semester_number")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "semester_number invalid")
		}
		f = f.And("semester_number", n)
	}

	rows, err := ctl.Repo.List(c.UserContext(), f)
	if err != nil {
		return helper.JsonDBError(c, err, "Gagal mengambil semester")
	}
	return helper.RespondList(c, "ok", rows, semesterColumns, p, dto.FromModel)
}

// GET /api/a/semesters/:id
func (ctl *SemesterController) Get(c *fiber.Ctx) error {
	id, ok, err := helper.ParseIDParam(c, "id")
	if !ok {
		return err
	}
	ent, err := ctl.Repo.Get(c.UserContext(), id)
	if err != nil {
		return helper.JsonDBError(c, err, "Gagal mengambil semester")
	}
	return helper.JsonOK(c, "ok", dto.FromModel(*ent))
}

// POST /api/a/semesters
func (ctl *SemesterController) Create(c *fiber.Ctx) error {
	var req dto.SemesterCreateDTO
	if ok, err := helper.BindAndValidate(c, ctl.Validator, &req); !ok {
		return err
	}
	ent := req.ToModel()
	if !dto.DatesValid(&ent) {
		return helper.JsonValidationError(c, map[string][]string{"semester_end_date": {"gtefield"}})
	}
	if ok, err := ctl.ensureDepartment(c, ent.SemesterDepartmentID); !ok {
		return err
	}
	dup, err := ctl.duplicate(c, &ent, nil)
	if err != nil {
		return helper.JsonDBError(c, err, "Gagal cek duplikasi semester")
	}
	if dup {
		return helper.JsonError(c, fiber.StatusConflict, "Semester untuk departemen dan tahun ajaran ini sudah ada")
	}

	if err := ctl.Repo.Create(c.UserContext(), &ent); err != nil {
		return helper.JsonDBError(c, err, "Gagal membuat semester")
	}
	return helper.JsonCreated(c, "Semester berhasil dibuat", dto.FromModel(ent))
}

// PATCH /api/a/semesters/:id
func (ctl *SemesterController) Patch(c *fiber.Ctx) error {
	id, ok, err := helper.ParseIDParam(c, "id")
	if !ok {
		return err
	}
	var req dto.SemesterUpdateDTO
	if ok, err := helper.BindAndValidate(c, ctl.Validator, &req); !ok {
		return err
	}
	ent, err := ctl.Repo.Get(c.UserContext(), id)
	if err != nil {
		return helper.JsonDBError(c, err, "Gagal mengambil semester")
	}
	if req.SemesterDepartmentID != nil && *req.SemesterDepartmentID != ent.SemesterDepartmentID {
		if ok, err := ctl.ensureDepartment(c, *req.SemesterDepartmentID); !ok {
			return err
		}
	}
	req.ApplyUpdates(ent)
	if !dto.DatesValid(ent) {
		return helper.JsonValidationError(c, map[string][]string{"semester_end_date": {"gtefield"}})
	}

	dup, err := ctl.duplicate(c, ent, &ent.SemesterID)
	if err != nil {
		return helper.JsonDBError(c, err, "Gagal cek duplikasi semester")
	}
	if dup {
		return helper.JsonError(c, fiber.StatusConflict, "Semester untuk departemen dan tahun ajaran ini sudah ada")
	}

	if err := ctl.Repo.Save(c.UserContext(), ent); err != nil {
		return helper.JsonDBError(c, err, "Gagal memperbarui semester")
	}
	return helper.JsonUpdated(c, "Semester berhasil diperbarui", dto.FromModel(*ent))
}

// DELETE /api/a/semesters/:id
func (ctl *SemesterController) Delete(c *fiber.Ctx) error {
	id, ok, err := helper.ParseIDParam(c, "id")
	if !ok {
		return err
	}
	if err := ctl.Repo.SoftDelete(c.UserContext(), id); err != nil {
		return helper.JsonDBError(c, err, "Gagal menghapus semester")
	}
	return helper.JsonDeleted(c, "Semester berhasil dihapus", fiber.Map{"semester_id": id})
}

// POST /api/a/semesters/:id/restore
func (ctl *SemesterController) Restore(c *fiber.Ctx) error {
	id, ok, err := helper.ParseIDParam(c, "id")
	if !ok {
		return err
	}
	ent, err := ctl.Repo.GetUnscoped(c.UserContext(), id)
	if err != nil {
		return helper.JsonDBError(c, err, "Gagal mengambil semester")
	}
	if !ent.SemesterDeletedAt.Valid {
		return helper.JsonError(c, fiber.StatusBadRequest, "Semester tidak dalam keadaan terhapus")
	}
	dup, err := ctl.duplicate(c, ent, &ent.SemesterID)
	if err != nil {
		return helper.JsonDBError(c, err, "Gagal cek duplikasi semester")
	}
	if dup {
		return helper.JsonError(c, fiber.StatusConflict, "Semester yang sama sudah aktif")
	}
	restored, err := ctl.Repo.Restore(c.UserContext(), id)
	if err != nil {
		return helper.JsonDBError(c, err, "Gagal restore semester")
	}
	return helper.JsonOK(c, "Semester berhasil direstore", dto.FromModel(*restored))
}
