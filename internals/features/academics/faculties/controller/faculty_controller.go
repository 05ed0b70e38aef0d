// file: internals/features/academics/faculties/controller/faculty_controller.go
package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"reflectify_backend/internals/databases/repository"
	deptModel "reflectify_backend/internals/features/academics/departments/model"
	"reflectify_backend/internals/features/academics/faculties/dto"
	"reflectify_backend/internals/features/academics/faculties/model"
	helper "reflectify_backend/internals/helpers"
	"reflectify_backend/internals/helpers/datatable"
)

type FacultyController struct {
	Repo        repository.Repository[model.FacultyModel]
	Departments repository.Repository[deptModel.DepartmentModel]
	Validator   *validator.Validate
}

func NewFacultyController(repo repository.Repository[model.FacultyModel], departments repository.Repository[deptModel.DepartmentModel]) *FacultyController {
	return &FacultyController{Repo: repo, Departments: departments, Validator: helper.NewValidator()}
}

// facultyColumns: kolom list; department dicari lewat singkatannya (deptAbbr).
func facultyColumns(deptAbbr map[uuid.UUID]string) []datatable.Column[model.FacultyModel] {
	return []datatable.Column[model.FacultyModel]{
		{Key: "name", Header: "Name", Sortable: true, Field: func(f model.FacultyModel) any { return f.FacultyName }},
		{Key: "abbreviation", Header: "Abbr", Sortable: true, Field: func(f model.FacultyModel) any { return f.FacultyAbbreviation }},
		{Key: "email", Header: "Email", Sortable: true, Field: func(f model.FacultyModel) any { return f.FacultyEmail }},
		{Key: "designation", Header: "Designation", Sortable: true, Field: func(f model.FacultyModel) any { return f.FacultyDesignation }},
		{Key: "seniority", Header: "Seniority", Sortable: true, Align: datatable.AlignRight, Field: func(f model.FacultyModel) any { return f.FacultySeniority }},
		{Key: "joining_date", Header: "Joined", Sortable: true, Field: func(f model.FacultyModel) any { return f.FacultyJoiningDate }},
		{Key: "created_at", Header: "Created", Sortable: true, Field: func(f model.FacultyModel) any { return f.FacultyCreatedAt }},
		{Key: "department", Header: "Dept", Sortable: true, Accessor: func(f model.FacultyModel) any { return deptAbbr[f.FacultyDepartmentID] }},
	}
}

// departmentAbbrs: id -> singkatan, termasuk departemen yang sudah dihapus.
func (ctl *FacultyController) departmentAbbrs(c *fiber.Ctx) (map[uuid.UUID]string, error) {
	depts, err := ctl.Departments.List(c.UserContext(), repository.Filter{WithDeleted: true})
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]string, len(depts))
	for _, d := range depts {
		out[d.DepartmentID] = d.DepartmentAbbreviation
	}
	return out, nil
}

// ensureDepartment: ok=false berarti response error sudah ditulis.
func (ctl *FacultyController) ensureDepartment(c *fiber.Ctx, id uuid.UUID) (bool, error) {
	found, err := repository.Exists(c.UserContext(), ctl.Departments, repository.Where("department_id", id))
	if err != nil {
		return false, helper.JsonDBError(c, err, "Gagal cek departemen")
	}
	if !found {
		return false, helper.JsonError(c, fiber.StatusBadRequest, "Departemen tidak ditemukan")
	}
	return true, nil
}

func (ctl *FacultyController) emailTaken(c *fiber.Ctx, email string, exclude *uuid.UUID) (bool, error) {
	f := repository.Where("faculty_email", email)
	f.ExcludeID = exclude
	return repository.Exists(c.UserContext(), ctl.Repo, f)
}

// GET /api/a/faculties?department_id=&designation=&q=&sort_by=&order=&page=&per_page=
func (ctl *FacultyController) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "", "", helper.AdminOpts)

	f := helper.SoftDeleteScope(c, repository.Filter{})
	deptID, err := helper.ParseUUIDQuery(c, "department_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if deptID != nil {
		f = f.And("faculty_department_id", *deptID)
	}
	if v := strings.TrimSpace(c.Query("designation")); v != "" {
		d, ok := dto.NormalizeDesignation(v)
		if !ok {
			return helper.JsonError(c, fiber.StatusBadRequest, "designation tidak dikenal")
		}
		f = f.And("faculty_designation", d)
	}

	rows, err := ctl.Repo.List(c.UserContext(), f)
	if err != nil {
		return helper.JsonDBError(c, err, "Gagal mengambil dosen")
	}
	abbrs, err := ctl.departmentAbbrs(c)
	if err != nil {
		return helper.JsonDBError(c, err, "Gagal mengambil departemen")
	}
	return helper.RespondList(c, "ok", rows, facultyColumns(abbrs), p, dto.FromModel)
}

// GET /api/a/faculties/:id
func (ctl *FacultyController) Get(c *fiber.Ctx) error {
	id, ok, err := helper.ParseIDParam(c, "id")
	if !ok {
		return err
	}
	ent, err := ctl.Repo.Get(c.UserContext(), id)
	if err != nil {
		return helper.JsonDBError(c, err, "Gagal mengambil dosen")
	}
	return helper.JsonOK(c, "ok", dto.FromModel(*ent))
}

// POST /api/a/faculties
func (ctl *FacultyController) Create(c *fiber.Ctx) error {
	var req dto.FacultyCreateDTO
	if ok, err := helper.BindAndValidate(c, ctl.Validator, &req); !ok {
		return err
	}
	if _, ok := dto.NormalizeDesignation(req.FacultyDesignation); !ok {
		return helper.JsonValidationError(c, map[string][]string{"faculty_designation": {"oneof"}})
	}
	if ok, err := ctl.ensureDepartment(c, req.FacultyDepartmentID); !ok {
		return err
	}

	ent := req.ToModel()
	taken, err := ctl.emailTaken(c, ent.FacultyEmail, nil)
	if err != nil {
		return helper.JsonDBError(c, err, "Gagal cek email")
	}
	if taken {
		return helper.JsonError(c, fiber.StatusConflict, "Email dosen sudah terdaftar")
	}

	if err := ctl.Repo.Create(c.UserContext(), &ent); err != nil {
		return helper.JsonDBError(c, err, "Gagal membuat dosen")
	}
	return helper.JsonCreated(c, "Dosen berhasil dibuat", dto.FromModel(ent))
}

// PATCH /api/a/faculties/:id
func (ctl *FacultyController) Patch(c *fiber.Ctx) error {
	id, ok, err := helper.ParseIDParam(c, "id")
	if !ok {
		return err
	}
	var req dto.FacultyUpdateDTO
	if ok, err := helper.BindAndValidate(c, ctl.Validator, &req); !ok {
		return err
	}
	if req.FacultyDesignation != nil {
		if _, ok := dto.NormalizeDesignation(*req.FacultyDesignation); !ok {
			return helper.JsonValidationError(c, map[string][]string{"faculty_designation": {"oneof"}})
		}
	}

	ent, err := ctl.Repo.Get(c.UserContext(), id)
	if err != nil {
		return helper.JsonDBError(c, err, "Gagal mengambil dosen")
	}
	if req.FacultyDepartmentID != nil && *req.FacultyDepartmentID != ent.FacultyDepartmentID {
		if ok, err := ctl.ensureDepartment(c, *req.FacultyDepartmentID); !ok {
			return err
		}
	}
	req.ApplyUpdates(ent)

	if req.FacultyEmail != nil {
		taken, err := ctl.emailTaken(c, ent.FacultyEmail, &ent.FacultyID)
		if err != nil {
			return helper.JsonDBError(c, err, "Gagal cek email")
		}
		if taken {
			return helper.JsonError(c, fiber.StatusConflict, "Email dosen sudah terdaftar")
		}
	}

	if err := ctl.Repo.Save(c.UserContext(), ent); err != nil {
		return helper.JsonDBError(c, err, "Gagal memperbarui dosen")
	}
	return helper.JsonUpdated(c, "Dosen berhasil diperbarui", dto.FromModel(*ent))
}

// DELETE /api/a/faculties/:id
func (ctl *FacultyController) Delete(c *fiber.Ctx) error {
	id, ok, err := helper.ParseIDParam(c, "id")
	if !ok {
		return err
	}
	if err := ctl.Repo.SoftDelete(c.UserContext(), id); err != nil {
		return helper.JsonDBError(c, err, "Gagal menghapus dosen")
	}
	return helper.JsonDeleted(c, "Dosen berhasil dihapus", fiber.Map{"faculty_id": id})
}

// POST /api/a/faculties/:id/restore
func (ctl *FacultyController) Restore(c *fiber.Ctx) error {
	id, ok, err := helper.ParseIDParam(c, "id")
	if !ok {
		return err
	}
	ent, err := ctl.Repo.GetUnscoped(c.UserContext(), id)
	if err != nil {
		return helper.JsonDBError(c, err, "Gagal mengambil dosen")
	}
	if !ent.FacultyDeletedAt.Valid {
		return helper.JsonError(c, fiber.StatusBadRequest, "Dosen tidak dalam keadaan terhapus")
	}
	taken, err := ctl.emailTaken(c, ent.FacultyEmail, &ent.FacultyID)
	if err != nil {
		return helper.JsonDBError(c, err, "Gagal cek email")
	}
	if taken {
		return helper.JsonError(c, fiber.StatusConflict, "Email dosen sudah dipakai dosen lain")
	}
	restored, err := ctl.Repo.Restore(c.UserContext(), id)
	if err != nil {
		return helper.JsonDBError(c, err, "Gagal restore dosen")
	}
	return helper.JsonOK(c, "Dosen berhasil direstore", dto.FromModel(*restored))
}
