// file: internals/features/academics/departments/controller/department_controller.go
package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"reflectify_backend/internals/databases/repository"
	"reflectify_backend/internals/features/academics/departments/dto"
	"reflectify_backend/internals/features/academics/departments/model"
	helper "reflectify_backend/internals/helpers"
	"reflectify_backend/internals/helpers/datatable"
)

type DepartmentController struct {
	Repo      repository.Repository[model.DepartmentModel]
	Validator *validator.Validate
}

func NewDepartmentController(repo repository.Repository[model.DepartmentModel]) *DepartmentController {
	return &DepartmentController{Repo: repo, Validator: helper.NewValidator()}
}

var departmentColumns = []datatable.Column[model.DepartmentModel]{
	{Key: "name", Header: "Name", Sortable: true, Field: func(d model.DepartmentModel) any { return d.DepartmentName }},
	{Key: "abbreviation", Header: "Abbr", Sortable: true, Field: func(d model.DepartmentModel) any { return d.DepartmentAbbreviation }},
	{Key: "hod_name", Header: "HOD", Sortable: true, Field: func(d model.DepartmentModel) any { return d.DepartmentHODName }},
	{Key: "hod_email", Header: "HOD Email", Field: func(d model.DepartmentModel) any { return d.DepartmentHODEmail }},
	{Key: "created_at", Header: "Created", Sortable: true, Field: func(d model.DepartmentModel) any { return d.DepartmentCreatedAt }},
}

func (ctl *DepartmentController) abbreviationTaken(c *fiber.Ctx, abbr string, exclude *model.DepartmentModel) (bool, error) {
	f := repository.Where("department_abbreviation", abbr)
	if exclude != nil {
		f.ExcludeID = &exclude.DepartmentID
	}
	return repository.Exists(c.UserContext(), ctl.Repo, f)
}

// GET /api/a/departments
func (ctl *DepartmentController) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "", "", helper.AdminOpts)
	rows, err := ctl.Repo.List(c.UserContext(), helper.SoftDeleteScope(c, repository.Filter{}))
	if err != nil {
		return helper.JsonDBError(c, err, "Gagal mengambil departemen")
	}
	return helper.RespondList(c, "ok", rows, departmentColumns, p, dto.FromModel)
}

// GET /api/a/departments/:id
func (ctl *DepartmentController) Get(c *fiber.Ctx) error {
	id, ok, err := helper.ParseIDParam(c, "id")
	if !ok {
		return err
	}
	ent, err := ctl.Repo.Get(c.UserContext(), id)
	if err != nil {
		return helper.JsonDBError(c, err, "Gagal mengambil departemen")
	}
	return helper.JsonOK(c, "ok", dto.FromModel(*ent))
}

// POST /api/a/departments
func (ctl *DepartmentController) Create(c *fiber.Ctx) error {
	var req dto.DepartmentCreateDTO
	if ok, err := helper.BindAndValidate(c, ctl.Validator, &req); !ok {
		return err
	}
	ent := req.ToModel()

	taken, err := ctl.abbreviationTaken(c, ent.DepartmentAbbreviation, nil)
	if err != nil {
		return helper.JsonDBError(c, err, "Gagal cek singkatan")
	}
	if taken {
		return helper.JsonError(c, fiber.StatusConflict, "Singkatan departemen sudah dipakai")
	}

	if err := ctl.Repo.Create(c.UserContext(), &ent); err != nil {
		return helper.JsonDBError(c, err, "Gagal membuat departemen")
	}
	log.Printf("[INFO] department created: %s (%s)", ent.DepartmentName, ent.DepartmentID)
	return helper.JsonCreated(c, "Departemen berhasil dibuat", dto.FromModel(ent))
}

// PATCH /api/a/departments/:id
func (ctl *DepartmentController) Patch(c *fiber.Ctx) error {
	id, ok, err := helper.ParseIDParam(c, "id")
	if !ok {
		return err
	}
	var req dto.DepartmentUpdateDTO
	if ok, err := helper.BindAndValidate(c, ctl.Validator, &req); !ok {
		return err
	}

	ent, err := ctl.Repo.Get(c.UserContext(), id)
	if err != nil {
		return helper.JsonDBError(c, err, "Gagal mengambil departemen")
	}
	req.ApplyUpdates(ent)

	if req.DepartmentAbbreviation != nil {
		taken, err := ctl.abbreviationTaken(c, ent.DepartmentAbbreviation, ent)
		if err != nil {
			return helper.JsonDBError(c, err, "Gagal cek singkatan")
		}
		if taken {
			return helper.JsonError(c, fiber.StatusConflict, "Singkatan departemen sudah dipakai")
		}
	}

	if err := ctl.Repo.Save(c.UserContext(), ent); err != nil {
		return helper.JsonDBError(c, err, "Gagal memperbarui departemen")
	}
	return helper.JsonUpdated(c, "Departemen berhasil diperbarui", dto.FromModel(*ent))
}

// DELETE /api/a/departments/:id (soft delete)
func (ctl *DepartmentController) Delete(c *fiber.Ctx) error {
	id, ok, err := helper.ParseIDParam(c, "id")
	if !ok {
		return err
	}
	if err := ctl.Repo.SoftDelete(c.UserContext(), id); err != nil {
		return helper.JsonDBError(c, err, "Gagal menghapus departemen")
	}
	return helper.JsonDeleted(c, "Departemen berhasil dihapus", fiber.Map{"department_id": id})
}

// POST /api/a/departments/:id/restore
func (ctl *DepartmentController) Restore(c *fiber.Ctx) error {
	id, ok, err := helper.ParseIDParam(c, "id")
	if !ok {
		return err
	}
	ent, err := ctl.Repo.GetUnscoped(c.UserContext(), id)
	if err != nil {
		return helper.JsonDBError(c, err, "Gagal mengambil departemen")
	}
	if !ent.DepartmentDeletedAt.Valid {
		return helper.JsonError(c, fiber.StatusBadRequest, "Departemen tidak dalam keadaan terhapus")
	}
	taken, err := ctl.abbreviationTaken(c, ent.DepartmentAbbreviation, ent)
	if err != nil {
		return helper.JsonDBError(c, err, "Gagal cek singkatan")
	}
	if taken {
		return helper.JsonError(c, fiber.StatusConflict, "Singkatan departemen sudah dipakai departemen lain")
	}

	restored, err := ctl.Repo.Restore(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Departemen tidak ditemukan")
		}
		return helper.JsonDBError(c, err, "Gagal restore departemen")
	}
	return helper.JsonOK(c, "Departemen berhasil direstore", dto.FromModel(*restored))
}
