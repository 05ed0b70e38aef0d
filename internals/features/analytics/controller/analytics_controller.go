// file: internals/features/analytics/controller/analytics_controller.go
package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"reflectify_backend/internals/features/analytics/service"
	helper "reflectify_backend/internals/helpers"
)

type AnalyticsController struct {
	Service *service.AnalyticsService
}

func NewAnalyticsController(svc *service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{Service: svc}
}

// scope membaca ?semester_id=&department_id=&form_id=
func scope(c *fiber.Ctx) (service.Scope, error) {
	var sc service.Scope
	var err error
	if sc.SemesterID, err = helper.ParseUUIDQuery(c, "semester_id"); err != nil {
		return sc, err
	}
	if sc.DepartmentID, err = helper.ParseUUIDQuery(c, "department_id"); err != nil {
		return sc, err
	}
	if sc.FormID, err = helper.ParseUUIDQuery(c, "form_id"); err != nil {
		return sc, err
	}
	return sc, nil
}

// GET /api/a/analytics/overview
func (ctl *AnalyticsController) Overview(c *fiber.Ctx) error {
	out, err := ctl.Service.Overview(c.UserContext())
	if err != nil {
		log.Printf("[ERROR] analytics overview: %v", err)
		return helper.JsonDBError(c, err, "Gagal menghitung overview")
	}
	return helper.JsonOK(c, "ok", out)
}

// GET /api/a/analytics/subject-ratings
func (ctl *AnalyticsController) SubjectRatings(c *fiber.Ctx) error {
	sc, err := scope(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	out, err := ctl.Service.SubjectRatings(c.UserContext(), sc)
	if err != nil {
		return helper.JsonDBError(c, err, "Gagal menghitung rating mata kuliah")
	}
	return helper.JsonOK(c, "ok", out)
}

// GET /api/a/analytics/faculty-ratings
func (ctl *AnalyticsController) FacultyRatings(c *fiber.Ctx) error {
	sc, err := scope(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	out, err := ctl.Service.FacultyRatings(c.UserContext(), sc)
	if err != nil {
		return helper.JsonDBError(c, err, "Gagal menghitung rating dosen")
	}
	return helper.JsonOK(c, "ok", out)
}

// GET /api/a/analytics/semester-trend
func (ctl *AnalyticsController) SemesterTrend(c *fiber.Ctx) error {
	sc, err := scope(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	out, err := ctl.Service.SemesterTrend(c.UserContext(), sc)
	if err != nil {
		return helper.JsonDBError(c, err, "Gagal menghitung tren semester")
	}
	return helper.JsonOK(c, "ok", out)
}
