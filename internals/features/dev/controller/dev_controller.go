// file: internals/features/dev/controller/dev_controller.go
package controller

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"

	helper "reflectify_backend/internals/helpers"
)

// Purger: hapus permanen semua data domain (database.Stores).
type Purger interface {
	PurgeDomain(ctx context.Context) ([]string, error)
}

type DevController struct {
	Store         Purger
	IsDevelopment func() bool
}

func NewDevController(store Purger, isDev func() bool) *DevController {
	return &DevController{Store: store, IsDevelopment: isDev}
}

// DELETE /api/a/dev/all-data
func (ctl *DevController) DeleteAllData(c *fiber.Ctx) error {
	if ctl.IsDevelopment == nil || !ctl.IsDevelopment() {
		return helper.JsonError(c, fiber.StatusForbidden, "Hanya tersedia saat APP_ENV=development")
	}
	tables, err := ctl.Store.PurgeDomain(c.UserContext())
	if err != nil {
		log.Printf("[ERROR] purge all data (done=%v): %v", tables, err)
		return helper.JsonDBError(c, err, "Gagal menghapus data")
	}
	log.Printf("[WARN] 🧨 semua data domain dihapus oleh %v", c.Locals(helper.LocalUserEmail))
	return helper.JsonDeleted(c, "Semua data berhasil dihapus", fiber.Map{"tables": tables})
}
