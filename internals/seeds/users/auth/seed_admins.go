package auth

import (
	"context"
	"errors"
	"io/fs"
	"log"

	"github.com/bytedance/sonic"

	"reflectify_backend/internals/databases/repository"
	authModel "reflectify_backend/internals/features/users/auth/model"
	authService "reflectify_backend/internals/features/users/auth/service"
)

type AdminSeed struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func SeedAdminsFromJSON(ctx context.Context, repo repository.Repository[authModel.AdminUserModel], fsys fs.FS, path string) error {
	log.Println("📥 Membaca file admin:", path)

	file, err := fs.ReadFile(fsys, path)
	if err != nil {
		return err
	}
	var inputs []AdminSeed
	if err := sonic.Unmarshal(file, &inputs); err != nil {
		return err
	}

	for _, data := range inputs {
		_, err := authService.CreateAdmin(ctx, repo, data.Email, data.Name, data.Password, data.Role)
		switch {
		case errors.Is(err, authService.ErrEmailTaken):
			log.Printf("ℹ️ Admin dengan email '%s' sudah ada, dilewati.", data.Email)
		case err != nil:
			return err
		default:
			log.Printf("✅ Admin '%s' dibuat", data.Email)
		}
	}
	return nil
}
