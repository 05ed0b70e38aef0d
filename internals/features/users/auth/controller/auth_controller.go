package controller

import (
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"reflectify_backend/internals/databases/repository"
	"reflectify_backend/internals/features/users/auth/dto"
	authModel "reflectify_backend/internals/features/users/auth/model"
	"reflectify_backend/internals/features/users/auth/service"
	helper "reflectify_backend/internals/helpers"
)

type AuthController struct {
	Users     repository.Repository[authModel.AdminUserModel]
	Tokens    *service.TokenService
	Blacklist *service.Blacklist
	Validator *validator.Validate
}

func NewAuthController(users repository.Repository[authModel.AdminUserModel], tokens *service.TokenService, bl *service.Blacklist) *AuthController {
	return &AuthController{Users: users, Tokens: tokens, Blacklist: bl, Validator: helper.NewValidator()}
}

// POST /api/auth/login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if ok, err := helper.BindAndValidate(c, ac.Validator, &req); !ok {
		return err
	}

	user, err := service.Authenticate(c.UserContext(), ac.Users, req.Email, req.Password)
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrInactiveAccount):
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	case err != nil:
		log.Printf("[ERROR] login %s: %v", req.Email, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal login")
	}

	token, exp, err := ac.Tokens.Issue(user)
	if err != nil {
		log.Printf("[ERROR] issue token: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat token")
	}

	log.Printf("[INFO] ✅ login %s", user.AdminUserEmail)
	return helper.JsonOK(c, "Login berhasil", dto.LoginResponse{
		AccessToken: token,
		ExpiresAt:   exp,
		User:        dto.FromModel(user),
	})
}

// POST /api/auth/logout
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	raw, exp := helper.GetAccessToken(c)
	if raw == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Token tidak ditemukan")
	}
	if exp.IsZero() {
		exp = time.Now().Add(ac.Tokens.TTL)
	}
	if err := ac.Blacklist.Add(c.UserContext(), raw, exp); err != nil {
		log.Printf("[ERROR] blacklist add: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal logout")
	}
	return helper.JsonOK(c, "Logout berhasil", nil)
}

// GET /api/auth/me
func (ac *AuthController) Me(c *fiber.Ctx) error {
	id, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	user, err := ac.Users.Get(c.UserContext(), id)
	if err != nil {
		return helper.JsonDBError(c, err, "Gagal mengambil user")
	}
	return helper.JsonOK(c, "ok", dto.FromModel(user))
}
