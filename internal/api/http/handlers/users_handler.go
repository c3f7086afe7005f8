package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/notes-auth-service/internal/api/dto"
	"github.com/spec-kit/notes-auth-service/internal/service"
)

// UsersHandler exposes the guarded user CRUD endpoints.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{users: userService}
}

// List handles GET /api/v1/users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.List(c.Context())
	if err != nil {
		return err
	}

	out := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, dto.NewUserResponse(user))
	}
	return c.JSON(fiber.Map{"data": out})
}

// Create handles POST /api/v1/users.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.UserCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Username == "" || req.Password == "" || req.Email == "" {
		return fiber.NewError(http.StatusBadRequest, "username, password, email required")
	}

	permissions, err := parsePermissions(req.Permissions)
	if err != nil {
		return err
	}

	user, err := h.users.Create(c.Context(), service.UserCreateInput{
		Username:    req.Username,
		Password:    req.Password,
		Email:       req.Email,
		Permissions: permissions,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// Get handles GET /api/v1/users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	user, err := h.users.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// Update handles PUT /api/v1/users/:id.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	var req dto.UserUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	permissions, err := parsePermissions(req.Permissions)
	if err != nil {
		return err
	}

	user, err := h.users.Update(c.Context(), c.Params("id"), service.UserUpdateInput{
		Username:    req.Username,
		Password:    req.Password,
		Email:       req.Email,
		Permissions: permissions,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// Delete handles DELETE /api/v1/users/:id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	user, err := h.users.Delete(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}
