package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/church-cms/internal/api/dto"
	"github.com/spec-kit/church-cms/internal/service"
	apperrors "github.com/spec-kit/church-cms/pkg/util"
)

// AdminsHandler exposes administrator management endpoints. Unlike the
// content entities, admin writes go through the auth service so passwords are
// hashed before they ever reach the store.
type AdminsHandler struct {
	auth *service.AuthService
}

// NewAdminsHandler constructs handler.
func NewAdminsHandler(authService *service.AuthService) *AdminsHandler {
	return &AdminsHandler{auth: authService}
}

// List handles GET /admins.
func (h *AdminsHandler) List(c *fiber.Ctx) error {
	admins, err := h.auth.ListAdmins(c.Context())
	if err != nil {
		return err
	}

	out := make([]dto.AdminResponse, 0, len(admins))
	for i := range admins {
		out = append(out, dto.NewAdminResponse(&admins[i]))
	}
	return c.JSON(out)
}

// Get handles GET /admins/:id.
func (h *AdminsHandler) Get(c *fiber.Ctx) error {
	admin, err := h.auth.GetAdmin(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewAdminResponse(admin))
}

// Create handles POST /admins/create.
func (h *AdminsHandler) Create(c *fiber.Ctx) error {
	var req dto.AdminRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid payload")
	}

	admin, err := h.auth.CreateAdmin(c.Context(), req.Login, req.Password)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewAdminResponse(admin))
}

// Update handles PUT /admins/put/:id.
func (h *AdminsHandler) Update(c *fiber.Ctx) error {
	var req dto.AdminRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid payload")
	}

	admin, err := h.auth.UpdateAdmin(c.Context(), c.Params("id"), req.Login, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewAdminResponse(admin))
}

// Delete handles DELETE /admins/delete/:id.
func (h *AdminsHandler) Delete(c *fiber.Ctx) error {
	if err := h.auth.DeleteAdmin(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Admin deleted"})
}
