package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/church-cms/internal/resource"
	"github.com/spec-kit/church-cms/internal/service"
	apperrors "github.com/spec-kit/church-cms/pkg/util"
)

// ResourcesHandler serves the CRUD routes for one entity type. The same
// handler implementation is registered once per descriptor; there is no
// per-entity handler code.
type ResourcesHandler struct {
	svc *service.ResourceService
}

// NewResourcesHandler constructs handler.
func NewResourcesHandler(svc *service.ResourceService) *ResourcesHandler {
	return &ResourcesHandler{svc: svc}
}

// Descriptor exposes the served entity descriptor for route registration.
func (h *ResourcesHandler) Descriptor() resource.Descriptor {
	return h.svc.Descriptor()
}

// List handles GET /<resource>.
func (h *ResourcesHandler) List(c *fiber.Ctx) error {
	records, err := h.svc.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(records)
}

// Get handles GET /<resource>/:key.
func (h *ResourcesHandler) Get(c *fiber.Ctx) error {
	record, err := h.svc.Get(c.Context(), c.Params("key"))
	if err != nil {
		return err
	}
	return c.JSON(record)
}

// Create handles POST /<resource>/create.
func (h *ResourcesHandler) Create(c *fiber.Ctx) error {
	input, err := parseBody(c)
	if err != nil {
		return err
	}

	record, err := h.svc.Create(c.Context(), input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(record)
}

// Update handles PUT /<resource>/put/:key with partial-update semantics.
func (h *ResourcesHandler) Update(c *fiber.Ctx) error {
	input, err := parseBody(c)
	if err != nil {
		return err
	}

	record, err := h.svc.Update(c.Context(), c.Params("key"), input)
	if err != nil {
		return err
	}
	return c.JSON(record)
}

// Delete handles DELETE /<resource>/delete/:key.
func (h *ResourcesHandler) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.Context(), c.Params("key")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": h.svc.Descriptor().Name + " deleted"})
}

func parseBody(c *fiber.Ctx) (map[string]any, error) {
	input := make(map[string]any)
	if len(c.Body()) == 0 {
		return input, nil
	}
	if err := c.BodyParser(&input); err != nil {
		return nil, apperrors.NewValidationError("Invalid payload")
	}
	return input, nil
}
