package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/ywyher/survey/internal/app"
	responseController "github.com/ywyher/survey/internal/controllers/response"
	"github.com/ywyher/survey/internal/logger"
	"github.com/ywyher/survey/internal/repositories"
	"github.com/ywyher/survey/internal/validation"
)

const (
	msgSubmitted       = "Survey submitted successfully!"
	msgDeleted         = "Response deleted."
	msgListLoadFailure = "Failed to load surveys."
)

// PageHandler serves the server-rendered form and list.
type PageHandler struct {
	Handler
	controller *responseController.ResponseController
	appName    string
}

func NewPageHandler(app app.App, router fiber.Router) *PageHandler {
	log := logger.New("handlers").File("pages_handler")
	return &PageHandler{
		controller: app.ResponseController,
		appName:    app.Config.AppName,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *PageHandler) Register() {
	noStore := h.middleware.NoStore()

	h.router.Get("/", noStore, h.listPage)
	h.router.Get("/submit", noStore, h.submitPage)
	h.router.Post("/submit", h.submitForm)
	h.router.Get("/responses/:id/delete", noStore, h.confirmDeletePage)
	h.router.Post("/responses/:id/delete", h.deleteForm)
}

func (h *PageHandler) page(c *fiber.Ctx, title string, data fiber.Map) fiber.Map {
	data["Title"] = title
	data["AppName"] = h.appName
	data["Flash"] = popFlash(c)
	return data
}

func (h *PageHandler) listPage(c *fiber.Ctx) error {
	log := h.log.Function("listPage")

	responses, err := h.controller.List(c.Context())
	if err != nil {
		log.Er("failed to load responses", err)
		return c.Status(fiber.StatusInternalServerError).Render("list", h.page(c, "Responses", fiber.Map{
			"LoadError": msgListLoadFailure,
			"Count":     0,
		}), mainLayout)
	}

	return c.Render("list", h.page(c, "Responses", fiber.Map{
		"Responses": responses,
		"Count":     len(responses),
	}), mainLayout)
}

func (h *PageHandler) submitPage(c *fiber.Ctx) error {
	return h.renderForm(c, fiber.StatusOK, validation.SubmissionInput{}, nil, "")
}

func (h *PageHandler) submitForm(c *fiber.Ctx) error {
	log := h.log.Function("submitForm")

	input := formInput(c)

	response, errs := validation.Validate(input)
	if len(errs) > 0 {
		return h.renderForm(c, fiber.StatusUnprocessableEntity, input, errs, "")
	}

	result := h.controller.Submit(c.Context(), response)
	if result.Error != nil {
		log.Warn("submission failed", "error", *result.Error)
		return h.renderForm(c, fiber.StatusInternalServerError, input, nil, *result.Error)
	}

	setFlash(c, flashSuccess, msgSubmitted)
	return c.Redirect("/", fiber.StatusSeeOther)
}

func (h *PageHandler) renderForm(
	c *fiber.Ctx,
	status int,
	input validation.SubmissionInput,
	errs validation.Errors,
	storageError string,
) error {
	return c.Status(status).Render("submit", h.page(c, "New response", fiber.Map{
		"Values":       input,
		"Errors":       errs.Map(),
		"StorageError": storageError,
		"Options":      submitFormOptions,
	}), mainLayout)
}

func formInput(c *fiber.Ctx) validation.SubmissionInput {
	var joints []string
	for _, joint := range c.Request().PostArgs().PeekMulti("affectedJoints") {
		joints = append(joints, string(joint))
	}

	return validation.SubmissionInput{
		Gender:         c.FormValue("gender"),
		Age:            c.FormValue("age"),
		Occupation:     c.FormValue("occupation"),
		IsDiagnosed:    c.FormValue("isDiagnosed"),
		AffectedJoints: joints,
		HasChronicPain: c.FormValue("hasChronicPain"),
		ActivityLevel:  c.FormValue("activityLevel"),
	}
}

func (h *PageHandler) confirmDeletePage(c *fiber.Ctx) error {
	log := h.log.Function("confirmDeletePage")

	response, err := h.controller.Get(c.Context(), c.Params("id"))
	if errors.Is(err, repositories.ErrResponseNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Response not found.")
	}
	if err != nil {
		log.Er("failed to load response", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load response.")
	}

	return c.Render("confirm_delete", h.page(c, "Delete response", fiber.Map{
		"Response": response,
	}), mainLayout)
}

func (h *PageHandler) deleteForm(c *fiber.Ctx) error {
	result := h.controller.Delete(c.Context(), c.Params("id"))
	if result.Error != nil {
		setFlash(c, flashError, *result.Error)
	} else {
		setFlash(c, flashSuccess, msgDeleted)
	}

	return c.Redirect("/", fiber.StatusSeeOther)
}
