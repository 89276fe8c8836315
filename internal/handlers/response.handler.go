package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/ywyher/survey/internal/app"
	responseController "github.com/ywyher/survey/internal/controllers/response"
	"github.com/ywyher/survey/internal/logger"
	"github.com/ywyher/survey/internal/repositories"
	"github.com/ywyher/survey/internal/validation"
)

type ResponseHandler struct {
	Handler
	controller *responseController.ResponseController
}

func NewResponseHandler(app app.App, router fiber.Router) *ResponseHandler {
	log := logger.New("handlers").File("response_handler")
	return &ResponseHandler{
		controller: app.ResponseController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *ResponseHandler) Register() {
	responses := h.router.Group("/responses")
	responses.Post("/", h.submitResponse)
	responses.Get("/", h.getResponses)
	responses.Get("/export.csv", h.exportResponses)
	responses.Get("/:id", h.getResponse)
	responses.Delete("/:id", h.deleteResponse)
}

// submissionRequest accepts age as either a JSON number or a string.
type submissionRequest struct {
	Gender         string          `json:"gender"`
	Age            json.RawMessage `json:"age"`
	Occupation     string          `json:"occupation"`
	IsDiagnosed    string          `json:"isDiagnosed"`
	AffectedJoints []string        `json:"affectedJoints"`
	HasChronicPain string          `json:"hasChronicPain"`
	ActivityLevel  string          `json:"activityLevel"`
}

func (r submissionRequest) input() validation.SubmissionInput {
	return validation.SubmissionInput{
		Gender:         r.Gender,
		Age:            rawAge(r.Age),
		Occupation:     r.Occupation,
		IsDiagnosed:    r.IsDiagnosed,
		AffectedJoints: r.AffectedJoints,
		HasChronicPain: r.HasChronicPain,
		ActivityLevel:  r.ActivityLevel,
	}
}

func rawAge(raw json.RawMessage) string {
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}

	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "null" {
		return ""
	}
	return trimmed
}

func (h *ResponseHandler) submitResponse(c *fiber.Ctx) error {
	log := h.log.Function("submitResponse")

	var request submissionRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse submission request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": nil, "error": "failed to parse submission request"})
	}

	response, errs := validation.Validate(request.input())
	if len(errs) > 0 {
		return c.Status(fiber.StatusUnprocessableEntity).
			JSON(fiber.Map{"message": nil, "error": "validation failed", "errors": errs.Map()})
	}

	result := h.controller.Submit(c.Context(), response)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(result)
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

func (h *ResponseHandler) getResponses(c *fiber.Ctx) error {
	log := h.log.Function("getResponses")

	responses, err := h.controller.List(c.Context())
	if err != nil {
		log.Er("failed to get responses", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "Failed to load surveys.", "error": err.Error()})
	}

	return c.JSON(responses)
}

func (h *ResponseHandler) getResponse(c *fiber.Ctx) error {
	log := h.log.Function("getResponse")

	response, err := h.controller.Get(c.Context(), c.Params("id"))
	if errors.Is(err, repositories.ErrResponseNotFound) {
		return c.Status(fiber.StatusNotFound).
			JSON(fiber.Map{"message": "response not found", "error": err.Error()})
	}
	if err != nil {
		log.Er("failed to get response", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to get response", "error": err.Error()})
	}

	return c.JSON(response)
}

func (h *ResponseHandler) deleteResponse(c *fiber.Ctx) error {
	result := h.controller.Delete(c.Context(), c.Params("id"))
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(result)
	}
	return c.JSON(result)
}

func (h *ResponseHandler) exportResponses(c *fiber.Ctx) error {
	log := h.log.Function("exportResponses")

	var buf bytes.Buffer
	if err := h.controller.ExportCSV(c.Context(), &buf); err != nil {
		log.Er("failed to export responses", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to export responses", "error": err.Error()})
	}

	c.Attachment("responses.csv")
	return c.Send(buf.Bytes())
}
