// Package web provides HTTP handlers and REST API endpoints for real-time control models.
package web

import (
	"net/http"
	"net/url"
	"time"

	"github.com/dukex/rtcontrol/pkg/document"
	"github.com/dukex/rtcontrol/pkg/models"
	"github.com/dukex/rtcontrol/pkg/services"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
)

type APIHandlers struct {
	modelService *services.Model
}

func NewAPIHandlers(modelService *services.Model) *APIHandlers {
	return &APIHandlers{modelService: modelService}
}

// App builds the fiber application serving the model API.
func (h *APIHandlers) App() *fiber.App {
	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("RTC API")
	})

	m := app.Group("/models")
	m.Get("/", h.GetModels)
	m.Post("/", h.CreateModel)
	m.Get("/:id", h.GetModel)
	m.Delete("/:id", h.DeleteModel)
	m.Get("/:id/validation", h.ValidateStoredModel)
	m.Get("/:id/groups/:group/triggers", h.GetTriggers)
	m.Get("/:id/groups/:group/outputs/:output/inputs", h.GetInputsForOutput)

	app.Post("/validate", h.ValidateModel)
	app.Get("/health", h.HealthCheck)

	return app
}

func (h *APIHandlers) GetModels(c fiber.Ctx) error {
	all, err := h.modelService.List(c.Context())
	if err != nil {
		return handleServiceError(c, err)
	}

	summaries := make([]ModelSummary, len(all))
	for i, model := range all {
		summaries[i] = toModelSummary(model)
	}

	return c.JSON(summaries)
}

func (h *APIHandlers) GetModel(c fiber.Ctx) error {
	model, err := h.modelService.FetchByID(c.Context(), param(c, "id"))
	if err != nil {
		return handleServiceError(c, err)
	}

	return h.sendModel(c, model)
}

func (h *APIHandlers) CreateModel(c fiber.Ctx) error {
	model, err := h.decodeBody(c)
	if err != nil {
		return h.bodyError(c, err)
	}

	created, err := h.modelService.Create(c.Context(), model)
	if err != nil {
		return handleServiceError(c, err)
	}

	c.Status(fiber.StatusCreated)

	return h.sendModel(c, created)
}

func (h *APIHandlers) DeleteModel(c fiber.Ctx) error {
	if err := h.modelService.Delete(c.Context(), param(c, "id")); err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *APIHandlers) ValidateStoredModel(c fiber.Ctx) error {
	report, err := h.modelService.Validate(c.Context(), param(c, "id"))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(toValidationResponse(report))
}

// ValidateModel validates the model in the request body without storing it.
func (h *APIHandlers) ValidateModel(c fiber.Ctx) error {
	model, err := h.decodeBody(c)
	if err != nil {
		return h.bodyError(c, err)
	}

	report, err := h.modelService.ValidateModel(c.Context(), model)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(toValidationResponse(report))
}

func (h *APIHandlers) GetTriggers(c fiber.Ctx) error {
	triggers, err := h.modelService.Triggers(c.Context(), param(c, "id"), param(c, "group"))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(toNodeResponses(triggers))
}

func (h *APIHandlers) GetInputsForOutput(c fiber.Ctx) error {
	inputs, err := h.modelService.InputsForOutput(c.Context(), param(c, "id"), param(c, "group"), param(c, "output"))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(toInputResponses(inputs))
}

func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	repositoryCheck, ok := h.modelService.HealthCheck(c.Context())

	status := "unhealthy"
	message := "RTC API is unhealthy"
	httpStatus := http.StatusInternalServerError

	if ok {
		status = "healthy"
		message = "RTC API is healthy"
		httpStatus = http.StatusOK
	}

	return c.Status(httpStatus).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"checkers": fiber.Map{
			"repository": repositoryCheck,
		},
		"timestamp": time.Now().UTC(),
	})
}

// param returns a decoded path parameter; group and output names may contain spaces.
func param(c fiber.Ctx, name string) string {
	raw := c.Params(name)

	value, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}

	return value
}

func (h *APIHandlers) decodeBody(c fiber.Ctx) (*models.RealTimeControlModel, error) {
	format, err := document.FormatFromContentType(c.Get(fiber.HeaderContentType))
	if err != nil {
		return nil, err
	}

	return document.Decode(c.Body(), format)
}

func (h *APIHandlers) bodyError(c fiber.Ctx, err error) error {
	if document.IsInvalidDocument(err) {
		return badRequest(c, err.Error())
	}

	return unsupportedMediaType(c, err.Error())
}

// sendModel writes model as a document, in YAML when the client asks for it.
func (h *APIHandlers) sendModel(c fiber.Ctx, model *models.RealTimeControlModel) error {
	doc := document.FromModel(model)

	if c.Accepts(fiber.MIMEApplicationJSON, "application/yaml") == "application/yaml" {
		data, err := doc.Marshal(document.FormatYAML)
		if err != nil {
			return internalError(c, err)
		}

		c.Set(fiber.HeaderContentType, "application/yaml")

		return c.Send(data)
	}

	return c.JSON(doc)
}
