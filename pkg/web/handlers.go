package web

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	"github.com/kaljuvee/postwave/pkg/models"
	"github.com/kaljuvee/postwave/pkg/pipeline"
	"github.com/kaljuvee/postwave/pkg/registry"
)

type APIHandlers struct {
	engine    *pipeline.Engine
	validator *validator.Validate
	registry  *registry.Registry
}

func NewAPIHandlers(
	engine *pipeline.Engine,
	validator *validator.Validate,
	registry *registry.Registry,
) *APIHandlers {
	return &APIHandlers{
		engine:    engine,
		validator: validator,
		registry:  registry,
	}
}

// Register wires all run routes onto the app.
func (h *APIHandlers) Register(app *fiber.App) {
	app.Get("/health", h.HealthCheck)

	runs := app.Group("/runs")
	runs.Post("/", h.CreateRun)
	runs.Get("/", h.GetRuns)
	runs.Get("/:id", h.GetRun)
	runs.Delete("/:id", h.DeleteRun)
	runs.Post("/:id/decision", h.DecideRun)
	runs.Post("/:id/cancel", h.CancelRun)
	runs.Patch("/:id/posts/:postID", h.EditPost)
	runs.Post("/:id/posts/:postID/approve", h.ApprovePost)
	runs.Post("/:id/posts/:postID/reject", h.RejectPost)
}

// CreateRun starts a pipeline run and returns its state once it suspends for
// approval or fails. Pipeline failures are reported in the run body, not as
// an HTTP error.
func (h *APIHandlers) CreateRun(c fiber.Ctx) error {
	var req CreateRunRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	run := h.engine.Start(c.Context(), models.ContentRequest{
		URL:       req.URL,
		Platforms: req.Platforms,
		Style:     req.Style,
	})

	snapshot, err := h.engine.Snapshot(run.ID)
	if err != nil {
		return handleEngineError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(TransformRunResponse(snapshot))
}

func (h *APIHandlers) GetRuns(c fiber.Ctx) error {
	runs := h.engine.Snapshots()

	responses := make([]RunResponse, 0, len(runs))
	for _, run := range runs {
		responses = append(responses, TransformRunResponse(run))
	}

	return c.JSON(fiber.Map{
		"runs":        responses,
		"total_count": len(responses),
	})
}

func (h *APIHandlers) GetRun(c fiber.Ctx) error {
	run, err := h.engine.Snapshot(c.Params("id"))
	if err != nil {
		return handleEngineError(c, err)
	}

	return c.JSON(TransformRunResponse(run))
}

func (h *APIHandlers) DeleteRun(c fiber.Ctx) error {
	err := h.engine.Runs().Delete(c.Params("id"))
	if err != nil {
		return handleEngineError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *APIHandlers) DecideRun(c fiber.Ctx) error {
	var req DecisionRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	run, err := h.engine.Decide(c.Context(), c.Params("id"), *req.Approve)
	if err != nil {
		return handleEngineError(c, err)
	}

	snapshot, err := h.engine.Snapshot(run.ID)
	if err != nil {
		return handleEngineError(c, err)
	}

	return c.JSON(TransformRunResponse(snapshot))
}

func (h *APIHandlers) CancelRun(c fiber.Ctx) error {
	run, err := h.engine.Cancel(c.Context(), c.Params("id"))
	if err != nil {
		return handleEngineError(c, err)
	}

	snapshot, err := h.engine.Snapshot(run.ID)
	if err != nil {
		return handleEngineError(c, err)
	}

	return c.JSON(TransformRunResponse(snapshot))
}

func (h *APIHandlers) EditPost(c fiber.Ctx) error {
	var req EditPostRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	post, err := h.engine.UpdatePostContent(c.Params("id"), c.Params("postID"), req.Content)
	if err != nil {
		return handleEngineError(c, err)
	}

	return c.JSON(TransformPostResponse(post))
}

func (h *APIHandlers) ApprovePost(c fiber.Ctx) error {
	post, err := h.engine.ApprovePost(c.Params("id"), c.Params("postID"))
	if err != nil {
		return handleEngineError(c, err)
	}

	return c.JSON(TransformPostResponse(post))
}

func (h *APIHandlers) RejectPost(c fiber.Ctx) error {
	req := RejectPostRequest{}
	if len(c.Body()) > 0 {
		if err := c.Bind().JSON(&req); err != nil {
			return badRequest(c, "Invalid JSON format")
		}
	}

	runID := c.Params("id")
	postID := c.Params("postID")

	if req.Remove {
		if err := h.engine.RemovePost(runID, postID); err != nil {
			return handleEngineError(c, err)
		}

		return c.SendStatus(fiber.StatusNoContent)
	}

	post, err := h.engine.MarkPostFailed(runID, postID)
	if err != nil {
		return handleEngineError(c, err)
	}

	return c.JSON(TransformPostResponse(post))
}

func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"status":  "healthy",
		"message": "Postwave API is healthy",
		"checkers": fiber.Map{
			"fetchers":   h.registry.AvailableFetchers(),
			"generators": h.registry.AvailableGenerators(),
			"publishers": h.registry.AvailablePublishers(),
		},
		"timestamp": time.Now().UTC(),
	})
}
