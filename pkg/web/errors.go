package web

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/moogar0880/problems"

	"github.com/kaljuvee/postwave/pkg/pipeline"
)

func badRequest(c fiber.Ctx, detail string) error {
	problem := problems.NewStatusProblem(400).
		WithInstance(c.Path()).
		WithType("validation_error").
		WithDetail(detail)

	return c.Status(fiber.StatusBadRequest).JSON(problem)
}

func notFound(c fiber.Ctx, detail string) error {
	problem := problems.NewStatusProblem(404).
		WithInstance(c.Path()).
		WithType("not_found").
		WithDetail(detail)

	return c.Status(fiber.StatusNotFound).JSON(problem)
}

func internalError(c fiber.Ctx, err error) error {
	problem := problems.NewStatusProblem(500).
		WithInstance(c.Path()).
		WithType("internal_error").
		WithError(err)

	return c.Status(fiber.StatusInternalServerError).JSON(problem)
}

// handleEngineError maps pipeline sentinel errors onto problem responses.
func handleEngineError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, pipeline.ErrRunNotFound):
		return notFound(c, "run not found")

	case errors.Is(err, pipeline.ErrPostNotFound):
		return notFound(c, "post not found")

	case errors.Is(err, pipeline.ErrAlreadyDecided):
		problem := problems.NewStatusProblem(409).
			WithInstance(c.Path()).
			WithType("already_decided").
			WithDetail("run has already been decided")

		return c.Status(fiber.StatusConflict).JSON(problem)

	case errors.Is(err, pipeline.ErrNotAwaitingApproval):
		problem := problems.NewStatusProblem(409).
			WithInstance(c.Path()).
			WithType("not_awaiting_approval").
			WithDetail("run is not awaiting approval")

		return c.Status(fiber.StatusConflict).JSON(problem)

	case errors.Is(err, pipeline.ErrPostNotPending):
		problem := problems.NewStatusProblem(409).
			WithInstance(c.Path()).
			WithType("post_not_pending").
			WithDetail("post is no longer pending approval")

		return c.Status(fiber.StatusConflict).JSON(problem)

	case errors.Is(err, pipeline.ErrApprovalExpired):
		problem := problems.NewStatusProblem(410).
			WithInstance(c.Path()).
			WithType("approval_expired").
			WithDetail("approval window has expired; run was rejected")

		return c.Status(fiber.StatusGone).JSON(problem)

	default:
		return internalError(c, err)
	}
}
