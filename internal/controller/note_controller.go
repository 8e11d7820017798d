package controller

import (
	"tasknotes-be/internal/dto"
	"tasknotes-be/internal/pkg/apperror"
	"tasknotes-be/internal/pkg/serverutils"
	"tasknotes-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type INoteController interface {
	RegisterRoutes(r fiber.Router, authMiddleware fiber.Handler)
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	UpdatePinned(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Search(ctx *fiber.Ctx) error
}

type noteController struct {
	noteService service.INoteService
}

func NewNoteController(noteService service.INoteService) INoteController {
	return &noteController{
		noteService: noteService,
	}
}

func (c *noteController) RegisterRoutes(r fiber.Router, authMiddleware fiber.Handler) {
	r.Post("/add-note", authMiddleware, c.Create)
	r.Put("/edit-note/:id", authMiddleware, c.Update)
	r.Get("/get-all-notes", authMiddleware, c.List)
	r.Delete("/delete-note/:id", authMiddleware, c.Delete)
	r.Put("/update-note-pinned/:id", authMiddleware, c.UpdatePinned)
	r.Get("/search-notes", authMiddleware, c.Search)
}

func callerUserId(ctx *fiber.Ctx) uuid.UUID {
	userIdStr, _ := ctx.Locals(serverutils.LocalsUserId).(string)
	userId, _ := uuid.Parse(userIdStr)
	return userId
}

// noteIdParam rejects malformed ids with the same response shape as a
// missing note, so callers cannot distinguish the two.
func noteIdParam(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, apperror.NotFound("Task not found or unauthorized")
	}
	return id, nil
}

func (c *noteController) Create(ctx *fiber.Ctx) error {
	userId := callerUserId(ctx)

	var req dto.CreateNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("Invalid request body")
	}

	res, err := c.noteService.CreateNote(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return serverutils.Success(ctx, "Task added successfully", fiber.Map{
		"note": res,
	})
}

func (c *noteController) Update(ctx *fiber.Ctx) error {
	userId := callerUserId(ctx)

	id, err := noteIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("Invalid request body")
	}
	req.Id = id

	res, err := c.noteService.UpdateNote(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return serverutils.Success(ctx, "Task updated successfully", fiber.Map{
		"note": res,
	})
}

func (c *noteController) Delete(ctx *fiber.Ctx) error {
	userId := callerUserId(ctx)

	id, err := noteIdParam(ctx)
	if err != nil {
		return err
	}

	if err := c.noteService.DeleteNote(ctx.Context(), userId, id); err != nil {
		return err
	}

	return serverutils.Success(ctx, "Task deleted successfully", nil)
}

func (c *noteController) UpdatePinned(ctx *fiber.Ctx) error {
	userId := callerUserId(ctx)

	id, err := noteIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateNotePinnedRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.noteService.SetPinned(ctx.Context(), userId, id, *req.IsPinned)
	if err != nil {
		return err
	}

	return serverutils.Success(ctx, "Task pin updated", fiber.Map{
		"note": res,
	})
}

func (c *noteController) List(ctx *fiber.Ctx) error {
	userId := callerUserId(ctx)

	res, err := c.noteService.ListNotes(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return serverutils.Success(ctx, "Tasks fetched", fiber.Map{
		"notes": res,
	})
}

func (c *noteController) Search(ctx *fiber.Ctx) error {
	userId := callerUserId(ctx)

	res, err := c.noteService.SearchNotes(ctx.Context(), userId, ctx.Query("query"))
	if err != nil {
		return err
	}

	return serverutils.Success(ctx, "Tasks fetched", fiber.Map{
		"notes": res,
	})
}
