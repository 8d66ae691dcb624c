package controller

import (
	"strconv"

	"ideaboard-be/internal/dto"
	"ideaboard-be/internal/pkg/serverutils"
	"ideaboard-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IIdeaController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	ListByRoom(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Recolor(ctx *fiber.Ctx) error
	Move(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Bounds(ctx *fiber.Ctx) error
}

type ideaController struct {
	ideaService service.IIdeaService
	roomService service.IRoomService
}

func NewIdeaController(ideaService service.IIdeaService, roomService service.IRoomService) IIdeaController {
	return &ideaController{
		ideaService: ideaService,
		roomService: roomService,
	}
}

func (c *ideaController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/idea/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("room/:roomId", c.Create)
	h.Get("room/:roomId", c.ListByRoom)
	h.Get("room/:roomId/bounds", c.Bounds)
	h.Put(":id", c.Update)
	h.Put(":id/color", c.Recolor)
	h.Put(":id/position", c.Move)
	h.Delete(":id", c.Delete)
}

func (c *ideaController) Create(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	roomIdParam := ctx.Params("roomId")
	roomId, _ := uuid.Parse(roomIdParam)

	var req dto.CreateIdeaRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.RoomId = roomId

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	// Posting into a room makes the author a member.
	if err := c.roomService.EnsureMembership(ctx.Context(), roomId, userId); err != nil {
		return err
	}

	res, err := c.ideaService.Create(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create idea", res))
}

func (c *ideaController) ListByRoom(ctx *fiber.Ctx) error {
	roomIdParam := ctx.Params("roomId")
	roomId, _ := uuid.Parse(roomIdParam)

	res, err := c.ideaService.ListByRoom(ctx.Context(), roomId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list ideas", res))
}

func (c *ideaController) Update(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	idParam := ctx.Params("id")
	id, _ := uuid.Parse(idParam)

	var req dto.UpdateIdeaRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	res, err := c.ideaService.Update(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update idea", res))
}

func (c *ideaController) Recolor(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	idParam := ctx.Params("id")
	id, _ := uuid.Parse(idParam)

	var req dto.RecolorIdeaRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.ideaService.Recolor(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success recolor idea", res))
}

func (c *ideaController) Move(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	idParam := ctx.Params("id")
	id, _ := uuid.Parse(idParam)

	var req dto.MoveIdeaRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := c.ideaService.Move(ctx.Context(), userId, &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success move idea", nil))
}

func (c *ideaController) Delete(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	idParam := ctx.Params("id")
	id, _ := uuid.Parse(idParam)

	if err := c.ideaService.Delete(ctx.Context(), userId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete idea", nil))
}

func (c *ideaController) Bounds(ctx *fiber.Ctx) error {
	roomIdParam := ctx.Params("roomId")
	roomId, _ := uuid.Parse(roomIdParam)

	w, _ := strconv.ParseFloat(ctx.Query("viewport_w", "0"), 64)
	h, _ := strconv.ParseFloat(ctx.Query("viewport_h", "0"), 64)

	res, err := c.ideaService.Bounds(ctx.Context(), roomId, w, h)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success compute bounds", res))
}
