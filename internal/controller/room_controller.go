package controller

import (
	"strconv"

	"ideaboard-be/internal/dto"
	"ideaboard-be/internal/pkg/serverutils"
	"ideaboard-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IRoomController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Rename(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Invite(ctx *fiber.Ctx) error
}

type roomController struct {
	roomService service.IRoomService
	ideaService service.IIdeaService
}

func NewRoomController(roomService service.IRoomService, ideaService service.IIdeaService) IRoomController {
	return &roomController{
		roomService: roomService,
		ideaService: ideaService,
	}
}

func (c *roomController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/room/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Put(":id", c.Rename)
	h.Delete(":id", c.Delete)
	h.Post(":id/invite", c.Invite)
}

func (c *roomController) Create(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.CreateRoomRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.roomService.Create(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create room", res))
}

func (c *roomController) List(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.roomService.List(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list rooms", res))
}

func (c *roomController) Show(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	idParam := ctx.Params("id")
	id, _ := uuid.Parse(idParam)

	room, err := c.roomService.Show(ctx.Context(), userId, id)
	if err != nil {
		return err
	}

	ideas, err := c.ideaService.ListByRoom(ctx.Context(), id)
	if err != nil {
		return err
	}

	w, _ := strconv.ParseFloat(ctx.Query("viewport_w", "0"), 64)
	h, _ := strconv.ParseFloat(ctx.Query("viewport_h", "0"), 64)

	bounds, err := c.ideaService.Bounds(ctx.Context(), id, w, h)
	if err != nil {
		return err
	}

	res := &dto.RoomDetailResponse{
		Room:   *room,
		Ideas:  ideas,
		Bounds: bounds,
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show room", res))
}

func (c *roomController) Rename(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	idParam := ctx.Params("id")
	id, _ := uuid.Parse(idParam)

	var req dto.RenameRoomRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.roomService.Rename(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success rename room", res))
}

func (c *roomController) Delete(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	idParam := ctx.Params("id")
	id, _ := uuid.Parse(idParam)

	if err := c.roomService.Delete(ctx.Context(), userId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete room", nil))
}

func (c *roomController) Invite(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	idParam := ctx.Params("id")
	id, _ := uuid.Parse(idParam)

	var req dto.InviteRoomRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.RoomId = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.roomService.Invite(ctx.Context(), userId, &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success send invite", nil))
}
