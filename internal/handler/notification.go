package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/middleware"
	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/repository"
)

// NotificationHandler serves the staff notification feed.
type NotificationHandler struct {
	Notifications *repository.NotificationRepo
}

func NewNotificationHandler(n *repository.NotificationRepo) *NotificationHandler {
	return &NotificationHandler{Notifications: n}
}

type notificationResp struct {
	ID        uint64    `json:"id"`
	SenderID  *uint64   `json:"sender_id,omitempty"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

func toNotificationResp(n model.Notification) notificationResp {
	return notificationResp{ID: n.ID, SenderID: n.SenderID, Message: n.Message, Read: n.Read, CreatedAt: n.CreatedAt}
}

// List returns recent notifications, newest first.
func (h *NotificationHandler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	ctx, cancel := reqCtx(c)
	defer cancel()

	ns, err := h.Notifications.List(ctx, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list notifications failed"})
	}
	out := make([]notificationResp, 0, len(ns))
	for _, n := range ns {
		out = append(out, toNotificationResp(n))
	}
	return c.JSON(http.StatusOK, out)
}

type createNotificationReq struct {
	Message string `json:"message"`
}

// Create posts a notification from the authenticated staff member.
func (h *NotificationHandler) Create(c echo.Context) error {
	var req createNotificationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "message required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	sender := middleware.StaffID(c)
	id, err := h.Notifications.Create(ctx, &sender, req.Message)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create notification failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// MarkRead flags one notification as read.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	id := paramID(c, "id")
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid notification id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Notifications.MarkRead(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "notification not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "mark read failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "read"})
}

// UnreadCount returns the badge counter.
func (h *NotificationHandler) UnreadCount(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	n, err := h.Notifications.UnreadCount(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "count failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"unread": n})
}
