package handlers

import (
	"errors"

	"college-cms/internal/core/domain"
	"college-cms/internal/core/services"
	"college-cms/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// NotificationHandler handles notification endpoints
type NotificationHandler struct {
	notifications *services.NotificationService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notifications *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// recipient resolves the notification recipient id for the caller. Broadcast
// entries (HR team, system) are included by the store for every recipient.
func (h *NotificationHandler) recipient(c *fiber.Ctx) (string, error) {
	employeeNo, ok := c.Locals("employeeNo").(string)
	if !ok || employeeNo == "" {
		return "", errors.New("no employee number in token")
	}
	return employeeNo, nil
}

// List returns the caller's notifications, newest first
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	recipientID, err := h.recipient(c)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	return response.Success(c, "Notifications retrieved", fiber.Map{
		"notifications": h.notifications.List(recipientID),
		"unread_count":  h.notifications.UnreadCount(recipientID),
	})
}

// UnreadCount returns the caller's unread notification count
func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	recipientID, err := h.recipient(c)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	return response.Success(c, "Unread count retrieved", fiber.Map{
		"unread_count": h.notifications.UnreadCount(recipientID),
	})
}

// MarkAsRead marks one notification as read
func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return response.BadRequest(c, "Notification ID is required")
	}

	if err := h.notifications.MarkAsRead(id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Notification not found")
		}
		return response.InternalServerError(c, "Failed to mark notification as read")
	}

	return response.Success(c, "Notification marked as read", nil)
}

// Clear removes the caller's own notifications. Broadcast entries stay.
func (h *NotificationHandler) Clear(c *fiber.Ctx) error {
	recipientID, err := h.recipient(c)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	removed := h.notifications.Clear(recipientID)

	return response.Success(c, "Notifications cleared", fiber.Map{
		"removed": removed,
	})
}
