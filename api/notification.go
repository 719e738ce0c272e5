package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushub/campushub-BE/internal/notification"
	"github.com/campushub/campushub-BE/internal/token"
)

type listNotificationsRequest struct {
	Limit  int32 `form:"limit"`
	Offset int32 `form:"offset"`
}

// @Summary		List my notifications
// @Description	Returns the authenticated user's notifications, newest first
// @Tags			notifications
// @Produce		json
// @Param			limit	query		int	false	"Page size (max 100)"
// @Param			offset	query		int	false	"Page offset"
// @Success		200		{array}		notification.Notification
// @Failure		401		{object}	object
// @Security		accessToken
// @Router			/users/me/notifications [get]
func (server *Server) listMyNotifications(c *gin.Context) {
	authPayload := c.MustGet(authorizationPayloadKey).(*token.Payload)

	var req listNotificationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	notifications, err := server.notifier.ListForRecipient(c.Request.Context(), authPayload.Subject, req.Limit, req.Offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse(err))
		return
	}

	c.JSON(http.StatusOK, notifications)
}

// @Summary		Count my unread notifications
// @Tags			notifications
// @Produce		json
// @Success		200	{object}	object	"{"unread_count": n}"
// @Failure		401	{object}	object
// @Security		accessToken
// @Router			/users/me/notifications/unread-count [get]
func (server *Server) getUnreadNotificationCount(c *gin.Context) {
	authPayload := c.MustGet(authorizationPayloadKey).(*token.Payload)

	count, err := server.notifier.UnreadCount(c.Request.Context(), authPayload.Subject)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"unread_count": count})
}

// @Summary		Mark a notification as read
// @Description	Idempotent; marking an already-read notification changes nothing
// @Tags			notifications
// @Produce		json
// @Param			id	path		string	true	"Notification ID"
// @Success		204	{string}	string	"No Content"
// @Failure		404	{object}	object	"No such notification for this user"
// @Security		accessToken
// @Router			/users/me/notifications/{id}/read [patch]
func (server *Server) markNotificationRead(c *gin.Context) {
	authPayload := c.MustGet(authorizationPayloadKey).(*token.Payload)
	notificationID := c.Param("id")

	err := server.notifier.MarkRead(c.Request.Context(), authPayload.Subject, notificationID)
	if err != nil {
		if errors.Is(err, notification.ErrNotificationNotFound) {
			c.JSON(http.StatusNotFound, errorResponse(err))
			return
		}
		c.JSON(http.StatusInternalServerError, errorResponse(err))
		return
	}

	c.Status(http.StatusNoContent)
}

type sendNotificationsRequest struct {
	RecipientIDs []string        `json:"recipient_ids" binding:"required,min=1"`
	Title        string          `json:"title" binding:"required"`
	Body         string          `json:"body" binding:"required"`
	Category     string          `json:"category" binding:"required"`
	Payload      json.RawMessage `json:"payload"`
}

type sendNotificationResult struct {
	RecipientID string                     `json:"recipient_id"`
	Record      *notification.Notification `json:"record,omitempty"`
	Delivery    string                     `json:"delivery,omitempty"`
	Error       string                     `json:"error,omitempty"`
}

// @Summary		Send a notification to specific users
// @Description	Persists one record per recipient and pushes it to their live sessions. Failures are reported per recipient.
// @Tags			notifications
// @Accept			json
// @Produce		json
// @Param			request	body		sendNotificationsRequest	true	"Recipients and content"
// @Success		200		{array}		sendNotificationResult
// @Failure		400		{object}	object
// @Failure		403		{object}	object
// @Security		accessToken
// @Router			/admin/notifications [post]
func (server *Server) sendNotifications(c *gin.Context) {
	var req sendNotificationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	content := notification.Content{
		Title:    req.Title,
		Body:     req.Body,
		Category: notification.Category(req.Category),
		Payload:  req.Payload,
	}

	results, err := server.notifier.SendToMany(c.Request.Context(), req.RecipientIDs, content)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	response := make([]sendNotificationResult, len(results))
	for i, result := range results {
		response[i] = sendNotificationResult{
			RecipientID: result.RecipientID,
			Record:      result.Record,
		}
		if result.Err != nil {
			response[i].Error = result.Err.Error()
		} else {
			response[i].Delivery = string(result.Outcome.Status)
		}
	}

	c.JSON(http.StatusOK, response)
}
