package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/lithammer/shortuuid/v4"

	"github.com/campushub/campushub-BE/internal/worker"
)

type createAnnouncementRequest struct {
	Title   string               `json:"title" binding:"required"`
	Content string               `json:"content" binding:"required"`
	Target  worker.TargetPayload `json:"target" binding:"required"`
}

// @Summary		Publish an announcement
// @Description	Queues an announcement for fan-out to every recipient the target resolves to. Returns the announcement code immediately; delivery happens in the background worker.
// @Tags			announcements
// @Accept			json
// @Produce		json
// @Param			request	body		createAnnouncementRequest	true	"Announcement content and target"
// @Success		202		{object}	object						"{"code": "..."}"
// @Failure		400		{object}	object
// @Failure		403		{object}	object
// @Security		accessToken
// @Router			/admin/announcements [post]
func (server *Server) createAnnouncement(c *gin.Context) {
	var req createAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	// Reject malformed targets before queueing; unknown scope IDs are only
	// detectable at resolution time in the worker.
	if _, err := req.Target.Descriptor(); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}
	if req.Target.Type == worker.TargetTypeUsers && len(req.Target.UserIDs) == 0 {
		c.JSON(http.StatusBadRequest, errorResponse(errors.New("target user list must not be empty")))
		return
	}

	payload := &worker.PayloadSendAnnouncement{
		AnnouncementCode: shortuuid.New(),
		Target:           req.Target,
		Title:            req.Title,
		Body:             req.Content,
	}

	err := server.taskDistributor.DistributeTaskSendAnnouncement(c.Request.Context(), payload,
		asynq.Queue(worker.QueueCritical),
		asynq.MaxRetry(5),
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse(err))
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"code": payload.AnnouncementCode})
}
