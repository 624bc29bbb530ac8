package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gmarinelli/habitpulse/internal/adapters/handler/http/middleware"
	"github.com/gmarinelli/habitpulse/internal/core/services"
)

type TimeLogHandler struct {
	svc *services.TimeLogService
}

func NewTimeLogHandler(svc *services.TimeLogService) *TimeLogHandler {
	return &TimeLogHandler{svc: svc}
}

type logTimeRequest struct {
	Date      string `json:"date"` // YYYY-MM-DD, defaults to today
	TimeSpent int    `json:"time_spent" binding:"required"`
}

func (h *TimeLogHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/habits/:id/timelogs", h.Log)
	router.GET("/habits/:id/timelogs/total", h.Total)
}

func (h *TimeLogHandler) Log(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req logTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	var date time.Time
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, expected YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	entry, err := h.svc.Log(c.Request.Context(), services.LogTimeInput{
		HabitID:   c.Param("id"),
		UserID:    userID,
		Date:      date,
		TimeSpent: req.TimeSpent,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

func (h *TimeLogHandler) Total(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var start, end time.Time
	if s := c.Query("start"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start format, expected YYYY-MM-DD"})
			return
		}
		start = parsed
	}
	if e := c.Query("end"); e != "" {
		parsed, err := time.Parse("2006-01-02", e)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end format, expected YYYY-MM-DD"})
			return
		}
		end = parsed
	}

	total, err := h.svc.TotalTimeSpent(c.Request.Context(), c.Param("id"), userID, start, end, time.Now().UTC())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"habit_id":      c.Param("id"),
		"total_minutes": total,
	})
}
