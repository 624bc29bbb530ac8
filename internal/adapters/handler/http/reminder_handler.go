package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gmarinelli/habitpulse/internal/adapters/handler/http/middleware"
	"github.com/gmarinelli/habitpulse/internal/core/services"
)

const reminderNudge = "Don't forget to complete this habit today!"

type ReminderHandler struct {
	svc *services.HabitService
}

func NewReminderHandler(svc *services.HabitService) *ReminderHandler {
	return &ReminderHandler{svc: svc}
}

type reminderResponse struct {
	Habit        string `json:"habit"`
	ReminderTime string `json:"reminder_time"`
	Message      string `json:"message"`
}

func (h *ReminderHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/reminders", h.List)
}

// List returns the user's habits that carry a reminder time, with the fixed
// nudge message.
func (h *ReminderHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	habits, err := h.svc.ListByUserID(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	reminders := make([]reminderResponse, 0)
	for _, habit := range habits {
		if habit.ReminderTime == nil {
			continue
		}
		reminders = append(reminders, reminderResponse{
			Habit:        habit.Name,
			ReminderTime: *habit.ReminderTime,
			Message:      reminderNudge,
		})
	}

	c.JSON(http.StatusOK, gin.H{"daily_reminders": reminders})
}
