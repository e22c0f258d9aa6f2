package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/lumen/internal/analytics"
	"github.com/julianstephens/lumen/internal/models"
	"github.com/julianstephens/lumen/internal/service"
	"github.com/julianstephens/lumen/internal/wellness"
)

type handlers struct {
	svc *service.Service
}

func (h *handlers) meta() map[string]interface{} {
	return map[string]interface{}{"date": h.svc.Today().String()}
}

func (h *handlers) allHabitStats(c *gin.Context) {
	res, err := h.svc.AllHabitsStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, res, h.meta())
}

func (h *handlers) habitStats(c *gin.Context) {
	res, err := h.svc.HabitStats(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, res, h.meta())
}

type createHabitRequest struct {
	Name      string           `json:"name" binding:"required"`
	Category  string           `json:"category"`
	Frequency models.Frequency `json:"frequency"`
	Type      models.HabitType `json:"type"`
	StartDate models.Date      `json:"startDate"`
}

func (h *handlers) createHabit(c *gin.Context) {
	var req createHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, badRequest(fmt.Sprintf("invalid habit: %v", err)))
		return
	}
	habit, err := h.svc.AddHabit(c.Request.Context(), models.Habit{
		Name:      strings.TrimSpace(req.Name),
		Category:  req.Category,
		Frequency: req.Frequency,
		Type:      req.Type,
		StartDate: req.StartDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusCreated, habit, nil)
}

type toggleRequest struct {
	Date models.Date `json:"date"`
}

type toggleResponse struct {
	HabitID   string      `json:"habitId"`
	Date      models.Date `json:"date"`
	Completed bool        `json:"completed"`
}

func (h *handlers) toggleHabit(c *gin.Context) {
	var req toggleRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, badRequest(fmt.Sprintf("invalid toggle: %v", err)))
			return
		}
	}
	if req.Date.IsZero() {
		req.Date = h.svc.Today()
	}
	done, err := h.svc.ToggleCompletion(c.Request.Context(), c.Param("id"), req.Date)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toggleResponse{HabitID: c.Param("id"), Date: req.Date, Completed: done}, nil)
}

func (h *handlers) archiveHabit(c *gin.Context) {
	if err := h.svc.ArchiveHabit(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) unarchiveHabit(c *gin.Context) {
	if err := h.svc.UnarchiveHabit(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) deleteHabit(c *gin.Context) {
	if err := h.svc.DeleteHabit(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) moodStats(c *gin.Context) {
	days := h.svc.MoodWindowDays()
	if raw := strings.TrimSpace(c.Query("days")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			respondError(c, badRequest("days must be an integer"))
			return
		}
		days = n
	}
	res, err := h.svc.MoodStats(c.Request.Context(), days)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, res, h.meta())
}

func (h *handlers) moodInsights(c *gin.Context) {
	res, err := h.svc.MoodInsights(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, res, h.meta())
}

type logMoodRequest struct {
	Date  models.Date   `json:"date"`
	Mood  models.MoodID `json:"mood" binding:"required"`
	Entry string        `json:"entry"`
}

func (h *handlers) logMood(c *gin.Context) {
	var req logMoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, badRequest(fmt.Sprintf("invalid mood entry: %v", err)))
		return
	}
	entry, err := h.svc.LogMood(c.Request.Context(), models.MoodEntry{Date: req.Date, Mood: req.Mood, Entry: req.Entry})
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusCreated, entry, nil)
}

func (h *handlers) deleteMood(c *gin.Context) {
	date, err := models.ParseDate(c.Param("date"))
	if err != nil {
		respondError(c, badRequest(err.Error()))
		return
	}
	if err := h.svc.DeleteMood(c.Request.Context(), date); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) analytics(c *gin.Context) {
	res, err := h.svc.Analytics(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, res, h.meta())
}

func (h *handlers) dashboard(c *gin.Context) {
	res, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, res, h.meta())
}

func (h *handlers) wellness(c *gin.Context) {
	all, _ := strconv.ParseBool(c.DefaultQuery("all", "false"))
	res, err := h.svc.WellnessReport(c.Request.Context(), wellness.Options{All: all})
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, res, h.meta())
}

func (h *handlers) export(c *gin.Context) {
	format, err := analytics.ParseFormat(c.DefaultQuery("format", string(analytics.FormatJSON)))
	if err != nil {
		respondError(c, err)
		return
	}
	body, err := h.svc.ExportAnalytics(c.Request.Context(), format)
	if err != nil {
		respondError(c, err)
		return
	}
	filename := fmt.Sprintf("lumen-analytics-%s.%s", h.svc.Today(), format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, format.ContentType(), body)
}
