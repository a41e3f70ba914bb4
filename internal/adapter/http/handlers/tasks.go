package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"tasktracker/internal/adapter/http/mapper"
	"tasktracker/internal/adapter/http/middleware"
	"tasktracker/internal/adapter/http/validation"
	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/ports"
	"tasktracker/pkg/apierrors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type TaskHandler struct {
	taskService ports.TaskService
}

func NewTaskHandler(taskService ports.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	lang := middleware.GetLang(c)

	page, err := h.taskService.ListTasks(c.Request.Context(), parsePage(c.Query("page")))
	if err != nil {
		zap.L().Error("failed to list tasks", zap.Error(err), zap.String("request_id", middleware.GetRequestID(c)))
		respondError(c, http.StatusInternalServerError, apierrors.MsgFailListTask, lang)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskCollection(page, listURL(c)))
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	lang := middleware.GetLang(c)

	taskID, ok := parseTaskID(c)
	if !ok {
		respondError(c, http.StatusNotFound, apierrors.MsgTaskNotFound, lang)
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), taskID)
	if err != nil {
		h.respondServiceError(c, err, taskID, "failed to get task", apierrors.MsgFailGetTask, lang)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskResponse(task))
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	lang := middleware.GetLang(c)

	raw, err := readPayload(c)
	if err != nil {
		respondPayloadError(c, err, lang)
		return
	}

	input, err := validation.BuildCreateTaskInput(raw)
	if err != nil {
		respondPayloadError(c, err, lang)
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), input)
	if err != nil {
		zap.L().Error("failed to create task", zap.Error(err), zap.String("request_id", middleware.GetRequestID(c)))
		respondError(c, http.StatusInternalServerError, apierrors.MsgFailCreateTask, lang)
		return
	}

	c.JSON(http.StatusCreated, mapper.ToTaskResponse(task))
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	lang := middleware.GetLang(c)

	taskID, ok := parseTaskID(c)
	if !ok {
		respondError(c, http.StatusNotFound, apierrors.MsgTaskNotFound, lang)
		return
	}

	// A missing task answers 404 whatever the payload holds.
	if _, err := h.taskService.GetTask(c.Request.Context(), taskID); err != nil {
		h.respondServiceError(c, err, taskID, "failed to update task", apierrors.MsgFailUpdateTask, lang)
		return
	}

	raw, err := readPayload(c)
	if err != nil {
		respondPayloadError(c, err, lang)
		return
	}

	input, err := validation.BuildUpdateTaskInput(raw)
	if err != nil {
		respondPayloadError(c, err, lang)
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), taskID, input)
	if err != nil {
		h.respondServiceError(c, err, taskID, "failed to update task", apierrors.MsgFailUpdateTask, lang)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskResponse(task))
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	lang := middleware.GetLang(c)

	taskID, ok := parseTaskID(c)
	if !ok {
		respondError(c, http.StatusNotFound, apierrors.MsgTaskNotFound, lang)
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), taskID); err != nil {
		h.respondServiceError(c, err, taskID, "failed to delete task", apierrors.MsgFailDeleteTask, lang)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *TaskHandler) respondServiceError(c *gin.Context, err error, taskID uint64, logMsg, msgKey, lang string) {
	if errors.Is(err, domain.ErrTaskNotFound) {
		respondError(c, http.StatusNotFound, apierrors.MsgTaskNotFound, lang)
		return
	}

	zap.L().Error(logMsg, zap.Uint64("task_id", taskID), zap.Error(err), zap.String("request_id", middleware.GetRequestID(c)))
	respondError(c, http.StatusInternalServerError, msgKey, lang)
}

// A non-numeric id cannot match any task, so it is reported as not found.
func parseTaskID(c *gin.Context) (uint64, bool) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || taskID == 0 {
		return 0, false
	}
	return taskID, true
}

func readPayload(c *gin.Context) (map[string]json.RawMessage, error) {
	body, err := c.GetRawData()
	if err != nil {
		return nil, validation.ErrInvalidTaskPayload
	}
	return validation.DecodePayload(body)
}

func parsePage(value string) int {
	value = strings.TrimSpace(value)
	page, err := strconv.Atoi(value)
	if errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(value, "-") {
		return domain.MaxPage
	}
	if err != nil || page < 1 {
		return 1
	}
	return domain.NewPageRequest(page).Page
}

// listURL is the absolute URL of the listing without its query string.
func listURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil || strings.EqualFold(c.GetHeader("X-Forwarded-Proto"), "https") {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host + c.Request.URL.Path
}
