package tests

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpadapter "tasktracker/internal/adapter/http"
	"tasktracker/internal/adapter/http/dto"
	"tasktracker/internal/adapter/http/handlers"
	"tasktracker/internal/adapter/http/mapper"
	"tasktracker/internal/adapter/http/middleware"
	appservice "tasktracker/internal/app/service"
	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/ports"
	"tasktracker/pkg/apierrors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
)

// TasksIntegrationSuite drives the full router against a real store.
type TasksIntegrationSuite struct {
	suite.Suite

	openStore func(t *testing.T) (ports.TaskRepository, ports.Pinger)
	router    *gin.Engine
}

func (s *TasksIntegrationSuite) SetupTest() {
	repository, pinger := s.openStore(s.T())

	router := gin.New()
	router.Use(middleware.RequestIDMiddleware())
	healthHandler := handlers.NewHealthHandler(pinger, "tasktracker", "test")
	taskHandler := handlers.NewTaskHandler(appservice.NewTaskService(repository))
	httpadapter.RegisterRoutes(router, healthHandler, taskHandler)

	s.router = router
}

func (s *TasksIntegrationSuite) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *TasksIntegrationSuite) createTask(body string) dto.TaskItem {
	rec := s.do(http.MethodPost, "/api/tasks", body)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var got dto.TaskResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	return got.Data
}

func (s *TasksIntegrationSuite) getTask(id uint64) dto.TaskItem {
	rec := s.do(http.MethodGet, fmt.Sprintf("/api/tasks/%d", id), "")
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var got dto.TaskResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	return got.Data
}

func (s *TasksIntegrationSuite) listTasks(page int) dto.TaskCollectionResponse {
	rec := s.do(http.MethodGet, fmt.Sprintf("/api/tasks?page=%d", page), "")
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var got dto.TaskCollectionResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	return got
}

func (s *TasksIntegrationSuite) errorOf(rec *httptest.ResponseRecorder) apierrors.Err {
	var got apierrors.JsonErr
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	return got.ErrDetails
}

func (s *TasksIntegrationSuite) parseTimestamp(value string) time.Time {
	parsed, err := time.Parse(mapper.TimestampLayout, value)
	s.Require().NoError(err)
	return parsed
}

func (s *TasksIntegrationSuite) TestHealth() {
	rec := s.do(http.MethodGet, "/api/health", "")

	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().JSONEq(`{"status":"ok"}`, rec.Body.String())
}

func (s *TasksIntegrationSuite) TestHealthReport_DatabaseReachable() {
	rec := s.do(http.MethodGet, "/api/health/report", "")

	s.Require().Equal(http.StatusOK, rec.Code)

	var got handlers.HealthAdvanced
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Require().Equal(handlers.StatusOk, got.Status.Database)
}

func (s *TasksIntegrationSuite) TestCreateTask_DefaultsToTodo() {
	got := s.createTask(`{"title":"Buy groceries","description":"Milk, eggs, bread"}`)

	s.Require().NotZero(got.ID)
	s.Require().Equal("Buy groceries", got.Title)
	s.Require().Equal("Milk, eggs, bread", *got.Description)
	s.Require().Equal("todo", got.Status)
	s.Require().Nil(got.DueAt)
	s.Require().Equal(got.CreatedAt, got.UpdatedAt)
}

func (s *TasksIntegrationSuite) TestCreateTask_InvalidStatusPersistsNothing() {
	rec := s.do(http.MethodPost, "/api/tasks", `{"title":"Invalid task","status":"not-a-real-status"}`)

	s.Require().Equal(http.StatusUnprocessableEntity, rec.Code)
	s.Require().Contains(s.errorOf(rec).Fields, "status")
	s.Require().Equal(0, s.listTasks(1).Meta.Total)
}

func (s *TasksIntegrationSuite) TestCreateTask_MissingTitle() {
	rec := s.do(http.MethodPost, "/api/tasks", `{"status":"done"}`)

	s.Require().Equal(http.StatusUnprocessableEntity, rec.Code)
	s.Require().Equal([]string{"The title field is required."}, s.errorOf(rec).Fields["title"])
	s.Require().Equal(0, s.listTasks(1).Meta.Total)
}

func (s *TasksIntegrationSuite) TestListTasks_NewestFirst() {
	first := s.createTask(`{"title":"first"}`)
	second := s.createTask(`{"title":"second"}`)
	third := s.createTask(`{"title":"third"}`)

	got := s.listTasks(1)

	s.Require().Len(got.Data, 3)
	s.Require().Equal([]uint64{third.ID, second.ID, first.ID}, []uint64{got.Data[0].ID, got.Data[1].ID, got.Data[2].ID})
	s.Require().Equal(3, got.Meta.Total)
	s.Require().Equal(1, got.Meta.LastPage)
	s.Require().Equal(1, got.Meta.CurrentPage)
	s.Require().Equal(10, got.Meta.PerPage)
	s.Require().Nil(got.Links.Next)
}

func (s *TasksIntegrationSuite) TestListTasks_Paginates() {
	for i := 1; i <= 12; i++ {
		s.createTask(fmt.Sprintf(`{"title":"task %d"}`, i))
	}

	page1 := s.listTasks(1)
	s.Require().Len(page1.Data, 10)
	s.Require().Equal("task 12", page1.Data[0].Title)
	s.Require().Equal(12, page1.Meta.Total)
	s.Require().Equal(2, page1.Meta.LastPage)
	s.Require().NotNil(page1.Links.Next)
	s.Require().True(strings.HasSuffix(*page1.Links.Next, "/api/tasks?page=2"))

	page2 := s.listTasks(2)
	s.Require().Len(page2.Data, 2)
	s.Require().Equal("task 2", page2.Data[0].Title)
	s.Require().Equal("task 1", page2.Data[1].Title)
	s.Require().Equal(11, *page2.Meta.From)
	s.Require().Equal(12, *page2.Meta.To)
	s.Require().Nil(page2.Links.Next)

	page3 := s.listTasks(3)
	s.Require().Empty(page3.Data)
	s.Require().Equal(12, page3.Meta.Total)
}

func (s *TasksIntegrationSuite) TestListTasks_HugePageIsEmpty() {
	for i := 1; i <= 3; i++ {
		s.createTask(fmt.Sprintf(`{"title":"task %d"}`, i))
	}

	rec := s.do(http.MethodGet, "/api/tasks?page=922337203685477582", "")
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var got dto.TaskCollectionResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Require().Empty(got.Data)
	s.Require().Equal(3, got.Meta.Total)
	s.Require().Equal(1, got.Meta.LastPage)
	s.Require().Equal(domain.MaxPage, got.Meta.CurrentPage)
	s.Require().Nil(got.Meta.From)
	s.Require().Nil(got.Meta.To)
	s.Require().Nil(got.Links.Next)
}

func (s *TasksIntegrationSuite) TestGetTask_RoundTrip() {
	created := s.createTask(`{"title":"Pay rent","description":"Landlord account","due_at":"2026-03-01T18:30:00Z"}`)

	got := s.getTask(created.ID)

	s.Require().Equal(created, got)
	s.Require().Equal("Pay rent", got.Title)
	s.Require().Equal("Landlord account", *got.Description)
	s.Require().Equal("2026-03-01T18:30:00.000000Z", *got.DueAt)
	s.Require().Equal("todo", got.Status)
}

func (s *TasksIntegrationSuite) TestGetTask_NotFound() {
	for _, target := range []string{"/api/tasks/999", "/api/tasks/abc"} {
		rec := s.do(http.MethodGet, target, "")

		s.Require().Equal(http.StatusNotFound, rec.Code, target)
		s.Require().Equal("Task not found", s.errorOf(rec).Message)
	}
}

func (s *TasksIntegrationSuite) TestUpdateTask_ChangesOnlyGivenFields() {
	created := s.createTask(`{"title":"Buy groceries","description":"Milk","due_at":"2026-03-01 18:30:00"}`)

	rec := s.do(http.MethodPatch, fmt.Sprintf("/api/tasks/%d", created.ID), `{"status":"in_progress"}`)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var updated dto.TaskResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &updated))
	s.Require().Equal("in_progress", updated.Data.Status)
	s.Require().Equal(created.Title, updated.Data.Title)
	s.Require().Equal(created.Description, updated.Data.Description)
	s.Require().Equal(created.DueAt, updated.Data.DueAt)
	s.Require().Equal(created.CreatedAt, updated.Data.CreatedAt)
	s.Require().True(s.parseTimestamp(updated.Data.UpdatedAt).After(s.parseTimestamp(created.UpdatedAt)))

	s.Require().Equal(updated.Data, s.getTask(created.ID))
}

func (s *TasksIntegrationSuite) TestUpdateTask_UpdatedAtStrictlyIncreases() {
	created := s.createTask(`{"title":"counter"}`)

	previous := s.parseTimestamp(created.UpdatedAt)
	for i := 0; i < 5; i++ {
		rec := s.do(http.MethodPatch, fmt.Sprintf("/api/tasks/%d", created.ID), fmt.Sprintf(`{"title":"counter %d"}`, i))
		s.Require().Equal(http.StatusOK, rec.Code)

		var got dto.TaskResponse
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
		current := s.parseTimestamp(got.Data.UpdatedAt)
		s.Require().True(current.After(previous), "%s should be after %s", current, previous)
		previous = current
	}
}

func (s *TasksIntegrationSuite) TestUpdateTask_PutClearsOptionalFields() {
	created := s.createTask(`{"title":"Call mom","description":"Sunday","due_at":"2026-03-01"}`)

	rec := s.do(http.MethodPut, fmt.Sprintf("/api/tasks/%d", created.ID), `{"description":null,"due_at":""}`)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	got := s.getTask(created.ID)
	s.Require().Equal("Call mom", got.Title)
	s.Require().Nil(got.Description)
	s.Require().Nil(got.DueAt)
}

func (s *TasksIntegrationSuite) TestUpdateTask_InvalidPayloadLeavesTaskUntouched() {
	created := s.createTask(`{"title":"Walk the dog"}`)

	rec := s.do(http.MethodPatch, fmt.Sprintf("/api/tasks/%d", created.ID), `{"title":"","status":"archived"}`)

	s.Require().Equal(http.StatusUnprocessableEntity, rec.Code)
	fields := s.errorOf(rec).Fields
	s.Require().Contains(fields, "title")
	s.Require().Contains(fields, "status")
	s.Require().Equal(created, s.getTask(created.ID))
}

func (s *TasksIntegrationSuite) TestUpdateTask_NotFound() {
	for _, body := range []string{`{"title":"ghost"}`, `{"status":"bogus"}`} {
		rec := s.do(http.MethodPatch, "/api/tasks/999", body)

		s.Require().Equal(http.StatusNotFound, rec.Code, body)
		s.Require().Equal("Task not found", s.errorOf(rec).Message)
	}
	s.Require().Equal(0, s.listTasks(1).Meta.Total)
}

func (s *TasksIntegrationSuite) TestDeleteTask_ThenNotFound() {
	created := s.createTask(`{"title":"Temporary"}`)
	target := fmt.Sprintf("/api/tasks/%d", created.ID)

	rec := s.do(http.MethodDelete, target, "")
	s.Require().Equal(http.StatusNoContent, rec.Code)
	s.Require().Empty(rec.Body.String())

	s.Require().Equal(http.StatusNotFound, s.do(http.MethodGet, target, "").Code)
	s.Require().Equal(http.StatusNotFound, s.do(http.MethodDelete, target, "").Code)
	s.Require().Equal(0, s.listTasks(1).Meta.Total)
}

func (s *TasksIntegrationSuite) TestDeleteTask_NonexistentID() {
	rec := s.do(http.MethodDelete, "/api/tasks/12345", "")

	s.Require().Equal(http.StatusNotFound, rec.Code)
	s.Require().Equal("Task not found", s.errorOf(rec).Message)
}

func (s *TasksIntegrationSuite) TestRequestIDIsEchoed() {
	rec := s.do(http.MethodGet, "/api/health", "")

	s.Require().NotEmpty(rec.Header().Get(middleware.HeaderRequestID))
}
