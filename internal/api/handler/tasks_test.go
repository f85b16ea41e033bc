package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"github.com/taskdeck/taskdeck/internal/api/models"
)

func (s *HandlerTestSuite) TestCreateTask() {
	alice := s.register("alice", "alice@example.com", "pw1")

	w := s.request(http.MethodPost, "/tasks", alice.Token, gin.H{
		"title":       "buy milk",
		"description": "2 liters",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var task models.Task
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &task))
	s.Equal("buy milk", task.Title)
	s.Equal("2 liters", task.Description)
	s.Equal(alice.User.ID, task.CreatedBy)
	s.False(task.IsCompleted)
	s.NotZero(task.ID)
}

func (s *HandlerTestSuite) TestCreateTask_MissingTitle() {
	alice := s.register("alice", "alice@example.com", "pw1")

	w := s.request(http.MethodPost, "/tasks", alice.Token, gin.H{"description": "no title"})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(s.fieldErrors(w), "title")
}

func (s *HandlerTestSuite) TestCreateTask_IgnoresClientOwner() {
	alice := s.register("alice", "alice@example.com", "pw1")
	bob := s.register("bob", "bob@example.com", "pw2")

	w := s.request(http.MethodPost, "/tasks", alice.Token, gin.H{
		"title":      "sneaky",
		"created_by": bob.User.ID,
	})
	s.Require().Equal(http.StatusCreated, w.Code)

	var task models.Task
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &task))
	s.Equal(alice.User.ID, task.CreatedBy)
}

func (s *HandlerTestSuite) TestListTasks_TenantIsolation() {
	alice := s.register("alice", "alice@example.com", "pw1")
	bob := s.register("bob", "bob@example.com", "pw2")

	s.createTask(alice.Token, "alice 1")
	s.createTask(bob.Token, "bob 1")
	s.createTask(alice.Token, "alice 2")

	w := s.request(http.MethodGet, "/tasks", alice.Token, nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var tasks []models.Task
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &tasks))
	s.Equal([]string{"alice 1", "alice 2"}, lo.Map(tasks, func(t models.Task, _ int) string {
		return t.Title
	}))
	for _, task := range tasks {
		s.Equal(alice.User.ID, task.CreatedBy)
	}
}

func (s *HandlerTestSuite) TestListTasks_AdminSeesAll() {
	alice := s.register("alice", "alice@example.com", "pw1")
	bob := s.register("bob", "bob@example.com", "pw2")
	admin := s.registerAdmin("root", "root@example.com", "pw3")

	s.createTask(alice.Token, "alice 1")
	s.createTask(bob.Token, "bob 1")

	w := s.request(http.MethodGet, "/tasks", admin.Token, nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var tasks []models.Task
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &tasks))
	s.Equal([]string{"alice 1", "bob 1"}, lo.Map(tasks, func(t models.Task, _ int) string {
		return t.Title
	}))
}

func (s *HandlerTestSuite) TestListTasks_EmptyIsArray() {
	alice := s.register("alice", "alice@example.com", "pw1")

	w := s.request(http.MethodGet, "/tasks", alice.Token, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.JSONEq("[]", w.Body.String())
}

func (s *HandlerTestSuite) TestGetTask() {
	alice := s.register("alice", "alice@example.com", "pw1")
	created := s.createTask(alice.Token, "buy milk")

	w := s.request(http.MethodGet, fmt.Sprintf("/tasks/%d", created.ID), alice.Token, nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var task models.Task
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &task))
	s.Equal(created.ID, task.ID)
	s.Equal("buy milk", task.Title)
}

func (s *HandlerTestSuite) TestGetTask_OtherUserForbidden() {
	alice := s.register("alice", "alice@example.com", "pw1")
	bob := s.register("bob", "bob@example.com", "pw2")
	created := s.createTask(alice.Token, "private")

	w := s.request(http.MethodGet, fmt.Sprintf("/tasks/%d", created.ID), bob.Token, nil)
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *HandlerTestSuite) TestGetTask_AdminAllowed() {
	alice := s.register("alice", "alice@example.com", "pw1")
	admin := s.registerAdmin("root", "root@example.com", "pw3")
	created := s.createTask(alice.Token, "visible to admin")

	w := s.request(http.MethodGet, fmt.Sprintf("/tasks/%d", created.ID), admin.Token, nil)
	s.Equal(http.StatusOK, w.Code)
}

func (s *HandlerTestSuite) TestGetTask_NotFound() {
	alice := s.register("alice", "alice@example.com", "pw1")
	admin := s.registerAdmin("root", "root@example.com", "pw3")

	for _, token := range []string{alice.Token, admin.Token} {
		w := s.request(http.MethodGet, "/tasks/999", token, nil)
		s.Equal(http.StatusNotFound, w.Code)
	}
}

func (s *HandlerTestSuite) TestGetTask_NonNumericID() {
	alice := s.register("alice", "alice@example.com", "pw1")

	w := s.request(http.MethodGet, "/tasks/abc", alice.Token, nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *HandlerTestSuite) TestUpdateTask_Put() {
	alice := s.register("alice", "alice@example.com", "pw1")
	created := s.createTask(alice.Token, "before")

	w := s.request(http.MethodPut, fmt.Sprintf("/tasks/%d", created.ID), alice.Token, gin.H{
		"title":        "after",
		"description":  "updated",
		"is_completed": true,
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var task models.Task
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &task))
	s.Equal("after", task.Title)
	s.Equal("updated", task.Description)
	s.True(task.IsCompleted)
	s.Equal(alice.User.ID, task.CreatedBy)
}

func (s *HandlerTestSuite) TestUpdateTask_PutRequiresAllFields() {
	alice := s.register("alice", "alice@example.com", "pw1")
	created := s.createTask(alice.Token, "before")

	w := s.request(http.MethodPut, fmt.Sprintf("/tasks/%d", created.ID), alice.Token, gin.H{
		"title": "only title",
	})
	s.Equal(http.StatusBadRequest, w.Code)

	errs := s.fieldErrors(w)
	s.Contains(errs, "description")
	s.Contains(errs, "is_completed")
}

func (s *HandlerTestSuite) TestUpdateTask_OwnerImmutable() {
	alice := s.register("alice", "alice@example.com", "pw1")
	bob := s.register("bob", "bob@example.com", "pw2")
	created := s.createTask(alice.Token, "mine")

	w := s.request(http.MethodPut, fmt.Sprintf("/tasks/%d", created.ID), alice.Token, gin.H{
		"title":        "still mine",
		"description":  "",
		"is_completed": false,
		"created_by":   bob.User.ID,
	})
	s.Require().Equal(http.StatusOK, w.Code)

	var task models.Task
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &task))
	s.Equal(alice.User.ID, task.CreatedBy)
}

func (s *HandlerTestSuite) TestPatchTask_Subset() {
	alice := s.register("alice", "alice@example.com", "pw1")
	created := s.createTask(alice.Token, "buy milk")

	w := s.request(http.MethodPatch, fmt.Sprintf("/tasks/%d", created.ID), alice.Token, gin.H{
		"is_completed": true,
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var task models.Task
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &task))
	s.True(task.IsCompleted)
	s.Equal("buy milk", task.Title)
}

func (s *HandlerTestSuite) TestPatchTask_BlankTitleRejected() {
	alice := s.register("alice", "alice@example.com", "pw1")
	created := s.createTask(alice.Token, "buy milk")

	w := s.request(http.MethodPatch, fmt.Sprintf("/tasks/%d", created.ID), alice.Token, gin.H{
		"title": "",
	})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(s.fieldErrors(w), "title")
}

func (s *HandlerTestSuite) TestPatchTask_OtherUserForbidden() {
	alice := s.register("alice", "alice@example.com", "pw1")
	bob := s.register("bob", "bob@example.com", "pw2")
	created := s.createTask(alice.Token, "private")

	w := s.request(http.MethodPatch, fmt.Sprintf("/tasks/%d", created.ID), bob.Token, gin.H{
		"is_completed": true,
	})
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *HandlerTestSuite) TestDeleteTask() {
	alice := s.register("alice", "alice@example.com", "pw1")
	created := s.createTask(alice.Token, "to delete")

	w := s.request(http.MethodDelete, fmt.Sprintf("/tasks/%d", created.ID), alice.Token, nil)
	s.Equal(http.StatusNoContent, w.Code)
	s.Empty(w.Body.String())

	w = s.request(http.MethodGet, fmt.Sprintf("/tasks/%d", created.ID), alice.Token, nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *HandlerTestSuite) TestDeleteTask_NotFound() {
	alice := s.register("alice", "alice@example.com", "pw1")

	w := s.request(http.MethodDelete, "/tasks/999", alice.Token, nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *HandlerTestSuite) TestDeleteTask_OtherUserForbidden() {
	alice := s.register("alice", "alice@example.com", "pw1")
	bob := s.register("bob", "bob@example.com", "pw2")
	created := s.createTask(alice.Token, "private")

	w := s.request(http.MethodDelete, fmt.Sprintf("/tasks/%d", created.ID), bob.Token, nil)
	s.Equal(http.StatusForbidden, w.Code)

	// Still there for the owner
	w = s.request(http.MethodGet, fmt.Sprintf("/tasks/%d", created.ID), alice.Token, nil)
	s.Equal(http.StatusOK, w.Code)
}

func (s *HandlerTestSuite) TestDeleteTask_AdminAllowed() {
	alice := s.register("alice", "alice@example.com", "pw1")
	admin := s.registerAdmin("root", "root@example.com", "pw3")
	created := s.createTask(alice.Token, "cleanup")

	w := s.request(http.MethodDelete, fmt.Sprintf("/tasks/%d", created.ID), admin.Token, nil)
	s.Equal(http.StatusNoContent, w.Code)
}

func (s *HandlerTestSuite) TestTasks_RequireAuth() {
	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/tasks"},
		{http.MethodPost, "/tasks"},
		{http.MethodGet, "/tasks/1"},
		{http.MethodPut, "/tasks/1"},
		{http.MethodPatch, "/tasks/1"},
		{http.MethodDelete, "/tasks/1"},
	}

	for _, route := range routes {
		w := s.request(route.method, route.path, "", nil)
		s.Equal(http.StatusUnauthorized, w.Code, "%s %s", route.method, route.path)
	}
}
