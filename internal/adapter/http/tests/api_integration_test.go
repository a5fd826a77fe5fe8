//go:build integration
// +build integration

package tests

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"

	dbadapter "github.com/drashti-2005/task-manager-sub000/internal/adapter/db"
	httpadapter "github.com/drashti-2005/task-manager-sub000/internal/adapter/http"
	"github.com/drashti-2005/task-manager-sub000/internal/adapter/http/dto"
	"github.com/drashti-2005/task-manager-sub000/internal/adapter/http/handlers"
	"github.com/drashti-2005/task-manager-sub000/internal/adapter/ws"
	"github.com/drashti-2005/task-manager-sub000/internal/app/audit"
	appservice "github.com/drashti-2005/task-manager-sub000/internal/app/service"
	"github.com/drashti-2005/task-manager-sub000/pkg/apierrors"
	"github.com/drashti-2005/task-manager-sub000/pkg/ratelimit"
)

const integrationSecret = "integration-secret"

type APIIntegrationSuite struct {
	IntegrationSuiteBase
	router *gin.Engine
}

func TestAPIIntegrationSuite(t *testing.T) {
	suite.Run(t, new(APIIntegrationSuite))
}

func (s *APIIntegrationSuite) SetupTest() {
	s.ResetDatabase()

	userRepo := dbadapter.NewUserRepository(s.DB)
	taskRepo := dbadapter.NewTaskRepository(s.DB)
	teamRepo := dbadapter.NewTeamRepository(s.DB)
	activityRepo := dbadapter.NewActivityLogRepository(s.DB)

	hub := ws.NewHub()
	recorder := audit.NewRecorder(activityRepo, hub)

	// No mail transport: forgot-password answers with the dev-mode link.
	authService := appservice.NewAuthService(userRepo, recorder, nil, integrationSecret, time.Hour, "http://localhost:3000")
	taskService := appservice.NewTaskService(taskRepo, teamRepo, userRepo, recorder)
	teamService := appservice.NewTeamService(teamRepo, taskRepo, userRepo, recorder)
	analyticsService := appservice.NewAnalyticsService(taskRepo, teamRepo)
	adminService := appservice.NewAdminService(userRepo, taskRepo, teamRepo, activityRepo, recorder, appservice.DeletePolicyCascade)

	router := gin.New()
	httpadapter.RegisterRoutes(router, httpadapter.RouterDeps{
		Health:     handlers.NewHealthHandler(s.DB),
		Auth:       handlers.NewAuthHandler(authService, userRepo),
		Tasks:      handlers.NewTaskHandler(taskService),
		Teams:      handlers.NewTeamHandler(teamService),
		Analytics:  handlers.NewAnalyticsHandler(analyticsService),
		Admin:      handlers.NewAdminHandler(adminService, hub),
		Users:      userRepo,
		JWTSecret:  integrationSecret,
		Limiter:    ratelimit.NewMemoryStore(),
		RateLimit:  1000,
		RateWindow: time.Minute,
	})
	s.router = router
}

func (s *APIIntegrationSuite) do(method, path, token, body string) *httptest.ResponseRecorder {
	var reqBody io.Reader
	if body != "" {
		reqBody = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reqBody)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *APIIntegrationSuite) register(name, email, password string) dto.AuthResponse {
	body := fmt.Sprintf(`{"name":%q,"email":%q,"password":%q}`, name, email, password)
	rec := s.do(http.MethodPost, "/api/auth/register", "", body)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var got dto.AuthResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Require().NotEmpty(got.Token)
	return got
}

// promote flips a role directly in the store; the next request re-reads the
// account, so the existing token picks the new role up immediately.
func (s *APIIntegrationSuite) promote(email, role string) {
	_, err := s.DB.Exec("UPDATE users SET role = ? WHERE email = ?", role, email)
	s.Require().NoError(err)
}

func (s *APIIntegrationSuite) TestRegisterLoginAndMe() {
	reg := s.register("Alice", "alice@example.com", "secret123")
	s.Require().Equal("user", reg.User.Role)

	// Duplicate registration is rejected.
	rec := s.do(http.MethodPost, "/api/auth/register", "",
		`{"name":"Alice Again","email":"ALICE@example.com","password":"secret123"}`)
	s.Require().Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/api/auth/login", "",
		`{"email":"alice@example.com","password":"secret123"}`)
	s.Require().Equal(http.StatusOK, rec.Code)

	var login dto.AuthResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &login))

	rec = s.do(http.MethodGet, "/api/auth/me", login.Token, "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().Contains(rec.Body.String(), `"email":"alice@example.com"`)

	rec = s.do(http.MethodGet, "/api/auth/me", "", "")
	s.Require().Equal(http.StatusUnauthorized, rec.Code)
}

func (s *APIIntegrationSuite) TestLoginLockoutAfterRepeatedFailures() {
	s.register("Alice", "alice@example.com", "secret123")

	for i := 0; i < 5; i++ {
		rec := s.do(http.MethodPost, "/api/auth/login", "",
			`{"email":"alice@example.com","password":"wrong-pass"}`)
		s.Require().Equal(http.StatusUnauthorized, rec.Code)
	}

	// The right password no longer helps once the account is locked.
	rec := s.do(http.MethodPost, "/api/auth/login", "",
		`{"email":"alice@example.com","password":"secret123"}`)
	s.Require().Equal(http.StatusForbidden, rec.Code)

	var got apierrors.Envelope
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Require().Equal("Account temporarily locked due to repeated failed logins", got.Message)
}

func (s *APIIntegrationSuite) TestTaskLifecycle() {
	alice := s.register("Alice", "alice@example.com", "secret123")

	rec := s.do(http.MethodPost, "/api/tasks", alice.Token,
		`{"title":"Write integration tests","priority":"high","tags":["backend"]}`)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		Task dto.TaskItem `json:"task"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &created))
	s.Require().NotEmpty(created.Task.ID)
	s.Require().Equal("pending", created.Task.Status)
	s.Require().Equal("self", created.Task.AssignmentType)

	taskID := created.Task.ID

	rec = s.do(http.MethodPatch, "/api/tasks/"+taskID+"/status", alice.Token, `{"status":"completed"}`)
	s.Require().Equal(http.StatusOK, rec.Code)

	var patched struct {
		Task dto.TaskItem `json:"task"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &patched))
	s.Require().Equal("completed", patched.Task.Status)
	s.Require().NotNil(patched.Task.CompletedAt)

	// Reverting the status clears the completion timestamp again.
	rec = s.do(http.MethodPatch, "/api/tasks/"+taskID+"/status", alice.Token, `{"status":"pending"}`)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &patched))
	s.Require().Nil(patched.Task.CompletedAt)

	// A plain user may not touch the priority.
	rec = s.do(http.MethodPut, "/api/tasks/"+taskID, alice.Token, `{"priority":"low"}`)
	s.Require().Equal(http.StatusForbidden, rec.Code)

	// Nor delete.
	rec = s.do(http.MethodDelete, "/api/tasks/"+taskID, alice.Token, "")
	s.Require().Equal(http.StatusForbidden, rec.Code)

	s.promote("alice@example.com", "manager")

	rec = s.do(http.MethodPut, "/api/tasks/"+taskID, alice.Token, `{"priority":"low"}`)
	s.Require().Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodDelete, "/api/tasks/"+taskID, alice.Token, "")
	s.Require().Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/api/tasks/"+taskID, alice.Token, "")
	s.Require().Equal(http.StatusNotFound, rec.Code)
}

func (s *APIIntegrationSuite) TestTaskVisibilityAcrossUsers() {
	alice := s.register("Alice", "alice@example.com", "secret123")
	bob := s.register("Bob", "bob@example.com", "secret123")
	carol := s.register("Carol", "carol@example.com", "secret123")
	s.promote("carol@example.com", "manager")

	rec := s.do(http.MethodPost, "/api/tasks", alice.Token, `{"title":"Alice's own task"}`)
	s.Require().Equal(http.StatusCreated, rec.Code)

	var list struct {
		Tasks []dto.TaskItem `json:"tasks"`
	}

	rec = s.do(http.MethodGet, "/api/tasks", bob.Token, "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &list))
	s.Require().Empty(list.Tasks)

	rec = s.do(http.MethodGet, "/api/tasks", carol.Token, "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &list))
	s.Require().Len(list.Tasks, 1)

	// The manager can assign the task to Bob, after which he sees it.
	taskID := list.Tasks[0].ID
	rec = s.do(http.MethodPut, "/api/tasks/"+taskID, carol.Token,
		fmt.Sprintf(`{"assignmentType":"individual","assignedTo":%q}`, bob.User.ID))
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodGet, "/api/tasks", bob.Token, "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &list))
	s.Require().Len(list.Tasks, 1)
}

func (s *APIIntegrationSuite) TestForgotAndResetPasswordFlow() {
	s.register("Alice", "alice@example.com", "secret123")

	rec := s.do(http.MethodPost, "/api/auth/forgot-password", "", `{"email":"alice@example.com"}`)
	s.Require().Equal(http.StatusOK, rec.Code)

	var forgot dto.ForgotPasswordResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &forgot))
	s.Require().NotEmpty(forgot.ResetToken)
	s.Require().Contains(forgot.ResetURL, forgot.ResetToken)

	body := fmt.Sprintf(`{"token":%q,"newPassword":"brand-new-pw"}`, forgot.ResetToken)
	rec = s.do(http.MethodPost, "/api/auth/reset-password", "", body)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	// Old password is out, new one works, token is spent.
	rec = s.do(http.MethodPost, "/api/auth/login", "", `{"email":"alice@example.com","password":"secret123"}`)
	s.Require().Equal(http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodPost, "/api/auth/login", "", `{"email":"alice@example.com","password":"brand-new-pw"}`)
	s.Require().Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodPost, "/api/auth/reset-password", "", body)
	s.Require().Equal(http.StatusBadRequest, rec.Code)
}

func (s *APIIntegrationSuite) TestAnalyticsOverview() {
	alice := s.register("Alice", "alice@example.com", "secret123")

	rec := s.do(http.MethodPost, "/api/tasks", alice.Token, `{"title":"one"}`)
	s.Require().Equal(http.StatusCreated, rec.Code)
	rec = s.do(http.MethodPost, "/api/tasks", alice.Token, `{"title":"two","status":"completed"}`)
	s.Require().Equal(http.StatusCreated, rec.Code)

	rec = s.do(http.MethodGet, "/api/analytics/overview", alice.Token, "")
	s.Require().Equal(http.StatusOK, rec.Code)

	var got struct {
		Overview struct {
			TotalTasks     int     `json:"totalTasks"`
			CompletionRate float64 `json:"completionRate"`
		} `json:"overview"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Require().Equal(2, got.Overview.TotalTasks)
	s.Require().InDelta(50.0, got.Overview.CompletionRate, 0.001)
}

func (s *APIIntegrationSuite) TestAdminEndpoints() {
	alice := s.register("Alice", "alice@example.com", "secret123")
	admin := s.register("Root", "root@example.com", "secret123")

	rec := s.do(http.MethodGet, "/api/admin/users", alice.Token, "")
	s.Require().Equal(http.StatusForbidden, rec.Code)

	s.promote("root@example.com", "admin")

	rec = s.do(http.MethodGet, "/api/admin/users", admin.Token, "")
	s.Require().Equal(http.StatusOK, rec.Code)

	var users dto.UserListResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &users))
	s.Require().Equal(2, users.Total)

	// The admin listing spans every user's tasks.
	rec = s.do(http.MethodPost, "/api/tasks", alice.Token, `{"title":"Alice's own task"}`)
	s.Require().Equal(http.StatusCreated, rec.Code)
	rec = s.do(http.MethodGet, "/api/admin/tasks", admin.Token, "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().Contains(rec.Body.String(), `"Alice's own task"`)

	rec = s.do(http.MethodGet, "/api/admin/dashboard", admin.Token, "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().Contains(rec.Body.String(), `"totalUsers":2`)

	// Registration and logins already produced audit entries.
	rec = s.do(http.MethodGet, "/api/admin/activity-logs?action=USER_REGISTERED", admin.Token, "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().Contains(rec.Body.String(), `"USER_REGISTERED"`)

	rec = s.do(http.MethodDelete, "/api/admin/users/"+alice.User.ID, admin.Token, "")
	s.Require().Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/api/auth/me", alice.Token, "")
	s.Require().Equal(http.StatusUnauthorized, rec.Code)
}
