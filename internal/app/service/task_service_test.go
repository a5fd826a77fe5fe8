package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/drashti-2005/task-manager-sub000/internal/core/domain"
)

var (
	actorUser    = domain.Actor{ID: "u1", Role: domain.RoleUser}
	actorManager = domain.Actor{ID: "m1", Role: domain.RoleManager}
)

func newTestTaskService(tasks *taskStoreFake, teams *teamStoreFake, users *userStoreFake) (*TaskService, *activityLogStub) {
	recorder, logs := newTestRecorder()
	svc := NewTaskService(tasks, teams, users, recorder)
	return svc, logs
}

func defaultUsers() *userStoreFake {
	return newUserStoreFake(
		&domain.User{ID: "u1", Role: domain.RoleUser, IsActive: true, AccountStatus: domain.AccountActive},
		&domain.User{ID: "u2", Role: domain.RoleUser, IsActive: true, AccountStatus: domain.AccountActive},
		&domain.User{ID: "m1", Role: domain.RoleManager, IsActive: true, AccountStatus: domain.AccountActive},
	)
}

func TestTaskCreate_SelfAssignmentDefaults(t *testing.T) {
	tasks := newTaskStoreFake()
	svc, logs := newTestTaskService(tasks, newTeamStoreFake(), defaultUsers())

	task, err := svc.Create(context.Background(), actorUser, domain.CreateTaskInput{
		Title:      "  write report  ",
		Assignment: domain.SelfAssignment("u1"),
	}, domain.RequestMeta{})
	require.NoError(t, err)
	require.Equal(t, "write report", task.Title)
	require.Equal(t, domain.TaskStatusPending, task.Status)
	require.Equal(t, domain.TaskPriorityMedium, task.Priority)
	require.Nil(t, task.CompletedAt)
	require.Equal(t, "u1", task.CreatedBy)
	require.Equal(t, domain.ActionTaskCreated, logs.lastAction())
}

func TestTaskCreate_RejectsInvalidPayload(t *testing.T) {
	svc, _ := newTestTaskService(newTaskStoreFake(), newTeamStoreFake(), defaultUsers())

	_, err := svc.Create(context.Background(), actorUser, domain.CreateTaskInput{
		Title:      "   ",
		Assignment: domain.SelfAssignment("u1"),
	}, domain.RequestMeta{})
	require.ErrorIs(t, err, domain.ErrInvalidTask)

	_, err = svc.Create(context.Background(), actorUser, domain.CreateTaskInput{
		Title:      "valid title",
		Status:     domain.TaskStatus("done"),
		Assignment: domain.SelfAssignment("u1"),
	}, domain.RequestMeta{})
	require.ErrorIs(t, err, domain.ErrInvalidTask)
}

func TestTaskUpdateStatus_RejectsUnknownStatus(t *testing.T) {
	svc, logs := newTestTaskService(newTaskStoreFake(), newTeamStoreFake(), defaultUsers())

	_, err := svc.UpdateStatus(context.Background(), actorUser, "t1", domain.TaskStatus("done"), domain.RequestMeta{})
	require.ErrorIs(t, err, domain.ErrInvalidTask)
	require.Empty(t, logs.entries)
}

func TestTaskCreate_UserCannotAssignOthers(t *testing.T) {
	svc, _ := newTestTaskService(newTaskStoreFake(), newTeamStoreFake(), defaultUsers())

	_, err := svc.Create(context.Background(), actorUser, domain.CreateTaskInput{
		Title:      "delegate",
		Assignment: domain.IndividualAssignment("u2"),
	}, domain.RequestMeta{})
	require.ErrorIs(t, err, domain.ErrRoleForbidden)
}

func TestTaskCreate_AssigneeMustExist(t *testing.T) {
	svc, _ := newTestTaskService(newTaskStoreFake(), newTeamStoreFake(), defaultUsers())

	_, err := svc.Create(context.Background(), actorManager, domain.CreateTaskInput{
		Title:      "for a ghost",
		Assignment: domain.IndividualAssignment("ghost"),
	}, domain.RequestMeta{})
	require.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = svc.Create(context.Background(), actorManager, domain.CreateTaskInput{
		Title:      "for a missing team",
		Assignment: domain.TeamAssignment("ghost-team"),
	}, domain.RequestMeta{})
	require.ErrorIs(t, err, domain.ErrTeamNotFound)
}

func TestTaskCreate_CompletedAtStampedWhenCreatedCompleted(t *testing.T) {
	svc, _ := newTestTaskService(newTaskStoreFake(), newTeamStoreFake(), defaultUsers())
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	task, err := svc.Create(context.Background(), actorUser, domain.CreateTaskInput{
		Title:      "already done",
		Status:     domain.TaskStatusCompleted,
		Assignment: domain.SelfAssignment("u1"),
	}, domain.RequestMeta{})
	require.NoError(t, err)
	require.NotNil(t, task.CompletedAt)
	require.Equal(t, now, *task.CompletedAt)
}

func TestTaskList_UserSeesOnlyTheirScope(t *testing.T) {
	tasks := newTaskStoreFake(
		&domain.Task{ID: "t1", Title: "mine", Assignment: domain.IndividualAssignment("u1"), CreatedBy: "m1"},
		&domain.Task{ID: "t2", Title: "team", Assignment: domain.TeamAssignment("team1"), CreatedBy: "m1"},
		&domain.Task{ID: "t3", Title: "foreign", Assignment: domain.IndividualAssignment("u2"), CreatedBy: "m1"},
		&domain.Task{ID: "t4", Title: "other team", Assignment: domain.TeamAssignment("team2"), CreatedBy: "m1"},
	)
	teams := newTeamStoreFake(
		&domain.Team{ID: "team1", Name: "Core", MemberIDs: []string{"u1"}, IsActive: true},
		&domain.Team{ID: "team2", Name: "Infra", MemberIDs: []string{"u2"}, IsActive: true},
	)
	svc, _ := newTestTaskService(tasks, teams, defaultUsers())

	got, err := svc.List(context.Background(), actorUser, domain.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "t1", got[0].ID)
	require.Equal(t, "t2", got[1].ID)

	all, err := svc.List(context.Background(), actorManager, domain.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
}

func TestTaskGet_ForbiddenOutsideScope(t *testing.T) {
	tasks := newTaskStoreFake(
		&domain.Task{ID: "t3", Title: "foreign", Assignment: domain.IndividualAssignment("u2"), CreatedBy: "m1"},
	)
	svc, _ := newTestTaskService(tasks, newTeamStoreFake(), defaultUsers())

	_, err := svc.Get(context.Background(), actorUser, "t3")
	require.ErrorIs(t, err, domain.ErrTaskForbidden)

	got, err := svc.Get(context.Background(), actorManager, "t3")
	require.NoError(t, err)
	require.Equal(t, "t3", got.ID)
}

func TestTaskUpdate_UserFieldRestrictions(t *testing.T) {
	tasks := newTaskStoreFake(
		&domain.Task{ID: "t1", Title: "mine", Status: domain.TaskStatusPending, Priority: domain.TaskPriorityLow, Assignment: domain.IndividualAssignment("u1"), CreatedBy: "m1"},
	)
	svc, _ := newTestTaskService(tasks, newTeamStoreFake(), defaultUsers())

	// Status and description are allowed for the assignee.
	status := domain.TaskStatusInProgress
	desc := "working on it"
	got, err := svc.Update(context.Background(), actorUser, "t1", domain.UpdateTaskInput{
		Status:         &status,
		Description:    &desc,
		DescriptionSet: true,
	}, domain.RequestMeta{})
	require.NoError(t, err)
	require.Equal(t, domain.TaskStatusInProgress, got.Status)
	require.Equal(t, "working on it", *got.Description)

	// Priority is not.
	prio := domain.TaskPriorityHigh
	_, err = svc.Update(context.Background(), actorUser, "t1", domain.UpdateTaskInput{Priority: &prio}, domain.RequestMeta{})
	require.ErrorIs(t, err, domain.ErrFieldForbidden)

	// A manager can change anything.
	_, err = svc.Update(context.Background(), actorManager, "t1", domain.UpdateTaskInput{Priority: &prio}, domain.RequestMeta{})
	require.NoError(t, err)
}

func TestTaskUpdate_ForeignTaskIsTaskForbidden(t *testing.T) {
	tasks := newTaskStoreFake(
		&domain.Task{ID: "t3", Title: "foreign", Assignment: domain.IndividualAssignment("u2"), CreatedBy: "m1"},
	)
	svc, _ := newTestTaskService(tasks, newTeamStoreFake(), defaultUsers())

	// Even an allowed field on a foreign task yields the ownership error,
	// not the field error.
	status := domain.TaskStatusCompleted
	_, err := svc.Update(context.Background(), actorUser, "t3", domain.UpdateTaskInput{Status: &status}, domain.RequestMeta{})
	require.ErrorIs(t, err, domain.ErrTaskForbidden)
}

func TestTaskUpdate_CompletedAtInvariant(t *testing.T) {
	tasks := newTaskStoreFake(
		&domain.Task{ID: "t1", Title: "mine", Status: domain.TaskStatusPending, Assignment: domain.IndividualAssignment("u1"), CreatedBy: "u1"},
	)
	svc, _ := newTestTaskService(tasks, newTeamStoreFake(), defaultUsers())
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	completed := domain.TaskStatusCompleted
	got, err := svc.Update(context.Background(), actorUser, "t1", domain.UpdateTaskInput{Status: &completed}, domain.RequestMeta{})
	require.NoError(t, err)
	require.NotNil(t, got.CompletedAt)
	require.Equal(t, now, *got.CompletedAt)

	// Reopening clears the stamp in the same write.
	pending := domain.TaskStatusPending
	got, err = svc.Update(context.Background(), actorUser, "t1", domain.UpdateTaskInput{Status: &pending}, domain.RequestMeta{})
	require.NoError(t, err)
	require.Nil(t, got.CompletedAt)

	stored, err := tasks.GetByID(context.Background(), "t1")
	require.NoError(t, err)
	require.Equal(t, domain.TaskStatusPending, stored.Status)
	require.Nil(t, stored.CompletedAt)
}

func TestTaskUpdate_NoChangesSkipsWrite(t *testing.T) {
	tasks := newTaskStoreFake(
		&domain.Task{ID: "t1", Title: "mine", Status: domain.TaskStatusPending, Assignment: domain.IndividualAssignment("u1"), CreatedBy: "u1"},
	)
	svc, logs := newTestTaskService(tasks, newTeamStoreFake(), defaultUsers())

	same := domain.TaskStatusPending
	_, err := svc.Update(context.Background(), actorUser, "t1", domain.UpdateTaskInput{Status: &same}, domain.RequestMeta{})
	require.NoError(t, err)
	require.Empty(t, logs.entries)
}

func TestTaskUpdate_RecordsFieldChanges(t *testing.T) {
	tasks := newTaskStoreFake(
		&domain.Task{ID: "t1", Title: "old title", Status: domain.TaskStatusPending, Priority: domain.TaskPriorityLow, Assignment: domain.IndividualAssignment("u1"), CreatedBy: "m1"},
	)
	svc, logs := newTestTaskService(tasks, newTeamStoreFake(), defaultUsers())

	title := "new title"
	prio := domain.TaskPriorityHigh
	_, err := svc.Update(context.Background(), actorManager, "t1", domain.UpdateTaskInput{Title: &title, Priority: &prio}, domain.RequestMeta{})
	require.NoError(t, err)

	require.Len(t, logs.entries, 1)
	entry := logs.entries[0]
	require.Equal(t, domain.ActionTaskUpdated, entry.Action)
	require.Equal(t, "old title", entry.Changes["title"].Before)
	require.Equal(t, "new title", entry.Changes["title"].After)
	require.Equal(t, "low", entry.Changes["priority"].Before)
	require.Equal(t, "high", entry.Changes["priority"].After)
}

func TestTaskUpdateStatus_Idempotent(t *testing.T) {
	tasks := newTaskStoreFake(
		&domain.Task{ID: "t1", Title: "mine", Status: domain.TaskStatusPending, Assignment: domain.IndividualAssignment("u1"), CreatedBy: "u1"},
	)
	svc, logs := newTestTaskService(tasks, newTeamStoreFake(), defaultUsers())

	got, err := svc.UpdateStatus(context.Background(), actorUser, "t1", domain.TaskStatusPending, domain.RequestMeta{})
	require.NoError(t, err)
	require.Equal(t, domain.TaskStatusPending, got.Status)
	require.Empty(t, logs.entries)

	got, err = svc.UpdateStatus(context.Background(), actorUser, "t1", domain.TaskStatusCompleted, domain.RequestMeta{})
	require.NoError(t, err)
	require.NotNil(t, got.CompletedAt)
	require.Equal(t, domain.ActionTaskStatusChanged, logs.lastAction())
}

func TestTaskDelete_RoleGated(t *testing.T) {
	tasks := newTaskStoreFake(
		&domain.Task{ID: "t1", Title: "mine", Assignment: domain.IndividualAssignment("u1"), CreatedBy: "u1"},
	)
	svc, logs := newTestTaskService(tasks, newTeamStoreFake(), defaultUsers())

	// Users cannot delete, not even their own tasks.
	err := svc.Delete(context.Background(), actorUser, "t1", domain.RequestMeta{})
	require.ErrorIs(t, err, domain.ErrRoleForbidden)

	err = svc.Delete(context.Background(), actorManager, "t1", domain.RequestMeta{})
	require.NoError(t, err)
	require.Equal(t, domain.ActionTaskDeleted, logs.lastAction())

	_, err = tasks.GetByID(context.Background(), "t1")
	require.ErrorIs(t, err, domain.ErrTaskNotFound)
}
