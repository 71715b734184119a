package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackboard/stackboard/internal/models"
	"github.com/stackboard/stackboard/internal/store"
)

func TestTaskCreateAssignsSequentialNumbers(t *testing.T) {
	env := newTestEnv(t)

	owner := env.signUp(t, "Ada", "ada@example.com")
	workspace := env.createWorkspace(t, "Board", owner)
	project := env.createProject(t, workspace.ID, "Backend")

	first := env.createTask(t, project.ID, "Set up CI")
	second := env.createTask(t, project.ID, "Write docs")

	assert.Equal(t, 1, first.Number)
	assert.Equal(t, 2, second.Number)
	assert.Equal(t, models.TaskStatusToDo, first.Status)
	assert.Equal(t, models.TaskPriorityLow, first.Priority)
	assert.Less(t, first.Position, second.Position)
}

func TestTaskCreateNumbersInOneTransaction(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.signUp(t, "Ada", "ada@example.com")
	workspace := env.createWorkspace(t, "Board", owner)
	backend := env.createProject(t, workspace.ID, "Backend")
	frontend := env.createProject(t, workspace.ID, "Frontend")

	// Numbers are claimed together with the insert, so they stay unique
	// and gapless per project no matter which column a task lands in.
	statuses := []string{
		models.TaskStatusToDo,
		models.TaskStatusInProgress,
		models.TaskStatusToDo,
		models.TaskStatusDone,
	}
	seen := map[int]bool{}
	for i, status := range statuses {
		task, err := env.tasks.Create(ctx, CreateTaskInput{
			ProjectID: backend.ID,
			Title:     "Task",
			Status:    status,
		})
		require.NoError(t, err)
		assert.Equal(t, i+1, task.Number)
		assert.False(t, seen[task.Number])
		seen[task.Number] = true
	}

	// Positions append per column.
	todo, err := env.tasks.List(ctx, ListTasksInput{ProjectID: backend.ID, Status: models.TaskStatusToDo})
	require.NoError(t, err)
	require.Len(t, todo, 2)
	assert.Equal(t, 0, todo[0].Position)
	assert.Equal(t, 1, todo[1].Position)

	// Other projects start their own sequence.
	other, err := env.tasks.Create(ctx, CreateTaskInput{ProjectID: frontend.ID, Title: "First"})
	require.NoError(t, err)
	assert.Equal(t, 1, other.Number)
}

func TestTaskCreateWithAssigneeNotifiesAndRecordsActivity(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.signUp(t, "Ada", "ada@example.com")
	assignee := env.signUp(t, "Bob", "bob@example.com")
	workspace := env.createWorkspace(t, "Board", owner)
	project := env.createProject(t, workspace.ID, "Backend")

	task, err := env.tasks.Create(ctx, CreateTaskInput{
		ProjectID:     project.ID,
		Title:         "Review PR",
		AssigneeEmail: assignee.Email,
		ActorEmail:    owner.Email,
	})
	require.NoError(t, err)
	require.NotNil(t, task.AssigneeEmail)
	assert.Equal(t, assignee.Email, *task.AssigneeEmail)

	feed, err := env.activities.ListForTask(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, ActivityTaskCreated, feed[0].Type)
	assert.Equal(t, owner.Email, feed[0].UserEmail)

	notifications, err := env.notifications.ListForUser(ctx, assignee.Email, true)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, NotificationTypeAssignment, notifications[0].Type)
	assert.Equal(t, task.ID, notifications[0].ResourceID)
}

func TestTaskCreateRejectsUnknownAssignee(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.signUp(t, "Ada", "ada@example.com")
	workspace := env.createWorkspace(t, "Board", owner)
	project := env.createProject(t, workspace.ID, "Backend")

	_, err := env.tasks.Create(ctx, CreateTaskInput{
		ProjectID:     project.ID,
		Title:         "Orphan assignee",
		AssigneeEmail: "ghost@example.com",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, store.ErrForeignKeyViolation))
}

func TestTaskUpdateRecordsStatusAndAssigneeChanges(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.signUp(t, "Ada", "ada@example.com")
	assignee := env.signUp(t, "Bob", "bob@example.com")
	workspace := env.createWorkspace(t, "Board", owner)
	project := env.createProject(t, workspace.ID, "Backend")
	task := env.createTask(t, project.ID, "Ship it")

	status := models.TaskStatusInProgress
	email := assignee.Email
	updated, err := env.tasks.Update(ctx, task.ID, UpdateTaskInput{
		Status:        &status,
		AssigneeEmail: &email,
		ActorEmail:    owner.Email,
	})
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusInProgress, updated.Status)
	require.NotNil(t, updated.AssigneeEmail)
	assert.Equal(t, assignee.Email, *updated.AssigneeEmail)

	feed, err := env.activities.ListForTask(ctx, task.ID)
	require.NoError(t, err)

	types := make([]string, 0, len(feed))
	for _, entry := range feed {
		types = append(types, entry.Type)
	}
	assert.Contains(t, types, ActivityStatusChanged)
	assert.Contains(t, types, ActivityTaskAssigned)
}

func TestTaskListFilters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.signUp(t, "Ada", "ada@example.com")
	workspace := env.createWorkspace(t, "Board", owner)
	project := env.createProject(t, workspace.ID, "Backend")

	done := models.TaskStatusDone
	open := env.createTask(t, project.ID, "Open task")
	_, err := env.tasks.Create(ctx, CreateTaskInput{
		ProjectID: project.ID,
		Title:     "Done task",
		Status:    done,
	})
	require.NoError(t, err)

	all, err := env.tasks.List(ctx, ListTasksInput{ProjectID: project.ID})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	doneOnly, err := env.tasks.List(ctx, ListTasksInput{ProjectID: project.ID, Status: done})
	require.NoError(t, err)
	require.Len(t, doneOnly, 1)
	assert.NotEqual(t, open.ID, doneOnly[0].ID)
}

func TestTaskDeleteCascadesDependents(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.signUp(t, "Ada", "ada@example.com")
	workspace := env.createWorkspace(t, "Board", owner)
	project := env.createProject(t, workspace.ID, "Backend")
	task := env.createTask(t, project.ID, "Short lived")

	_, err := env.labels.Create(ctx, CreateLabelInput{TaskID: task.ID, Name: "bug"})
	require.NoError(t, err)
	_, err = env.activities.Create(ctx, CreateActivityInput{
		TaskID:    task.ID,
		UserEmail: owner.Email,
		Content:   "first comment",
	})
	require.NoError(t, err)

	require.NoError(t, env.tasks.Delete(ctx, task.ID))

	labels, err := env.labels.ListForTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Empty(t, labels)

	feed, err := env.activities.ListForTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Empty(t, feed)
}
