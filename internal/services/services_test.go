package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stackboard/stackboard/internal/database/testutil"
	"github.com/stackboard/stackboard/internal/events"
	"github.com/stackboard/stackboard/internal/identity"
	"github.com/stackboard/stackboard/internal/models"
	"github.com/stackboard/stackboard/internal/store"
)

// testEnv wires the full service layer over an in-memory database.
type testEnv struct {
	store         *store.Store
	provider      *identity.LocalProvider
	bus           *events.Bus
	users         *UserService
	workspaces    *WorkspaceService
	invitations   *InvitationService
	projects      *ProjectService
	tasks         *TaskService
	timeEntries   *TimeEntryService
	activities    *ActivityService
	labels        *LabelService
	notifications *NotificationService
	integrations  *GithubIntegrationService
	search        *SearchService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.MustOpenTestDB(t)
	st, err := store.New(db)
	require.NoError(t, err)

	provider, err := identity.NewLocalProvider(st, identity.Config{AllowAnonymous: true})
	require.NoError(t, err)

	bus := events.NewBus()

	env := &testEnv{store: st, provider: provider, bus: bus}

	env.users, err = NewUserService(st)
	require.NoError(t, err)
	env.workspaces, err = NewWorkspaceService(st, provider, bus)
	require.NoError(t, err)
	env.invitations, err = NewInvitationService(st, provider, bus)
	require.NoError(t, err)
	env.projects, err = NewProjectService(st)
	require.NoError(t, err)
	env.tasks, err = NewTaskService(st, bus)
	require.NoError(t, err)
	env.timeEntries, err = NewTimeEntryService(st)
	require.NoError(t, err)
	env.activities, err = NewActivityService(st)
	require.NoError(t, err)
	env.labels, err = NewLabelService(st)
	require.NoError(t, err)
	env.notifications, err = NewNotificationService(st)
	require.NoError(t, err)
	env.integrations, err = NewGithubIntegrationService(st)
	require.NoError(t, err)
	env.search, err = NewSearchService(st)
	require.NoError(t, err)

	env.notifications.SubscribeEvents(bus)

	return env
}

func (e *testEnv) signUp(t *testing.T, name, email string) *models.User {
	t.Helper()

	result, err := e.provider.SignUp(context.Background(), identity.SignUpInput{
		Name:     name,
		Email:    email,
		Password: "s3cret-password",
	}, identity.SessionMetadata{})
	require.NoError(t, err)
	return result.User
}

func (e *testEnv) createWorkspace(t *testing.T, name string, owner *models.User) *models.Workspace {
	t.Helper()

	workspace, err := e.workspaces.Create(context.Background(), CreateWorkspaceInput{
		Name:      name,
		CreatorID: owner.ID,
	})
	require.NoError(t, err)
	return workspace
}

func (e *testEnv) createProject(t *testing.T, workspaceID, name string) *models.Project {
	t.Helper()

	project, err := e.projects.Create(context.Background(), CreateProjectInput{
		WorkspaceID: workspaceID,
		Name:        name,
	})
	require.NoError(t, err)
	return project
}

func (e *testEnv) createTask(t *testing.T, projectID, title string) *models.Task {
	t.Helper()

	task, err := e.tasks.Create(context.Background(), CreateTaskInput{
		ProjectID: projectID,
		Title:     title,
	})
	require.NoError(t, err)
	return task
}
