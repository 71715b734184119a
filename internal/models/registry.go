package models

// EntityKind discriminates the table/record shape a generic store operation
// targets.
type EntityKind string

const (
	KindUser              EntityKind = "user"
	KindSession           EntityKind = "session"
	KindAccount           EntityKind = "account"
	KindVerification      EntityKind = "verification"
	KindWorkspace         EntityKind = "workspace"
	KindWorkspaceMember   EntityKind = "workspace_member"
	KindInvitation        EntityKind = "invitation"
	KindProject           EntityKind = "project"
	KindTask              EntityKind = "task"
	KindTimeEntry         EntityKind = "time_entry"
	KindActivity          EntityKind = "activity"
	KindLabel             EntityKind = "label"
	KindNotification      EntityKind = "notification"
	KindGithubIntegration EntityKind = "github_integration"
)

// Reference describes one declared foreign key from a child entity to a
// parent column, together with its cascade rules.
type Reference struct {
	Child     EntityKind
	Column    string // child column holding the reference
	ParentCol string // referenced parent column ("id" or "email")
	OnDelete  bool   // cascade delete declared
	OnUpdate  bool   // cascade update declared
}

// references lists every declared relation, keyed by parent kind. The
// workspace->project edge is intentionally absent: the schema declares no
// such constraint and none may be added.
var references = map[EntityKind][]Reference{
	KindUser: {
		{Child: KindSession, Column: "user_id", ParentCol: "id", OnDelete: true},
		{Child: KindAccount, Column: "user_id", ParentCol: "id", OnDelete: true},
		{Child: KindWorkspaceMember, Column: "user_id", ParentCol: "id", OnDelete: true},
		{Child: KindInvitation, Column: "inviter_id", ParentCol: "id", OnDelete: true},
		{Child: KindTask, Column: "assignee_email", ParentCol: "email", OnDelete: true, OnUpdate: true},
		{Child: KindTimeEntry, Column: "user_email", ParentCol: "email", OnDelete: true, OnUpdate: true},
		{Child: KindActivity, Column: "user_email", ParentCol: "email", OnDelete: true, OnUpdate: true},
		{Child: KindNotification, Column: "user_email", ParentCol: "email", OnDelete: true, OnUpdate: true},
	},
	KindWorkspace: {
		{Child: KindWorkspaceMember, Column: "workspace_id", ParentCol: "id", OnDelete: true},
		{Child: KindInvitation, Column: "workspace_id", ParentCol: "id", OnDelete: true},
	},
	KindProject: {
		{Child: KindTask, Column: "project_id", ParentCol: "id", OnDelete: true, OnUpdate: true},
		{Child: KindGithubIntegration, Column: "project_id", ParentCol: "id", OnDelete: true, OnUpdate: true},
	},
	KindTask: {
		{Child: KindTimeEntry, Column: "task_id", ParentCol: "id", OnDelete: true, OnUpdate: true},
		{Child: KindActivity, Column: "task_id", ParentCol: "id", OnDelete: true, OnUpdate: true},
		{Child: KindLabel, Column: "task_id", ParentCol: "id", OnDelete: true, OnUpdate: true},
	},
}

// Kinds returns every entity kind in topological order, parents before
// children. Migration creates tables in this order; a cascading delete walks
// it in reverse.
func Kinds() []EntityKind {
	return []EntityKind{
		KindUser,
		KindSession,
		KindAccount,
		KindVerification,
		KindWorkspace,
		KindWorkspaceMember,
		KindInvitation,
		KindProject,
		KindTask,
		KindTimeEntry,
		KindActivity,
		KindLabel,
		KindNotification,
		KindGithubIntegration,
	}
}

// ReferencesOf returns the declared child references of the given parent kind.
func ReferencesOf(parent EntityKind) []Reference {
	return references[parent]
}

// NewRecord returns a zero value of the model backing the given kind, or nil
// for an unknown kind.
func NewRecord(kind EntityKind) any {
	switch kind {
	case KindUser:
		return &User{}
	case KindSession:
		return &Session{}
	case KindAccount:
		return &Account{}
	case KindVerification:
		return &Verification{}
	case KindWorkspace:
		return &Workspace{}
	case KindWorkspaceMember:
		return &WorkspaceMember{}
	case KindInvitation:
		return &Invitation{}
	case KindProject:
		return &Project{}
	case KindTask:
		return &Task{}
	case KindTimeEntry:
		return &TimeEntry{}
	case KindActivity:
		return &Activity{}
	case KindLabel:
		return &Label{}
	case KindNotification:
		return &Notification{}
	case KindGithubIntegration:
		return &GithubIntegration{}
	default:
		return nil
	}
}
