package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindsCoverEveryModel(t *testing.T) {
	kinds := Kinds()
	require.Len(t, kinds, 14)

	seen := make(map[EntityKind]struct{}, len(kinds))
	for _, kind := range kinds {
		_, dup := seen[kind]
		require.False(t, dup, "kind %q listed twice", kind)
		seen[kind] = struct{}{}
		require.NotNil(t, NewRecord(kind), "kind %q has no backing model", kind)
	}

	require.Nil(t, NewRecord(EntityKind("bogus")))
}

func TestKindsAreTopologicallyOrdered(t *testing.T) {
	position := make(map[EntityKind]int)
	for i, kind := range Kinds() {
		position[kind] = i
	}

	for parent, refs := range references {
		for _, ref := range refs {
			require.Less(t, position[parent], position[ref.Child],
				"parent %q must precede child %q", parent, ref.Child)
		}
	}
}

func TestWorkspaceDeclaresNoProjectCascade(t *testing.T) {
	for _, ref := range ReferencesOf(KindWorkspace) {
		require.NotEqual(t, KindProject, ref.Child,
			"workspace must not cascade into projects")
	}
}

func TestEmailKeyedReferencesCascadeOnUpdate(t *testing.T) {
	var emailRefs int
	for _, ref := range ReferencesOf(KindUser) {
		if ref.ParentCol != "email" {
			continue
		}
		emailRefs++
		require.True(t, ref.OnUpdate, "email reference %s.%s must cascade updates", ref.Child, ref.Column)
		require.True(t, ref.OnDelete, "email reference %s.%s must cascade deletes", ref.Child, ref.Column)
	}
	require.Equal(t, 4, emailRefs)
}
