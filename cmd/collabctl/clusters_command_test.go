package main

import (
	"bytes"
	"testing"

	"codecollab-be/internal/entity"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupProfiles(t *testing.T) {
	alice, bob, carol := uuid.New(), uuid.New(), uuid.New()
	profiles := []*entity.Profile{
		{UserId: alice, Interests: "go rust systems"},
		{UserId: bob, Interests: "go rust systems"},
		{UserId: carol, Interests: "painting watercolor"},
	}
	users := []*entity.User{
		{Id: alice, Username: "alice"},
		{Id: bob, Username: "bob"},
	}

	groups := groupProfiles(profiles, users, 2)
	require.Len(t, groups, 2)

	var together []clusterMember
	for _, members := range groups {
		if len(members) == 2 {
			together = members
		}
	}
	require.Len(t, together, 2)
	assert.Equal(t, "alice", together[0].Username)
	assert.Equal(t, "bob", together[1].Username)

	for _, members := range groups {
		if len(members) == 1 {
			assert.Equal(t, carol.String(), members[0].Username)
		}
	}
}

func TestGroupProfilesEmpty(t *testing.T) {
	assert.Empty(t, groupProfiles(nil, nil, 5))
}

func TestRenderClusters(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	renderClusters(&buf, map[int][]clusterMember{
		1: {{Username: "carol", Interests: "art"}},
		0: {{Username: "alice", Interests: "go"}, {Username: "bob", Interests: "go"}},
	})

	assert.Equal(t, "Cluster 0 (2)\n  alice  go\n  bob  go\nCluster 1 (1)\n  carol  art\n", buf.String())

	buf.Reset()
	renderClusters(&buf, nil)
	assert.Equal(t, "No profiles with interests\n", buf.String())
}

func TestRootCommandListsSubcommands(t *testing.T) {
	cmd := newRootCommand()
	names := make([]string, 0)
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"clusters", "activity", "exec"})
}
