package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReduce(t *testing.T) {
	octocat := Payload{Login: "octocat", Name: "The Octocat", AvatarURL: "A", HTMLURL: "B"}
	torvalds := UserProfile{Username: "torvalds", Name: "Linus Torvalds", AvatarURL: "X", ProfileURL: "Y"}
	stored := UserProfile{Username: "octocat", Name: "The Octocat", AvatarURL: "A", ProfileURL: "B"}

	tests := []struct {
		name    string
		current UserProfile
		action  Action
		want    UserProfile
	}{
		{
			name:    "replaces a different user",
			current: torvalds,
			action:  ChangeUser(octocat),
			want:    stored,
		},
		{
			name:    "fills an empty record",
			current: UserProfile{},
			action:  ChangeUser(octocat),
			want:    stored,
		},
		{
			name:    "keeps the same user even if the payload differs",
			current: stored,
			action:  ChangeUser(Payload{Login: "octocat", Name: "renamed"}),
			want:    stored,
		},
		{
			name:    "missing payload fields become empty",
			current: torvalds,
			action:  ChangeUser(Payload{Login: "ghost"}),
			want:    UserProfile{Username: "ghost"},
		},
		{
			name:    "unknown action is identity",
			current: torvalds,
			action:  Action{Kind: "DELETE_USER", Payload: octocat},
			want:    torvalds,
		},
		{
			name:    "zero action is identity",
			current: torvalds,
			action:  Action{},
			want:    torvalds,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Reduce(tt.current, tt.action))
		})
	}
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	current := UserProfile{Username: "torvalds", Name: "Linus Torvalds"}
	before := current

	Reduce(current, ChangeUser(Payload{Login: "octocat"}))

	assert.Equal(t, before, current)
}

func TestUserProfile_IsEmpty(t *testing.T) {
	assert.True(t, UserProfile{}.IsEmpty())
	assert.False(t, UserProfile{Name: "x"}.IsEmpty())
}
