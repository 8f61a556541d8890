package handler

import (
	"context"

	"ghprofile/internal/app/feed"
	"ghprofile/internal/app/profile"
	"ghprofile/internal/configs"
	"ghprofile/internal/pkg/limiter"
)

// ProfileState is the read+write capability pair views get over the profile record.
type ProfileState interface {
	Current() profile.UserProfile
	Dispatch(ctx context.Context, action profile.Action) profile.UserProfile
}

// ProfileSearch triggers a lookup-and-dispatch.
type ProfileSearch interface {
	Search(ctx context.Context, username string) (profile.UserProfile, error)
}

// AppDeps carries everything the handlers need. It is built once in main.
type AppDeps struct {
	Config   *configs.AppConfig
	State    ProfileState
	Searcher ProfileSearch
	Feed     *feed.Hub

	// LookupLimiter throttles lookups per client IP.
	LookupLimiter *limiter.IPRateLimiter
}
