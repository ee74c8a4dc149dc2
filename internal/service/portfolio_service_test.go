package service

import (
	"context"
	"testing"

	"devconnect/internal/models"
	"devconnect/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortfolioService_Get(t *testing.T) {
	testutil.NewTestRedis(t)
	f := newFixture(t, true)
	svc := NewPortfolioService(f.users, f.projects)
	ctx := context.Background()

	p, err := svc.Get(ctx, "johndoe")
	require.NoError(t, err)
	assert.Equal(t, "John Doe", p.User.FullName)
	assert.Equal(t, "San Francisco, CA", p.User.Location)
	assert.Equal(t, "January 2022", p.User.JoinDate)
	assert.Equal(t, "https://github.com/johndoe", p.User.GithubURL)
	assert.Equal(t, "john@example.com", p.User.Email)
	assert.Len(t, p.Skills, 18)
	assert.Equal(t, []string{"E-commerce Platform", "Task Management App"}, projectTitles(p.Featured))
	assert.Equal(t, []string{"Weather Dashboard", "Blog Platform"}, projectTitles(p.Other))
	assert.EqualValues(t, 1, p.Views)

	p, err = svc.Get(ctx, "johndoe")
	require.NoError(t, err)
	assert.EqualValues(t, 2, p.Views)
}

func TestPortfolioService_HidesDraftProjects(t *testing.T) {
	f := newFixture(t, true)
	john := f.user(t, "johndoe")
	ctx := context.Background()
	require.NoError(t, f.projects.Create(ctx, &models.Project{UserID: john.ID, Title: "Secret", Status: models.StatusDraft}))

	p, err := NewPortfolioService(f.users, f.projects).Get(ctx, "johndoe")
	require.NoError(t, err)
	assert.Len(t, p.Featured, 2)
	assert.Len(t, p.Other, 2)
	// Without Redis the counter reads zero.
	assert.Zero(t, p.Views)
}

func TestPortfolioService_DefaultsForSparseProfile(t *testing.T) {
	f := newFixture(t, true)
	p, err := NewPortfolioService(f.users, f.projects).Get(context.Background(), "alexchen")
	require.NoError(t, err)
	assert.Empty(t, p.User.GithubURL)
	assert.NotNil(t, p.Skills)
	assert.Empty(t, p.Featured)
	assert.Empty(t, p.Other)
}

func TestPortfolioService_UnknownUser(t *testing.T) {
	f := newFixture(t, true)
	_, err := NewPortfolioService(f.users, f.projects).Get(context.Background(), "ghost")
	assert.Equal(t, models.CodeNotFound, models.ErrorCode(err))
}

func projectTitles(projects []models.Project) []string {
	out := make([]string, 0, len(projects))
	for _, p := range projects {
		out = append(out, p.Title)
	}
	return out
}
