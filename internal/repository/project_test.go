package repository

import (
	"context"
	"regexp"
	"testing"

	"devconnect/internal/models"
	"devconnect/internal/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	project := &models.Project{
		UserID: 1,
		Title:  "Weather Dashboard",
		Tech:   []string{"React", "Chart.js"},
		Status: models.StatusPublished,
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "projects"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.Create(ctx, project)
	assert.NoError(t, err)
	assert.Equal(t, uint(1), project.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepository_ListByUser(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	owner := &models.User{Username: "johndoe", Email: "john@example.com", Password: "x"}
	require.NoError(t, db.Create(owner).Error)

	projects := []*models.Project{
		{UserID: owner.ID, Title: "Weather Dashboard", Tech: []string{"React"}, Stars: 15, Status: models.StatusPublished},
		{UserID: owner.ID, Title: "E-commerce Platform", Tech: []string{"React", "Stripe"}, Stars: 42, Status: models.StatusPublished, Featured: true},
		{UserID: owner.ID, Title: "Secret", Status: models.StatusDraft},
	}
	for _, p := range projects {
		require.NoError(t, repo.Create(ctx, p))
	}

	published, err := repo.ListByUser(ctx, owner.ID, true)
	require.NoError(t, err)
	require.Len(t, published, 2)
	assert.Equal(t, "E-commerce Platform", published[0].Title)
	assert.Equal(t, []string{"React", "Stripe"}, published[0].Tech)

	all, err := repo.ListByUser(ctx, owner.ID, false)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	n, err := repo.CountPublished(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	require.NoError(t, repo.Delete(ctx, projects[2].ID))
	_, err = repo.GetByID(ctx, projects[2].ID)
	assert.Equal(t, models.CodeNotFound, models.ErrorCode(err))

	// Deleted projects hold no unique values, so the same title can come back.
	require.NoError(t, repo.Create(ctx, &models.Project{UserID: owner.ID, Title: "Secret", Status: models.StatusDraft}))
	all, err = repo.ListByUser(ctx, owner.ID, false)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
