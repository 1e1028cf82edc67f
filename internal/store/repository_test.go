package store

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/simp-lee/agencyhub/internal/domain"
	"github.com/simp-lee/agencyhub/internal/pkg"
)

type widget struct {
	domain.BaseModel
	Name     string   `gorm:"size:100"`
	Slug     string   `gorm:"size:100;uniqueIndex"`
	Kind     string   `gorm:"size:20"`
	Labels   []string `gorm:"type:text;serializer:json"`
	Position int
	Views    int64
	Score    int
}

// setupTestDB creates an in-memory SQLite database with the widget table.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&widget{}))
	return db
}

func seedWidgets(t *testing.T, repo *Repository[widget]) []*widget {
	t.Helper()
	ws := []*widget{
		{Name: "Alpha", Slug: "alpha", Kind: "a", Labels: []string{"go"}, Position: 2, Score: 4},
		{Name: "Beta", Slug: "beta", Kind: "b", Labels: []string{"rust"}, Position: 0, Score: 2},
		{Name: "Gamma", Slug: "gamma", Kind: "a", Labels: []string{"go", "sql"}, Position: 1, Score: 5},
	}
	for _, w := range ws {
		require.NoError(t, repo.Create(context.Background(), w))
	}
	return ws
}

func TestCreateAndGet(t *testing.T) {
	repo := New[widget](setupTestDB(t), "widget")
	ctx := context.Background()

	w := &widget{Name: "Alpha", Slug: "alpha", Labels: []string{"x"}}
	require.NoError(t, repo.Create(ctx, w))
	require.NotEmpty(t, w.ID)
	assert.False(t, w.CreatedAt.IsZero())

	got, err := repo.Get(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alpha", got.Name)
	assert.Equal(t, []string{"x"}, got.Labels)
}

func TestGet_NotFound(t *testing.T) {
	repo := New[widget](setupTestDB(t), "widget")

	_, err := repo.Get(context.Background(), "0192f1c4-5b7a-7c3e-9d2f-1a2b3c4d5e6f")
	assert.True(t, domain.IsNotFound(err))
	assert.Equal(t, "widget not found", err.Error())
}

func TestCreate_DuplicateSlug(t *testing.T) {
	repo := New[widget](setupTestDB(t), "widget")
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &widget{Name: "One", Slug: "same"}))
	err := repo.Create(ctx, &widget{Name: "Two", Slug: "same"})
	assert.True(t, domain.IsAlreadyExists(err), "got %v", err)
}

func TestExists(t *testing.T) {
	repo := New[widget](setupTestDB(t), "widget")
	ctx := context.Background()
	ws := seedWidgets(t, repo)

	ok, err := repo.Exists(ctx, "slug", "alpha", "")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Exists(ctx, "slug", "alpha", ws[0].ID)
	require.NoError(t, err)
	assert.False(t, ok, "the record itself should be excluded")

	ok, err = repo.Exists(ctx, "slug", "delta", "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestList_PaginatesOverSamePredicate(t *testing.T) {
	repo := New[widget](setupTestDB(t), "widget")
	ctx := context.Background()
	seedWidgets(t, repo)

	q := pkg.Query{}.Eq("kind", "a").OrderBy(pkg.Asc("position"))
	page, err := repo.List(ctx, q, pkg.PageParams{Page: 1, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Meta.Total)
	assert.Equal(t, 2, page.Meta.TotalPages)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Gamma", page.Items[0].Name)

	page, err = repo.List(ctx, q, pkg.PageParams{Page: 3, Limit: 1})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.NotNil(t, page.Items)
	assert.Equal(t, int64(2), page.Meta.Total)
}

func TestFindOneAndFind(t *testing.T) {
	repo := New[widget](setupTestDB(t), "widget")
	ctx := context.Background()
	seedWidgets(t, repo)

	got, err := repo.FindOne(ctx, pkg.Query{}.Eq("slug", "beta"))
	require.NoError(t, err)
	assert.Equal(t, "Beta", got.Name)

	_, err = repo.FindOne(ctx, pkg.Query{}.Eq("slug", "nope"))
	assert.True(t, domain.IsNotFound(err))

	items, err := repo.Find(ctx, pkg.Query{}.Contains("labels", "go").OrderBy(pkg.Desc("score")), 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Gamma", items[0].Name)
}

func TestSaveAndDelete(t *testing.T) {
	repo := New[widget](setupTestDB(t), "widget")
	ctx := context.Background()
	ws := seedWidgets(t, repo)

	ws[0].Name = "Alpha 2"
	require.NoError(t, repo.Save(ctx, ws[0]))
	got, err := repo.Get(ctx, ws[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Alpha 2", got.Name)

	require.NoError(t, repo.Delete(ctx, ws[0].ID))
	_, err = repo.Get(ctx, ws[0].ID)
	assert.True(t, domain.IsNotFound(err))

	err = repo.Delete(ctx, ws[0].ID)
	assert.True(t, domain.IsNotFound(err), "second delete should be NotFound")
}

func TestSave_OmitKeepsConcurrentCounter(t *testing.T) {
	repo := New[widget](setupTestDB(t), "widget")
	ctx := context.Background()
	ws := seedWidgets(t, repo)

	stale, err := repo.Get(ctx, ws[0].ID)
	require.NoError(t, err)
	require.NoError(t, repo.Increment(ctx, ws[0].ID, "views", 1))

	stale.Name = "Alpha 3"
	require.NoError(t, repo.Save(ctx, stale, "views"))

	got, err := repo.Get(ctx, ws[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Alpha 3", got.Name)
	assert.Equal(t, int64(1), got.Views)
}

func TestIncrement(t *testing.T) {
	repo := New[widget](setupTestDB(t), "widget")
	ctx := context.Background()
	ws := seedWidgets(t, repo)

	require.NoError(t, repo.Increment(ctx, ws[1].ID, "views", 1))
	require.NoError(t, repo.Increment(ctx, ws[1].ID, "views", 1))
	got, err := repo.Get(ctx, ws[1].ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Views)

	err = repo.Increment(ctx, "0192f1c4-5b7a-7c3e-9d2f-1a2b3c4d5e6f", "views", 1)
	assert.True(t, domain.IsNotFound(err))
}

func TestReorder(t *testing.T) {
	repo := New[widget](setupTestDB(t), "widget")
	ctx := context.Background()
	ws := seedWidgets(t, repo)

	err := repo.Reorder(ctx, "position", []pkg.ReorderItem{
		{ID: ws[0].ID, Order: 0},
		{ID: ws[1].ID, Order: 1},
		{ID: ws[2].ID, Order: 2},
	})
	require.NoError(t, err)

	items, err := repo.Find(ctx, pkg.Query{}.OrderBy(pkg.Asc("position")), 0)
	require.NoError(t, err)
	assert.Equal(t, "Alpha", items[0].Name)
	assert.Equal(t, "Beta", items[1].Name)
	assert.Equal(t, "Gamma", items[2].Name)
}

func TestReorder_UnknownIDRollsBack(t *testing.T) {
	repo := New[widget](setupTestDB(t), "widget")
	ctx := context.Background()
	ws := seedWidgets(t, repo)

	err := repo.Reorder(ctx, "position", []pkg.ReorderItem{
		{ID: ws[0].ID, Order: 9},
		{ID: "0192f1c4-5b7a-7c3e-9d2f-1a2b3c4d5e6f", Order: 0},
	})
	assert.True(t, domain.IsNotFound(err))

	got, err := repo.Get(ctx, ws[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Position, "position must be unchanged after rollback")
}

func TestAggregates(t *testing.T) {
	repo := New[widget](setupTestDB(t), "widget")
	ctx := context.Background()
	seedWidgets(t, repo)

	n, err := repo.Count(ctx, pkg.Query{}.AtLeast("score", 4))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	groups, err := repo.GroupCount(ctx, "kind", pkg.Query{})
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"a": 2, "b": 1}, groups)

	avg, err := repo.Average(ctx, "score", pkg.Query{})
	require.NoError(t, err)
	assert.InDelta(t, 11.0/3.0, avg, 0.0001)

	avg, err = repo.Average(ctx, "score", pkg.Query{}.Eq("kind", "none"))
	require.NoError(t, err)
	assert.Zero(t, avg)
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"nil", nil, func(err error) bool { return err == nil }},
		{"record not found", gorm.ErrRecordNotFound, domain.IsNotFound},
		{"gorm duplicated key", gorm.ErrDuplicatedKey, domain.IsAlreadyExists},
		{"postgres unique violation", errors.New(`ERROR: duplicate key value violates unique constraint "idx_projects_slug" (SQLSTATE 23505)`), domain.IsAlreadyExists},
		{"sqlite unique violation", errors.New("constraint failed: UNIQUE constraint failed: projects.slug (2067)"), domain.IsAlreadyExists},
		{"anything else", errors.New("connection reset by peer"), domain.IsInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.check(MapError(tt.err)))
		})
	}
}

// newMockPostgres opens GORM over sqlmock with the postgres dialector.
func newMockPostgres(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return db, mock
}

func TestRepository_DriverFailureIsInternal(t *testing.T) {
	db, mock := newMockPostgres(t)
	repo := New[widget](db, "widget")

	cause := errors.New("connection reset by peer")
	mock.ExpectQuery(`SELECT \* FROM "widgets"`).WillReturnError(cause)

	_, err := repo.Get(context.Background(), "0192f1c4-5b7a-7c3e-9d2f-1a2b3c4d5e6f")
	require.Error(t, err)
	assert.True(t, domain.IsInternal(err))
	assert.ErrorIs(t, err, cause, "the driver error is kept for logs")

	var appErr *domain.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "database error", appErr.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_DeleteNoRowsIsNotFound(t *testing.T) {
	db, mock := newMockPostgres(t)
	repo := New[widget](db, "widget")

	mock.ExpectExec(`DELETE FROM "widgets"`).WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "0192f1c4-5b7a-7c3e-9d2f-1a2b3c4d5e6f")
	assert.True(t, domain.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListCountFailure(t *testing.T) {
	db, mock := newMockPostgres(t)
	repo := New[widget](db, "widget")

	mock.ExpectQuery(`SELECT count\(\*\) FROM "widgets"`).WillReturnError(errors.New("timeout"))

	_, err := repo.List(context.Background(), pkg.Query{}, pkg.PageParams{Page: 1, Limit: 10})
	assert.True(t, domain.IsInternal(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
