package blog

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/simp-lee/agencyhub/internal/domain"
	"github.com/simp-lee/agencyhub/internal/pkg"
	"github.com/simp-lee/agencyhub/internal/store"
	"github.com/simp-lee/agencyhub/internal/store/storetest"
)

var admin = &domain.Caller{UserID: "u1", Role: domain.RoleAdmin}

func newTestService(t *testing.T) (Service, *pkg.Background) {
	t.Helper()
	bg := pkg.NewBackground(slog.Default(), time.Second)
	repo := store.New[domain.BlogPost](storetest.NewDB(t), "blog post")
	return NewService(repo, bg), bg
}

func firstPage() pkg.PageParams { return pkg.PageParams{Page: 1, Limit: 10} }

func TestCreate_PublishedScenario(t *testing.T) {
	svc, _ := newTestService(t)
	before := time.Now()

	post, err := svc.Create(context.Background(), &CreatePostRequest{
		Title: "T", Slug: "My-Slug", Content: "C", IsPublished: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "my-slug", post.Slug)
	assert.Equal(t, int64(0), post.Views)
	require.NotNil(t, post.PublishedAt)
	assert.False(t, post.PublishedAt.Before(before))
	assert.False(t, post.PublishedAt.After(time.Now()))
}

func TestCreate_DraftHasNoPublishedAt(t *testing.T) {
	svc, _ := newTestService(t)

	post, err := svc.Create(context.Background(), &CreatePostRequest{Title: "Draft", Content: "C"})
	require.NoError(t, err)
	assert.Nil(t, post.PublishedAt)
	assert.Equal(t, "draft", post.Slug)
}

func TestCreate_DuplicateSlug(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, &CreatePostRequest{Title: "T", Slug: "my-slug", Content: "C"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &CreatePostRequest{Title: "T2", Slug: "My-Slug", Content: "C"})
	assert.True(t, domain.IsAlreadyExists(err))
}

func TestList_VisibilityGate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	for i, published := range []bool{true, false, true} {
		_, err := svc.Create(ctx, &CreatePostRequest{
			Title: "Post", Slug: "post-" + string(rune('a'+i)), Content: "C", IsPublished: published,
		})
		require.NoError(t, err)
	}

	no := false
	// Anonymous callers never see drafts, even when they ask for them.
	page, err := svc.List(ctx, nil, Filter{Page: firstPage(), IsPublished: &no})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Meta.Total)
	for _, p := range page.Items {
		assert.True(t, p.IsPublished)
	}

	again, err := svc.List(ctx, nil, Filter{Page: firstPage(), IsPublished: &no})
	require.NoError(t, err)
	assert.Equal(t, page, again, "identical public queries are idempotent")

	all, err := svc.List(ctx, admin, Filter{Page: firstPage()})
	require.NoError(t, err)
	assert.Equal(t, int64(3), all.Meta.Total)

	drafts, err := svc.List(ctx, admin, Filter{Page: firstPage(), IsPublished: &no})
	require.NoError(t, err)
	assert.Equal(t, int64(1), drafts.Meta.Total)
}

func TestList_TagCategorySearch(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	_, err := svc.Create(ctx, &CreatePostRequest{Title: "Scaling Go", Content: "C", Category: "engineering", Tags: []string{"go", "perf"}, IsPublished: true})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &CreatePostRequest{Title: "Brand voice", Excerpt: "Writing for go-getters", Content: "C", Category: "marketing", Tags: []string{"copy"}, IsPublished: true})
	require.NoError(t, err)

	page, err := svc.List(ctx, nil, Filter{Page: firstPage(), Tag: "go"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Scaling Go", page.Items[0].Title)

	page, err = svc.List(ctx, nil, Filter{Page: firstPage(), Category: "marketing"})
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)

	page, err = svc.List(ctx, nil, Filter{Page: firstPage(), Search: "GO"})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2, "search covers title and excerpt")
}

func TestGetBySlug_PublicCountsViews(t *testing.T) {
	svc, bg := newTestService(t)
	ctx := context.Background()
	post, err := svc.Create(ctx, &CreatePostRequest{Title: "T", Slug: "t", Content: "C", IsPublished: true})
	require.NoError(t, err)

	for range 3 {
		_, err := svc.GetBySlug(ctx, nil, "T")
		require.NoError(t, err)
	}
	require.NoError(t, bg.Wait(ctx))

	got, err := svc.Get(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.Views)
}

func TestGetBySlug_DraftHiddenFromPublic(t *testing.T) {
	svc, bg := newTestService(t)
	ctx := context.Background()
	post, err := svc.Create(ctx, &CreatePostRequest{Title: "T", Slug: "t", Content: "C"})
	require.NoError(t, err)

	_, err = svc.GetBySlug(ctx, nil, "t")
	assert.True(t, domain.IsNotFound(err))

	got, err := svc.GetBySlug(ctx, admin, "t")
	require.NoError(t, err)
	assert.Equal(t, post.ID, got.ID)

	require.NoError(t, bg.Wait(ctx))
	got, err = svc.Get(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.Views, "admin previews do not count")
}

func TestUpdate_FirstPublishStampsPublishedAt(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	post, err := svc.Create(ctx, &CreatePostRequest{Title: "T", Content: "C"})
	require.NoError(t, err)

	yes := true
	updated, err := svc.Update(ctx, post.ID, &UpdatePostRequest{IsPublished: &yes})
	require.NoError(t, err)
	require.NotNil(t, updated.PublishedAt)
	first := *updated.PublishedAt

	no := false
	_, err = svc.Update(ctx, post.ID, &UpdatePostRequest{IsPublished: &no})
	require.NoError(t, err)
	again, err := svc.Update(ctx, post.ID, &UpdatePostRequest{IsPublished: &yes})
	require.NoError(t, err)
	assert.True(t, first.Equal(*again.PublishedAt), "republishing keeps the original date")
}

func TestUpdateDelete_NotFound(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	const missing = "0192f1c4-5b7a-7c3e-9d2f-1a2b3c4d5e6f"

	title := "x"
	_, err := svc.Update(ctx, missing, &UpdatePostRequest{Title: &title})
	assert.True(t, domain.IsNotFound(err))
	assert.True(t, domain.IsNotFound(svc.Delete(ctx, missing)))
	_, err = svc.Get(ctx, missing)
	assert.Equal(t, "blog post not found", err.Error())
}

func TestLatest_OnlyPublishedNewestFirst(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	for _, title := range []string{"old", "draft", "new"} {
		_, err := svc.Create(ctx, &CreatePostRequest{Title: title, Content: "C", IsPublished: title != "draft"})
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
	}

	posts, err := svc.Latest(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "new", posts[0].Title)
	assert.Equal(t, "old", posts[1].Title)
}

func TestUpdate_KeepsViewsCountedDuringEdit(t *testing.T) {
	db := storetest.NewDB(t)
	svc := NewService(store.New[domain.BlogPost](db, "blog post"), pkg.NewBackground(slog.Default(), time.Second))
	ctx := context.Background()

	post, err := svc.Create(ctx, &CreatePostRequest{Title: "T", Slug: "counted", Content: "C", IsPublished: true})
	require.NoError(t, err)

	// A reader's view lands after Update loaded the post and before it saves.
	bumped := false
	require.NoError(t, db.Callback().Update().Before("gorm:update").Register("test:concurrent_view", func(tx *gorm.DB) {
		if bumped || tx.Statement.Table != "blog_posts" {
			return
		}
		bumped = true
		tx.Session(&gorm.Session{NewDB: true}).Exec("UPDATE blog_posts SET views = views + 1 WHERE id = ?", post.ID)
	}))

	title := "Edited"
	_, err = svc.Update(ctx, post.ID, &UpdatePostRequest{Title: &title})
	require.NoError(t, err)
	require.True(t, bumped)

	got, err := svc.Get(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Edited", got.Title)
	assert.Equal(t, int64(1), got.Views)
}
