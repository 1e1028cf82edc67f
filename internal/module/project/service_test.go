package project

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simp-lee/agencyhub/internal/domain"
	"github.com/simp-lee/agencyhub/internal/pkg"
	"github.com/simp-lee/agencyhub/internal/store"
	"github.com/simp-lee/agencyhub/internal/store/storetest"
)

const missingID = "0192f1c4-5b7a-7c3e-9d2f-1a2b3c4d5e6f"

func newTestService(t *testing.T) Service {
	t.Helper()
	return NewService(store.New[domain.Project](storetest.NewDB(t), "project"))
}

func createProject(t *testing.T, svc Service, title, slug, category string, tech ...string) *domain.Project {
	t.Helper()
	p, err := svc.Create(context.Background(), &CreateProjectRequest{
		Title:        title,
		Slug:         slug,
		Description:  title + " description",
		Category:     category,
		Technologies: tech,
	})
	require.NoError(t, err)
	return p
}

func TestCreate_NormalizesSlugAndRoundTrips(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created := createProject(t, svc, "Shop", "  My-Slug ", domain.ProjectCategoryEcommerce, " go ", "react", "go")
	assert.Equal(t, "my-slug", created.Slug)
	assert.Equal(t, []string{"go", "react"}, created.Technologies)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Shop", got.Title)
	assert.Equal(t, "my-slug", got.Slug)
	assert.Equal(t, domain.ProjectCategoryEcommerce, got.Category)
	assert.Equal(t, []string{"go", "react"}, got.Technologies)
}

func TestCreate_DerivesSlugFromTitle(t *testing.T) {
	svc := newTestService(t)

	p := createProject(t, svc, "Brand Refresh 2024", "", domain.ProjectCategoryBranding)
	assert.Equal(t, "brand-refresh-2024", p.Slug)
}

func TestCreate_DuplicateSlugIsCaseInsensitiveConflict(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	createProject(t, svc, "First", "my-slug", domain.ProjectCategoryWeb)

	_, err := svc.Create(ctx, &CreateProjectRequest{
		Title: "Second", Slug: "MY-SLUG", Description: "d", Category: domain.ProjectCategoryWeb,
	})
	require.Error(t, err)
	assert.True(t, domain.IsAlreadyExists(err))
	assert.Contains(t, err.Error(), "my-slug")

	page, err := svc.List(ctx, Filter{Page: pkg.PageParams{Page: 1, Limit: 10}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Meta.Total, "no second record may exist")
}

func TestGetBySlug(t *testing.T) {
	svc := newTestService(t)
	createProject(t, svc, "Shop", "shop", domain.ProjectCategoryWeb)

	got, err := svc.GetBySlug(context.Background(), "SHOP")
	require.NoError(t, err)
	assert.Equal(t, "Shop", got.Title)

	_, err = svc.GetBySlug(context.Background(), "nope")
	assert.True(t, domain.IsNotFound(err))
}

func TestUpdate_PartialMerge(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	p := createProject(t, svc, "Shop", "shop", domain.ProjectCategoryWeb, "go")

	featured := true
	title := "Shop v2"
	got, err := svc.Update(ctx, p.ID, &UpdateProjectRequest{Title: &title, IsFeatured: &featured})
	require.NoError(t, err)
	assert.Equal(t, "Shop v2", got.Title)
	assert.True(t, got.IsFeatured)
	assert.Equal(t, "shop", got.Slug, "untouched fields survive")
	assert.Equal(t, []string{"go"}, got.Technologies)
}

func TestUpdate_SlugConflictExcludesSelf(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	a := createProject(t, svc, "A", "alpha", domain.ProjectCategoryWeb)
	createProject(t, svc, "B", "beta", domain.ProjectCategoryWeb)

	same := "ALPHA"
	_, err := svc.Update(ctx, a.ID, &UpdateProjectRequest{Slug: &same})
	assert.NoError(t, err, "keeping its own slug is not a conflict")

	taken := "beta"
	_, err = svc.Update(ctx, a.ID, &UpdateProjectRequest{Slug: &taken})
	assert.True(t, domain.IsAlreadyExists(err))
}

func TestNotFound_NoMutation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	createProject(t, svc, "A", "alpha", domain.ProjectCategoryWeb)

	_, err := svc.Get(ctx, missingID)
	assert.True(t, domain.IsNotFound(err))
	assert.Equal(t, "project not found", err.Error())

	title := "x"
	_, err = svc.Update(ctx, missingID, &UpdateProjectRequest{Title: &title})
	assert.True(t, domain.IsNotFound(err))

	err = svc.Delete(ctx, missingID)
	assert.True(t, domain.IsNotFound(err))

	page, err := svc.List(ctx, Filter{Page: pkg.PageParams{Page: 1, Limit: 10}})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "A", page.Items[0].Title)
}

func TestList_Filters(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	createProject(t, svc, "Go API", "go-api", domain.ProjectCategoryWeb, "go", "postgres")
	createProject(t, svc, "iOS App", "ios-app", domain.ProjectCategoryMobile, "swift")
	createProject(t, svc, "Golang CLI", "golang-cli", domain.ProjectCategoryWeb, "golang")

	tests := []struct {
		name   string
		filter Filter
		want   int64
	}{
		{"all", Filter{}, 3},
		{"category", Filter{Category: domain.ProjectCategoryWeb}, 2},
		{"technology is exact element", Filter{Technology: "go"}, 1},
		{"search title case-insensitive", Filter{Search: "GO"}, 2},
		{"search description", Filter{Search: "app description"}, 1},
		{"combined", Filter{Category: domain.ProjectCategoryMobile, Search: "go"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.filter.Page = pkg.PageParams{Page: 1, Limit: 10}
			page, err := svc.List(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, page.Meta.Total)
			assert.Len(t, page.Items, int(tt.want))
		})
	}
}

func TestList_PaginationMeta(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	for i := range 7 {
		createProject(t, svc, "P", "p-"+string(rune('a'+i)), domain.ProjectCategoryWeb)
	}

	page, err := svc.List(ctx, Filter{Page: pkg.PageParams{Page: 2, Limit: 5}})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, domain.PageMeta{Total: 7, Page: 2, Limit: 5, TotalPages: 2}, page.Meta)
}

func TestDelete(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	p := createProject(t, svc, "A", "alpha", domain.ProjectCategoryWeb)

	require.NoError(t, svc.Delete(ctx, p.ID))
	_, err := svc.Get(ctx, p.ID)
	assert.True(t, domain.IsNotFound(err))
}

func TestFilterQuery_Deterministic(t *testing.T) {
	featured := true
	f := Filter{Category: "web", IsFeatured: &featured, Technology: "go", Search: "shop"}
	assert.Equal(t, f.Query(), f.Query())
}
