package service

import (
	"context"
	"sort"
	"testing"

	"studio_cms/internal/common"
	"studio_cms/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePostRepo struct {
	posts map[string]*model.Post // keyed by ID
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: map[string]*model.Post{}}
}

func (f *fakePostRepo) Create(ctx context.Context, post *model.Post) error {
	for _, p := range f.posts {
		if p.Slug == post.Slug {
			return common.ErrConflict
		}
	}
	clone := *post
	f.posts[post.ID] = &clone
	return nil
}

func (f *fakePostRepo) GetByID(ctx context.Context, id string) (*model.Post, error) {
	post, ok := f.posts[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	clone := *post
	return &clone, nil
}

func (f *fakePostRepo) GetBySlug(ctx context.Context, slug string) (*model.Post, error) {
	for _, post := range f.posts {
		if post.Slug == slug {
			clone := *post
			return &clone, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakePostRepo) List(ctx context.Context, status model.PostStatus, page, pageSize int) ([]model.Post, int, error) {
	var out []model.Post
	for _, post := range f.posts {
		if status == "" || post.Status == status {
			out = append(out, *post)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, len(out), nil
}

func (f *fakePostRepo) ListPublished(ctx context.Context, page, pageSize int) ([]model.Post, int, error) {
	return f.List(ctx, model.PostStatusPublished, page, pageSize)
}

func (f *fakePostRepo) Update(ctx context.Context, post *model.Post) error {
	if _, ok := f.posts[post.ID]; !ok {
		return common.ErrNotFound
	}
	for _, p := range f.posts {
		if p.ID != post.ID && p.Slug == post.Slug {
			return common.ErrConflict
		}
	}
	clone := *post
	f.posts[post.ID] = &clone
	return nil
}

func (f *fakePostRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.posts[id]; !ok {
		return common.ErrNotFound
	}
	delete(f.posts, id)
	return nil
}

func TestCreatePostGeneratesSlug(t *testing.T) {
	svc := NewPostService(newFakePostRepo())

	post, err := svc.CreatePost(context.Background(), CreatePostRequest{
		Title:       "Hello World, Again!",
		ContentHTML: "<p>hi</p>",
	})
	require.NoError(t, err)

	assert.Equal(t, "hello-world-again", post.Slug)
	assert.Equal(t, model.PostStatusDraft, post.Status)
	assert.Nil(t, post.PublishedAt)
	assert.NotEmpty(t, post.ID)
}

func TestCreatePostValidation(t *testing.T) {
	svc := NewPostService(newFakePostRepo())
	ctx := context.Background()

	_, err := svc.CreatePost(ctx, CreatePostRequest{ContentHTML: "<p>x</p>"})
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = svc.CreatePost(ctx, CreatePostRequest{Title: "T"})
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = svc.CreatePost(ctx, CreatePostRequest{Title: "T", ContentHTML: "x", Slug: "Bad Slug!"})
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = svc.CreatePost(ctx, CreatePostRequest{Title: "T", ContentHTML: "x", Status: "archived"})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestCreatePostSlugConflict(t *testing.T) {
	svc := NewPostService(newFakePostRepo())
	ctx := context.Background()

	_, err := svc.CreatePost(ctx, CreatePostRequest{Title: "Same Title", ContentHTML: "x"})
	require.NoError(t, err)

	_, err = svc.CreatePost(ctx, CreatePostRequest{Title: "Same Title", ContentHTML: "y"})
	assert.ErrorIs(t, err, common.ErrConflict)
}

func TestCreatePublishedPostStampsPublishedAt(t *testing.T) {
	svc := NewPostService(newFakePostRepo())

	post, err := svc.CreatePost(context.Background(), CreatePostRequest{
		Title:       "Launch",
		ContentHTML: "<p>go</p>",
		Status:      "published",
	})
	require.NoError(t, err)
	require.NotNil(t, post.PublishedAt)
}

func TestUpdatePostPublishStampsOnce(t *testing.T) {
	svc := NewPostService(newFakePostRepo())
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, CreatePostRequest{Title: "Draft", ContentHTML: "x"})
	require.NoError(t, err)

	published := "published"
	updated, err := svc.UpdatePost(ctx, post.ID, UpdatePostRequest{Status: &published})
	require.NoError(t, err)
	require.NotNil(t, updated.PublishedAt)
	firstStamp := *updated.PublishedAt

	draft := "draft"
	_, err = svc.UpdatePost(ctx, post.ID, UpdatePostRequest{Status: &draft})
	require.NoError(t, err)

	republished, err := svc.UpdatePost(ctx, post.ID, UpdatePostRequest{Status: &published})
	require.NoError(t, err)
	assert.Equal(t, firstStamp, *republished.PublishedAt)
}

func TestGetPublishedPostHidesDrafts(t *testing.T) {
	svc := NewPostService(newFakePostRepo())
	ctx := context.Background()

	draft, err := svc.CreatePost(ctx, CreatePostRequest{Title: "Secret Draft", ContentHTML: "x"})
	require.NoError(t, err)

	_, err = svc.GetPublishedPost(ctx, draft.Slug)
	assert.ErrorIs(t, err, common.ErrNotFound)

	published, err := svc.CreatePost(ctx, CreatePostRequest{Title: "Public Post", ContentHTML: "x", Status: "published"})
	require.NoError(t, err)

	got, err := svc.GetPublishedPost(ctx, published.Slug)
	require.NoError(t, err)
	assert.Equal(t, published.ID, got.ID)
}

func TestListPostsStatusFilter(t *testing.T) {
	svc := NewPostService(newFakePostRepo())
	ctx := context.Background()

	_, err := svc.CreatePost(ctx, CreatePostRequest{Title: "One", ContentHTML: "x"})
	require.NoError(t, err)
	_, err = svc.CreatePost(ctx, CreatePostRequest{Title: "Two", ContentHTML: "x", Status: "published"})
	require.NoError(t, err)

	all, total, err := svc.ListPosts(ctx, "all", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, all, 2)

	drafts, total, err := svc.ListPosts(ctx, "draft", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "One", drafts[0].Title)

	_, _, err = svc.ListPosts(ctx, "bogus", 1, 10)
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestDeletePost(t *testing.T) {
	svc := NewPostService(newFakePostRepo())
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, CreatePostRequest{Title: "Gone", ContentHTML: "x"})
	require.NoError(t, err)

	require.NoError(t, svc.DeletePost(ctx, post.ID))
	assert.ErrorIs(t, svc.DeletePost(ctx, post.ID), common.ErrNotFound)
}
