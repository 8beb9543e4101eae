package service

import (
	"context"
	"testing"

	"studio_cms/internal/common"
	"studio_cms/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGalleryRepo struct {
	albums map[string]*model.GalleryAlbum
	images map[string]*model.GalleryImage
}

func newFakeGalleryRepo() *fakeGalleryRepo {
	return &fakeGalleryRepo{
		albums: map[string]*model.GalleryAlbum{},
		images: map[string]*model.GalleryImage{},
	}
}

func (f *fakeGalleryRepo) CreateAlbum(ctx context.Context, album *model.GalleryAlbum) error {
	for _, a := range f.albums {
		if a.Slug == album.Slug {
			return common.ErrConflict
		}
	}
	clone := *album
	f.albums[album.ID] = &clone
	return nil
}

func (f *fakeGalleryRepo) ListAlbums(ctx context.Context) ([]model.GalleryAlbum, error) {
	out := []model.GalleryAlbum{}
	for _, a := range f.albums {
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeGalleryRepo) GetAlbumByID(ctx context.Context, id string) (*model.GalleryAlbum, error) {
	album, ok := f.albums[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	clone := *album
	return &clone, nil
}

func (f *fakeGalleryRepo) GetAlbumBySlug(ctx context.Context, slug string) (*model.GalleryAlbum, error) {
	for _, a := range f.albums {
		if a.Slug == slug {
			clone := *a
			return &clone, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeGalleryRepo) UpdateAlbum(ctx context.Context, album *model.GalleryAlbum) error {
	if _, ok := f.albums[album.ID]; !ok {
		return common.ErrNotFound
	}
	clone := *album
	f.albums[album.ID] = &clone
	return nil
}

func (f *fakeGalleryRepo) DeleteAlbum(ctx context.Context, id string) error {
	if _, ok := f.albums[id]; !ok {
		return common.ErrNotFound
	}
	delete(f.albums, id)
	for imgID, img := range f.images {
		if img.AlbumID == id {
			delete(f.images, imgID)
		}
	}
	return nil
}

func (f *fakeGalleryRepo) AddImage(ctx context.Context, image *model.GalleryImage) error {
	if _, ok := f.albums[image.AlbumID]; !ok {
		return common.ErrNotFound
	}
	clone := *image
	f.images[image.ID] = &clone
	return nil
}

func (f *fakeGalleryRepo) ListImagesByAlbum(ctx context.Context, albumID string) ([]model.GalleryImage, error) {
	out := []model.GalleryImage{}
	for _, img := range f.images {
		if img.AlbumID == albumID {
			out = append(out, *img)
		}
	}
	return out, nil
}

func (f *fakeGalleryRepo) GetImageByID(ctx context.Context, id string) (*model.GalleryImage, error) {
	img, ok := f.images[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	clone := *img
	return &clone, nil
}

func (f *fakeGalleryRepo) UpdateImage(ctx context.Context, image *model.GalleryImage) error {
	if _, ok := f.images[image.ID]; !ok {
		return common.ErrNotFound
	}
	clone := *image
	f.images[image.ID] = &clone
	return nil
}

func (f *fakeGalleryRepo) DeleteImage(ctx context.Context, id string) error {
	if _, ok := f.images[id]; !ok {
		return common.ErrNotFound
	}
	delete(f.images, id)
	return nil
}

func TestCreateAlbumGeneratesSlug(t *testing.T) {
	svc := NewGalleryService(newFakeGalleryRepo())

	album, err := svc.CreateAlbum(context.Background(), CreateAlbumRequest{Title: "Summer Projects 2026"})
	require.NoError(t, err)
	assert.Equal(t, "summer-projects-2026", album.Slug)
}

func TestCreateAlbumValidation(t *testing.T) {
	svc := NewGalleryService(newFakeGalleryRepo())
	ctx := context.Background()

	_, err := svc.CreateAlbum(ctx, CreateAlbumRequest{})
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = svc.CreateAlbum(ctx, CreateAlbumRequest{Title: "T", Slug: "Not Valid"})
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = svc.CreateAlbum(ctx, CreateAlbumRequest{Title: "T", SortOrder: -1})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestAddImageRequiresExistingAlbumAndValidURL(t *testing.T) {
	repo := newFakeGalleryRepo()
	svc := NewGalleryService(repo)
	ctx := context.Background()

	album, err := svc.CreateAlbum(ctx, CreateAlbumRequest{Title: "Signage"})
	require.NoError(t, err)

	_, err = svc.AddImage(ctx, album.ID, AddImageRequest{ImageURL: "not a url"})
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = svc.AddImage(ctx, "missing-album", AddImageRequest{ImageURL: "https://cdn.example.com/a.jpg"})
	assert.ErrorIs(t, err, common.ErrNotFound)

	image, err := svc.AddImage(ctx, album.ID, AddImageRequest{
		ImageURL: "https://cdn.example.com/a.jpg",
		Caption:  "Front sign",
	})
	require.NoError(t, err)
	assert.Equal(t, album.ID, image.AlbumID)
	// Thumb falls back to the full image when none is provided.
	assert.Equal(t, image.ImageURL, image.ThumbURL)
}

func TestGetAlbumBySlugIncludesImages(t *testing.T) {
	svc := NewGalleryService(newFakeGalleryRepo())
	ctx := context.Background()

	album, err := svc.CreateAlbum(ctx, CreateAlbumRequest{Title: "Vehicle Wraps"})
	require.NoError(t, err)
	_, err = svc.AddImage(ctx, album.ID, AddImageRequest{ImageURL: "https://cdn.example.com/1.jpg"})
	require.NoError(t, err)
	_, err = svc.AddImage(ctx, album.ID, AddImageRequest{ImageURL: "https://cdn.example.com/2.jpg"})
	require.NoError(t, err)

	detail, err := svc.GetAlbumBySlug(ctx, "vehicle-wraps")
	require.NoError(t, err)
	assert.Equal(t, album.ID, detail.Album.ID)
	assert.Len(t, detail.Images, 2)
}

func TestUpdateImagePartial(t *testing.T) {
	svc := NewGalleryService(newFakeGalleryRepo())
	ctx := context.Background()

	album, err := svc.CreateAlbum(ctx, CreateAlbumRequest{Title: "Storefronts"})
	require.NoError(t, err)
	image, err := svc.AddImage(ctx, album.ID, AddImageRequest{
		ImageURL: "https://cdn.example.com/s.jpg",
		Caption:  "before",
	})
	require.NoError(t, err)

	caption := "after"
	order := 5
	updated, err := svc.UpdateImage(ctx, image.ID, UpdateImageRequest{Caption: &caption, SortOrder: &order})
	require.NoError(t, err)
	assert.Equal(t, "after", updated.Caption)
	assert.Equal(t, 5, updated.SortOrder)
	// Untouched fields survive.
	assert.Equal(t, image.ImageURL, updated.ImageURL)
}

func TestDeleteAlbumRemovesImages(t *testing.T) {
	repo := newFakeGalleryRepo()
	svc := NewGalleryService(repo)
	ctx := context.Background()

	album, err := svc.CreateAlbum(ctx, CreateAlbumRequest{Title: "Old Work"})
	require.NoError(t, err)
	image, err := svc.AddImage(ctx, album.ID, AddImageRequest{ImageURL: "https://cdn.example.com/o.jpg"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAlbum(ctx, album.ID))
	_, err = svc.GetAlbum(ctx, album.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
	_, err = repo.GetImageByID(ctx, image.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
}
