package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"casa-certa-portal/internal/apperr"
	"casa-certa-portal/internal/database"
	"casa-certa-portal/internal/models"
	"casa-certa-portal/internal/staging"
)

func validInput() SaveInput {
	return SaveInput{
		Title:   "Casa Azul",
		Type:    models.PropertyTypeHouse,
		Purpose: models.PropertyPurposeSale,
		Price:   450000,
		City:    "Campo Grande",
	}
}

func newService(store *MockPropertyStore, uploader *MockUploader) *PropertyService {
	return NewPropertyService(store, uploader, nil, nil)
}

func TestSaveDerivesSlugFromTitle(t *testing.T) {
	store := new(MockPropertyStore)
	uploader := new(MockUploader)
	store.On("SlugExists", "casa-azul").Return(false, nil)
	store.On("UpsertProperty", mock.Anything).Return(nil)

	svc := newService(store, uploader)
	p, err := svc.Save(context.Background(), validInput())

	require.NoError(t, err)
	assert.Equal(t, "casa-azul", p.Slug)
	assert.Equal(t, "generated-id", p.ID)
}

func TestSavePrefersExplicitSlug(t *testing.T) {
	store := new(MockPropertyStore)
	uploader := new(MockUploader)
	store.On("SlugExists", "minha-casa").Return(false, nil)
	store.On("UpsertProperty", mock.Anything).Return(nil)

	input := validInput()
	input.Slug = "Minha CASA!"

	svc := newService(store, uploader)
	p, err := svc.Save(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, "minha-casa", p.Slug)
}

func TestSaveCollisionGetsSuffixedSlug(t *testing.T) {
	store := new(MockPropertyStore)
	uploader := new(MockUploader)
	// first attempt collides, any suffixed candidate is free
	store.On("SlugExists", "casa-azul").Return(true, nil)
	store.On("SlugExists", mock.MatchedBy(func(s string) bool { return s != "casa-azul" })).Return(false, nil)
	store.On("UpsertProperty", mock.Anything).Return(nil)

	svc := newService(store, uploader)
	p, err := svc.Save(context.Background(), validInput())

	require.NoError(t, err)
	assert.NotEqual(t, "casa-azul", p.Slug)
	assert.Regexp(t, `^casa-azul-\d{1,3}$`, p.Slug)
}

func TestSaveConcurrentCollidingCreates(t *testing.T) {
	store := new(MockPropertyStore)
	uploader := new(MockUploader)
	store.On("SlugExists", "casa-azul").Return(true, nil)
	store.On("SlugExists", mock.MatchedBy(func(s string) bool { return s != "casa-azul" })).Return(false, nil)
	store.On("UpsertProperty", mock.Anything).Return(nil)

	svc := newService(store, uploader)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				p, err := svc.Save(context.Background(), validInput())
				assert.NoError(t, err)
				assert.Regexp(t, `^casa-azul-\d{1,3}$`, p.Slug)
			}
		}()
	}
	wg.Wait()
}

func TestSaveGivesUpAfterBoundedCollisions(t *testing.T) {
	store := new(MockPropertyStore)
	uploader := new(MockUploader)
	store.On("SlugExists", mock.Anything).Return(true, nil)

	svc := newService(store, uploader)
	_, err := svc.Save(context.Background(), validInput())

	require.Error(t, err)
	store.AssertNotCalled(t, "UpsertProperty", mock.Anything)
}

func TestSaveUpdatePathSkipsUniquenessCheck(t *testing.T) {
	store := new(MockPropertyStore)
	uploader := new(MockUploader)
	store.On("UpsertProperty", mock.Anything).Return(nil)

	input := validInput()
	input.ID = "existing-id"

	svc := newService(store, uploader)
	p, err := svc.Save(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, "existing-id", p.ID)
	store.AssertNotCalled(t, "SlugExists", mock.Anything)
}

func TestSaveEmptyTitleAndSlugFallsBackToTimestamp(t *testing.T) {
	store := new(MockPropertyStore)
	uploader := new(MockUploader)

	input := validInput()
	input.Title = "???" // slugifies to nothing

	store.On("SlugExists", mock.Anything).Return(false, nil)
	store.On("UpsertProperty", mock.Anything).Return(nil)

	svc := newService(store, uploader)
	p, err := svc.Save(context.Background(), input)

	require.NoError(t, err)
	assert.Regexp(t, `^imovel-\d+$`, p.Slug)
}

func TestSaveRejectsBadEnums(t *testing.T) {
	svc := newService(new(MockPropertyStore), new(MockUploader))

	input := validInput()
	input.Type = "mansao"
	_, err := svc.Save(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	input = validInput()
	input.Purpose = "leilao"
	_, err = svc.Save(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	input = validInput()
	input.Price = -1
	_, err = svc.Save(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestSaveRunsUploadWorkflowWhenImagesStaged(t *testing.T) {
	store := new(MockPropertyStore)
	uploader := new(MockUploader)
	store.On("SlugExists", "casa-azul").Return(false, nil)
	store.On("UpsertProperty", mock.Anything).Return(nil)

	stagedImgs := []staging.StagedImage{{ID: "s1", Name: "a.jpg"}}
	uploader.On("Run", mock.Anything, "generated-id", stagedImgs, 0).Return(nil)

	input := validInput()
	input.Staged = stagedImgs

	svc := newService(store, uploader)
	_, err := svc.Save(context.Background(), input)

	require.NoError(t, err)
	uploader.AssertExpectations(t)
}

func TestSaveSkipsUploadWorkflowWithoutImages(t *testing.T) {
	store := new(MockPropertyStore)
	uploader := new(MockUploader)
	store.On("SlugExists", "casa-azul").Return(false, nil)
	store.On("UpsertProperty", mock.Anything).Return(nil)

	svc := newService(store, uploader)
	_, err := svc.Save(context.Background(), validInput())

	require.NoError(t, err)
	uploader.AssertNotCalled(t, "Run", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSaveSurfacesUploadFailure(t *testing.T) {
	store := new(MockPropertyStore)
	uploader := new(MockUploader)
	store.On("SlugExists", "casa-azul").Return(false, nil)
	store.On("UpsertProperty", mock.Anything).Return(nil)
	uploader.On("Run", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(apperr.Validation("image huge.jpg is too large, the limit is 6MB"))

	input := validInput()
	input.Staged = []staging.StagedImage{{ID: "s1", Name: "huge.jpg"}}

	svc := newService(store, uploader)
	_, err := svc.Save(context.Background(), input)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "huge.jpg")
}

func TestDetailNotFound(t *testing.T) {
	store := new(MockPropertyStore)
	store.On("FindPropertyBySlug", "nope").Return(nil, database.ErrPropertyNotFound)

	svc := newService(store, new(MockUploader))
	_, err := svc.Detail("nope")

	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestDetailImageFailureDegradesToEmpty(t *testing.T) {
	store := new(MockPropertyStore)
	store.On("FindPropertyBySlug", "casa-azul").
		Return(&models.Property{ID: "P", Slug: "casa-azul"}, nil)
	store.On("ListImagesByProperty", "P").Return(nil, errors.New("timeout"))

	svc := newService(store, new(MockUploader))
	detail, err := svc.Detail("casa-azul")

	require.NoError(t, err)
	assert.Empty(t, detail.Images)
}

func TestDetailImagesCoverFirstDeduped(t *testing.T) {
	store := new(MockPropertyStore)
	store.On("FindPropertyBySlug", "casa-azul").
		Return(&models.Property{ID: "P", Slug: "casa-azul"}, nil)
	store.On("ListImagesByProperty", "P").Return([]models.PropertyImage{
		{URL: "A", IsCover: false},
		{URL: "B", IsCover: true},
		{URL: "A", IsCover: false},
	}, nil)

	svc := newService(store, new(MockUploader))
	detail, err := svc.Detail("casa-azul")

	require.NoError(t, err)
	require.Len(t, detail.Images, 2)
	assert.Equal(t, "B", detail.Images[0].URL)
	assert.Equal(t, "A", detail.Images[1].URL)
}

func TestFeaturedCapsGalleries(t *testing.T) {
	var imgs []models.PropertyImage
	for i := 0; i < 9; i++ {
		imgs = append(imgs, models.PropertyImage{URL: string(rune('a' + i))})
	}
	imgs[4].IsCover = true

	store := new(MockPropertyStore)
	store.On("FeaturedProperties", 6).Return([]models.Property{
		{ID: "P", Images: imgs},
	}, nil)

	svc := newService(store, new(MockUploader))
	featured, err := svc.Featured()

	require.NoError(t, err)
	require.Len(t, featured, 1)
	require.Len(t, featured[0].Images, 6)
	assert.True(t, featured[0].Images[0].IsCover)
}

func TestFeaturedKeepsStoreImageOrder(t *testing.T) {
	store := new(MockPropertyStore)
	store.On("FeaturedProperties", 6).Return([]models.Property{
		{ID: "P", Images: []models.PropertyImage{
			{URL: "cover.jpg", IsCover: true},
			{URL: "first.jpg"},
			{URL: "second.jpg"},
			{URL: "third.jpg"},
		}},
	}, nil)

	svc := newService(store, new(MockUploader))
	featured, err := svc.Featured()

	require.NoError(t, err)
	require.Len(t, featured, 1)
	var urls []string
	for _, img := range featured[0].Images {
		urls = append(urls, img.URL)
	}
	assert.Equal(t, []string{"cover.jpg", "first.jpg", "second.jpg", "third.jpg"}, urls)
}

func TestCatalogPassesFiltersThrough(t *testing.T) {
	store := new(MockPropertyStore)
	params := database.FilterParams{Type: "apto", Purpose: "venda", Sort: "price_asc"}
	store.On("ListProperties", params).Return([]models.Property{{ID: "1"}}, nil)

	svc := newService(store, new(MockUploader))
	props, err := svc.Catalog(params)

	require.NoError(t, err)
	assert.Len(t, props, 1)
	store.AssertExpectations(t)
}

func TestDeleteRemovesRowsAndReportsNotFound(t *testing.T) {
	store := new(MockPropertyStore)
	store.On("DeleteImagesByProperty", "P").Return([]string{"u1"}, nil)
	store.On("DeleteProperty", "P").Return(database.ErrPropertyNotFound)

	svc := newService(store, new(MockUploader))
	err := svc.Delete(context.Background(), "P")

	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}
