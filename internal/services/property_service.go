package services

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"casa-certa-portal/internal/apperr"
	"casa-certa-portal/internal/database"
	"casa-certa-portal/internal/gallery"
	"casa-certa-portal/internal/models"
	"casa-certa-portal/internal/search"
	"casa-certa-portal/internal/slug"
	"casa-certa-portal/internal/staging"
	"casa-certa-portal/internal/storage"
)

// slugAttempts bounds the collision-avoidance loop on the create path.
const slugAttempts = 5

// PropertyStore is the persistence surface the property service needs.
// *database.GormDB implements it.
type PropertyStore interface {
	ListProperties(params database.FilterParams) ([]models.Property, error)
	FeaturedProperties(limit int) ([]models.Property, error)
	FindPropertyByID(id string) (*models.Property, error)
	FindPropertyBySlug(slug string) (*models.Property, error)
	SlugExists(slug string) (bool, error)
	UpsertProperty(p *models.Property) error
	DeleteProperty(id string) error
	ListImagesByProperty(propertyID string) ([]models.PropertyImage, error)
	DeleteImagesByProperty(propertyID string) ([]string, error)
}

// ImageUploader runs the staged-image pipeline after a save.
type ImageUploader interface {
	Run(ctx context.Context, propertyID string, staged []staging.StagedImage, coverIndex int) error
}

// IPropertyService is the handler-facing property API.
type IPropertyService interface {
	Catalog(params database.FilterParams) ([]models.Property, error)
	Featured() ([]PropertyWithImages, error)
	Detail(slugOrID string) (*PropertyWithImages, error)
	AdminGet(id string) (*models.Property, error)
	AdminList() ([]models.Property, error)
	Save(ctx context.Context, input SaveInput) (*models.Property, error)
	Delete(ctx context.Context, id string) error
}

// PropertyWithImages pairs a property with its display-ready gallery.
type PropertyWithImages struct {
	Property models.Property `json:"property"`
	Images   []gallery.Image `json:"images"`
}

// SaveInput is the explicit, tagged shape of a property save request.
// Unknown fields are rejected at the HTTP boundary.
type SaveInput struct {
	ID           string
	Title        string
	Slug         string
	Type         models.PropertyType
	Purpose      models.PropertyPurpose
	Price        float64
	City         string
	Neighborhood string
	Bedrooms     int
	Bathrooms    int
	ParkingSpots int
	BuiltArea    *float64
	TotalArea    *float64
	Description  string
	Status       models.PropertyStatus
	Featured     bool

	Staged     []staging.StagedImage
	CoverIndex int
}

// PropertyService implements IPropertyService over the database, the
// upload workflow, and (optionally) the search index and object store.
type PropertyService struct {
	store    PropertyStore
	uploader ImageUploader
	searcher *search.SearchClient // nil when search is disabled
	objects  storage.ObjectStore  // nil in tests that skip storage
	now      func() time.Time
}

// NewPropertyService wires the property service. searcher and objects
// may be nil when the respective backends are not configured.
func NewPropertyService(store PropertyStore, uploader ImageUploader, searcher *search.SearchClient, objects storage.ObjectStore) *PropertyService {
	return &PropertyService{
		store:    store,
		uploader: uploader,
		searcher: searcher,
		objects:  objects,
		now:      time.Now,
	}
}

// Catalog lists properties for the public catalog. When the search
// index is enabled and a free-text query is present, the index answers;
// on index failure the SQL path answers instead so the catalog page
// never goes down with Meilisearch.
func (s *PropertyService) Catalog(params database.FilterParams) ([]models.Property, error) {
	if s.searcher != nil && strings.TrimSpace(params.Query) != "" {
		props, err := s.searcher.CatalogSearch(search.CatalogParams{
			Query:   params.Query,
			Type:    params.Type,
			Purpose: params.Purpose,
			Sort:    params.Sort,
		})
		if err == nil {
			return props, nil
		}
		slog.Warn("search index unavailable, falling back to SQL", "error", err)
	}

	props, err := s.store.ListProperties(params)
	if err != nil {
		return nil, apperr.Remote(err.Error(), err)
	}
	return props, nil
}

// Featured returns the newest available properties with their galleries
// derived for the home-page grid: cover first, capped at six.
func (s *PropertyService) Featured() ([]PropertyWithImages, error) {
	props, err := s.store.FeaturedProperties(6)
	if err != nil {
		return nil, apperr.Remote(err.Error(), err)
	}

	out := make([]PropertyWithImages, 0, len(props))
	for _, p := range props {
		imgs := make([]gallery.Image, 0, len(p.Images))
		for _, img := range p.Images {
			imgs = append(imgs, gallery.Image{URL: img.URL, IsCover: img.IsCover})
		}
		p.Images = nil
		out = append(out, PropertyWithImages{
			Property: p,
			Images:   gallery.Derive(imgs, gallery.Options{Cap: 6}),
		})
	}
	return out, nil
}

// Detail resolves a property by slug for the public detail page. The
// gallery is cover-first and de-duplicated by URL. An image fetch
// failure degrades to an empty gallery rather than failing the page.
func (s *PropertyService) Detail(propertySlug string) (*PropertyWithImages, error) {
	p, err := s.store.FindPropertyBySlug(propertySlug)
	if err != nil {
		if err == database.ErrPropertyNotFound {
			return nil, apperr.NotFound("property not found")
		}
		return nil, apperr.Remote(err.Error(), err)
	}

	var imgs []gallery.Image
	rows, err := s.store.ListImagesByProperty(p.ID)
	if err != nil {
		slog.Warn("failed to load property images", "property_id", p.ID, "error", err)
	} else {
		for _, img := range rows {
			imgs = append(imgs, gallery.Image{URL: img.URL, IsCover: img.IsCover})
		}
	}

	return &PropertyWithImages{
		Property: *p,
		Images:   gallery.Derive(imgs, gallery.Options{Dedupe: true}),
	}, nil
}

// AdminGet fetches a property by id for the editor.
func (s *PropertyService) AdminGet(id string) (*models.Property, error) {
	p, err := s.store.FindPropertyByID(id)
	if err != nil {
		if err == database.ErrPropertyNotFound {
			return nil, apperr.NotFound("property not found")
		}
		return nil, apperr.Remote(err.Error(), err)
	}
	return p, nil
}

// AdminList lists every property, newest first, for the admin table.
func (s *PropertyService) AdminList() ([]models.Property, error) {
	props, err := s.store.ListProperties(database.FilterParams{})
	if err != nil {
		return nil, apperr.Remote(err.Error(), err)
	}
	return props, nil
}

// Save is the single entry point for create and update, disambiguated
// by the presence of input.ID. It resolves the slug, upserts the
// record, then runs the upload workflow when images were staged.
func (s *PropertyService) Save(ctx context.Context, input SaveInput) (*models.Property, error) {
	if err := validateSaveInput(&input); err != nil {
		return nil, err
	}

	finalSlug, err := s.resolveSlug(input)
	if err != nil {
		return nil, err
	}

	p := &models.Property{
		ID:           input.ID,
		Title:        input.Title,
		Slug:         finalSlug,
		Type:         input.Type,
		Purpose:      input.Purpose,
		Price:        input.Price,
		City:         input.City,
		Neighborhood: input.Neighborhood,
		Bedrooms:     input.Bedrooms,
		Bathrooms:    input.Bathrooms,
		ParkingSpots: input.ParkingSpots,
		BuiltArea:    input.BuiltArea,
		TotalArea:    input.TotalArea,
		Description:  input.Description,
		Status:       input.Status,
		Featured:     input.Featured,
	}

	if err := s.store.UpsertProperty(p); err != nil {
		if err == database.ErrPropertyNotFound {
			return nil, apperr.NotFound("property not found")
		}
		return nil, apperr.Remote(err.Error(), err)
	}
	if p.ID == "" {
		return nil, apperr.Remote("save did not return a property identifier", nil)
	}

	if len(input.Staged) > 0 {
		if err := s.uploader.Run(ctx, p.ID, input.Staged, input.CoverIndex); err != nil {
			return nil, err
		}
	}

	if s.searcher != nil {
		if err := s.searcher.IndexProperty(p); err != nil {
			slog.Warn("failed to index property", "property_id", p.ID, "error", err)
		}
	}

	return p, nil
}

// Delete removes the property, its image rows, its storage objects
// (best effort), and its search document (best effort).
func (s *PropertyService) Delete(ctx context.Context, id string) error {
	urls, err := s.store.DeleteImagesByProperty(id)
	if err != nil {
		return apperr.Remote(err.Error(), err)
	}

	if err := s.store.DeleteProperty(id); err != nil {
		if err == database.ErrPropertyNotFound {
			return apperr.NotFound("property not found")
		}
		return apperr.Remote(err.Error(), err)
	}

	if s.objects != nil {
		for _, u := range urls {
			key, ok := s.objects.KeyFromPublicURL(u)
			if !ok {
				continue
			}
			if err := s.objects.Delete(ctx, key); err != nil {
				slog.Warn("failed to delete stored image", "key", key, "error", err)
			}
		}
	}

	if s.searcher != nil {
		if err := s.searcher.DeleteProperty(id); err != nil {
			slog.Warn("failed to remove property from index", "property_id", id, "error", err)
		}
	}

	return nil
}

// resolveSlug prefers the explicit slug field (re-normalized), then the
// title, then a timestamp placeholder. On the create path it re-checks
// the store and appends random numeric suffixes until the slug is
// unique, giving up after a bounded number of attempts.
func (s *PropertyService) resolveSlug(input SaveInput) (string, error) {
	base := slug.Make(input.Slug)
	if base == "" {
		base = slug.Make(input.Title)
	}
	if base == "" {
		base = fmt.Sprintf("imovel-%d", s.now().Unix())
	}

	if input.ID != "" {
		return base, nil
	}

	candidate := base
	for attempt := 0; attempt < slugAttempts; attempt++ {
		exists, err := s.store.SlugExists(candidate)
		if err != nil {
			return "", apperr.Remote(err.Error(), err)
		}
		if !exists {
			return candidate, nil
		}
		// The top-level source is safe for concurrent saves.
		candidate = fmt.Sprintf("%s-%d", base, rand.Intn(1000))
	}

	return "", apperr.Remote(fmt.Sprintf("could not allocate a unique slug for %q", base), nil)
}

func validateSaveInput(input *SaveInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return apperr.Validation("title is required")
	}
	if strings.TrimSpace(input.City) == "" {
		return apperr.Validation("city is required")
	}
	if !models.ValidType(input.Type) {
		return apperr.Validation(fmt.Sprintf("unknown property type %q", input.Type))
	}
	if !models.ValidPurpose(input.Purpose) {
		return apperr.Validation(fmt.Sprintf("unknown purpose %q", input.Purpose))
	}
	if input.Status == "" {
		input.Status = models.PropertyStatusAvailable
	}
	if !models.ValidStatus(input.Status) {
		return apperr.Validation(fmt.Sprintf("unknown status %q", input.Status))
	}
	if input.Price < 0 {
		return apperr.Validation("price cannot be negative")
	}
	if input.Bedrooms < 0 || input.Bathrooms < 0 || input.ParkingSpots < 0 {
		return apperr.Validation("room and parking counts cannot be negative")
	}
	if input.BuiltArea != nil && *input.BuiltArea <= 0 {
		return apperr.Validation("built area must be positive")
	}
	if input.TotalArea != nil && *input.TotalArea <= 0 {
		return apperr.Validation("total area must be positive")
	}
	return nil
}
