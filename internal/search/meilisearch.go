package search

import (
	"encoding/json"
	"fmt"

	"casa-certa-portal/internal/models"

	"github.com/meilisearch/meilisearch-go"
)

type SearchClient struct {
	client *meilisearch.Client
	index  string
}

func NewSearchClient(host, apiKey string) *SearchClient {
	client := meilisearch.NewClient(meilisearch.ClientConfig{
		Host:   host,
		APIKey: apiKey,
	})

	return &SearchClient{
		client: client,
		index:  "properties",
	}
}

// InitIndex initializes the Meilisearch index
func (s *SearchClient) InitIndex() error {
	_, err := s.client.CreateIndex(&meilisearch.IndexConfig{
		Uid:        s.index,
		PrimaryKey: "id",
	})
	// Ignore error if index already exists
	if err != nil && err.Error() != "index already exists" {
		return err
	}

	_, err = s.client.Index(s.index).UpdateSearchableAttributes(&[]string{
		"title",
		"city",
		"neighborhood",
		"description",
	})
	if err != nil {
		return err
	}

	_, err = s.client.Index(s.index).UpdateFilterableAttributes(&[]string{
		"id",
		"type",
		"purpose",
		"status",
	})
	if err != nil {
		return err
	}

	_, err = s.client.Index(s.index).UpdateSortableAttributes(&[]string{
		"price",
		"created_at",
	})
	return err
}

// IndexProperty indexes a single property
func (s *SearchClient) IndexProperty(property *models.Property) error {
	_, err := s.client.Index(s.index).AddDocuments([]models.Property{*property})
	return err
}

// IndexProperties indexes multiple properties
func (s *SearchClient) IndexProperties(properties []models.Property) error {
	if len(properties) == 0 {
		return nil
	}
	_, err := s.client.Index(s.index).AddDocuments(properties)
	return err
}

// DeleteProperty removes a property document from the index
func (s *SearchClient) DeleteProperty(id string) error {
	_, err := s.client.Index(s.index).DeleteDocument(id)
	return err
}

// CatalogParams mirrors the public catalog filters for index-backed
// search.
type CatalogParams struct {
	Query   string
	Type    string
	Purpose string
	Sort    string
}

// catalogFilters builds the Meilisearch filter expressions for the
// catalog params. Values are interpolated into the filter string, so
// anything outside the known enums is rejected rather than quoted.
func catalogFilters(params CatalogParams) ([]string, error) {
	var filters []string
	if params.Type != "" && params.Type != "all" {
		if !models.ValidType(models.PropertyType(params.Type)) {
			return nil, fmt.Errorf("unrecognized property type %q", params.Type)
		}
		filters = append(filters, fmt.Sprintf("type = '%s'", params.Type))
	}
	if params.Purpose != "" && params.Purpose != "all" {
		if !models.ValidPurpose(models.PropertyPurpose(params.Purpose)) {
			return nil, fmt.Errorf("unrecognized purpose %q", params.Purpose)
		}
		filters = append(filters, fmt.Sprintf("purpose = '%s'", params.Purpose))
	}
	return filters, nil
}

// CatalogSearch performs a filtered full-text search over properties.
func (s *SearchClient) CatalogSearch(params CatalogParams) ([]models.Property, error) {
	filters, err := catalogFilters(params)
	if err != nil {
		return nil, err
	}

	var sort []string
	switch params.Sort {
	case "price_asc":
		sort = []string{"price:asc"}
	case "price_desc":
		sort = []string{"price:desc"}
	default:
		sort = []string{"created_at:desc"}
	}

	searchReq := &meilisearch.SearchRequest{
		Limit: 1000,
		Sort:  sort,
	}
	if len(filters) > 0 {
		searchReq.Filter = filters
	}

	searchRes, err := s.client.Index(s.index).Search(params.Query, searchReq)
	if err != nil {
		return nil, err
	}

	// Convert hits back into Property structs
	var properties []models.Property
	for _, hit := range searchRes.Hits {
		hitJSON, err := json.Marshal(hit)
		if err != nil {
			continue
		}

		var property models.Property
		if err := json.Unmarshal(hitJSON, &property); err != nil {
			continue
		}

		properties = append(properties, property)
	}

	return properties, nil
}
