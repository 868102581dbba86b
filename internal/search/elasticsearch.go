package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"skybook/internal/models"
)

type Config struct {
	URL        string
	Username   string
	Password   string
	Index      string
	MaxRetries int
}

// Client maintains the flight search index. The catalog works without it;
// when Elasticsearch is not configured, search falls back to SQL.
type Client struct {
	es     *elasticsearch.Client
	config Config
}

func NewClient(cfg Config) (*Client, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses:     []string{cfg.URL},
		Username:      cfg.Username,
		Password:      cfg.Password,
		RetryOnStatus: []int{502, 503, 504, 429},
		MaxRetries:    cfg.MaxRetries,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	client := &Client{es: es, config: cfg}

	if err := client.ensureIndex(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ensure index exists: %w", err)
	}

	return client, nil
}

func (c *Client) ensureIndex(ctx context.Context) error {
	req := esapi.IndicesExistsRequest{
		Index: []string{c.config.Index},
	}

	res, err := req.Do(ctx, c.es)
	if err != nil {
		return fmt.Errorf("failed to check index existence: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == 200 {
		slog.Info("Elasticsearch index already exists", "index", c.config.Index)
		return nil
	}

	mapping := map[string]interface{}{
		"settings": map[string]interface{}{
			"number_of_shards":   1,
			"number_of_replicas": 0,
		},
		"mappings": map[string]interface{}{
			"properties": map[string]interface{}{
				"id":             map[string]interface{}{"type": "long"},
				"flight_number":  map[string]interface{}{"type": "keyword"},
				"origin":         map[string]interface{}{"type": "keyword"},
				"destination":    map[string]interface{}{"type": "keyword"},
				"departure_date": map[string]interface{}{"type": "date", "format": "yyyy-MM-dd"},
				"status":         map[string]interface{}{"type": "keyword"},
				"price":          map[string]interface{}{"type": "double"},
			},
		},
	}

	body, err := json.Marshal(mapping)
	if err != nil {
		return fmt.Errorf("failed to marshal index mapping: %w", err)
	}

	createReq := esapi.IndicesCreateRequest{
		Index: c.config.Index,
		Body:  bytes.NewReader(body),
	}

	createRes, err := createReq.Do(ctx, c.es)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	defer createRes.Body.Close()

	if createRes.IsError() {
		return fmt.Errorf("index creation returned status %s", createRes.Status())
	}

	slog.Info("Created Elasticsearch index", "index", c.config.Index)
	return nil
}

type flightDoc struct {
	ID            int64   `json:"id"`
	FlightNumber  string  `json:"flight_number"`
	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
	DepartureDate string  `json:"departure_date"`
	Status        string  `json:"status"`
	Price         float64 `json:"price"`
}

// IndexFlight upserts a flight document keyed by its database id
func (c *Client) IndexFlight(ctx context.Context, flight *models.Flight) error {
	doc := flightDoc{
		ID:            flight.ID,
		FlightNumber:  flight.FlightNumber,
		Origin:        flight.Origin,
		Destination:   flight.Destination,
		DepartureDate: flight.DepartureDate.Format("2006-01-02"),
		Status:        flight.Status,
		Price:         flight.Price,
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal flight doc: %w", err)
	}

	req := esapi.IndexRequest{
		Index:      c.config.Index,
		DocumentID: strconv.FormatInt(flight.ID, 10),
		Body:       bytes.NewReader(body),
	}

	res, err := req.Do(ctx, c.es)
	if err != nil {
		return fmt.Errorf("failed to index flight: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("indexing flight %d returned status %s", flight.ID, res.Status())
	}

	return nil
}

// DeleteFlight removes a flight document from the index
func (c *Client) DeleteFlight(ctx context.Context, flightID int64) error {
	req := esapi.DeleteRequest{
		Index:      c.config.Index,
		DocumentID: strconv.FormatInt(flightID, 10),
	}

	res, err := req.Do(ctx, c.es)
	if err != nil {
		return fmt.Errorf("failed to delete flight from index: %w", err)
	}
	defer res.Body.Close()

	// 404 just means the flight was never indexed
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("deleting flight %d returned status %s", flightID, res.Status())
	}

	return nil
}

// SearchFlights returns the ids of flights on the given route, optionally
// restricted to a single departure day. Rows are loaded from postgres by id.
func (c *Client) SearchFlights(ctx context.Context, origin, destination, date string) ([]int64, error) {
	must := []map[string]interface{}{}
	if origin != "" {
		must = append(must, map[string]interface{}{
			"term": map[string]interface{}{"origin": origin},
		})
	}
	if destination != "" {
		must = append(must, map[string]interface{}{
			"term": map[string]interface{}{"destination": destination},
		})
	}
	if date != "" {
		must = append(must, map[string]interface{}{
			"term": map[string]interface{}{"departure_date": date},
		})
	}

	query := map[string]interface{}{
		"size":    100,
		"_source": []string{"id"},
		"query": map[string]interface{}{
			"bool": map[string]interface{}{"must": must},
		},
	}

	body, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search query: %w", err)
	}

	res, err := c.es.Search(
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(c.config.Index),
		c.es.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search returned status %s", res.Status())
	}

	var result struct {
		Hits struct {
			Hits []struct {
				Source flightDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}

	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	ids := make([]int64, 0, len(result.Hits.Hits))
	for _, hit := range result.Hits.Hits {
		ids = append(ids, hit.Source.ID)
	}

	return ids, nil
}
