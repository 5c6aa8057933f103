// internal/suggestions/catalog/ai.go
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	apperrors "trip-suggestions/internal/common/errors"
	"trip-suggestions/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

const DefaultAIIndex = "ai_destinations"

// AISource reads AI-annotated destinations from Elasticsearch, best first.
type AISource struct {
	client *elasticsearch.Client
	index  string
	limit  int
}

func NewAISource(client *elasticsearch.Client, index string, limit int) *AISource {
	if index == "" {
		index = DefaultAIIndex
	}
	if limit <= 0 {
		limit = 50
	}
	return &AISource{client: client, index: index, limit: limit}
}

func (a *AISource) Name() string { return "ai" }

type searchResponse struct {
	Hits struct {
		Hits []struct {
			ID     string             `json:"_id"`
			Source models.Destination `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func (a *AISource) Fetch(ctx context.Context) ([]models.Destination, error) {
	query := map[string]interface{}{
		"size":  a.limit,
		"query": map[string]interface{}{"match_all": map[string]interface{}{}},
		"sort": []interface{}{
			map[string]interface{}{"aiScore": map[string]interface{}{"order": "desc"}},
		},
	}
	body, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("encode ai query: %w", err)
	}

	req := esapi.SearchRequest{
		Index: []string{a.index},
		Body:  bytes.NewReader(body),
	}
	res, err := req.Do(ctx, a.client)
	if err != nil {
		return nil, apperrors.NewSearchQueryFailedError(a.index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, apperrors.NewSearchQueryFailedError(a.index, fmt.Errorf("status %s", res.Status()))
	}

	var r searchResponse
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("decode ai results: %w", err)
	}

	out := make([]models.Destination, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		d := hit.Source
		if d.ID == "" {
			d.ID = hit.ID
		}
		if d.Source == "" {
			d.Source = models.SourceAIGenerated
		}
		out = append(out, d)
	}
	return out, nil
}
