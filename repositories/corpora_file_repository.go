package repositories

import (
	"context"
	"encoding/json"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/tidwall/gjson"

	"github.com/engagekit/engage-backend/models"
)

// CorporaFileRepository loads the dynamic configuration store from a single
// JSON properties document on disk:
//
//	{
//	  "preload_corpora": {"cohort_identification": {...}, ...},
//	  "dynamic_corpora": {"dynamic_engagement": {...}, ...},
//	  "offer_matrix": [{...}, ...]
//	}
//
// The document is re-read on every call so out-of-band edits take effect
// without a restart; callers own any caching they need.
type CorporaFileRepository struct {
	path string
}

func NewCorporaFileRepository(path string) *CorporaFileRepository {
	return &CorporaFileRepository{path: path}
}

func (r *CorporaFileRepository) read() ([]byte, error) {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		return nil, errors.Wrap(models.NotFoundError, "corpora document: "+err.Error())
	}
	if !gjson.ValidBytes(raw) {
		return nil, errors.Wrap(models.BadParameterError, "corpora document is not valid json")
	}
	return raw, nil
}

// LoadCorpora returns the per-request corpora set. A missing section is not
// an error: features backed by an absent corpus are disabled or defaulted
// downstream.
func (r *CorporaFileRepository) LoadCorpora(ctx context.Context) (models.CorporaSet, error) {
	raw, err := r.read()
	if err != nil {
		return models.CorporaSet{}, err
	}

	set := models.CorporaSet{
		Preload: make(map[string]json.RawMessage),
		Dynamic: make(map[string]json.RawMessage),
	}
	gjson.GetBytes(raw, "preload_corpora").ForEach(func(key, value gjson.Result) bool {
		set.Preload[key.String()] = json.RawMessage(value.Raw)
		return true
	})
	gjson.GetBytes(raw, "dynamic_corpora").ForEach(func(key, value gjson.Result) bool {
		set.Dynamic[key.String()] = json.RawMessage(value.Raw)
		return true
	})
	return set, nil
}

// LoadOfferMatrix parses the offer_matrix section into the indexed matrix. An
// absent section yields an empty matrix, which only the matrix-driven
// strategies care about.
func (r *CorporaFileRepository) LoadOfferMatrix(ctx context.Context) (models.OfferMatrix, error) {
	raw, err := r.read()
	if err != nil {
		return models.OfferMatrix{}, err
	}

	section := gjson.GetBytes(raw, "offer_matrix")
	if !section.Exists() {
		return models.NewOfferMatrix(nil), nil
	}
	if !section.IsArray() {
		return models.OfferMatrix{}, errors.Wrap(models.BadParameterError,
			"offer_matrix must be an array of rows")
	}

	var rows []map[string]any
	if err := json.Unmarshal([]byte(section.Raw), &rows); err != nil {
		return models.OfferMatrix{}, errors.Wrap(err, "decoding offer_matrix rows")
	}
	return models.ParseOfferMatrix(rows), nil
}
