// Package entitymodel exposes runtime metadata about the restaurant schema:
// a version fingerprint of the relational DDL and a JSON catalog of entities
// and relations for admin endpoints.
package entitymodel

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"sync"

	"restaurantcore/internal/entitymodel/sqlbundle"
	"restaurantcore/pkg/domain"
)

var (
	versionOnce sync.Once
	version     string
)

// Version returns a short fingerprint of the embedded Postgres DDL. It changes
// whenever the relational schema changes.
func Version() string {
	versionOnce.Do(func() {
		sum := sha256.Sum256([]byte(sqlbundle.Postgres()))
		version = hex.EncodeToString(sum[:6])
	})
	return version
}

// RelationInfo describes one relation in the catalog.
type RelationInfo struct {
	Name   domain.RelationName `json:"name"`
	Kind   domain.RelationKind `json:"kind"`
	Parent domain.EntityType   `json:"parent"`
	Child  domain.EntityType   `json:"child"`
	Field  string              `json:"field,omitempty"`
	Policy domain.DeletePolicy `json:"on_delete"`
}

// Catalog is the serialisable description of the schema.
type Catalog struct {
	Version   string              `json:"version"`
	Entities  []domain.EntityType `json:"entities"`
	Relations []RelationInfo      `json:"relations"`
}

// NewCatalog builds the schema catalog from the domain relation table.
func NewCatalog() Catalog {
	rels := domain.Relations()
	out := Catalog{
		Version:   Version(),
		Entities:  domain.EntityTypes(),
		Relations: make([]RelationInfo, 0, len(rels)),
	}
	for _, rel := range rels {
		out.Relations = append(out.Relations, RelationInfo{
			Name:   rel.Name,
			Kind:   rel.Kind,
			Parent: rel.Parent,
			Child:  rel.Child,
			Field:  rel.Field,
			Policy: rel.Policy,
		})
	}
	return out
}

// NewCatalogHandler returns an http.Handler serving the schema catalog as JSON.
func NewCatalogHandler() http.Handler {
	body, err := json.Marshal(NewCatalog())
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
	})
}
