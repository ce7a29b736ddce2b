// Package pagination centralise la pagination des listes (produits,
// utilisateurs, commandes) : clamp des paramètres, fenêtre skip/limit et
// métadonnées renvoyées avec chaque page.
package pagination

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

type Params struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Normalize borne les paramètres au lieu de les rejeter :
// page >= 1, limit dans [1, 100].
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 1
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

func (p Params) Skip() int64 {
	return int64((p.Page - 1) * p.Limit)
}

// FromQuery lit ?page= et ?limit= avec leurs défauts. Les valeurs non
// numériques retombent sur le défaut ; les valeurs hors bornes, négatives
// comprises, sont clampées à la borne la plus proche.
func FromQuery(c *gin.Context) Params {
	p := Params{Page: DefaultPage, Limit: DefaultLimit}
	if v, ok := atoi(c.Query("page")); ok {
		p.Page = v
	}
	if v, ok := atoi(c.Query("limit")); ok {
		p.Limit = v
	}
	return p.Normalize()
}

func atoi(s string) (int, bool) {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	if s == "" {
		return 0, false
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
		if n > 1<<30 {
			n = 1 << 30
		}
	}
	if neg {
		return -n, true
	}
	return n, true
}

// Meta accompagne chaque page de résultats. Total reflète toujours le compte
// réel des documents filtrés, indépendamment de la fenêtre demandée.
type Meta struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	Total       int64 `json:"total"`
	TotalPages  int64 `json:"total_pages"`
	HasNextPage bool  `json:"has_next_page"`
	HasPrevPage bool  `json:"has_prev_page"`
}

// NewMeta calcule les métadonnées : total_pages = max(1, ceil(total/limit)),
// une collection vide compte donc une page.
func NewMeta(p Params, total int64) Meta {
	p = p.Normalize()

	totalPages := (total + int64(p.Limit) - 1) / int64(p.Limit)
	if totalPages < 1 {
		totalPages = 1
	}

	return Meta{
		Page:        p.Page,
		Limit:       p.Limit,
		Total:       total,
		TotalPages:  totalPages,
		HasNextPage: int64(p.Page) < totalPages,
		HasPrevPage: p.Page > 1,
	}
}

// Find exécute le count (filtre complet, sans fenêtre) et le fetch fenêtré en
// parallèle, puis décode la page dans results (pointeur vers un slice).
// sort nil → created_at décroissant. Une page au-delà de total_pages renvoie
// une fenêtre vide avec les vrais totaux — pas de clamp de page vers le bas.
func Find(ctx context.Context, coll *mongo.Collection, filter bson.M, p Params, sort bson.D, results interface{}) (Meta, error) {
	p = p.Normalize()
	if filter == nil {
		filter = bson.M{}
	}
	if sort == nil {
		sort = bson.D{{Key: "created_at", Value: -1}}
	}

	var (
		total    int64
		countErr error
	)
	countDone := make(chan struct{})
	go func() {
		defer close(countDone)
		total, countErr = coll.CountDocuments(ctx, filter)
	}()

	opts := options.Find().
		SetSort(sort).
		SetSkip(p.Skip()).
		SetLimit(int64(p.Limit))

	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		<-countDone
		return Meta{}, err
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, results); err != nil {
		<-countDone
		return Meta{}, err
	}

	<-countDone
	if countErr != nil {
		return Meta{}, countErr
	}

	return NewMeta(p, total), nil
}
