package cache

import (
	"context"
	"encoding/json"
	"time"

	"lacave_back_end/internal/database"
)

const (
	ReferenceTTL = time.Hour       // catégories, marques, sous-catégories
	ProductTTL   = 10 * time.Minute
)

// GetJSON tente de lire une valeur JSON depuis Redis. Retourne false si la
// clé est absente ou indécodable — le caller retombe alors sur Mongo.
func GetJSON(ctx context.Context, key string, dest interface{}) bool {
	data, err := database.Redis.Get(ctx, key).Result()
	if err != nil || data == "" {
		return false
	}
	return json.Unmarshal([]byte(data), dest) == nil
}

// SetJSON met en cache une valeur sérialisée en JSON (best-effort)
func SetJSON(ctx context.Context, key string, v interface{}, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	database.Redis.Set(ctx, key, data, ttl)
}

// Invalidate supprime des clés de cache après une écriture
func Invalidate(ctx context.Context, keys ...string) {
	if len(keys) > 0 {
		database.Redis.Del(ctx, keys...)
	}
}
