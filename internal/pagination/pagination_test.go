package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func paramsFromURL(t *testing.T, url string) Params {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", url, nil)
	return FromQuery(c)
}

func TestFromQuery(t *testing.T) {
	cases := []struct {
		url  string
		want Params
	}{
		{"/products", Params{Page: 1, Limit: 10}},
		{"/products?page=3&limit=25", Params{Page: 3, Limit: 25}},
		{"/products?page=0&limit=0", Params{Page: 1, Limit: 1}},
		{"/products?page=-2&limit=-5", Params{Page: 1, Limit: 1}}, // négatif → clampé à la borne basse
		{"/products?limit=5000", Params{Page: 1, Limit: 100}},
		{"/products?page=abc&limit=xyz", Params{Page: 1, Limit: 10}},
		{"/products?page=2.5", Params{Page: 1, Limit: 10}},
		{"/products?page=-&limit=-", Params{Page: 1, Limit: 10}},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, paramsFromURL(t, tc.url), "url %s", tc.url)
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, Params{Page: 1, Limit: 1}, Params{Page: -3, Limit: 0}.Normalize())
	assert.Equal(t, Params{Page: 1, Limit: MaxLimit}, Params{Page: 0, Limit: 999}.Normalize())
	assert.Equal(t, Params{Page: 7, Limit: 50}, Params{Page: 7, Limit: 50}.Normalize())
}

func TestSkip(t *testing.T) {
	assert.Equal(t, int64(0), Params{Page: 1, Limit: 10}.Skip())
	assert.Equal(t, int64(40), Params{Page: 5, Limit: 10}.Skip())
	assert.Equal(t, int64(75), Params{Page: 4, Limit: 25}.Skip())
}

func TestNewMeta(t *testing.T) {
	m := NewMeta(Params{Page: 2, Limit: 10}, 95)
	assert.Equal(t, int64(95), m.Total)
	assert.Equal(t, int64(10), m.TotalPages)
	assert.True(t, m.HasNextPage)
	assert.True(t, m.HasPrevPage)

	// total multiple exact de limit
	m = NewMeta(Params{Page: 10, Limit: 10}, 100)
	assert.Equal(t, int64(10), m.TotalPages)
	assert.False(t, m.HasNextPage)

	// collection vide : une page quand même
	m = NewMeta(Params{Page: 1, Limit: 10}, 0)
	assert.Equal(t, int64(0), m.Total)
	assert.Equal(t, int64(1), m.TotalPages)
	assert.False(t, m.HasNextPage)
	assert.False(t, m.HasPrevPage)
}

func TestNewMeta_PageAuDela(t *testing.T) {
	// Page au-delà de la dernière : les totaux restent vrais, pas de page suivante
	m := NewMeta(Params{Page: 50, Limit: 10}, 23)
	assert.Equal(t, 50, m.Page)
	assert.Equal(t, int64(23), m.Total)
	assert.Equal(t, int64(3), m.TotalPages)
	assert.False(t, m.HasNextPage)
	assert.True(t, m.HasPrevPage)
}

func TestProductFilterBson(t *testing.T) {
	assert.Equal(t, bson.M{}, ProductFilter{}.Bson())

	// la vitrine publique ne montre que les produits actifs
	assert.Equal(t, bson.M{"is_active": true}, ProductFilter{ActiveOnly: true}.Bson())

	f := ProductFilter{Category: "cat1", Brand: "br1", Name: "marg", ActiveOnly: true}
	got := f.Bson()
	assert.Equal(t, "cat1", got["category_id"])
	assert.Equal(t, "br1", got["brand_id"])
	assert.Equal(t, true, got["is_active"])
	assert.NotContains(t, got, "subcategory_id")

	re, ok := got["name"].(primitive.Regex)
	assert.True(t, ok)
	assert.Equal(t, "marg", re.Pattern)
	assert.Equal(t, "i", re.Options)
}

func TestProductFilterBson_EchappeLaRegex(t *testing.T) {
	got := ProductFilter{Name: "12° (brut)"}.Bson()
	re := got["name"].(primitive.Regex)
	assert.Equal(t, `12° \(brut\)`, re.Pattern)
}

func TestOrderFilterBson(t *testing.T) {
	assert.Equal(t, bson.M{}, OrderFilter{}.Bson())
	assert.Equal(t,
		bson.M{"payment_status": "SUCCESS", "user_id": "u42"},
		OrderFilter{PaymentStatus: "SUCCESS", UserID: "u42"}.Bson(),
	)
}

func TestUserFilterBson(t *testing.T) {
	got := UserFilter{Role: "admin", Search: "dupont"}.Bson()
	assert.Equal(t, "admin", got["role"])

	or, ok := got["$or"].(bson.A)
	assert.True(t, ok)
	assert.Len(t, or, 2)
}
