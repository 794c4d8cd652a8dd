package catalog

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := setupTestDB(t)
	seedIngredients(t, db,
		Ingredient{Name: "flour", MeasurementUnit: "g"},
		Ingredient{Name: "fish", MeasurementUnit: "g"},
		Ingredient{Name: "apple", MeasurementUnit: "pcs"},
	)
	require.NoError(t, db.Create(&Tag{Name: "Breakfast", Color: "#E26C2D", Slug: "breakfast"}).Error)

	h := NewHandler(NewService(NewRepository(db)))
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if role := c.GetHeader("X-Test-Role"); role != "" {
			c.Set("user_id", int64(1))
			c.Set("role", role)
		}
		c.Next()
	})
	h.RegisterRoutes(r.Group("/api"))
	return r
}

func doRequest(r http.Handler, method, path string, body any, role string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set("X-Test-Role", role)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestListIngredients_ByPrefix(t *testing.T) {
	r := setupTestRouter(t)

	rr := doRequest(r, http.MethodGet, "/api/ingredients?name=F", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Data []Ingredient `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "fish", resp.Data[0].Name)
	assert.Equal(t, "flour", resp.Data[1].Name)
}

func TestTags(t *testing.T) {
	r := setupTestRouter(t)

	rr := doRequest(r, http.MethodGet, "/api/tags", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"slug":"breakfast"`)

	rr = doRequest(r, http.MethodGet, "/api/tags/1", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = doRequest(r, http.MethodGet, "/api/tags/99", nil, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = doRequest(r, http.MethodGet, "/api/tags/abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCreateTag_StaffOnly(t *testing.T) {
	r := setupTestRouter(t)
	body := map[string]any{"name": "Dinner", "color": "#8775D2", "slug": "dinner"}

	rr := doRequest(r, http.MethodPost, "/api/tags", body, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = doRequest(r, http.MethodPost, "/api/tags", body, "user")
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = doRequest(r, http.MethodPost, "/api/tags", body, "staff")
	assert.Equal(t, http.StatusCreated, rr.Code)

	rr = doRequest(r, http.MethodPost, "/api/tags", body, "admin")
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestCreateIngredient_Validation(t *testing.T) {
	r := setupTestRouter(t)

	rr := doRequest(r, http.MethodPost, "/api/ingredients", map[string]any{"name": "salt"}, "staff")
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "measurement_unit")
}
