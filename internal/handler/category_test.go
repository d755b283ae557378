package handler

import (
	"net/http"
	"testing"

	"github.com/Payphone-Digital/storefront/internal/constants"
	"github.com/Payphone-Digital/storefront/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCategoryEngine(repo *memCategoryRepo) *gin.Engine {
	h := NewCategoryHandler(service.NewCategoryService(repo, service.NewCacheService(nil, nil, nil), nil))

	r := gin.New()
	r.POST("/add-category", h.Create)
	r.GET("/get", h.GetAll)
	r.PUT("/update", h.Update)
	r.DELETE("/delete", h.Delete)
	return r
}

func TestCategoryHandler_CreateRequiresFields(t *testing.T) {
	r := newCategoryEngine(newMemCategoryRepo())

	w := do(t, r, request{method: http.MethodPost, path: "/add-category", body: map[string]string{"name": "Fruits"}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, constants.MsgRequiredFields, decode(t, w)["message"])
}

func TestCategoryHandler_CRUD(t *testing.T) {
	repo := newMemCategoryRepo()
	r := newCategoryEngine(repo)

	w := do(t, r, request{
		method: http.MethodPost,
		path:   "/add-category",
		body:   map[string]string{"name": "Fruits", "image": "http://img/fruits.png"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	created := decode(t, w)["data"].(map[string]any)
	id := created["_id"].(string)
	require.NotEmpty(t, id)

	w = do(t, r, request{method: http.MethodGet, path: "/get"})
	require.Equal(t, http.StatusOK, w.Code)
	list := decode(t, w)["data"].([]any)
	require.Len(t, list, 1)

	w = do(t, r, request{
		method: http.MethodPut,
		path:   "/update",
		body:   map[string]string{"_id": id, "name": "Fresh Fruits"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Fresh Fruits", decode(t, w)["data"].(map[string]any)["name"])

	w = do(t, r, request{method: http.MethodGet, path: "/get"})
	list = decode(t, w)["data"].([]any)
	assert.Equal(t, "Fresh Fruits", list[0].(map[string]any)["name"], "writes invalidate the cached list")

	w = do(t, r, request{method: http.MethodDelete, path: "/delete", body: map[string]string{"_id": id}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, repo.categories)
}

func TestCategoryHandler_DeleteErrors(t *testing.T) {
	repo := newMemCategoryRepo()
	r := newCategoryEngine(repo)

	w := do(t, r, request{method: http.MethodDelete, path: "/delete", body: map[string]string{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Provide _id", decode(t, w)["message"])

	w = do(t, r, request{method: http.MethodDelete, path: "/delete", body: map[string]string{"_id": "missing"}})
	assert.Equal(t, http.StatusNotFound, w.Code)

	repo.refs["used"] = 2
	w = do(t, r, request{method: http.MethodDelete, path: "/delete", body: map[string]string{"_id": "used"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Category is already used", decode(t, w)["message"])
}

func TestCategoryHandler_UpdateUnknown(t *testing.T) {
	r := newCategoryEngine(newMemCategoryRepo())

	w := do(t, r, request{method: http.MethodPut, path: "/update", body: map[string]string{"_id": "missing", "name": "x"}})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Category not found", decode(t, w)["message"])
}
