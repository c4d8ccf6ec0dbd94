package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"ecommerce-api/internal/models"
)

func adminToken(t *testing.T, env *testEnv) string {
	t.Helper()
	admin := env.createUser(t, "Root", "root@example.com", "rootpass", models.RoleAdmin)
	return env.tokenFor(t, admin)
}

func TestCategoryCRUD(t *testing.T) {
	env := newTestEnv(t)
	token := adminToken(t, env)

	w := env.do(t, http.MethodPost, "/admin/categories", token, map[string]string{
		"name": "Books", "description": "Paper",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[models.Category](t, w)
	require.Equal(t, "Books", created.Name)

	w = env.do(t, http.MethodPost, "/admin/categories", token, map[string]string{"name": "Books"})
	requireError(t, w, http.StatusBadRequest, "Category with this name already exists")

	w = env.do(t, http.MethodPut, fmt.Sprintf("/admin/categories/%d", created.ID), token, map[string]string{
		"description": "Paper and ebooks",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.do(t, http.MethodGet, "/categories", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]models.Category](t, w)
	require.Len(t, list, 1)
	require.Equal(t, "Paper and ebooks", list[0].Description)

	w = env.do(t, http.MethodDelete, fmt.Sprintf("/admin/categories/%d", created.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/categories", "", nil)
	require.Empty(t, decode[[]models.Category](t, w))
}

func TestDeleteCategory_WithProductsConflicts(t *testing.T) {
	env := newTestEnv(t)
	token := adminToken(t, env)
	p := env.seedProduct(t, "Lamp", 20, 3)

	w := env.do(t, http.MethodDelete, fmt.Sprintf("/admin/categories/%d", p.CategoryID), token, nil)
	requireError(t, w, http.StatusConflict, "Category still has products")
}

func TestCreateProduct_WithInventory(t *testing.T) {
	env := newTestEnv(t)
	token := adminToken(t, env)
	category := models.Category{Name: "Kitchen"}
	require.NoError(t, env.db.Create(&category).Error)

	w := env.do(t, http.MethodPost, "/admin/add-product", token, map[string]any{
		"name":           "Kettle",
		"description":    "1.7L",
		"price":          29.99,
		"category_id":    category.ID,
		"stock_quantity": 12,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	resp := decode[struct {
		Product models.Product `json:"product"`
	}](t, w)
	require.Equal(t, "Kettle", resp.Product.Name)
	require.NotNil(t, resp.Product.Inventory)
	require.Equal(t, 12, resp.Product.Inventory.StockQuantity)
	require.NotNil(t, resp.Product.Category)
	require.Equal(t, "Kitchen", resp.Product.Category.Name)

	w = env.do(t, http.MethodPost, "/admin/add-product", token, map[string]any{
		"name": "Kettle", "price": 10, "category_id": category.ID,
	})
	requireError(t, w, http.StatusBadRequest, "Product with this name already exists")

	w = env.do(t, http.MethodPost, "/admin/add-product", token, map[string]any{
		"name": "Toaster", "price": 10, "category_id": 999,
	})
	requireError(t, w, http.StatusBadRequest, "Category not found")
}

func TestListProducts_CacheInvalidatedOnWrite(t *testing.T) {
	env := newTestEnv(t)
	token := adminToken(t, env)
	p := env.seedProduct(t, "Lamp", 20, 3)

	w := env.do(t, http.MethodGet, "/products", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, decode[[]models.Product](t, w), 1)

	// A write that bypasses the handlers is not visible until the entry expires.
	env.seedProduct(t, "Desk", 120, 1)
	w = env.do(t, http.MethodGet, "/products", "", nil)
	require.Len(t, decode[[]models.Product](t, w), 1)

	w = env.do(t, http.MethodPut, fmt.Sprintf("/admin/inventory/%d", p.ID), token, map[string]int{"stock_quantity": 9})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.do(t, http.MethodGet, "/products", "", nil)
	products := decode[[]models.Product](t, w)
	require.Len(t, products, 2)
	require.Equal(t, 9, products[0].Inventory.StockQuantity)
}

func TestGetProduct(t *testing.T) {
	env := newTestEnv(t)
	p := env.seedProduct(t, "Lamp", 20, 3)

	w := env.do(t, http.MethodGet, fmt.Sprintf("/products/%d", p.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Lamp", decode[models.Product](t, w).Name)

	w = env.do(t, http.MethodGet, "/products/999", "", nil)
	requireError(t, w, http.StatusNotFound, "Product not found")

	w = env.do(t, http.MethodGet, "/products/abc", "", nil)
	requireError(t, w, http.StatusBadRequest, "Invalid id")
}

func TestUpdateAndDeleteProduct(t *testing.T) {
	env := newTestEnv(t)
	token := adminToken(t, env)
	p := env.seedProduct(t, "Lamp", 20, 3)

	w := env.do(t, http.MethodPut, fmt.Sprintf("/admin/products/%d", p.ID), token, map[string]any{"price": 25.5})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.InDelta(t, 25.5, decode[models.Product](t, w).Price, 0.001)

	w = env.do(t, http.MethodPut, fmt.Sprintf("/admin/products/%d", p.ID), token, map[string]any{})
	requireError(t, w, http.StatusBadRequest, "No fields to update")

	w = env.do(t, http.MethodDelete, fmt.Sprintf("/admin/products/%d", p.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, env.db.Model(&models.Inventory{}).Where("product_id = ?", p.ID).Count(&count).Error)
	require.Zero(t, count)

	w = env.do(t, http.MethodDelete, fmt.Sprintf("/admin/products/%d", p.ID), token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestInventory(t *testing.T) {
	env := newTestEnv(t)
	token := adminToken(t, env)

	w := env.do(t, http.MethodGet, "/admin/inventory", token, nil)
	requireError(t, w, http.StatusNotFound, "Inventory is empty")

	p := env.seedProduct(t, "Lamp", 20, 3)
	w = env.do(t, http.MethodGet, "/admin/inventory", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	rows := decode[[]models.Inventory](t, w)
	require.Len(t, rows, 1)
	require.Equal(t, p.ID, rows[0].ProductID)

	w = env.do(t, http.MethodPut, fmt.Sprintf("/admin/inventory/%d", p.ID), token, map[string]int{"stock_quantity": -1})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPut, "/admin/inventory/999", token, map[string]int{"stock_quantity": 1})
	require.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodPut, fmt.Sprintf("/admin/inventory/%d", p.ID), token, map[string]int{"stock_quantity": 0})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 0, env.stockOf(t, p.ID))
}
