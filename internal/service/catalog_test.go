package service

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"testing"

	"github.com/Payphone-Digital/storefront/internal/constants"
	"github.com/Payphone-Digital/storefront/internal/dto"
	apperrors "github.com/Payphone-Digital/storefront/internal/errors"
	"github.com/Payphone-Digital/storefront/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func category(id, name string) model.Category {
	return model.Category{Base: model.Base{ID: id}, Name: name, Image: name + ".png"}
}

func TestCategoryService_Create(t *testing.T) {
	svc := NewCategoryService(newFakeCategoryRepo(), NewCacheService(nil, nil, nil), nil)

	_, err := svc.Create(context.Background(), &dto.CreateCategoryRequest{Name: "Fruits"})
	assert.Equal(t, constants.MsgRequiredFields, apperrors.GetErrorMessage(err))

	created, err := svc.Create(context.Background(), &dto.CreateCategoryRequest{Name: " Fruits ", Image: "f.png"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Fruits", created.Name)
}

func TestCategoryService_GetAll_CachedUntilWrite(t *testing.T) {
	repo := newFakeCategoryRepo(category("c1", "Fruits"))
	svc := NewCategoryService(repo, NewCacheService(nil, nil, nil), nil)
	ctx := context.Background()

	first, err := svc.GetAll(ctx)
	require.NoError(t, err)
	second, err := svc.GetAll(ctx)
	require.NoError(t, err)

	assert.Len(t, first, 1)
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.Equal(t, 1, repo.listCalls)

	_, err = svc.Create(ctx, &dto.CreateCategoryRequest{Name: "Dairy", Image: "d.png"})
	require.NoError(t, err)

	third, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, third, 2)
	assert.Equal(t, 2, repo.listCalls)
}

func TestCategoryService_Update(t *testing.T) {
	svc := NewCategoryService(newFakeCategoryRepo(category("c1", "Fruits")), NewCacheService(nil, nil, nil), nil)

	_, err := svc.Update(context.Background(), &dto.UpdateCategoryRequest{Name: strPtr("x")})
	assert.Equal(t, http.StatusBadRequest, apperrors.ToHTTPStatus(err))

	_, err = svc.Update(context.Background(), &dto.UpdateCategoryRequest{ID: "missing", Name: strPtr("x")})
	assert.ErrorIs(t, err, apperrors.ErrCategoryNotFound)

	updated, err := svc.Update(context.Background(), &dto.UpdateCategoryRequest{ID: "c1", Name: strPtr("Fresh Fruits")})
	require.NoError(t, err)
	assert.Equal(t, "Fresh Fruits", updated.Name)
	assert.Equal(t, "Fruits.png", updated.Image)
}

func TestCategoryService_Delete_ReferencedIsKept(t *testing.T) {
	repo := newFakeCategoryRepo(category("c1", "Fruits"), category("c2", "Dairy"))
	repo.refs["c1"] = 2
	svc := NewCategoryService(repo, NewCacheService(nil, nil, nil), nil)

	err := svc.Delete(context.Background(), "c1")
	assert.ErrorIs(t, err, apperrors.ErrCategoryInUse)
	assert.Equal(t, http.StatusBadRequest, apperrors.ToHTTPStatus(err))
	_, err = repo.GetByID(context.Background(), "c1")
	assert.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), "c2"))
	_, err = repo.GetByID(context.Background(), "c2")
	assert.Error(t, err)
}

func TestSubCategoryService_Create(t *testing.T) {
	cats := newFakeCategoryRepo(category("c1", "Fruits"))
	svc := NewSubCategoryService(newFakeSubCategoryRepo(), cats, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, &dto.CreateSubCategoryRequest{Name: "Apples", Image: "a.png"})
	assert.Equal(t, constants.MsgRequiredFields, apperrors.GetErrorMessage(err))

	_, err = svc.Create(ctx, &dto.CreateSubCategoryRequest{Name: "Apples", Image: "a.png", Category: []string{"c1", "ghost"}})
	assert.ErrorIs(t, err, apperrors.ErrInvalidReference)

	sub, err := svc.Create(ctx, &dto.CreateSubCategoryRequest{Name: "Apples", Image: "a.png", Category: []string{"c1", "c1"}})
	require.NoError(t, err)
	require.Len(t, sub.Categories, 1)
	assert.Equal(t, "c1", sub.Categories[0].ID)
}

func TestSubCategoryService_Update(t *testing.T) {
	cats := newFakeCategoryRepo(category("c1", "Fruits"), category("c2", "Organic"))
	subs := newFakeSubCategoryRepo(model.SubCategory{Base: model.Base{ID: "s1"}, Name: "Apples", Categories: []model.Category{category("c1", "Fruits")}})
	svc := NewSubCategoryService(subs, cats, nil)
	ctx := context.Background()

	updated, err := svc.Update(ctx, &dto.UpdateSubCategoryRequest{ID: "s1", Name: strPtr("Green Apples")})
	require.NoError(t, err)
	assert.Equal(t, "Green Apples", updated.Name)
	assert.Len(t, updated.Categories, 1, "categories untouched when omitted")

	updated, err = svc.Update(ctx, &dto.UpdateSubCategoryRequest{ID: "s1", Category: []string{"c2"}})
	require.NoError(t, err)
	require.Len(t, updated.Categories, 1)
	assert.Equal(t, "c2", updated.Categories[0].ID)

	_, err = svc.Update(ctx, &dto.UpdateSubCategoryRequest{ID: "s1", Category: []string{}})
	assert.Equal(t, http.StatusBadRequest, apperrors.ToHTTPStatus(err))

	_, err = svc.Update(ctx, &dto.UpdateSubCategoryRequest{ID: "nope", Name: strPtr("x")})
	assert.ErrorIs(t, err, apperrors.ErrSubCategoryNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, "nope"), apperrors.ErrSubCategoryNotFound)
	assert.NoError(t, svc.Delete(ctx, "s1"))
}

func newProductFixture() (*ProductService, *fakeProductRepo) {
	cats := newFakeCategoryRepo(category("c1", "Fruits"), category("c2", "Dairy"))
	subs := newFakeSubCategoryRepo(model.SubCategory{Base: model.Base{ID: "s1"}, Name: "Apples"})
	repo := &fakeProductRepo{}
	return NewProductService(repo, cats, subs, nil), repo
}

func validProduct() *dto.CreateProductRequest {
	return &dto.CreateProductRequest{
		Name:        "Gala",
		Image:       []string{"gala.png"},
		Category:    []string{"c1"},
		SubCategory: []string{"s1"},
		Unit:        "1kg",
		Price:       floatPtr(120),
		Description: "Sweet apples",
	}
}

func TestProductService_Create(t *testing.T) {
	svc, repo := newProductFixture()
	ctx := context.Background()

	missing := []func(r *dto.CreateProductRequest){
		func(r *dto.CreateProductRequest) { r.Name = "" },
		func(r *dto.CreateProductRequest) { r.Image = []string{""} },
		func(r *dto.CreateProductRequest) { r.Category = nil },
		func(r *dto.CreateProductRequest) { r.SubCategory = nil },
		func(r *dto.CreateProductRequest) { r.Unit = "" },
		func(r *dto.CreateProductRequest) { r.Price = nil },
		func(r *dto.CreateProductRequest) { r.Description = "" },
	}
	for i, mutate := range missing {
		req := validProduct()
		mutate(req)
		_, err := svc.Create(ctx, req)
		assert.Equal(t, constants.MsgRequiredFields, apperrors.GetErrorMessage(err), "case %d", i)
	}

	bad := validProduct()
	bad.SubCategory = []string{"ghost"}
	_, err := svc.Create(ctx, bad)
	assert.ErrorIs(t, err, apperrors.ErrInvalidReference)

	product, err := svc.Create(ctx, validProduct())
	require.NoError(t, err)
	assert.True(t, product.Publish)
	assert.Equal(t, 120.0, product.Price)
	assert.Zero(t, product.Stock)
	assert.Len(t, repo.products, 1)
}

func TestProductService_List_Pagination(t *testing.T) {
	svc, repo := newProductFixture()
	for i := 0; i < 25; i++ {
		repo.products = append(repo.products, model.Product{Base: model.Base{ID: fmt.Sprintf("p%02d", i)}})
	}

	page, err := svc.List(context.Background(), &dto.ListProductsRequest{Page: 2, Limit: 10})
	require.NoError(t, err)

	assert.Len(t, page.Products, 10)
	assert.Equal(t, "p10", page.Products[0].ID)
	assert.Equal(t, int64(25), page.TotalCount)
	assert.Equal(t, 3, constants.TotalPages(page.TotalCount, page.Limit))

	page, err = svc.List(context.Background(), &dto.ListProductsRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 10, page.Limit)

	page, err = svc.Search(context.Background(), &dto.ListProductsRequest{Page: 9, Limit: 10, Search: " apple "})
	require.NoError(t, err)
	assert.Empty(t, page.Products)
	assert.NotNil(t, page.Products)
	assert.Equal(t, "apple", repo.filters[len(repo.filters)-1].Search)
}

func TestProductService_List_HugePageDoesNotOverflow(t *testing.T) {
	svc, repo := newProductFixture()
	repo.products = append(repo.products, model.Product{Base: model.Base{ID: "p1"}})

	page, err := svc.List(context.Background(), &dto.ListProductsRequest{Page: math.MaxInt, Limit: constants.MaxLimit})
	require.NoError(t, err)

	assert.Empty(t, page.Products)
	assert.Equal(t, constants.MaxPage, page.Page)
	assert.Positive(t, repo.filters[len(repo.filters)-1].Offset)
}

func TestProductService_ByCategory(t *testing.T) {
	svc, repo := newProductFixture()
	for i := 0; i < 20; i++ {
		repo.products = append(repo.products, model.Product{
			Base:       model.Base{ID: fmt.Sprintf("p%02d", i)},
			Categories: []model.Category{category("c1", "Fruits")},
		})
	}
	repo.products = append(repo.products, model.Product{Base: model.Base{ID: "other"}})

	_, err := svc.ByCategory(context.Background(), "")
	assert.Equal(t, "Provide category id", apperrors.GetErrorMessage(err))

	products, err := svc.ByCategory(context.Background(), "c1")
	require.NoError(t, err)
	assert.Len(t, products, constants.ProductsByCategoryLimit)

	_, err = svc.ByCategoryAndSubCategory(context.Background(), &dto.ProductsByCategoryAndSubCategoryRequest{CategoryID: "c1"})
	assert.Equal(t, "Provide categoryId and subCategoryId", apperrors.GetErrorMessage(err))

	page, err := svc.ByCategoryAndSubCategory(context.Background(), &dto.ProductsByCategoryAndSubCategoryRequest{CategoryID: "c1", SubCategoryID: "s1", Page: 1, Limit: 5})
	require.NoError(t, err)
	assert.Len(t, page.Products, 5)
	assert.Equal(t, int64(20), page.TotalCount)
}

func TestProductService_DetailsUpdateDelete(t *testing.T) {
	svc, _ := newProductFixture()
	ctx := context.Background()
	product, err := svc.Create(ctx, validProduct())
	require.NoError(t, err)

	_, err = svc.GetDetails(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrProductNotFound)
	assert.Equal(t, http.StatusNotFound, apperrors.ToHTTPStatus(err))

	_, err = svc.Update(ctx, &dto.UpdateProductRequest{Name: strPtr("x")})
	assert.Equal(t, "Provide product _id", apperrors.GetErrorMessage(err))

	_, err = svc.Update(ctx, &dto.UpdateProductRequest{ID: product.ID, Category: []string{"ghost"}})
	assert.ErrorIs(t, err, apperrors.ErrInvalidReference)

	updated, err := svc.Update(ctx, &dto.UpdateProductRequest{ID: product.ID, Price: floatPtr(99), Category: []string{"c2"}})
	require.NoError(t, err)
	assert.Equal(t, 99.0, updated.Price)
	assert.Equal(t, "Gala", updated.Name)
	require.Len(t, updated.Categories, 1)
	assert.Equal(t, "c2", updated.Categories[0].ID)

	assert.Equal(t, "Provide _id", apperrors.GetErrorMessage(svc.Delete(ctx, "")))
	require.NoError(t, svc.Delete(ctx, product.ID))
	_, err = svc.GetDetails(ctx, product.ID)
	assert.ErrorIs(t, err, apperrors.ErrProductNotFound)
}

func TestAddressService(t *testing.T) {
	users := newFakeUserRepo()
	owner := &model.User{Name: "Asha", Email: "asha@example.com"}
	require.NoError(t, users.Create(context.Background(), owner))
	svc := NewAddressService(&fakeAddressRepo{users: users})
	ctx := context.Background()

	address, err := svc.Create(ctx, owner.ID, &dto.CreateAddressRequest{AddressLine: "1 Main St", City: "Pune", Country: "IN"})
	require.NoError(t, err)
	assert.True(t, address.Status)

	stored, err := users.GetByID(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{address.ID}, []string(stored.AddressDetails))

	updated, err := svc.Update(ctx, owner.ID, &dto.UpdateAddressRequest{ID: address.ID, City: strPtr("Mumbai")})
	require.NoError(t, err)
	assert.Equal(t, "Mumbai", updated.City)
	assert.Equal(t, "1 Main St", updated.AddressLine)

	require.NoError(t, svc.Disable(ctx, owner.ID, address.ID))

	disabled, err := svc.Get(ctx, owner.ID, address.ID)
	require.NoError(t, err)
	assert.False(t, disabled.Status)

	list, err := svc.List(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = svc.Get(ctx, "someone-else", address.ID)
	assert.ErrorIs(t, err, apperrors.ErrAddressNotFound)

	err = svc.Disable(ctx, owner.ID, "")
	assert.Equal(t, http.StatusBadRequest, apperrors.ToHTTPStatus(err))

	_, err = svc.Create(ctx, "ghost", &dto.CreateAddressRequest{City: "Pune"})
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
