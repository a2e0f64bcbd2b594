package service

import (
	"context"
	"testing"

	"github.com/RowdyKGZ/python12-shop/internal/domain/model"
	"github.com/RowdyKGZ/python12-shop/internal/infra/repository/db"
	"github.com/RowdyKGZ/python12-shop/pkg/apperr"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestCreateProductPermissions(t *testing.T) {
	svc := NewProductService(newFakeProductRepo())
	ctx := context.Background()

	product := &model.Product{Title: "Keyboard", Price: decimal.RequireFromString("49.90")}

	err := svc.CreateProduct(ctx, anonymous, product)
	requireAppErrCode(t, err, apperr.UnauthenticatedCode)

	err = svc.CreateProduct(ctx, member, product)
	requireAppErrCode(t, err, apperr.UnauthorizedCode)

	err = svc.CreateProduct(ctx, admin, product)
	require.NoError(t, err)
	require.NotZero(t, product.ProductID)
}

func TestCreateProductValidation(t *testing.T) {
	svc := NewProductService(newFakeProductRepo())
	ctx := context.Background()

	err := svc.CreateProduct(ctx, admin, &model.Product{Title: "", Price: decimal.NewFromInt(1)})
	requireAppErrCode(t, err, apperr.InvalidArgumentCode)

	err = svc.CreateProduct(ctx, admin, &model.Product{Title: "X", Price: decimal.RequireFromString("-0.01")})
	requireAppErrCode(t, err, apperr.InvalidArgumentCode)

	// 免費商品允許
	err = svc.CreateProduct(ctx, admin, &model.Product{Title: "Free", Price: decimal.Zero})
	require.NoError(t, err)
}

func TestUpdateProductPermissionsAndPatch(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewProductService(repo)
	ctx := context.Background()

	product := createProduct(t, repo, "Mouse", "19.90")

	_, err := svc.UpdateProduct(ctx, member, product.ProductID, ProductPatch{})
	requireAppErrCode(t, err, apperr.UnauthorizedCode)

	newTitle := "Gaming Mouse"
	newPrice := decimal.RequireFromString("29.90")
	updated, err := svc.UpdateProduct(ctx, admin, product.ProductID, ProductPatch{
		Title: &newTitle,
		Price: &newPrice,
	})
	require.NoError(t, err)
	require.Equal(t, "Gaming Mouse", updated.Title)
	require.True(t, newPrice.Equal(updated.Price))

	_, err = svc.UpdateProduct(ctx, admin, 999, ProductPatch{})
	requireAppErrCode(t, err, apperr.NotFoundCode)
}

func TestDeleteProductRestrictedByOrderItems(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewProductService(repo)
	ctx := context.Background()

	referenced := createProduct(t, repo, "Referenced", "10.00")
	free := createProduct(t, repo, "Unreferenced", "10.00")

	repo.refs = func(productID uint) int64 {
		if productID == referenced.ProductID {
			return 2
		}
		return 0
	}

	err := svc.DeleteProduct(ctx, admin, referenced.ProductID)
	requireAppErrCode(t, err, apperr.ConflictCode)

	require.NoError(t, svc.DeleteProduct(ctx, admin, free.ProductID))

	err = svc.DeleteProduct(ctx, member, referenced.ProductID)
	requireAppErrCode(t, err, apperr.UnauthorizedCode)
}

func TestListProductsPriceRange(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewProductService(repo)
	ctx := context.Background()

	createProduct(t, repo, "Cheap", "5")
	mid := createProduct(t, repo, "Mid", "15")
	createProduct(t, repo, "Expensive", "25")

	from := decimal.RequireFromString("10")
	to := decimal.RequireFromString("20")
	products, total, err := svc.ListProducts(ctx, db.ProductFilter{PriceFrom: &from, PriceTo: &to})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, products, 1)
	require.Equal(t, mid.ProductID, products[0].ProductID)

	// 邊界為閉區間
	edge := decimal.RequireFromString("15")
	products, _, err = svc.ListProducts(ctx, db.ProductFilter{PriceFrom: &edge, PriceTo: &edge})
	require.NoError(t, err)
	require.Len(t, products, 1)

	// from > to 直接拒絕
	_, _, err = svc.ListProducts(ctx, db.ProductFilter{PriceFrom: &to, PriceTo: &from})
	requireAppErrCode(t, err, apperr.InvalidArgumentCode)
}

func TestGetProductNotFound(t *testing.T) {
	svc := NewProductService(newFakeProductRepo())
	_, err := svc.GetProduct(context.Background(), 404)
	requireAppErrCode(t, err, apperr.NotFoundCode)
}
