package catalogsvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CatalogResolver gom CategoryService và BrandService thành một resolver duy nhất
// cho engine tìm kiếm (thỏa search.CatalogResolver)
type CatalogResolver struct {
	categories *CategoryService
	brands     *BrandService
}

// NewCatalogResolver tạo resolver từ hai service danh mục và thương hiệu
func NewCatalogResolver() (*CatalogResolver, error) {
	categories, err := NewCategoryService()
	if err != nil {
		return nil, fmt.Errorf("failed to create category service: %v", err)
	}
	brands, err := NewBrandService()
	if err != nil {
		return nil, fmt.Errorf("failed to create brand service: %v", err)
	}
	return &CatalogResolver{categories: categories, brands: brands}, nil
}

// ResolveCategory đổi tên danh mục tự do thành ID trong catalog
func (r *CatalogResolver) ResolveCategory(ctx context.Context, title string) (*primitive.ObjectID, error) {
	return r.categories.ResolveTitle(ctx, title)
}

// ResolveBrand đổi tên thương hiệu tự do thành ID trong catalog
func (r *CatalogResolver) ResolveBrand(ctx context.Context, title string) (*primitive.ObjectID, error) {
	return r.brands.ResolveTitle(ctx, title)
}
