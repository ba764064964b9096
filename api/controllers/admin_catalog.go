package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/soft99/storefront-backend/api/responses"
	"github.com/soft99/storefront-backend/api/validators"
	"github.com/soft99/storefront-backend/internal/catalog"
	"github.com/soft99/storefront-backend/pkg/enums"
	"github.com/soft99/storefront-backend/pkg/logger"
	"github.com/soft99/storefront-backend/pkg/models"
)

type createProductRequest struct {
	SKU              string              `json:"sku" validate:"max=64"`
	NameAr           string              `json:"name_ar" validate:"required,min=3,max=200"`
	NameEn           string              `json:"name_en" validate:"max=200"`
	CategoryID       string              `json:"category_id" validate:"required"`
	BrandID          string              `json:"brand_id"`
	Type             enums.ProductType   `json:"type" validate:"required,oneof=bike part gear"`
	Price            float64             `json:"price" validate:"gte=0,lte=1000000"`
	Currency         string              `json:"currency" validate:"omitempty,len=3"`
	IsNew            bool                `json:"is_new"`
	IsFeatured       bool                `json:"is_featured"`
	IsAvailable      *bool               `json:"is_available"`
	StockStatus      enums.StockStatus   `json:"stock_status" validate:"omitempty,oneof=available unavailable"`
	StockQuantity    int                 `json:"stock_quantity" validate:"gte=0"`
	Status           enums.ProductStatus `json:"status" validate:"omitempty,oneof=published hidden draft"`
	Specifications   map[string]string   `json:"specifications"`
	Description      string              `json:"description" validate:"required,min=10,max=5000"`
	ShortDescription string              `json:"short_description" validate:"max=500"`
	Images           []string            `json:"images" validate:"omitempty,dive,url"`
	ImageURL         string              `json:"image_url" validate:"omitempty,url"`
	RemoteImageURL   string              `json:"remoteImageUrl" validate:"omitempty,url"`
	SallaURL         string              `json:"salla_url" validate:"omitempty,url"`
}

func (r createProductRequest) toModel() models.Product {
	available := true
	if r.IsAvailable != nil {
		available = *r.IsAvailable
	}
	return models.Product{
		SKU:              validators.SanitizeString(r.SKU, 64),
		NameAr:           validators.SanitizeString(r.NameAr, 200),
		NameEn:           validators.SanitizeString(r.NameEn, 200),
		CategoryID:       r.CategoryID,
		BrandID:          r.BrandID,
		Type:             r.Type,
		Price:            r.Price,
		Currency:         r.Currency,
		IsNew:            r.IsNew,
		IsFeatured:       r.IsFeatured,
		IsAvailable:      available,
		StockStatus:      r.StockStatus,
		StockQuantity:    r.StockQuantity,
		Status:           r.Status,
		Specifications:   r.Specifications,
		Description:      validators.SanitizeString(r.Description, 5000),
		ShortDescription: validators.SanitizeString(r.ShortDescription, 500),
		Images:           r.Images,
		ImageURL:         r.ImageURL,
		RemoteImageURL:   r.RemoteImageURL,
		SallaURL:         r.SallaURL,
	}
}

type createCategoryRequest struct {
	NameAr      string            `json:"name_ar" validate:"required,min=2,max=100"`
	NameEn      string            `json:"name_en" validate:"max=100"`
	Type        enums.ProductType `json:"type" validate:"omitempty,oneof=bike part gear"`
	Icon        string            `json:"icon" validate:"max=64"`
	Description string            `json:"description" validate:"max=1000"`
}

func (r createCategoryRequest) toModel() models.Category {
	return models.Category{
		NameAr:      validators.SanitizeString(r.NameAr, 100),
		NameEn:      validators.SanitizeString(r.NameEn, 100),
		Type:        r.Type,
		Icon:        r.Icon,
		Description: validators.SanitizeString(r.Description, 1000),
	}
}

type createBrandRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	NameAr      string `json:"name_ar" validate:"max=100"`
	NameEn      string `json:"name_en" validate:"max=100"`
	LogoURL     string `json:"logo_url" validate:"omitempty,url"`
	Description string `json:"description" validate:"max=1000"`
}

func (r createBrandRequest) toModel() models.Brand {
	return models.Brand{
		Name:        validators.SanitizeString(r.Name, 100),
		NameAr:      validators.SanitizeString(r.NameAr, 100),
		NameEn:      validators.SanitizeString(r.NameEn, 100),
		LogoURL:     r.LogoURL,
		Description: validators.SanitizeString(r.Description, 1000),
	}
}

// AdminProvider reports which data provider is serving requests.
func AdminProvider(svc catalog.AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"provider": svc.ProviderName()})
	}
}

func AdminListProducts(svc catalog.AdminService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, err := parseBrowseInput(r, true)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		page, err := svc.Products(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

func AdminGetProduct(svc catalog.AdminService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		product, err := svc.Product(r.Context(), chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func AdminCreateProduct(svc catalog.AdminService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		created, err := svc.CreateProduct(r.Context(), payload.toModel())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func AdminUpdateProduct(svc catalog.AdminService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var patch models.ProductPatch
		if err := validators.DecodeJSONBody(r, &patch); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		updated, err := svc.UpdateProduct(r.Context(), chi.URLParam(r, "productId"), patch)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

func AdminDeleteProduct(svc catalog.AdminService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteProduct(r.Context(), chi.URLParam(r, "productId")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func AdminListCategories(svc catalog.AdminService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := svc.Categories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, categories)
	}
}

func AdminGetCategory(svc catalog.AdminService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category, err := svc.Category(r.Context(), chi.URLParam(r, "categoryId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, category)
	}
}

func AdminCreateCategory(svc catalog.AdminService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createCategoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		created, err := svc.CreateCategory(r.Context(), payload.toModel())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func AdminUpdateCategory(svc catalog.AdminService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var patch models.CategoryPatch
		if err := validators.DecodeJSONBody(r, &patch); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		updated, err := svc.UpdateCategory(r.Context(), chi.URLParam(r, "categoryId"), patch)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

func AdminDeleteCategory(svc catalog.AdminService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteCategory(r.Context(), chi.URLParam(r, "categoryId")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func AdminListBrands(svc catalog.AdminService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		brands, err := svc.Brands(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, brands)
	}
}

func AdminGetBrand(svc catalog.AdminService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		brand, err := svc.Brand(r.Context(), chi.URLParam(r, "brandId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, brand)
	}
}

func AdminCreateBrand(svc catalog.AdminService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createBrandRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		created, err := svc.CreateBrand(r.Context(), payload.toModel())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func AdminUpdateBrand(svc catalog.AdminService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var patch models.BrandPatch
		if err := validators.DecodeJSONBody(r, &patch); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		updated, err := svc.UpdateBrand(r.Context(), chi.URLParam(r, "brandId"), patch)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

func AdminDeleteBrand(svc catalog.AdminService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteBrand(r.Context(), chi.URLParam(r, "brandId")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
