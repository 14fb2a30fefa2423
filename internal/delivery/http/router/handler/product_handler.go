package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/response"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"
)

// ProductHandler holds dependencies for catalogue and favourites handlers.
type ProductHandler struct {
	uc usecase.ProductUsecase
}

// NewProductHandler is the constructor for ProductHandler, injected by Fx.
func NewProductHandler(uc usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

type createProductRequest struct {
	Name         string `json:"name" validate:"required"`
	Description  string `json:"description"`
	SKU          string `json:"sku" validate:"required"`
	Category     string `json:"category"`
	AvailableQty int64  `json:"availableQty" validate:"gte=0"`
	Price        string `json:"price" validate:"required"`
	ImageOne     string `json:"imageOne"`
	ImageTwo     string `json:"imageTwo"`
	ImageThree   string `json:"imageThree"`
	ImageFour    string `json:"imageFour"`
}

type updateProductRequest struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	Category     *string `json:"category"`
	AvailableQty *int64  `json:"availableQty"`
	Price        *string `json:"price"`
	ImageOne     *string `json:"imageOne"`
	ImageTwo     *string `json:"imageTwo"`
	ImageThree   *string `json:"imageThree"`
	ImageFour    *string `json:"imageFour"`
}

type productView struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	SKU          string    `json:"sku"`
	Category     string    `json:"category,omitempty"`
	AvailableQty int64     `json:"availableQty"`
	Price        string    `json:"price"`
	ImageOne     string    `json:"imageOne,omitempty"`
	ImageTwo     string    `json:"imageTwo,omitempty"`
	ImageThree   string    `json:"imageThree,omitempty"`
	ImageFour    string    `json:"imageFour,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

func toProductView(product *entity.Product) *productView {
	if product == nil {
		return nil
	}

	return &productView{
		ID:           product.ID,
		Name:         product.Name,
		Description:  product.Description,
		SKU:          product.SKU,
		Category:     product.Category,
		AvailableQty: product.AvailableQty,
		Price:        product.Price,
		ImageOne:     product.ImageOne,
		ImageTwo:     product.ImageTwo,
		ImageThree:   product.ImageThree,
		ImageFour:    product.ImageFour,
		CreatedAt:    product.CreatedAt,
	}
}

func toProductViews(products []*entity.Product) []*productView {
	views := make([]*productView, 0, len(products))
	for _, product := range products {
		views = append(views, toProductView(product))
	}

	return views
}

// ListProducts returns the catalogue, optionally filtered by ?category=.
func (h *ProductHandler) ListProducts(c echo.Context) error {
	products, err := h.uc.ListProducts(c.Request().Context(), c.QueryParam("category"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProductViews(products), "Products retrieved successfully")
}

// GetProduct returns a single catalogue item.
func (h *ProductHandler) GetProduct(c echo.Context) error {
	productID, err := parseIDParam(c, "productID")
	if err != nil {
		return err
	}

	product, err := h.uc.GetProduct(c.Request().Context(), productID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProductView(product), "Product retrieved successfully")
}

// CreateProduct adds a catalogue item. Admin only, enforced by the router.
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	product, err := h.uc.CreateProduct(c.Request().Context(), usecase.CreateProductInput{
		Name:         req.Name,
		Description:  req.Description,
		SKU:          req.SKU,
		Category:     req.Category,
		AvailableQty: req.AvailableQty,
		Price:        req.Price,
		ImageOne:     req.ImageOne,
		ImageTwo:     req.ImageTwo,
		ImageThree:   req.ImageThree,
		ImageFour:    req.ImageFour,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toProductView(product), "Product created successfully")
}

// UpdateProduct applies a partial catalogue update. Admin only.
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	productID, err := parseIDParam(c, "productID")
	if err != nil {
		return err
	}

	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}

	product, err := h.uc.UpdateProduct(c.Request().Context(), productID, usecase.UpdateProductInput{
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		AvailableQty: req.AvailableQty,
		Price:        req.Price,
		ImageOne:     req.ImageOne,
		ImageTwo:     req.ImageTwo,
		ImageThree:   req.ImageThree,
		ImageFour:    req.ImageFour,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProductView(product), "Product updated successfully")
}

// DeleteProduct removes a catalogue item. Admin only.
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	productID, err := parseIDParam(c, "productID")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteProduct(c.Request().Context(), productID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Product deleted successfully")
}

// AddFavourite saves a product to the caller's favourites.
func (h *ProductHandler) AddFavourite(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return errors.WithStack(domainerrors.ErrTokenMissing)
	}

	productID, err := parseIDParam(c, "productID")
	if err != nil {
		return err
	}

	if err := h.uc.AddFavourite(c.Request().Context(), userID, productID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, nil, "Product added to favourites")
}

// ListFavourites returns the caller's favourited products.
func (h *ProductHandler) ListFavourites(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return errors.WithStack(domainerrors.ErrTokenMissing)
	}

	products, err := h.uc.ListFavourites(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProductViews(products), "Favourites retrieved successfully")
}

// RemoveFavourite removes a product from the caller's favourites.
func (h *ProductHandler) RemoveFavourite(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return errors.WithStack(domainerrors.ErrTokenMissing)
	}

	productID, err := parseIDParam(c, "productID")
	if err != nil {
		return err
	}

	if err := h.uc.RemoveFavourite(c.Request().Context(), userID, productID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Product removed from favourites")
}

// parseIDParam reads a UUID path parameter.
func parseIDParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, domainerrors.ErrValidationFailed.WithDetails(map[string]string{name: "must be a UUID"})
	}

	return id, nil
}
