package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"catalog/internal/models"
	"catalog/internal/services"
	"catalog/pkg/logging"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

// RegisterRoutes registers the product routes with the Fiber router.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleGetProducts godoc
// @Summary  List products
// @Tags     products
// @Produce  json
// @Success  200  {array}   models.Product
// @Failure  500  {object}  ErrorResponse
// @Router   /products [get]
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts(c.UserContext())
	if err != nil {
		logging.FromContext(c.UserContext()).Error("list products", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: "Could not retrieve products",
		})
	}
	return c.JSON(products)
}

// HandleGetProductByID godoc
// @Summary  Get a product
// @Tags     products
// @Produce  json
// @Param    id   path      string  true  "Product ID"
// @Success  200  {object}  models.Product
// @Failure  404  {object}  ErrorResponse
// @Router   /products/{id} [get]
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	productID := c.Params("id")
	if !isProductID(productID) {
		return notFound(c, productID)
	}

	product, err := h.service.GetProductByID(c.UserContext(), productID)
	if err != nil {
		return h.writeError(c, "get product", productID, err)
	}
	return c.JSON(product)
}

// HandleCreateProduct godoc
// @Summary  Create a product
// @Tags     products
// @Accept   json
// @Produce  json
// @Param    product  body      models.CreateProductInput  true  "New product"
// @Success  201      {object}  models.Product
// @Header   201      {string}  Location  "/api/products/{id}"
// @Failure  400      {object}  ErrorResponse
// @Router   /products [post]
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var input models.CreateProductInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c, err)
	}
	if err := requireNumericPrice(c.Body()); err != nil {
		return invalidBody(c, err)
	}

	product, err := h.service.CreateProduct(c.UserContext(), input)
	if err != nil {
		return h.writeError(c, "create product", "", err)
	}

	c.Location(strings.TrimSuffix(c.Path(), "/") + "/" + product.ID)
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct godoc
// @Summary  Partially update a product
// @Tags     products
// @Accept   json
// @Produce  json
// @Param    id       path      string                     true  "Product ID"
// @Param    product  body      models.UpdateProductInput  true  "Fields to change"
// @Success  200      {object}  models.Product
// @Failure  400      {object}  ErrorResponse
// @Failure  404      {object}  ErrorResponse
// @Router   /products/{id} [put]
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	productID := c.Params("id")
	if !isProductID(productID) {
		return notFound(c, productID)
	}

	var input models.UpdateProductInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c, err)
	}
	if err := requireNumericPrice(c.Body()); err != nil {
		return invalidBody(c, err)
	}

	product, err := h.service.UpdateProduct(c.UserContext(), productID, input)
	if err != nil {
		return h.writeError(c, "update product", productID, err)
	}
	return c.JSON(product)
}

// HandleDeleteProduct godoc
// @Summary  Delete a product
// @Tags     products
// @Param    id   path  string  true  "Product ID"
// @Success  200
// @Failure  404  {object}  ErrorResponse
// @Router   /products/{id} [delete]
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	productID := c.Params("id")
	if !isProductID(productID) {
		return notFound(c, productID)
	}

	if err := h.service.DeleteProduct(c.UserContext(), productID); err != nil {
		return h.writeError(c, "delete product", productID, err)
	}
	c.Status(fiber.StatusOK)
	return nil
}

// writeError maps service errors onto HTTP statuses.
func (h *ProductHandler) writeError(c *fiber.Ctx, op, productID string, err error) error {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "Validation failed",
			Errors:  validationErr.Fields,
		})
	case errors.Is(err, services.ErrProductNotFound):
		return notFound(c, productID)
	default:
		logging.FromContext(c.UserContext()).Error(op, "product_id", productID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: fmt.Sprintf("Could not %s", op),
		})
	}
}

// isProductID rejects ids that cannot name a stored product.
func isProductID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func notFound(c *fiber.Ctx, productID string) error {
	return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
		Message: fmt.Sprintf("Product with ID %s not found", productID),
	})
}

func invalidBody(c *fiber.Ctx, err error) error {
	logging.FromContext(c.UserContext()).Debug("parse request body", "error", err)
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Message: "Invalid request body",
		Error:   err.Error(),
	})
}

var errPriceNotNumber = errors.New("price must be a JSON number")

// requireNumericPrice rejects a quoted price, which the decimal decoder would
// otherwise accept.
func requireNumericPrice(body []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return err
	}
	for key, raw := range fields {
		if strings.EqualFold(key, "price") && bytes.HasPrefix(bytes.TrimSpace(raw), []byte(`"`)) {
			return errPriceNotNumber
		}
	}
	return nil
}
