package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/znsio/specmatic-catalog-admin-go/internal/middleware"
	"github.com/znsio/specmatic-catalog-admin-go/internal/models"
	"github.com/znsio/specmatic-catalog-admin-go/internal/services"
	"github.com/znsio/specmatic-catalog-admin-go/pkg/utils"
)

type ProductController struct {
	ListView *services.ListView
	// NewForm returns a fresh create form per request.
	NewForm func() *services.CreateForm
	Inbox   *services.Inbox
}

type toggleRequest struct {
	Value *bool `json:"value" binding:"required"`
}

func DeletePrompt(p models.Product) string {
	return fmt.Sprintf("Are you sure you want to delete %s?", p.Name)
}

func (pc *ProductController) ListProducts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"products": pc.ListView.Products(),
	})
}

func (pc *ProductController) Reload(c *gin.Context) {
	if err := pc.ListView.Load(c.Request.Context()); err != nil {
		utils.ServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": pc.ListView.Products(),
	})
}

func (pc *ProductController) CreateProduct(c *gin.Context) {
	var newProduct models.NewProduct

	// Bind JSON only; the form owns validation.
	if err := c.ShouldBindJSON(&newProduct); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	form := pc.NewForm()
	form.Set(newProduct)

	product, err := form.Submit(c.Request.Context())
	if err != nil {
		utils.ServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":         product.ID,
		"product":    product,
		"message":    "Product added successfully!",
		"navigateTo": services.RouteProductList,
	})
}

func (pc *ProductController) ToggleFlag(c *gin.Context) {
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "value must be true or false")
		return
	}

	// set by RequireFlagKey
	key := c.MustGet(middleware.FlagKeyContextKey).(models.FlagKey)
	id := c.Param("id")

	if err := pc.ListView.Toggle(c.Request.Context(), id, key, *req.Value); err != nil {
		utils.ServiceError(c, err)
		return
	}

	product, _ := pc.ListView.Find(id)
	c.JSON(http.StatusOK, gin.H{
		"product": product,
		"message": fmt.Sprintf("%s updated successfully.", key),
	})
}

func (pc *ProductController) OpenEdit(c *gin.Context) {
	fields, err := pc.ListView.OpenEdit(c.Param("id"))
	if err != nil {
		utils.ServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, fields)
}

func (pc *ProductController) SaveEdit(c *gin.Context) {
	var patch models.ProductPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	id := c.Param("id")
	if err := pc.ListView.SaveEdit(c.Request.Context(), id, patch); err != nil {
		utils.ServiceError(c, err)
		return
	}

	product, _ := pc.ListView.Find(id)
	c.JSON(http.StatusOK, gin.H{
		"product": product,
		"message": "Product updated successfully",
	})
}

func (pc *ProductController) RequestDelete(c *gin.Context) {
	product, err := pc.ListView.SelectForDelete(c.Param("id"))
	if err != nil {
		utils.ServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": product,
		"prompt":  DeletePrompt(product),
	})
}

func (pc *ProductController) ConfirmDelete(c *gin.Context) {
	product, err := pc.ListView.ConfirmDelete(c.Request.Context())
	if err != nil {
		utils.ServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":      product.ID,
		"message": "Product deleted successfully",
	})
}

func (pc *ProductController) CancelDelete(c *gin.Context) {
	pc.ListView.CancelDelete()
	c.Status(http.StatusNoContent)
}

func (pc *ProductController) Notifications(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"notifications": pc.Inbox.Recent(),
	})
}
