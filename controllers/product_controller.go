package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"shuno-backend/models"
	"shuno-backend/services"
	"shuno-backend/utils"
)

type ProductController struct {
	Products *services.ProductService
}

func NewProductController(products *services.ProductService) *ProductController {
	return &ProductController{Products: products}
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// GetProducts lists active properties (public catalogue).
func (pc *ProductController) GetProducts(c *gin.Context) {
	products, err := pc.Products.GetActive()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load products")
		return
	}
	utils.JSONList(c, http.StatusOK, products, len(products))
}

// GetAdminProducts lists every property including deactivated ones.
func (pc *ProductController) GetAdminProducts(c *gin.Context) {
	products, err := pc.Products.GetAll()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load products")
		return
	}
	utils.JSONList(c, http.StatusOK, products, len(products))
}

func (pc *ProductController) GetProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	product, err := pc.Products.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "product not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to load product")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, product)
}

func (pc *ProductController) GetByLocation(c *gin.Context) {
	products, err := pc.Products.GetByLocation(c.Param("location"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load products")
		return
	}
	utils.JSONList(c, http.StatusOK, products, len(products))
}

func (pc *ProductController) CreateProduct(c *gin.Context) {
	var product models.Property
	if err := c.ShouldBindJSON(&product); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := pc.Products.Create(&product); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create product")
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, product)
}

func (pc *ProductController) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var update models.Property
	if err := c.ShouldBindJSON(&update); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	product, err := pc.Products.Update(id, &update)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "product not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to update product")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, product)
}

// DeleteProduct deactivates a property (soft delete).
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := pc.Products.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "product not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete product")
		return
	}
	utils.JSONMessage(c, http.StatusOK, "product deactivated")
}
