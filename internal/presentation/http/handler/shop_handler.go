package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sangkips/shopdash-api/internal/application/service"
	"github.com/sangkips/shopdash-api/internal/presentation/http/dto/response"
)

// ShopHandler handles the connected sellers
type ShopHandler struct {
	shopService *service.ShopService
}

// NewShopHandler creates a new shop handler
func NewShopHandler(shopService *service.ShopService) *ShopHandler {
	return &ShopHandler{shopService: shopService}
}

// List handles listing the shops of every connected seller
func (h *ShopHandler) List(c *gin.Context) {
	shops, err := h.shopService.ListShops(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Shops retrieved successfully", shops)
}

// LoginLink handles getting the link that connects a new seller
func (h *ShopHandler) LoginLink(c *gin.Context) {
	link, err := h.shopService.LoginLink(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login link retrieved successfully", gin.H{"url": link})
}

// Delete handles disconnecting a seller
func (h *ShopHandler) Delete(c *gin.Context) {
	userID, err := int64Param(c, "user_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.shopService.DisconnectUser(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Seller disconnected successfully", nil)
}
