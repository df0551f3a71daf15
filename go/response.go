package storefrontserver

import (
	"github.com/gin-gonic/gin"

	"github.com/Apurer/go-gin-storefront/internal/shared/pagination"
)

// envelope wraps every successful JSON body.
type envelope struct {
	Data       any              `json:"data,omitempty"`
	Message    string           `json:"message,omitempty"`
	Pagination *pagination.Meta `json:"pagination,omitempty"`
}

func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, envelope{Data: data})
}

func respondMessage(c *gin.Context, status int, message string, data any) {
	c.JSON(status, envelope{Data: data, Message: message})
}

func respondPage(c *gin.Context, status int, data any, meta pagination.Meta) {
	c.JSON(status, envelope{Data: data, Pagination: &meta})
}
