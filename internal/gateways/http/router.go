package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-openapi/strfmt"
	"github.com/shopspring/decimal"

	"unirenta/internal/entity"
	"unirenta/internal/entity/generated"
	"unirenta/internal/usecase"
)

type serviceResponse struct {
	ID     int64           `json:"id"`
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
	IsBase bool            `json:"is_base"`
}

func setupRouter(r *gin.Engine, u UseCases) {
	r.HandleMethodNotAllowed = true

	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	{
		v1 := r.Group("api/v1/")
		setupServices(v1, u)
		setupAssignmentServices(v1, u)
		setupAssignmentBilling(v1, u)
	}
}

func setupServices(r *gin.RouterGroup, u UseCases) {
	r.GET("/services", func(c *gin.Context) {
		if !requireAcceptJSON(c) {
			return
		}
		onlyAddons := strings.EqualFold(c.Query("only_addons"), "true")

		svcs, err := u.Catalog.Available(c, onlyAddons)
		if err != nil {
			writeDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, toServiceResponses(svcs))
	})

	r.GET("/services/base", func(c *gin.Context) {
		if !requireAcceptJSON(c) {
			return
		}
		svcs, err := u.Catalog.Base(c)
		if err != nil {
			writeDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, toServiceResponses(svcs))
	})

	r.OPTIONS("/services", func(c *gin.Context) {
		c.Writer.Header().Set("Allow", "GET,OPTIONS")
		c.Status(http.StatusNoContent)
	})
}

func setupAssignmentServices(r *gin.RouterGroup, u UseCases) {
	r.GET("/assignments/:id/services", func(c *gin.Context) {
		if !requireAcceptJSON(c) {
			return
		}
		id, ok := paramID(c, "id")
		if !ok {
			return
		}

		links, err := u.Pricing.ListLinks(c, id)
		if err != nil {
			writeDomainError(c, err)
			return
		}

		resp := make([]*generated.ServiceLinkItem, 0, len(links))
		for _, l := range links {
			resp = append(resp, toLinkItem(l))
		}
		c.JSON(http.StatusOK, resp)
	})

	r.POST("/assignments/:id/services", func(c *gin.Context) {
		if !requireAcceptJSON(c) {
			return
		}
		if c.ContentType() != "" && c.ContentType() != "application/json" {
			c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "Use application/json"})
			return
		}
		id, ok := paramID(c, "id")
		if !ok {
			return
		}

		var input *generated.AddServiceInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := input.Validate(strfmt.Default); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}

		breakdown, err := u.Sub.AddService(c, id, *input.ServiceID)
		if err != nil {
			writeDomainError(c, err)
			return
		}
		c.JSON(http.StatusCreated, breakdown)
	})

	r.DELETE("/assignments/:id/services/:serviceID", func(c *gin.Context) {
		if !requireAcceptJSON(c) {
			return
		}
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		serviceID, ok := paramID(c, "serviceID")
		if !ok {
			return
		}

		breakdown, err := u.Sub.RemoveService(c, id, serviceID)
		if err != nil {
			writeDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, breakdown)
	})

	r.OPTIONS("/assignments/:id/services", func(c *gin.Context) {
		c.Writer.Header().Set("Allow", "POST,OPTIONS,GET")
		c.Status(http.StatusNoContent)
	})
}

func setupAssignmentBilling(r *gin.RouterGroup, u UseCases) {
	r.GET("/assignments/:id/price", func(c *gin.Context) {
		if !requireAcceptJSON(c) {
			return
		}
		id, ok := paramID(c, "id")
		if !ok {
			return
		}

		breakdown, err := u.Pricing.CurrentBreakdown(c, id)
		if err != nil {
			writeDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, breakdown)
	})

	r.GET("/assignments/:id/preinvoice", func(c *gin.Context) {
		if !requireAcceptJSON(c) {
			return
		}
		id, ok := paramID(c, "id")
		if !ok {
			return
		}

		inv, err := u.Sub.Preinvoice(c, id)
		if err != nil {
			writeDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, inv)
	})

	r.POST("/assignments/:id/preinvoice", func(c *gin.Context) {
		if !requireAcceptJSON(c) {
			return
		}
		id, ok := paramID(c, "id")
		if !ok {
			return
		}

		inv, err := u.Sub.SendPreinvoice(c, id)
		if err != nil {
			writeDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, inv)
	})

	r.OPTIONS("/assignments/:id/preinvoice", func(c *gin.Context) {
		c.Writer.Header().Set("Allow", "POST,OPTIONS,GET")
		c.Status(http.StatusNoContent)
	})
}

func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// writeDomainError maps the engine's domain errors to transport status codes:
// absent things 404, duplicate adds and disallowed transitions 409, rejected
// operations 400, boundary validation 422.
func writeDomainError(c *gin.Context, err error) {
	var status int
	switch {
	case errors.Is(err, usecase.ErrInvalidID):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid id"})
		return
	case errors.Is(err, usecase.ErrAssignmentNotFound),
		errors.Is(err, usecase.ErrServiceNotFound),
		errors.Is(err, usecase.ErrLinkNotFound):
		status = http.StatusNotFound
	case errors.Is(err, usecase.ErrAlreadyActive),
		errors.Is(err, usecase.ErrAlreadyPending),
		errors.Is(err, usecase.ErrInvalidTransition):
		status = http.StatusConflict
	case errors.Is(err, usecase.ErrBaseServiceImmutable),
		errors.Is(err, usecase.ErrNotOffered),
		errors.Is(err, usecase.ErrTenantNoEmail):
		status = http.StatusBadRequest
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	var de *usecase.Error
	if errors.As(err, &de) {
		c.JSON(status, gin.H{"error": de.Error(), "code": de.Kind})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func toServiceResponses(svcs []*entity.Service) []serviceResponse {
	out := make([]serviceResponse, 0, len(svcs))
	for _, s := range svcs {
		out = append(out, serviceResponse{
			ID:     s.ID,
			Name:   s.Name,
			Price:  s.Price,
			IsBase: s.IsBase,
		})
	}
	return out
}

func toLinkItem(l *entity.ServiceLink) *generated.ServiceLinkItem {
	item := &generated.ServiceLinkItem{
		ID:        l.ID,
		ServiceID: l.ServiceID,
		State:     string(l.State),
		AddedAt:   strfmt.DateTime(l.AddedAt),
	}
	if l.PriceSnapshot != nil {
		item.PriceSnapshot = l.PriceSnapshot.StringFixed(2)
	}
	if l.EffectiveFrom != nil {
		dt := strfmt.DateTime(*l.EffectiveFrom)
		item.EffectiveFrom = &dt
	}
	if l.EffectiveUntil != nil {
		dt := strfmt.DateTime(*l.EffectiveUntil)
		item.EffectiveUntil = &dt
	}
	return item
}

func acceptsJSON(h string) bool {
	if h == "" || h == "*/*" {
		return true
	}
	parts := strings.Split(h, ",")
	for _, p := range parts {
		mt := strings.TrimSpace(strings.SplitN(p, ";", 2)[0])
		if mt == "application/json" || mt == "*/*" {
			return true
		}
	}
	return false
}

func requireAcceptJSON(c *gin.Context) bool {
	if acceptsJSON(c.GetHeader("Accept")) {
		return true
	}
	c.JSON(http.StatusNotAcceptable, gin.H{"error": "Accept application/json only"})
	return false
}
