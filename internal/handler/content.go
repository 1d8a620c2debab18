package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"lab-portal/internal/common"
	"lab-portal/internal/service"
	"lab-portal/internal/validation"
)

// contentRequest is a request body that converts into a stored document.
type contentRequest[T, R any] interface {
	*R
	ToModel() *T
	SetProduct(product string)
}

// ContentOptions names a content store in responses.
type ContentOptions struct {
	// Noun is used in messages, e.g. "Lab manual".
	Noun string
	// Collection is the list field returned for a product with no document.
	Collection string
	// Single returns the stored document itself from the by-product read.
	Single    bool
	Duplicate string
}

// ContentHandler serves one product-keyed document store.
type ContentHandler[T, R any, PR contentRequest[T, R]] struct {
	contentService service.ContentService[T]
	opts           ContentOptions
}

func NewContentHandler[T, R any, PR contentRequest[T, R]](contentService service.ContentService[T], opts ContentOptions) *ContentHandler[T, R, PR] {
	if opts.Duplicate == "" {
		opts.Duplicate = opts.Noun + " already exists for this product"
	}
	return &ContentHandler[T, R, PR]{
		contentService: contentService,
		opts:           opts,
	}
}

func (h *ContentHandler[T, R, PR]) List(c echo.Context) error {
	ctx := c.Request().Context()

	docs, err := h.contentService.List(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"count":   len(docs),
		"data":    docs,
	})
}

func (h *ContentHandler[T, R, PR]) ListByProduct(c echo.Context) error {
	ctx := c.Request().Context()
	product := c.Param("product")

	docs, err := h.contentService.ListByProduct(ctx, product)
	if err != nil {
		return err
	}

	if len(docs) == 0 {
		return c.JSON(http.StatusOK, echo.Map{
			"success": true,
			"count":   0,
			"data": echo.Map{
				"product":         product,
				h.opts.Collection: []any{},
			},
		})
	}

	var data any = docs
	if h.opts.Single {
		data = docs[0]
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"count":   len(docs),
		"data":    data,
	})
}

// Save creates the product's document or replaces the existing one.
func (h *ContentHandler[T, R, PR]) Save(c echo.Context) error {
	ctx := c.Request().Context()

	doc, err := h.bind(c)
	if err != nil {
		return err
	}

	created, err := h.contentService.Save(ctx, doc)
	if err != nil {
		return err
	}

	if created {
		return h.respond(c, http.StatusCreated, "created", doc)
	}
	return h.respond(c, http.StatusOK, "updated", doc)
}

func (h *ContentHandler[T, R, PR]) Create(c echo.Context) error {
	ctx := c.Request().Context()

	doc, err := h.bind(c)
	if err != nil {
		return err
	}

	if err := h.contentService.Create(ctx, doc); err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return echo.NewHTTPError(http.StatusConflict, h.opts.Duplicate).SetInternal(err)
		}
		return err
	}

	return h.respond(c, http.StatusCreated, "created", doc)
}

// UpdateByProduct replaces the document of the product named in the body,
// or in the route when present.
func (h *ContentHandler[T, R, PR]) UpdateByProduct(c echo.Context) error {
	ctx := c.Request().Context()

	doc, err := h.bind(c)
	if err != nil {
		return err
	}

	if err := h.contentService.UpdateByProduct(ctx, doc); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return h.notFound(err)
		}
		return err
	}

	return h.respond(c, http.StatusOK, "updated", doc)
}

func (h *ContentHandler[T, R, PR]) UpdateByID(c echo.Context) error {
	ctx := c.Request().Context()

	var req R
	if err := c.Bind(PR(&req)); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body").SetInternal(err)
	}
	// the product is taken from the stored document when omitted
	if err := validation.StructExcept(PR(&req), "Product"); err != nil {
		return err
	}

	doc := PR(&req).ToModel()
	if err := h.contentService.UpdateByID(ctx, c.Param("id"), doc); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, h.opts.Noun+" not found").SetInternal(err)
		}
		return err
	}

	return h.respond(c, http.StatusOK, "updated", doc)
}

func (h *ContentHandler[T, R, PR]) DeleteByProduct(c echo.Context) error {
	ctx := c.Request().Context()

	n, err := h.contentService.DeleteByProduct(ctx, c.Param("product"))
	if err != nil {
		return err
	}
	if n == 0 {
		return h.notFound(common.ErrNotFound)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": h.opts.Noun + " deleted successfully",
	})
}

func (h *ContentHandler[T, R, PR]) bind(c echo.Context) (*T, error) {
	var req R
	if err := c.Bind(PR(&req)); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid request body").SetInternal(err)
	}
	if product := c.Param("product"); product != "" {
		PR(&req).SetProduct(product)
	}
	if err := validation.Struct(PR(&req)); err != nil {
		return nil, err
	}
	return PR(&req).ToModel(), nil
}

func (h *ContentHandler[T, R, PR]) respond(c echo.Context, code int, verb string, doc *T) error {
	return c.JSON(code, echo.Map{
		"success": true,
		"message": h.opts.Noun + " " + verb + " successfully",
		"data":    doc,
	})
}

func (h *ContentHandler[T, R, PR]) notFound(err error) error {
	return echo.NewHTTPError(http.StatusNotFound, "No "+h.opts.Collection+" found for this product").SetInternal(err)
}
