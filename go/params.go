package storefrontserver

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"
	"github.com/shopspring/decimal"

	apierrors "github.com/Apurer/go-gin-storefront/internal/shared/errors"
	"github.com/Apurer/go-gin-storefront/internal/shared/pagination"
)

// queryParams binds optional form-style query parameters, answering 400 on
// the first malformed one.
type queryParams struct {
	c   *gin.Context
	err error
}

func newQueryParams(c *gin.Context) *queryParams {
	return &queryParams{c: c}
}

func (q *queryParams) bind(name string, dest any) {
	if q.err != nil {
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, name, q.c.Request.URL.Query(), dest); err != nil {
		q.err = fmt.Errorf("invalid query parameter %s", name)
	}
}

func (q *queryParams) String(name string) string {
	var value string
	q.bind(name, &value)
	return value
}

func (q *queryParams) Int(name string) int {
	var value int
	q.bind(name, &value)
	return value
}

func (q *queryParams) Bool(name string) bool {
	var value bool
	q.bind(name, &value)
	return value
}

func (q *queryParams) OptionalFloat(name string) *float64 {
	var value *float64
	q.bind(name, &value)
	return value
}

func (q *queryParams) OptionalDecimal(name string) *decimal.Decimal {
	raw := q.String(name)
	if raw == "" || q.err != nil {
		return nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		q.err = fmt.Errorf("invalid query parameter %s", name)
		return nil
	}
	return &value
}

func (q *queryParams) Page() pagination.Params {
	return pagination.Params{Page: q.Int("page"), Limit: q.Int("limit")}
}

// ok answers 400 when any parameter failed to bind.
func (q *queryParams) ok() bool {
	if q.err == nil {
		return true
	}
	apierrors.Respond(q.c, apierrors.ErrBadRequest.WithDetail(q.err.Error()))
	return false
}
