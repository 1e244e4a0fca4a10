package handler

import (
	"strconv"

	"quiz-arena/internal/domain"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// parsePagination reads page/limit. page is 1-based and limit is capped at maxLimit.
func parsePagination(c *fiber.Ctx) (page int, window domain.Page, err error) {
	var errs domain.ValidationErrors
	page = defaultPage
	limit := defaultLimit

	if raw := c.Query("page"); raw != "" {
		v, convErr := strconv.Atoi(raw)
		switch {
		case convErr != nil:
			errs = append(errs, domain.NewInvalidFormatError("page", raw))
		case v < 1:
			errs = append(errs, domain.NewMinValueError("page", v, 1))
		default:
			page = v
		}
	}
	if raw := c.Query("limit"); raw != "" {
		v, convErr := strconv.Atoi(raw)
		switch {
		case convErr != nil:
			errs = append(errs, domain.NewInvalidFormatError("limit", raw))
		case v < 1:
			errs = append(errs, domain.NewMinValueError("limit", v, 1))
		default:
			limit = min(v, maxLimit)
		}
	}
	if len(errs) > 0 {
		return 0, domain.Page{}, errs
	}
	return page, domain.Page{Limit: limit, Offset: (page - 1) * limit}, nil
}

func parseOptionalBool(field, raw string) (*bool, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, domain.ValidationErrors{domain.NewInvalidFormatError(field, raw)}
	}
	return &v, nil
}
