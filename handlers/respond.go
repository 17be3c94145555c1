package handlers

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/padraicbc/trainerapi/result"
)

const contentTypeJSON = "application/json; charset=utf-8"

type errorBody struct {
	Message string `json:"message"`
}

func writeJSON(c echo.Context, status int, v any) error {
	c.Response().Header().Set(echo.HeaderContentType, contentTypeJSON)
	return c.JSON(status, v)
}

// respond maps a service outcome onto the response: a found value is written
// with status, an absent one becomes 404 and any error is left to ErrorHandler.
// A found nil slice is written as [].
func respond[T any](c echo.Context, status int, res result.Result[T], err error) error {
	if err != nil {
		return err
	}
	v, ok := res.Get()
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	return writeJSON(c, status, emptyIfNilSlice(v))
}

func emptyIfNilSlice(v any) any {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice && rv.IsNil() {
		return reflect.MakeSlice(rv.Type(), 0, 0).Interface()
	}
	return v
}

// ErrorHandler writes every error returned by a handler as a JSON body.
// Errors that are not *echo.HTTPError become a bare 500; their cause is
// logged, never sent.
func ErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := http.StatusText(status)

		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			message = http.StatusText(status)
			if m, ok := he.Message.(string); ok && status < http.StatusInternalServerError {
				message = m
			}
		}
		if status >= http.StatusInternalServerError {
			log.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = writeJSON(c, status, errorBody{Message: message})
		}
		if err != nil {
			log.Warn("writing error response", zap.Error(err))
		}
	}
}
