package http

import (
	"net/http"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/relboard/pkg/domain/model"
	"github.com/m-mizutani/relboard/pkg/domain/types"
	"github.com/oapi-codegen/runtime"
)

// queryInt binds an optional integer query parameter. Missing or malformed
// values return def; bad paging input is never an error.
func queryInt(r *http.Request, name string, def int) int {
	if !r.URL.Query().Has(name) {
		return def
	}
	var v int
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), &v); err != nil {
		ctxlog.From(r.Context()).Debug("Ignored malformed query parameter", "name", name, "error", err)
		return def
	}
	return v
}

func queryString(r *http.Request, name string) string {
	var v string
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), &v); err != nil {
		return ""
	}
	return v
}

// querySelection reads the filter selection. Values are normalized by the
// usecase, so missing and unknown values both end up as All.
func querySelection(r *http.Request) model.FilterSelection {
	return model.FilterSelection{
		BusinessUnit: queryString(r, "business_unit"),
		Product:      queryString(r, "product"),
		Quality:      queryString(r, "quality"),
		Period:       types.Period(queryString(r, "period")),
	}
}
