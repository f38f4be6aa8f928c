package rest

import (
	_ "embed"
	"net/http"
)

//go:embed static/index.html
var indexPage []byte

func indexHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(indexPage)
}
