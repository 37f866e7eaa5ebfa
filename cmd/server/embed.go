//go:build embed
// +build embed

package main

import (
	"io/fs"
	"net/http"
	"os"

	"weatherlookup/internal/logger"
	"weatherlookup/web"

	"github.com/gin-gonic/gin"
)

// setupAssets loads templates and static files compiled into the binary
func setupAssets(router *gin.Engine, log *logger.Logger) {
	log.Info("using embedded web assets")

	tmpl, err := web.ParseTemplates(web.FS())
	if err != nil {
		log.Error("failed to parse templates", "error", err)
		os.Exit(1)
	}
	router.SetHTMLTemplate(tmpl)

	static, err := fs.Sub(web.FS(), "static")
	if err != nil {
		log.Error("failed to get static subdirectory", "error", err)
		os.Exit(1)
	}
	router.StaticFS("/static", http.FS(static))
}
