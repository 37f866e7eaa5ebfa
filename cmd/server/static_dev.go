//go:build !embed
// +build !embed

package main

import (
	"os"

	"weatherlookup/internal/logger"
	"weatherlookup/web"

	"github.com/gin-gonic/gin"
)

// setupAssets serves templates and static files from ./web so edits show up
// without a rebuild
func setupAssets(router *gin.Engine, log *logger.Logger) {
	log.Info("using local filesystem for web assets (development mode)", "dir", "./web")

	tmpl, err := web.ParseTemplates(os.DirFS("./web"))
	if err != nil {
		log.Error("failed to parse templates", "error", err)
		os.Exit(1)
	}
	router.SetHTMLTemplate(tmpl)

	router.Static("/static", "./web/static")
}
