package main

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed assets/css/* assets/js/*
var Assets embed.FS

// SetupAssets serves the embedded static assets.
func SetupAssets(r *gin.Engine) error {
	staticFiles, err := fs.Sub(Assets, "assets")
	if err != nil {
		return err
	}
	r.StaticFS("/assets", http.FS(staticFiles))
	return nil
}
