package main

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

// Widget and app definitions are static JSON read from disk and served
// verbatim; the dashboard host polls both at load time.

func serveConfigFile(path string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := os.Stat(path); err != nil {
			c.JSON(http.StatusOK, gin.H{"error": "configuration file not found"})
			return
		}
		c.File(path)
	}
}
