// Package main is the entry point for the pixhash service.
package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"pixhash/api"
	"pixhash/api/handler"
	"pixhash/internal/database"
)

const defaultPort = ":8080"

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("Application starting...")

	imageDir := "./images"
	if dir := os.Getenv("PIXHASH_IMAGE_DIR"); dir != "" {
		imageDir = dir
	}
	if _, err := os.Stat(imageDir); os.IsNotExist(err) {
		if err := os.MkdirAll(imageDir, 0755); err != nil {
			log.Fatalf("Could not create images directory: %v", err)
		}
		log.Printf("Created images directory: %s", imageDir)
	}

	db := database.NewImageDatabase()
	if err := db.LoadImages(imageDir); err != nil {
		log.Fatalf("Failed to load images: %v", err)
	}
	log.Printf("Loaded %d images into database", db.Count())

	gin.SetMode(gin.ReleaseMode)
	r := api.Router(&handler.Handler{DB: db})

	port := defaultPort
	if p := os.Getenv("PIXHASH_PORT"); p != "" {
		port = ":" + p
	}
	log.Printf("Server started on port %s...", port)
	if err := r.Run(port); err != nil {
		log.Fatalf("Could not start server: %v", err)
	}
}
