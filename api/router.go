package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"pixhash/api/handler"
	_ "pixhash/docs"
)

// @title Perceptual Hash API
// @version 1.0
// @description API for perceptual image hashing and similarity recognition
// @BasePath /
func Router(hand *handler.Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), cors.Default())

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.POST("/hash", hand.HashHandler)
	r.POST("/compare", hand.CompareHandler)
	r.POST("/recognize", hand.RecognizeHandler)

	admin := r.Group("/admin")
	{
		admin.POST("/add", hand.AddImageHandler)
		admin.GET("/list", hand.ListImagesHandler)
		admin.GET("/hello", hand.Hello)
	}
	return r
}
