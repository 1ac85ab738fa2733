package main

import (
	"log"
	"os"
	"time"

	"sponsio/config"
	"sponsio/database"
	"sponsio/internal/api/assets"
	routes "sponsio/internal/app/http"
	"sponsio/internal/app/http/middleware"
	"sponsio/internal/infra/moderation"
	"sponsio/internal/infra/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()
	database.InitDB()

	uploader, err := storage.NewCloudinaryUploader(config.CLOUDINARY_CLOUD_NAME, config.CLOUDINARY_API_KEY, config.CLOUDINARY_API_SECRET)
	if err != nil {
		log.Fatal("failed to init storage client: ", err)
	}
	assets.Moderator = moderation.NewGeminiClassifier(config.GEMINI_API_KEY)
	assets.Uploader = uploader

	r := gin.Default()
	r.Use(middleware.RequestLogger())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{os.Getenv("CORS_ORIGIN")},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r)

	r.Run(":" + config.PORT)
}
