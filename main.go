package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type createRoomRequest struct {
	Theme            string `json:"theme"`
	Difficulty       string `json:"difficulty"`
	GridSize         int    `json:"gridSize"`
	WordCount        int    `json:"wordCount"`
	TimeLimitSeconds int    `json:"timeLimitSeconds"`
}

// normalizeSettings folds the optional overrides into the defaults and
// clamps them to ranges the generator can always satisfy.
func normalizeSettings(req createRoomRequest) GameSettings {
	s := defaultSettings()
	if _, ok := themeWords[req.Theme]; ok {
		s.Theme = req.Theme
	}
	if _, ok := difficulties[req.Difficulty]; ok {
		s.Difficulty = req.Difficulty
	}
	if req.GridSize >= 6 && req.GridSize <= 16 {
		s.GridSize = req.GridSize
	}
	if req.WordCount >= 1 && req.WordCount <= 20 {
		s.WordCount = req.WordCount
	}
	if req.TimeLimitSeconds >= 30 && req.TimeLimitSeconds <= 600 {
		s.TimeLimitSeconds = req.TimeLimitSeconds
	}
	return s
}

func createRoomHandler(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createRoomRequest
		// An empty body means all defaults.
		_ = c.ShouldBindJSON(&req)

		room := hub.CreateRoom(normalizeSettings(req))
		log.Printf("🏠 Room %s created (%s/%s, %dx%d, %d words)",
			room.Code, room.Settings.Theme, room.Settings.Difficulty,
			room.Settings.GridSize, room.Settings.GridSize, room.Settings.WordCount)

		c.JSON(http.StatusCreated, gin.H{
			"code":     room.Code,
			"settings": room.Settings,
		})
	}
}

func setupRouter(hub *Hub) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	router.Use(gin.LoggerWithWriter(os.Stdout))

	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.POST("/rooms", createRoomHandler(hub))

	// WebSocket route
	router.GET("/ws", hub.wsHandler)

	return router
}

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "42069"
	}

	hub := NewHub()
	router := setupRouter(hub)

	log.Println("🚀 Starting server on port " + port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
