// main.go
package main

import (
	"net/http"
	"path/filepath"
	"runtime"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"ambica-decor/api"
	"ambica-decor/config"
	"ambica-decor/controllers"
	"ambica-decor/logger"
	"ambica-decor/middleware"
	appservices "ambica-decor/services"
	"ambica-decor/websocket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		logger.SetLogLevel("production")
	}

	controllers.SetConfig(cfg.ApplicationURL, cfg.WebsocketURL)
	websocket.EnableMetrics(cfg.MetricsEnabled)

	// The session service holds the admin bearer token; the API client
	// attaches it to every request. The client's Login is wired back in
	// afterwards because each side needs the other.
	sessionService := appservices.NewSessionService(nil)
	apiClient := api.New(cfg.APIBaseURL, sessionService)
	sessionService.SetAuthenticator(apiClient.Login)

	uploadService := appservices.NewUploadService(apiClient, cfg.CloudinaryUploadURL)
	enquiryService := appservices.NewEnquiryService(apiClient)

	pageController := controllers.NewPageController(apiClient)
	authController := controllers.NewAuthController(sessionService)
	adminController := controllers.NewAdminController(sessionService)
	eventsController := controllers.NewEventsController(apiClient, uploadService, sessionService)
	servicesController := controllers.NewServicesController(apiClient, uploadService, sessionService)
	contentController := controllers.NewContentController(apiClient, sessionService)
	enquiriesController := controllers.NewEnquiriesController(enquiryService, sessionService)

	// the gallery modal resolves events from the public site's cache
	websocket.SetEventLookup(pageController.LookupEvent)

	router := gin.Default()

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	router.Use(sessions.Sessions("ambicasession", store))

	_, b, _, _ := runtime.Caller(0)
	basepath := filepath.Dir(b)
	router.LoadHTMLGlob(filepath.Join(basepath, "templates", "*.html"))
	router.Static("/static", "./static")

	router.GET("/health", controllers.Health)

	// Public marketing site
	router.GET("/", pageController.Home)
	router.GET("/about", pageController.About)
	router.GET("/services", pageController.Services)
	router.GET("/showcase", pageController.Showcase)
	router.GET("/contact", pageController.Contact)
	router.POST("/contact", pageController.SubmitEnquiry)

	// Gallery modal updates ride a websocket
	router.GET("/gallery-updates", func(c *gin.Context) {
		websocket.ServeWs(c.Writer, c.Request)
	})

	// Admin console
	router.GET("/admin/login", authController.ShowLoginPage)
	router.POST("/admin/login", authController.PerformLogin)
	router.GET("/admin/logout", authController.Logout)

	admin := router.Group("/admin", middleware.AuthRequired)
	{
		admin.GET("", adminController.Dashboard)
		admin.GET("/qrcode", controllers.GetContactQRCode)

		admin.GET("/events", eventsController.ManageEvents)
		admin.GET("/events/new", eventsController.NewEvent)
		admin.GET("/events/:id/edit", eventsController.EditEvent)
		admin.POST("/events/save", eventsController.SaveEvent)
		admin.POST("/events/:id/delete", eventsController.DeleteEvent)

		admin.GET("/services", servicesController.ManageServices)
		admin.GET("/services/new", servicesController.NewService)
		admin.GET("/services/:id/edit", servicesController.EditService)
		admin.POST("/services/save", servicesController.SaveService)
		admin.POST("/services/:id/delete", servicesController.DeleteService)

		admin.GET("/content", contentController.ManageContent)
		admin.GET("/content/:section/edit", contentController.EditContent)
		admin.POST("/content/save", contentController.SaveContent)
		// the location document has its own entry in the console nav
		admin.GET("/locations", func(c *gin.Context) {
			c.Redirect(http.StatusFound, "/admin/content/location/edit")
		})

		admin.GET("/enquiries", enquiriesController.ViewEnquiries)
		admin.POST("/enquiries/:id/status", enquiriesController.SetEnquiryStatus)
	}

	go websocket.HandleMessages()

	logger.Info.Printf("Starting server on %s (backend %s)", cfg.ListenAddr, cfg.APIBaseURL)
	if err := router.Run(cfg.ListenAddr); err != nil {
		logger.Error.Fatalf("Failed to run server: %v", err)
	}
}
