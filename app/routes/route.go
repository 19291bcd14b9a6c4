package routes

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/unrolled/render"
	"gorm.io/gorm"

	"github.com/Rakhulsr/go-storefront/app/configs"
	"github.com/Rakhulsr/go-storefront/app/handlers"
	"github.com/Rakhulsr/go-storefront/app/helpers"
	"github.com/Rakhulsr/go-storefront/app/middlewares"
	"github.com/Rakhulsr/go-storefront/app/repositories"
	"github.com/Rakhulsr/go-storefront/app/services"
	"github.com/Rakhulsr/go-storefront/app/utils/apperr"
	"github.com/Rakhulsr/go-storefront/app/utils/blobstore"
	"github.com/Rakhulsr/go-storefront/app/utils/metrics"
)

type Deps struct {
	Env     configs.ENV
	DB      *gorm.DB
	Store   blobstore.Store
	Tokens  services.TokenIssuer
	Log     *logrus.Logger
	Metrics *metrics.Metrics
}

func NewRouter(d Deps) http.Handler {
	rnd := render.New()
	validate := validator.New()

	productRepo := repositories.NewProductRepository(d.DB)
	imageRepo := repositories.NewProductImageRepository(d.DB)
	settingRepo := repositories.NewSettingRepository(d.DB)
	userRepo := repositories.NewUserRepository(d.DB)
	bannerRepo := repositories.NewBannerRepository(d.DB)

	productService := services.NewProductService(productRepo, imageRepo, d.Store, validate, d.Log, d.Metrics)
	settingsService := services.NewSettingsService(settingRepo, d.Store, d.Log, d.Metrics)
	authService := services.NewAuthService(userRepo, d.Tokens, d.Log, d.Metrics)
	bannerService := services.NewBannerService(bannerRepo, validate)

	homeHandler := handlers.NewHomeHandler(rnd)
	productHandler := handlers.NewProductHandler(productService, rnd)
	settingsHandler := handlers.NewSettingsHandler(settingsService, rnd)
	authHandler := handlers.NewAuthHandler(authService, rnd)
	bannerHandler := handlers.NewBannerHandler(bannerService, rnd)

	requireAdmin := middlewares.RequireAdmin(authService, rnd)
	admin := func(fn http.HandlerFunc) http.Handler { return requireAdmin(fn) }
	loginLimiter := middlewares.NewLoginRateLimiter(d.Env.LoginRatePerMinute, d.Env.TrustedProxyHops, rnd, d.Log)

	router := mux.NewRouter()
	router.Use(middlewares.RequestLogger(d.Log, d.Metrics))
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		helpers.RespondError(rnd, w, apperr.NotFound("Not found"))
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rnd.JSON(w, http.StatusMethodNotAllowed, helpers.ErrorResponse{Error: "Method not allowed"})
	})

	router.HandleFunc("/", homeHandler.Home).Methods("GET")
	router.HandleFunc("/health", homeHandler.Health).Methods("GET")
	router.Handle("/metrics", d.Metrics.Handler()).Methods("GET")

	publicURL := ""
	if d.Env.StorageDriver == "s3" {
		publicURL = d.Env.S3PublicURL
	}
	router.PathPrefix(blobstore.PublicPrefix).
		Handler(handlers.NewUploadsHandler(d.Env.UploadsDir(), publicURL)).
		Methods("GET", "HEAD")

	api := router
	if prefix := strings.TrimRight(d.Env.APIPrefix, "/"); prefix != "" {
		api = router.PathPrefix(prefix).Subrouter()
	}

	api.HandleFunc("/products", productHandler.List).Methods("GET")
	api.HandleFunc("/products/{id}", productHandler.Show).Methods("GET")
	api.Handle("/products", admin(productHandler.Create)).Methods("POST")
	api.Handle("/products/{id}", admin(productHandler.Update)).Methods("PUT")
	api.Handle("/products/{id}/images/{imageId}", admin(productHandler.DeleteImage)).Methods("DELETE")
	api.Handle("/products/{id}", admin(productHandler.Delete)).Methods("DELETE")

	api.HandleFunc("/settings", settingsHandler.List).Methods("GET")
	api.HandleFunc("/settings/{key}", settingsHandler.Show).Methods("GET")
	api.Handle("/settings", admin(settingsHandler.Update)).Methods("PUT")

	api.HandleFunc("/banners", bannerHandler.List).Methods("GET")
	api.HandleFunc("/banners/{id}", bannerHandler.Show).Methods("GET")
	api.Handle("/banners", admin(bannerHandler.Create)).Methods("POST")
	api.Handle("/banners/{id}", admin(bannerHandler.Update)).Methods("PUT")
	api.Handle("/banners/{id}", admin(bannerHandler.Delete)).Methods("DELETE")

	api.Handle("/auth/login", loginLimiter.Handler(http.HandlerFunc(authHandler.Login))).Methods("POST")
	api.HandleFunc("/auth/verify", authHandler.Verify).Methods("GET")

	return middlewares.CORS(d.Env.FrontendURL)(router)
}
