package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Hadi891/CareerCompass/internal/delivery/http/middleware"
	"github.com/Hadi891/CareerCompass/internal/delivery/http/response"
	"github.com/Hadi891/CareerCompass/internal/domain"
	"github.com/Hadi891/CareerCompass/internal/usecase"
	"github.com/Hadi891/CareerCompass/pkg/auth"
)

type RouterDeps struct {
	AuthUC   domain.AuthUsecase
	CVUC     domain.CVUsecase
	ChatUC   domain.ChatUsecase
	HealthUC usecase.HealthUsecase
	Issuer   *auth.Issuer
	UserRepo domain.UserRepository
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global middlewares
	r.Use(middleware.CORSMiddleware()) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	v1.GET("/health", func(c *gin.Context) {
		status := deps.HealthUC.Check(c.Request.Context())
		code := http.StatusOK
		if status["status"] != "ok" {
			code = http.StatusServiceUnavailable
		}
		response.Success(c, code, "Health", status)
	})

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Issuer, deps.UserRepo))
	{
		NewAuthHandler(v1, protected, deps.AuthUC)
		NewCVHandler(protected, deps.CVUC)
		NewChatHandler(protected, deps.ChatUC)
	}

	return r
}
