package internal

import (
	"net/http"

	"aocbot/internal/controllers"
	"aocbot/internal/providers"
)

func InitRoutes(apiController *controllers.ApiController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/invoke", http.HandlerFunc(apiController.Invoke))
	routers.Get("/state", http.HandlerFunc(apiController.State))
	return routers
}
