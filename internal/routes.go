package internal

import (
	"net/http"
	"recstore/internal/controllers"
	"recstore/internal/providers"
)

func InitRoutes(recordController *controllers.RecordController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider(http.HandlerFunc(recordController.MethodNotAllowed))

	routers.Get("/", http.HandlerFunc(recordController.Load))
	routers.Post("/", http.HandlerFunc(recordController.Save))
	return routers
}
