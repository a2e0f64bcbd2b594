package router

import (
	"net/http"

	"github.com/RowdyKGZ/python12-shop/internal/api"
	m "github.com/RowdyKGZ/python12-shop/internal/api/middleware"
	"github.com/RowdyKGZ/python12-shop/internal/token"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"
)

func SetupRouter(server *api.Server, tokenMaker token.Maker, logger *zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// 全局中間件
	r.Use(m.RecoverMiddleware)
	r.Use(m.RequestIdMiddleware)
	r.Use(m.AuthPayloadMiddleware(tokenMaker))
	r.Use(middleware.RealIP)
	r.Use(m.LoggerMiddleware(logger))

	// Swagger 文檔
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/", http.StatusMovedPermanently)
	})
	r.Get("/swagger/*", httpSwagger.Handler())

	// API 路由
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", server.AuthHandler.Register)
			r.Post("/login", server.AuthHandler.Login)
		})

		// 商品讀取開放匿名, 寫入權限由service層的能力檢查把關
		r.Route("/products", func(r chi.Router) {
			r.Get("/", server.ProductHandler.ListProducts)
			r.Get("/{id}", server.ProductHandler.GetProduct)
			r.Get("/{id}/reviews", server.ProductHandler.ListProductReviews)
			r.Post("/", server.ProductHandler.CreateProduct)
			r.Put("/{id}", server.ProductHandler.UpdateProduct)
			r.Patch("/{id}", server.ProductHandler.UpdateProduct)
			r.Delete("/{id}", server.ProductHandler.DeleteProduct)
		})

		r.Route("/reviews", func(r chi.Router) {
			r.With(m.AuthMiddleware).Post("/", server.ReviewHandler.CreateReview)
			r.With(m.AuthMiddleware).Put("/{id}", server.ReviewHandler.UpdateReview)
			r.With(m.AuthMiddleware).Patch("/{id}", server.ReviewHandler.UpdateReview)
			r.With(m.AuthMiddleware).Delete("/{id}", server.ReviewHandler.DeleteReview)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Use(m.AuthMiddleware)
			r.Post("/", server.OrderHandler.CreateOrder)
			r.Get("/", server.OrderHandler.ListOrders)
			r.Get("/{id}", server.OrderHandler.GetOrder)
			r.Delete("/{id}", server.OrderHandler.DeleteOrder)
			r.Post("/{id}/items", server.OrderHandler.AddOrderItem)
			r.Delete("/{id}/items/{item_id}", server.OrderHandler.RemoveOrderItem)
			r.Patch("/{id}/status", server.OrderHandler.UpdateOrderStatus)
		})
	})

	return r
}
