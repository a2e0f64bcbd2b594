package api

import "github.com/RowdyKGZ/python12-shop/internal/api/handler"

type Server struct {
	AuthHandler    *handler.AuthHandler
	ProductHandler *handler.ProductHandler
	ReviewHandler  *handler.ReviewHandler
	OrderHandler   *handler.OrderHandler
}

func NewServer(
	authHandler *handler.AuthHandler,
	productHandler *handler.ProductHandler,
	reviewHandler *handler.ReviewHandler,
	orderHandler *handler.OrderHandler,
) *Server {
	return &Server{
		AuthHandler:    authHandler,
		ProductHandler: productHandler,
		ReviewHandler:  reviewHandler,
		OrderHandler:   orderHandler,
	}
}
