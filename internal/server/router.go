package server

import (
	"context"
	"net/http"

	"github.com/MarquisOgre/Spices/internal/handlers"
	applog "github.com/MarquisOgre/Spices/internal/log"
)

func newRouter() http.Handler {
	mux := http.NewServeMux()
	applog.Debug(context.Background(), "registering http routes")
	mux.HandleFunc("/healthz", handlers.Health)
	mux.HandleFunc("/login", handlers.Login)
	mux.HandleFunc("/signup", handlers.Signup)
	mux.HandleFunc("/logout", handlers.Logout)
	mux.Handle("/app/api/ingredients", handlers.RequireAuthentication(http.HandlerFunc(handlers.IngredientResource)))
	mux.Handle("/app/api/ingredients/", handlers.RequireAuthentication(http.HandlerFunc(handlers.IngredientResource)))
	mux.Handle("/app/api/recipes", handlers.RequireAuthentication(http.HandlerFunc(handlers.RecipeResource)))
	mux.Handle("/app/api/recipes/", handlers.RequireAuthentication(http.HandlerFunc(handlers.RecipeResource)))
	mux.Handle("/app/api/indent", handlers.RequireAuthentication(http.HandlerFunc(handlers.Indent)))
	mux.Handle("/app/api/orders", handlers.RequireAuthentication(http.HandlerFunc(handlers.OrderResource)))
	mux.Handle("/app/api/orders/", handlers.RequireAuthentication(http.HandlerFunc(handlers.OrderResource)))
	mux.Handle("/app/api/pricing", handlers.RequireAuthentication(http.HandlerFunc(handlers.PricingResource)))
	mux.Handle("/app/api/pricing/", handlers.RequireAuthentication(http.HandlerFunc(handlers.PricingResource)))
	mux.Handle("/app/api/stock/", handlers.RequireAuthentication(http.HandlerFunc(handlers.StockResource)))
	applog.Debug(context.Background(), "routes registered")
	return mux
}
