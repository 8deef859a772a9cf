package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"

	"haulcentral/internal/models"
)

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	optionalAuthMiddleware := standardMiddleware.Append(app.optionalAuth)
	authMiddleware := standardMiddleware.Append(app.authenticate)
	adminMiddleware := authMiddleware.Append(app.requireAdminGrant)

	mux := pat.New()

	// Auth
	mux.Post("/auth/sign_up", standardMiddleware.ThenFunc(app.userHandler.SignUp))
	mux.Post("/auth/sign_in", standardMiddleware.ThenFunc(app.userHandler.SignIn))
	mux.Post("/auth/log_out", authMiddleware.ThenFunc(app.userHandler.LogOut))
	mux.Get("/auth/state", optionalAuthMiddleware.ThenFunc(app.userHandler.AuthState))
	mux.Post("/users/device_token", authMiddleware.ThenFunc(app.userHandler.RegisterDevice))

	// Loads (board and mine before :id, pat matches in order)
	mux.Get("/loads/board", standardMiddleware.ThenFunc(app.loadHandler.Board))
	mux.Post("/loads/board/refresh", standardMiddleware.ThenFunc(app.loadHandler.RefreshBoard))
	mux.Get("/loads/mine", authMiddleware.ThenFunc(app.loadHandler.MyLoads))
	mux.Post("/loads", authMiddleware.ThenFunc(app.loadHandler.PostLoad))
	mux.Get("/loads/:id", standardMiddleware.ThenFunc(app.loadHandler.GetLoad))
	mux.Put("/loads/:id/status", authMiddleware.ThenFunc(app.loadHandler.UpdateStatus))
	mux.Post("/loads/:id/documents", authMiddleware.ThenFunc(app.loadHandler.UploadDocument))

	// Trucks and backhaul alerts
	mux.Post("/trucks", authMiddleware.ThenFunc(app.truckHandler.CreateTruck))
	mux.Get("/trucks", authMiddleware.ThenFunc(app.truckHandler.ListTrucks))
	mux.Get("/alerts", authMiddleware.ThenFunc(app.alertHandler.ListAlerts))
	mux.Put("/alerts/:id/status", authMiddleware.ThenFunc(app.alertHandler.UpdateStatus))

	// Dashboards
	mux.Get("/dashboard", authMiddleware.ThenFunc(app.userHandler.Dashboard))
	mux.Get("/dashboard/owner-operator", authMiddleware.Append(app.requireCategory(models.CategoryOwnerOperator)).ThenFunc(app.dashboardHandler.OwnerOperator))
	mux.Get("/dashboard/carrier", authMiddleware.Append(app.requireCategory(models.CategoryCarrier)).ThenFunc(app.dashboardHandler.Carrier))
	mux.Get("/dashboard/broker-shipper", authMiddleware.Append(app.requireCategory(models.CategoryBrokerShipper)).ThenFunc(app.dashboardHandler.Broker))

	// Admin panel
	mux.Post("/admin/verify", authMiddleware.ThenFunc(app.adminHandler.Verify))
	mux.Put("/admin/keycode", adminMiddleware.ThenFunc(app.adminHandler.ChangeKeycode))
	mux.Get("/admin/users", adminMiddleware.ThenFunc(app.adminHandler.ListUsers))
	mux.Post("/admin/users", adminMiddleware.ThenFunc(app.adminHandler.AddUser))

	// Pricing
	mux.Get("/pricing", standardMiddleware.ThenFunc(app.pricingHandler.Catalog))
	mux.Get("/pricing/:category", standardMiddleware.ThenFunc(app.pricingHandler.ForCategory))

	// Live board feed
	mux.Get("/ws/board", alice.New(app.recoverPanic, app.logRequest).ThenFunc(app.boardSocket))

	return mux
}
