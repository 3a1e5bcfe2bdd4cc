package routes

import (
	"github.com/albertofp/club-system/handlers"
	"github.com/albertofp/club-system/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Handlers struct {
	Tournament *handlers.TournamentHandler
	Team       *handlers.TeamHandler
	Match      *handlers.MatchHandler
	Guardian   *handlers.GuardianHandler
	Child      *handlers.ChildHandler
	Payment    *handlers.PaymentHandler
	Attendance *handlers.AttendanceHandler
	Store      *handlers.StoreHandler
	Dashboard  *handlers.DashboardHandler
	WebSocket  *handlers.WebSocketHandler
}

func SetupRoutes(h Handlers, jwtSecret string, allowedOrigins []string) *chi.Mux {
	router := chi.NewRouter()

	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate(jwtSecret)
	adminOnly := middleware.RequireRole(middleware.RoleAdmin)
	staff := middleware.RequireRole(middleware.RoleAdmin, middleware.RoleStaff)

	router.Route("/tournaments", func(r chi.Router) {
		// Public read access
		r.Get("/", h.Tournament.ListHandler)
		r.Get("/{tournamentID}", h.Tournament.GetByIDHandler)
		r.Get("/{tournamentID}/standings", h.Tournament.StandingsHandler)
		r.Get("/{tournamentID}/matches", h.Match.ListByTournamentHandler)

		r.Group(func(r chi.Router) {
			r.Use(authenticate, adminOnly)

			r.Post("/", h.Tournament.CreateHandler)
			r.Put("/{tournamentID}", h.Tournament.UpdateHandler)
			r.Patch("/{tournamentID}/status", h.Tournament.UpdateStatusHandler)
			r.Delete("/{tournamentID}", h.Tournament.DeleteHandler)
			r.Post("/{tournamentID}/fixtures", h.Tournament.GenerateFixturesHandler)
		})
	})

	router.Route("/teams", func(r chi.Router) {
		r.Get("/", h.Team.ListHandler)
		r.Get("/{teamID}", h.Team.GetByIDHandler)

		r.Group(func(r chi.Router) {
			r.Use(authenticate, adminOnly)

			r.Post("/", h.Team.CreateHandler)
			r.Put("/{teamID}", h.Team.UpdateHandler)
			r.Delete("/{teamID}", h.Team.DeleteHandler)
		})
	})

	router.Route("/matches", func(r chi.Router) {
		r.Get("/{matchID}", h.Match.GetByIDHandler)

		r.Group(func(r chi.Router) {
			r.Use(authenticate, staff)

			r.Patch("/{matchID}/result", h.Match.RecordResultHandler)
			r.Patch("/{matchID}/date", h.Match.RescheduleHandler)
		})
	})

	router.Route("/guardians", func(r chi.Router) {
		r.Use(authenticate, staff)

		r.Post("/", h.Guardian.CreateHandler)
		r.Get("/", h.Guardian.ListHandler)
		r.Get("/{guardianID}", h.Guardian.GetByIDHandler)
		r.Put("/{guardianID}", h.Guardian.UpdateHandler)
		r.Delete("/{guardianID}", h.Guardian.DeleteHandler)
	})

	router.Route("/children", func(r chi.Router) {
		r.Use(authenticate, staff)

		r.Post("/", h.Child.CreateHandler)
		r.Get("/", h.Child.ListHandler)
		r.Get("/{childID}", h.Child.GetByIDHandler)
		r.Put("/{childID}", h.Child.UpdateHandler)
		r.Delete("/{childID}", h.Child.DeleteHandler)
		r.Get("/{childID}/check-ins", h.Attendance.ListByChildHandler)
	})

	router.Route("/payments", func(r chi.Router) {
		r.Use(authenticate, staff)

		r.Post("/", h.Payment.CreateHandler)
		r.Get("/", h.Payment.ListHandler)
		r.Get("/{paymentID}", h.Payment.GetByIDHandler)
		r.Post("/{paymentID}/pay", h.Payment.MarkPaidHandler)
		r.Delete("/{paymentID}", h.Payment.DeleteHandler)
	})

	router.Route("/check-ins", func(r chi.Router) {
		r.Use(authenticate, staff)

		r.Post("/", h.Attendance.CheckInHandler)
		r.Get("/", h.Attendance.ListByDayHandler)
		r.Delete("/{checkInID}", h.Attendance.DeleteHandler)
	})

	router.Route("/store", func(r chi.Router) {
		r.Get("/products", h.Store.ListProductsHandler)
		r.Get("/products/{productID}", h.Store.GetProductHandler)

		r.Group(func(r chi.Router) {
			r.Use(authenticate, staff)

			r.Post("/products", h.Store.CreateProductHandler)
			r.Delete("/products/{productID}", h.Store.DeleteProductHandler)
			r.Post("/orders", h.Store.PlaceOrderHandler)
			r.Get("/orders", h.Store.ListOrdersHandler)
			r.Post("/orders/{orderID}/cancel", h.Store.CancelOrderHandler)
		})
	})

	router.Group(func(r chi.Router) {
		r.Use(authenticate, staff)
		r.Get("/dashboard/stats", h.Dashboard.StatsHandler)
	})

	router.Get("/ws/tournaments/{tournamentID}", h.WebSocket.TournamentUpdatesHandler)

	return router
}
