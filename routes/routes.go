package routes

import (
	"github.com/DCirincione/ASLWebsite/handlers"
	"github.com/DCirincione/ASLWebsite/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// SetupRoutes mounts the full navigation surface: public pages, auth, and the
// session-gated member area.
func SetupRoutes(
	router *chi.Mux,
	allowedOrigins []string,
	jwtSecret string,
	pageHandler *handlers.PageHandler,
	authHandler *handlers.AuthHandler,
	eventHandler *handlers.EventHandler,
	sportHandler *handlers.SportHandler,
	friendHandler *handlers.FriendHandler,
	accountHandler *handlers.AccountHandler,
	profileHandler *handlers.ProfileHandler,
	registrationHandler *handlers.RegistrationHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Recoverer)

	// Auth rides in the Authorization header, not cookies, so credentialed
	// CORS stays off and the wildcard default origin keeps working.
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Every request resolves its access token into an explicit session;
	// anonymous requests pass through.
	router.Use(middleware.Authenticate(jwtSecret))

	// Public navigation surface.
	router.Get("/", pageHandler.Home)
	router.Get("/events", eventHandler.List)
	router.Get("/sports", sportHandler.List)
	router.Get("/sports/{slug}", sportHandler.SportPage)
	router.Get("/community", pageHandler.Community)
	router.Get("/contact", pageHandler.Contact)
	router.Get("/sponsors", pageHandler.Sponsors)
	router.Get("/leagues", pageHandler.Leagues)
	router.Get("/profiles/{id}", profileHandler.PublicProfile)

	router.Route("/auth", func(r chi.Router) {
		r.Post("/signup", authHandler.SignUp)
		r.Post("/signin", authHandler.SignIn)
		r.Post("/signout", authHandler.SignOut)
	})

	// Member area and mutations.
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession)

		r.Route("/account", func(r chi.Router) {
			r.Get("/", accountHandler.Overview)
			r.Get("/team", accountHandler.Teams)
			r.Get("/events", eventHandler.MyEvents)
			r.Get("/friends", friendHandler.FriendsPage)
			r.Put("/profile", accountHandler.UpdateProfile)
			r.Post("/avatar", accountHandler.UploadAvatar)
		})

		r.Post("/events/{id}/signup", eventHandler.SignUp)
		r.Get("/community/search", friendHandler.Search)
		r.Post("/friends/requests", friendHandler.SendRequest)
		r.Post("/friends/requests/{id}/respond", friendHandler.Respond)

		r.Get("/register/{slug}", registrationHandler.GetForm)
		r.Post("/register/{slug}", registrationHandler.Submit)
	})
}
