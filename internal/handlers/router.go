package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-mining-api/internal/middleware"
)

// RouterDeps route'lara bağlanan handler ve middleware'ler
type RouterDeps struct {
	Auth   *AuthHandler
	Public *PublicHandler
	User   *UserHandler
	Ticket *TicketHandler
	Admin  *AdminHandler

	// Authenticate token doğrulayıp kullanıcıyı context'e koyar
	Authenticate mux.MiddlewareFunc
	// Maintenance bakım modunda kullanıcı route'larını kapatır (opsiyonel)
	Maintenance mux.MiddlewareFunc
	// Metrics eşleşen route'ların metriklerini toplar (opsiyonel)
	Metrics mux.MiddlewareFunc
}

// NewRouter tüm route'ları kaydeder. "/api" prefix'i router dışında
// middleware.StripPrefix ile kaldırılır.
func NewRouter(deps RouterDeps) *mux.Router {
	router := mux.NewRouter()
	router.NotFoundHandler = middleware.NotFoundJSONHandler()
	router.MethodNotAllowedHandler = middleware.MethodNotAllowedJSONHandler()
	if deps.Metrics != nil {
		router.Use(deps.Metrics)
	}

	// Public
	router.HandleFunc("/health", deps.Public.Health).Methods(http.MethodGet)
	router.HandleFunc("/plans", deps.Public.Plans).Methods(http.MethodGet)
	router.HandleFunc("/plans/{id:[0-9]+}", deps.Public.Plan).Methods(http.MethodGet)
	router.HandleFunc("/payment-methods", deps.Public.PaymentMethods).Methods(http.MethodGet)
	router.HandleFunc("/settings/public", deps.Public.PublicSettings).Methods(http.MethodGet)

	// Auth
	authRoutes := router.PathPrefix("/auth").Subrouter()
	authRoutes.HandleFunc("/register", deps.Auth.Register).Methods(http.MethodPost)
	authRoutes.HandleFunc("/login", deps.Auth.Login).Methods(http.MethodPost)
	authRoutes.HandleFunc("/refresh", deps.Auth.Refresh).Methods(http.MethodPost)

	me := router.Path("/auth/me").Subrouter()
	me.Use(deps.Authenticate)
	me.Methods(http.MethodGet).HandlerFunc(deps.Auth.Me)

	// Kullanıcı paneli
	user := router.PathPrefix("/user").Subrouter()
	user.Use(deps.Authenticate)
	if deps.Maintenance != nil {
		user.Use(deps.Maintenance)
	}
	user.HandleFunc("/dashboard", deps.User.Dashboard).Methods(http.MethodGet)
	user.HandleFunc("/profile", deps.User.Profile).Methods(http.MethodGet)
	user.HandleFunc("/profile", deps.User.UpdateProfile).Methods(http.MethodPut)
	user.HandleFunc("/password", deps.User.ChangePassword).Methods(http.MethodPut)
	user.HandleFunc("/transactions", deps.User.Transactions).Methods(http.MethodGet)
	user.HandleFunc("/notifications", deps.User.Notifications).Methods(http.MethodGet)
	user.HandleFunc("/notifications/read-all", deps.User.MarkAllNotificationsRead).Methods(http.MethodPut)
	user.HandleFunc("/notifications/{id:[0-9]+}/read", deps.User.MarkNotificationRead).Methods(http.MethodPut)

	mining := user.NewRoute().Subrouter()
	mining.Use(middleware.RequirePermission(middleware.PermMine))
	mining.HandleFunc("/rigs", deps.User.Rigs).Methods(http.MethodGet)
	mining.HandleFunc("/rigs", deps.User.PurchaseRig).Methods(http.MethodPost)
	mining.HandleFunc("/earnings/collect", deps.User.CollectEarnings).Methods(http.MethodPost)

	funds := user.NewRoute().Subrouter()
	funds.Use(middleware.RequirePermission(middleware.PermManageFunds))
	funds.HandleFunc("/deposits", deps.User.Deposits).Methods(http.MethodGet)
	funds.HandleFunc("/deposits", deps.User.CreateDeposit).Methods(http.MethodPost)
	funds.HandleFunc("/withdrawals", deps.User.Withdrawals).Methods(http.MethodGet)
	funds.HandleFunc("/withdrawals", deps.User.CreateWithdrawal).Methods(http.MethodPost)

	// Destek
	tickets := router.PathPrefix("/tickets").Subrouter()
	tickets.Use(deps.Authenticate, middleware.RequirePermission(middleware.PermSupport))
	tickets.HandleFunc("", deps.Ticket.List).Methods(http.MethodGet)
	tickets.HandleFunc("", deps.Ticket.Create).Methods(http.MethodPost)
	tickets.HandleFunc("/{id:[0-9]+}", deps.Ticket.Get).Methods(http.MethodGet)
	tickets.HandleFunc("/{id:[0-9]+}/reply", deps.Ticket.Reply).Methods(http.MethodPost)
	tickets.HandleFunc("/{id:[0-9]+}/close", deps.Ticket.Close).Methods(http.MethodPut)

	// Admin: her grup kendi yetkisini ister
	admin := router.PathPrefix("/admin").Subrouter()
	admin.Use(deps.Authenticate)

	users := admin.NewRoute().Subrouter()
	users.Use(middleware.RequirePermission(middleware.PermManageUsers))
	users.HandleFunc("/users", deps.Admin.Users).Methods(http.MethodGet)
	users.HandleFunc("/users/{id:[0-9]+}", deps.Admin.User).Methods(http.MethodGet)
	users.HandleFunc("/users/{id:[0-9]+}", deps.Admin.UpdateUser).Methods(http.MethodPut)
	users.HandleFunc("/users/{id:[0-9]+}/balance", deps.Admin.AdjustBalance).Methods(http.MethodPost)

	approvals := admin.NewRoute().Subrouter()
	approvals.Use(middleware.RequirePermission(middleware.PermApproveFunds))
	approvals.HandleFunc("/deposits", deps.Admin.Deposits).Methods(http.MethodGet)
	approvals.HandleFunc("/deposits/{id:[0-9]+}/approve", deps.Admin.ApproveDeposit).Methods(http.MethodPost)
	approvals.HandleFunc("/deposits/{id:[0-9]+}/reject", deps.Admin.RejectDeposit).Methods(http.MethodPost)
	approvals.HandleFunc("/withdrawals", deps.Admin.Withdrawals).Methods(http.MethodGet)
	approvals.HandleFunc("/withdrawals/{id:[0-9]+}/approve", deps.Admin.ApproveWithdrawal).Methods(http.MethodPost)
	approvals.HandleFunc("/withdrawals/{id:[0-9]+}/reject", deps.Admin.RejectWithdrawal).Methods(http.MethodPost)

	catalog := admin.NewRoute().Subrouter()
	catalog.Use(middleware.RequirePermission(middleware.PermManageCatalog))
	catalog.HandleFunc("/rigs", deps.Admin.Rigs).Methods(http.MethodGet)
	catalog.HandleFunc("/rigs", deps.Admin.CreateRig).Methods(http.MethodPost)
	catalog.HandleFunc("/rigs/{id:[0-9]+}", deps.Admin.UpdateRig).Methods(http.MethodPut)
	catalog.HandleFunc("/rigs/{id:[0-9]+}", deps.Admin.DeleteRig).Methods(http.MethodDelete)
	catalog.HandleFunc("/payment-methods", deps.Admin.PaymentMethods).Methods(http.MethodGet)
	catalog.HandleFunc("/payment-methods", deps.Admin.CreatePaymentMethod).Methods(http.MethodPost)
	catalog.HandleFunc("/payment-methods/{id:[0-9]+}", deps.Admin.UpdatePaymentMethod).Methods(http.MethodPut)
	catalog.HandleFunc("/payment-methods/{id:[0-9]+}", deps.Admin.DeletePaymentMethod).Methods(http.MethodDelete)

	system := admin.NewRoute().Subrouter()
	system.Use(middleware.RequireAdmin())
	system.HandleFunc("/stats", deps.Admin.Stats).Methods(http.MethodGet)
	system.HandleFunc("/metrics", deps.Admin.Metrics).Methods(http.MethodGet)
	system.HandleFunc("/tickets", deps.Ticket.AdminList).Methods(http.MethodGet)
	system.HandleFunc("/tickets/{id:[0-9]+}", deps.Ticket.Get).Methods(http.MethodGet)
	system.HandleFunc("/tickets/{id:[0-9]+}/reply", deps.Ticket.Reply).Methods(http.MethodPost)
	system.HandleFunc("/tickets/{id:[0-9]+}/status", deps.Ticket.SetStatus).Methods(http.MethodPut)
	system.HandleFunc("/settings", deps.Admin.Settings).Methods(http.MethodGet)
	system.HandleFunc("/settings", deps.Admin.UpdateSettings).Methods(http.MethodPut)
	system.HandleFunc("/transactions", deps.Admin.Transactions).Methods(http.MethodGet)
	system.HandleFunc("/audit-logs", deps.Admin.AuditLogs).Methods(http.MethodGet)

	router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		pathTemplate, err := route.GetPathTemplate()
		if err != nil {
			return nil
		}
		methods, _ := route.GetMethods()
		log.Debug().Str("path", pathTemplate).Strs("methods", methods).Msg("Route registered")
		return nil
	})

	return router
}
