package api

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/ansokolv/social-calendar-backend/internal/business/scheduling"
	"github.com/ansokolv/social-calendar-backend/internal/database"
	"github.com/ansokolv/social-calendar-backend/internal/model"
	"github.com/ansokolv/social-calendar-backend/internal/pkg/oauth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Api struct {
	handler    http.Handler
	logger     *zap.SugaredLogger
	randSource io.Reader

	jwts          jwtManager
	tokenParser   tokenParser
	refreshTokens refreshTokenRepository

	db    database.PGX
	users userRepository

	itemsService      itemsService
	schedulingService schedulingService
	availability      availabilityService
}

type jwtManager interface {
	CreateToken(id int64) (string, error)
	GetIdFromToken(token string) (int64, error)
}

type tokenParser interface {
	GetInfoGoogle(ctx context.Context, authCode string) (*oauth.GoogleInfo, error)
}

type refreshTokenRepository interface {
	Add(ctx context.Context, session string, id int64) error
	Get(ctx context.Context, session string) (int64, error)
	Refresh(ctx context.Context, old, new string) error
	Delete(ctx context.Context, session string) error
}

type userRepository interface {
	CreateUser(ctx context.Context, q database.Queryable, user *model.UserCreate) (int64, error)
	GetUserByEmail(ctx context.Context, q database.Queryable, email string) (*model.User, error)
	GetUserByID(ctx context.Context, q database.Queryable, id int64) (*model.User, error)
	SearchUsers(ctx context.Context, q database.Queryable, filter model.UserSearchFilter) ([]*model.User, error)
	UpdateUserPushToken(ctx context.Context, q database.Queryable, id int64, token string) error
	GetUserSettings(ctx context.Context, q database.Queryable, userID int64) (*model.UserSettings, error)
	SetUserSettings(ctx context.Context, q database.Queryable, settings *model.UserSettings) error
}

type itemsService interface {
	CreateItem(ctx context.Context, info *model.ItemCreate) (*model.CalendarItem, error)
	GetItems(ctx context.Context, filter model.ItemsFilter) ([]*model.CalendarItem, error)
	UpdateItem(ctx context.Context, id int64, ts time.Time, info *model.ItemUpdate) (*model.ConflictReport, error)
	UpdateItemInstance(ctx context.Context, id int64, ts time.Time, info *model.ItemUpdate) (*model.ConflictReport, error)
	SetCompleted(ctx context.Context, id int64, completed bool) error
	DeleteItem(ctx context.Context, id int64) error
	CheckConflict(ctx context.Context, ownerID int64, excludeID int64, proposed model.TimeInterval) (*model.ConflictReport, error)
	ImportItems(ctx context.Context, ownerID int64, records []*model.CalendarItem) (int, error)
}

type schedulingService interface {
	Suggest(ctx context.Context, req *scheduling.SuggestRequest) ([]*model.CandidateSlot, error)
}

type availabilityService interface {
	Participants(ctx context.Context, userIDs []int64, rng model.TimeInterval) ([]*model.Participant, error)
}

func NewApi(
	logger *zap.SugaredLogger,
	randSource io.Reader,
	jwts jwtManager,
	tokenParser tokenParser,
	refreshTokens refreshTokenRepository,
	db database.PGX,
	users userRepository,
	itemsService itemsService,
	schedulingService schedulingService,
	availability availabilityService,
) (*Api, error) {
	a := &Api{
		logger:            logger,
		randSource:        randSource,
		jwts:              jwts,
		tokenParser:       tokenParser,
		refreshTokens:     refreshTokens,
		db:                db,
		users:             users,
		itemsService:      itemsService,
		schedulingService: schedulingService,
		availability:      availability,
	}
	a.setupHandler()

	return a, nil
}

func (a *Api) setupHandler() {
	middleware.DefaultLogger = func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			a.logger.Debugw(r.URL.RequestURI(),
				"addr", r.RemoteAddr,
				"protocol", r.Proto,
				"method", r.Method,
			)
			next.ServeHTTP(w, r)
		})
	}

	r := chi.NewMux()

	r.Use(middleware.Logger, middleware.Recoverer, middleware.StripSlashes)
	r.NotFound(a.notFoundResponse)
	r.MethodNotAllowed(a.methodNotAllowedResponse)

	r.Get("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signin/google", a.signInGoogleHandler)
		r.Post("/refresh", a.refreshTokenHandler)
		r.Post("/logout", a.logoutUserHandler)
	})

	r.With(a.auth).Route("/", func(r chi.Router) {
		r.With(a.userCtx).Route("/user", func(r chi.Router) {
			r.Get("/", a.getUserHandler)
			r.Put("/push_token", a.updatePushTokenHandler)
			r.Get("/settings", a.getSettingsHandler)
			r.Put("/settings", a.setSettingsHandler)
		})

		r.Get("/users", a.searchUsersHandler)

		r.Route("/items", func(r chi.Router) {
			r.Post("/", a.createItemHandler)
			r.Get("/", a.getItemsHandler)
			r.Put("/{itemID}", a.updateItemHandler)
			r.Delete("/{itemID}", a.deleteItemHandler)
			r.Post("/{itemID}/complete", a.completeItemHandler)
		})

		r.Route("/schedule", func(r chi.Router) {
			r.Post("/suggest", a.suggestSlotsHandler)
			r.Post("/check", a.checkAvailabilityHandler)
		})

		r.Route("/interchange", func(r chi.Router) {
			r.Get("/export", a.exportItemsHandler)
			r.Post("/import", a.importItemsHandler)
		})
	})

	a.handler = r
}

func (a *Api) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}
