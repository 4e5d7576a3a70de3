package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"notification-center/internal/models"
	"notification-center/internal/repositories"
	"notification-center/internal/services"
	"notification-center/validators"

	"github.com/labstack/echo/v4"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	db, err := gorm.Open(dsn, &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Notification{}, &models.NotificationViewer{}, &models.FollowerResource{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// setupTestAPI wires the handlers against an in-memory database, replacing
// the JWT middleware with one that trusts the X-User-ID header.
func setupTestAPI(t *testing.T) (*echo.Echo, *gorm.DB, *services.FeedRenderer) {
	t.Helper()
	db := newTestDB(t)

	userRepo := repositories.NewPostgresUserRepository(db)
	followerRepo := repositories.NewPostgresFollowerRepository(db)
	notificationRepo := repositories.NewPostgresNotificationRepository(db)
	resolver := services.NewRecipientResolver(followerRepo)
	fanout := services.NewFanoutService(resolver, notificationRepo)
	feed := services.NewFeedRenderer(notificationRepo, "Test System")

	e := echo.New()
	e.Validator = validators.NewValidator()

	api := e.Group("/api/v1")
	api.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var userID uint
			fmt.Sscanf(c.Request().Header.Get("X-User-ID"), "%d", &userID)
			c.Set("user", &models.JwtCustomClaims{UserID: userID})
			return next(c)
		}
	})

	NewFollowHandler(followerRepo).RegisterFollowRoutes(api)
	NewNotificationHandler(notificationRepo, userRepo, fanout, feed).RegisterNotificationRoutes(api)

	return e, db, feed
}

func doRequest(t *testing.T, e *echo.Echo, method, path, userID, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("X-User-ID", userID)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestDispatchAndFeedRoundTrip(t *testing.T) {
	e, db, feed := setupTestAPI(t)

	db.Create(&models.User{ID: 42, FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"})
	feed.Register("comment_added", func(view *models.NotificationViewer, systemName string) (string, error) {
		return "rendered", nil
	})

	rec := doRequest(t, e, http.MethodPost, "/api/v1/notifications/dispatch", "42",
		`{"action_key":"comment_added","icon_key":"icon-comment","include_user_ids":[5,8]}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("dispatch status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, e, http.MethodGet, "/api/v1/notifications/unread-count", "5", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("unread-count status = %d", rec.Code)
	}
	var countResp struct {
		Data struct {
			Count int64 `json:"count"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &countResp); err != nil {
		t.Fatalf("decode unread-count: %v", err)
	}
	if countResp.Data.Count != 1 {
		t.Fatalf("expected 1 unread, got %d", countResp.Data.Count)
	}

	rec = doRequest(t, e, http.MethodGet, "/api/v1/notifications?page=1&limit=10", "5", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("feed status = %d, body %s", rec.Code, rec.Body.String())
	}
	var feedResp struct {
		Data struct {
			Views map[string]string `json:"views"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &feedResp); err != nil {
		t.Fatalf("decode feed: %v", err)
	}
	if len(feedResp.Data.Views) != 1 {
		t.Fatalf("expected 1 rendered view, got %v", feedResp.Data.Views)
	}

	// viewing the page marked the row as read
	rec = doRequest(t, e, http.MethodGet, "/api/v1/notifications/unread-count", "5", "")
	if err := json.Unmarshal(rec.Body.Bytes(), &countResp); err != nil {
		t.Fatalf("decode unread-count: %v", err)
	}
	if countResp.Data.Count != 0 {
		t.Fatalf("expected 0 unread after viewing, got %d", countResp.Data.Count)
	}
}

func TestDispatchWithNoRecipientsReturnsNoContent(t *testing.T) {
	e, db, _ := setupTestAPI(t)
	db.Create(&models.User{ID: 42, FirstName: "Ada", Email: "ada@example.com"})

	// actor is the only include, so the recipient set resolves empty
	rec := doRequest(t, e, http.MethodPost, "/api/v1/notifications/dispatch", "42",
		`{"action_key":"comment_added","include_user_ids":[42]}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
	}

	var total int64
	db.Model(&models.Notification{}).Count(&total)
	if total != 0 {
		t.Fatalf("expected no notification rows, got %d", total)
	}
}

func TestDispatchValidatesPayload(t *testing.T) {
	e, _, _ := setupTestAPI(t)

	rec := doRequest(t, e, http.MethodPost, "/api/v1/notifications/dispatch", "42",
		`{"icon_key":"icon-comment"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing action_key, got %d", rec.Code)
	}
}

func TestFeedPageOutOfRangeReturnsNotFound(t *testing.T) {
	e, _, _ := setupTestAPI(t)

	rec := doRequest(t, e, http.MethodGet, "/api/v1/notifications?page=7&limit=10", "5", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestFollowRoutes(t *testing.T) {
	e, _, _ := setupTestAPI(t)

	rec := doRequest(t, e, http.MethodPost, "/api/v1/resources/wiki/7/follow", "5", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("follow status = %d: %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, e, http.MethodGet, "/api/v1/resources/wiki/7/follow", "5", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get relation status = %d", rec.Code)
	}

	rec = doRequest(t, e, http.MethodDelete, "/api/v1/resources/wiki/7/follow", "5", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("unfollow status = %d", rec.Code)
	}

	rec = doRequest(t, e, http.MethodDelete, "/api/v1/resources/wiki/7/follow", "5", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second unfollow status = %d, want 404", rec.Code)
	}
}

func TestMarkViewedEndpoint(t *testing.T) {
	e, db, _ := setupTestAPI(t)
	db.Create(&models.User{ID: 42, FirstName: "Ada", Email: "ada@example.com"})

	rec := doRequest(t, e, http.MethodPost, "/api/v1/notifications/dispatch", "42",
		`{"action_key":"comment_added","include_user_ids":[5]}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("dispatch status = %d", rec.Code)
	}

	var viewer models.NotificationViewer
	if err := db.First(&viewer).Error; err != nil {
		t.Fatalf("find viewer: %v", err)
	}

	body := fmt.Sprintf(`{"viewer_ids":[%d]}`, viewer.ID)
	rec = doRequest(t, e, http.MethodPut, "/api/v1/notifications/viewed", "5", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("mark viewed status = %d: %s", rec.Code, rec.Body.String())
	}

	if err := db.First(&viewer, viewer.ID).Error; err != nil {
		t.Fatalf("reload viewer: %v", err)
	}
	if !viewer.Status {
		t.Fatal("viewer row not marked viewed")
	}
}
