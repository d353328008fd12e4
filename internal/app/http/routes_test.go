package routes

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"orchestra-site/config"
	"orchestra-site/database"
	contentapi "orchestra-site/internal/api/content"
	"orchestra-site/internal/contentsync"
	"orchestra-site/internal/domain/content"
	"orchestra-site/internal/domain/users"
	"orchestra-site/internal/infra/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const pixelPNG = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

type server struct {
	router  *gin.Engine
	uploads string
}

func newServer(t *testing.T) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.JWT_SECRET = "routes-test-secret"

	db, err := database.Open("sqlite://" + filepath.Join(t.TempDir(), "site.db"))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.DB = db

	_, err = users.EnsureAdmin(db, "admin@orchestra.test", "conductor1")
	require.NoError(t, err)
	for email, role := range map[string]string{
		"lead@orchestra.test":     users.RoleLeadership,
		"director@orchestra.test": users.RoleDirector,
	} {
		hashed, err := bcrypt.GenerateFromPassword([]byte("password1"), bcrypt.MinCost)
		require.NoError(t, err)
		require.NoError(t, db.Create(&users.User{Name: role, Email: email, Password: string(hashed), Role: role}).Error)
	}

	uploads := t.TempDir()
	store, err := storage.NewLocal(uploads, "http://localhost:8080/uploads")
	require.NoError(t, err)

	log := zap.NewNop().Sugar()
	engine := contentsync.NewEngine(db, storage.NewImages(store, log), log)

	r := gin.New()
	RegisterRoutes(r, Deps{Engine: engine, Log: log, UploadsDir: store.Dir()})
	return &server{router: r, uploads: uploads}
}

func (s *server) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *server) login(t *testing.T, email, password string) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/auth/login", "", `{"email":"`+email+`","password":"`+password+`"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.NotEmpty(t, out.Token)
	return out.Token
}

func (s *server) uploadedFiles(t *testing.T) int {
	t.Helper()
	n := 0
	err := filepath.Walk(s.uploads, func(_ string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() {
			n++
		}
		return err
	})
	require.NoError(t, err)
	return n
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	s := newServer(t)
	w := s.do(t, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestLogin(t *testing.T) {
	s := newServer(t)

	w := s.do(t, http.MethodPost, "/api/auth/login", "", `{"email":"admin@orchestra.test","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodPost, "/api/auth/login", "", `{"email":"ADMIN@orchestra.test","password":"conductor1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	cookie := w.Result().Cookies()
	require.NotEmpty(t, cookie)
	assert.Equal(t, "session", cookie[0].Name)
	assert.True(t, cookie[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(cookie[0])
	me := httptest.NewRecorder()
	s.router.ServeHTTP(me, req)
	require.Equal(t, http.StatusOK, me.Code)
	body := decode(t, me)
	assert.Equal(t, "admin@orchestra.test", body["email"])
	assert.Equal(t, "admin", body["role"])
}

func TestGetContentIsPublicAndDefaults(t *testing.T) {
	s := newServer(t)

	w := s.do(t, http.MethodGet, "/api/content/concerts", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	doc := decode(t, w)["content"].(map[string]interface{})
	assert.EqualValues(t, 0, doc["version"])
	assert.Equal(t, contentsync.DefaultNoConcertText, doc["no_concert_text"])
	assert.Equal(t, []interface{}{}, doc["orchestra_groups"])

	w = s.do(t, http.MethodGet, "/api/content/blog", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPutRequiresAllowedRole(t *testing.T) {
	s := newServer(t)
	body := `{"hero_title":"Hi","hero_image":"` + pixelPNG + `","event_cards":[],"staff":[],"leadership_sections":[]}`

	w := s.do(t, http.MethodPut, "/api/content/homepage", "", body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	director := s.login(t, "director@orchestra.test", "password1")
	w = s.do(t, http.MethodPut, "/api/content/homepage", director, body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	var count int64
	require.NoError(t, database.DB.Model(&content.HomepageContent{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.Zero(t, s.uploadedFiles(t))

	// directors may edit resources
	w = s.do(t, http.MethodPut, "/api/content/resources", director, `{"page_title":"Resources"}`)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestPutSavesAndReturnsDocument(t *testing.T) {
	s := newServer(t)
	lead := s.login(t, "lead@orchestra.test", "password1")

	body := `{"content": {
		"page_title": "Awards <i>and</i> Honors",
		"achievements": [
			{"id": "tmp-1", "title": "State Champions", "image": "` + pixelPNG + `"},
			{"id": "tmp-2", "title": "Sweepstakes", "year": "2024"}
		],
		"images": []
	}}`
	w := s.do(t, http.MethodPut, "/api/content/awards", lead, body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	out := decode(t, w)
	assert.Equal(t, true, out["success"])
	assert.EqualValues(t, 1, out["contentId"])
	assert.EqualValues(t, 1, out["version"])

	doc := out["content"].(map[string]interface{})
	assert.Equal(t, "Awards and Honors", doc["page_title"])
	achievements := doc["achievements"].([]interface{})
	require.Len(t, achievements, 2)
	first := achievements[0].(map[string]interface{})
	assert.Regexp(t, `^http://localhost:8080/uploads/awards/achievement-[0-9a-f-]{36}\.png$`, first["image"])
	assert.IsType(t, float64(0), first["id"])
	assert.EqualValues(t, 1, first["order_number"])
	assert.Equal(t, 1, s.uploadedFiles(t))

	// the stored image is served back from /uploads
	path := strings.TrimPrefix(first["image"].(string), "http://localhost:8080")
	img := s.do(t, http.MethodGet, path, "", "")
	assert.Equal(t, http.StatusOK, img.Code)
}

func TestPutValidationErrors(t *testing.T) {
	s := newServer(t)
	admin := s.login(t, "admin@orchestra.test", "conductor1")

	w := s.do(t, http.MethodPut, "/api/content/trips", admin,
		`{"page_title":"","gallery_images":[{"image_url":"`+pixelPNG+`"}],"feature_items":[{"title":"x","icon":"rocket"}]}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	out := decode(t, w)
	assert.Equal(t, "Validation failed", out["error"])
	fields := map[string]bool{}
	for _, d := range out["details"].([]interface{}) {
		fields[d.(map[string]interface{})["field"].(string)] = true
	}
	assert.True(t, fields["page_title"])
	assert.True(t, fields["feature_items[0].icon"])
	assert.Zero(t, s.uploadedFiles(t))

	w = s.do(t, http.MethodPut, "/api/content/trips", admin, `{"page_title": `)
	require.Equal(t, http.StatusBadRequest, w.Code)
	out = decode(t, w)
	assert.Equal(t, "Validation failed", out["error"])
	assert.NotEmpty(t, out["details"])
}

func TestPutStaleVersionConflicts(t *testing.T) {
	s := newServer(t)
	admin := s.login(t, "admin@orchestra.test", "conductor1")

	w := s.do(t, http.MethodPut, "/api/content/resources", admin, `{"page_title":"One","version":0}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodPut, "/api/content/resources", admin, `{"page_title":"Two","version":0}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.NotEmpty(t, decode(t, w)["error"])

	w = s.do(t, http.MethodPut, "/api/content/resources", admin, `{"page_title":"Two","version":1}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPutRejectsOversizedBody(t *testing.T) {
	s := newServer(t)
	admin := s.login(t, "admin@orchestra.test", "conductor1")
	body := `{"page_title":"` + strings.Repeat("a", contentapi.MaxBodyBytes) + `"}`

	w := s.do(t, http.MethodPut, "/api/content/resources", admin, body)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	// a streamed body is cut off at the cap as well
	req := httptest.NewRequest(http.MethodPut, "/api/content/resources", io.MultiReader(strings.NewReader(body)))
	req.Header.Set("Authorization", "Bearer "+admin)
	req.ContentLength = -1
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	var count int64
	require.NoError(t, database.DB.Model(&content.ResourcesContent{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestAdminRoutes(t *testing.T) {
	s := newServer(t)
	admin := s.login(t, "admin@orchestra.test", "conductor1")
	lead := s.login(t, "lead@orchestra.test", "password1")

	w := s.do(t, http.MethodGet, "/api/admin/users", lead, "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodGet, "/api/admin/users", admin, "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 3)
	for _, u := range list {
		assert.NotContains(t, u, "password")
	}

	w = s.do(t, http.MethodPost, "/api/admin/users", admin,
		`{"name":"New Director","email":"new@orchestra.test","password":"baton2024","role":"director"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = s.do(t, http.MethodPost, "/api/admin/users", admin,
		`{"name":"Dup","email":"new@orchestra.test","password":"baton2024","role":"director"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	w = s.do(t, http.MethodPost, "/api/admin/users", admin,
		`{"name":"Bad","email":"bad@orchestra.test","password":"baton2024","role":"owner"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	s.do(t, http.MethodPut, "/api/content/resources", admin, `{"page_title":"Resources"}`)
	w = s.do(t, http.MethodGet, "/api/admin/content", admin, "")
	require.Equal(t, http.StatusOK, w.Code)
	var overview []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &overview))
	require.Len(t, overview, 6)
	for _, row := range overview {
		if row["type"] == "resources" {
			assert.EqualValues(t, 1, row["version"])
			assert.Len(t, row["editors"], 3)
		}
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s := newServer(t)
	w := s.do(t, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}
