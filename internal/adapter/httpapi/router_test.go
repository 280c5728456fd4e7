package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/nplqhub/revise/internal/adapter/docstore"
	adapterrepo "github.com/nplqhub/revise/internal/adapter/repository"
	"github.com/nplqhub/revise/internal/entity"
	"github.com/nplqhub/revise/internal/usecase"
	"github.com/nplqhub/revise/internal/usecase/catalog"
)

type testAPI struct {
	router   *gin.Engine
	sessions *SessionManager
	ticker   *usecase.AccrualTicker
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	store := docstore.NewMemoryStore()
	contentRepo := adapterrepo.NewContentRepository(store, logger)
	progressRepo := adapterrepo.NewProgressRepository(store)
	userRepo := adapterrepo.NewUserRepository(store)
	teamRepo := adapterrepo.NewTeamRepository(store)

	progress := usecase.NewProgressUsecase(progressRepo)
	auth := usecase.NewAuthUsecase(userRepo, "test-secret", time.Hour)
	admin := usecase.NewAdminUsecase(userRepo, teamRepo, contentRepo)
	catalogSvc := catalog.NewService(contentRepo, contentRepo)

	// A one-hour interval keeps the ticker out of these tests.
	ticker := usecase.NewAccrualTicker(progress, logger, time.Hour)
	t.Cleanup(ticker.Stop)
	sessions := NewSessionManager(contentRepo, progress, ticker, logger, 0)
	t.Cleanup(sessions.Stop)

	ctx := context.Background()
	for _, user := range []entity.User{
		{Username: "alice", Password: "pw", Role: entity.RoleStudent},
		{Username: "admin", Password: "nplq2024", Role: entity.RoleAdmin},
	} {
		user := user
		user.Normalize()
		if err := userRepo.Create(ctx, &user); err != nil {
			t.Fatalf("create user: %v", err)
		}
	}
	card := entity.Flashcard{ID: "fc1", Section: "Section 1", Question: "What does NPLQ stand for?", Answer: "National Pool Lifeguard Qualification"}
	if err := contentRepo.SaveFlashcard(ctx, &card); err != nil {
		t.Fatalf("seed flashcard: %v", err)
	}
	question := entity.QuizQuestion{ID: "q2", Section: "Section 1", Kind: entity.KindFillInBlank, Prompt: "The recovery position is used for an unconscious _____ casualty.", AnswerText: "breathing"}
	if err := contentRepo.SaveQuizQuestion(ctx, &question); err != nil {
		t.Fatalf("seed quiz question: %v", err)
	}

	authMW := NewAuthMiddleware(auth, logger)
	router := NewRouter(RouterConfig{
		Logger:          logger,
		Origins:         []string{"http://localhost:5173"},
		AuthMiddleware:  authMW,
		AuthHandler:     NewAuthHandler(auth),
		ProgressHandler: NewProgressHandler(progress),
		ContentHandler:  NewContentHandler(contentRepo),
		SessionHandler:  NewSessionHandler(sessions),
		AdminHandler:    NewAdminHandler(admin, catalogSvc),
	})
	return &testAPI{router: router, sessions: sessions, ticker: ticker}
}

func (api *testAPI) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	api.router.ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("decode response %q: %v", rec.Body.String(), err)
		}
	}
	return rec, decoded
}

func (api *testAPI) login(t *testing.T, path, username, password string) string {
	t.Helper()
	rec, body := api.do(t, http.MethodPost, path, "", gin.H{"username": username, "password": password})
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: status %d body %s", username, rec.Code, rec.Body.String())
	}
	token, _ := body["data"].(map[string]any)["token"].(string)
	if token == "" {
		t.Fatalf("login %s returned no token", username)
	}
	return token
}

func data(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	inner, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("response has no data object: %v", body)
	}
	return inner
}

func TestLoginRequired(t *testing.T) {
	api := newTestAPI(t)
	rec, _ := api.do(t, http.MethodGet, "/api/progress/summary", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated summary: status %d, want 401", rec.Code)
	}
}

func TestLoginChannels(t *testing.T) {
	api := newTestAPI(t)

	rec, _ := api.do(t, http.MethodPost, "/api/login", "", gin.H{"username": "admin", "password": "nplq2024"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("admin on student channel: status %d, want 401", rec.Code)
	}
	rec, _ = api.do(t, http.MethodPost, "/api/admin/login", "", gin.H{"username": "alice", "password": "pw"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("student on admin channel: status %d, want 401", rec.Code)
	}
	api.login(t, "/api/login", "alice", "pw")
	api.login(t, "/api/admin/login", "admin", "nplq2024")
}

func TestQuizSessionFlow(t *testing.T) {
	api := newTestAPI(t)
	token := api.login(t, "/api/login", "alice", "pw")

	rec, body := api.do(t, http.MethodPost, "/api/sessions", token, gin.H{"mode": "quizzes"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("open session: status %d body %s", rec.Code, rec.Body.String())
	}
	sessionID, _ := data(t, body)["id"].(string)
	if sessionID == "" {
		t.Fatal("open session returned no id")
	}

	// Answer is case-insensitive and whitespace-tolerant.
	rec, body = api.do(t, http.MethodPost, "/api/sessions/"+sessionID+"/submit", token, gin.H{"text": "  Breathing "})
	if rec.Code != http.StatusOK {
		t.Fatalf("submit: status %d body %s", rec.Code, rec.Body.String())
	}
	result := data(t, body)
	if result["correct"] != true {
		t.Fatalf("submit: correct = %v, want true", result["correct"])
	}
	view := result["view"].(map[string]any)
	if view["feedback"] != usecase.FeedbackCorrect {
		t.Fatalf("submit: feedback = %v", view["feedback"])
	}
	if view["streak"] != float64(1) {
		t.Fatalf("submit: streak = %v, want 1", view["streak"])
	}

	rec, body = api.do(t, http.MethodGet, "/api/progress/summary", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("summary: status %d", rec.Code)
	}
	summary := data(t, body)
	if summary["quizzesCompleted"] != float64(1) || summary["streak"] != float64(1) {
		t.Fatalf("summary after correct answer: %v", summary)
	}

	rec, _ = api.do(t, http.MethodDelete, "/api/sessions/"+sessionID, token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("close session: status %d", rec.Code)
	}
	rec, _ = api.do(t, http.MethodGet, "/api/sessions/"+sessionID, token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("closed session lookup: status %d, want 404", rec.Code)
	}
}

func TestFlashcardRevealAndComplete(t *testing.T) {
	api := newTestAPI(t)
	token := api.login(t, "/api/login", "alice", "pw")

	_, body := api.do(t, http.MethodPost, "/api/sessions", token, gin.H{"mode": "flashcards"})
	sessionID := data(t, body)["id"].(string)

	_, body = api.do(t, http.MethodGet, "/api/sessions/"+sessionID, token, nil)
	item := data(t, body)["item"].(map[string]any)
	if _, leaked := item["answer"]; leaked {
		t.Fatal("answer exposed before reveal")
	}

	_, body = api.do(t, http.MethodPost, "/api/sessions/"+sessionID+"/reveal", token, nil)
	item = data(t, body)["item"].(map[string]any)
	if item["answer"] != "National Pool Lifeguard Qualification" {
		t.Fatalf("revealed answer = %v", item["answer"])
	}

	rec, body := api.do(t, http.MethodPost, "/api/sessions/"+sessionID+"/complete", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("complete: status %d", rec.Code)
	}
	if got := data(t, body)["completedCount"]; got != float64(1) {
		t.Fatalf("completedCount = %v, want 1", got)
	}
}

func TestSessionOwnership(t *testing.T) {
	api := newTestAPI(t)
	alice := api.login(t, "/api/login", "alice", "pw")
	admin := api.login(t, "/api/admin/login", "admin", "nplq2024")

	_, body := api.do(t, http.MethodPost, "/api/sessions", alice, gin.H{"mode": "flashcards"})
	sessionID := data(t, body)["id"].(string)

	rec, _ := api.do(t, http.MethodGet, "/api/sessions/"+sessionID, admin, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("foreign session lookup: status %d, want 404", rec.Code)
	}
}

func TestAdminGuard(t *testing.T) {
	api := newTestAPI(t)
	student := api.login(t, "/api/login", "alice", "pw")
	admin := api.login(t, "/api/admin/login", "admin", "nplq2024")

	rec, _ := api.do(t, http.MethodGet, "/api/admin/users", student, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("student on admin route: status %d, want 403", rec.Code)
	}

	rec, body := api.do(t, http.MethodGet, "/api/admin/users", admin, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin list users: status %d", rec.Code)
	}
	users := body["data"].([]any)
	if len(users) != 2 {
		t.Fatalf("listed %d users, want 2", len(users))
	}
	for _, raw := range users {
		if _, leaked := raw.(map[string]any)["password"]; leaked {
			t.Fatal("password leaked in user listing")
		}
	}

	rec, _ = api.do(t, http.MethodPut, "/api/admin/flashcards", admin, gin.H{
		"id": "fc2", "section": "Section 2", "question": "How long to check breathing?", "answer": "No more than 10 seconds.",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("save flashcard: status %d body %s", rec.Code, rec.Body.String())
	}
}

func TestProgressReset(t *testing.T) {
	api := newTestAPI(t)
	token := api.login(t, "/api/login", "alice", "pw")

	_, body := api.do(t, http.MethodPost, "/api/sessions", token, gin.H{"mode": "quizzes"})
	sessionID := data(t, body)["id"].(string)
	api.do(t, http.MethodPost, "/api/sessions/"+sessionID+"/submit", token, gin.H{"text": "breathing"})

	rec, _ := api.do(t, http.MethodPost, "/api/progress/reset", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("reset: status %d", rec.Code)
	}
	_, body = api.do(t, http.MethodGet, "/api/progress/summary", token, nil)
	summary := data(t, body)
	if summary["quizzesCompleted"] != float64(0) || summary["secondsSpent"] != float64(0) {
		t.Fatalf("summary after reset: %v", summary)
	}
}
