package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/kanban-board-api/internal/config"
	"github.com/yukikurage/kanban-board-api/internal/database"
	"github.com/yukikurage/kanban-board-api/internal/models"
	"github.com/yukikurage/kanban-board-api/internal/repository"
	"github.com/yukikurage/kanban-board-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const prefix = "/api/v1"

type fixedChat struct{ content string }

func (f fixedChat) CreateChatCompletion(context.Context, openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: f.content}}},
	}, nil
}

type APITestSuite struct {
	suite.Suite
	db     *gorm.DB
	cfg    *config.Config
	engine *gin.Engine

	user   *models.User
	board  models.Board
	column models.Column
	label  models.Label
	card   models.Card
}

func (s *APITestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	name := regexp.MustCompile(`[^A-Za-z0-9_]`).ReplaceAllString(s.T().Name(), "_")
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	s.Require().NoError(err)
	database.SetDB(db)
	s.Require().NoError(database.Migrate())
	s.db = db

	s.cfg = &config.Config{
		APIPrefix:     prefix,
		SessionStore:  "cookie",
		SessionSecret: "test-secret",
		GinMode:       gin.TestMode,
	}
	s.engine = s.newEngine(nil)

	users := services.NewUserService(repository.NewUserRepository(db))
	s.user, err = users.CreateUser(services.CreateUserInput{Username: "alice", Email: "alice@example.com", Password: "password123"})
	s.Require().NoError(err)

	s.board = models.Board{Title: "Roadmap", CreatedByID: s.user.ID}
	s.Require().NoError(db.Omit("CreatedBy").Create(&s.board).Error)
	s.column = models.Column{BoardID: s.board.ID, Title: "Todo", Position: 1, HeaderColor: "#00FF00"}
	s.Require().NoError(db.Omit("Board").Create(&s.column).Error)
	s.label = models.Label{BoardID: s.board.ID, Title: "Bug", Color: "#FF0000"}
	s.Require().NoError(db.Omit("Board").Create(&s.label).Error)
	s.card = models.Card{BoardID: s.board.ID, ColumnID: &s.column.ID, Title: "Fix login", Description: "Broken", CreatedByID: s.user.ID}
	s.Require().NoError(repository.NewCardRepository(db).Create(&s.card, []uint64{s.label.ID}, []uint64{s.user.ID}))
}

func (s *APITestSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	s.Require().NoError(err)
	s.Require().NoError(sqlDB.Close())
}

func (s *APITestSuite) newEngine(ai *services.AIService) *gin.Engine {
	engine, err := New(Options{Config: s.cfg, DB: s.db, AI: ai})
	s.Require().NoError(err)
	return engine
}

func (s *APITestSuite) request(method, path string, payload any) *httptest.ResponseRecorder {
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		s.Require().NoError(err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, prefix+path, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *APITestSuite) decode(w *httptest.ResponseRecorder) map[string]any {
	var out map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func (s *APITestSuite) count(model any) int64 {
	var n int64
	s.Require().NoError(s.db.Model(model).Count(&n).Error)
	return n
}

func (s *APITestSuite) path(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}

func (s *APITestSuite) TestCreateIncrementsRowCount() {
	cases := []struct {
		name    string
		model   any
		path    string
		payload map[string]any
	}{
		{"board", &models.Board{}, "/boards/", map[string]any{"title": "New board", "created_by": s.user.ID}},
		{"column", &models.Column{}, s.path("/boards/%d/columns/", s.board.ID), map[string]any{"title": "Doing", "position": 2}},
		{"label", &models.Label{}, s.path("/boards/%d/labels/", s.board.ID), map[string]any{"title": "Feature", "color": "#00ff00"}},
		{"card", &models.Card{}, s.path("/boards/%d/cards/", s.board.ID), map[string]any{
			"title": "Write docs", "description": "All of them", "created_by": s.user.ID,
			"column": s.column.ID, "labels": []uint64{s.label.ID}, "assignees": []uint64{s.user.ID},
		}},
		{"comment", &models.Comment{}, s.path("/boards/%d/cards/%d/comments/", s.board.ID, s.card.ID), map[string]any{
			"message": "Looks good", "created_by": s.user.ID,
		}},
	}

	for _, tc := range cases {
		before := s.count(tc.model)
		w := s.request(http.MethodPost, tc.path, tc.payload)
		s.Require().Equal(http.StatusCreated, w.Code, "%s: %s", tc.name, w.Body.String())
		s.Equal(before+1, s.count(tc.model), tc.name)

		body := s.decode(w)
		s.NotZero(body["id"], tc.name)
	}
}

func (s *APITestSuite) TestCreateCard_ReturnsIDs() {
	w := s.request(http.MethodPost, s.path("/boards/%d/cards/", s.board.ID), map[string]any{
		"title": "Write docs", "description": "Every endpoint", "created_by": s.user.ID,
		"labels": []uint64{s.label.ID}, "assignees": []uint64{s.user.ID},
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	body := s.decode(w)
	s.Nil(body["column"])
	s.Equal([]any{float64(s.label.ID)}, body["labels"])
	assignees := body["assignees"].([]any)
	s.Require().Len(assignees, 1)
	s.Equal("alice", assignees[0].(map[string]any)["username"])
	s.Equal(float64(s.board.ID), body["board"])
}

func (s *APITestSuite) TestCardLabelsAreRequired() {
	w := s.request(http.MethodPost, s.path("/boards/%d/cards/", s.board.ID), map[string]any{
		"title": "No labels", "description": "d", "created_by": s.user.ID,
	})
	s.Require().Equal(http.StatusBadRequest, w.Code, w.Body.String())
	s.Contains(w.Body.String(), `"labels":["This field is required."]`)

	w = s.request(http.MethodPut, s.path("/boards/%d/cards/%d/", s.board.ID, s.card.ID), map[string]any{
		"title": "No labels", "description": "d", "created_by": s.user.ID,
	})
	s.Require().Equal(http.StatusBadRequest, w.Code, w.Body.String())
	s.Contains(w.Body.String(), `"labels":["This field is required."]`)

	w = s.request(http.MethodPut, s.path("/boards/%d/cards/%d/", s.board.ID, s.card.ID), map[string]any{
		"title": "Cleared", "description": "d", "created_by": s.user.ID, "labels": []uint64{},
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.Equal([]any{}, s.decode(w)["labels"])
}

func (s *APITestSuite) TestBlankTitleIsRejected() {
	w := s.request(http.MethodPost, s.path("/boards/%d/columns/", s.board.ID), map[string]any{"title": "  "})
	s.Require().Equal(http.StatusBadRequest, w.Code, w.Body.String())
	s.Contains(w.Body.String(), `"title":["This field may not be blank."]`)
}

func (s *APITestSuite) TestUpdateReturnsSentFields() {
	w := s.request(http.MethodPut, s.path("/boards/%d/", s.board.ID), map[string]any{
		"title": "Renamed", "created_by": s.user.ID,
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.Equal("Renamed", s.decode(w)["title"])

	w = s.request(http.MethodPut, s.path("/boards/%d/columns/1/", s.board.ID), map[string]any{"title": "Backlog"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	column := s.decode(w)
	s.Equal("Backlog", column["title"])
	s.Equal(float64(1), column["position"])
	s.Equal("#00FF00", column["header_color"])

	w = s.request(http.MethodPut, s.path("/boards/%d/labels/%d/", s.board.ID, s.label.ID), map[string]any{
		"title": "Defect", "color": "#123",
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	label := s.decode(w)
	s.Equal("Defect", label["title"])
	s.Equal("#123", label["color"])

	w = s.request(http.MethodPut, s.path("/boards/%d/cards/%d/", s.board.ID, s.card.ID), map[string]any{
		"title": "Fix logout", "description": "Also broken", "created_by": s.user.ID,
		"labels": []uint64{s.label.ID},
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	card := s.decode(w)
	s.Equal("Fix logout", card["title"])
	s.Equal("Also broken", card["description"])
	s.Equal(float64(s.column.ID), card["column"], "column is kept when absent")
	s.Equal([]any{float64(s.label.ID)}, card["labels"])
	s.NotNil(card["updated_at"])

	var stored models.Board
	s.Require().NoError(s.db.First(&stored, s.board.ID).Error)
	s.Equal("Renamed", stored.Title)
}

func (s *APITestSuite) TestDeleteDecrementsRowCount() {
	comment := models.Comment{CardID: s.card.ID, Message: "bye", CreatedByID: s.user.ID}
	s.Require().NoError(s.db.Omit("Card", "CreatedBy", "UpdatedBy").Create(&comment).Error)

	cases := []struct {
		name  string
		model any
		path  string
	}{
		{"comment", &models.Comment{}, s.path("/boards/%d/cards/%d/comments/%d/", s.board.ID, s.card.ID, comment.ID)},
		{"card", &models.Card{}, s.path("/boards/%d/cards/%d/", s.board.ID, s.card.ID)},
		{"label", &models.Label{}, s.path("/boards/%d/labels/%d/", s.board.ID, s.label.ID)},
		{"column", &models.Column{}, s.path("/boards/%d/columns/1/", s.board.ID)},
		{"board", &models.Board{}, s.path("/boards/%d/", s.board.ID)},
	}

	for _, tc := range cases {
		before := s.count(tc.model)
		w := s.request(http.MethodDelete, tc.path, nil)
		s.Require().Equal(http.StatusNoContent, w.Code, "%s: %s", tc.name, w.Body.String())
		s.Empty(w.Body.String(), tc.name)
		s.Equal(before-1, s.count(tc.model), tc.name)
	}
}

func (s *APITestSuite) TestDeleteBoard_Cascades() {
	w := s.request(http.MethodDelete, s.path("/boards/%d/", s.board.ID), nil)
	s.Require().Equal(http.StatusNoContent, w.Code)

	s.Zero(s.count(&models.Column{}))
	s.Zero(s.count(&models.Card{}))
	s.Zero(s.count(&models.Label{}))
}

func (s *APITestSuite) TestCommentUpdatedAtFormat() {
	comment := models.Comment{CardID: s.card.ID, Message: "first", CreatedByID: s.user.ID}
	s.Require().NoError(s.db.Omit("Card", "CreatedBy", "UpdatedBy").Create(&comment).Error)

	path := s.path("/boards/%d/cards/%d/comments/%d/", s.board.ID, s.card.ID, comment.ID)
	w := s.request(http.MethodPut, path, map[string]any{
		"message":    "edited",
		"created_by": s.user.ID,
		"updated_by": s.user.ID,
		"updated_at": "2017-12-17 06:26:53",
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	body := s.decode(w)
	s.Equal("edited", body["message"])
	s.Equal("2017-12-17T06:26:53Z", body["updated_at"])
	s.Equal(float64(s.user.ID), body["updated_by"])

	w = s.request(http.MethodGet, path, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("2017-12-17T06:26:53Z", s.decode(w)["updated_at"])
}

func (s *APITestSuite) TestNotFound() {
	paths := []string{
		s.path("/boards/%d/columns/99/", s.board.ID),
		s.path("/boards/%d/columns/-1/", s.board.ID),
		s.path("/boards/%d/columns/abc/", s.board.ID),
		"/boards/999/",
		"/boards/999/columns/",
		"/boards/abc/",
		s.path("/boards/%d/labels/999/", s.board.ID),
		s.path("/boards/%d/cards/999/", s.board.ID),
		s.path("/boards/%d/cards/%d/comments/999/", s.board.ID, s.card.ID),
	}
	for _, p := range paths {
		w := s.request(http.MethodGet, p, nil)
		s.Equal(http.StatusNotFound, w.Code, p)
		s.Equal("NOT_FOUND", s.decode(w)["code"], p)
	}
}

func (s *APITestSuite) TestLookupsAreScopedToBoard() {
	other := models.Board{Title: "Other", CreatedByID: s.user.ID}
	s.Require().NoError(s.db.Omit("CreatedBy").Create(&other).Error)

	w := s.request(http.MethodGet, s.path("/boards/%d/labels/%d/", other.ID, s.label.ID), nil)
	s.Equal(http.StatusNotFound, w.Code)
	w = s.request(http.MethodGet, s.path("/boards/%d/cards/%d/", other.ID, s.card.ID), nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *APITestSuite) TestValidationErrors() {
	w := s.request(http.MethodPost, "/boards/", map[string]any{"title": ""})
	s.Require().Equal(http.StatusBadRequest, w.Code)
	body := s.decode(w)
	s.Equal("INVALID_INPUT", body["code"])
	details := body["details"].(map[string]any)
	s.Contains(details, "created_by")

	w = s.request(http.MethodPost, s.path("/boards/%d/labels/", s.board.ID), map[string]any{"title": "x", "color": "red"})
	s.Require().Equal(http.StatusBadRequest, w.Code)
	s.Contains(w.Body.String(), "Enter a valid color.")

	w = s.request(http.MethodPost, "/boards/", map[string]any{"title": "t", "created_by": 999})
	s.Require().Equal(http.StatusBadRequest, w.Code)
	s.Contains(w.Body.String(), `Invalid pk \"999\" - object does not exist.`)

	w = s.request(http.MethodPost, s.path("/boards/%d/cards/", s.board.ID), map[string]any{
		"title": "t", "description": "d", "created_by": s.user.ID, "column": "abc",
	})
	s.Require().Equal(http.StatusBadRequest, w.Code)
	s.Contains(w.Body.String(), "column")
}

func (s *APITestSuite) TestListEndpoints() {
	w := s.request(http.MethodGet, "/boards/", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var boards []map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &boards))
	s.Require().Len(boards, 1)
	columns := boards[0]["column_set"].([]any)
	s.Require().Len(columns, 1)
	cards := columns[0].(map[string]any)["card_set"].([]any)
	s.Len(cards, 1)

	w = s.request(http.MethodGet, s.path("/boards/%d/cards/", s.board.ID), nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var cardList []map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &cardList))
	s.Require().Len(cardList, 1)
	assignees := cardList[0]["assignees"].([]any)
	s.Equal("alice", assignees[0].(map[string]any)["username"])
}

func (s *APITestSuite) TestCardSuggestions() {
	w := s.request(http.MethodPost, s.path("/boards/%d/card-suggestions/", s.board.ID), map[string]any{"text": "plan"})
	s.Equal(http.StatusServiceUnavailable, w.Code)

	ai := services.NewAIServiceWithClient(fixedChat{content: `[{"title":"Plan release","description":"dates","labels":["bug","unknown"]}]`})
	s.engine = s.newEngine(ai)

	w = s.request(http.MethodPost, s.path("/boards/%d/card-suggestions/", s.board.ID), map[string]any{"text": "plan"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	cards := s.decode(w)["cards"].([]any)
	s.Require().Len(cards, 1)
	card := cards[0].(map[string]any)
	s.Equal("Plan release", card["title"])
	s.Equal([]any{"Bug"}, card["labels"])
}

func (s *APITestSuite) TestTokenAuth() {
	s.cfg.RequireAuth = true
	s.engine = s.newEngine(nil)

	w := s.request(http.MethodGet, "/boards/", nil)
	s.Equal(http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, prefix+"/boards/", nil)
	req.Header.Set("Authorization", "Token "+s.user.APIToken)
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	s.Equal(http.StatusOK, rec.Code)

	w = s.request(http.MethodPost, "/api-token-auth/", map[string]any{"username": "alice", "password": "password123"})
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal(s.user.APIToken, s.decode(w)["token"])
}

func (s *APITestSuite) TestHealth() {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"status":"ok"}`, w.Body.String())
}

func TestAPITestSuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}
