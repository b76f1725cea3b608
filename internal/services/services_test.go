package services

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/kanban-board-api/internal/models"
	"github.com/yukikurage/kanban-board-api/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type stubChat struct {
	content string
	err     error
	prompts []string
}

func (s *stubChat) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	s.prompts = append(s.prompts, req.Messages[0].Content)
	if s.err != nil {
		return openai.ChatCompletionResponse{}, s.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: s.content}}},
	}, nil
}

type ServiceTestSuite struct {
	suite.Suite
	db       *gorm.DB
	users    *UserService
	boards   *BoardService
	columns  *ColumnService
	labels   *LabelService
	cards    *CardService
	comments *CommentService
	chat     *stubChat

	alice models.User
	board *models.Board
}

func (s *ServiceTestSuite) SetupTest() {
	name := regexp.MustCompile(`[^A-Za-z0-9_]`).ReplaceAllString(s.T().Name(), "_")
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	s.Require().NoError(err)
	s.Require().NoError(db.AutoMigrate(
		&models.User{}, &models.Board{}, &models.Column{}, &models.Label{}, &models.Card{}, &models.Comment{},
	))
	s.db = db

	userRepo := repository.NewUserRepository(db)
	columnRepo := repository.NewColumnRepository(db)
	labelRepo := repository.NewLabelRepository(db)
	s.chat = &stubChat{}

	s.users = NewUserService(userRepo)
	s.boards = NewBoardService(repository.NewBoardRepository(db), userRepo)
	s.columns = NewColumnService(columnRepo)
	s.labels = NewLabelService(labelRepo)
	s.cards = NewCardService(repository.NewCardRepository(db), columnRepo, labelRepo, userRepo, NewAIServiceWithClient(s.chat))
	s.comments = NewCommentService(repository.NewCommentRepository(db), userRepo)

	alice, err := s.users.CreateUser(CreateUserInput{Username: "alice", Email: "alice@example.com", Password: "password123"})
	s.Require().NoError(err)
	s.alice = *alice

	s.board, err = s.boards.Create(BoardInput{Title: "Roadmap", CreatedBy: alice.ID})
	s.Require().NoError(err)
}

func (s *ServiceTestSuite) TearDownTest() {
	sqlDB, _ := s.db.DB()
	_ = sqlDB.Close()
}

func (s *ServiceTestSuite) fields(err error) map[string][]string {
	var verr *ValidationError
	s.Require().ErrorAs(err, &verr)
	return verr.Fields
}

func (s *ServiceTestSuite) TestUser_CreateAndAuthenticate() {
	s.NotEmpty(s.alice.APIToken)
	s.NotEqual("password123", s.alice.PasswordHash)

	_, err := s.users.CreateUser(CreateUserInput{Username: "alice", Password: "password123"})
	s.ErrorIs(err, ErrUsernameTaken)

	_, err = s.users.CreateUser(CreateUserInput{Username: "bob", Password: "short"})
	s.ErrorIs(err, ErrPasswordTooShort)

	user, err := s.users.Authenticate("alice", "password123")
	s.Require().NoError(err)
	s.Equal(s.alice.ID, user.ID)

	_, err = s.users.Authenticate("alice", "wrong-password")
	s.ErrorIs(err, ErrInvalidCredentials)

	user, err = s.users.FindByToken(s.alice.APIToken)
	s.Require().NoError(err)
	s.Equal("alice", user.Username)

	_, err = s.users.FindByToken("")
	s.ErrorIs(err, ErrUserNotFound)
}

func (s *ServiceTestSuite) TestBoard_ValidatesCreator() {
	_, err := s.boards.Create(BoardInput{Title: "  ", CreatedBy: 999})
	s.Equal(map[string][]string{
		"title":      {"This field may not be blank."},
		"created_by": {`Invalid pk "999" - object does not exist.`},
	}, s.fields(err))

	_, err = s.boards.Get(999)
	s.ErrorIs(err, ErrBoardNotFound)
	s.ErrorIs(s.boards.Delete(999), ErrBoardNotFound)
}

func (s *ServiceTestSuite) TestColumn_DefaultsAndPartialReplace() {
	column, err := s.columns.Create(s.board.ID, ColumnInput{Title: "Todo"})
	s.Require().NoError(err)
	s.Equal(1, column.Position)
	s.Equal("#00FF00", column.HeaderColor)

	color := "#123"
	updated, err := s.columns.Replace(s.board.ID, 1, ColumnInput{Title: "Doing", HeaderColor: &color})
	s.Require().NoError(err)
	s.Equal("Doing", updated.Title)
	s.Equal(1, updated.Position, "absent position keeps its value")
	s.Equal("#123", updated.HeaderColor)

	zero := 0
	_, err = s.columns.Replace(s.board.ID, 1, ColumnInput{Title: "Doing", Position: &zero})
	s.Require().NoError(err)
	_, err = s.columns.Get(s.board.ID, 1)
	s.ErrorIs(err, ErrColumnNotFound)
	_, err = s.columns.Get(s.board.ID, 0)
	s.NoError(err)

	bad := "green"
	_, err = s.columns.Create(s.board.ID, ColumnInput{Title: "X", HeaderColor: &bad})
	s.Equal(map[string][]string{"header_color": {"Enter a valid color."}}, s.fields(err))
}

func (s *ServiceTestSuite) TestLabel_ScopedToBoard() {
	label, err := s.labels.Create(s.board.ID, LabelInput{Title: "Bug"})
	s.Require().NoError(err)
	s.Equal("#FF0000", label.Color)

	other, err := s.boards.Create(BoardInput{Title: "Other", CreatedBy: s.alice.ID})
	s.Require().NoError(err)

	_, err = s.labels.Get(other.ID, label.ID)
	s.ErrorIs(err, ErrLabelNotFound)
	s.ErrorIs(s.labels.Delete(other.ID, label.ID), ErrLabelNotFound)
	s.NoError(s.labels.Delete(s.board.ID, label.ID))
}

func (s *ServiceTestSuite) TestCard_ReferenceValidation() {
	other, err := s.boards.Create(BoardInput{Title: "Other", CreatedBy: s.alice.ID})
	s.Require().NoError(err)
	foreignLabel, err := s.labels.Create(other.ID, LabelInput{Title: "Elsewhere"})
	s.Require().NoError(err)
	foreignColumn, err := s.columns.Create(other.ID, ColumnInput{Title: "Elsewhere"})
	s.Require().NoError(err)

	_, err = s.cards.Create(s.board.ID, CardInput{
		Title:       "Card",
		Description: "desc",
		CreatedBy:   s.alice.ID,
		ColumnID:    &foreignColumn.ID,
		Labels:      []uint64{foreignLabel.ID},
		Assignees:   []uint64{s.alice.ID, 404},
	})
	fields := s.fields(err)
	s.Equal([]string{invalidPK(foreignColumn.ID)}, fields["column"])
	s.Equal([]string{invalidPK(foreignLabel.ID)}, fields["labels"])
	s.Equal([]string{`Invalid pk "404" - object does not exist.`}, fields["assignees"])
}

func (s *ServiceTestSuite) TestCard_ReplaceKeepsAbsentFields() {
	column, err := s.columns.Create(s.board.ID, ColumnInput{Title: "Todo"})
	s.Require().NoError(err)
	label, err := s.labels.Create(s.board.ID, LabelInput{Title: "Bug"})
	s.Require().NoError(err)

	card, err := s.cards.Create(s.board.ID, CardInput{
		Title:       "Card",
		Description: "desc",
		CreatedBy:   s.alice.ID,
		ColumnID:    &column.ID,
		Labels:      []uint64{label.ID, label.ID},
		Assignees:   []uint64{s.alice.ID},
	})
	s.Require().NoError(err)
	s.Len(card.Labels, 1)
	s.Nil(card.UpdatedAt)

	updated, err := s.cards.Replace(s.board.ID, card.ID, CardInput{
		Title:       "Renamed",
		Description: "desc",
		CreatedBy:   s.alice.ID,
	})
	s.Require().NoError(err)
	s.Equal("Renamed", updated.Title)
	s.Require().NotNil(updated.ColumnID)
	s.Equal(column.ID, *updated.ColumnID)
	s.Len(updated.Labels, 1)
	s.Len(updated.Assignees, 1)
	s.NotNil(updated.UpdatedAt)

	updated, err = s.cards.Replace(s.board.ID, card.ID, CardInput{
		Title:       "Renamed",
		Description: "desc",
		CreatedBy:   s.alice.ID,
		ColumnSet:   true,
		Labels:      []uint64{},
	})
	s.Require().NoError(err)
	s.Nil(updated.ColumnID)
	s.Empty(updated.Labels)
	s.Len(updated.Assignees, 1)
}

func (s *ServiceTestSuite) TestComment_UpdatedAtRoundTrip() {
	card, err := s.cards.Create(s.board.ID, CardInput{Title: "Card", Description: "desc", CreatedBy: s.alice.ID})
	s.Require().NoError(err)

	comment, err := s.comments.Create(card.ID, CommentInput{Message: "first", CreatedBy: s.alice.ID})
	s.Require().NoError(err)
	s.Nil(comment.UpdatedAt)

	at := "2017-12-17 06:26:53"
	updated, err := s.comments.Replace(card.ID, comment.ID, CommentInput{
		Message: "edited", CreatedBy: s.alice.ID, UpdatedAtSet: true, UpdatedAt: &at,
	})
	s.Require().NoError(err)
	s.Require().NotNil(updated.UpdatedAt)
	s.Equal("2017-12-17T06:26:53Z", updated.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"))

	bad := "last tuesday"
	_, err = s.comments.Replace(card.ID, comment.ID, CommentInput{
		Message: "edited", CreatedBy: s.alice.ID, UpdatedAtSet: true, UpdatedAt: &bad,
	})
	s.Contains(s.fields(err), "updated_at")

	_, err = s.comments.Get(card.ID+1, comment.ID)
	s.ErrorIs(err, ErrCommentNotFound)
}

func (s *ServiceTestSuite) TestSuggestCards() {
	_, err := s.labels.Create(s.board.ID, LabelInput{Title: "Bug"})
	s.Require().NoError(err)

	s.chat.content = "```json\n" + `[
		{"title": "Fix crash", "description": "on start", "labels": ["bug", "Nope"]},
		{"title": "   ", "description": "ignored"}
	]` + "\n```"

	cards, err := s.cards.SuggestCards(context.Background(), s.board.ID, "the app crashes on start")
	s.Require().NoError(err)
	s.Require().Len(cards, 1)
	s.Equal("Fix crash", cards[0].Title)
	s.Equal([]string{"Bug"}, cards[0].Labels)
	s.Contains(s.chat.prompts[0], "Labels available on this board: Bug")

	s.chat.content = "[]"
	_, err = s.cards.SuggestCards(context.Background(), s.board.ID, "nothing")
	s.ErrorIs(err, ErrAINoCardsSuggested)

	s.chat.err = errors.New("rate limited")
	_, err = s.cards.SuggestCards(context.Background(), s.board.ID, "x")
	s.Error(err)
}

func TestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func TestSuggestCards_NotConfigured(t *testing.T) {
	svc := NewCardService(nil, nil, nil, nil, nil)
	_, err := svc.SuggestCards(context.Background(), 1, "text")
	require.ErrorIs(t, err, ErrAIServiceNotConfigured)
}

func TestValidationError_Error(t *testing.T) {
	errs := &ValidationError{}
	require.NoError(t, errs.OrNil())
	errs.Add("title", "This field may not be blank.")
	errs.Add("color", "Enter a valid color.")
	require.EqualError(t, errs.OrNil(), "validation failed: color: Enter a valid color.; title: This field may not be blank.")
}
