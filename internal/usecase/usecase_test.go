package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Hadi891/CareerCompass/internal/domain"
	"github.com/Hadi891/CareerCompass/pkg/auth"
)

func testIssuer() *auth.Issuer {
	return auth.NewIssuer("test-secret", 60)
}

// ---- Mocks ----

type MockUserRepo struct{ mock.Mock }

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) SetDomain(ctx context.Context, userID, domainName string) error {
	return m.Called(ctx, userID, domainName).Error(0)
}
func (m *MockUserRepo) SetUploaded(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

type MockCVRepo struct{ mock.Mock }

func (m *MockCVRepo) CreateSnapshot(ctx context.Context, userID, filename string, parsed *domain.ParsedCV) (string, error) {
	args := m.Called(ctx, userID, filename, parsed)
	return args.String(0), args.Error(1)
}
func (m *MockCVRepo) Delete(ctx context.Context, cvID string) error {
	return m.Called(ctx, cvID).Error(0)
}
func (m *MockCVRepo) GetLatestByUser(ctx context.Context, userID string) (*domain.CVSnapshot, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CVSnapshot), args.Error(1)
}

type MockCourseRepo struct{ mock.Mock }

func (m *MockCourseRepo) ReplaceForCV(ctx context.Context, cvID string, courses []domain.Course) error {
	return m.Called(ctx, cvID, courses).Error(0)
}

type MockSuggestionRepo struct{ mock.Mock }

func (m *MockSuggestionRepo) ReplaceForCV(ctx context.Context, cvID string, projects []domain.SuggestedProject) error {
	return m.Called(ctx, cvID, projects).Error(0)
}
func (m *MockSuggestionRepo) GetProject(ctx context.Context, projectID string) (*domain.SuggestedProject, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SuggestedProject), args.Error(1)
}
func (m *MockSuggestionRepo) AppendMessage(ctx context.Context, projectID, sender, content string) (*domain.ChatMessage, error) {
	args := m.Called(ctx, projectID, sender, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChatMessage), args.Error(1)
}
func (m *MockSuggestionRepo) ListMessages(ctx context.Context, projectID string) ([]domain.ChatMessage, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChatMessage), args.Error(1)
}

type MockExtractor struct{ mock.Mock }

func (m *MockExtractor) Extract(path string) (*domain.Extraction, error) {
	args := m.Called(path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Extraction), args.Error(1)
}

type MockModel struct{ mock.Mock }

func (m *MockModel) Complete(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}
func (m *MockModel) Chat(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

type MockSearcher struct{ mock.Mock }

func (m *MockSearcher) SearchCourses(ctx context.Context, skill, level string) ([]domain.CourseResult, error) {
	args := m.Called(ctx, skill, level)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CourseResult), args.Error(1)
}

type MockSuggestionSvc struct{ mock.Mock }

func (m *MockSuggestionSvc) GenerateForCV(ctx context.Context, cvID, domainName string, skills []string) error {
	return m.Called(ctx, cvID, domainName, skills).Error(0)
}

type MockEnrichmentSvc struct{ mock.Mock }

func (m *MockEnrichmentSvc) EnrichCV(ctx context.Context, cvID string, missingSkills []string) error {
	return m.Called(ctx, cvID, missingSkills).Error(0)
}

// ---- CV ingest ----

const parseReply = `{
  "meta": {"name": "Ada", "email": "ada@example.com"},
  "domain": "Backend Development",
  "skills": ["Go", "SQL"],
  "missing_skills": ["Docker"]
}`

func newIngestFixture(t *testing.T) (*MockCVRepo, *MockUserRepo, *MockExtractor, *MockModel, *MockSuggestionSvc, *MockEnrichmentSvc, domain.CVUsecase) {
	cvRepo := new(MockCVRepo)
	userRepo := new(MockUserRepo)
	extractor := new(MockExtractor)
	model := new(MockModel)
	suggestionSvc := new(MockSuggestionSvc)
	enrichmentSvc := new(MockEnrichmentSvc)
	uc := NewCVUsecase(cvRepo, userRepo, extractor, model, suggestionSvc, enrichmentSvc, t.TempDir())
	return cvRepo, userRepo, extractor, model, suggestionSvc, enrichmentSvc, uc
}

func pdfDocument() []byte {
	return []byte("%PDF-1.4 fake resume content")
}

func TestIngestCV(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path replaces derived data and returns snapshot", func(t *testing.T) {
		cvRepo, userRepo, extractor, model, suggestionSvc, enrichmentSvc, uc := newIngestFixture(t)

		extractor.On("Extract", mock.Anything).
			Return(&domain.Extraction{Text: "resume text", Links: []string{"https://github.com/ada"}}, nil)
		model.On("Complete", ctx, mock.Anything).Return(parseReply, nil)
		cvRepo.On("CreateSnapshot", ctx, "user-1", "cv.pdf", mock.Anything).Return("cv-1", nil)
		suggestionSvc.On("GenerateForCV", ctx, "cv-1", "Backend Development", []string{"Go", "SQL"}).Return(nil)
		enrichmentSvc.On("EnrichCV", ctx, "cv-1", []string{"Docker"}).Return(nil)
		userRepo.On("SetDomain", ctx, "user-1", "Backend Development").Return(nil)
		userRepo.On("SetUploaded", ctx, "user-1").Return(nil)
		cvRepo.On("GetLatestByUser", ctx, "user-1").Return(&domain.CVSnapshot{ID: "cv-1"}, nil)

		snap, err := uc.IngestCV(ctx, "user-1", "cv.pdf", pdfDocument())
		require.NoError(t, err)
		assert.Equal(t, "cv-1", snap.ID)
		cvRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
		cvRepo.AssertExpectations(t)
		userRepo.AssertExpectations(t)
	})

	t.Run("non-pdf upload rejected before extraction", func(t *testing.T) {
		_, _, extractor, _, _, _, uc := newIngestFixture(t)

		_, err := uc.IngestCV(ctx, "user-1", "cv.exe", []byte("MZ not a pdf"))
		assert.Error(t, err)
		extractor.AssertNotCalled(t, "Extract", mock.Anything)
	})

	t.Run("malformed reply fails before any snapshot exists", func(t *testing.T) {
		cvRepo, _, extractor, model, _, _, uc := newIngestFixture(t)

		extractor.On("Extract", mock.Anything).Return(&domain.Extraction{Text: "text"}, nil)
		model.On("Complete", ctx, mock.Anything).Return("no structured output at all", nil)

		_, err := uc.IngestCV(ctx, "user-1", "cv.pdf", pdfDocument())
		assert.ErrorIs(t, err, domain.ErrMalformedResponse)
		cvRepo.AssertNotCalled(t, "CreateSnapshot", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("failure after snapshot rolls the new cv back", func(t *testing.T) {
		cvRepo, _, extractor, model, suggestionSvc, _, uc := newIngestFixture(t)

		extractor.On("Extract", mock.Anything).Return(&domain.Extraction{Text: "text"}, nil)
		model.On("Complete", ctx, mock.Anything).Return(parseReply, nil)
		cvRepo.On("CreateSnapshot", ctx, "user-1", "cv.pdf", mock.Anything).Return("cv-2", nil)
		suggestionSvc.On("GenerateForCV", ctx, "cv-2", mock.Anything, mock.Anything).
			Return(domain.ErrMalformedResponse)
		cvRepo.On("Delete", ctx, "cv-2").Return(nil)

		_, err := uc.IngestCV(ctx, "user-1", "cv.pdf", pdfDocument())
		assert.ErrorIs(t, err, domain.ErrMalformedResponse)
		cvRepo.AssertCalled(t, "Delete", ctx, "cv-2")
	})

	t.Run("extraction failure propagates", func(t *testing.T) {
		cvRepo, _, extractor, _, _, _, uc := newIngestFixture(t)

		extractor.On("Extract", mock.Anything).Return(nil, domain.ErrExtractionFailed)

		_, err := uc.IngestCV(ctx, "user-1", "cv.pdf", pdfDocument())
		assert.ErrorIs(t, err, domain.ErrExtractionFailed)
		cvRepo.AssertNotCalled(t, "CreateSnapshot", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

// ---- Enrichment ----

func TestEnrichCV(t *testing.T) {
	ctx := context.Background()

	t.Run("queries each skill at each level and replaces", func(t *testing.T) {
		searcher := new(MockSearcher)
		courseRepo := new(MockCourseRepo)
		uc := NewEnrichmentUsecase(searcher, courseRepo, 0)

		for _, level := range domain.CourseLevels() {
			searcher.On("SearchCourses", ctx, "Docker", level).
				Return([]domain.CourseResult{{Title: "Docker " + level, URL: "https://c/" + level}}, nil)
		}

		var stored []domain.Course
		courseRepo.On("ReplaceForCV", ctx, "cv-1", mock.Anything).
			Run(func(args mock.Arguments) { stored = args.Get(2).([]domain.Course) }).
			Return(nil)

		require.NoError(t, uc.EnrichCV(ctx, "cv-1", []string{"Docker"}))
		require.Len(t, stored, 3)
		assert.Equal(t, "Docker", stored[0].Skill)
		assert.Equal(t, domain.LevelBeginner, stored[0].Level)
		assert.Equal(t, domain.LevelAdvanced, stored[2].Level)
	})

	t.Run("one failed query costs only its own results", func(t *testing.T) {
		searcher := new(MockSearcher)
		courseRepo := new(MockCourseRepo)
		uc := NewEnrichmentUsecase(searcher, courseRepo, 0)

		searcher.On("SearchCourses", ctx, "K8s", domain.LevelBeginner).
			Return(nil, errors.New("blocked by catalog"))
		searcher.On("SearchCourses", ctx, "K8s", domain.LevelIntermediate).
			Return([]domain.CourseResult{{Title: "K8s mid"}}, nil)
		searcher.On("SearchCourses", ctx, "K8s", domain.LevelAdvanced).
			Return([]domain.CourseResult{}, nil)

		var stored []domain.Course
		courseRepo.On("ReplaceForCV", ctx, "cv-1", mock.Anything).
			Run(func(args mock.Arguments) { stored = args.Get(2).([]domain.Course) }).
			Return(nil)

		require.NoError(t, uc.EnrichCV(ctx, "cv-1", []string{"K8s"}))
		require.Len(t, stored, 1)
		assert.Equal(t, "K8s mid", stored[0].Title)
	})

	t.Run("no missing skills still clears old recommendations", func(t *testing.T) {
		searcher := new(MockSearcher)
		courseRepo := new(MockCourseRepo)
		uc := NewEnrichmentUsecase(searcher, courseRepo, 0)

		courseRepo.On("ReplaceForCV", ctx, "cv-1", mock.Anything).Return(nil)

		require.NoError(t, uc.EnrichCV(ctx, "cv-1", nil))
		courseRepo.AssertCalled(t, "ReplaceForCV", ctx, "cv-1", mock.Anything)
		searcher.AssertNotCalled(t, "SearchCourses", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("cancelled context stops the delay loop", func(t *testing.T) {
		searcher := new(MockSearcher)
		courseRepo := new(MockCourseRepo)
		uc := NewEnrichmentUsecase(searcher, courseRepo, time.Hour)

		cancelled, cancel := context.WithCancel(context.Background())
		cancel()
		searcher.On("SearchCourses", cancelled, "Go", domain.LevelBeginner).
			Return([]domain.CourseResult{}, nil)

		err := uc.EnrichCV(cancelled, "cv-1", []string{"Go"})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

// ---- Suggestions ----

const suggestionsReply = `[
  {"name": "A", "description": "d", "tools": ["x","y","z"], "difficulty": "easy", "tasks": ["1","2","3","4","5","6"]},
  {"name": "B", "description": "d", "tools": ["x","y","z"], "difficulty": "medium", "tasks": ["1","2","3","4","5","6"]},
  {"name": "C", "description": "d", "tools": ["x","y","z"], "difficulty": "medium", "tasks": ["1","2","3","4","5","6"]},
  {"name": "D", "description": "d", "tools": ["x","y","z"], "difficulty": "hard", "tasks": ["1","2","3","4","5","6"]}
]`

func TestGenerateForCV(t *testing.T) {
	ctx := context.Background()

	t.Run("valid batch is stored", func(t *testing.T) {
		model := new(MockModel)
		repo := new(MockSuggestionRepo)
		uc := NewSuggestionUsecase(model, repo)

		model.On("Complete", ctx, mock.Anything).Return(suggestionsReply, nil)

		var stored []domain.SuggestedProject
		repo.On("ReplaceForCV", ctx, "cv-1", mock.Anything).
			Run(func(args mock.Arguments) { stored = args.Get(2).([]domain.SuggestedProject) }).
			Return(nil)

		require.NoError(t, uc.GenerateForCV(ctx, "cv-1", "Backend Development", []string{"Go"}))
		require.Len(t, stored, 4)
		assert.Equal(t, domain.DifficultyEasy, stored[0].Difficulty)
	})

	t.Run("bad batch shape rejected without storage", func(t *testing.T) {
		model := new(MockModel)
		repo := new(MockSuggestionRepo)
		uc := NewSuggestionUsecase(model, repo)

		model.On("Complete", ctx, mock.Anything).Return(`[{"name":"only one"}]`, nil)

		err := uc.GenerateForCV(ctx, "cv-1", "Backend Development", []string{"Go"})
		assert.ErrorIs(t, err, domain.ErrMalformedResponse)
		repo.AssertNotCalled(t, "ReplaceForCV", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("model failure propagates", func(t *testing.T) {
		model := new(MockModel)
		repo := new(MockSuggestionRepo)
		uc := NewSuggestionUsecase(model, repo)

		model.On("Complete", ctx, mock.Anything).Return("", domain.ErrCollaboratorUnavailable)

		err := uc.GenerateForCV(ctx, "cv-1", "Backend Development", []string{"Go"})
		assert.ErrorIs(t, err, domain.ErrCollaboratorUnavailable)
	})
}

// ---- Chat ----

func TestPostChatTurn(t *testing.T) {
	ctx := context.Background()
	project := &domain.SuggestedProject{
		ID: "proj-1", Name: "URL Shortener",
		Tools: []string{"Go"}, Tasks: []string{"a", "b", "c", "d", "e", "f"},
	}

	t.Run("appends user and assistant messages in order", func(t *testing.T) {
		repo := new(MockSuggestionRepo)
		model := new(MockModel)
		uc := NewChatUsecase(repo, model)

		history := []domain.ChatMessage{
			{Sender: domain.SenderUser, Content: "earlier question"},
		}
		repo.On("GetProject", ctx, "proj-1").Return(project, nil)
		repo.On("ListMessages", ctx, "proj-1").Return(history, nil)
		repo.On("AppendMessage", ctx, "proj-1", domain.SenderUser, "how do I test this?").
			Return(&domain.ChatMessage{ID: 2, Sender: domain.SenderUser}, nil)

		var sentPrompt string
		model.On("Chat", ctx, mock.Anything).
			Run(func(args mock.Arguments) { sentPrompt = args.String(1) }).
			Return("use httptest", nil)
		repo.On("AppendMessage", ctx, "proj-1", domain.SenderAssistant, "use httptest").
			Return(&domain.ChatMessage{ID: 3, Sender: domain.SenderAssistant, Content: "use httptest"}, nil)

		reply, err := uc.PostChatTurn(ctx, "proj-1", "how do I test this?")
		require.NoError(t, err)
		assert.Equal(t, "use httptest", reply.Content)
		assert.Contains(t, sentPrompt, "earlier question")
		assert.Contains(t, sentPrompt, "how do I test this?")
	})

	t.Run("model failure keeps the user message", func(t *testing.T) {
		repo := new(MockSuggestionRepo)
		model := new(MockModel)
		uc := NewChatUsecase(repo, model)

		repo.On("GetProject", ctx, "proj-1").Return(project, nil)
		repo.On("ListMessages", ctx, "proj-1").Return([]domain.ChatMessage{}, nil)
		repo.On("AppendMessage", ctx, "proj-1", domain.SenderUser, "hello?").
			Return(&domain.ChatMessage{ID: 1}, nil)
		model.On("Chat", ctx, mock.Anything).Return("", domain.ErrCollaboratorTimeout)

		_, err := uc.PostChatTurn(ctx, "proj-1", "hello?")
		assert.ErrorIs(t, err, domain.ErrCollaboratorTimeout)
		repo.AssertCalled(t, "AppendMessage", ctx, "proj-1", domain.SenderUser, "hello?")
		repo.AssertNotCalled(t, "AppendMessage", ctx, "proj-1", domain.SenderAssistant, mock.Anything)
	})

	t.Run("unknown project is not found", func(t *testing.T) {
		repo := new(MockSuggestionRepo)
		model := new(MockModel)
		uc := NewChatUsecase(repo, model)

		repo.On("GetProject", ctx, "ghost").Return(nil, domain.ErrNotFound)

		_, err := uc.PostChatTurn(ctx, "ghost", "anyone there?")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		repo.AssertNotCalled(t, "AppendMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

// ---- Auth ----

func TestAuthUsecase(t *testing.T) {
	ctx := context.Background()

	t.Run("profile embeds latest snapshot", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		cvRepo := new(MockCVRepo)
		uc := NewAuthUsecase(userRepo, cvRepo, testIssuer(), validator.New())

		userRepo.On("GetByID", ctx, "user-1").
			Return(&domain.User{ID: "user-1", Email: "ada@example.com", HasUploadedCV: true}, nil)
		cvRepo.On("GetLatestByUser", ctx, "user-1").
			Return(&domain.CVSnapshot{ID: "cv-1"}, nil)

		profile, err := uc.GetProfile(ctx, "user-1")
		require.NoError(t, err)
		require.NotNil(t, profile.CV)
		assert.Equal(t, "cv-1", profile.CV.ID)
	})

	t.Run("profile without cv omits snapshot", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		cvRepo := new(MockCVRepo)
		uc := NewAuthUsecase(userRepo, cvRepo, testIssuer(), validator.New())

		userRepo.On("GetByID", ctx, "user-1").
			Return(&domain.User{ID: "user-1", Email: "ada@example.com"}, nil)
		cvRepo.On("GetLatestByUser", ctx, "user-1").Return(nil, domain.ErrNotFound)

		profile, err := uc.GetProfile(ctx, "user-1")
		require.NoError(t, err)
		assert.Nil(t, profile.CV)
	})

	t.Run("login rejects unknown email and bad password alike", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		cvRepo := new(MockCVRepo)
		uc := NewAuthUsecase(userRepo, cvRepo, testIssuer(), validator.New())

		userRepo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, domain.ErrNotFound)

		_, err := uc.Login(ctx, "ghost@example.com", "whatever")
		assert.Error(t, err)
	})

	t.Run("signup rejects short passwords", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		cvRepo := new(MockCVRepo)
		uc := NewAuthUsecase(userRepo, cvRepo, testIssuer(), validator.New())

		_, err := uc.Signup(ctx, "ada@example.com", "tiny")
		assert.Error(t, err)
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("signup issues a user with hashed password", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		cvRepo := new(MockCVRepo)
		uc := NewAuthUsecase(userRepo, cvRepo, testIssuer(), validator.New())

		userRepo.On("Create", ctx, mock.Anything).Return(nil)

		user, err := uc.Signup(ctx, "ada@example.com", "s3cret-pass")
		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", user.Email)
		assert.NotEmpty(t, user.ID)
		assert.NotEqual(t, "s3cret-pass", user.PasswordHash)
	})
}
