package handler_test

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"paperflow/internal/identity"
	"paperflow/internal/jwttoken"
	"paperflow/internal/paper/authz"
	"paperflow/internal/paper/handler"
	"paperflow/internal/paper/models"
	"paperflow/internal/paper/service"
	"paperflow/internal/paper/store"
	id "paperflow/pkg/domain"
	dErrors "paperflow/pkg/domain-errors"
	"paperflow/pkg/platform/audit"
	auditmemory "paperflow/pkg/platform/audit/store/memory"
	"paperflow/pkg/testutil"
)

const signingKey = "test-signing-key-for-papers"

// PaperHandlerSuite drives the full chain: router, middleware, identity
// resolution, service, store.
type PaperHandlerSuite struct {
	suite.Suite
	router *chi.Mux
	tokens *jwttoken.JWTService
}

func TestPaperHandlerSuite(t *testing.T) {
	suite.Run(t, new(PaperHandlerSuite))
}

func (s *PaperHandlerSuite) SetupTest() {
	logger := slog.New(slog.DiscardHandler)
	s.tokens = jwttoken.NewJWTService(signingKey, "paperflow-test", "paperflow")

	publisher := audit.NewPublisher(auditmemory.New(), audit.WithLogger(logger))
	svc := service.New(store.NewMemoryStore(), authz.NewGuard(true),
		service.WithLogger(logger),
		service.WithAuditPublisher(publisher),
	)
	resolver := identity.NewResolver(s.tokens, logger)

	s.router = chi.NewRouter()
	handler.New(svc, resolver, logger, nil).Register(s.router)
}

func (s *PaperHandlerSuite) bearer(userID uuid.UUID, role identity.Role) string {
	token, err := s.tokens.GenerateToken(userID, string(role), time.Hour)
	s.Require().NoError(err)
	return "Bearer " + token
}

func (s *PaperHandlerSuite) createPaper(authorization string) map[string]any {
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/papers", map[string]any{
		"title":   "World History Midterm",
		"course":  "HIS202",
		"subject": "History",
		"questions": []map[string]any{
			{"type": "text", "prompt": "Describe the causes of WWI.", "marks": 10},
		},
	})
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatus(s.T(), rr, http.StatusCreated)
	return *testutil.UnmarshalResponse[map[string]any](s.T(), rr)
}

func (s *PaperHandlerSuite) TestCreateReturnsBothStatusProjections() {
	author := uuid.New()
	doc := s.createPaper(s.bearer(author, identity.RoleTeacher))

	s.Equal("Draft", doc["status"])
	metadata := doc["metadata"].(map[string]any)
	s.Equal("draft", metadata["status"])
	s.Equal(author.String(), doc["createdBy"])
	s.Equal(float64(1), doc["version"])
}

func (s *PaperHandlerSuite) TestCreateValidation() {
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/papers", map[string]any{
		"title": "No Questions Here",
	})
	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatusAndError(s.T(), rr, http.StatusUnprocessableEntity,
		string(dErrors.CodeValidation))
}

func (s *PaperHandlerSuite) TestMalformedBody() {
	req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/papers", "{not json")
	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest,
		string(dErrors.CodeBadRequest))
}

func (s *PaperHandlerSuite) TestFullLifecycleOverHTTP() {
	author := uuid.New()
	authorAuth := s.bearer(author, identity.RoleTeacher)
	reviewerAuth := s.bearer(uuid.New(), identity.RoleApprover)

	doc := s.createPaper(authorAuth)
	paperID := doc["id"].(string)

	// Submit.
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/papers/"+paperID+"/submit",
		map[string]any{"comments": "ready"})
	req.Header.Set("Authorization", authorAuth)
	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatusOK(s.T(), rr)
	testutil.AssertJSONContains(s.T(), rr, "status", "Submitted")

	// The reviewer sees it pending.
	req = testutil.NewRequest(s.T(), http.MethodGet, "/papers/pending")
	req.Header.Set("Authorization", reviewerAuth)
	rr = testutil.DoRequest(s.router, req)
	testutil.AssertStatusOK(s.T(), rr)
	pending := *testutil.UnmarshalResponse[[]map[string]any](s.T(), rr)
	s.Require().Len(pending, 1)
	s.Equal(paperID, pending[0]["id"])

	// Approve.
	req = testutil.NewJSONRequest(s.T(), http.MethodPost, "/papers/"+paperID+"/approval",
		map[string]any{"action": "approve", "comments": "solid"})
	req.Header.Set("Authorization", reviewerAuth)
	rr = testutil.DoRequest(s.router, req)
	testutil.AssertStatusOK(s.T(), rr)
	testutil.AssertJSONContains(s.T(), rr, "status", "Approved")

	// The trail recorded every step.
	req = testutil.NewRequest(s.T(), http.MethodGet, "/papers/"+paperID+"/audit")
	req.Header.Set("Authorization", authorAuth)
	rr = testutil.DoRequest(s.router, req)
	testutil.AssertStatusOK(s.T(), rr)
	trail := *testutil.UnmarshalResponse[[]map[string]any](s.T(), rr)
	s.Len(trail, 3)
}

func (s *PaperHandlerSuite) TestRejectionFlow() {
	authorAuth := s.bearer(uuid.New(), identity.RoleTeacher)
	reviewerAuth := s.bearer(uuid.New(), identity.RoleApprover)

	doc := s.createPaper(authorAuth)
	paperID := doc["id"].(string)

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/papers/"+paperID+"/submit", nil)
	req.Header.Set("Authorization", authorAuth)
	testutil.AssertStatusOK(s.T(), testutil.DoRequest(s.router, req))

	req = testutil.NewJSONRequest(s.T(), http.MethodPost, "/papers/"+paperID+"/approval",
		map[string]any{"action": "reject", "comments": "too short"})
	req.Header.Set("Authorization", reviewerAuth)
	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatusOK(s.T(), rr)
	testutil.AssertJSONContains(s.T(), rr, "status", "Rejected")

	// Editing keeps the rejected status.
	req = testutil.NewJSONRequest(s.T(), http.MethodPut, "/papers/"+paperID, map[string]any{
		"title": "World History Midterm v2",
	})
	req.Header.Set("Authorization", authorAuth)
	rr = testutil.DoRequest(s.router, req)
	testutil.AssertStatusOK(s.T(), rr)
	testutil.AssertJSONContains(s.T(), rr, "status", "Rejected")
	testutil.AssertJSONContains(s.T(), rr, "title", "World History Midterm v2")
}

func (s *PaperHandlerSuite) TestOwnershipOverHTTP() {
	doc := s.createPaper(s.bearer(uuid.New(), identity.RoleTeacher))
	paperID := doc["id"].(string)

	req := testutil.NewRequest(s.T(), http.MethodGet, "/papers/"+paperID)
	req.Header.Set("Authorization", s.bearer(uuid.New(), identity.RoleTeacher))
	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatusAndError(s.T(), rr, http.StatusForbidden,
		string(dErrors.CodeForbidden))
}

func (s *PaperHandlerSuite) TestInvalidTransitionMapsToConflict() {
	authorAuth := s.bearer(uuid.New(), identity.RoleTeacher)
	reviewerAuth := s.bearer(uuid.New(), identity.RoleApprover)

	doc := s.createPaper(authorAuth)
	paperID := doc["id"].(string)

	// Approving a draft is premature.
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/papers/"+paperID+"/approval",
		map[string]any{"action": "approve"})
	req.Header.Set("Authorization", reviewerAuth)
	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatusAndError(s.T(), rr, http.StatusConflict,
		string(dErrors.CodeInvalidTransition))
}

func (s *PaperHandlerSuite) TestPlaceholderRequestsWork() {
	// No Authorization header at all: the legacy escape hatch.
	doc := s.createPaper("")
	s.Equal(uuid.Nil.String(), doc["createdBy"])

	paperID := doc["id"].(string)
	req := testutil.NewRequest(s.T(), http.MethodDelete, "/papers/"+paperID)
	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatus(s.T(), rr, http.StatusNoContent)
}

func (s *PaperHandlerSuite) TestGarbageTokenDegradesToPlaceholder() {
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/papers", map[string]any{
		"title":     "Unverified Author Paper",
		"questions": []map[string]any{{"type": "text", "prompt": "q", "marks": 1}},
	})
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatus(s.T(), rr, http.StatusCreated)
	testutil.AssertJSONContains(s.T(), rr, "createdBy", uuid.Nil.String())
}

func (s *PaperHandlerSuite) TestUnknownPaperAndBadID() {
	auth := s.bearer(uuid.New(), identity.RoleTeacher)

	req := testutil.NewRequest(s.T(), http.MethodGet, "/papers/"+uuid.NewString())
	req.Header.Set("Authorization", auth)
	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound,
		string(dErrors.CodeNotFound))

	req = testutil.NewRequest(s.T(), http.MethodGet, "/papers/not-a-uuid")
	req.Header.Set("Authorization", auth)
	rr = testutil.DoRequest(s.router, req)
	testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
}

func (s *PaperHandlerSuite) TestListOwnPapers() {
	author := uuid.New()
	auth := s.bearer(author, identity.RoleTeacher)

	for i := 0; i < 2; i++ {
		s.createPaper(auth)
	}
	s.createPaper(s.bearer(uuid.New(), identity.RoleTeacher))

	req := testutil.NewRequest(s.T(), http.MethodGet, "/papers")
	req.Header.Set("Authorization", auth)
	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatusOK(s.T(), rr)
	mine := *testutil.UnmarshalResponse[[]map[string]any](s.T(), rr)
	s.Len(mine, 2)

	// A teacher cannot list another owner's papers.
	other := uuid.New()
	req = testutil.NewRequest(s.T(), http.MethodGet,
		fmt.Sprintf("/papers?owner=%s", other))
	req.Header.Set("Authorization", auth)
	rr = testutil.DoRequest(s.router, req)
	testutil.AssertStatus(s.T(), rr, http.StatusForbidden)
}

func (s *PaperHandlerSuite) TestApprovalActionValidated() {
	reviewerAuth := s.bearer(uuid.New(), identity.RoleApprover)
	doc := s.createPaper(s.bearer(uuid.New(), identity.RoleTeacher))
	paperID := doc["id"].(string)

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/papers/"+paperID+"/approval",
		map[string]any{"action": "publish"})
	req.Header.Set("Authorization", reviewerAuth)
	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatusAndError(s.T(), rr, http.StatusUnprocessableEntity,
		string(dErrors.CodeValidation))
}

// Chunked requests report ContentLength -1; the submit comments must not be
// dropped because the length is unknown.
func (s *PaperHandlerSuite) TestSubmitWithChunkedBodyKeepsComments() {
	authorAuth := s.bearer(uuid.New(), identity.RoleTeacher)
	doc := s.createPaper(authorAuth)
	paperID := doc["id"].(string)

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/papers/"+paperID+"/submit",
		map[string]any{"comments": "streamed upload"})
	req.Header.Set("Authorization", authorAuth)
	req.ContentLength = -1
	req.TransferEncoding = []string{"chunked"}
	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatusOK(s.T(), rr)

	submitted := *testutil.UnmarshalResponse[map[string]any](s.T(), rr)
	s.Equal("Submitted", submitted["status"])
	history := submitted["approvalHistory"].([]any)
	s.Require().Len(history, 1)
	s.Equal("streamed upload", history[0].(map[string]any)["comments"])
}

// Recovered panics keep the inbound request ID in the log line.
func TestPanicRecoveryLogsRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	tokens := jwttoken.NewJWTService(signingKey, "paperflow-test", "paperflow")
	resolver := identity.NewResolver(tokens, logger)

	router := chi.NewRouter()
	handler.New(panicService{}, resolver, logger, nil).Register(router)

	req := testutil.NewRequest(t, http.MethodGet, "/papers/"+uuid.NewString())
	req.Header.Set("X-Request-ID", "req-panic-1")
	rr := testutil.DoRequest(router, req)

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, buf.String(), "panic recovered")
	assert.Contains(t, buf.String(), "request_id=req-panic-1")
}

type panicService struct{ handler.Service }

func (panicService) Get(context.Context, id.PaperID) (*models.Paper, error) {
	panic("paper store corrupted")
}

// Compile-time check that the concrete service satisfies the handler contract.
var _ handler.Service = (*service.Service)(nil)
