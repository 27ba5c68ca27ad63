package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	portssvc "github.com/orgbooks-dev/orgbooks/internal/core/ports/services"
	"github.com/orgbooks-dev/orgbooks/internal/dto"
	"github.com/orgbooks-dev/orgbooks/internal/handlers"
	"github.com/orgbooks-dev/orgbooks/internal/platform/config"
)

// --- Mock ImportService ---
type MockImportService struct {
	mock.Mock
}

func (m *MockImportService) Preview(ctx context.Context, format, fileName string, r io.Reader, accountID, userID string) (*dto.ImportPreviewResponse, error) {
	args := m.Called(ctx, format, fileName, r, accountID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ImportPreviewResponse), args.Error(1)
}

func (m *MockImportService) Commit(ctx context.Context, req dto.CommitImportRequest, userID string) (*dto.ImportCommitResponse, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ImportCommitResponse), args.Error(1)
}

var _ portssvc.ImportSvcFacade = (*MockImportService)(nil)

// --- Test Suite ---
type ImportHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockImportService *MockImportService
	jwtSecret         string
	userID            string
}

func (suite *ImportHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "orgbooks-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *ImportHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.userID = uuid.NewString()
	suite.mockImportService = new(MockImportService)

	cfg := &config.Config{
		JWTSecret:       suite.jwtSecret,
		IsProduction:    true, // Skips swagger registration
		MaxUploadBytes:  1024,
		ImportRateLimit: "1000-M",
	}
	services := &portssvc.ServiceContainer{
		Import: suite.mockImportService,
	}
	handlers.RegisterRoutes(suite.router, cfg, services)
}

// multipartUpload builds a multipart body with an accountID field and one file.
func (suite *ImportHandlerTestSuite) multipartUpload(fileName string, content []byte, accountID string) (*bytes.Buffer, string) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if accountID != "" {
		suite.Require().NoError(writer.WriteField("accountID", accountID))
	}
	if fileName != "" {
		part, err := writer.CreateFormFile("file", fileName)
		suite.Require().NoError(err)
		_, err = part.Write(content)
		suite.Require().NoError(err)
	}
	suite.Require().NoError(writer.Close())
	return body, writer.FormDataContentType()
}

func (suite *ImportHandlerTestSuite) doUpload(fileName string, content []byte, accountID string, authorized bool) *httptest.ResponseRecorder {
	body, contentType := suite.multipartUpload(fileName, content, accountID)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/imports", body)
	req.Header.Set("Content-Type", contentType)
	if authorized {
		req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.userID))
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *ImportHandlerTestSuite) TestPreviewImport_Success() {
	accountID := uuid.NewString()
	expected := &dto.ImportPreviewResponse{
		BatchID:   uuid.NewString(),
		AccountID: accountID,
		Format:    "csv",
		Rows:      []dto.ImportPreviewRow{},
	}
	suite.mockImportService.On("Preview",
		mock.Anything, "csv", "statement.csv", mock.Anything, accountID, suite.userID).
		Return(expected, nil)

	w := suite.doUpload("statement.csv", []byte("Date,Amount,Description\n"), accountID, true)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	var resp dto.ImportPreviewResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(suite.T(), expected.BatchID, resp.BatchID)
	suite.mockImportService.AssertExpectations(suite.T())
}

func (suite *ImportHandlerTestSuite) TestPreviewImport_Unauthorized() {
	w := suite.doUpload("statement.csv", []byte("data"), uuid.NewString(), false)
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *ImportHandlerTestSuite) TestPreviewImport_MissingFile() {
	w := suite.doUpload("", nil, uuid.NewString(), true)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	var resp map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(suite.T(), false, resp["success"])
	assert.NotEmpty(suite.T(), resp["error"])
}

func (suite *ImportHandlerTestSuite) TestPreviewImport_MissingAccountID() {
	w := suite.doUpload("statement.csv", []byte("data"), "", true)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *ImportHandlerTestSuite) TestPreviewImport_DisallowedExtension() {
	w := suite.doUpload("notes.txt", []byte("data"), uuid.NewString(), true)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	var resp map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(suite.T(), false, resp["success"])
	suite.mockImportService.AssertNotCalled(suite.T(), "Preview",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ImportHandlerTestSuite) TestPreviewImport_OversizeRejected() {
	big := bytes.Repeat([]byte("a"), 2048) // Limit in SetupTest is 1024
	w := suite.doUpload("statement.csv", big, uuid.NewString(), true)

	assert.Equal(suite.T(), http.StatusRequestEntityTooLarge, w.Code)
	suite.mockImportService.AssertNotCalled(suite.T(), "Preview",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ImportHandlerTestSuite) TestCommitImport_Success() {
	batchID := uuid.NewString()
	rowID := uuid.NewString()
	expected := &dto.ImportCommitResponse{BatchID: batchID, Created: 1, Skipped: 0}
	suite.mockImportService.On("Commit", mock.Anything, mock.Anything, suite.userID).
		Return(expected, nil)

	payload, err := json.Marshal(dto.CommitImportRequest{
		BatchID: batchID,
		Rows:    []dto.CommitImportRow{{RowID: rowID}},
	})
	suite.Require().NoError(err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/imports/commit", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.userID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	var resp dto.ImportCommitResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(suite.T(), 1, resp.Created)
}

func (suite *ImportHandlerTestSuite) TestHealthEndpoint() {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

func TestImportHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ImportHandlerTestSuite))
}
