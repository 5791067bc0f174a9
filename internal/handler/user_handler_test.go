package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"taskboard/internal/auth"
	"taskboard/internal/handler"
	"taskboard/internal/model"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Мок сервиса пользователей
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) List(ctx context.Context) ([]model.PublicUser, error) {
	args := m.Called(ctx)
	users := args.Get(0)
	if users == nil {
		return nil, args.Error(1)
	}
	return users.([]model.PublicUser), args.Error(1)
}

func (m *MockUserService) Register(ctx context.Context, name, username, password string) (*model.PublicUser, error) {
	args := m.Called(ctx, name, username, password)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.PublicUser), args.Error(1)
}

func (m *MockUserService) Authenticate(ctx context.Context, username, password string) (*model.PublicUser, error) {
	args := m.Called(ctx, username, password)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.PublicUser), args.Error(1)
}

func (m *MockUserService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var testTokens = auth.NewTokenIssuer("test-secret", time.Hour)

func setupUserTest() (*gin.Engine, *MockUserService) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	mockSvc := new(MockUserService)
	h := handler.NewUserHandler(mockSvc, testTokens)

	r.GET("/api/users", h.List)
	r.POST("/api/signup", h.Signup)
	r.POST("/api/login", h.Login)
	r.DELETE("/api/users/:id", h.Delete)
	return r, mockSvc
}

func doJSON(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func errorBody(t *testing.T, resp *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	return body["error"]
}

func TestSignup_Success(t *testing.T) {
	router, mockSvc := setupUserTest()
	created := &model.PublicUser{ID: "6b0c1f5e-8f43-4a7e-9d2a-3c7d5a1b2e90", Name: "Priya Sharma", Username: "priyasharma", Avatar: "PS"}
	mockSvc.On("Register", mock.Anything, "Priya Sharma", "priyasharma", "secret").Return(created, nil)

	resp := doJSON(router, http.MethodPost, "/api/signup", handler.SignupRequest{
		Name: "Priya Sharma", Username: "priyasharma", Password: "secret",
	})

	assert.Equal(t, http.StatusCreated, resp.Code)
	var body handler.AuthResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, created.ID, body.ID)
	assert.Equal(t, "PS", body.Avatar)
	assert.NotContains(t, resp.Body.String(), "password")

	// Токен должен принадлежать созданному пользователю
	userID, err := testTokens.ParseToken(body.Token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, userID)
	mockSvc.AssertExpectations(t)
}

func TestSignup_ErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", fmt.Errorf("%w: name, username and password are required", service.ErrValidation), http.StatusBadRequest},
		{"conflict", fmt.Errorf("%w: taken", service.ErrConflict), http.StatusConflict},
		{"store", &service.StoreError{Op: "create user", Err: errors.New("connection refused")}, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router, mockSvc := setupUserTest()
			mockSvc.On("Register", mock.Anything, "A", "a", "p").Return(nil, tc.err)

			resp := doJSON(router, http.MethodPost, "/api/signup", handler.SignupRequest{Name: "A", Username: "a", Password: "p"})

			assert.Equal(t, tc.status, resp.Code)
			assert.NotContains(t, errorBody(t, resp), "connection refused")
		})
	}
}

func TestSignup_InvalidJSON(t *testing.T) {
	router, mockSvc := setupUserTest()

	req := httptest.NewRequest(http.MethodPost, "/api/signup", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockSvc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLogin_Success(t *testing.T) {
	router, mockSvc := setupUserTest()
	user := &model.PublicUser{ID: "u1", Name: "Emitrr", Username: "emitrr", Avatar: "E"}
	mockSvc.On("Authenticate", mock.Anything, "emitrr", "password").Return(user, nil)

	resp := doJSON(router, http.MethodPost, "/api/login", handler.LoginRequest{Username: "emitrr", Password: "password"})

	assert.Equal(t, http.StatusOK, resp.Code)
	var body handler.AuthResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "emitrr", body.Username)
	assert.NotEmpty(t, body.Token)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	router, mockSvc := setupUserTest()
	mockSvc.On("Authenticate", mock.Anything, "emitrr", "wrong").Return(nil, service.ErrAuth)

	resp := doJSON(router, http.MethodPost, "/api/login", handler.LoginRequest{Username: "emitrr", Password: "wrong"})

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Equal(t, "Invalid credentials", errorBody(t, resp))
}

func TestListUsers(t *testing.T) {
	router, mockSvc := setupUserTest()
	mockSvc.On("List", mock.Anything).Return([]model.PublicUser{
		{ID: "u1", Name: "Nikhil Yadav", Username: "nikhilyadav", Avatar: "NY"},
	}, nil)

	resp := doJSON(router, http.MethodGet, "/api/users", nil)

	assert.Equal(t, http.StatusOK, resp.Code)
	var users []model.PublicUser
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &users))
	require.Len(t, users, 1)
	assert.Equal(t, "NY", users[0].Avatar)
}

func TestListUsers_StoreError(t *testing.T) {
	router, mockSvc := setupUserTest()
	mockSvc.On("List", mock.Anything).Return(nil, &service.StoreError{Op: "list users", Err: errors.New("boom")})

	resp := doJSON(router, http.MethodGet, "/api/users", nil)

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.Equal(t, "Failed to fetch users", errorBody(t, resp))
}

func TestDeleteUser(t *testing.T) {
	router, mockSvc := setupUserTest()
	mockSvc.On("Delete", mock.Anything, "u3").Return(nil)

	resp := doJSON(router, http.MethodDelete, "/api/users/u3", nil)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"success":true}`, resp.Body.String())
	mockSvc.AssertExpectations(t)
}

func TestDeleteUser_StoreError(t *testing.T) {
	router, mockSvc := setupUserTest()
	mockSvc.On("Delete", mock.Anything, "u3").Return(&service.StoreError{Op: "delete user", Err: errors.New("boom")})

	resp := doJSON(router, http.MethodDelete, "/api/users/u3", nil)

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}
