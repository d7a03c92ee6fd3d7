// internal/api/handler/handler_test.go
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"exercise-tracker/internal/api/types"
	"exercise-tracker/internal/domain"
	"exercise-tracker/internal/service"
	"exercise-tracker/internal/util"
)

const aliceID = "65a1f0c2e4b0a1b2c3d4e5f6"

// MockUserService is a mock implementation of service.UserService.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserService) CreateUser(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockExerciseService is a mock implementation of service.ExerciseService.
type MockExerciseService struct {
	mock.Mock
}

func (m *MockExerciseService) AddExercise(ctx context.Context, input service.AddExerciseInput) (*domain.User, *domain.Exercise, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.User), args.Get(1).(*domain.Exercise), args.Error(2)
}

func (m *MockExerciseService) GetLog(ctx context.Context, query service.LogQuery) (*domain.User, []domain.Exercise, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.User), args.Get(1).([]domain.Exercise), args.Error(2)
}

func newTestRouter(users service.UserService, exercises service.ExerciseService) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	userHandler := NewUserHandler(users, logger)
	exerciseHandler := NewExerciseHandler(exercises, logger)

	r := chi.NewRouter()
	r.Get("/api/users", userHandler.ListUsers)
	r.Post("/api/users", userHandler.CreateUser)
	r.Post("/api/users/{_id}/exercises", exerciseHandler.AddExercise)
	r.Get("/api/users/{_id}/logs", exerciseHandler.GetLog)
	return r
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func formRequest(method, target string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestListUsers(t *testing.T) {
	t.Run("Users", func(t *testing.T) {
		users := new(MockUserService)
		users.On("ListUsers", mock.Anything).Return([]domain.User{
			{ID: "1", Username: "alice"},
			{ID: "2", Username: "bob"},
		}, nil).Once()

		rr := serve(newTestRouter(users, nil), httptest.NewRequest(http.MethodGet, "/api/users", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `[{"username":"alice","_id":"1"},{"username":"bob","_id":"2"}]`, rr.Body.String())
	})

	t.Run("EmptyIsArray", func(t *testing.T) {
		users := new(MockUserService)
		users.On("ListUsers", mock.Anything).Return([]domain.User{}, nil).Once()

		rr := serve(newTestRouter(users, nil), httptest.NewRequest(http.MethodGet, "/api/users", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "[]", rr.Body.String())
	})

	t.Run("StoreError", func(t *testing.T) {
		users := new(MockUserService)
		users.On("ListUsers", mock.Anything).Return(nil, errors.New("down")).Once()

		rr := serve(newTestRouter(users, nil), httptest.NewRequest(http.MethodGet, "/api/users", nil))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.JSONEq(t, `{"error":"Failed to list users"}`, rr.Body.String())
	})
}

func TestCreateUser(t *testing.T) {
	t.Run("Form", func(t *testing.T) {
		users := new(MockUserService)
		users.On("CreateUser", mock.Anything, "alice").Return(&domain.User{ID: aliceID, Username: "alice"}, nil).Once()

		rr := serve(newTestRouter(users, nil), formRequest(http.MethodPost, "/api/users", url.Values{"username": {"alice"}}))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"username":"alice","_id":"`+aliceID+`"}`, rr.Body.String())
		users.AssertExpectations(t)
	})

	t.Run("JSON", func(t *testing.T) {
		users := new(MockUserService)
		users.On("CreateUser", mock.Anything, "bob").Return(&domain.User{ID: "x", Username: "bob"}, nil).Once()

		rr := serve(newTestRouter(users, nil), jsonRequest(http.MethodPost, "/api/users", `{"username":"bob"}`))

		assert.Equal(t, http.StatusOK, rr.Code)
		users.AssertExpectations(t)
	})

	t.Run("MissingUsername", func(t *testing.T) {
		users := new(MockUserService)

		rr := serve(newTestRouter(users, nil), formRequest(http.MethodPost, "/api/users", url.Values{}))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.JSONEq(t, `{"error":"username is required"}`, rr.Body.String())
		users.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})

	t.Run("MalformedJSON", func(t *testing.T) {
		users := new(MockUserService)

		rr := serve(newTestRouter(users, nil), jsonRequest(http.MethodPost, "/api/users", `{"username":`))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		users.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})

	t.Run("StoreError", func(t *testing.T) {
		users := new(MockUserService)
		users.On("CreateUser", mock.Anything, "alice").Return(nil, errors.New("duplicate key")).Once()

		rr := serve(newTestRouter(users, nil), formRequest(http.MethodPost, "/api/users", url.Values{"username": {"alice"}}))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.JSONEq(t, `{"error":"Failed to create user"}`, rr.Body.String())
	})
}

func TestAddExercise(t *testing.T) {
	alice := &domain.User{ID: aliceID, Username: "alice"}
	date := time.Date(2023, time.January, 15, 0, 0, 0, 0, time.UTC)
	target := "/api/users/" + aliceID + "/exercises"

	t.Run("Form", func(t *testing.T) {
		exercises := new(MockExerciseService)
		exercises.On("AddExercise", mock.Anything, service.AddExerciseInput{
			UserID: aliceID, Description: "run", Duration: 30, Date: &date,
		}).Return(alice, &domain.Exercise{UserID: aliceID, Description: "run", Duration: 30, Date: date}, nil).Once()

		form := url.Values{"description": {"run"}, "duration": {"30"}, "date": {"2023-01-15"}}
		rr := serve(newTestRouter(nil, exercises), formRequest(http.MethodPost, target, form))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"_id":"`+aliceID+`","username":"alice","description":"run","duration":30,"date":"Sun Jan 15 2023"}`, rr.Body.String())
		exercises.AssertExpectations(t)
	})

	t.Run("JSONWithoutDate", func(t *testing.T) {
		exercises := new(MockExerciseService)
		exercises.On("AddExercise", mock.Anything, service.AddExerciseInput{
			UserID: aliceID, Description: "swim", Duration: 12.5,
		}).Return(alice, &domain.Exercise{Description: "swim", Duration: 12.5, Date: date}, nil).Once()

		rr := serve(newTestRouter(nil, exercises), jsonRequest(http.MethodPost, target, `{"description":"swim","duration":12.5}`))

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp types.ExerciseResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, 12.5, resp.Duration)
		exercises.AssertExpectations(t)
	})

	t.Run("JSONDurationAsString", func(t *testing.T) {
		exercises := new(MockExerciseService)
		exercises.On("AddExercise", mock.Anything, service.AddExerciseInput{
			UserID: aliceID, Description: "row", Duration: 20,
		}).Return(alice, &domain.Exercise{Description: "row", Duration: 20, Date: date}, nil).Once()

		rr := serve(newTestRouter(nil, exercises), jsonRequest(http.MethodPost, target, `{"description":"row","duration":"20"}`))

		assert.Equal(t, http.StatusOK, rr.Code)
		exercises.AssertExpectations(t)
	})

	t.Run("UnknownUserIsPlainText", func(t *testing.T) {
		exercises := new(MockExerciseService)
		exercises.On("AddExercise", mock.Anything, mock.Anything).Return(nil, nil, util.ErrUserNotFound).Once()

		form := url.Values{"description": {"run"}, "duration": {"30"}}
		rr := serve(newTestRouter(nil, exercises), formRequest(http.MethodPost, "/api/users/bogus/exercises", form))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Unknown userId", rr.Body.String())
		assert.Contains(t, rr.Header().Get("Content-Type"), "text/plain")
	})

	t.Run("ValidationErrors", func(t *testing.T) {
		tests := []struct {
			name string
			form url.Values
			want string
		}{
			{"MissingDescription", url.Values{"duration": {"30"}}, "description is required"},
			{"MissingDuration", url.Values{"description": {"run"}}, "duration is required"},
			{"NonNumericDuration", url.Values{"description": {"run"}, "duration": {"thirty"}}, "duration must be a number"},
			{"NaNDuration", url.Values{"description": {"run"}, "duration": {"NaN"}}, "duration must be a number"},
			{"InvalidDate", url.Values{"description": {"run"}, "duration": {"30"}, "date": {"yesterday"}}, "date is invalid"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				exercises := new(MockExerciseService)

				rr := serve(newTestRouter(nil, exercises), formRequest(http.MethodPost, target, tt.form))

				assert.Equal(t, http.StatusBadRequest, rr.Code)
				assert.JSONEq(t, `{"error":"`+tt.want+`"}`, rr.Body.String())
				exercises.AssertNotCalled(t, "AddExercise", mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("StoreError", func(t *testing.T) {
		exercises := new(MockExerciseService)
		exercises.On("AddExercise", mock.Anything, mock.Anything).Return(nil, nil, errors.New("write failed")).Once()

		form := url.Values{"description": {"run"}, "duration": {"30"}}
		rr := serve(newTestRouter(nil, exercises), formRequest(http.MethodPost, target, form))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.JSONEq(t, `{"error":"Failed to add exercise"}`, rr.Body.String())
	})
}

func TestGetLog(t *testing.T) {
	alice := &domain.User{ID: aliceID, Username: "alice"}
	target := "/api/users/" + aliceID + "/logs"

	t.Run("Success", func(t *testing.T) {
		exercises := new(MockExerciseService)
		exercises.On("GetLog", mock.Anything, service.LogQuery{UserID: aliceID}).Return(alice, []domain.Exercise{
			{Description: "run", Duration: 30, Date: time.Date(2023, time.January, 15, 0, 0, 0, 0, time.UTC)},
			{Description: "swim", Duration: 45, Date: time.Date(2023, time.January, 16, 8, 0, 0, 0, time.UTC)},
		}, nil).Once()

		rr := serve(newTestRouter(nil, exercises), httptest.NewRequest(http.MethodGet, target, nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{
			"_id": "`+aliceID+`",
			"username": "alice",
			"count": 2,
			"log": [
				{"description": "run", "duration": 30, "date": "Sun Jan 15 2023"},
				{"description": "swim", "duration": 45, "date": "Mon Jan 16 2023"}
			]
		}`, rr.Body.String())
	})

	t.Run("EmptyLog", func(t *testing.T) {
		exercises := new(MockExerciseService)
		exercises.On("GetLog", mock.Anything, mock.Anything).Return(alice, []domain.Exercise{}, nil).Once()

		rr := serve(newTestRouter(nil, exercises), httptest.NewRequest(http.MethodGet, target, nil))

		assert.JSONEq(t, `{"_id":"`+aliceID+`","username":"alice","count":0,"log":[]}`, rr.Body.String())
	})

	t.Run("QueryParameters", func(t *testing.T) {
		from := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
		to := domain.EndOfDay(time.Date(2023, time.January, 31, 0, 0, 0, 0, time.UTC))

		exercises := new(MockExerciseService)
		exercises.On("GetLog", mock.Anything, service.LogQuery{UserID: aliceID, From: &from, To: &to, Limit: 3}).
			Return(alice, []domain.Exercise{}, nil).Once()

		rr := serve(newTestRouter(nil, exercises), httptest.NewRequest(http.MethodGet, target+"?from=2023-01-01&to=2023-01-31&limit=3", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		exercises.AssertExpectations(t)
	})

	t.Run("NonNumericLimitMeansDefault", func(t *testing.T) {
		exercises := new(MockExerciseService)
		exercises.On("GetLog", mock.Anything, service.LogQuery{UserID: aliceID}).Return(alice, []domain.Exercise{}, nil).Once()

		rr := serve(newTestRouter(nil, exercises), httptest.NewRequest(http.MethodGet, target+"?limit=lots", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		exercises.AssertExpectations(t)
	})

	t.Run("InvalidFrom", func(t *testing.T) {
		exercises := new(MockExerciseService)

		rr := serve(newTestRouter(nil, exercises), httptest.NewRequest(http.MethodGet, target+"?from=garbage", nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.JSONEq(t, `{"error":"from is invalid"}`, rr.Body.String())
	})

	t.Run("UnknownUserIs404JSON", func(t *testing.T) {
		exercises := new(MockExerciseService)
		exercises.On("GetLog", mock.Anything, mock.Anything).Return(nil, nil, util.ErrUserNotFound).Once()

		rr := serve(newTestRouter(nil, exercises), httptest.NewRequest(http.MethodGet, "/api/users/bogus/logs", nil))

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.JSONEq(t, `{"error":"Unknown userId"}`, rr.Body.String())
	})

	t.Run("StoreError", func(t *testing.T) {
		exercises := new(MockExerciseService)
		exercises.On("GetLog", mock.Anything, mock.Anything).Return(nil, nil, errors.New("boom")).Once()

		rr := serve(newTestRouter(nil, exercises), httptest.NewRequest(http.MethodGet, target, nil))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.JSONEq(t, `{"error":"Internal server error"}`, rr.Body.String())
	})
}
