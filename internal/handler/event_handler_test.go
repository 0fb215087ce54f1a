package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-gin-catalog/internal/dto"
	"go-gin-catalog/internal/handler"
	"go-gin-catalog/internal/model"
	"go-gin-catalog/internal/service/mocks"
	apperrors "go-gin-catalog/pkg/app_errors"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const validEventBody = `{
	"name": "Symphony No. 9",
	"description": "Closing night",
	"eventDate": "2025-12-15T20:00:00",
	"capacity": 2000,
	"price": 85.5,
	"venueId": 1
}`

func setupEventTestRouter(mockService *mocks.EventServiceMock) *gin.Engine {
	router := gin.New()
	router.Use(handler.NewProblemResponder(typeBase, nil).Middleware())

	eventHandler := handler.NewEventHandler(mockService)
	eventHandler.RegisterRoutes(router)

	return router
}

func fakeEvent(id, venueID int64) *model.Event {
	now := time.Now().UTC()
	description := gofakeit.Sentence(8)
	return &model.Event{
		ID:          id,
		Name:        gofakeit.Noun(),
		Description: &description,
		EventDate:   gofakeit.FutureDate().UTC(),
		Capacity:    gofakeit.Number(10, 5000),
		Price:       gofakeit.Price(10, 500),
		VenueID:     venueID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestEventHandler_List(t *testing.T) {
	mockService := mocks.NewEventServiceMock()
	router := setupEventTestRouter(mockService)
	mockService.On("List", mock.Anything).Return([]*model.Event{fakeEvent(1, 1)}, nil).Once()

	w := serve(router, httptest.NewRequest(http.MethodGet, "/api/events", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var got []dto.EventResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].VenueID)
}

func TestEventHandler_Count(t *testing.T) {
	mockService := mocks.NewEventServiceMock()
	router := setupEventTestRouter(mockService)
	mockService.On("Count", mock.Anything).Return(int64(0), nil).Once()

	w := serve(router, httptest.NewRequest(http.MethodGet, "/api/events/count", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"count":0}`, w.Body.String())
}

func TestEventHandler_ListByVenue(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewEventServiceMock()
		router := setupEventTestRouter(mockService)
		mockService.On("ListByVenue", mock.Anything, int64(7)).
			Return([]*model.Event{fakeEvent(1, 7), fakeEvent(2, 7)}, nil).Once()

		w := serve(router, httptest.NewRequest(http.MethodGet, "/api/events/venue/7", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		var got []dto.EventResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Len(t, got, 2)
	})

	t.Run("Failed - ConstraintViolation", func(t *testing.T) {
		mockService := mocks.NewEventServiceMock()
		router := setupEventTestRouter(mockService)

		w := serve(router, httptest.NewRequest(http.MethodGet, "/api/events/venue/-1", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		prob := decodeProblem(t, w)
		require.Len(t, prob.Errors, 1)
		assert.Equal(t, "venueId", prob.Errors[0].Field)
		mockService.AssertNotCalled(t, "ListByVenue", mock.Anything, mock.Anything)
	})
}

func TestEventHandler_GetByID(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewEventServiceMock()
		router := setupEventTestRouter(mockService)
		event := fakeEvent(4, 1)
		mockService.On("GetByID", mock.Anything, int64(4)).Return(event, nil).Once()

		w := serve(router, httptest.NewRequest(http.MethodGet, "/api/events/4", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		var got dto.EventResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, event.Name, got.Name)
		assert.Equal(t, *event.Description, *got.Description)
		assert.True(t, event.EventDate.Truncate(time.Second).Equal(got.EventDate))
	})

	t.Run("Failed - NotFound", func(t *testing.T) {
		mockService := mocks.NewEventServiceMock()
		router := setupEventTestRouter(mockService)
		mockService.On("GetByID", mock.Anything, int64(4)).Return(nil, apperrors.NotFound("Event", int64(4))).Once()

		w := serve(router, httptest.NewRequest(http.MethodGet, "/api/events/4", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Event not found with id: 4", decodeProblem(t, w).Detail)
	})
}

func TestEventHandler_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewEventServiceMock()
		router := setupEventTestRouter(mockService)
		mockService.On("Create", mock.Anything, mock.MatchedBy(func(e *model.Event) bool {
			want := time.Date(2025, 12, 15, 20, 0, 0, 0, time.UTC)
			return e.Name == "Symphony No. 9" && e.EventDate.Equal(want) && e.VenueID == 1 && e.Price == 85.5
		})).Return(fakeEvent(9, 1), nil).Once()

		w := serve(router, createJSONHTTPRequest(http.MethodPost, "/api/events", validEventBody))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "/api/events/9", w.Header().Get("Location"))
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - VenueNotFound", func(t *testing.T) {
		mockService := mocks.NewEventServiceMock()
		router := setupEventTestRouter(mockService)
		mockService.On("Create", mock.Anything, mock.Anything).Return(nil, apperrors.NotFound("Venue", int64(1))).Once()

		w := serve(router, createJSONHTTPRequest(http.MethodPost, "/api/events", validEventBody))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Venue not found with id: 1", decodeProblem(t, w).Detail)
	})

	t.Run("Failed - Validation lists every field", func(t *testing.T) {
		mockService := mocks.NewEventServiceMock()
		router := setupEventTestRouter(mockService)

		w := serve(router, createJSONHTTPRequest(http.MethodPost, "/api/events", `{"name":""}`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		prob := decodeProblem(t, w)
		fields := make([]string, 0, len(prob.Errors))
		for _, e := range prob.Errors {
			fields = append(fields, e.Field)
		}
		assert.Equal(t, []string{"name", "eventDate", "capacity", "price", "venueId"}, fields)
		mockService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Failed - Out of range numbers", func(t *testing.T) {
		tests := []struct {
			name    string
			from    string
			to      string
			field   string
			code    string
			message string
		}{
			{"capacity over int32", `"capacity": 2000`, `"capacity": 3000000000`, "capacity", "lte", "must be less than or equal to 2147483647"},
			{"price over NUMERIC(12,2)", `"price": 85.5`, `"price": 100000000000`, "price", "lt", "must be less than 10000000000"},
			{"price below a cent", `"price": 85.5`, `"price": 0.001`, "price", "cents", "must have at most 2 decimal places"},
			{"price with three decimals", `"price": 85.5`, `"price": 12.345`, "price", "cents", "must have at most 2 decimal places"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				mockService := mocks.NewEventServiceMock()
				router := setupEventTestRouter(mockService)
				body := strings.Replace(validEventBody, tt.from, tt.to, 1)

				w := serve(router, createJSONHTTPRequest(http.MethodPost, "/api/events", body))

				assert.Equal(t, http.StatusBadRequest, w.Code)
				prob := decodeProblem(t, w)
				require.Len(t, prob.Errors, 1)
				assert.Equal(t, tt.field, prob.Errors[0].Field)
				assert.Equal(t, tt.code, prob.Errors[0].Code)
				assert.Equal(t, tt.message, prob.Errors[0].Message)
				mockService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("Success - Cent prices", func(t *testing.T) {
		for _, price := range []string{"19.99", "0.01", "9999999999.99"} {
			mockService := mocks.NewEventServiceMock()
			router := setupEventTestRouter(mockService)
			mockService.On("Create", mock.Anything, mock.Anything).Return(fakeEvent(1, 1), nil).Once()
			body := strings.Replace(validEventBody, `"price": 85.5`, `"price": `+price, 1)

			w := serve(router, createJSONHTTPRequest(http.MethodPost, "/api/events", body))

			assert.Equal(t, http.StatusCreated, w.Code, price)
		}
	})

	t.Run("Failed - Bad date", func(t *testing.T) {
		mockService := mocks.NewEventServiceMock()
		router := setupEventTestRouter(mockService)
		body := `{"name":"x","eventDate":"next friday","capacity":1,"price":1,"venueId":1}`

		w := serve(router, createJSONHTTPRequest(http.MethodPost, "/api/events", body))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid value type in request body. Please check data types.", decodeProblem(t, w).Detail)
	})
}

func TestEventHandler_Update(t *testing.T) {
	mockService := mocks.NewEventServiceMock()
	router := setupEventTestRouter(mockService)
	mockService.On("Update", mock.Anything, int64(3), mock.AnythingOfType("*model.Event")).Return(fakeEvent(3, 1), nil).Once()

	w := serve(router, createJSONHTTPRequest(http.MethodPut, "/api/events/3", validEventBody))

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestEventHandler_Delete(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewEventServiceMock()
		router := setupEventTestRouter(mockService)
		mockService.On("Delete", mock.Anything, int64(3)).Return(nil).Once()

		w := serve(router, httptest.NewRequest(http.MethodDelete, "/api/events/3", nil))

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("Failed - NotFound", func(t *testing.T) {
		mockService := mocks.NewEventServiceMock()
		router := setupEventTestRouter(mockService)
		mockService.On("Delete", mock.Anything, int64(3)).Return(apperrors.NotFound("Event", int64(3))).Once()

		w := serve(router, httptest.NewRequest(http.MethodDelete, "/api/events/3", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
