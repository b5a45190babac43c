package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/tasksystem/core/internal/domain/entities"
	"github.com/tasksystem/core/internal/infrastructure/logger"
)

func TestStatusForKind(t *testing.T) {
	tests := []struct {
		kind     entities.ErrKind
		expected int
	}{
		{entities.KindNotFound, http.StatusNotFound},
		{entities.KindBusiness, http.StatusBadRequest},
		{entities.KindConflict, http.StatusConflict},
		{entities.KindUnauthorized, http.StatusUnauthorized},
		{entities.KindUnknown, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := statusForKind(tt.kind); got != tt.expected {
			t.Errorf("statusForKind(%v) = %d, expected %d", tt.kind, got, tt.expected)
		}
	}
}

func TestCustomErrorHandler_DomainErrorPayload(t *testing.T) {
	e := echo.New()
	appLogger := &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
	handler := customErrorHandler(appLogger)

	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedError  string
	}{
		{
			"not found",
			entities.NotFoundf("Can't find task by id: %d", 42),
			http.StatusNotFound,
			"Can't find task by id: 42",
		},
		{
			"business rule",
			entities.Businessf("Date incorrect please entry valid date"),
			http.StatusBadRequest,
			"Date incorrect please entry valid date",
		},
		{
			"conflict",
			entities.Conflictf("user with email a@b.c already exists"),
			http.StatusConflict,
			"user with email a@b.c already exists",
		},
		{
			"unauthorized",
			entities.Unauthorizedf("invalid credentials"),
			http.StatusUnauthorized,
			"invalid credentials",
		},
		{
			"echo http error",
			echo.NewHTTPError(http.StatusBadRequest, "Invalid ID"),
			http.StatusBadRequest,
			"Invalid ID",
		},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks/42", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		handler(tt.err, c)

		if rec.Code != tt.expectedStatus {
			t.Errorf("%s: status = %d, expected %d", tt.name, rec.Code, tt.expectedStatus)
			continue
		}

		var payload errorPayload
		if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
			t.Errorf("%s: invalid JSON body: %v", tt.name, err)
			continue
		}
		if payload.Status != tt.expectedStatus {
			t.Errorf("%s: payload status = %d, expected %d", tt.name, payload.Status, tt.expectedStatus)
		}
		if payload.Error != tt.expectedError {
			t.Errorf("%s: payload error = %q, expected %q", tt.name, payload.Error, tt.expectedError)
		}
		if payload.Timestamp == "" {
			t.Errorf("%s: expected timestamp in payload", tt.name)
		}
	}
}

func TestCustomErrorHandler_PlainErrorIsInternal(t *testing.T) {
	e := echo.New()
	appLogger := &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
	handler := customErrorHandler(appLogger)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/projects", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler(errors.New("disk on fire"), c)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500, got %d", rec.Code)
	}
}
