package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/JamesM813/NFL-Locked-In/internal/domain/pick"
	"github.com/JamesM813/NFL-Locked-In/internal/usecase"
)

func TestWriteSuccess_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	if _, ok := body["data"]; !ok {
		t.Fatalf("expected data key in success response")
	}
	if _, ok := body["error"]; ok {
		t.Fatalf("did not expect error key in success response")
	}
}

func TestWriteError_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("%w: bad payload", usecase.ErrInvalidInput))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	errorObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object in response")
	}
	if got, _ := errorObj["status"].(string); got != "INVALID_ARGUMENT" {
		t.Fatalf("expected error status INVALID_ARGUMENT, got %v", errorObj["status"])
	}
}

func TestMapError_PickLifecycleSentinels(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		err        error
		wantHTTP   int
		wantReason string
		wantStatus string
	}{
		{
			name:       "no game for team and week",
			err:        fmt.Errorf("submit: %w", pick.ErrNoGameForTeamWeek),
			wantHTTP:   http.StatusBadRequest,
			wantReason: "noGameForTeamWeek",
			wantStatus: "INVALID_ARGUMENT",
		},
		{
			name:       "pick window closed",
			err:        fmt.Errorf("submit: %w", pick.ErrPickWindowClosed),
			wantHTTP:   http.StatusConflict,
			wantReason: "pickWindowClosed",
			wantStatus: "FAILED_PRECONDITION",
		},
		{
			name:       "team already used",
			err:        fmt.Errorf("submit: %w", pick.ErrTeamAlreadyUsed),
			wantHTTP:   http.StatusConflict,
			wantReason: "teamAlreadyUsed",
			wantStatus: "FAILED_PRECONDITION",
		},
		{
			name:       "not found",
			err:        fmt.Errorf("lookup: %w", usecase.ErrNotFound),
			wantHTTP:   http.StatusNotFound,
			wantReason: "notFound",
			wantStatus: "NOT_FOUND",
		},
		{
			name:       "unmapped errors stay internal",
			err:        fmt.Errorf("boom"),
			wantHTTP:   http.StatusInternalServerError,
			wantReason: "internalError",
			wantStatus: "INTERNAL",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mapped := mapError(context.Background(), tc.err)
			if mapped.HTTPStatus != tc.wantHTTP {
				t.Fatalf("expected http status %d, got %d", tc.wantHTTP, mapped.HTTPStatus)
			}
			if mapped.Reason != tc.wantReason {
				t.Fatalf("expected reason %q, got %q", tc.wantReason, mapped.Reason)
			}
			if mapped.Status != tc.wantStatus {
				t.Fatalf("expected status %q, got %q", tc.wantStatus, mapped.Status)
			}
		})
	}
}
