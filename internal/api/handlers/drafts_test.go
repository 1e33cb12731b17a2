package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/NB-Software-IND/WealthGenie-Backend/internal/api/handlers"
	"github.com/NB-Software-IND/WealthGenie-Backend/internal/api/request"
	"github.com/NB-Software-IND/WealthGenie-Backend/internal/model"
	"github.com/NB-Software-IND/WealthGenie-Backend/internal/testutil"
)

func TestDraftHandler_CreateDraft(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := handlers.NewDraftHandler(testutil.NewTestDraftService(t, db))

	req := httptest.NewRequest(http.MethodPost, "/api/draft", nil)
	w := httptest.NewRecorder()
	handler.CreateDraft(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("Expected status %d, got %d", http.StatusCreated, w.Code)
	}
	var draft model.Draft
	testutil.DecodeResponse(t, w, &draft)
	if draft.ID == "" {
		t.Error("Expected a generated draft ID")
	}
	if draft.Step != model.StepPersonalProfile {
		t.Errorf("Expected step %d, got %d", model.StepPersonalProfile, draft.Step)
	}
}

func TestDraftHandler_GetDraft(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := testutil.NewTestDraftRepository(t, db)
	handler := handlers.NewDraftHandler(testutil.NewTestDraftService(t, db))

	t.Run("returns the draft", func(t *testing.T) {
		seeded := testutil.NewDraft().
			WithProfile(testutil.NewProfile().Build()).
			Build(t, repo)

		req := testutil.NewRequestWithURLParams(http.MethodGet,
			"/api/draft/"+seeded.ID, map[string]string{"draftID": seeded.ID})
		w := httptest.NewRecorder()
		handler.GetDraft(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
		}
		var draft model.Draft
		testutil.DecodeResponse(t, w, &draft)
		if draft.ID != seeded.ID {
			t.Errorf("Expected draft %s, got %s", seeded.ID, draft.ID)
		}
		if draft.Profile == nil {
			t.Error("Expected the profile section in the response")
		}
	})

	t.Run("returns 404 for an unknown draft", func(t *testing.T) {
		id := testutil.MakeID()
		req := testutil.NewRequestWithURLParams(http.MethodGet,
			"/api/draft/"+id, map[string]string{"draftID": id})
		w := httptest.NewRecorder()
		handler.GetDraft(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status %d, got %d", http.StatusNotFound, w.Code)
		}
	})
}

func TestDraftHandler_UpdateDraft(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := testutil.NewTestDraftRepository(t, db)
	handler := handlers.NewDraftHandler(testutil.NewTestDraftService(t, db))

	t.Run("applies the provided sections", func(t *testing.T) {
		seeded := testutil.NewDraft().Build(t, repo)
		profile := testutil.NewProfile().WithAge(45).Build()
		snapshot := testutil.NewSnapshot().Build()
		step := int(model.StepFinancialSnapshot)
		body := request.UpdateDraftRequest{
			Profile:  &profile,
			Snapshot: &snapshot,
			Step:     &step,
		}

		req := testutil.NewRequestWithBody(http.MethodPut,
			"/api/draft/"+seeded.ID, map[string]string{"draftID": seeded.ID}, body)
		w := httptest.NewRecorder()
		handler.UpdateDraft(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
		}
		var draft model.Draft
		testutil.DecodeResponse(t, w, &draft)
		if draft.Profile == nil || draft.Profile.Age != 45 {
			t.Error("Expected the updated profile in the response")
		}
		if draft.Step != model.StepFinancialSnapshot {
			t.Errorf("Expected step %d, got %d", model.StepFinancialSnapshot, draft.Step)
		}
	})

	t.Run("returns field errors for an invalid profile", func(t *testing.T) {
		seeded := testutil.NewDraft().Build(t, repo)
		profile := testutil.NewProfile().WithName("").Build()
		body := request.UpdateDraftRequest{Profile: &profile}

		req := testutil.NewRequestWithBody(http.MethodPut,
			"/api/draft/"+seeded.ID, map[string]string{"draftID": seeded.ID}, body)
		w := httptest.NewRecorder()
		handler.UpdateDraft(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("Expected status %d, got %d", http.StatusBadRequest, w.Code)
		}
		var response struct {
			Error  string            `json:"error"`
			Fields map[string]string `json:"fields"`
		}
		testutil.DecodeResponse(t, w, &response)
		if _, ok := response.Fields["profile.name"]; !ok {
			t.Errorf("Expected a profile.name field error, got %v", response.Fields)
		}
	})

	t.Run("returns 400 for a malformed body", func(t *testing.T) {
		seeded := testutil.NewDraft().Build(t, repo)

		req := httptest.NewRequest(http.MethodPut, "/api/draft/"+seeded.ID, strings.NewReader("{not json"))
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("draftID", seeded.ID)
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
		w := httptest.NewRecorder()
		handler.UpdateDraft(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status %d, got %d", http.StatusBadRequest, w.Code)
		}
	})

	t.Run("returns 404 for an unknown draft", func(t *testing.T) {
		id := testutil.MakeID()
		step := int(model.StepProposal)
		body := request.UpdateDraftRequest{Step: &step}

		req := testutil.NewRequestWithBody(http.MethodPut,
			"/api/draft/"+id, map[string]string{"draftID": id}, body)
		w := httptest.NewRecorder()
		handler.UpdateDraft(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status %d, got %d", http.StatusNotFound, w.Code)
		}
	})
}

func TestDraftHandler_DeleteDraft(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := testutil.NewTestDraftRepository(t, db)
	handler := handlers.NewDraftHandler(testutil.NewTestDraftService(t, db))

	t.Run("removes the draft", func(t *testing.T) {
		seeded := testutil.NewDraft().Build(t, repo)

		req := testutil.NewRequestWithURLParams(http.MethodDelete,
			"/api/draft/"+seeded.ID, map[string]string{"draftID": seeded.ID})
		w := httptest.NewRecorder()
		handler.DeleteDraft(w, req)

		if w.Code != http.StatusNoContent {
			t.Errorf("Expected status %d, got %d", http.StatusNoContent, w.Code)
		}
		if count := testutil.CountRows(t, db, "draft"); count != 0 {
			t.Errorf("Expected 0 rows, got %d", count)
		}
	})

	t.Run("returns 404 for an unknown draft", func(t *testing.T) {
		id := testutil.MakeID()
		req := testutil.NewRequestWithURLParams(http.MethodDelete,
			"/api/draft/"+id, map[string]string{"draftID": id})
		w := httptest.NewRecorder()
		handler.DeleteDraft(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status %d, got %d", http.StatusNotFound, w.Code)
		}
	})
}
