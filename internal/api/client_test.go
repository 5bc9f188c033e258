package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MichonGoddijn231849/emolens/internal/segment"
)

func TestAnalyze(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/predict-any" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("x-plan"); got != "plus" {
			t.Errorf("x-plan header = %q, want plus", got)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("bad multipart body: %v", err)
		}
		if got := r.FormValue("src"); got != "https://example.com/talk.mp4" {
			t.Errorf("src = %q", got)
		}
		if got := r.FormValue("start_time"); got != "00:00:10,000" {
			t.Errorf("start_time = %q", got)
		}
		fmt.Fprint(w, `{"message":"ok","download":{"filename":"talk.csv","link":"http://x/files/talk.csv"}}`)
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second)
	res, err := c.Analyze(context.Background(), AnalyzeRequest{
		Src:       "https://example.com/talk.mp4",
		StartTime: "00:00:10,000",
		Plan:      "plus",
	})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if res.Download.Filename != "talk.csv" || res.Download.Link != "http://x/files/talk.csv" {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestAnalyzeRequiresSource(t *testing.T) {
	c := New("http://localhost:0", time.Second)
	if _, err := c.Analyze(context.Background(), AnalyzeRequest{}); err == nil {
		t.Error("expected error for request without src or file")
	}
}

func TestFetchArtifact(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "start,sentence,emotion\n")
		fmt.Fprint(w, `"00:00:00,000",hello,joy`+"\n")
		fmt.Fprint(w, `"00:00:05,000",world,sadness`+"\n")
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second)
	events, err := c.FetchArtifact(context.Background(), srv.URL+"/files/talk.csv")
	if err != nil {
		t.Fatalf("FetchArtifact failed: %v", err)
	}
	if len(events) != 2 || events[0].Label != "joy" || events[1].StartMs != 5000 {
		t.Errorf("unexpected events: %+v", events)
	}
}

func TestFetchArtifactErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/missing":
			http.NotFound(w, r)
		case "/garbage":
			fmt.Fprint(w, "a,b\n1,2\n")
		}
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second)
	if _, err := c.FetchArtifact(context.Background(), srv.URL+"/missing"); err == nil {
		t.Error("expected error for HTTP 404")
	}
	if _, err := c.FetchArtifact(context.Background(), srv.URL+"/garbage"); err == nil {
		t.Error("expected error for unparseable artifact")
	}
}

func TestSubmitFeedbackConfirmation(t *testing.T) {
	var got FeedbackPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/predictions/talk.csv/feedback" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("bad body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second)
	if err := c.SubmitFeedback(context.Background(), "talk.csv", ConfirmationPayload()); err != nil {
		t.Fatalf("SubmitFeedback failed: %v", err)
	}
	if !got.Correct || len(got.Corrections) != 0 {
		t.Errorf("expected {correct:true}, got %+v", got)
	}
}

func TestSubmitFeedbackCorrections(t *testing.T) {
	var got FeedbackPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	events := []segment.Event{
		{StartMs: 0, EndMs: 5000, HasEnd: true, Text: "hello", Translation: "hallo", Label: "joy"},
		{StartMs: 5000, EndMs: 8000, HasEnd: true, Text: "world", Translation: "Welt", Label: "anger"},
	}

	c := New(srv.URL, 5*time.Second)
	if err := c.SubmitFeedback(context.Background(), "talk.csv", CorrectionPayload(events)); err != nil {
		t.Fatalf("SubmitFeedback failed: %v", err)
	}

	if got.Correct {
		t.Error("correction payload should have correct=false")
	}
	if len(got.Corrections) != 2 {
		t.Fatalf("expected 2 corrections, got %d", len(got.Corrections))
	}
	first := got.Corrections[0]
	if first.ID != 1 || first.Start != "00:00:00,000" || first.End != "00:00:05,000" ||
		first.Sentence != "hello" || first.Translation != "hallo" || first.Emotion != "joy" {
		t.Errorf("unexpected first correction: %+v", first)
	}
	if got.Corrections[1].Emotion != "anger" {
		t.Errorf("edited label lost: %+v", got.Corrections[1])
	}
}

func TestSubmitFeedbackFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second)
	if err := c.SubmitFeedback(context.Background(), "talk.csv", ConfirmationPayload()); err == nil {
		t.Error("expected error for HTTP 500")
	}
}
