// Package api is the HTTP client for the emotion inference service.
//
// The service runs the transcription/translation/classification pipeline
// and hands back a downloadable CSV artifact; this client starts analyses,
// downloads artifacts, and posts feedback. Request pacing uses a small
// rate limiter so a busy dashboard cannot hammer the service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/MichonGoddijn231849/emolens/internal/logging"
	"github.com/MichonGoddijn231849/emolens/internal/segment"
	"github.com/MichonGoddijn231849/emolens/internal/timecode"
)

// Client talks to the inference service.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// New creates a client for the service at baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Every(200*time.Millisecond), 3),
	}
}

// AnalyzeRequest describes one analysis run. Either Src (a URL or
// server-side path) or File (uploaded bytes plus name) must be set.
type AnalyzeRequest struct {
	Src       string
	FileName  string
	File      []byte
	StartTime string // optional clip bound, timecode string
	EndTime   string
	Plan      string // basic | plus | pro, sent as the x-plan header
}

// AnalyzeResult is the service's answer: a reference to the downloadable
// artifact.
type AnalyzeResult struct {
	Message  string `json:"message"`
	Download struct {
		Filename string `json:"filename"`
		Link     string `json:"link"`
	} `json:"download"`
}

// Analyze runs the pipeline on a source and returns the artifact
// reference.
func (c *Client) Analyze(ctx context.Context, req AnalyzeRequest) (AnalyzeResult, error) {
	var result AnalyzeResult

	if err := c.limiter.Wait(ctx); err != nil {
		return result, err
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if len(req.File) > 0 {
		fw, err := mw.CreateFormFile("file", req.FileName)
		if err != nil {
			return result, fmt.Errorf("failed to build upload: %w", err)
		}
		if _, err := fw.Write(req.File); err != nil {
			return result, fmt.Errorf("failed to build upload: %w", err)
		}
	} else if req.Src != "" {
		mw.WriteField("src", req.Src)
	} else {
		return result, fmt.Errorf("analyze request needs a src or a file")
	}
	if req.StartTime != "" {
		mw.WriteField("start_time", req.StartTime)
	}
	if req.EndTime != "" {
		mw.WriteField("end_time", req.EndTime)
	}
	if err := mw.Close(); err != nil {
		return result, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict-any", &body)
	if err != nil {
		return result, err
	}
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())
	if req.Plan != "" {
		httpReq.Header.Set("x-plan", req.Plan)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return result, fmt.Errorf("analysis request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return result, fmt.Errorf("analysis request failed: HTTP %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return result, fmt.Errorf("failed to decode analysis response: %w", err)
	}

	logging.Info("Analysis complete", "artifact", result.Download.Filename)
	return result, nil
}

// FetchArtifact downloads and parses a result artifact. Both the HTTP
// fetch and the parse can fail; either way the caller treats it as a
// session-level fetch failure.
func (c *Client) FetchArtifact(ctx context.Context, link string) ([]segment.Event, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	// The service may hand back a path rather than a full URL.
	if strings.HasPrefix(link, "/") {
		link = c.baseURL + link
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch artifact: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch artifact: HTTP %d", resp.StatusCode)
	}

	events, err := segment.ParseArtifact(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse artifact: %w", err)
	}
	return events, nil
}

// CorrectionRow is the wire shape of one corrected segment, matching what
// the service's feedback endpoint expects.
type CorrectionRow struct {
	ID          int    `json:"id"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Sentence    string `json:"sentence"`
	Translation string `json:"translation"`
	Emotion     string `json:"emotion"`
}

// FeedbackPayload is the feedback submission body: either a plain
// confirmation or a full corrected segment set.
type FeedbackPayload struct {
	Correct     bool            `json:"correct"`
	Corrections []CorrectionRow `json:"corrections,omitempty"`
}

// ConfirmationPayload builds the {correct:true} body.
func ConfirmationPayload() FeedbackPayload {
	return FeedbackPayload{Correct: true}
}

// CorrectionPayload builds the {correct:false} body carrying the full
// edited segment set.
func CorrectionPayload(events []segment.Event) FeedbackPayload {
	rows := make([]CorrectionRow, len(events))
	for i, ev := range events {
		end := ""
		if ev.HasEnd {
			end = timecode.Format(ev.EndMs)
		}
		rows[i] = CorrectionRow{
			ID:          i + 1,
			Start:       timecode.Format(ev.StartMs),
			End:         end,
			Sentence:    ev.Text,
			Translation: ev.Translation,
			Emotion:     ev.Label,
		}
	}
	return FeedbackPayload{Correct: false, Corrections: rows}
}

// SubmitFeedback posts a feedback payload keyed by the artifact's
// filename. Any non-error status is success; the response body is
// ignored beyond that.
func (c *Client) SubmitFeedback(ctx context.Context, artifactFilename string, payload FeedbackPayload) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/api/predictions/%s/feedback", c.baseURL, url.PathEscape(artifactFilename))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("feedback submission failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("feedback submission failed: HTTP %d", resp.StatusCode)
	}

	logging.Info("Feedback submitted", "artifact", artifactFilename, "correct", payload.Correct)
	return nil
}
