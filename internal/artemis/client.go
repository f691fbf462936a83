// Package artemis is the REST client for the course-management server.
package artemis

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/avast/retry-go"
	"resty.dev/v3"

	"github.com/verte-zerg/lectern/internal/model"
)

// HTTPError is returned when the server answers with a non-2xx status.
type HTTPError struct {
	StatusCode int
	Method     string
	Path       string
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("response error %d on %s %s: %s", e.StatusCode, e.Method, e.Path, e.Message)
}

// Status returns the HTTP status code.
func (e *HTTPError) Status() int {
	return e.StatusCode
}

// Options configures a Client.
type Options struct {
	BaseURL string
	Token   string
	Timeout time.Duration
	// Retries is the number of extra attempts for idempotent reads. Writes are never retried.
	Retries uint
}

// Client talks to the lecture and course endpoints.
type Client struct {
	httpClient       *resty.Client
	maxRetryAttempts uint
}

// NewClient creates a client for the server at opts.BaseURL.
func NewClient(opts Options) *Client {
	client := resty.New()
	client.SetBaseURL(opts.BaseURL)
	client.SetHeader("Accept", "application/json")
	if opts.Token != "" {
		client.SetAuthToken(opts.Token)
	}
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}
	return &Client{
		httpClient:       client,
		maxRetryAttempts: opts.Retries,
	}
}

// Close releases the underlying HTTP client.
func (c *Client) Close() error {
	return c.httpClient.Close()
}

// Create persists a new lecture.
func (c *Client) Create(ctx context.Context, lecture *model.Lecture) (*model.Lecture, error) {
	response, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(lecture).
		SetResult(&model.Lecture{}).
		Post("/api/lectures")
	if err != nil {
		return nil, fmt.Errorf("httpClient.Post > %w", err)
	}
	return lectureResult(response, http.MethodPost, "/api/lectures")
}

// Update saves changes of an existing lecture.
func (c *Client) Update(ctx context.Context, lecture *model.Lecture) (*model.Lecture, error) {
	if lecture.IsNew() {
		return nil, errors.New("update: lecture has no id")
	}
	response, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(lecture).
		SetResult(&model.Lecture{}).
		Put("/api/lectures")
	if err != nil {
		return nil, fmt.Errorf("httpClient.Put > %w", err)
	}
	return lectureResult(response, http.MethodPut, "/api/lectures")
}

// FindWithDetails loads a lecture including its course.
func (c *Client) FindWithDetails(ctx context.Context, lectureID int64) (*model.Lecture, error) {
	path := "/api/lectures/" + strconv.FormatInt(lectureID, 10) + "/details"
	var result *model.Lecture
	err := c.withRetry(ctx, func() error {
		response, err := c.httpClient.R().
			SetContext(ctx).
			SetResult(&model.Lecture{}).
			Get(path)
		if err != nil {
			return fmt.Errorf("httpClient.Get > %w", err)
		}
		result, err = lectureResult(response, http.MethodGet, path)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// FindCourse loads a course by id.
func (c *Client) FindCourse(ctx context.Context, courseID int64) (*model.Course, error) {
	path := "/api/courses/" + strconv.FormatInt(courseID, 10)
	var result *model.Course
	err := c.withRetry(ctx, func() error {
		response, err := c.httpClient.R().
			SetContext(ctx).
			SetResult(&model.Course{}).
			Get(path)
		if err != nil {
			return fmt.Errorf("httpClient.Get > %w", err)
		}
		if response.IsError() {
			return newHTTPError(response, http.MethodGet, path)
		}
		course, ok := response.Result().(*model.Course)
		if !ok || course == nil {
			return fmt.Errorf("empty course response: %s", response.String())
		}
		result = course
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// FindCourseLectures lists the lectures of a course.
func (c *Client) FindCourseLectures(ctx context.Context, courseID int64) ([]model.Lecture, error) {
	path := "/api/courses/" + strconv.FormatInt(courseID, 10) + "/lectures"
	var result []model.Lecture
	err := c.withRetry(ctx, func() error {
		response, err := c.httpClient.R().
			SetContext(ctx).
			SetResult(&[]model.Lecture{}).
			Get(path)
		if err != nil {
			return fmt.Errorf("httpClient.Get > %w", err)
		}
		if response.IsError() {
			return newHTTPError(response, http.MethodGet, path)
		}
		lectures, ok := response.Result().(*[]model.Lecture)
		if !ok || lectures == nil {
			return fmt.Errorf("empty lectures response: %s", response.String())
		}
		result = *lectures
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// SplitInfo uploads a slide file and returns the server's proposal for attachment units.
func (c *Client) SplitInfo(ctx context.Context, lectureID int64, file model.SelectedFile) (*model.LectureUnitInformation, error) {
	path := "/api/lectures/" + strconv.FormatInt(lectureID, 10) + "/attachment-units/split-info"
	response, err := c.httpClient.R().
		SetContext(ctx).
		SetFileReader("file", file.Name, bytes.NewReader(file.Data)).
		SetResult(&model.LectureUnitInformation{}).
		Post(path)
	if err != nil {
		return nil, fmt.Errorf("httpClient.Post > %w", err)
	}
	if response.IsError() {
		return nil, newHTTPError(response, http.MethodPost, path)
	}
	info, ok := response.Result().(*model.LectureUnitInformation)
	if !ok || info == nil {
		return nil, fmt.Errorf("empty split information: %s", response.String())
	}
	return info, nil
}

func (c *Client) withRetry(ctx context.Context, fn func() error) error {
	return retry.Do(
		fn,
		retry.Context(ctx),
		retry.Attempts(c.maxRetryAttempts+1),
		retry.LastErrorOnly(true),
		retry.RetryIf(isRetryableError),
		retry.OnRetry(func(n uint, err error) {
			slog.Default().Info("retrying request", "attempt", n+1, "error", err)
		}),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	)
}

// isRetryableError reports whether a failed read may succeed when repeated.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode >= http.StatusInternalServerError || httpErr.StatusCode == http.StatusTooManyRequests
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}

func lectureResult(response *resty.Response, method, path string) (*model.Lecture, error) {
	if response.IsError() {
		return nil, newHTTPError(response, method, path)
	}
	lecture, ok := response.Result().(*model.Lecture)
	if !ok || lecture == nil || lecture.ID == nil {
		return nil, fmt.Errorf("empty lecture response: %s", response.String())
	}
	return lecture, nil
}

func newHTTPError(response *resty.Response, method, path string) *HTTPError {
	return &HTTPError{
		StatusCode: response.StatusCode(),
		Method:     method,
		Path:       path,
		Message:    response.String(),
	}
}
