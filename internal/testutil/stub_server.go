package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
)

// CapturedRequest is what the stub saw for one call.
type CapturedRequest struct {
	Method      string
	Path        string
	ContentType string
	Body        []byte
}

// StubResponse is a canned reply.
type StubResponse struct {
	Status int
	Body   string
}

// StubServer imitates the Wandbox JSON API with canned replies.
type StubServer struct {
	*httptest.Server

	mu        sync.Mutex
	compile   StubResponse
	list      StubResponse
	permlinks map[string]StubResponse
	requests  []CapturedRequest
}

// NewStubServer starts a stub that is closed with the test.
// wrap, when non-nil, decorates the gin engine (e.g. with a compression handler).
func NewStubServer(t *testing.T, wrap func(http.Handler) http.Handler) *StubServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := &StubServer{
		compile:   StubResponse{Status: http.StatusOK, Body: `{"status":"0","program_message":""}`},
		list:      StubResponse{Status: http.StatusOK, Body: `[]`},
		permlinks: make(map[string]StubResponse),
	}

	router := gin.New()
	router.POST("/api/compile.json", func(c *gin.Context) {
		s.capture(c)
		s.reply(c, s.compileResponse())
	})
	router.GET("/api/list.json", func(c *gin.Context) {
		s.capture(c)
		s.reply(c, s.listResponse())
	})
	router.GET("/api/permlink/:link", func(c *gin.Context) {
		s.capture(c)
		s.reply(c, s.permlinkResponse(c.Param("link")))
	})

	var handler http.Handler = router
	if wrap != nil {
		handler = wrap(router)
	}
	s.Server = httptest.NewServer(handler)
	t.Cleanup(s.Close)
	return s
}

// OnCompile sets the compile.json reply.
func (s *StubServer) OnCompile(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.compile = StubResponse{Status: status, Body: body}
}

// OnList sets the list.json reply.
func (s *StubServer) OnList(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.list = StubResponse{Status: status, Body: body}
}

// OnPermlink sets the reply for one link; unknown links get a 404 error body.
func (s *StubServer) OnPermlink(link string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.permlinks[link] = StubResponse{Status: status, Body: body}
}

// Requests returns every request received so far.
func (s *StubServer) Requests() []CapturedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]CapturedRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// LastRequest returns the most recent request or fails the test.
func (s *StubServer) LastRequest(t *testing.T) CapturedRequest {
	t.Helper()
	reqs := s.Requests()
	if len(reqs) == 0 {
		t.Fatal("stub server received no request")
	}
	return reqs[len(reqs)-1]
}

func (s *StubServer) capture(c *gin.Context) {
	body, _ := io.ReadAll(c.Request.Body)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, CapturedRequest{
		Method:      c.Request.Method,
		Path:        c.Request.URL.Path,
		ContentType: c.GetHeader("Content-Type"),
		Body:        body,
	})
}

func (s *StubServer) compileResponse() StubResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.compile
}

func (s *StubServer) listResponse() StubResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list
}

func (s *StubServer) permlinkResponse(link string) StubResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	if resp, ok := s.permlinks[link]; ok {
		return resp
	}
	return StubResponse{Status: http.StatusNotFound, Body: `{"error":"not found"}`}
}

func (s *StubServer) reply(c *gin.Context, resp StubResponse) {
	c.Data(resp.Status, "application/json", []byte(resp.Body))
}
