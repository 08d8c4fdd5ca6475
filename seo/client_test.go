package seo_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/lac5q/creative-ads-repository/seo"
	"github.com/stretchr/testify/assert"
)

type recordingArchiver struct {
	mu        sync.Mutex
	endpoints []string
	bodies    [][]byte
}

func (a *recordingArchiver) Archive(ctx context.Context, endpoint string, body []byte) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.endpoints = append(a.endpoints, endpoint)
	a.bodies = append(a.bodies, body)
}

func Test_Client_Do(t *testing.T) {
	t.Run("Succeed", func(t *testing.T) {
		assertions := assert.New(t)

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, pass, ok := r.BasicAuth()
			assertions.True(ok, "basic auth expected")
			assertions.Equal("user", user)
			assertions.Equal("secret", pass)
			assertions.Equal(http.MethodPost, r.Method)
			assertions.Equal(seo.EndpointDomainOverview, r.URL.Path)
			assertions.Equal("application/json", r.Header.Get("Content-Type"))

			var tasks []seo.TaskRequest
			err := json.NewDecoder(r.Body).Decode(&tasks)
			assertions.Nil(err, "failed to decode tasks")
			assertions.Len(tasks, 1)
			assertions.Equal("example.com", tasks[0].Target)
			assertions.Equal("United States", tasks[0].LocationName)

			io.WriteString(w, `{"status_code":20000,"tasks":[{"result":[{"target":"example.com","rank":42}]}]}`)
		}))
		defer srv.Close()

		archiver := &recordingArchiver{}
		client := seo.New("user", "secret",
			seo.WithBaseURL(srv.URL+"/"),
			seo.WithRateLimit(100, 1),
			seo.WithArchiver(archiver),
		)

		ctx, cancel := context.WithTimeout(context.TODO(), time.Minute)
		defer cancel()

		res, err := client.DomainOverview(ctx, "example.com")
		if !assertions.Nil(err, "failed to query") {
			return
		}

		assertions.True(res.OK())
		overview, found := res.First()
		if !assertions.True(found, "result expected") {
			return
		}
		assertions.Equal("example.com", overview.Target)
		assertions.Equal(42.0, *overview.Rank)
		assertions.Nil(overview.PaidETV)

		assertions.Equal([]string{seo.EndpointDomainOverview}, archiver.endpoints)
		assertions.Contains(string(archiver.bodies[0]), `"rank":42`)
	})
	t.Run("GET without payload", func(t *testing.T) {
		assertions := assert.New(t)

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assertions.Equal(http.MethodGet, r.Method)
			io.WriteString(w, `{"status_code":20000}`)
		}))
		defer srv.Close()

		client := seo.New("user", "secret", seo.WithBaseURL(srv.URL))

		var res seo.Response[struct{}]
		err := client.Do(context.TODO(), "/v3/appendix/user_data", nil, &res)
		if !assertions.Nil(err, "failed to query") {
			return
		}
		assertions.True(res.OK())
	})
	t.Run("Invalid JSON", func(t *testing.T) {
		assertions := assert.New(t)

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			io.WriteString(w, "<html><body>Bad gateway</body></html>")
		}))
		defer srv.Close()

		client := seo.New("user", "secret", seo.WithBaseURL(srv.URL))

		_, err := client.Competitors(context.TODO(), "example.com", 10)
		assertions.ErrorIs(err, seo.ErrInvalidJSON)
		assertions.Contains(err.Error(), "failed to parse JSON")
		assertions.Contains(err.Error(), "text/html")
	})
	t.Run("Canceled context", func(t *testing.T) {
		assertions := assert.New(t)

		client := seo.New("user", "secret", seo.WithBaseURL("http://127.0.0.1:1"), seo.WithRateLimit(0.001, 1))
		ctx, cancel := context.WithCancel(context.TODO())
		cancel()

		_, err := client.BacklinksSummary(ctx, "example.com", 20)
		assertions.NotNil(err)
	})
}

func Test_Response_First(t *testing.T) {
	t.Run("Missing levels", func(t *testing.T) {
		assertions := assert.New(t)

		var nilResponse *seo.Response[seo.DomainOverview]
		_, found := nilResponse.First()
		assertions.False(found)

		var payloads = []string{
			`{"status_code":20000}`,
			`{"status_code":20000,"tasks":[]}`,
			`{"status_code":20000,"tasks":[{"result":null}]}`,
			`{"status_code":20000,"tasks":[{"result":[null]}]}`,
		}
		for _, payload := range payloads {
			var res seo.Response[seo.DomainOverview]
			err := json.Unmarshal([]byte(payload), &res)
			if !assertions.Nil(err, "failed to unmarshal: %s", payload) {
				continue
			}
			_, found := res.First()
			assertions.False(found, payload)
		}
	})
	t.Run("Items", func(t *testing.T) {
		assertions := assert.New(t)

		var missing seo.Response[seo.Items[seo.Keyword]]
		json.Unmarshal([]byte(`{"status_code":20000,"tasks":[{"result":[{"items":null}]}]}`), &missing)
		_, found := seo.FirstItems(&missing)
		assertions.False(found, "null items is not data")

		var empty seo.Response[seo.Items[seo.Keyword]]
		json.Unmarshal([]byte(`{"status_code":20000,"tasks":[{"result":[{"items":[]}]}]}`), &empty)
		items, found := seo.FirstItems(&empty)
		assertions.True(found, "an empty list is data")
		assertions.Empty(items)
	})
}
