// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package web

import (
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/pdiddy/journal-search/internal/render"
	"github.com/pdiddy/journal-search/internal/session"
	"github.com/pdiddy/journal-search/pkg/types"
)

func catalog(n int) []types.Article {
	out := make([]types.Article, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, types.Article{
			ID:       i,
			Title:    fmt.Sprintf("语言研究 第%d篇", i),
			Authors:  fmt.Sprintf("作者%d", i),
			Type:     "语言研究",
			Year:     2000 + i%20,
			Issue:    "1",
			Citation: fmt.Sprintf("引用 %d", i),
		})
	}
	return out
}

type fixture struct {
	srv    *httptest.Server
	client *http.Client
	mgr    *session.Manager
}

func newFixture(t *testing.T, key []byte) *fixture {
	t.Helper()
	logger := zaptest.NewLogger(t)
	mgr := session.NewManager(catalog(20), time.Hour, logger)
	t.Cleanup(mgr.Close)

	s := NewServer(mgr, Options{ArticleTypes: types.ArticleTypes, SessionKey: key}, logger)
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &fixture{srv: srv, client: &http.Client{Jar: jar}, mgr: mgr}
}

func (f *fixture) get(t *testing.T, path string) (int, string) {
	t.Helper()
	resp, err := f.client.Get(f.srv.URL + path)
	require.NoError(t, err)
	return readBody(t, resp)
}

func (f *fixture) post(t *testing.T, path string, form url.Values) (int, string) {
	t.Helper()
	resp, err := f.client.PostForm(f.srv.URL+path, form)
	require.NoError(t, err)
	return readBody(t, resp)
}

func readBody(t *testing.T, resp *http.Response) (int, string) {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(b)
}

func TestIndexInitial(t *testing.T) {
	f := newFixture(t, nil)

	status, body := f.get(t, "/")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, types.DefaultTitle)
	assert.Contains(t, body, types.DefaultFooter)
	assert.NotContains(t, body, "检索结果总数")
	assert.Contains(t, body, `<option value="2024">`)
	assert.Equal(t, 1, f.mgr.Len())
}

func TestSearchEmptyCriteria(t *testing.T) {
	f := newFixture(t, nil)

	status, body := f.post(t, "/search", url.Values{"keyword": {"  "}})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, body, render.MsgEmptyCriteria)
	assert.NotContains(t, body, "检索结果总数")
}

func TestSearchInvalidYear(t *testing.T) {
	f := newFixture(t, nil)

	status, body := f.post(t, "/search", url.Values{"year": {"soon"}})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, body, render.MsgInvalidYear)
}

func TestSearchAndPage(t *testing.T) {
	f := newFixture(t, nil)

	status, body := f.post(t, "/search", url.Values{"keyword": {"语言"}})
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "检索结果总数: 20")
	assert.Contains(t, body, "第 1/2 页")
	assert.Contains(t, body, `value="next"`)
	assert.NotContains(t, body, `value="prev"`)
	assert.Contains(t, body, "语言研究 第15篇")
	assert.NotContains(t, body, "语言研究 第16篇")
	assert.Contains(t, body, `value="语言"`, "form keeps the submitted keyword")

	status, body = f.post(t, "/page", url.Values{"nav": {"next"}})
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "第 2/2 页")
	assert.Contains(t, body, "语言研究 第16篇")
	assert.Contains(t, body, `value="first"`)
	assert.NotContains(t, body, `value="next"`)

	// Navigating past the end leaves the page where it is.
	status, body = f.post(t, "/page", url.Values{"nav": {"next"}})
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "第 2/2 页")
}

func TestRejectedSearchKeepsResults(t *testing.T) {
	f := newFixture(t, nil)

	_, _ = f.post(t, "/search", url.Values{"keyword": {"第3篇"}})
	status, body := f.post(t, "/search", url.Values{})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, body, render.MsgEmptyCriteria)
	assert.Contains(t, body, "检索结果总数: 1")
}

func TestReset(t *testing.T) {
	f := newFixture(t, nil)

	_, body := f.post(t, "/search", url.Values{"author": {"作者1"}})
	require.Contains(t, body, "检索结果总数")

	status, body := f.post(t, "/reset", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.NotContains(t, body, "检索结果总数")
	assert.NotContains(t, body, `value="作者1"`)
}

func TestPageErrors(t *testing.T) {
	f := newFixture(t, nil)

	status, _ := f.post(t, "/page", url.Values{"nav": {"sideways"}})
	assert.Equal(t, http.StatusBadRequest, status)

	// No active search: the page is shown again.
	status, body := f.post(t, "/page", url.Values{"nav": {"next"}})
	assert.Equal(t, http.StatusOK, status)
	assert.NotContains(t, body, "检索结果总数")
}

func TestSessionsAreIndependent(t *testing.T) {
	f := newFixture(t, nil)
	_, _ = f.post(t, "/search", url.Values{"keyword": {"语言"}})

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	other := &fixture{srv: f.srv, client: &http.Client{Jar: jar}, mgr: f.mgr}
	_, body := other.get(t, "/")
	assert.NotContains(t, body, "检索结果总数")
	assert.Equal(t, 2, f.mgr.Len())
}

func TestSignedCookie(t *testing.T) {
	key := []byte("0123456789abcdef0123456789abcdef")
	f := newFixture(t, key)

	_, _ = f.post(t, "/search", url.Values{"keyword": {"语言"}})
	u, err := url.Parse(f.srv.URL)
	require.NoError(t, err)
	cookies := f.client.Jar.Cookies(u)
	require.Len(t, cookies, 1)
	id, sig, ok := strings.Cut(cookies[0].Value, ".")
	require.True(t, ok, "cookie carries a signature")
	assert.NotEmpty(t, sig)

	// A forged signature is rejected and a fresh session issued.
	req, err := http.NewRequest(http.MethodGet, f.srv.URL+"/", nil)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: id + ".forged"})
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	status, body := readBody(t, resp)
	assert.Equal(t, http.StatusOK, status)
	assert.NotContains(t, body, "检索结果总数")
	assert.Equal(t, 2, f.mgr.Len())
}

func TestHealthz(t *testing.T) {
	f := newFixture(t, nil)
	status, body := f.get(t, "/healthz")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok\n", body)
	assert.Equal(t, 0, f.mgr.Len())
}
