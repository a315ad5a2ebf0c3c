package portal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacehash/portal/internal/cache"
	"github.com/spacehash/portal/internal/catalog"
	"github.com/spacehash/portal/internal/contract"
	"github.com/spacehash/portal/internal/portalconfig"
)

// stubFiller produces one fake document per date without touching a PDF.
type stubFiller struct {
	err error
}

func (f stubFiller) Fill(ctx context.Context, req contract.Request) ([]contract.Generated, error) {
	if f.err != nil {
		return nil, f.err
	}
	docs := make([]contract.Generated, 0, len(req.Dates))
	for _, d := range req.Dates {
		docs = append(docs, contract.Generated{Date: d, Data: []byte("%PDF-stub")})
	}
	return docs, nil
}

func newTestServer(t *testing.T, filler ContractFiller) *Server {
	t.Helper()

	cfg := portalconfig.Default()
	cat := &catalog.Catalog{
		Equipment: []catalog.EquipmentItem{
			{ID: 1, Name: "SM58", MaxQty: 4, Cost: 10, Value: 100},
			{ID: 2, Name: "C414", MaxQty: 2, Cost: 35, Value: 1100},
		},
	}

	sessions := cache.New(time.Minute)
	t.Cleanup(sessions.Stop)

	return New(cfg, cat, filler, sessions)
}

// sessionCookie extracts the rental session cookie set on the first response.
func sessionCookie(t *testing.T, res *http.Response) *http.Cookie {
	t.Helper()
	for _, c := range res.Cookies() {
		if c.Name == rentalCookie {
			return c
		}
	}
	t.Fatal("no rental session cookie set")
	return nil
}

func get(t *testing.T, s *Server, target string, cookie *http.Cookie) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	res, err := s.httpServer.Test(req, 5000)
	require.NoError(t, err)
	return res
}

func postForm(t *testing.T, s *Server, target string, form url.Values, cookie *http.Cookie) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	res, err := s.httpServer.Test(req, 5000)
	require.NoError(t, err)
	return res
}

func TestPagesRender(t *testing.T) {
	s := newTestServer(t, stubFiller{})

	for _, target := range []string{"/", "/home", "/about", "/audio", "/visual", "/rentals"} {
		res := get(t, s, target, nil)
		assert.Equal(t, http.StatusOK, res.StatusCode, target)
	}
}

func TestRentalWorkflow(t *testing.T) {
	s := newTestServer(t, stubFiller{})

	// First visit creates the session.
	res := get(t, s, "/rentals", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	cookie := sessionCookie(t, res)

	// Select a date and some equipment.
	res = postForm(t, s, addDateEndpoint, url.Values{"date": {"2026-09-05"}}, cookie)
	require.Equal(t, http.StatusSeeOther, res.StatusCode)

	res = postForm(t, s, setQuantityEndpoint, url.Values{"item": {"1"}, "quantity": {"2"}}, cookie)
	require.Equal(t, http.StatusSeeOther, res.StatusCode)

	// Submit the request; a valid submission redirects to the preview.
	res = postForm(t, s, submitEndpoint, url.Values{
		"name":    {"Alice Doe"},
		"address": {"12 Main St"},
		"phone":   {"555-0100"},
	}, cookie)
	require.Equal(t, http.StatusSeeOther, res.StatusCode)

	location := res.Header.Get("Location")
	require.True(t, strings.HasPrefix(location, contractsEndpoint+"/"), "unexpected redirect %q", location)

	// The preview page renders and the document is served as a PDF.
	res = get(t, s, location, cookie)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res = get(t, s, location+"/doc/0", cookie)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "application/pdf", res.Header.Get("Content-Type"))

	// Downloading moves the set into the email prompt.
	res = postForm(t, s, location+"/download", nil, cookie)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	// The download variant names the file after renter and date.
	res = get(t, s, location+"/doc/0?download=1", cookie)
	assert.Contains(t, res.Header.Get("Content-Disposition"), "contract-Alice-Doe-2026-09-05.pdf")

	// Closing releases the set.
	res = postForm(t, s, location+"/close", nil, cookie)
	require.Equal(t, http.StatusSeeOther, res.StatusCode)

	res = get(t, s, location, cookie)
	assert.Equal(t, http.StatusSeeOther, res.StatusCode, "a released set must not be reachable")
}

func TestSubmitRejectedWithoutDates(t *testing.T) {
	s := newTestServer(t, stubFiller{})

	res := get(t, s, "/rentals", nil)
	cookie := sessionCookie(t, res)

	res = postForm(t, s, setQuantityEndpoint, url.Values{"item": {"1"}, "quantity": {"1"}}, cookie)
	require.Equal(t, http.StatusSeeOther, res.StatusCode)

	res = postForm(t, s, submitEndpoint, url.Values{
		"name":    {"Alice Doe"},
		"address": {"12 Main St"},
		"phone":   {"555-0100"},
	}, cookie)
	require.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, rentalsEndpoint, res.Header.Get("Location"), "must bounce back to the form")
}

func TestSubmitGenerationFailure(t *testing.T) {
	s := newTestServer(t, stubFiller{err: assert.AnError})

	res := get(t, s, "/rentals", nil)
	cookie := sessionCookie(t, res)

	postForm(t, s, addDateEndpoint, url.Values{"date": {"2026-09-05"}}, cookie)
	postForm(t, s, setQuantityEndpoint, url.Values{"item": {"1"}, "quantity": {"1"}}, cookie)

	res = postForm(t, s, submitEndpoint, url.Values{
		"name":    {"Alice Doe"},
		"address": {"12 Main St"},
		"phone":   {"555-0100"},
	}, cookie)
	require.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, rentalsEndpoint+"?failed=1", res.Header.Get("Location"))
}

func TestQuantityClampedToMax(t *testing.T) {
	s := newTestServer(t, stubFiller{})

	res := get(t, s, "/rentals", nil)
	cookie := sessionCookie(t, res)

	postForm(t, s, setQuantityEndpoint, url.Values{"item": {"2"}, "quantity": {"99"}}, cookie)

	v, ok := s.cache.Get(sessionKey(cookie.Value))
	require.True(t, ok)
	sess := v.(*rentalSession)
	assert.Equal(t, 2, sess.State.Qty(2), "quantity must clamp to the item's max")
}

func TestSoundcloudEmbedURL(t *testing.T) {
	got := soundcloudEmbedURL("https://soundcloud.com/spacehashrecords/late-orbit")

	assert.True(t, strings.HasPrefix(got, "https://w.soundcloud.com/player/?url="))
	assert.Contains(t, got, url.QueryEscape("https://soundcloud.com/spacehashrecords/late-orbit"))
	assert.Contains(t, got, "auto_play=false")
}
