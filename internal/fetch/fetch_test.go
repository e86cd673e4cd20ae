package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const postingHTML = `<html>
<head><title>Senior Engineer</title></head>
<body>
<nav>Home | Jobs | About</nav>
<main class="job-description">
<h1>Senior Software Engineer</h1>
<p>We are looking for an engineer with Go experience.</p>
<ul><li>Build services</li><li>Review code</li></ul>
</main>
<form id="application-form"><input name="email"></form>
<footer>Copyright</footer>
</body>
</html>`

func TestURL_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(postingHTML))
	}))
	defer server.Close()

	page, err := URL(context.Background(), server.URL, nil)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, page.StatusCode)
	assert.Contains(t, page.HTML, "Senior Software Engineer")
	assert.Contains(t, page.ContentType, "text/html")
}

func TestURL_SetsUserAgent(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
	}))
	defer server.Close()

	_, err := URL(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultUserAgent, gotUA)
}

func TestURL_InvalidURL(t *testing.T) {
	tests := []string{
		"",
		"not a url",
		"://missing-scheme",
	}

	for _, urlStr := range tests {
		_, err := URL(context.Background(), urlStr, nil)

		var ferr *Error
		require.ErrorAs(t, err, &ferr, "url: %q", urlStr)
		assert.Contains(t, ferr.Message, "invalid URL")
	}
}

func TestURL_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	page, err := URL(context.Background(), server.URL, nil)

	var ferr *Error
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, http.StatusNotFound, ferr.StatusCode)
	// The page is still returned for diagnostics
	require.NotNil(t, page)
	assert.Equal(t, http.StatusNotFound, page.StatusCode)
}

func TestURL_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := URL(ctx, server.URL, nil)
	assert.Error(t, err)
}

func TestExtractMainText_UsesContentSelector(t *testing.T) {
	text, err := ExtractMainText(postingHTML, JobPostingSelectors())
	require.NoError(t, err)

	assert.Contains(t, text, "Senior Software Engineer")
	assert.Contains(t, text, "Go experience")
	assert.NotContains(t, text, "Home | Jobs | About")
	assert.NotContains(t, text, "Copyright")
}

func TestExtractMainText_RemovesNoiseSelectors(t *testing.T) {
	html := `<body><main>Description here</main><div class="eeo-statement">EEO text</div></body>`
	text, err := ExtractMainText(html, []string{"body"}, ".eeo-statement")
	require.NoError(t, err)

	assert.Contains(t, text, "Description here")
	assert.NotContains(t, text, "EEO text")
}

func TestExtractMainText_FallsBackToBody(t *testing.T) {
	html := `<body><div>Plain description without known containers</div></body>`
	text, err := ExtractMainText(html, []string{".does-not-exist"})
	require.NoError(t, err)

	assert.Contains(t, text, "Plain description")
}

func TestShouldUseBrowser(t *testing.T) {
	assert.True(t, ShouldUseBrowser("short"))
	assert.True(t, ShouldUseBrowser("   "))
	assert.False(t, ShouldUseBrowser(longText(MinContentLength+1)))
}

func longText(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = 'a'
	}
	return string(b)
}
