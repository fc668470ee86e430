package middleware

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type CompressTestSuite struct {
	suite.Suite
	router *chi.Mux
	ts     *httptest.Server
	client *resty.Client
}

func (suite *CompressTestSuite) SetupTest() {
	suite.router = chi.NewRouter()
	suite.ts = httptest.NewServer(suite.router)
	// resty would otherwise inflate gzip bodies itself and hide the header under test
	suite.client = resty.New().SetTransport(&http.Transport{DisableCompression: true})
}

func (suite *CompressTestSuite) TearDownTest() {
	suite.ts.Close()
}

func TestCompressTestSuite(t *testing.T) {
	suite.Run(t, new(CompressTestSuite))
}

func gzipped(t testing.TB, payload string) []byte {
	var b bytes.Buffer
	gz := gzip.NewWriter(&b)
	_, err := gz.Write([]byte(payload))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	return b.Bytes()
}

func (suite *CompressTestSuite) TestCompressHandle() {
	suite.router.Use(CompressHandle)
	suite.router.Get("/api/screenshots", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	})
	suite.router.Get("/api/screenshots/1/download", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("png"))
	})

	tests := []struct {
		name             string
		path             string
		acceptEncoding   string
		expectedEncoding string
		expectedBody     string
	}{
		{name: "no encoding", path: "/api/screenshots", acceptEncoding: "", expectedEncoding: "", expectedBody: "[]"},
		{name: "gzip encoding", path: "/api/screenshots", acceptEncoding: "gzip, deflate", expectedEncoding: "gzip", expectedBody: "[]"},
		{name: "download is never compressed", path: "/api/screenshots/1/download", acceptEncoding: "gzip", expectedEncoding: "", expectedBody: "png"},
	}
	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			res, err := suite.client.R().SetDoNotParseResponse(true).SetHeader("Accept-Encoding", tt.acceptEncoding).Get(suite.ts.URL + tt.path)
			require.NoError(t, err)
			defer res.RawBody().Close()
			assert.Equal(t, tt.expectedEncoding, res.Header().Get("Content-Encoding"))
			var body io.Reader = res.RawBody()
			if tt.expectedEncoding == "gzip" {
				gz, err := gzip.NewReader(body)
				require.NoError(t, err)
				body = gz
			}
			b, err := io.ReadAll(body)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedBody, string(b))
		})
	}
}

func (suite *CompressTestSuite) TestDecompressHandle() {
	suite.router.Use(DecompressHandle)
	suite.router.Post("/post", func(w http.ResponseWriter, r *http.Request) {
		b, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		_, _ = w.Write(b)
	})

	tests := []struct {
		name     string
		encoding string
		body     []byte
		code     int
		want     string
	}{
		{name: "plain body", encoding: "", body: []byte(`{"url":"https://a.dev"}`), code: http.StatusOK, want: `{"url":"https://a.dev"}`},
		{name: "gzip body", encoding: "gzip", body: gzipped(suite.T(), `{"url":"https://b.dev"}`), code: http.StatusOK, want: `{"url":"https://b.dev"}`},
		{name: "broken gzip body", encoding: "gzip", body: []byte("not gzip"), code: http.StatusBadRequest},
	}
	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			res, err := suite.client.R().SetHeader("Content-Encoding", tt.encoding).SetBody(tt.body).Post(suite.ts.URL + "/post")
			require.NoError(t, err)
			assert.Equal(t, tt.code, res.StatusCode())
			if tt.code == http.StatusOK {
				assert.Equal(t, tt.want, string(res.Body()))
			}
		})
	}
}

// Benchmarks

func BenchmarkCompressHandle(b *testing.B) {
	router := chi.NewRouter()
	router.Use(CompressHandle)
	router.Get("/get", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":1,"title":"example.com"}]`))
	})
	ts := httptest.NewServer(router)
	defer ts.Close()
	client := resty.New()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = client.R().SetHeader("Accept-Encoding", "gzip").Get(ts.URL + "/get")
	}
}

func BenchmarkDecompressHandle(b *testing.B) {
	router := chi.NewRouter()
	router.Use(DecompressHandle)
	router.Post("/post", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(w, r.Body)
	})
	ts := httptest.NewServer(router)
	defer ts.Close()
	client := resty.New()
	payload := gzipped(b, `{"url":"https://a.dev"}`)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = client.R().SetHeader("Content-Encoding", "gzip").SetBody(payload).Post(ts.URL + "/post")
	}
}
