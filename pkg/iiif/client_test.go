package iiif

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveArchiveID(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{"ark url", "https://antenati.cultura.gov.it/ark:/12657/an_ua19974103", "19974103", false},
		{"two plain numbers", "https://example.test/8/segments/405", "405", false},
		{"one number", "https://example.test/gallery/42", "", true},
		{"no numbers", "https://example.test/gallery", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ResolveArchiveID(tt.url)
			if tt.wantErr {
				var malformed *MalformedLocatorError
				assert.ErrorAs(t, err, &malformed)
				assert.Equal(t, tt.url, malformed.URL)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

const manifestJSON = `{
	"@id": "https://iiif.test/manifest.json",
	"label": "Nati 1866",
	"metadata": [
		{"label": "Contesto archivistico", "value": "Archivio di Stato di Firenze"},
		{"label": "Titolo", "value": "Nati 1866"},
		{"label": "Tipologia", "value": "Registro"}
	],
	"sequences": [{"canvases": [
		{"label": "Pagina 1", "images": [{"resource": {"@id": "https://img.test/1", "format": "image/jpeg"}}]},
		{"label": "Pagina 2", "images": [{"resource": {"@id": "https://img.test/2", "format": "image/jpeg"}}]}
	]}]
}`

// galleryServer serves a landing page whose manifestId line points back
// at the same server.
func galleryServer(t *testing.T, manifest []byte, manifestContentType string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	mux.HandleFunc("/gallery", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, "<html>\n<script>\nmanifestId: '%s/manifest.json',\n</script>\n</html>", server.URL)
	})
	mux.HandleFunc("/manifest.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", manifestContentType)
		w.Write(manifest)
	})
	return server
}

func TestFetchManifest(t *testing.T) {
	server := galleryServer(t, []byte(manifestJSON), "application/json; charset=utf-8")
	client := NewClient("", nil)

	manifest, err := client.FetchManifest(context.Background(), server.URL+"/gallery")
	require.NoError(t, err)

	title, err := manifest.MetadataValue(LabelTitle)
	assert.NoError(t, err)
	assert.Equal(t, "Nati 1866", title)

	canvases := manifest.Canvases(0, -1)
	require.Len(t, canvases, 2)
	assert.Equal(t, "Pagina 1", canvases[0].Label)
	assert.Equal(t, "https://img.test/2", canvases[1].ResourceID())
}

func TestFetchManifestDeclaredCharset(t *testing.T) {
	// "Societ\xe0" is latin-1 for "Società"; the decoder must convert it
	// before the JSON parse.
	latin1 := []byte("{\"metadata\": [{\"label\": \"Titolo\", \"value\": \"Societ\xe0\"}], \"sequences\": []}")
	server := galleryServer(t, latin1, "application/json; charset=iso-8859-1")
	client := NewClient("", nil)

	manifest, err := client.FetchManifest(context.Background(), server.URL+"/gallery")
	require.NoError(t, err)

	title, err := manifest.MetadataValue(LabelTitle)
	assert.NoError(t, err)
	assert.Equal(t, "Società", title)
}

func TestFetchManifestSendsReferer(t *testing.T) {
	var got string
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/gallery", func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Referer")
		fmt.Fprintf(w, "manifestId: '%s/manifest.json'", server.URL)
	})
	mux.HandleFunc("/manifest.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"sequences": []}`))
	})

	client := NewClient("", nil)
	_, err := client.FetchManifest(context.Background(), server.URL+"/gallery")
	require.NoError(t, err)
	assert.Equal(t, DefaultReferer, got)
}

func TestFetchManifestNoMarker(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html>\n<body>nothing here</body>\n</html>")
	}))
	defer server.Close()

	client := NewClient("", nil)
	_, err := client.FetchManifest(context.Background(), server.URL)
	var notFound *ManifestNotFoundError
	assert.ErrorAs(t, err, &notFound)
	assert.Equal(t, server.URL, notFound.URL)
}

func TestFetchManifestMalformedLine(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html>\nmanifestId: none\n</html>")
	}))
	defer server.Close()

	client := NewClient("", nil)
	_, err := client.FetchManifest(context.Background(), server.URL)
	var malformed *MalformedManifestLineError
	assert.ErrorAs(t, err, &malformed)
}

func TestFetchManifestUpstreamError(t *testing.T) {
	t.Run("landing page", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		client := NewClient("", nil)
		_, err := client.FetchManifest(context.Background(), server.URL)
		var upstream *UpstreamError
		assert.ErrorAs(t, err, &upstream)
		assert.Equal(t, http.StatusForbidden, upstream.Status)
	})

	t.Run("manifest document", func(t *testing.T) {
		mux := http.NewServeMux()
		server := httptest.NewServer(mux)
		defer server.Close()

		mux.HandleFunc("/gallery", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, "manifestId: '%s/manifest.json'", server.URL)
		})
		mux.HandleFunc("/manifest.json", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		client := NewClient("", nil)
		_, err := client.FetchManifest(context.Background(), server.URL+"/gallery")
		var upstream *UpstreamError
		assert.ErrorAs(t, err, &upstream)
		assert.Equal(t, http.StatusNotFound, upstream.Status)
		assert.Equal(t, server.URL+"/manifest.json", upstream.URL)
	})
}
