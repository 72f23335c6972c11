package iiif

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"regexp"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/encoding/htmlindex"
)

// DefaultReferer is required by the SAN servers, which answer 403 to
// requests lacking it.
const DefaultReferer = "https://antenati.cultura.gov.it/"

// manifestMarker identifies the landing-page line that embeds the
// manifest URL.
const manifestMarker = "manifestId"

var (
	numericToken = regexp.MustCompile(`\d+`)
	quotedURL    = regexp.MustCompile(`'([A-Za-z0-9.:/-]*)'`)
)

// Client resolves a gallery landing page into a parsed Manifest.
type Client struct {
	http    *http.Client
	referer string
	log     *zap.Logger
}

func NewClient(referer string, log *zap.Logger) *Client {
	if referer == "" {
		referer = DefaultReferer
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		http:    &http.Client{},
		referer: referer,
		log:     log,
	}
}

// ResolveArchiveID extracts the numeric archive ID from a gallery URL.
// The ID is the second numeric token; URLs with fewer than two are
// rejected.
func ResolveArchiveID(rawurl string) (string, error) {
	ids := numericToken.FindAllString(rawurl, -1)
	if len(ids) < 2 {
		return "", &MalformedLocatorError{URL: rawurl}
	}
	return ids[1], nil
}

// FetchManifest performs the two-step discovery: it fetches the gallery
// landing page, scans it for the manifest reference line, then fetches
// and parses the manifest itself.
func (c *Client) FetchManifest(ctx context.Context, rawurl string) (*Manifest, error) {
	page, err := c.getDecoded(ctx, rawurl)
	if err != nil {
		return nil, err
	}

	var line string
	found := false
	for _, l := range strings.Split(page, "\n") {
		if strings.Contains(l, manifestMarker) {
			line = l
			found = true
			break
		}
	}
	if !found {
		return nil, &ManifestNotFoundError{URL: rawurl}
	}
	match := quotedURL.FindStringSubmatch(line)
	if match == nil {
		return nil, &MalformedManifestLineError{URL: rawurl}
	}
	manifestURL := match[1]
	c.log.Debug("manifest located", zap.String("url", manifestURL))

	body, err := c.getDecoded(ctx, manifestURL)
	if err != nil {
		return nil, err
	}
	var manifest Manifest
	if err := json.Unmarshal([]byte(body), &manifest); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", manifestURL, err)
	}
	return &manifest, nil
}

func (c *Client) getDecoded(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Referer", c.referer)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &UpstreamError{URL: url, Status: resp.StatusCode}
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return decode(data, resp.Header.Get("Content-Type"))
}

// decode converts a response body to UTF-8 using the charset declared
// in its Content-Type header. Bodies without a declared charset are
// assumed to be UTF-8 already.
func decode(data []byte, contentType string) (string, error) {
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return string(data), nil
	}
	charset, ok := params["charset"]
	if !ok || strings.EqualFold(charset, "utf-8") {
		return string(data), nil
	}
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return "", fmt.Errorf("unsupported charset %q: %w", charset, err)
	}
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}
