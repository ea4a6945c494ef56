package youtube

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/hyperjump/debatable/internal/errs"
	"github.com/hyperjump/debatable/internal/models"
)

// captionConfidence marks caption-derived segments as authoritative.
const captionConfidence = 0.9

// captionTracksRe locates the caption track list embedded in the player
// response JSON on the watch page.
var captionTracksRe = regexp.MustCompile(`"captionTracks":\s*(\[.*?\])\s*[,}]`)

// playabilityRe extracts the playability status embedded in the watch page.
var playabilityRe = regexp.MustCompile(`"playabilityStatus":\s*{\s*"status":\s*"([A-Z_]+)"`)

// captionTrack is one entry of the embedded caption track list.
type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"`
}

// timedText is the timedtext XML caption document.
type timedText struct {
	XMLName xml.Name        `xml:"transcript"`
	Texts   []timedTextLine `xml:"text"`
}

type timedTextLine struct {
	Start float64 `xml:"start,attr"`
	Dur   float64 `xml:"dur,attr"`
	Body  string  `xml:",chardata"`
}

// fetchCaptions locates a caption track on the watch page and downloads it.
// Failures carry distinguishable reasons: video unavailable or private,
// transcripts disabled, and no caption tracks available are all distinct.
func (a *Acquirer) fetchCaptions(ctx context.Context, page string) ([]models.TranscriptSegment, error) {
	if m := playabilityRe.FindStringSubmatch(page); m != nil {
		switch m[1] {
		case "LOGIN_REQUIRED", "UNPLAYABLE":
			return nil, errs.Unavailablef("video unavailable or private")
		case "ERROR":
			return nil, errs.Unavailablef("video unavailable: the video may have been removed")
		}
	}

	m := captionTracksRe.FindStringSubmatch(page)
	if m == nil {
		if strings.Contains(page, "playerCaptionsTracklistRenderer") {
			return nil, errs.Unavailablef("no transcript or captions available for this video")
		}
		return nil, errs.Unavailablef("transcripts are disabled for this video")
	}

	var tracks []captionTrack
	if err := json.Unmarshal([]byte(m[1]), &tracks); err != nil {
		return nil, errs.Malformedf(err, "caption track list failed to parse")
	}
	if len(tracks) == 0 {
		return nil, errs.Unavailablef("no transcript or captions available for this video")
	}

	track := pickTrack(tracks)
	return a.fetchTrack(ctx, track.BaseURL)
}

// pickTrack prefers manually authored English captions, then any English
// track, then the first track.
func pickTrack(tracks []captionTrack) captionTrack {
	for _, t := range tracks {
		if strings.HasPrefix(t.LanguageCode, "en") && t.Kind != "asr" {
			return t
		}
	}
	for _, t := range tracks {
		if strings.HasPrefix(t.LanguageCode, "en") {
			return t
		}
	}
	return tracks[0]
}

// fetchTrack downloads and decodes a timedtext caption document.
func (a *Acquirer) fetchTrack(ctx context.Context, baseURL string) ([]models.TranscriptSegment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL, nil)
	if err != nil {
		return nil, errs.Transientf(err, "build caption request")
	}
	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, errs.Transientf(err, "fetch captions")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errs.Transientf(fmt.Errorf("status %d", resp.StatusCode), "fetch captions")
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errs.Transientf(err, "read captions")
	}

	var doc timedText
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, errs.Malformedf(err, "caption document failed to parse")
	}

	segments := make([]models.TranscriptSegment, 0, len(doc.Texts))
	for _, line := range doc.Texts {
		text := strings.TrimSpace(html.UnescapeString(line.Body))
		if text == "" {
			continue
		}
		segments = append(segments, models.TranscriptSegment{
			Text:       text,
			Start:      line.Start,
			End:        line.Start + line.Dur,
			Confidence: captionConfidence,
		})
	}
	return segments, nil
}
