package stremio

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// StreamKind tells which kind of target a Stream points at.
type StreamKind uint8

const (
	KindTorrent StreamKind = iota + 1
	KindURL
	KindYouTube
	KindExternal
)

func (k StreamKind) String() string {
	switch k {
	case KindTorrent:
		return "torrent"
	case KindURL:
		return "url"
	case KindYouTube:
		return "youtube"
	case KindExternal:
		return "external"
	default:
		return "unknown"
	}
}

// Stream is one playable source for an item or a video.
//
// The target is interpreted according to the kind: an info hash for torrents,
// a media URL, a YouTube video id or an external link. Only torrents may carry
// a file index.
type Stream struct {
	title   string
	kind    StreamKind
	target  string
	fileIdx *int
}

// TorrentStream returns a stream for the largest file of a torrent.
func TorrentStream(title, infoHash string) Stream {
	return Stream{title: title, kind: KindTorrent, target: infoHash}
}

// TorrentFileStream returns a stream for the file at fileIdx inside a torrent.
func TorrentFileStream(title, infoHash string, fileIdx int) Stream {
	return Stream{title: title, kind: KindTorrent, target: infoHash, fileIdx: &fileIdx}
}

func URLStream(title, url string) Stream {
	return Stream{title: title, kind: KindURL, target: url}
}

func YouTubeStream(title, ytId string) Stream {
	return Stream{title: title, kind: KindYouTube, target: ytId}
}

func ExternalStream(title, externalUrl string) Stream {
	return Stream{title: title, kind: KindExternal, target: externalUrl}
}

func (s Stream) Title() string    { return s.title }
func (s Stream) Kind() StreamKind { return s.kind }
func (s Stream) Target() string   { return s.target }

// FileIdx returns the torrent file index and whether one is set.
func (s Stream) FileIdx() (int, bool) {
	if s.fileIdx == nil {
		return 0, false
	}
	return *s.fileIdx, true
}

// Validate checks that the stream has a title, a known kind and a target.
func (s Stream) Validate() error {
	if s.title == "" {
		return errors.New("stream has no title")
	}
	switch s.kind {
	case KindTorrent, KindURL, KindYouTube, KindExternal:
	default:
		return errors.Errorf("stream %q has unknown kind %d", s.title, s.kind)
	}
	if s.target == "" {
		return errors.Errorf("%s stream %q has an empty target", s.kind, s.title)
	}
	if s.fileIdx != nil && s.kind != KindTorrent {
		return errors.Errorf("%s stream %q has a file index", s.kind, s.title)
	}
	if s.fileIdx != nil && *s.fileIdx < 0 {
		return errors.Errorf("torrent stream %q has negative file index %d", s.title, *s.fileIdx)
	}
	return nil
}

type streamJSON struct {
	Title       string `json:"title"`
	InfoHash    string `json:"infoHash,omitempty"`
	FileIdx     *int   `json:"fileIdx,omitempty"`
	Url         string `json:"url,omitempty"`
	YtId        string `json:"ytId,omitempty"`
	ExternalUrl string `json:"externalUrl,omitempty"`
}

func (s Stream) MarshalJSON() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, errors.Wrap(err, "marshal stream")
	}

	sj := streamJSON{Title: s.title}
	switch s.kind {
	case KindTorrent:
		sj.InfoHash = s.target
		sj.FileIdx = s.fileIdx
	case KindURL:
		sj.Url = s.target
	case KindYouTube:
		sj.YtId = s.target
	case KindExternal:
		sj.ExternalUrl = s.target
	}

	return json.Marshal(sj)
}

func (s *Stream) UnmarshalJSON(data []byte) error {
	var sj streamJSON
	if err := json.Unmarshal(data, &sj); err != nil {
		return errors.Wrap(err, "unmarshal stream")
	}

	var found []Stream
	if sj.InfoHash != "" {
		found = append(found, Stream{title: sj.Title, kind: KindTorrent, target: sj.InfoHash, fileIdx: sj.FileIdx})
	}
	if sj.Url != "" {
		found = append(found, URLStream(sj.Title, sj.Url))
	}
	if sj.YtId != "" {
		found = append(found, YouTubeStream(sj.Title, sj.YtId))
	}
	if sj.ExternalUrl != "" {
		found = append(found, ExternalStream(sj.Title, sj.ExternalUrl))
	}

	if len(found) != 1 {
		return errors.Errorf("unmarshal stream: expected exactly one of infoHash, url, ytId, externalUrl, got %d", len(found))
	}
	if sj.FileIdx != nil && found[0].kind != KindTorrent {
		return errors.New("unmarshal stream: fileIdx is only valid with infoHash")
	}
	if err := found[0].Validate(); err != nil {
		return errors.Wrap(err, "unmarshal stream")
	}

	*s = found[0]
	return nil
}
