// Package catalog serves the addon's constant tables of titles and streams.
package catalog

import (
	"fmt"
	"slices"

	"github.com/pkg/errors"

	"go-helloworld/internal/stremio"
)

// PosterURLTemplate is the MetaHub path a poster URL is derived from.
const PosterURLTemplate = "https://images.metahub.space/poster/medium/%s/img"

// ErrUnsupportedType is returned when a request names a type the manifest does not declare.
var ErrUnsupportedType = errors.New("unsupported type")

// Service answers manifest, catalog, meta and stream queries.
//
// The tables are never modified after New, so a Service is safe for concurrent use.
type Service struct {
	manifest stremio.Manifest
	items    map[string][]Item
	streams  map[string]map[string][]stremio.Stream
}

// New returns a Service answering from the given tables, which must not be modified afterwards.
func New(manifest stremio.Manifest, items map[string][]Item, streams map[string]map[string][]stremio.Stream) *Service {
	return &Service{
		manifest: manifest,
		items:    items,
		streams:  streams,
	}
}

// Default returns a Service over the built-in dataset.
func Default() *Service {
	return New(manifest, items, streams)
}

// PosterURL returns the poster location for an item id. The id is not checked against MetaHub.
func PosterURL(id string) string {
	return fmt.Sprintf(PosterURLTemplate, id)
}

// GetManifest returns a copy of the addon manifest.
func (s *Service) GetManifest() stremio.Manifest {
	return s.manifest.Clone()
}

func (s *Service) checkType(t string) error {
	if !s.manifest.HasType(t) {
		return errors.Wrapf(ErrUnsupportedType, "type %q", t)
	}
	return nil
}

// GetCatalog returns a preview of every item of type t, in stored order.
//
// catalogId is accepted for protocol compatibility but does not select anything,
// there is a single catalog per type.
func (s *Service) GetCatalog(t, catalogId string) ([]stremio.MetaPreview, error) {
	if err := s.checkType(t); err != nil {
		return nil, err
	}

	list := s.items[t]
	metas := make([]stremio.MetaPreview, 0, len(list))
	for _, item := range list {
		metas = append(metas, stremio.MetaPreview{
			Id:     item.Id,
			Type:   t,
			Name:   item.Name,
			Genres: slices.Clone(item.Genres),
			Poster: PosterURL(item.Id),
		})
	}

	return metas, nil
}

// GetMeta returns the full meta of the first item of type t with the given id,
// or nil if there is none.
func (s *Service) GetMeta(t, id string) (*stremio.MetaItem, error) {
	if err := s.checkType(t); err != nil {
		return nil, err
	}

	for _, item := range s.items[t] {
		if item.Id != id {
			continue
		}

		return &stremio.MetaItem{
			Id:          item.Id,
			Type:        t,
			Name:        item.Name,
			Genres:      slices.Clone(item.Genres),
			Poster:      PosterURL(item.Id),
			MetaDetails: item.MetaDetails.Clone(),
		}, nil
	}

	return nil, nil
}

// GetStreams returns the streams stored for an item or video id. The result is
// empty, never nil, when there are none.
func (s *Service) GetStreams(t, id string) ([]stremio.Stream, error) {
	if err := s.checkType(t); err != nil {
		return nil, err
	}

	found := s.streams[t][id]
	if found == nil {
		return []stremio.Stream{}, nil
	}
	return slices.Clone(found), nil
}
