package catalog

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go-helloworld/internal/stremio"
)

// Validate checks that the tables agree with each other and returns every problem found.
//
// It is meant to run once at startup, before the service is exposed.
func (s *Service) Validate() error {
	var err error

	if len(s.manifest.Types) == 0 {
		err = multierr.Append(err, errors.New("manifest declares no types"))
	}
	for _, c := range s.manifest.Catalogs {
		if !s.manifest.HasType(c.Type) {
			err = multierr.Append(err, errors.Errorf("catalog %q has undeclared type %q", c.Id, c.Type))
		}
	}

	// ids that may have streams, per type
	known := make(map[string]map[string]struct{}, len(s.items))

	for t, list := range s.items {
		if !s.manifest.HasType(t) {
			err = multierr.Append(err, errors.Errorf("items stored under undeclared type %q", t))
		}

		ids := make(map[string]struct{})
		known[t] = ids
		for _, item := range list {
			if item.Id == "" || item.Name == "" {
				err = multierr.Append(err, errors.Errorf("%s item %q has no id or name", t, item.Name))
			}
			if _, dup := ids[item.Id]; dup {
				err = multierr.Append(err, errors.Errorf("duplicate %s item id %q", t, item.Id))
			}
			ids[item.Id] = struct{}{}

			for _, v := range item.Videos {
				err = multierr.Append(err, validateVideo(item.Id, v))
				ids[v.Id] = struct{}{}
			}
		}
	}

	for t, byId := range s.streams {
		if !s.manifest.HasType(t) {
			err = multierr.Append(err, errors.Errorf("streams stored under undeclared type %q", t))
		}
		for id, list := range byId {
			if _, ok := known[t][id]; !ok {
				err = multierr.Append(err, errors.Errorf("streams for unknown %s id %q", t, id))
			}
			for _, st := range list {
				if stErr := st.Validate(); stErr != nil {
					err = multierr.Append(err, errors.Wrapf(stErr, "%s id %q", t, id))
				}
			}
		}
	}

	return err
}

func validateVideo(seriesId string, v stremio.Video) error {
	parsedId, season, episode, ok := stremio.ParseVideoId(v.Id)
	if !ok {
		return errors.Errorf("video id %q of %q is not <seriesId>:<season>:<episode>", v.Id, seriesId)
	}
	if parsedId != seriesId || season != v.Season || episode != v.Episode {
		return errors.Errorf("video id %q does not match %s", v.Id, stremio.VideoId(seriesId, v.Season, v.Episode))
	}
	return nil
}
