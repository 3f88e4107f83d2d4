package content

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/starford/folio/internal/catalog"
	"github.com/starford/folio/internal/storage"
	"github.com/starford/folio/internal/store"
)

// Stats summarises one sync pass.
type Stats struct {
	Files        int `json:"files"`
	Unchanged    int `json:"unchanged"`
	Projects     int `json:"projects"`
	Certificates int `json:"certificates"`
	Created      int `json:"created"`
	Failed       int `json:"failed"`
	Removed      int `json:"removed"`
}

// Syncer imports content files into the document store.
type Syncer struct {
	handle *store.Handle
	files  storage.Provider
	logger *slog.Logger
}

// NewSyncer creates a Syncer writing into the store behind h. A nil logger
// uses slog.Default.
func NewSyncer(h *store.Handle, files storage.Provider, logger *slog.Logger) *Syncer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Syncer{handle: h, files: files, logger: logger}
}

// Sync walks the content directory and brings the store up to date:
//   - new/changed files are parsed and their records upserted by link
//   - files removed from disk are forgotten; their records are kept
func (s *Syncer) Sync(ctx context.Context) (Stats, error) {
	var st Stats
	docs, err := s.handle.Get(ctx)
	if err != nil {
		return st, err
	}

	metas, err := s.files.List("")
	if err != nil {
		return st, err
	}
	checksums, err := docs.ContentChecksums(ctx)
	if err != nil {
		return st, err
	}

	disk := make(map[string]struct{}, len(metas))
	for _, m := range metas {
		if KindOf(m.Path) == "" {
			continue
		}
		disk[m.Path] = struct{}{}
		st.Files++

		if checksums[m.Path] == m.Checksum {
			st.Unchanged++
			continue
		}
		if err := s.importFile(ctx, docs, m.Path, &st); err != nil {
			st.Failed++
			s.logger.Warn("content: import failed", slog.String("path", m.Path), slog.String("error", err.Error()))
			continue
		}
		s.logger.Debug("content: imported", slog.String("path", m.Path))
	}

	for p := range checksums {
		if _, ok := disk[p]; ok {
			continue
		}
		if err := docs.ForgetContentFile(ctx, p); err != nil {
			s.logger.Warn("content: forget failed", slog.String("path", p), slog.String("error", err.Error()))
			continue
		}
		st.Removed++
		s.logger.Debug("content: removed stale", slog.String("path", p))
	}

	return st, nil
}

func (s *Syncer) importFile(ctx context.Context, docs store.Documents, rel string, st *Stats) error {
	data, err := s.files.Read(rel)
	if err != nil {
		return err
	}
	res, err := Parse(rel, data)
	if err != nil {
		return err
	}

	for _, r := range res.Projects {
		created, err := docs.UpsertProject(ctx, r, false)
		if err != nil {
			return err
		}
		st.Projects++
		if created {
			st.Created++
		}
	}
	for _, r := range res.Certificates {
		created, err := docs.UpsertCertificate(ctx, r, false)
		if err != nil {
			return err
		}
		st.Certificates++
		if created {
			st.Created++
		}
	}
	return docs.SetContentChecksum(ctx, rel, storage.Checksum(data))
}

// WriteProject stores r as projects/<slug>.yaml and syncs. It returns the
// relative path written.
func (s *Syncer) WriteProject(ctx context.Context, r catalog.ProjectRecord) (string, error) {
	if !catalog.IsUsable(r.Title) || !catalog.IsUsable(r.Link) {
		return "", fmt.Errorf("content: project needs a title and a link")
	}
	slug := Slug(*r.Title)
	if slug == "" {
		return "", fmt.Errorf("content: title %q has no usable characters", *r.Title)
	}
	data, err := yaml.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("content: encode project: %w", err)
	}
	rel, err := s.projectPath(slug, strings.TrimSpace(*r.Link))
	if err != nil {
		return "", err
	}
	if err := s.files.Write(rel, data); err != nil {
		return "", err
	}
	if _, err := s.Sync(ctx); err != nil {
		return rel, err
	}
	return rel, nil
}

// projectPath picks the file for a project with the given link: the first of
// slug.yaml, slug-2.yaml, ... that is free or already holds that project.
func (s *Syncer) projectPath(slug, link string) (string, error) {
	for n := 1; ; n++ {
		name := slug
		if n > 1 {
			name = fmt.Sprintf("%s-%d", slug, n)
		}
		rel := path.Join(KindProjects, name+".yaml")
		data, err := s.files.Read(rel)
		if errors.Is(err, fs.ErrNotExist) {
			return rel, nil
		}
		if err != nil {
			return "", err
		}
		res, err := Parse(rel, data)
		if err == nil && len(res.Projects) == 1 && catalog.IsUsable(res.Projects[0].Link) &&
			strings.TrimSpace(*res.Projects[0].Link) == link {
			return rel, nil
		}
	}
}
