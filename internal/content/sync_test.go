package content

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starford/folio/internal/catalog"
	"github.com/starford/folio/internal/store"
	"github.com/starford/folio/internal/testutil"
)

func testSyncer(t *testing.T) (*Syncer, string, *store.Handle) {
	t.Helper()
	dir, files := testutil.TestContentDir(t)
	h := testutil.TestHandle(t)
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewSyncer(h, files, logger), dir, h
}

func writeFile(t *testing.T, dir, rel, body string) {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
}

func projects(t *testing.T, h *store.Handle) []catalog.ProjectRecord {
	t.Helper()
	docs, err := h.Get(context.Background())
	require.NoError(t, err)
	recs, err := docs.FindProjects(context.Background())
	require.NoError(t, err)
	return recs
}

func TestSync_ImportsAndSkipsUnchanged(t *testing.T) {
	s, dir, h := testSyncer(t)
	ctx := context.Background()

	writeFile(t, dir, "projects/a.yaml", "title: A\nlink: https://a.example/\nimage: a.png\n")
	writeFile(t, dir, "certificates/c.yaml", "- title: C\n  issuer: I\n  link: https://c.example/\n")
	writeFile(t, dir, "notes.yaml", "ignored: true\n")

	st, err := s.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, st.Files)
	assert.Equal(t, 1, st.Projects)
	assert.Equal(t, 1, st.Certificates)
	assert.Equal(t, 2, st.Created)

	st, err = s.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, st.Unchanged)
	assert.Equal(t, 0, st.Projects)

	writeFile(t, dir, "projects/a.yaml", "title: A2\nlink: https://a.example/\n")
	st, err = s.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Projects)
	assert.Equal(t, 0, st.Created)

	recs := projects(t, h)
	require.Len(t, recs, 1)
	assert.Equal(t, "A2", *recs[0].Title)
}

func TestSync_BadFileCountsAsFailed(t *testing.T) {
	s, dir, _ := testSyncer(t)
	writeFile(t, dir, "projects/bad.yaml", "title: [oops\n")
	writeFile(t, dir, "projects/nolink.yaml", "title: Missing link\n")

	st, err := s.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, st.Failed)
}

func TestSync_RemovedFileIsForgotten(t *testing.T) {
	s, dir, h := testSyncer(t)
	ctx := context.Background()
	writeFile(t, dir, "projects/gone.yaml", "title: Gone\nlink: https://gone.example/\n")
	_, err := s.Sync(ctx)
	require.NoError(t, err)

	require.NoError(t, os.Remove(filepath.Join(dir, "projects", "gone.yaml")))
	st, err := s.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Removed)
	assert.Len(t, projects(t, h), 1)
}

func TestWriteProject(t *testing.T) {
	s, dir, h := testSyncer(t)
	title, link := "My New Tool", "https://tool.example/"

	rel, err := s.WriteProject(context.Background(), catalog.ProjectRecord{Title: &title, Link: &link, Tags: []string{"Go"}})
	require.NoError(t, err)
	assert.Equal(t, "projects/my-new-tool.yaml", rel)
	assert.FileExists(t, filepath.Join(dir, "projects", "my-new-tool.yaml"))

	recs := projects(t, h)
	require.Len(t, recs, 1)
	assert.Equal(t, []string{"Go"}, recs[0].Tags)

	_, err = s.WriteProject(context.Background(), catalog.ProjectRecord{Title: &title})
	assert.Error(t, err)
}

func TestWriteProject_SlugCollision(t *testing.T) {
	s, dir, h := testSyncer(t)
	ctx := context.Background()
	t1, l1 := "Foo!", "https://foo.example/one"
	t2, l2 := "Foo?", "https://foo.example/two"

	rel, err := s.WriteProject(ctx, catalog.ProjectRecord{Title: &t1, Link: &l1})
	require.NoError(t, err)
	assert.Equal(t, "projects/foo.yaml", rel)
	before, err := os.ReadFile(filepath.Join(dir, "projects", "foo.yaml"))
	require.NoError(t, err)

	rel, err = s.WriteProject(ctx, catalog.ProjectRecord{Title: &t2, Link: &l2})
	require.NoError(t, err)
	assert.Equal(t, "projects/foo-2.yaml", rel)

	after, err := os.ReadFile(filepath.Join(dir, "projects", "foo.yaml"))
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
	assert.Len(t, projects(t, h), 2)

	desc := "updated"
	rel, err = s.WriteProject(ctx, catalog.ProjectRecord{Title: &t2, Link: &l2, Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "projects/foo-2.yaml", rel)
	assert.Len(t, projects(t, h), 2)
}

func TestWatch_SyncsNewFiles(t *testing.T) {
	s, dir, h := testSyncer(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var passes []Stats
	go s.Watch(ctx, dir, func(st Stats) {
		mu.Lock()
		passes = append(passes, st)
		mu.Unlock()
	})
	time.Sleep(100 * time.Millisecond)

	writeFile(t, dir, "projects/w.yaml", "title: W\nlink: https://w.example/\n")

	require.Eventually(t, func() bool {
		return len(projects(t, h)) == 1
	}, 5*time.Second, 50*time.Millisecond, "watched file not imported")

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(passes) > 0
	}, 2*time.Second, 50*time.Millisecond, "expected sync callback")
}
