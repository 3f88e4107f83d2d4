package store

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starford/folio/internal/apperr"
	"github.com/starford/folio/internal/catalog"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	f, err := os.CreateTemp("", "folio-store-test-*.db")
	require.NoError(t, err)
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })

	s, err := Open(context.Background(), f.Name())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sp(v string) *string { return &v }
func bp(v bool) *bool     { return &v }

func TestSchemaCreation(t *testing.T) {
	s := testStore(t)
	for _, table := range []string{"projects", "certificates", "contacts", "users", "content_files"} {
		var n int
		require.NoError(t, s.conn.QueryRow(`SELECT count(*) FROM `+table).Scan(&n), table)
	}
}

func TestUpsertProject_RoundTrip(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	created, err := s.UpsertProject(ctx, catalog.ProjectRecord{
		ID:       sp("proj"),
		Title:    sp("Proj"),
		Link:     sp(" https://proj.example/ "),
		Tags:     []string{"Go", "SQLite"},
		Featured: bp(false),
	}, false)
	require.NoError(t, err)
	assert.True(t, created)

	recs, err := s.FindProjects(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	r := recs[0]
	assert.NotEmpty(t, r.StoreID)
	assert.Equal(t, "proj", *r.ID)
	assert.Equal(t, "https://proj.example/", *r.Link)
	assert.Nil(t, r.Description)
	assert.Nil(t, r.Image)
	assert.Equal(t, []string{"Go", "SQLite"}, r.Tags)
	require.NotNil(t, r.Featured)
	assert.False(t, *r.Featured)
}

func TestUpsertProject_UpdateAndInsertOnly(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	_, err := s.UpsertProject(ctx, catalog.ProjectRecord{Title: sp("v1"), Link: sp("https://x.example/")}, false)
	require.NoError(t, err)

	created, err := s.UpsertProject(ctx, catalog.ProjectRecord{Title: sp("v2"), Link: sp("https://x.example/")}, true)
	require.NoError(t, err)
	assert.False(t, created)
	recs, _ := s.FindProjects(ctx)
	assert.Equal(t, "v1", *recs[0].Title)

	created, err = s.UpsertProject(ctx, catalog.ProjectRecord{Title: sp("v3"), Link: sp("https://x.example/")}, false)
	require.NoError(t, err)
	assert.False(t, created)
	recs, _ = s.FindProjects(ctx)
	require.Len(t, recs, 1)
	assert.Equal(t, "v3", *recs[0].Title)
	assert.Nil(t, recs[0].Tags)
	assert.Nil(t, recs[0].Featured)
}

func TestFindProjects_MalformedTagsAreAbsent(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	for i, tags := range []string{`["Go", 5, "SQL"]`, `{"a": 1}`, `not json`} {
		_, err := s.conn.ExecContext(ctx,
			`INSERT INTO projects (id, title, link, tags) VALUES (?, ?, ?, ?)`,
			fmt.Sprintf("bad-%d", i), "Bad", fmt.Sprintf("https://bad%d.example/", i), tags)
		require.NoError(t, err)
	}

	recs, err := s.FindProjects(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	for _, r := range recs {
		assert.Nil(t, r.Tags, *r.Link)
	}
}

func TestUpsertProject_RequiresLink(t *testing.T) {
	s := testStore(t)
	_, err := s.UpsertProject(context.Background(), catalog.ProjectRecord{Title: sp("no link")}, false)
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestCertificates_OrderedByDate(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	for _, c := range []catalog.CertificateRecord{
		{Title: sp("old"), Issuer: sp("A"), Date: sp("2020-01-01"), Link: sp("https://a.example/")},
		{Title: sp("new"), Issuer: sp("B"), Date: sp("2024-01-01"), Link: sp("https://b.example/")},
	} {
		_, err := s.UpsertCertificate(ctx, c, false)
		require.NoError(t, err)
	}

	recs, err := s.FindCertificates(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "new", *recs[0].Title)
	assert.Equal(t, "old", *recs[1].Title)
	assert.Nil(t, recs[0].Type)

	n, err := s.CountCertificates(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	titles, err := s.SampleTitles(ctx, "certificates", 1)
	require.NoError(t, err)
	assert.Len(t, titles, 1)

	_, err = s.SampleTitles(ctx, "users", 1)
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestContacts_NewestFirst(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	first, err := s.CreateContact(ctx, "Ann", "ann@example.com", "hello")
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	second, err := s.CreateContact(ctx, "Bob", "bob@example.com", "hi")
	require.NoError(t, err)

	msgs, err := s.ListContacts(ctx)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, second.ID, msgs[0].ID)
	assert.Equal(t, first.ID, msgs[1].ID)
	assert.Equal(t, "hello", msgs[1].Message)
}

func TestUsers(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	u, err := s.CreateUser(ctx, " Admin@Example.com ", "hash")
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", u.Email)

	_, err = s.CreateUser(ctx, "admin@example.com", "other")
	assert.ErrorIs(t, err, apperr.ErrAlreadyExists)

	byEmail, err := s.UserByEmail(ctx, "ADMIN@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)
	assert.Equal(t, "hash", byEmail.PasswordHash)

	byID, err := s.UserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, byID.Email)

	_, err = s.UserByID(ctx, "missing")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestContentChecksums(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetContentChecksum(ctx, "projects/a.yaml", "1"))
	require.NoError(t, s.SetContentChecksum(ctx, "projects/a.yaml", "2"))
	require.NoError(t, s.SetContentChecksum(ctx, "projects/b.yaml", "3"))
	require.NoError(t, s.ForgetContentFile(ctx, "projects/b.yaml"))

	sums, err := s.ContentChecksums(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"projects/a.yaml": "2"}, sums)
}
