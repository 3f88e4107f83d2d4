// Package content loads portfolio records from a directory of YAML files
// and keeps the document store in step with it.
package content

import (
	"fmt"
	"path"
	"strings"

	"github.com/gosimple/slug"
	"gopkg.in/yaml.v3"

	"github.com/starford/folio/internal/catalog"
)

// Content kinds, named after their top-level directory.
const (
	KindProjects     = "projects"
	KindCertificates = "certificates"
)

// Result holds the records decoded from one content file.
type Result struct {
	Kind         string
	Projects     []catalog.ProjectRecord
	Certificates []catalog.CertificateRecord
}

// KindOf returns the content kind for a slash-separated relative path, or
// empty string when the file lives outside a known directory.
func KindOf(rel string) string {
	dir, _, ok := strings.Cut(path.Clean(rel), "/")
	if !ok {
		return ""
	}
	switch dir {
	case KindProjects, KindCertificates:
		return dir
	}
	return ""
}

// Parse decodes a content file. A file holds either a single record or a
// list of records; its kind comes from rel.
func Parse(rel string, data []byte) (*Result, error) {
	kind := KindOf(rel)
	if kind == "" {
		return nil, fmt.Errorf("content: %s: not under %s/ or %s/", rel, KindProjects, KindCertificates)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("content: %s: %w", rel, err)
	}
	res := &Result{Kind: kind}
	if len(doc.Content) == 0 {
		return res, nil
	}
	root := doc.Content[0]

	var err error
	switch kind {
	case KindProjects:
		res.Projects, err = decodeList[catalog.ProjectRecord](root)
	case KindCertificates:
		res.Certificates, err = decodeList[catalog.CertificateRecord](root)
	}
	if err != nil {
		return nil, fmt.Errorf("content: %s: %w", rel, err)
	}
	return res, nil
}

func decodeList[T any](n *yaml.Node) ([]T, error) {
	switch n.Kind {
	case yaml.SequenceNode:
		var out []T
		if err := n.Decode(&out); err != nil {
			return nil, err
		}
		return out, nil
	case yaml.MappingNode:
		var one T
		if err := n.Decode(&one); err != nil {
			return nil, err
		}
		return []T{one}, nil
	default:
		return nil, fmt.Errorf("expected a record or a list of records")
	}
}

// Slug turns a title into a file-name friendly identifier.
func Slug(title string) string {
	return slug.Make(title)
}
