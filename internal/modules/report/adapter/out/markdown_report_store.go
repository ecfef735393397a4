package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"attend/internal/modules/report/domain"
	reportout "attend/internal/modules/report/port/out"
	"attend/internal/platform/markdown"
	"attend/internal/platform/slug"
)

var reportBlock = markdown.Block{Start: "<!-- attend:report:start -->", End: "<!-- attend:report:end -->"}

// MarkdownReportStore writes one note per course per day, named
// <slug>-<id key>-<yyyymmdd>.md. Exporting again on the same day refreshes the
// frontmatter and the generated block and leaves anything the user wrote
// around it alone.
type MarkdownReportStore struct {
	dir string
}

func NewMarkdownReportStore(dir string) reportout.ReportStore {
	return &MarkdownReportStore{dir: dir}
}

func (s *MarkdownReportStore) Save(_ context.Context, report domain.Report) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	day := report.ExportedAt.Format("20060102")
	base := slug.Make(report.CourseName)
	key := idKey(report.CourseID)

	// The short key keeps names readable; a note already owned by another
	// course with the same short key moves this one to the full id.
	path := filepath.Join(s.dir, fmt.Sprintf("%s-%s-%s.md", base, shortKey(key), day))
	body, owner, err := readExisting(path)
	if err != nil {
		return "", err
	}
	if owner != "" && owner != report.CourseID {
		path = filepath.Join(s.dir, fmt.Sprintf("%s-%s-%s.md", base, key, day))
		if body, _, err = readExisting(path); err != nil {
			return "", err
		}
	}

	rendered, err := markdown.Render(report.Meta(), reportBlock.Replace(body, report.Body()))
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

// readExisting returns the body and frontmatter id of the note at path, or
// empty strings when there is none yet.
func readExisting(path string) (string, string, error) {
	existing, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", "", nil
	}
	if err != nil {
		return "", "", fmt.Errorf("read existing report: %w", err)
	}
	meta, body, err := markdown.Split(string(existing))
	if err != nil {
		return "", "", fmt.Errorf("parse existing report %s: %w", path, err)
	}
	owner, _ := meta["id"].(string)
	return body, owner, nil
}

// idKey keeps the file-name safe characters of a course id.
func idKey(courseID string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(courseID) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
		}
	}
	if sb.Len() == 0 {
		return "noid"
	}
	return sb.String()
}

// shortKey is the tail of key; time-ordered ids put their random bits last.
func shortKey(key string) string {
	if len(key) <= 8 {
		return key
	}
	return key[len(key)-8:]
}
