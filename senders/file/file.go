package file

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"path/filepath"
	"strings"

	"github.com/AlexAkulov/reportfox"
)

// Sender writes each comment to a markdown file plus a JSON summary sidecar
// next to it. Files are named per variant so several reports in one run
// don't clobber each other.
type Sender struct {
	CommentFile string
}

func (s *Sender) Start() error {
	return nil
}

func (s *Sender) Stop() error {
	return nil
}

func (s *Sender) Send(comment reportfox.Comment) error {
	path := variantPath(s.CommentFile, comment.Variant)
	if err := ioutil.WriteFile(path, []byte(comment.Markdown), 0644); err != nil {
		return fmt.Errorf("can't write comment with: %v", err)
	}
	summary, err := json.MarshalIndent(comment, "", "  ")
	if err != nil {
		return err
	}
	jsonPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".json"
	if err := ioutil.WriteFile(jsonPath, summary, 0644); err != nil {
		return fmt.Errorf("can't write summary with: %v", err)
	}
	return nil
}

func variantPath(path, variant string) string {
	if variant == "" {
		return path
	}
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "-" + variant + ext
}
