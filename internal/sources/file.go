package sources

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/jobscout/jobscout/internal/jobs"
)

// FileSource reads postings from a local JSONL file, one wire-contract
// record per line. It serves offline runs and exporting scrapes gathered by
// other tooling.
type FileSource struct {
	path   string
	logger *zap.Logger
}

func NewFileSource(path string, logger *zap.Logger) *FileSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileSource{path: path, logger: logger}
}

func (s *FileSource) Name() string { return "file" }

func (s *FileSource) Fetch(_ context.Context) (*jobs.Postings, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("opening postings file %q: %w", s.path, err)
	}
	defer file.Close()

	postings := &jobs.Postings{}
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		var raw map[string]any
		if err := json.Unmarshal([]byte(text), &raw); err != nil {
			s.logger.Warn("skipping malformed postings line",
				zap.Int("line", line),
				zap.Error(err),
			)
			continue
		}

		var posting jobs.Posting
		if err := mapstructure.Decode(raw, &posting); err != nil {
			s.logger.Warn("skipping undecodable postings line",
				zap.Int("line", line),
				zap.Error(err),
			)
			continue
		}
		if posting.Title == "" {
			continue
		}
		if posting.Platform == "" {
			posting.Platform = s.Name()
		}

		postings.Append(&posting)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading postings file %q: %w", s.path, err)
	}

	return postings, nil
}
