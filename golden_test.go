package figkit

import (
	"bufio"
	"crypto/sha256"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

// goldenMetadata is the YAML front matter in golden files. It must
// stay in sync with the struct in cmd/generate-goldens.
type goldenMetadata struct {
	Font            string `yaml:"font"`
	Layout          string `yaml:"layout"`
	Sample          string `yaml:"sample"`
	Width           int    `yaml:"width"`
	Justify         string `yaml:"justify"`
	Direction       string `yaml:"direction"`
	Reverse         bool   `yaml:"reverse"`
	Flip            bool   `yaml:"flip"`
	PyfigletVersion string `yaml:"pyfiglet_version"`
	Generated       string `yaml:"generated"`
	Generator       string `yaml:"generator"`
	ChecksumSHA256  string `yaml:"checksum_sha256"`
}

// parseGoldenFile extracts the metadata and the expected output from a
// golden markdown file. The returned art has no trailing newline.
func parseGoldenFile(path string) (*goldenMetadata, string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open golden file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)

	var frontMatter []string
	inFrontMatter := false
	for scanner.Scan() {
		line := scanner.Text()
		if line == "---" {
			if !inFrontMatter {
				inFrontMatter = true
				continue
			}
			break
		}
		if inFrontMatter {
			frontMatter = append(frontMatter, line)
		}
	}

	metadata := &goldenMetadata{}
	if err := yaml.Unmarshal([]byte(strings.Join(frontMatter, "\n")), metadata); err != nil {
		return nil, "", fmt.Errorf("failed to parse front matter: %w", err)
	}

	var artLines []string
	inCodeBlock := false
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "```text") {
			inCodeBlock = true
			continue
		}
		if strings.HasPrefix(line, "```") && inCodeBlock {
			break
		}
		if inCodeBlock {
			artLines = append(artLines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, "", fmt.Errorf("error reading golden file: %w", err)
	}

	return metadata, strings.Join(artLines, "\n"), nil
}

// goldenOptions maps golden metadata to render options.
func goldenOptions(metadata *goldenMetadata) ([]Option, error) {
	opts := []Option{WithWidth(metadata.Width)}

	switch metadata.Layout {
	case "default":
	case "full":
		opts = append(opts, WithSmushMode(0))
	case "kern":
		opts = append(opts, WithSmushMode(SMKern))
	case "universal":
		opts = append(opts, WithSmushMode(SMSmush))
	default:
		return nil, fmt.Errorf("unknown layout %q", metadata.Layout)
	}

	switch metadata.Justify {
	case "", "auto":
	case "left":
		opts = append(opts, WithJustify(JustifyLeft))
	case "center":
		opts = append(opts, WithJustify(JustifyCenter))
	case "right":
		opts = append(opts, WithJustify(JustifyRight))
	default:
		return nil, fmt.Errorf("unknown justify %q", metadata.Justify)
	}

	switch metadata.Direction {
	case "", "auto":
	case "left-to-right":
		opts = append(opts, WithDirection(LeftToRight))
	case "right-to-left":
		opts = append(opts, WithDirection(RightToLeft))
	default:
		return nil, fmt.Errorf("unknown direction %q", metadata.Direction)
	}

	return opts, nil
}

func TestGoldenFiles(t *testing.T) {
	goldenDir := filepath.Join("testdata", "goldens")
	if _, err := os.Stat(goldenDir); os.IsNotExist(err) {
		t.Skip("golden files not found, run go run ./cmd/generate-goldens to create them")
	}

	var goldenFiles []string
	err := filepath.WalkDir(goldenDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".md") {
			goldenFiles = append(goldenFiles, path)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("failed to walk golden directory: %v", err)
	}
	if len(goldenFiles) == 0 {
		t.Skip("no golden files found")
	}

	t.Logf("found %d golden files", len(goldenFiles))

	var failed []string
	for _, goldenFile := range goldenFiles {
		relPath, _ := filepath.Rel(goldenDir, goldenFile)
		testName := strings.TrimSuffix(filepath.ToSlash(relPath), ".md")

		t.Run(testName, func(t *testing.T) {
			metadata, art, err := parseGoldenFile(goldenFile)
			if err != nil {
				t.Fatalf("failed to parse golden file: %v", err)
			}

			if sum := fmt.Sprintf("%x", sha256.Sum256([]byte(art))); sum != metadata.ChecksumSHA256 {
				t.Fatalf("golden file is corrupted: checksum %s, recorded %s", sum, metadata.ChecksumSHA256)
			}

			font, err := LoadFont(metadata.Font)
			if err != nil {
				t.Fatalf("failed to load font %s: %v", metadata.Font, err)
			}

			opts, err := goldenOptions(metadata)
			if err != nil {
				t.Fatal(err)
			}

			got, err := Render(metadata.Sample, font, opts...)
			if err != nil {
				t.Fatalf("failed to render %q: %v", metadata.Sample, err)
			}
			if metadata.Reverse {
				got = Mirror(got)
			}
			if metadata.Flip {
				got = Flip(got)
			}

			want := art + "\n"
			if diff := cmp.Diff(want, got); diff != "" {
				failed = append(failed, testName)
				t.Errorf("render mismatch for %q (-want +got):\n%s", metadata.Sample, diff)
			}
		})
	}

	if len(failed) > 0 {
		t.Errorf("failed %d of %d golden files: %s", len(failed), len(goldenFiles), strings.Join(failed, ", "))
	}
}

// TestGoldenFilesSubset replays a handful of golden files directly so a
// single case can be run without walking the whole corpus.
func TestGoldenFilesSubset(t *testing.T) {
	paths := []string{
		"standard/default/Hello_World.md",
		"standard/full-width/Hello_World.md",
		"standard/kerning/Hello_World.md",
		"standard/universal/0123456789.md",
		"standard/right-to-left/abc.md",
		"term/default/a.md",
		"double/kerning/figkit_1_0.md",
	}

	for _, rel := range paths {
		t.Run(strings.TrimSuffix(rel, ".md"), func(t *testing.T) {
			goldenFile := filepath.Join("testdata", "goldens", filepath.FromSlash(rel))
			if _, err := os.Stat(goldenFile); os.IsNotExist(err) {
				t.Skipf("golden file not found: %s", goldenFile)
			}

			metadata, art, err := parseGoldenFile(goldenFile)
			if err != nil {
				t.Fatalf("failed to parse golden file: %v", err)
			}

			font, err := LoadFont(metadata.Font)
			if err != nil {
				t.Fatalf("failed to load font %s: %v", metadata.Font, err)
			}

			opts, err := goldenOptions(metadata)
			if err != nil {
				t.Fatal(err)
			}

			got, err := Render(metadata.Sample, font, opts...)
			if err != nil {
				t.Fatalf("failed to render %q: %v", metadata.Sample, err)
			}
			if metadata.Reverse {
				got = Mirror(got)
			}
			if metadata.Flip {
				got = Flip(got)
			}

			if diff := cmp.Diff(art+"\n", got); diff != "" {
				t.Errorf("render mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
