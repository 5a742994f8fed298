// Command generate-goldens regenerates the golden files under
// testdata/goldens by shelling out to the reference pyfiglet
// implementation. Run it from the repository root:
//
//	go run ./cmd/generate-goldens -pyfiglet /path/to/pyfiglet/parent
//
// Each golden file is a markdown document with YAML front matter
// describing the render parameters, followed by the expected output in
// a fenced code block. golden_test.go replays the parameters through
// this module and compares.
package main

import (
	"bytes"
	"crypto/sha256"
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// goldenMetadata is the YAML front matter in golden files. It must
// stay in sync with the struct in golden_test.go.
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

// renderCase is one golden file to produce. Scenario names the
// directory under the font; grid cases use the layout name.
type renderCase struct {
	Scenario  string
	Font      string
	Layout    string
	Sample    string
	Width     int
	Justify   string
	Direction string
	Reverse   bool
	Flip      bool
}

var (
	outDir    = flag.String("out", "testdata/goldens", "Output directory")
	fonts     = flag.String("fonts", "standard", "Space-separated list of fonts")
	layouts   = flag.String("layouts", "default full kern universal", "Space-separated list of layouts")
	python    = flag.String("python", "python3", "Python interpreter to run the reference with")
	pyfiglet  = flag.String("pyfiglet", "", "Directory containing the pyfiglet package (empty: use installed)")
	scenarios = flag.Bool("scenarios", true, "Also generate scenario cases for the standard font")
	strict    = flag.Bool("strict", false, "Exit on any warning")
)

// defaultSamples are rendered for every font and layout combination.
// The bracket sample exercises the hierarchy and opposite-pair rules.
var defaultSamples = []string{
	"Hello, World!",
	"figkit 1.0",
	`|/\[]{}()<>`,
	" ",
	"a",
	"0123456789",
}

// scenarioCases exercise justification, direction and the output
// transforms on top of the plain layout grid.
var scenarioCases = []renderCase{
	{Scenario: "justify-right", Sample: "Hi", Justify: "right"},
	{Scenario: "justify-center", Sample: "Hi", Justify: "center"},
	{Scenario: "right-to-left", Sample: "abc", Direction: "right-to-left"},
	{Scenario: "mirrored", Sample: "abc", Reverse: true},
	{Scenario: "flipped", Sample: "abc", Flip: true},
	{Scenario: "width-40-center", Sample: "Go", Width: 40, Justify: "center"},
}

// pyDriver renders text with the reference implementation. Arguments:
// pyfiglet dir, font, width, justify, direction, smush override
// ("none" to use the font default), reverse and flip as "0"/"1". The
// text arrives on stdin so shell quoting never touches it.
const pyDriver = `
import sys
if sys.argv[1]:
    sys.path.insert(0, sys.argv[1])
from pyfiglet import Figlet
font, width, justify, direction, smush, reverse, flip = sys.argv[2:9]
kwargs = {"font": font, "width": int(width)}
if justify != "auto":
    kwargs["justify"] = justify
if direction != "auto":
    kwargs["direction"] = direction
fig = Figlet(**kwargs)
if smush != "none":
    fig.Font.smushMode = int(smush)
rendered = fig.renderText(sys.stdin.read())
if reverse == "1":
    rendered = rendered.reverse()
if flip == "1":
    rendered = rendered.flip()
sys.stdout.write(rendered)
`

func main() {
	flag.Parse()

	version := referenceVersion(*python, *pyfiglet)
	log.Printf("Using pyfiglet version: %s", version)

	var cases []renderCase
	for _, font := range strings.Fields(*fonts) {
		for _, layout := range strings.Fields(*layouts) {
			for _, sample := range defaultSamples {
				cases = append(cases, renderCase{
					Scenario: layoutName(layout),
					Font:     font,
					Layout:   layout,
					Sample:   sample,
				})
			}
		}
	}
	if *scenarios {
		for _, sc := range scenarioCases {
			sc.Font = "standard"
			sc.Layout = "default"
			cases = append(cases, sc)
		}
	}

	for _, c := range cases {
		if c.Width == 0 {
			c.Width = 80
		}
		if c.Justify == "" {
			c.Justify = "auto"
		}
		if c.Direction == "" {
			c.Direction = "auto"
		}
		if err := generateGoldenFile(c, version); err != nil {
			if *strict {
				log.Fatalf("Failed to generate golden file: %v", err)
			}
			log.Printf("Warning: %v", err)
		}
	}

	log.Println("Golden file generation complete")
}

func generateGoldenFile(c renderCase, version string) error {
	slug := slugify(c.Sample)
	dir := filepath.Join(*outDir, c.Font, c.Scenario)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	outFile := filepath.Join(dir, slug+".md")

	log.Printf("Generating %s/%s/%s.md", c.Font, c.Scenario, slug)

	art, err := renderReference(c)
	if err != nil {
		return fmt.Errorf("failed to render %s/%s/%s: %w", c.Font, c.Scenario, slug, err)
	}
	art = strings.TrimSuffix(art, "\n")

	metadata := goldenMetadata{
		Font:            c.Font,
		Layout:          c.Layout,
		Sample:          c.Sample,
		Width:           c.Width,
		Justify:         c.Justify,
		Direction:       c.Direction,
		Reverse:         c.Reverse,
		Flip:            c.Flip,
		PyfigletVersion: version,
		Generated:       time.Now().UTC().Format("2006-01-02"),
		Generator:       "generate-goldens",
		ChecksumSHA256:  checksum(art),
	}

	yamlData, err := yaml.Marshal(&metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(yamlData)
	buf.WriteString("---\n\n")
	buf.WriteString("```text\n")
	buf.WriteString(art)
	buf.WriteString("\n```\n")

	if err := os.WriteFile(outFile, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", outFile, err)
	}
	return nil
}

// renderReference runs the reference implementation for one case.
func renderReference(c renderCase) (string, error) {
	args := []string{
		"-c", pyDriver,
		*pyfiglet,
		c.Font,
		fmt.Sprintf("%d", c.Width),
		c.Justify,
		c.Direction,
		smushOverride(c.Layout),
		boolFlag(c.Reverse),
		boolFlag(c.Flip),
	}
	cmd := exec.Command(*python, args...)
	cmd.Stdin = strings.NewReader(c.Sample)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("reference render failed: %v: %s", err, stderr.String())
	}
	return string(output), nil
}

func referenceVersion(python, dir string) string {
	script := "import sys\n"
	if dir != "" {
		script += fmt.Sprintf("sys.path.insert(0, %q)\n", dir)
	}
	script += "import pyfiglet\nprint(pyfiglet.__version__)"
	output, err := exec.Command(python, "-c", script).Output()
	if err != nil {
		return "unknown"
	}
	return strings.TrimSpace(string(output))
}

// smushOverride maps a layout name to the value assigned to the
// reference's smushMode, or "none" to keep the font header's layout.
func smushOverride(layout string) string {
	switch layout {
	case "full":
		return "0"
	case "kern":
		return "64"
	case "universal":
		return "128"
	default:
		return "none"
	}
}

func layoutName(layout string) string {
	switch layout {
	case "full":
		return "full-width"
	case "kern":
		return "kerning"
	case "universal":
		return "universal"
	default:
		return layout
	}
}

func boolFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func checksum(data string) string {
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}

func slugify(s string) string {
	switch s {
	case "":
		return "empty"
	case " ":
		return "space"
	case "  ":
		return "two_spaces"
	case "   ":
		return "three_spaces"
	}

	var result []rune
	for _, r := range s {
		if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			result = append(result, r)
		} else if len(result) == 0 || result[len(result)-1] != '_' {
			result = append(result, '_')
		}
	}

	slug := strings.Trim(string(result), "_")
	if slug == "" {
		hash := sha256.Sum256([]byte(s))
		return fmt.Sprintf("%x", hash)[:8]
	}
	return slug
}
