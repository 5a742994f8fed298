// Command figkit renders text as ASCII-art banners using FIGlet fonts.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/figkit/figkit"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Stdin, os.Stdout, os.Stderr, os.Args[1:]))
}

func run(stdin io.Reader, stdout, stderr io.Writer, args []string) int {
	flags := pflag.NewFlagSet("figkit", pflag.ContinueOnError)
	flags.SetOutput(stderr)

	var (
		fontName    string
		loadPath    string
		justifyFlag string
		dirFlag     string
		width       int
		reverse     bool
		flip        bool
		listFonts   bool
		infoFont    bool
		smush       int
		showVersion bool
		showHelp    bool
	)

	flags.StringVarP(&fontName, "font", "f", figkit.DefaultFont, "bundled font to render with")
	flags.StringVar(&loadPath, "load", "", "load font from a file instead (.flf, .tlf or zipped)")
	flags.StringVarP(&justifyFlag, "justify", "j", "auto", "justification: auto, left, center or right")
	flags.StringVarP(&dirFlag, "direction", "D", "auto", "direction: auto, left-to-right or right-to-left")
	flags.IntVarP(&width, "width", "w", 80, "output width for justification (default: terminal width)")
	flags.BoolVarP(&reverse, "reverse", "r", false, "mirror the output horizontally")
	flags.BoolVarP(&flip, "flip", "F", false, "flip the output upside down")
	flags.BoolVarP(&listFonts, "list", "l", false, "list bundled fonts and exit")
	flags.BoolVarP(&infoFont, "info", "i", false, "show font information and exit, use with -f")
	flags.IntVarP(&smush, "smush", "s", 0, "override the layout bitmask (0 forces full width)")
	flags.BoolVar(&showVersion, "version", false, "show version information")
	flags.BoolVarP(&showHelp, "help", "h", false, "show this help")

	if err := flags.Parse(args); err != nil {
		return 1
	}

	if showHelp {
		printHelp(stderr, flags)
		return 0
	}

	if showVersion {
		fmt.Fprintf(stdout, "figkit version %s (commit: %s, built: %s)\n", version, commit, date)
		return 0
	}

	if listFonts {
		names, err := figkit.ListFonts()
		if err != nil {
			fmt.Fprintf(stderr, "Error listing fonts: %v\n", err)
			return 1
		}
		fmt.Fprintln(stdout, strings.Join(names, "\n"))
		return 0
	}

	if infoFont {
		info, err := figkit.InfoFont(fontName)
		if err != nil {
			fmt.Fprintf(stderr, "Error reading font info: %v\n", err)
			return 1
		}
		fmt.Fprintln(stdout, info)
		return 0
	}

	text, ok := inputText(stdin, flags.Args())
	if !ok {
		printHelp(stderr, flags)
		return 1
	}

	font, err := loadFont(fontName, loadPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading font: %v\n", err)
		return 1
	}

	dir, err := parseDirection(dirFlag)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	jus, err := parseJustify(justifyFlag)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	if !flags.Changed("width") {
		width = terminalWidth()
	}

	opts := []figkit.Option{
		figkit.WithDirection(dir),
		figkit.WithJustify(jus),
		figkit.WithWidth(width),
	}
	if flags.Changed("smush") {
		opts = append(opts, figkit.WithSmushMode(figkit.SmushMode(smush)))
	}

	out, err := figkit.Render(text, font, opts...)
	if err != nil {
		fmt.Fprintf(stderr, "Error rendering text: %v\n", err)
		return 1
	}

	if reverse {
		out = figkit.Mirror(out)
	}
	if flip {
		out = figkit.Flip(out)
	}

	fmt.Fprintln(stdout, out)
	return 0
}

// inputText joins the positional arguments, or reads stdin when there
// are none and stdin is not a terminal. The second result is false
// when there is no text to render.
func inputText(stdin io.Reader, args []string) (string, bool) {
	if len(args) > 0 {
		return strings.Join(args, " "), true
	}

	if f, isFile := stdin.(*os.File); isFile && term.IsTerminal(int(f.Fd())) {
		return "", false
	}

	data, err := io.ReadAll(stdin)
	if err != nil || len(data) == 0 {
		return "", false
	}
	return strings.TrimRight(string(data), "\r\n"), true
}

// loadFont prefers an explicit font file over a bundled name.
func loadFont(name, loadPath string) (*figkit.Font, error) {
	if loadPath != "" {
		return figkit.LoadFontFile(loadPath)
	}
	return figkit.LoadFontCached(name)
}

// terminalWidth reports the width of the attached terminal, or 80 when
// stdout is redirected or the size is unavailable.
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 80
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return 80
	}
	return w
}

func parseDirection(s string) (figkit.Direction, error) {
	switch s {
	case "auto":
		return figkit.DirectionAuto, nil
	case "left-to-right":
		return figkit.LeftToRight, nil
	case "right-to-left":
		return figkit.RightToLeft, nil
	}
	return 0, fmt.Errorf("invalid direction %q (want auto, left-to-right or right-to-left)", s)
}

func parseJustify(s string) (figkit.Justify, error) {
	switch s {
	case "auto":
		return figkit.JustifyAuto, nil
	case "left":
		return figkit.JustifyLeft, nil
	case "center":
		return figkit.JustifyCenter, nil
	case "right":
		return figkit.JustifyRight, nil
	}
	return 0, fmt.Errorf("invalid justify %q (want auto, left, center or right)", s)
}

func printHelp(w io.Writer, flags *pflag.FlagSet) {
	fmt.Fprintln(w, "figkit - FIGlet ASCII banner generator")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  figkit [flags] <text>")
	fmt.Fprintln(w, "  echo text | figkit [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprint(w, flags.FlagUsages())
}
