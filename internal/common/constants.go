// Package common holds constants shared between the public figkit API
// and its internal packages.
//
// The smushing mode bits below are part of the FIGfont v2 file format
// (the fullLayout header field) and therefore part of figkit's public
// API contract. The copies here exist so that internal packages do not
// import the root package; they MUST stay in sync with the SmushMode
// constants in the root package.
package common

// Smushing mode bits, FIGfont v2 values.
const (
	// SMEqual merges two identical non-hardblank characters.
	SMEqual = 1
	// SMLowline lets an underscore yield to any border character.
	SMLowline = 2
	// SMHierarchy resolves border clashes by class: | /\ [] {} () <>,
	// later class wins.
	SMHierarchy = 4
	// SMPair turns opposite bracket pairs into a vertical bar.
	SMPair = 8
	// SMBigX merges /\ into |, \/ into Y and >< into X.
	SMBigX = 16
	// SMHardblank merges two hardblanks into one.
	SMHardblank = 32
	// SMKern closes the gap between glyphs without overlapping them.
	SMKern = 64
	// SMSmush enables overlapping; the six rule bits control how.
	// With no rule bits set, overlapping is "universal": the later
	// character in the text simply wins.
	SMSmush = 128
)

// RuleMask selects the six controlled smushing rule bits.
const RuleMask = SMEqual | SMLowline | SMHierarchy | SMPair | SMBigX | SMHardblank

// Justification values passed to the renderer. The renderer only ever
// sees a resolved value; mapping "auto" onto one of these happens in
// the root package.
const (
	JustifyLeft = iota
	JustifyCenter
	JustifyRight
)

// Print direction values as stored in a font header. Any header value
// other than PrintRTL renders left to right.
const (
	PrintLTR = 0
	PrintRTL = 1
)

// DefaultWidth is the output width used when the caller does not set
// one. Only justification consumes it; this engine never wraps.
const DefaultWidth = 80
