package scenexml

import (
	"fmt"
	"strings"
)

// ErrorKind classifies the failures of a scene load.
// Each kind is also an error value, so that
//
//	errors.Is(err, scenexml.CountMismatch)
//
// reports whether a load failed for that reason.
type ErrorKind uint8

const (
	// ResourceUnavailable: the document cannot be opened or read.
	ResourceUnavailable ErrorKind = iota + 1
	// MalformedDocument: the XML syntax is invalid.
	MalformedDocument
	// UnrecognizedDialect: the first line matches no known DOCTYPE.
	UnrecognizedDialect
	// MissingSection: a required container element is absent.
	MissingSection
	// MissingElement: the sequence ends before its declared count.
	MissingElement
	// CountMismatch: a declared count disagrees with the mesh size.
	CountMismatch
)

var kindNames = [...]string{
	ResourceUnavailable: "resource unavailable",
	MalformedDocument:   "malformed document",
	UnrecognizedDialect: "unrecognized dialect",
	MissingSection:      "missing section",
	MissingElement:      "missing element",
	CountMismatch:       "count mismatch",
}

func (k ErrorKind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", k)
}

func (k ErrorKind) Error() string { return "scenexml: " + k.String() }

// Section names used to localize errors.
const (
	SectionScene         = "scene"
	SectionCurves        = "curve_set"
	SectionPoissonCurves = "poisson_curve_set"
	SectionMeshes        = "mesh_set"
)

// records elements of each section
var recordTags = map[string]string{
	SectionCurves:        "curve",
	SectionPoissonCurves: "poisson_curve",
	SectionMeshes:        "mesh",
}

// Error is the terminal failure of a scene load.
// Index fields are -1 when they do not apply.
type Error struct {
	Kind    ErrorKind
	Path    string // file name, if the scene was read with ReadScene
	Section string // one of the SectionXXX constants
	Record  int    // index of the curve or mesh in its section
	Tag     string // offending element, attribute or DOCTYPE line
	Index   int    // index of the missing element in its sequence

	Expected, Got int // for CountMismatch

	Err error // underlying I/O or XML error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("scenexml: ")
	if e.Path != "" {
		b.WriteString(e.Path + ": ")
	}
	if e.Section != "" {
		b.WriteString(e.Section)
		if e.Record >= 0 {
			fmt.Fprintf(&b, ": %s %d", recordTags[e.Section], e.Record)
		}
		b.WriteString(": ")
	}
	switch e.Kind {
	case ResourceUnavailable:
		fmt.Fprintf(&b, "cannot load scene: %v", e.Err)
	case MalformedDocument:
		fmt.Fprintf(&b, "invalid XML: %v", e.Err)
	case UnrecognizedDialect:
		fmt.Fprintf(&b, "unrecognized DOCTYPE %q", e.Tag)
	case MissingSection:
		fmt.Fprintf(&b, "cannot find %s", e.Tag)
	case MissingElement:
		if e.Index >= 0 {
			fmt.Fprintf(&b, "cannot read %s %d", e.Tag, e.Index)
		} else {
			fmt.Fprintf(&b, "cannot read %s", e.Tag)
		}
	case CountMismatch:
		fmt.Fprintf(&b, "%s is %d, but the mesh size requires %d", e.Tag, e.Got, e.Expected)
	default:
		b.WriteString(e.Kind.String())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the ErrorKind of the error.
func (e *Error) Is(target error) bool {
	k, ok := target.(ErrorKind)
	return ok && k == e.Kind
}

func missingSection(tag string) *Error {
	return &Error{Kind: MissingSection, Tag: tag, Record: -1, Index: -1}
}

func missingElement(tag string, index int) *Error {
	return &Error{Kind: MissingElement, Tag: tag, Record: -1, Index: index}
}

func countMismatch(tag string, expected, got int) *Error {
	return &Error{Kind: CountMismatch, Tag: tag, Record: -1, Index: -1, Expected: expected, Got: got}
}

// at localizes err in the given section, at the given record
func at(err error, section string, record int) error {
	if e, ok := err.(*Error); ok {
		if e.Section == "" {
			e.Section = section
			e.Record = record
		}
	}
	return err
}
