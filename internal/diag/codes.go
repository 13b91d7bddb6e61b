package diag

import (
	"fmt"
)

// Code identifies a diagnostic kind. Ranges: 1xxx lexical, 2xxx syntax,
// 3xxx classification/semantic, 4xxx analyzer.
type Code uint16

const (
	UnknownCode Code = 0

	// I/O
	IOLoadFile     Code = 101
	IOLoadManifest Code = 102

	// Lexical
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBadNumber          Code = 1003

	// Syntax
	SynUnexpectedToken      Code = 2001
	SynExpectIdentifier     Code = 2002
	SynExpectColon          Code = 2003
	SynExpectType           Code = 2004
	SynUnclosedBrace        Code = 2005
	SynUnclosedParen        Code = 2006
	SynUnclosedAngle        Code = 2007
	SynExpectMember         Code = 2008
	SynExpectAccessor       Code = 2009
	SynExpectSemicolon      Code = 2010
	SynDuplicateModifier    Code = 2011
	SynAttributeNotAllowed  Code = 2012
	SynExpectNamespace      Code = 2013
	SynExpectAttributeName  Code = 2014
	SynDuplicateAccessor    Code = 2015
	SynModifierOrder        Code = 2016
	SynExpectTypeParam      Code = 2017
	SynUnexpectedTopLevel   Code = 2018
	SynAccessorAccessWidens Code = 2019

	// Classification / semantic
	ClsMarkerConflict       Code = 3001
	ClsUnknownBase          Code = 3002
	ClsComputedNeedsGetter  Code = 3003
	ClsComputedHasSetter    Code = 3004
	ClsDuplicateType        Code = 3005
	ClsDuplicateProperty    Code = 3006
	ClsMarkerOnNonPartial   Code = 3007
	ClsAttributeUnknownName Code = 3008

	// Analyzer
	AnaManualNotifyPattern Code = 4001
)

var codeNames = map[Code]string{
	UnknownCode:             "RXG0000",
	IOLoadFile:              "RXG0101",
	IOLoadManifest:          "RXG0102",
	LexUnknownChar:          "RXG1001",
	LexUnterminatedString:   "RXG1002",
	LexBadNumber:            "RXG1003",
	SynUnexpectedToken:      "RXG2001",
	SynExpectIdentifier:     "RXG2002",
	SynExpectColon:          "RXG2003",
	SynExpectType:           "RXG2004",
	SynUnclosedBrace:        "RXG2005",
	SynUnclosedParen:        "RXG2006",
	SynUnclosedAngle:        "RXG2007",
	SynExpectMember:         "RXG2008",
	SynExpectAccessor:       "RXG2009",
	SynExpectSemicolon:      "RXG2010",
	SynDuplicateModifier:    "RXG2011",
	SynAttributeNotAllowed:  "RXG2012",
	SynExpectNamespace:      "RXG2013",
	SynExpectAttributeName:  "RXG2014",
	SynDuplicateAccessor:    "RXG2015",
	SynModifierOrder:        "RXG2016",
	SynExpectTypeParam:      "RXG2017",
	SynUnexpectedTopLevel:   "RXG2018",
	SynAccessorAccessWidens: "RXG2019",
	ClsMarkerConflict:       "RXG3001",
	ClsUnknownBase:          "RXG3002",
	ClsComputedNeedsGetter:  "RXG3003",
	ClsComputedHasSetter:    "RXG3004",
	ClsDuplicateType:        "RXG3005",
	ClsDuplicateProperty:    "RXG3006",
	ClsMarkerOnNonPartial:   "RXG3007",
	ClsAttributeUnknownName: "RXG3008",
	AnaManualNotifyPattern:  "RXG4001",
}

// ID returns the stable external identifier, e.g. "RXG4001".
func (c Code) ID() string {
	if s, ok := codeNames[c]; ok {
		return s
	}
	return fmt.Sprintf("RXG%04d", uint16(c))
}

func (c Code) String() string {
	return c.ID()
}
