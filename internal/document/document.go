// Package document assembles rendered blocks into an Office Open XML
// word-processing document held in memory.
package document

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
	"github.com/gomutex/godocx/wml/ctypes"
	"github.com/nguyentantai21042004/meeting-minutes/internal/markup"
)

const (
	DefaultFilename = "meeting_minutes"
	Extension       = ".docx"
	MIMEType        = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

	// Style ids from the built-in template, not display names.
	bulletStyle = "ListBullet"

	// Word rejects longer family names and larger point sizes.
	maxFontNameLen = 31
	maxFontSize    = 1638
)

// Style is the document-wide base run style.
type Style struct {
	FontFamily string
	FontSize   uint64
}

// DefaultStyle is used when a requested style cannot be honoured.
var DefaultStyle = Style{FontFamily: "Calibri", FontSize: 12}

// Filename returns the default artifact file name.
func Filename() string {
	return DefaultFilename + Extension
}

// Assemble writes blocks, in order, into a new document and returns the
// serialized artifact positioned at its start.
func Assemble(blocks []markup.Block, style Style) (*bytes.Reader, error) {
	doc, err := godocx.NewDocument()
	if err != nil {
		return nil, fmt.Errorf("new document: %w", err)
	}

	setDefaults(doc, resolveStyle(style))
	for _, b := range blocks {
		switch b.Kind {
		case markup.KindHeading:
			addHeading(doc, b)
		case markup.KindBullet:
			doc.AddParagraph(b.Text).Style(bulletStyle)
		default:
			doc.AddParagraph(b.Text)
		}
	}

	var buf bytes.Buffer
	if err := doc.Write(&buf); err != nil {
		return nil, fmt.Errorf("write document: %w", err)
	}
	return bytes.NewReader(buf.Bytes()), nil
}

// setDefaults makes style the document-wide run default. Theme font
// references in the template are replaced so the named font applies to
// Latin, East Asian and complex-script text alike.
func setDefaults(doc *docx.RootDoc, style Style) {
	styles := doc.DocStyles
	if styles == nil {
		return
	}
	if styles.DocDefaults == nil {
		styles.DocDefaults = &ctypes.DocDefault{}
	}
	if styles.DocDefaults.RunProp == nil {
		styles.DocDefaults.RunProp = &ctypes.RunPropDefault{}
	}
	if styles.DocDefaults.RunProp.RunProp == nil {
		styles.DocDefaults.RunProp.RunProp = &ctypes.RunProperty{}
	}

	rp := styles.DocDefaults.RunProp.RunProp
	rp.Fonts = &ctypes.RunFonts{
		Ascii:    style.FontFamily,
		HAnsi:    style.FontFamily,
		EastAsia: style.FontFamily,
		CS:       style.FontFamily,
	}
	// Sizes are stored in half-points.
	rp.Size = ctypes.NewFontSize(style.FontSize * 2)
}

// addHeading uses the native Title/Heading styles and falls back to a bold
// body paragraph when the backend refuses the level.
func addHeading(doc *docx.RootDoc, b markup.Block) {
	level := b.Level
	if level < 0 {
		level = 0
	}
	if _, err := doc.AddHeading(b.Text, uint(level)); err == nil {
		return
	}
	doc.AddEmptyParagraph().AddText(b.Text).Bold(true)
}

// resolveStyle substitutes DefaultStyle for any part of style the backend
// cannot use.
func resolveStyle(style Style) Style {
	if !usableFont(style.FontFamily) {
		style.FontFamily = DefaultStyle.FontFamily
	}
	if style.FontSize == 0 || style.FontSize > maxFontSize {
		style.FontSize = DefaultStyle.FontSize
	}
	return style
}

func usableFont(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" || len([]rune(name)) > maxFontNameLen {
		return false
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}
