package extract

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Docx extracts text from DOCX documents. A DOCX file is a ZIP
// container; the document body lives in word/document.xml.
type Docx struct{}

type docxDocument struct {
	Body struct {
		Paragraphs []docxParagraph `xml:"p"`
		Tables     []docxTable     `xml:"tbl"`
	} `xml:"body"`
}

type docxParagraph struct {
	Runs []docxRun `xml:"r"`
}

type docxRun struct {
	Text []string `xml:"t"`
}

type docxTable struct {
	Rows []struct {
		Cells []struct {
			Paragraphs []docxParagraph `xml:"p"`
		} `xml:"tc"`
	} `xml:"tr"`
}

func (Docx) Extract(path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	defer zr.Close()

	for _, file := range zr.File {
		if file.Name != "word/document.xml" {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return "", fmt.Errorf("open document.xml: %w", err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", fmt.Errorf("read document.xml: %w", err)
		}
		return parseDocumentXML(content)
	}
	return "", fmt.Errorf("docx: missing word/document.xml")
}

func parseDocumentXML(content []byte) (string, error) {
	var doc docxDocument
	if err := xml.Unmarshal(content, &doc); err != nil {
		return "", fmt.Errorf("parse document.xml: %w", err)
	}

	var paragraphs []string
	for _, p := range doc.Body.Paragraphs {
		if text := paragraphText(p); text != "" {
			paragraphs = append(paragraphs, text)
		}
	}
	var tableRows []string
	for _, tbl := range doc.Body.Tables {
		for _, row := range tbl.Rows {
			var cells []string
			for _, cell := range row.Cells {
				var cellText strings.Builder
				for _, p := range cell.Paragraphs {
					cellText.WriteString(paragraphText(p))
				}
				if s := strings.TrimSpace(cellText.String()); s != "" {
					cells = append(cells, s)
				}
			}
			if len(cells) > 0 {
				tableRows = append(tableRows, strings.Join(cells, " | "))
			}
		}
	}

	out := strings.Join(paragraphs, "\n\n")
	if len(tableRows) > 0 {
		out += "\n\nTables:\n" + strings.Join(tableRows, "\n")
	}
	return strings.TrimSpace(out), nil
}

func paragraphText(p docxParagraph) string {
	var sb strings.Builder
	for _, r := range p.Runs {
		for _, t := range r.Text {
			sb.WriteString(t)
		}
	}
	return strings.TrimSpace(sb.String())
}
