// Package wxr converts a WordPress eXtended RSS export into Zola content.
package wxr

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dtnitsch/wpzola/models"
)

const uncategorized = "Uncategorized"

type wxrItem struct {
	Title         string        `xml:"title"`
	Link          string        `xml:"link"`
	PubDate       string        `xml:"pubDate"`
	PostID        string        `xml:"post_id"`
	PostName      string        `xml:"post_name"`
	PostDate      string        `xml:"post_date"`
	Status        string        `xml:"status"`
	PostType      string        `xml:"post_type"`
	AttachmentURL string        `xml:"attachment_url"`
	Encoded       []wxrEncoded  `xml:"encoded"`
	Categories    []wxrCategory `xml:"category"`
}

// wxrEncoded is either content:encoded or excerpt:encoded; the namespace
// tells them apart.
type wxrEncoded struct {
	XMLName xml.Name
	Text    string `xml:",chardata"`
}

type wxrCategory struct {
	Domain   string `xml:"domain,attr"`
	Nicename string `xml:"nicename,attr"`
	Text     string `xml:",chardata"`
}

// Read decodes every <item> of an export, in document order. The decoder is
// lenient about HTML entities such as &nbsp; that exports carry unescaped.
func Read(r io.Reader) ([]models.PostRecord, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = false
	dec.Entity = xml.HTMLEntity

	var records []models.PostRecord
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return records, fmt.Errorf("failed to read export: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "item" {
			continue
		}

		var it wxrItem
		if err := dec.DecodeElement(&it, &start); err != nil {
			return records, fmt.Errorf("failed to decode item %d: %w", len(records)+1, err)
		}
		records = append(records, it.record())
	}
	return records, nil
}

func (it wxrItem) record() models.PostRecord {
	rec := models.PostRecord{
		PostID:        strings.TrimSpace(it.PostID),
		Title:         strings.TrimSpace(it.Title),
		Link:          strings.TrimSpace(it.Link),
		Slug:          strings.TrimSpace(it.PostName),
		PubDate:       strings.TrimSpace(it.PubDate),
		PostDate:      strings.TrimSpace(it.PostDate),
		Status:        strings.TrimSpace(it.Status),
		PostType:      strings.TrimSpace(it.PostType),
		AttachmentURL: strings.TrimSpace(it.AttachmentURL),
	}

	for _, enc := range it.Encoded {
		if strings.Contains(enc.XMLName.Space, "excerpt") {
			rec.ExcerptHTML = enc.Text
		} else {
			rec.ContentHTML = enc.Text
		}
	}

	for _, c := range it.Categories {
		name := strings.TrimSpace(c.Text)
		if name == "" {
			continue
		}
		switch c.Domain {
		case "category":
			if name != uncategorized {
				rec.Categories = append(rec.Categories, name)
			}
		case "post_tag":
			rec.Tags = append(rec.Tags, name)
		}
	}
	return rec
}
