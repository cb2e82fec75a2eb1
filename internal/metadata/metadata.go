// Package metadata renders the launcher sidecar file.
//
// The sidecar is an INI-style block:
//
//	[default]
//	name=Super Foo 2
//	year=1991
//	genre=Action
//	publisher=Bar Co
//	developer=Foo Soft
//	source=Mobygames.com
//	images=launch01.bmp,launch02.bmp,
//
// Company lines follow the order the companies were selected in; roles other
// than developer, publisher and porter are omitted. The images line is added
// by AppendImages once every image has been produced.
package metadata

import (
	"strings"

	"launchmeta/internal/catalog"
)

// Record is a fully resolved title ready to render.
type Record struct {
	Title     string
	Year      string
	Genre     string
	Companies []catalog.Company
	Source    string
}

var roleKeys = map[string]string{
	catalog.RolePublisher: "publisher",
	catalog.RoleDeveloper: "developer",
	catalog.RolePorter:    "ported",
}

// Year returns the leading segment of an ISO-like date, or "" when date is
// blank.
func Year(date string) string {
	year, _, _ := strings.Cut(strings.TrimSpace(date), "-")
	return year
}

// Render formats record without the images line.
func Render(record Record) string {
	var b strings.Builder
	b.WriteString("[default]\n")
	writeField(&b, "name", record.Title)
	writeField(&b, "year", record.Year)
	writeField(&b, "genre", record.Genre)
	for _, company := range record.Companies {
		key, ok := roleKeys[company.Role]
		if !ok {
			continue
		}
		writeField(&b, key, company.Name)
	}
	writeField(&b, "source", record.Source)
	return b.String()
}

// AppendImages adds the images line listing names in order, each followed by
// a comma. With no names the text is returned unchanged.
func AppendImages(text string, names []string) string {
	if len(names) == 0 {
		return text
	}
	var b strings.Builder
	b.WriteString(text)
	b.WriteString("images=")
	for _, name := range names {
		b.WriteString(name)
		b.WriteString(",")
	}
	return b.String()
}

func writeField(b *strings.Builder, key, value string) {
	b.WriteString(key)
	b.WriteString("=")
	b.WriteString(value)
	b.WriteString("\n")
}
