package metadata_test

import (
	"testing"

	"launchmeta/internal/catalog"
	"launchmeta/internal/metadata"
)

func TestYear(t *testing.T) {
	tests := map[string]string{
		"1991-07-15":                "1991",
		"1991":                      "1991",
		"":                          "",
		"  ":                        "",
		"1993-03-01T00:00:00-05:00": "1993",
	}
	for input, want := range tests {
		if got := metadata.Year(input); got != want {
			t.Fatalf("Year(%q) = %q want %q", input, got, want)
		}
	}
}

func TestRenderOrdersFieldsAndCompanies(t *testing.T) {
	text := metadata.Render(metadata.Record{
		Title: "Super Foo 2",
		Year:  "1991",
		Genre: "Action",
		Companies: []catalog.Company{
			{Name: "Baz", Role: catalog.RolePorter},
			{Name: "Foo Soft", Role: catalog.RoleDeveloper},
			{Name: "Ignored", Role: "Licensed to"},
			{Name: "Bar Co", Role: catalog.RolePublisher},
		},
		Source: "Mobygames.com",
	})
	want := "[default]\n" +
		"name=Super Foo 2\n" +
		"year=1991\n" +
		"genre=Action\n" +
		"ported=Baz\n" +
		"developer=Foo Soft\n" +
		"publisher=Bar Co\n" +
		"source=Mobygames.com\n"
	if text != want {
		t.Fatalf("unexpected sidecar:\n%s\nwant:\n%s", text, want)
	}
}

func TestRenderEmptyYear(t *testing.T) {
	text := metadata.Render(metadata.Record{Title: "X", Source: "s"})
	want := "[default]\nname=X\nyear=\ngenre=\nsource=s\n"
	if text != want {
		t.Fatalf("unexpected sidecar %q", text)
	}
}

func TestAppendImages(t *testing.T) {
	got := metadata.AppendImages("[default]\n", []string{"launch01.bmp", "launch02.bmp"})
	if got != "[default]\nimages=launch01.bmp,launch02.bmp," {
		t.Fatalf("unexpected images line %q", got)
	}
	if got := metadata.AppendImages("x\n", nil); got != "x\n" {
		t.Fatalf("expected unchanged text, got %q", got)
	}
}
