package editor

import (
	"reflect"
	"testing"
)

func TestFormDefaultsNoPost(t *testing.T) {
	got := FormDefaults(NoPost())
	want := PostForm{
		CoverImage:   CoverImage{URL: "", Alt: ""},
		Tags:         []string{},
		MetaKeywords: []string{},
		Status:       StatusDraft,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FormDefaults(NoPost()) = %+v, want %+v", got, want)
	}
	if got.Tags == nil || got.MetaKeywords == nil {
		t.Error("slices must be empty, not nil")
	}
}

func TestFormDefaultsDetailShape(t *testing.T) {
	src, err := DecodePostSource([]byte(`{"data":{"title":"X","tags":["a"]}}`))
	if err != nil {
		t.Fatalf("DecodePostSource: %v", err)
	}
	if src.Shape != ShapeDetail {
		t.Fatalf("Shape = %v, want detail", src.Shape)
	}
	got := FormDefaults(src)
	if got.Title != "X" {
		t.Errorf("Title = %q, want X", got.Title)
	}
	if !reflect.DeepEqual(got.Tags, []string{"a"}) {
		t.Errorf("Tags = %v, want [a]", got.Tags)
	}
	if got.ReadingTime != 0 {
		t.Errorf("ReadingTime = %d, want 0", got.ReadingTime)
	}
	if got.MetaKeywords == nil || len(got.MetaKeywords) != 0 {
		t.Errorf("MetaKeywords = %#v, want empty slice", got.MetaKeywords)
	}
	if got.CoverImage != (CoverImage{}) {
		t.Errorf("CoverImage = %+v, want zero pair", got.CoverImage)
	}
}

func TestFormDefaultsFlatShape(t *testing.T) {
	raw := `{
		"id": 42,
		"title": "Flat",
		"slug": "flat",
		"content": "# Hi",
		"status": "scheduled",
		"scheduled_at": "2030-01-02T03:04:05Z",
		"cover_image": {"url": "https://cdn.example.com/c.jpg", "alt": "cover"},
		"meta_title": "Meta",
		"meta_keywords": ["k1", "k2"],
		"reading_time": 3
	}`
	src, err := DecodePostSource([]byte(raw))
	if err != nil {
		t.Fatalf("DecodePostSource: %v", err)
	}
	if src.Shape != ShapeFlat {
		t.Fatalf("Shape = %v, want flat", src.Shape)
	}
	if src.Post.ID != "42" {
		t.Errorf("ID = %q, want 42", src.Post.ID)
	}
	got := FormDefaults(src)
	want := PostForm{
		Title:        "Flat",
		Slug:         "flat",
		Content:      "# Hi",
		CoverImage:   CoverImage{URL: "https://cdn.example.com/c.jpg", Alt: "cover"},
		Tags:         []string{},
		MetaTitle:    "Meta",
		MetaKeywords: []string{"k1", "k2"},
		ReadingTime:  3,
		Status:       StatusScheduled,
		ScheduledAt:  "2030-01-02T03:04:05Z",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FormDefaults = %+v, want %+v", got, want)
	}
}

func TestFormDefaultsUnknownStatusFallsBackToDraft(t *testing.T) {
	got := FormDefaults(FlatPost(Post{Title: "t", Status: "archived"}))
	if got.Status != StatusDraft {
		t.Errorf("Status = %q, want draft", got.Status)
	}
}

func TestDecodePostSourceEmpty(t *testing.T) {
	for _, raw := range []string{"", "  ", "null"} {
		src, err := DecodePostSource([]byte(raw))
		if err != nil {
			t.Fatalf("DecodePostSource(%q): %v", raw, err)
		}
		if src.Shape != ShapeNone {
			t.Errorf("DecodePostSource(%q).Shape = %v, want none", raw, src.Shape)
		}
	}
}

func TestDecodePostSourceNullData(t *testing.T) {
	src, err := DecodePostSource([]byte(`{"success":true,"data":null}`))
	if err != nil {
		t.Fatalf("DecodePostSource: %v", err)
	}
	if src.Shape != ShapeDetail {
		t.Fatalf("Shape = %v, want detail", src.Shape)
	}
	if got := FormDefaults(src); got.Title != "" || got.Tags == nil {
		t.Errorf("FormDefaults = %+v, want defaults", got)
	}
}

func TestDecodePostSourceInvalid(t *testing.T) {
	if _, err := DecodePostSource([]byte(`{"title":`)); err == nil {
		t.Error("expected error for truncated JSON")
	}
	if _, err := DecodePostSource([]byte(`{"id":{"x":1}}`)); err == nil {
		t.Error("expected error for object id")
	}
}

func TestFormDefaultsCopiesSlices(t *testing.T) {
	tags := []string{"a", "b"}
	got := FormDefaults(FlatPost(Post{Tags: tags}))
	got.Tags[0] = "changed"
	if tags[0] != "a" {
		t.Error("FormDefaults must not alias the record's tags")
	}
}
