package pubdesk

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/eringen/pubdesk/api"
	"github.com/eringen/pubdesk/editor"
)

func TestPaginate(t *testing.T) {
	tests := []struct {
		total, perPage int
		requested      string
		page, pages    int
		from, to       int
	}{
		{0, 20, "", 1, 1, 0, 0},
		{45, 20, "", 1, 3, 0, 20},
		{45, 20, "3", 3, 3, 40, 45},
		{45, 20, "9", 3, 3, 40, 45},
		{45, 20, "-1", 1, 3, 0, 20},
		{45, 20, "two", 1, 3, 0, 20},
		{10, 0, "1", 1, 1, 0, 10},
	}
	for _, tt := range tests {
		page, pages, from, to := paginate(tt.total, tt.perPage, tt.requested)
		if page != tt.page || pages != tt.pages || from != tt.from || to != tt.to {
			t.Errorf("paginate(%d, %d, %q) = %d, %d, %d, %d; want %d, %d, %d, %d",
				tt.total, tt.perPage, tt.requested, page, pages, from, to, tt.page, tt.pages, tt.from, tt.to)
		}
	}
}

func TestScheduleForInput(t *testing.T) {
	berlin := time.FixedZone("CET", 3600)
	tests := []struct {
		in   string
		loc  *time.Location
		want string
	}{
		{"", time.UTC, ""},
		{"2030-01-02T10:00:00Z", time.UTC, "2030-01-02T10:00"},
		{"2030-01-02T10:00:00Z", berlin, "2030-01-02T11:00"},
		{"2030-01-02T10:00", berlin, "2030-01-02T10:00"},
		{"next tuesday", time.UTC, "next tuesday"},
	}
	for _, tt := range tests {
		if got := scheduleForInput(tt.in, tt.loc); got != tt.want {
			t.Errorf("scheduleForInput(%q, %v) = %q, want %q", tt.in, tt.loc, got, tt.want)
		}
	}
}

func TestGateMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{editor.ErrScheduleRequired, "Schedule date and time is required."},
		{editor.ErrScheduleInPast, "Scheduled date and time must be in the future."},
		{editor.ErrInvalidStatus, "Choose draft, published or scheduled."},
		{errors.New("other"), api.GenericMessage},
	}
	for _, tt := range tests {
		if got := gateMessage(tt.err); got != tt.want {
			t.Errorf("gateMessage(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{}},
		{" , ,", []string{}},
		{"go, web ,  api", []string{"go", "web", "api"}},
	}
	for _, tt := range tests {
		got := splitList(tt.in)
		if got == nil || !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitList(%q) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}

func TestPaths(t *testing.T) {
	if got := postsPath("blog posts"); got != "/content-types/blog%20posts/posts/" {
		t.Errorf("postsPath = %q", got)
	}
	if got := postPath("post", editor.ID("5")); got != "/content-types/post/posts/5/" {
		t.Errorf("postPath = %q", got)
	}
}

func TestUploadName(t *testing.T) {
	tests := map[string]string{
		"Beach Photo.PNG": "beach-photo.jpg",
		"logo.gif":        "logo.jpg",
		"???.png":         "image.jpg",
		"":                "image.jpg",
	}
	for in, want := range tests {
		if got := uploadName(in); got != want {
			t.Errorf("uploadName(%q) = %q, want %q", in, got, want)
		}
	}
}
