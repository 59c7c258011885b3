package editor

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

var submitNow = time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

func scheduledForm(at string) PostForm {
	f := BlankForm()
	f.Title = "Launch day"
	f.Status = StatusScheduled
	f.ScheduledAt = at
	return f
}

func TestValidateGates(t *testing.T) {
	tests := []struct {
		name string
		form PostForm
		want error
	}{
		{"draft without schedule", BlankForm(), nil},
		{"scheduled without timestamp", scheduledForm(""), ErrScheduleRequired},
		{"scheduled blank timestamp", scheduledForm("   "), ErrScheduleRequired},
		{"scheduled in the past", scheduledForm("2026-05-09T12:00:00Z"), ErrScheduleInPast},
		{"scheduled exactly now", scheduledForm("2026-05-10T12:00:00Z"), ErrScheduleInPast},
		{"scheduled unparseable", scheduledForm("tomorrow"), ErrScheduleInPast},
		{"scheduled in the future", scheduledForm("2026-05-10T12:00:01Z"), nil},
		{"datetime-local in the future", scheduledForm("2026-06-01T09:30"), nil},
		{"unknown status", PostForm{Status: "archived"}, ErrInvalidStatus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.form, submitNow)
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestValidateUsesReferenceLocation(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	now := submitNow.In(loc) // 15:00 local
	if err := Validate(scheduledForm("2026-05-10T14:00"), now); !errors.Is(err, ErrScheduleInPast) {
		t.Errorf("14:00 local is before 15:00 local, got %v", err)
	}
	if err := Validate(scheduledForm("2026-05-10T16:00"), now); err != nil {
		t.Errorf("16:00 local is after 15:00 local, got %v", err)
	}
}

func TestPrepareScheduledCanonicalTime(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	form := scheduledForm("2026-06-01T09:30")
	p, err := Prepare(form, submitNow.In(loc))
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if p.ScheduledAt == nil || *p.ScheduledAt != "2026-06-01T06:30:00Z" {
		t.Errorf("ScheduledAt = %v, want 2026-06-01T06:30:00Z", p.ScheduledAt)
	}
	if p.Slug != "launch-day" {
		t.Errorf("Slug = %q, want launch-day", p.Slug)
	}
}

func TestPrepareRejectsBeforeBuildingPayload(t *testing.T) {
	p, err := Prepare(scheduledForm(""), submitNow)
	if !errors.Is(err, ErrScheduleRequired) {
		t.Fatalf("err = %v, want ErrScheduleRequired", err)
	}
	if !reflect.DeepEqual(p, PostPayload{}) {
		t.Errorf("payload should be empty on rejection, got %+v", p)
	}
}

func TestPrepareDropsScheduleWhenNotScheduled(t *testing.T) {
	form := BlankForm()
	form.Title = "Draft"
	form.ScheduledAt = "2020-01-01T00:00:00Z"
	p, err := Prepare(form, submitNow)
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if p.ScheduledAt != nil {
		t.Errorf("ScheduledAt = %q, want nil", *p.ScheduledAt)
	}
}

func TestPrepareNormalizesFields(t *testing.T) {
	form := BlankForm()
	form.Title = "  Hello, World! 2024 "
	form.Slug = "user-typed-slug"
	form.Status = StatusPublished
	form.Tags = []string{"go", " Go ", "", "web"}
	form.MetaKeywords = []string{"cms", "cms"}
	form.Content = "<p>one two three</p>"
	p, err := Prepare(form, submitNow)
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if p.Title != "Hello, World! 2024" {
		t.Errorf("Title = %q", p.Title)
	}
	if p.Slug != "hello-world-2024" {
		t.Errorf("Slug = %q, want hello-world-2024", p.Slug)
	}
	if !reflect.DeepEqual(p.Tags, []string{"go", "web"}) {
		t.Errorf("Tags = %v, want [go web]", p.Tags)
	}
	if !reflect.DeepEqual(p.MetaKeywords, []string{"cms"}) {
		t.Errorf("MetaKeywords = %v, want [cms]", p.MetaKeywords)
	}
	if p.ReadingTime != 1 {
		t.Errorf("ReadingTime = %d, want 1", p.ReadingTime)
	}
}

func TestDedupeNeverNil(t *testing.T) {
	if got := Dedupe(nil); got == nil || len(got) != 0 {
		t.Errorf("Dedupe(nil) = %#v, want empty slice", got)
	}
}
