package editor

import (
	"errors"
	"strings"
	"time"
)

// Validation errors returned before anything is sent upstream.
var (
	ErrInvalidStatus    = errors.New("status must be draft, published or scheduled")
	ErrScheduleRequired = errors.New("schedule date and time is required")
	ErrScheduleInPast   = errors.New("scheduled date and time must be in the future")
)

// scheduleLayouts are the accepted scheduled_at inputs. Layouts without a
// zone are read in the location of the reference time passed to Validate.
var scheduleLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
}

// ParseSchedule parses a scheduled_at value. Zone-less values are taken to
// be in loc.
func ParseSchedule(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	var lastErr error
	for _, layout := range scheduleLayouts {
		t, err := time.ParseInLocation(layout, value, loc)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// Validate runs the submission gate against the form. now is the
// submission time; its location is used for zone-less schedule inputs.
func Validate(form PostForm, now time.Time) error {
	if !form.Status.Valid() {
		return ErrInvalidStatus
	}
	if form.Status != StatusScheduled {
		return nil
	}
	if strings.TrimSpace(form.ScheduledAt) == "" {
		return ErrScheduleRequired
	}
	at, err := ParseSchedule(form.ScheduledAt, now.Location())
	if err != nil || !at.After(now) {
		return ErrScheduleInPast
	}
	return nil
}

// PostPayload is the body sent to the content API on create and update.
type PostPayload struct {
	Title        string     `json:"title"`
	Slug         string     `json:"slug"`
	Content      string     `json:"content"`
	Status       Status     `json:"status"`
	ScheduledAt  *string    `json:"scheduled_at"`
	CoverImage   CoverImage `json:"cover_image"`
	Tags         []string   `json:"tags"`
	MetaTitle    string     `json:"meta_title"`
	MetaKeywords []string   `json:"meta_keywords"`
	ReadingTime  int        `json:"reading_time"`
}

// Prepare validates the form and turns it into an upstream payload: the
// slug is re-derived from the title, the schedule is converted to RFC 3339
// UTC (and dropped unless the post is scheduled), tags and keywords are
// trimmed and deduplicated, and a missing reading time is estimated.
func Prepare(form PostForm, now time.Time) (PostPayload, error) {
	if err := Validate(form, now); err != nil {
		return PostPayload{}, err
	}
	p := PostPayload{
		Title:   strings.TrimSpace(form.Title),
		Content: form.Content,
		Status:  form.Status,
		CoverImage: CoverImage{
			URL: strings.TrimSpace(form.CoverImage.URL),
			Alt: strings.TrimSpace(form.CoverImage.Alt),
		},
		Tags:         Dedupe(form.Tags),
		MetaTitle:    strings.TrimSpace(form.MetaTitle),
		MetaKeywords: Dedupe(form.MetaKeywords),
		ReadingTime:  form.ReadingTime,
	}
	p.Slug = Slugify(p.Title)
	if form.Status == StatusScheduled {
		at, _ := ParseSchedule(form.ScheduledAt, now.Location())
		canonical := at.UTC().Format(time.RFC3339)
		p.ScheduledAt = &canonical
	}
	if p.ReadingTime <= 0 {
		p.ReadingTime = ReadingTime(form.Content)
	}
	return p, nil
}

// Dedupe trims values, drops empties and keeps the first occurrence of
// each value (case-insensitively).
func Dedupe(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		key := strings.ToLower(v)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}
