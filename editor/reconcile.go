package editor

// PostForm is the canonical field set the post form is built from.
// Every field is populated; slices are never nil.
type PostForm struct {
	Title        string     `json:"title"`
	Slug         string     `json:"slug"`
	Content      string     `json:"content"`
	CoverImage   CoverImage `json:"cover_image"`
	Tags         []string   `json:"tags"`
	MetaTitle    string     `json:"meta_title"`
	MetaKeywords []string   `json:"meta_keywords"`
	ReadingTime  int        `json:"reading_time"`
	Status       Status     `json:"status"`
	ScheduledAt  string     `json:"scheduled_at"`
}

// BlankForm returns the form used when there is no post to edit.
func BlankForm() PostForm {
	return PostForm{
		CoverImage:   CoverImage{},
		Tags:         []string{},
		MetaKeywords: []string{},
		Status:       StatusDraft,
	}
}

// FormDefaults reconciles a post in either shape into a fully defaulted
// form. It never fails: anything missing falls back to its default.
func FormDefaults(src PostSource) PostForm {
	form := BlankForm()
	var p *Post
	switch src.Shape {
	case ShapeFlat, ShapeDetail:
		p = &src.Post
	default:
		return form
	}

	form.Title = p.Title
	form.Slug = p.Slug
	form.Content = p.Content
	if p.CoverImage != nil {
		form.CoverImage = *p.CoverImage
	}
	form.Tags = cloneStrings(p.Tags)
	form.MetaTitle = p.MetaTitle
	form.MetaKeywords = cloneStrings(p.MetaKeywords)
	form.ReadingTime = p.ReadingTime
	if p.Status.Valid() {
		form.Status = p.Status
	}
	if p.ScheduledAt != nil {
		form.ScheduledAt = *p.ScheduledAt
	}
	return form
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
