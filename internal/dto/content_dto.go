package dto

type CreateNewsInput struct {
	Title    string  `json:"title" form:"title" binding:"required,max=255"`
	Body     string  `json:"body" form:"body" binding:"required"`
	CoverURL *string `json:"cover_url" form:"cover_url"`
	Publish  bool    `json:"publish" form:"publish"`
}

type UpdateNewsInput struct {
	Title    *string `json:"title" form:"title"`
	Body     *string `json:"body" form:"body"`
	CoverURL *string `json:"cover_url" form:"cover_url"`
	Publish  *bool   `json:"publish" form:"publish"`
}

type CreateEventInput struct {
	Title    string  `json:"title" form:"title" binding:"required,max=255"`
	Body     string  `json:"body" form:"body"`
	Venue    string  `json:"venue" form:"venue"`
	StartsAt string  `json:"starts_at" form:"starts_at" binding:"required"`
	EndsAt   *string `json:"ends_at" form:"ends_at"`
	CoverURL *string `json:"cover_url" form:"cover_url"`
}

type CreateGalleryPhotoInput struct {
	Title   string  `json:"title" form:"title"`
	Caption *string `json:"caption" form:"caption"`
}

type ContactInput struct {
	Name    string `json:"name" binding:"required,max=100"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"max=255"`
	Message string `json:"message" binding:"required"`
}

type NewsletterInput struct {
	Email string `json:"email" binding:"required,email"`
}
