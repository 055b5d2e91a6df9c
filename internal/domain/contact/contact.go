package contact

type Request struct {
	Name    string `json:"name" binding:"required,max=120"`
	Email   string `json:"email" binding:"required,email,max=254"`
	Phone   string `json:"phone" binding:"omitempty,max=40"`
	Subject string `json:"subject" binding:"omitempty,max=200"`
	Message string `json:"message" binding:"required,max=5000"`
}

// DefaultSubject is used when the visitor leaves the subject blank.
const DefaultSubject = "Contact Form Submission"

func (r Request) SubjectOrDefault() string {
	if r.Subject == "" {
		return DefaultSubject
	}
	return r.Subject
}
