package form

// LoginSchema is the login form.
var LoginSchema = Schema{
	{Name: "email", Kind: String, Rules: "required"},
	{Name: "password", Kind: Password, Rules: "required"},
	{Name: "remember_me", Kind: Bool},
}

// CourseSchema is the course creation form.
var CourseSchema = Schema{
	{Name: "name", Kind: String, Rules: "required,max=80"},
	{Name: "description", Kind: String, Rules: "required"},
	{Name: "cover", Kind: String, Rules: "required,http_url"},
	{Name: "is_new", Kind: Bool},
	{Name: "date_start", Kind: DateTime},
	{Name: "date_end", Kind: DateTime},
}
