package handler

type loginRequest struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// completeFormRequest is the multipart body of POST /complete-forms/:formId.
// Photo carries the uploaded file name; the handler fills it from the file part.
// AssignedFormID is the hidden field of the dashboard form; the path id is the
// one acted on.
type completeFormRequest struct {
	Name      string `form:"name"      validate:"required,max=100"`
	Email     string `form:"email"     validate:"required,email,max=100"`
	Telephone string `form:"telephone" validate:"required,max=100,ukmobile"`
	Photo     string `form:"photo"     validate:"required,jpegext"`
	DOB       string `form:"dob"       validate:"required,dateinput,pastdate"`
	Food      string `form:"food"      validate:"required,max=100"`

	AssignedFormID string `form:"assigned_form_id" validate:"required"`
}
