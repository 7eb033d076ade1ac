package dto

type CreateClassReq struct {
	Program  string   `json:"program" validate:"required"`
	Semester int      `json:"semester" validate:"required,min=1,max=8"`
	Sections []string `json:"sections" validate:"required,min=1,dive,required"`
	Subjects []string `json:"subjects" validate:"required,min=1,dive,required"`
}

type AssignTeacherReq struct {
	TeacherID string   `json:"teacher_id" validate:"required"`
	ClassID   string   `json:"class_id" validate:"required"`
	Subject   string   `json:"subject" validate:"required"`
	Sections  []string `json:"sections" validate:"required,min=1,dive,required"`
	Username  string   `json:"username" validate:"required,min=3,max=50"`
	Password  string   `json:"password" validate:"required,min=6,max=100"`
}

type EnrollReq struct {
	StudentID string `json:"student_id" validate:"required"`
	Username  string `json:"username" validate:"required"`
	Password  string `json:"password" validate:"required"`
}

type RegistrationReq struct {
	FirstName string `json:"firstname" validate:"required,max=60"`
	LastName  string `json:"lastname" validate:"required,max=60"`
	Email     string `json:"email" validate:"required,email"`
	StudentID string `json:"student_id" validate:"required,max=20"`
	Program   string `json:"program" validate:"required"`
	Semester  string `json:"semester" validate:"required"`
	Section   string `json:"section" validate:"required"`
}
