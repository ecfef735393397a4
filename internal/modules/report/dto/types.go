package dto

type ExportInput struct {
	CourseID string
}

type ExportOutput struct {
	CourseID string
	Path     string
}
