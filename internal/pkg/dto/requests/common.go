package requests

type ListQuery struct {
	Search    string
	PatientID *int64
}
