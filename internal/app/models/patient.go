package models

type Patient struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	BirthDate *Date  `json:"birthDate"`
	Gender    string `json:"gender"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Email     string `json:"email"`
	TimeModel
}
