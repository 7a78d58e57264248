package models

// Staff represents a dashboard login. Passwords are stored and compared in
// plaintext; this service does not provide credential security.
type Staff struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Password string `gorm:"not null" json:"-"`
}

// TableName specifies the table name for the Staff model
func (Staff) TableName() string {
	return "staff"
}
