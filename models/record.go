package models

// MemberRecord is the SQL row for a member when the dataset is kept in a database
type MemberRecord struct {
	Code          string `gorm:"type:varchar(16);primaryKey"`
	Name          string `gorm:"not null"`
	FatherName    string `gorm:"not null"`
	Address       string
	Email         string
	Contact       string `gorm:"not null"`
	SeatNo        string
	AdmissionDate Date `gorm:"type:varchar(10);not null"`
	LastPayment   Date `gorm:"type:varchar(10);not null"`

	Payments []PaymentRecord `gorm:"foreignKey:MemberCode;references:Code"`
}

func (MemberRecord) TableName() string {
	return "members"
}

// PaymentRecord is one ledger entry. Seq keeps insertion order.
type PaymentRecord struct {
	ID         uint   `gorm:"primaryKey"`
	MemberCode string `gorm:"type:varchar(16);index;not null"`
	Seq        int    `gorm:"not null"`
	Date       Date   `gorm:"type:varchar(10);not null"`
	Amount     int    `gorm:"not null"`
}

func (PaymentRecord) TableName() string {
	return "member_payments"
}

// NewMemberRecord converts a member into its row form
func NewMemberRecord(code string, m *Member) MemberRecord {
	record := MemberRecord{
		Code:          code,
		Name:          m.Name,
		FatherName:    m.FatherName,
		Address:       m.Address,
		Email:         m.Email,
		Contact:       m.Contact,
		SeatNo:        m.SeatNo,
		AdmissionDate: m.AdmissionDate,
		LastPayment:   m.LastPayment,
	}
	for i, p := range m.Payments {
		record.Payments = append(record.Payments, PaymentRecord{
			MemberCode: code,
			Seq:        i,
			Date:       p.Date,
			Amount:     p.Amount,
		})
	}
	return record
}

// Member converts the row back to a member. Payments must already be in Seq order.
func (r MemberRecord) Member() *Member {
	m := &Member{
		Name:          r.Name,
		FatherName:    r.FatherName,
		Address:       r.Address,
		Email:         r.Email,
		Contact:       r.Contact,
		SeatNo:        r.SeatNo,
		AdmissionDate: r.AdmissionDate,
		LastPayment:   r.LastPayment,
		Payments:      make([]Payment, 0, len(r.Payments)),
	}
	for _, p := range r.Payments {
		m.Payments = append(m.Payments, Payment{Date: p.Date, Amount: p.Amount})
	}
	return m
}
