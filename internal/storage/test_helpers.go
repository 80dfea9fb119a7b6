package storage

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser создает тестового пользователя
func (f *TestDataFactory) CreateUser(t *testing.T, userUID, username, email, passwordHash, role string) {
	_, err := f.storage.DB.Exec(`INSERT INTO users (uid, username, email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)`,
		userUID, username, email, passwordHash, role)
	require.NoError(t, err)
}

// CreateMember создает тестового участника
func (f *TestDataFactory) CreateMember(t *testing.T, memberUID, fullName, email, membershipType string) {
	_, err := f.storage.DB.Exec(`INSERT INTO members (uid, full_name, email, membership_type)
		VALUES ($1, $2, $3, $4)`,
		memberUID, fullName, email, membershipType)
	require.NoError(t, err)
}

// CreateMembership создает тестовое членство
func (f *TestDataFactory) CreateMembership(t *testing.T, memberUID, membershipType, status string,
	fromDate, toDate time.Time, paid bool, currency string, amount float64) int {
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO memberships
		(member_uid, membership_type, status, from_date, to_date, paid, currency, amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		memberUID, membershipType, status, fromDate, toDate, paid, currency, amount).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateMembershipType создает тестовый тарифный план
func (f *TestDataFactory) CreateMembershipType(t *testing.T, name, itemCode, itemName string,
	amount float64, currency, razorpayPlanID string) {
	_, err := f.storage.DB.Exec(`INSERT INTO membership_types
		(name, item_code, item_name, amount, currency, razorpay_plan_id)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		name, itemCode, itemName, amount, currency, razorpayPlanID)
	require.NoError(t, err)
}

// TestMemberData содержит стандартные тестовые данные участника
type TestMemberData struct {
	UID            string
	FullName       string
	Email          string
	MembershipType string
}

// GetTestMemberData возвращает стандартные тестовые данные участника
func GetTestMemberData() TestMemberData {
	return TestMemberData{
		UID:            uuid.New().String(),
		FullName:       "Ivan Petrov",
		Email:          "ivan@example.com",
		MembershipType: "Gold",
	}
}

// TestVerification содержит общие функции для проверки результатов тестов
type TestVerification struct {
	storage *Storage
}

// NewTestVerification создает новый объект для проверки результатов
func NewTestVerification(storage *Storage) *TestVerification {
	return &TestVerification{storage: storage}
}

// VerifyMemberExists проверяет существование участника в БД
func (v *TestVerification) VerifyMemberExists(t *testing.T, memberUID string) {
	var count int
	err := v.storage.DB.QueryRow("SELECT COUNT(*) FROM members WHERE uid = $1", memberUID).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

// VerifyMembershipCount проверяет число членств участника
func (v *TestVerification) VerifyMembershipCount(t *testing.T, memberUID string, expected int) {
	var count int
	err := v.storage.DB.QueryRow("SELECT COUNT(*) FROM memberships WHERE member_uid = $1", memberUID).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, expected, count)
}

// VerifyInvoiceStatus проверяет статус счёта
func (v *TestVerification) VerifyInvoiceStatus(t *testing.T, invoiceID int, expectedStatus string) {
	var status string
	err := v.storage.DB.QueryRow("SELECT status FROM invoices WHERE id = $1", invoiceID).Scan(&status)
	require.NoError(t, err)
	require.Equal(t, expectedStatus, status)
}
