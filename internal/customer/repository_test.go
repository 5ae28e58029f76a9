// internal/customer/repository_test.go
//
// Unit-tests for customer row access and the attribute bag, using sqlmock.
//
// Run: go test ./internal/customer -v

package customer

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Whitespace-tolerant patterns for the queries under test.
const (
	selectCustomerRe = `SELECT\s+id, customer_guid, email, system_name, active, deleted,\s+is_system_account, vendor_id, affiliate_id, last_ip_address,\s+created_at, last_activity_at FROM customer WHERE customer_guid = \?`
	selectRolesRe    = `SELECT cr.system_name\s+FROM customer_role_map crm\s+JOIN customer_role cr ON cr.id = crm.role_id\s+WHERE crm.customer_id = \?`
	attrSelectRe     = "SELECT value\\s+FROM\\s+customer_attribute\\s+WHERE\\s+customer_id = \\? AND `key` = \\? AND store_id = \\?"
	attrDeleteRe     = "DELETE FROM customer_attribute\\s+WHERE customer_id = \\? AND `key` = \\? AND store_id = \\?"
	attrUpsertRe     = "INSERT INTO customer_attribute \\(customer_id, `key`, store_id, value\\)"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func customerRow(id int64, guid uuid.UUID) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "customer_guid", "email", "system_name", "active", "deleted",
		"is_system_account", "vendor_id", "affiliate_id", "last_ip_address",
		"created_at", "last_activity_at",
	}).AddRow(id, guid.String(), "a@example.com", "", true, false,
		false, 0, 0, "10.0.0.1", now, nil)
}

func TestByGUIDHydratesRoles(t *testing.T) {
	db, mock := newMock(t)
	guid := uuid.New()

	mock.ExpectQuery(selectCustomerRe).
		WithArgs(guid.String()).
		WillReturnRows(customerRow(11, guid))
	mock.ExpectQuery(selectRolesRe).
		WithArgs(int64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"system_name"}).
			AddRow(RoleRegistered))

	got, err := NewRepository(db).ByGUID(context.Background(), guid)
	if err != nil {
		t.Fatalf("ByGUID error: %v", err)
	}
	if got == nil || got.ID != 11 || !got.IsRegistered() {
		t.Fatalf("unexpected customer: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestByGUIDMiss(t *testing.T) {
	db, mock := newMock(t)
	guid := uuid.New()

	mock.ExpectQuery(selectCustomerRe).
		WithArgs(guid.String()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	got, err := NewRepository(db).ByGUID(context.Background(), guid)
	if err != nil || got != nil {
		t.Fatalf("want (nil, nil) on miss, got (%+v, %v)", got, err)
	}
}

func TestInsertGuest(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectExec(`INSERT INTO customer\s+\(customer_guid,`).
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectExec(`INSERT INTO customer_role_map \(customer_id, role_id\)`).
		WithArgs(int64(42), RoleGuests).
		WillReturnResult(sqlmock.NewResult(1, 1))

	got, err := NewRepository(db).InsertGuest(context.Background())
	if err != nil {
		t.Fatalf("InsertGuest error: %v", err)
	}
	if got.ID != 42 || !got.Active || !got.IsGuest() {
		t.Fatalf("unexpected guest: %+v", got)
	}
	if got.GUID == uuid.Nil {
		t.Fatalf("guest must carry a fresh GUID")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestAttributeIntAbsentReadsZero(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(attrSelectRe).
		WithArgs(int64(11), string(AttrLanguageID), int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	n, err := NewAttributes(db).Int(context.Background(), 11, AttrLanguageID, 1)
	if err != nil || n != 0 {
		t.Fatalf("want (0, nil) on absent row, got (%d, %v)", n, err)
	}
}

func TestAttributeJunkReadsZero(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(attrSelectRe).
		WithArgs(int64(11), string(AttrLanguageID), int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("banana"))

	n, err := NewAttributes(db).Int(context.Background(), 11, AttrLanguageID, 1)
	if err != nil || n != 0 {
		t.Fatalf("junk value must read as unset, got (%d, %v)", n, err)
	}
}

func TestSaveIntZeroDeletesRow(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectExec(attrDeleteRe).
		WithArgs(int64(11), string(AttrLanguageID), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := NewAttributes(db).SaveInt(context.Background(), 11, AttrLanguageID, 1, 0); err != nil {
		t.Fatalf("SaveInt error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestSaveIntUpserts(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectExec(attrUpsertRe).
		WithArgs(int64(11), string(AttrLanguageID), int64(1), "2").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := NewAttributes(db).SaveInt(context.Background(), 11, AttrLanguageID, 1, 2); err != nil {
		t.Fatalf("SaveInt error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}
