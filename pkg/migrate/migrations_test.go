package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/giftflowhq/giftflow-backend/pkg/migrate"
)

func TestMigrationsDirValidates(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations dir: %v", err)
	}
}

func TestInvoiceMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_invoices.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS invoices",
		"CONSTRAINT uq_invoices_invoice_number UNIQUE (invoice_number)",
		"FOREIGN KEY (customer_id) REFERENCES customers(id) ON DELETE RESTRICT",
		"FOREIGN KEY (invoice_id) REFERENCES invoices(id) ON DELETE CASCADE",
		"CHECK (status IN ('pending', 'partial', 'paid', 'cancelled'))",
		"CHECK (quantity > 0)",
		"DROP TABLE IF EXISTS invoices",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestReceiptsMigrationEnforcesOnePerInvoice(t *testing.T) {
	content := readMigration(t, "*_create_payments.sql")

	checks := []string{
		"CONSTRAINT uq_receipts_invoice_id UNIQUE (invoice_id)",
		"CONSTRAINT uq_receipts_receipt_number UNIQUE (receipt_number)",
		"CHECK (amount > 0)",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestSequenceMigrationUsesCompositeKey(t *testing.T) {
	content := readMigration(t, "*_create_document_sequences.sql")
	if !strings.Contains(content, "PRIMARY KEY (prefix, year)") {
		t.Errorf("document_sequences must be keyed on (prefix, year)")
	}
}

func readMigration(t *testing.T, pattern string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration matching %q", pattern)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}
