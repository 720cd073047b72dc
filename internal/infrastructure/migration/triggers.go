package migration

import (
	"fmt"

	"gorm.io/gorm"
)

// changeLoggedTables are the tables whose writes other windows of the
// application care about. Finance child tables ride along implicitly:
// every child write recomputes the cached totals on its record row in
// the same transaction, so the record trigger fires.
var changeLoggedTables = []string{
	"cases",
	"tasks",
	"notifications",
	"mediations",
	"finance_records",
	"finance_records_external",
}

// recreateChangeLogTriggers drops and re-creates the change markers so
// the bodies always match the current release. Triggers from older
// releases may reference columns that no longer exist.
func recreateChangeLogTriggers(db *gorm.DB) error {
	for _, table := range changeLoggedTables {
		for _, op := range []string{"insert", "update", "delete"} {
			name := fmt.Sprintf("trg_%s_%s", table, op)
			if err := db.Exec(fmt.Sprintf("DROP TRIGGER IF EXISTS %q", name)).Error; err != nil {
				return fmt.Errorf("drop trigger %s: %w", name, err)
			}
			stmt := fmt.Sprintf(
				`CREATE TRIGGER %q AFTER %s ON %q
				 BEGIN
				   INSERT INTO change_log (table_name, changed_at)
				   VALUES ('%s', CURRENT_TIMESTAMP);
				 END`,
				name, op, table, table,
			)
			if err := db.Exec(stmt).Error; err != nil {
				return fmt.Errorf("create trigger %s: %w", name, err)
			}
		}
	}
	return nil
}
