package migration

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// columnSpec declares one column newer versions may have added to an
// old database.
type columnSpec struct {
	name string
	ddl  string // type and default, e.g. "INTEGER NOT NULL DEFAULT 0"
}

// tableColumns returns the set of present column names.
func tableColumns(db *gorm.DB, table string) (map[string]bool, error) {
	type info struct {
		Name string `gorm:"column:name"`
	}
	var rows []info
	if err := db.Raw(fmt.Sprintf("PRAGMA table_info(%q)", table)).Scan(&rows).Error; err != nil {
		return nil, err
	}
	cols := make(map[string]bool, len(rows))
	for _, r := range rows {
		cols[r.Name] = true
	}
	return cols, nil
}

// ensureColumns adds every missing declared column, one ALTER at a
// time. A failed ALTER is logged and skipped; the census is re-read
// after each attempt so one bad column cannot poison the rest.
func ensureColumns(db *gorm.DB, log *zap.Logger, table string, specs []columnSpec) error {
	cols, err := tableColumns(db, table)
	if err != nil {
		return fmt.Errorf("column census of %s: %w", table, err)
	}
	for _, spec := range specs {
		if cols[spec.name] {
			continue
		}
		stmt := fmt.Sprintf("ALTER TABLE %q ADD COLUMN %q %s", table, spec.name, spec.ddl)
		if err := db.Exec(stmt).Error; err != nil {
			log.Warn("column add failed, continuing",
				zap.String("table", table),
				zap.String("column", spec.name),
				zap.Error(err),
			)
		}
		if cols, err = tableColumns(db, table); err != nil {
			return fmt.Errorf("column census of %s: %w", table, err)
		}
	}
	return nil
}

var (
	moneyCol = "INTEGER NOT NULL DEFAULT 0"
	textCol  = "TEXT DEFAULT ''"
	boolCol  = "INTEGER NOT NULL DEFAULT 0"
)

// ensureAllColumns runs the tolerant census over every table whose
// column set has grown across releases.
func (m *Migrator) ensureAllColumns() error {
	recordCols := []columnSpec{
		{"fixed_fee_cents", moneyCol},
		{"percent_rate", "REAL NOT NULL DEFAULT 0"},
		{"percent_base_cents", moneyCol},
		{"percent_deferred", boolCol},
		{"other_party_fee_cents", moneyCol},
		{"notes", textCol},
		{"total_contract_cents", moneyCol},
		{"collected_cents", moneyCol},
		{"expense_total_cents", moneyCol},
		{"expense_collected_cents", moneyCol},
		{"remaining_cents", moneyCol},
		{"has_overdue_installment", boolCol},
	}

	perTable := map[string][]columnSpec{
		"cases": {
			{"buro_takip_no", textCol},
			{"esas_no", textCol},
			{"durusma_tarihi", textCol},
			{"status_2", textCol},
			{"action_date_2", textCol},
			{"note_2", textCol},
			{"archived", boolCol},
		},
		"statuses": {
			{"color", "TEXT NOT NULL DEFAULT '#808080'"},
			{"owner", textCol},
		},
		"notifications": {
			{"buro_takip_no", textCol},
			{"is_son_gunu", textCol},
			{"done", boolCol},
		},
		"mediations": {
			{"buro_takip_no", textCol},
			{"toplanti_tarihi", textCol},
			{"time_slot", textCol},
			{"done", boolCol},
		},
		"tasks": {
			{"kind", "TEXT NOT NULL DEFAULT 'Manual'"},
			{"assignees", textCol},
			{"case_id", "INTEGER NOT NULL DEFAULT 0"},
			{"source_row_id", "INTEGER NOT NULL DEFAULT 0"},
			{"buro_takip_no", textCol},
		},
		"finance_records":          recordCols,
		"finance_records_external": recordCols,
		"installments":             {{"amount_cents", moneyCol}, {"paid_on", textCol}, {"note", textCol}},
		"installments_external":    {{"amount_cents", moneyCol}, {"paid_on", textCol}, {"note", textCol}},
		"payments":                 {{"amount_cents", moneyCol}, {"installment_id", "INTEGER"}},
		"payments_external":        {{"amount_cents", moneyCol}, {"installment_id", "INTEGER"}},
		"expenses":                 {{"amount_cents", moneyCol}, {"collected_on", textCol}},
		"expenses_external":        {{"amount_cents", moneyCol}, {"collected_on", textCol}},
		"client_cash":              {{"amount_cents", moneyCol}},
		"client_cash_external":     {{"amount_cents", moneyCol}},
	}

	for table, specs := range perTable {
		if err := ensureColumns(m.db, m.logger, table, specs); err != nil {
			return err
		}
	}
	return nil
}
