package migration

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/takibi/backend/internal/infrastructure/persistence/models"
)

// migrateLegacyMoney copies the historical float lira columns into the
// integer cents columns, half-up, wherever the cents column is still
// unset. The float columns stay in place so a downgrade keeps working.
func migrateLegacyMoney(tx *gorm.DB, log *zap.Logger) error {
	type moneyPair struct {
		table  string
		legacy string
		cents  string
	}
	pairs := []moneyPair{
		{"finance_records", "ucret", "fixed_fee_cents"},
		{"finance_records_external", "ucret", "fixed_fee_cents"},
		{"installments", "tutar", "amount_cents"},
		{"installments_external", "tutar", "amount_cents"},
		{"payments", "tutar", "amount_cents"},
		{"payments_external", "tutar", "amount_cents"},
		{"expenses", "tutar", "amount_cents"},
		{"expenses_external", "tutar", "amount_cents"},
		{"client_cash", "tutar", "amount_cents"},
		{"client_cash_external", "tutar", "amount_cents"},
	}

	for _, p := range pairs {
		cols, err := tableColumns(tx, p.table)
		if err != nil {
			return err
		}
		if !cols[p.legacy] || !cols[p.cents] {
			continue
		}
		res := tx.Exec(fmt.Sprintf(
			`UPDATE %q SET %q = CAST(ROUND(%q * 100) AS INTEGER)
			 WHERE %q = 0 AND %q IS NOT NULL AND %q <> 0`,
			p.table, p.cents, p.legacy, p.cents, p.legacy, p.legacy,
		))
		if res.Error != nil {
			return fmt.Errorf("money migration of %s: %w", p.table, res.Error)
		}
		if res.RowsAffected > 0 {
			log.Info("migrated legacy money column",
				zap.String("table", p.table),
				zap.Int64("rows", res.RowsAffected),
			)
		}
	}
	return nil
}

// aliasSpec maps one historical column spelling to its canonical name.
type aliasSpec struct {
	table     string
	alias     string
	canonical string
}

// consolidateAliases folds every historical column spelling into the
// canonical column and drops the alias. The canonical value wins when
// both are set.
func consolidateAliases(tx *gorm.DB, log *zap.Logger) error {
	specs := []aliasSpec{
		{"cases", "duruşma_tarihi", "durusma_tarihi"},
		{"cases", "hearing_date", "durusma_tarihi"},
		{"notifications", "teblig_tarihi", "is_son_gunu"},
		{"notifications", "geldigi_tarih", "is_son_gunu"},
		{"notifications", "tebligat_tarihi", "is_son_gunu"},
		{"mediations", "toplantı_tarihi", "toplanti_tarihi"},
		{"mediations", "meeting_date", "toplanti_tarihi"},
	}

	for _, s := range specs {
		cols, err := tableColumns(tx, s.table)
		if err != nil {
			return err
		}
		if !cols[s.alias] {
			continue
		}
		if !cols[s.canonical] {
			ddl := fmt.Sprintf("ALTER TABLE %q ADD COLUMN %q %s", s.table, s.canonical, textCol)
			if err := tx.Exec(ddl).Error; err != nil {
				return fmt.Errorf("alias consolidation of %s.%s: %w", s.table, s.alias, err)
			}
		}
		copyStmt := fmt.Sprintf(
			`UPDATE %q SET %q = %q
			 WHERE (%q IS NULL OR %q = '') AND %q IS NOT NULL AND %q <> ''`,
			s.table, s.canonical, s.alias,
			s.canonical, s.canonical, s.alias, s.alias,
		)
		if err := tx.Exec(copyStmt).Error; err != nil {
			return fmt.Errorf("alias consolidation of %s.%s: %w", s.table, s.alias, err)
		}
		dropStmt := fmt.Sprintf("ALTER TABLE %q DROP COLUMN %q", s.table, s.alias)
		if err := tx.Exec(dropStmt).Error; err != nil {
			return fmt.Errorf("alias consolidation of %s.%s: %w", s.table, s.alias, err)
		}
		log.Info("consolidated alias column",
			zap.String("table", s.table),
			zap.String("alias", s.alias),
			zap.String("canonical", s.canonical),
		)
	}
	return nil
}

// dropClientRoleCheck rebuilds the cases table when its DDL still
// carries the old client_role CHECK constraint. New roles could not be
// saved while the constraint existed, so the table is recreated without
// it and the rows copied across by column name.
func dropClientRoleCheck(tx *gorm.DB, log *zap.Logger) error {
	var ddl string
	err := tx.Raw(
		"SELECT sql FROM sqlite_master WHERE type = 'table' AND name = 'cases'",
	).Scan(&ddl).Error
	if err != nil {
		return err
	}
	if !strings.Contains(strings.ToUpper(ddl), "CHECK") {
		return nil
	}

	oldCols, err := tableColumns(tx, "cases")
	if err != nil {
		return err
	}

	if err := tx.Exec(`ALTER TABLE "cases" RENAME TO "cases_legacy"`).Error; err != nil {
		return err
	}
	if err := tx.AutoMigrate(&models.CaseModel{}); err != nil {
		return err
	}

	newCols, err := tableColumns(tx, "cases")
	if err != nil {
		return err
	}
	var common []string
	for name := range newCols {
		if oldCols[name] {
			common = append(common, fmt.Sprintf("%q", name))
		}
	}
	colList := strings.Join(common, ", ")
	copyStmt := fmt.Sprintf(
		`INSERT INTO "cases" (%s) SELECT %s FROM "cases_legacy"`, colList, colList,
	)
	if err := tx.Exec(copyStmt).Error; err != nil {
		return err
	}
	if err := tx.Exec(`DROP TABLE "cases_legacy"`).Error; err != nil {
		return err
	}

	log.Info("rebuilt cases table without client-role constraint")
	return nil
}
