package database

import (
	"github.com/ArtLegends/medtravel-main-sub002/internal/domain/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Migrate creates the attribution schema. Check constraints and the lead
// binding trigger are Postgres-only; other dialects get the tables and indexes.
func Migrate(db *gorm.DB, logger *zap.Logger) error {
	logger.Info("Running GORM auto-migrations...")
	if err := db.AutoMigrate(model.All()...); err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		return err
	}

	if db.Dialector.Name() != "postgres" {
		logger.Info("Skipping Postgres constraints", zap.String("dialect", db.Dialector.Name()))
		return nil
	}

	if err := createConstraints(db); err != nil {
		logger.Error("Failed to create constraints", zap.Error(err))
		return err
	}
	if err := createLeadBindingTrigger(db); err != nil {
		logger.Error("Failed to create lead binding trigger", zap.Error(err))
		return err
	}

	logger.Info("Database migrations completed successfully")
	return nil
}

var constraints = []struct{ table, name, check string }{
	{"referral_codes", "chk_referral_codes_status", "status IN ('pending', 'approved', 'rejected')"},
	{"referral_codes", "chk_referral_codes_uppercase", "code = UPPER(code)"},
	{"referral_attachments", "chk_referral_attachments_source", "source IN ('explicit', 'cookie')"},
	{"referral_conversions", "chk_referral_conversions_status", "status IN ('pending', 'confirmed', 'rejected')"},
	{"referral_conversions", "chk_referral_conversions_value", "value IS NULL OR (value >= 0 AND status = 'confirmed')"},
	{"leads", "chk_leads_status", "status IN ('new', 'contacted', 'converted', 'closed')"},
	{"principal_roles", "chk_principal_roles_role", "role IN ('admin', 'customer', 'partner', 'patient')"},
}

func createConstraints(db *gorm.DB) error {
	for _, c := range constraints {
		if db.Migrator().HasConstraint(c.table, c.name) {
			continue
		}
		if err := db.Exec(`ALTER TABLE ` + c.table + ` ADD CONSTRAINT ` + c.name + ` CHECK (` + c.check + `)`).Error; err != nil {
			return err
		}
	}
	return nil
}

// createLeadBindingTrigger rejects any UPDATE that changes an already set
// patient_principal_id, including setting it back to NULL.
func createLeadBindingTrigger(db *gorm.DB) error {
	if err := db.Exec(`
CREATE OR REPLACE FUNCTION leads_patient_binding_immutable() RETURNS TRIGGER AS $$
BEGIN
    IF OLD.patient_principal_id IS NOT NULL
       AND NEW.patient_principal_id IS DISTINCT FROM OLD.patient_principal_id THEN
        RAISE EXCEPTION 'lead % is already bound to a patient principal', OLD.id
            USING ERRCODE = 'check_violation';
    END IF;
    RETURN NEW;
END;
$$ LANGUAGE plpgsql;`).Error; err != nil {
		return err
	}

	if err := db.Exec(`DROP TRIGGER IF EXISTS leads_patient_binding_immutable ON leads`).Error; err != nil {
		return err
	}
	return db.Exec(`
CREATE TRIGGER leads_patient_binding_immutable
    BEFORE UPDATE ON leads
    FOR EACH ROW EXECUTE FUNCTION leads_patient_binding_immutable();`).Error
}
